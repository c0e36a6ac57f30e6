package spritebatch

import "errors"

// Contract-violation errors. All are raised synchronously at the offending
// call and are never retried; the session keeps whatever state it had
// before the failing call.
var (
	ErrSessionOpen       = errors.New("spritebatch: Begin called while a session is already open")
	ErrSessionNotOpen    = errors.New("spritebatch: no session open (call Begin first)")
	ErrNilTexture        = errors.New("spritebatch: nil texture")
	ErrNilFont           = errors.New("spritebatch: nil font")
	ErrNilText           = errors.New("spritebatch: nil text")
	ErrConflictingSprite = errors.New("spritebatch: exactly one of Position or Dest must be set")
)
