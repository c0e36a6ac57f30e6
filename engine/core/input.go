package core

// Input tracks the most recent key and pointer state delivered through
// the window's event callback, so update code can poll instead of
// buffering events itself.
type Input struct {
	keys           map[Key]bool
	mouseX, mouseY float64
}

func NewInput() *Input {
	return &Input{keys: make(map[Key]bool)}
}

// Handle folds one event into the tracked state. Events without
// persistent state (scroll, resize) pass through untouched.
func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	}
}

// IsKeyDown reports whether k was down as of the last key event.
func (in *Input) IsKeyDown(k Key) bool { return in.keys[k] }

// Mouse returns the last observed cursor position in window coordinates.
func (in *Input) Mouse() (x, y float64) { return in.mouseX, in.mouseY }
