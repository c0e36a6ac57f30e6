package core

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	ClearColor [4]float32 // RGBA
	MaxSprites int        // pre-sizes the sprite arena and index buffer
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	return Config{
		Title:      "ember",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: [4]float32{0.08, 0.10, 0.12, 1},
		MaxSprites: 2048,
	}
}

// fileConfig is the on-disk TOML shape. Pointer fields distinguish
// "absent" from zero so partial files only override what they set.
type fileConfig struct {
	Title      *string     `toml:"title"`
	Width      *int        `toml:"width"`
	Height     *int        `toml:"height"`
	VSync      *bool       `toml:"vsync"`
	ClearColor *[4]float32 `toml:"clear_color"`
	MaxSprites *int        `toml:"max_sprites"`
}

// LoadConfig reads a TOML config file and applies it over the defaults.
// A missing file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}

	if fc.Title != nil {
		cfg.Title = *fc.Title
	}
	if fc.Width != nil && *fc.Width > 0 {
		cfg.Width = *fc.Width
	}
	if fc.Height != nil && *fc.Height > 0 {
		cfg.Height = *fc.Height
	}
	if fc.VSync != nil {
		cfg.VSync = *fc.VSync
	}
	if fc.ClearColor != nil {
		cfg.ClearColor = *fc.ClearColor
	}
	if fc.MaxSprites != nil && *fc.MaxSprites > 0 {
		cfg.MaxSprites = *fc.MaxSprites
	}
	return cfg, nil
}
