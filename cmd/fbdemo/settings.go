package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/fbo"
	"github.com/gogpu/fbo/backend"
)

// Settings holds the demo configuration. Field tags name the TOML keys.
type Settings struct {
	Backend   string  `toml:"backend"`
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Density   float64 `toml:"density"`
	Antialias int     `toml:"antialias"`
	Format    string  `toml:"format"`
	Output    string  `toml:"out"`
}

func defaultSettings() Settings {
	return Settings{
		Backend:   backend.BackendSoftware,
		Width:     320,
		Height:    240,
		Density:   1,
		Antialias: fbo.DefaultAntialiasSamples,
		Format:    fbo.FormatByte.String(),
		Output:    "fbdemo.png",
	}
}

// loadSettings reads a TOML file on top of the defaults. Unknown keys are
// an error.
func loadSettings(path string) (Settings, error) {
	s := defaultSettings()
	f, err := os.Open(path)
	if err != nil {
		return s, err
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// override copies the fields of flags whose names are in set into s.
func (s Settings) override(flags Settings, set map[string]bool) Settings {
	if set["backend"] {
		s.Backend = flags.Backend
	}
	if set["width"] {
		s.Width = flags.Width
	}
	if set["height"] {
		s.Height = flags.Height
	}
	if set["density"] {
		s.Density = flags.Density
	}
	if set["antialias"] {
		s.Antialias = flags.Antialias
	}
	if set["format"] {
		s.Format = flags.Format
	}
	if set["out"] {
		s.Output = flags.Output
	}
	return s
}

func (s Settings) format() (fbo.Format, error) {
	for _, f := range []fbo.Format{fbo.FormatByte, fbo.FormatFloat, fbo.FormatHalfFloat} {
		if f.String() == s.Format {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown format %q", s.Format)
}
