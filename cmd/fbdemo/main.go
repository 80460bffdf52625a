// Command fbdemo renders into an off-screen framebuffer and saves the
// result as a PNG.
//
//	fbdemo -backend software -width 320 -height 240 -density 2 -antialias 4 -out demo.png
//
// Settings can also come from a TOML file given with -config. Flags set on
// the command line override the file.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/fbo"
	"github.com/gogpu/fbo/backend"
	"github.com/gogpu/fbo/integration/canvas"
)

func main() {
	s := defaultSettings()
	var (
		configFile = flag.String("config", "", "TOML settings file")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.StringVar(&s.Backend, "backend", s.Backend, "backend name ("+fmt.Sprint(backend.Available())+")")
	flag.IntVar(&s.Width, "width", s.Width, "framebuffer width")
	flag.IntVar(&s.Height, "height", s.Height, "framebuffer height")
	flag.Float64Var(&s.Density, "density", s.Density, "pixel density")
	flag.IntVar(&s.Antialias, "antialias", s.Antialias, "multisample count, 0 disables")
	flag.StringVar(&s.Format, "format", s.Format, "color format: byte, float or half-float")
	flag.StringVar(&s.Output, "out", s.Output, "output file")
	flag.Parse()

	if *configFile != "" {
		fromFile, err := loadSettings(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		s = fromFile.override(s, setFlags())
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	fbo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(s); err != nil {
		log.Fatalf("fbdemo: %v", err)
	}
	log.Printf("Saved %s (%dx%d @%gx)\n", s.Output, s.Width, s.Height, s.Density)
}

// setFlags returns the names of the flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func run(s Settings) error {
	format, err := s.format()
	if err != nil {
		return err
	}
	gl, err := backend.Open(s.Backend)
	if err != nil {
		return err
	}

	c, err := canvas.New(gl, s.Width, s.Height, canvas.WithPixelDensity(s.Density))
	if err != nil {
		return err
	}
	defer c.Close()

	fb, err := c.CreateFramebuffer(
		fbo.WithFormat(format),
		fbo.WithAntialiasSamples(s.Antialias),
	)
	if err != nil {
		return err
	}

	err = fb.Draw(func() error {
		return c.Clear(gputypes.Color{R: 0.2, G: 0.4, B: 0.8, A: 1})
	})
	if err != nil {
		return err
	}

	img, err := fb.Image()
	if err != nil {
		return err
	}

	f, err := os.Create(s.Output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
