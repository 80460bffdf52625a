package fbo

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Format is the component type of the color attachment.
type Format uint8

const (
	// FormatByte stores 8 bits per channel.
	FormatByte Format = iota
	// FormatFloat stores 32-bit floats per channel.
	FormatFloat
	// FormatHalfFloat stores 16-bit floats per channel.
	FormatHalfFloat
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatByte:
		return "byte"
	case FormatFloat:
		return "float"
	case FormatHalfFloat:
		return "half-float"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
}

func (f Format) valid() bool { return f <= FormatHalfFloat }

// IsFloat reports whether f is a floating-point format.
func (f Format) IsFloat() bool { return f == FormatFloat || f == FormatHalfFloat }

// Channels is the color layout of the color attachment.
type Channels uint8

const (
	ChannelsRGBA Channels = iota
	ChannelsRGB
)

// String returns the channel layout name.
func (c Channels) String() string {
	switch c {
	case ChannelsRGBA:
		return "rgba"
	case ChannelsRGB:
		return "rgb"
	default:
		return fmt.Sprintf("Channels(%d)", c)
	}
}

func (c Channels) valid() bool { return c <= ChannelsRGB }

// DepthFormat is the component type of the depth attachment.
type DepthFormat uint8

const (
	DepthFloat DepthFormat = iota
	DepthInteger
)

// String returns the depth format name.
func (d DepthFormat) String() string {
	switch d {
	case DepthFloat:
		return "float"
	case DepthInteger:
		return "integer"
	default:
		return fmt.Sprintf("DepthFormat(%d)", d)
	}
}

func (d DepthFormat) valid() bool { return d <= DepthInteger }

// Texture filtering modes for the color attachment.
const (
	FilterLinear  = gputypes.FilterModeLinear
	FilterNearest = gputypes.FilterModeNearest
)

// DefaultAntialiasSamples is the sample count used by WithAntialias(true)
// and by framebuffers on antialiased surfaces.
const DefaultAntialiasSamples = 2

// Config is the set of settings negotiated against the GPU context.
type Config struct {
	Format      Format
	Channels    Channels
	Depth       bool
	DepthFormat DepthFormat
	Samples     int
}

// Antialias reports whether multisampling is requested.
func (c Config) Antialias() bool { return c.Samples > 0 }

// String returns a compact description such as "byte/rgba depth=float samples=2".
func (c Config) String() string {
	depth := "none"
	if c.Depth {
		depth = c.DepthFormat.String()
	}
	return fmt.Sprintf("%v/%v depth=%s samples=%d", c.Format, c.Channels, depth, c.Samples)
}

// Option configures a Framebuffer during creation.
//
// Example:
//
//	fb, err := fbo.New(surface,
//	    fbo.WithFormat(fbo.FormatHalfFloat),
//	    fbo.WithSize(256, 256),
//	    fbo.WithAntialiasSamples(4),
//	)
type Option func(*options)

// options holds optional configuration for Framebuffer creation.
// Unset fields take their defaults from the surface.
type options struct {
	cfg         Config
	channelsSet bool
	samplesSet  bool
	filter      gputypes.FilterMode
	width       int
	height      int
	density     float64
	registry    *TextureRegistry
}

// defaultOptions returns the settings that do not depend on the surface.
func defaultOptions() options {
	return options{
		cfg: Config{
			Format:      FormatByte,
			Depth:       true,
			DepthFormat: DepthFloat,
		},
		filter: FilterLinear,
	}
}

// WithFormat sets the color component type. Default FormatByte.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.cfg.Format = f
	}
}

// WithChannels sets the color layout. The default is RGBA when the surface
// is transparent and RGB otherwise.
func WithChannels(c Channels) Option {
	return func(o *options) {
		o.cfg.Channels = c
		o.channelsSet = true
	}
}

// WithDepth enables or disables the depth attachment. Default true.
func WithDepth(enabled bool) Option {
	return func(o *options) {
		o.cfg.Depth = enabled
	}
}

// WithDepthFormat sets the depth component type. Default DepthFloat.
func WithDepthFormat(d DepthFormat) Option {
	return func(o *options) {
		o.cfg.DepthFormat = d
	}
}

// WithTextureFiltering sets the color texture filter. Default FilterLinear.
func WithTextureFiltering(f gputypes.FilterMode) Option {
	return func(o *options) {
		o.filter = f
	}
}

// WithAntialias enables multisampling with DefaultAntialiasSamples samples,
// or disables it. The default follows the surface.
func WithAntialias(enabled bool) Option {
	return func(o *options) {
		o.cfg.Samples = 0
		if enabled {
			o.cfg.Samples = DefaultAntialiasSamples
		}
		o.samplesSet = true
	}
}

// WithAntialiasSamples sets an explicit sample count. Zero disables
// multisampling. The count is clamped to what the GPU context supports.
func WithAntialiasSamples(n int) Option {
	return func(o *options) {
		o.cfg.Samples = n
		o.samplesSet = true
	}
}

// WithWidth sets the logical width. Without a matching height the
// framebuffer falls back to tracking the surface size.
func WithWidth(w int) Option {
	return func(o *options) {
		o.width = w
	}
}

// WithHeight sets the logical height. Without a matching width the
// framebuffer falls back to tracking the surface size.
func WithHeight(h int) Option {
	return func(o *options) {
		o.height = h
	}
}

// WithSize sets an explicit logical size. Without it the framebuffer is
// auto-sized to its surface.
func WithSize(w, h int) Option {
	return func(o *options) {
		o.width, o.height = w, h
	}
}

// WithDensity sets the pixel density. The default matches the surface.
func WithDensity(d float64) Option {
	return func(o *options) {
		o.density = d
	}
}

// WithRegistry sets the registry the framebuffer publishes its texture
// views in. The default is DefaultRegistry().
func WithRegistry(r *TextureRegistry) Option {
	return func(o *options) {
		o.registry = r
	}
}
