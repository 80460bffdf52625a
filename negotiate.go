package fbo

import (
	"fmt"
	"strconv"

	"github.com/gogpu/fbo/backend"
)

// Downgrade records one setting the GPU context could not honor.
type Downgrade struct {
	Setting string
	From    string
	To      string
}

// String returns a message such as "format: float -> byte".
func (d Downgrade) String() string {
	return fmt.Sprintf("%s: %s -> %s", d.Setting, d.From, d.To)
}

// Negotiate adjusts req to what a GPU context with caps supports.
//
// The rules run in a fixed order and each change is reported once:
//
//  1. depth is disabled without depth texture support
//  2. float depth becomes integer on version-1 contexts
//  3. an unknown format becomes byte
//  4. an unknown depth format becomes float
//  5. an unknown channel layout becomes RGBA
//  6. float color becomes byte without float texture support
//  7. float depth becomes integer without float texture support
//  8. half-float color becomes byte without half-float texture support
//  9. floating-point color forces RGBA channels
//  10. multisampling is disabled when the context has no sample support
//  11. the sample count is clamped to [0, caps.MaxSamples]
//
// Negotiate never fails; the result can always be allocated on a context
// with caps.
func Negotiate(req Config, caps backend.Caps) (Config, []Downgrade) {
	cfg := req
	var out []Downgrade
	note := func(setting string, from, to fmt.Stringer) {
		out = append(out, Downgrade{Setting: setting, From: from.String(), To: to.String()})
	}

	if cfg.Depth && !caps.DepthTextures {
		out = append(out, Downgrade{Setting: "depth", From: "true", To: "false"})
		cfg.Depth = false
	}
	if cfg.Depth && !caps.AtLeast2() && cfg.DepthFormat == DepthFloat {
		note("depthFormat", cfg.DepthFormat, DepthInteger)
		cfg.DepthFormat = DepthInteger
	}
	if !cfg.Format.valid() {
		note("format", cfg.Format, FormatByte)
		cfg.Format = FormatByte
	}
	if cfg.Depth && !cfg.DepthFormat.valid() {
		note("depthFormat", cfg.DepthFormat, DepthFloat)
		cfg.DepthFormat = DepthFloat
	}
	if !cfg.Channels.valid() {
		note("channels", cfg.Channels, ChannelsRGBA)
		cfg.Channels = ChannelsRGBA
	}
	if cfg.Format == FormatFloat && !caps.FloatTextures {
		note("format", cfg.Format, FormatByte)
		cfg.Format = FormatByte
	}
	if cfg.Depth && cfg.DepthFormat == DepthFloat && !caps.FloatTextures {
		note("depthFormat", cfg.DepthFormat, DepthInteger)
		cfg.DepthFormat = DepthInteger
	}
	if cfg.Format == FormatHalfFloat && !caps.HalfFloatTextures {
		note("format", cfg.Format, FormatByte)
		cfg.Format = FormatByte
	}
	if cfg.Channels == ChannelsRGB && cfg.Format.IsFloat() {
		note("channels", cfg.Channels, ChannelsRGBA)
		cfg.Channels = ChannelsRGBA
	}
	if cfg.Samples > 0 && caps.MaxSamples <= 0 {
		out = append(out, Downgrade{Setting: "antialias", From: strconv.Itoa(cfg.Samples), To: "0"})
		cfg.Samples = 0
	}
	if clamped := min(max(cfg.Samples, 0), max(caps.MaxSamples, 0)); clamped != cfg.Samples {
		out = append(out, Downgrade{Setting: "antialias", From: strconv.Itoa(cfg.Samples), To: strconv.Itoa(clamped)})
		cfg.Samples = clamped
	}
	return cfg, out
}
