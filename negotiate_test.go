package fbo

import (
	"reflect"
	"testing"

	"github.com/gogpu/fbo/backend"
)

var (
	capsFull = backend.Caps{Version: 2, FloatTextures: true, HalfFloatTextures: true, DepthTextures: true, MaxSamples: 4}
	capsGL1  = backend.Caps{Version: 1, HalfFloatTextures: true, DepthTextures: true}
	capsBare = backend.Caps{Version: 1}
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name  string
		req   Config
		caps  backend.Caps
		want  Config
		warns []Downgrade
	}{
		{
			name: "supported as is",
			req:  Config{Format: FormatHalfFloat, Channels: ChannelsRGBA, Depth: true, DepthFormat: DepthFloat, Samples: 2},
			caps: capsFull,
			want: Config{Format: FormatHalfFloat, Channels: ChannelsRGBA, Depth: true, DepthFormat: DepthFloat, Samples: 2},
		},
		{
			name:  "no depth textures",
			req:   Config{Depth: true, DepthFormat: DepthFloat},
			caps:  capsBare,
			want:  Config{Depth: false, DepthFormat: DepthFloat},
			warns: []Downgrade{{"depth", "true", "false"}},
		},
		{
			name:  "float depth on version 1",
			req:   Config{Depth: true, DepthFormat: DepthFloat},
			caps:  capsGL1,
			want:  Config{Depth: true, DepthFormat: DepthInteger},
			warns: []Downgrade{{"depthFormat", "float", "integer"}},
		},
		{
			name:  "unknown format",
			req:   Config{Format: Format(9)},
			caps:  capsFull,
			want:  Config{Format: FormatByte},
			warns: []Downgrade{{"format", "Format(9)", "byte"}},
		},
		{
			name:  "unknown depth format",
			req:   Config{Depth: true, DepthFormat: DepthFormat(7)},
			caps:  capsFull,
			want:  Config{Depth: true, DepthFormat: DepthFloat},
			warns: []Downgrade{{"depthFormat", "DepthFormat(7)", "float"}},
		},
		{
			name:  "unknown depth format ignored without depth",
			req:   Config{Depth: false, DepthFormat: DepthFormat(7)},
			caps:  capsFull,
			want:  Config{Depth: false, DepthFormat: DepthFormat(7)},
			warns: nil,
		},
		{
			name:  "unknown channels",
			req:   Config{Format: FormatByte, Channels: Channels(5)},
			caps:  capsFull,
			want:  Config{Format: FormatByte, Channels: ChannelsRGBA},
			warns: []Downgrade{{"channels", "Channels(5)", "rgba"}},
		},
		{
			name:  "float without float textures",
			req:   Config{Format: FormatFloat, Channels: ChannelsRGBA},
			caps:  capsGL1,
			want:  Config{Format: FormatByte, Channels: ChannelsRGBA},
			warns: []Downgrade{{"format", "float", "byte"}},
		},
		{
			name: "float depth without float textures",
			req:  Config{Depth: true, DepthFormat: DepthFloat},
			caps: backend.Caps{Version: 2, DepthTextures: true, MaxSamples: 4},
			want: Config{Depth: true, DepthFormat: DepthInteger},
			warns: []Downgrade{
				{"depthFormat", "float", "integer"},
			},
		},
		{
			name:  "half-float without support",
			req:   Config{Format: FormatHalfFloat, Channels: ChannelsRGBA},
			caps:  backend.Caps{Version: 2, FloatTextures: true},
			want:  Config{Format: FormatByte, Channels: ChannelsRGBA},
			warns: []Downgrade{{"format", "half-float", "byte"}},
		},
		{
			name:  "float forces rgba",
			req:   Config{Format: FormatFloat, Channels: ChannelsRGB},
			caps:  capsFull,
			want:  Config{Format: FormatFloat, Channels: ChannelsRGBA},
			warns: []Downgrade{{"channels", "rgb", "rgba"}},
		},
		{
			name:  "byte keeps rgb",
			req:   Config{Format: FormatByte, Channels: ChannelsRGB},
			caps:  capsFull,
			want:  Config{Format: FormatByte, Channels: ChannelsRGB},
			warns: nil,
		},
		{
			name:  "rgb kept after float falls back to byte",
			req:   Config{Format: FormatFloat, Channels: ChannelsRGB},
			caps:  capsGL1,
			want:  Config{Format: FormatByte, Channels: ChannelsRGB},
			warns: []Downgrade{{"format", "float", "byte"}},
		},
		{
			name:  "no multisampling",
			req:   Config{Samples: 4},
			caps:  capsGL1,
			want:  Config{Samples: 0},
			warns: []Downgrade{{"antialias", "4", "0"}},
		},
		{
			name:  "samples clamped",
			req:   Config{Samples: 16},
			caps:  capsFull,
			want:  Config{Samples: 4},
			warns: []Downgrade{{"antialias", "16", "4"}},
		},
		{
			name:  "negative samples",
			req:   Config{Samples: -3},
			caps:  capsFull,
			want:  Config{Samples: 0},
			warns: []Downgrade{{"antialias", "-3", "0"}},
		},
		{
			name: "everything downgraded on a bare context",
			req:  Config{Format: FormatHalfFloat, Channels: ChannelsRGB, Depth: true, DepthFormat: DepthFloat, Samples: 2},
			caps: capsBare,
			want: Config{Format: FormatByte, Channels: ChannelsRGB, Depth: false, DepthFormat: DepthFloat, Samples: 0},
			warns: []Downgrade{
				{"depth", "true", "false"},
				{"format", "half-float", "byte"},
				{"antialias", "2", "0"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warns := Negotiate(tt.req, tt.caps)
			if got != tt.want {
				t.Errorf("Negotiate() = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(warns, tt.warns) {
				t.Errorf("Negotiate() warnings = %v, want %v", warns, tt.warns)
			}
		})
	}
}

// TestNegotiateStable checks that negotiated settings negotiate to
// themselves for every combination of request and capabilities.
func TestNegotiateStable(t *testing.T) {
	capsList := []backend.Caps{capsFull, capsGL1, capsBare,
		{Version: 2, DepthTextures: true, MaxSamples: 8},
		{Version: 2, HalfFloatTextures: true},
	}
	for _, caps := range capsList {
		for f := FormatByte; f <= FormatHalfFloat; f++ {
			for _, ch := range []Channels{ChannelsRGBA, ChannelsRGB} {
				for _, depth := range []bool{false, true} {
					for _, df := range []DepthFormat{DepthFloat, DepthInteger} {
						for _, samples := range []int{0, 2, 4, 16} {
							req := Config{Format: f, Channels: ch, Depth: depth, DepthFormat: df, Samples: samples}
							got, _ := Negotiate(req, caps)
							again, warns := Negotiate(got, caps)
							if again != got || len(warns) != 0 {
								t.Fatalf("Negotiate(%v, %+v) = %v, renegotiates to %v with %v", req, caps, got, again, warns)
							}
							if got.Samples < 0 || got.Samples > caps.MaxSamples {
								t.Fatalf("samples %d outside [0, %d]", got.Samples, caps.MaxSamples)
							}
							if got.Format.IsFloat() && got.Channels == ChannelsRGB {
								t.Fatalf("float format %v kept RGB", got.Format)
							}
						}
					}
				}
			}
		}
	}
}

func TestDowngradeString(t *testing.T) {
	d := Downgrade{Setting: "format", From: "float", To: "byte"}
	if got, want := d.String(), "format: float -> byte"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
