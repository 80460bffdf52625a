package fbo

import (
	"testing"

	"github.com/gogpu/fbo/backend"
)

func TestColorFormat(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		caps backend.Caps
		want backend.TextureFormat
	}{
		{"v2 byte rgba", Config{Format: FormatByte, Channels: ChannelsRGBA}, capsFull,
			backend.TextureFormat{Internal: backend.InternalFormatRGBA8, Format: backend.PixelFormatRGBA, Type: backend.PixelTypeUnsignedByte}},
		{"v2 byte rgb", Config{Format: FormatByte, Channels: ChannelsRGB}, capsFull,
			backend.TextureFormat{Internal: backend.InternalFormatRGB8, Format: backend.PixelFormatRGB, Type: backend.PixelTypeUnsignedByte}},
		{"v2 float rgba", Config{Format: FormatFloat, Channels: ChannelsRGBA}, capsFull,
			backend.TextureFormat{Internal: backend.InternalFormatRGBA32F, Format: backend.PixelFormatRGBA, Type: backend.PixelTypeFloat}},
		{"v2 half rgba", Config{Format: FormatHalfFloat, Channels: ChannelsRGBA}, capsFull,
			backend.TextureFormat{Internal: backend.InternalFormatRGBA16F, Format: backend.PixelFormatRGBA, Type: backend.PixelTypeHalfFloat}},
		{"v1 byte rgba", Config{Format: FormatByte, Channels: ChannelsRGBA}, capsGL1,
			backend.TextureFormat{Internal: backend.InternalFormatRGBA, Format: backend.PixelFormatRGBA, Type: backend.PixelTypeUnsignedByte}},
		{"v1 byte rgb", Config{Format: FormatByte, Channels: ChannelsRGB}, capsGL1,
			backend.TextureFormat{Internal: backend.InternalFormatRGB, Format: backend.PixelFormatRGB, Type: backend.PixelTypeUnsignedByte}},
		{"v1 float", Config{Format: FormatFloat, Channels: ChannelsRGBA}, capsGL1,
			backend.TextureFormat{Internal: backend.InternalFormatRGBA, Format: backend.PixelFormatRGBA, Type: backend.PixelTypeFloat}},
		{"v1 half", Config{Format: FormatHalfFloat, Channels: ChannelsRGBA}, capsGL1,
			backend.TextureFormat{Internal: backend.InternalFormatRGBA, Format: backend.PixelFormatRGBA, Type: backend.PixelTypeHalfFloatOES}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := colorFormat(tt.cfg, tt.caps); got != tt.want {
				t.Errorf("colorFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDepthFormat(t *testing.T) {
	tests := []struct {
		name string
		df   DepthFormat
		caps backend.Caps
		want backend.InternalFormat
	}{
		{"v2 float", DepthFloat, capsFull, backend.InternalFormatDepthComponent32F},
		{"v2 integer", DepthInteger, capsFull, backend.InternalFormatDepthComponent24},
		{"v1", DepthInteger, capsGL1, backend.InternalFormatDepthComponent},
		{"v1 float falls back", DepthFloat, capsGL1, backend.InternalFormatDepthComponent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := depthFormat(Config{Depth: true, DepthFormat: tt.df}, tt.caps)
			if got.Internal != tt.want {
				t.Errorf("depthFormat().Internal = %v, want %v", got.Internal, tt.want)
			}
			if got.Format != backend.PixelFormatDepth {
				t.Errorf("depthFormat().Format = %v, want DEPTH_COMPONENT", got.Format)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	c := Config{Format: FormatHalfFloat, Channels: ChannelsRGBA, Depth: true, DepthFormat: DepthInteger, Samples: 4}
	if got, want := c.String(), "half-float/rgba depth=integer samples=4"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !c.Antialias() {
		t.Error("Antialias() = false with 4 samples")
	}
}
