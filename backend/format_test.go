package backend

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestTextureFormatGPUFormat(t *testing.T) {
	tests := []struct {
		name   string
		format TextureFormat
		want   gputypes.TextureFormat
	}{
		{"rgba8", TextureFormat{InternalFormatRGBA8, PixelFormatRGBA, PixelTypeUnsignedByte}, gputypes.TextureFormatRGBA8Unorm},
		{"rgb8 padded", TextureFormat{InternalFormatRGB8, PixelFormatRGB, PixelTypeUnsignedByte}, gputypes.TextureFormatRGBA8Unorm},
		{"rgba32f", TextureFormat{InternalFormatRGBA32F, PixelFormatRGBA, PixelTypeFloat}, gputypes.TextureFormatRGBA32Float},
		{"rgba16f", TextureFormat{InternalFormatRGBA16F, PixelFormatRGBA, PixelTypeHalfFloat}, gputypes.TextureFormatRGBA16Float},
		{"unsized float", TextureFormat{InternalFormatRGBA, PixelFormatRGBA, PixelTypeFloat}, gputypes.TextureFormatRGBA32Float},
		{"unsized half", TextureFormat{InternalFormatRGBA, PixelFormatRGBA, PixelTypeHalfFloatOES}, gputypes.TextureFormatRGBA16Float},
		{"unsized byte", TextureFormat{InternalFormatRGB, PixelFormatRGB, PixelTypeUnsignedByte}, gputypes.TextureFormatRGBA8Unorm},
		{"depth24", TextureFormat{InternalFormatDepthComponent24, PixelFormatDepth, PixelTypeUnsignedInt}, gputypes.TextureFormatDepth24Plus},
		{"depth32f", TextureFormat{InternalFormatDepthComponent32F, PixelFormatDepth, PixelTypeFloat}, gputypes.TextureFormatDepth32Float},
		{"unsized depth", TextureFormat{InternalFormatDepthComponent, PixelFormatDepth, PixelTypeUnsignedInt}, gputypes.TextureFormatDepth24Plus},
		{"undefined", TextureFormat{}, gputypes.TextureFormatUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.GPUFormat(); got != tt.want {
				t.Errorf("GPUFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInternalFormatClassification(t *testing.T) {
	tests := []struct {
		f        InternalFormat
		depth    bool
		sized    bool
		channels int
	}{
		{InternalFormatRGBA8, false, true, 4},
		{InternalFormatRGB8, false, true, 3},
		{InternalFormatRGBA, false, false, 4},
		{InternalFormatRGB, false, false, 3},
		{InternalFormatDepthComponent24, true, true, 1},
		{InternalFormatDepthComponent, true, false, 1},
	}
	for _, tt := range tests {
		if got := tt.f.IsDepth(); got != tt.depth {
			t.Errorf("%v.IsDepth() = %v, want %v", tt.f, got, tt.depth)
		}
		if got := tt.f.IsSized(); got != tt.sized {
			t.Errorf("%v.IsSized() = %v, want %v", tt.f, got, tt.sized)
		}
		if got := tt.f.Channels(); got != tt.channels {
			t.Errorf("%v.Channels() = %d, want %d", tt.f, got, tt.channels)
		}
	}
}

func TestTextureFormatString(t *testing.T) {
	f := TextureFormat{InternalFormatRGBA16F, PixelFormatRGBA, PixelTypeHalfFloat}
	if got, want := f.String(), "RGBA16F/RGBA/HALF_FLOAT"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
