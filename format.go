package fbo

import "github.com/gogpu/fbo/backend"

// colorFormatKey indexes the version-2 color format table.
type colorFormatKey struct {
	format   Format
	channels Channels
}

// colorFormats maps version-2 settings to sized formats.
var colorFormats = map[colorFormatKey]backend.TextureFormat{
	{FormatByte, ChannelsRGBA}:      {Internal: backend.InternalFormatRGBA8, Format: backend.PixelFormatRGBA, Type: backend.PixelTypeUnsignedByte},
	{FormatByte, ChannelsRGB}:       {Internal: backend.InternalFormatRGB8, Format: backend.PixelFormatRGB, Type: backend.PixelTypeUnsignedByte},
	{FormatFloat, ChannelsRGBA}:     {Internal: backend.InternalFormatRGBA32F, Format: backend.PixelFormatRGBA, Type: backend.PixelTypeFloat},
	{FormatFloat, ChannelsRGB}:      {Internal: backend.InternalFormatRGB32F, Format: backend.PixelFormatRGB, Type: backend.PixelTypeFloat},
	{FormatHalfFloat, ChannelsRGBA}: {Internal: backend.InternalFormatRGBA16F, Format: backend.PixelFormatRGBA, Type: backend.PixelTypeHalfFloat},
	{FormatHalfFloat, ChannelsRGB}:  {Internal: backend.InternalFormatRGB16F, Format: backend.PixelFormatRGB, Type: backend.PixelTypeHalfFloat},
}

// colorFormat resolves the color texture format for cfg on a context with caps.
// Version-1 contexts take an unsized format equal to the pixel layout.
func colorFormat(cfg Config, caps backend.Caps) backend.TextureFormat {
	if caps.AtLeast2() {
		if f, ok := colorFormats[colorFormatKey{cfg.Format, cfg.Channels}]; ok {
			return f
		}
		return colorFormats[colorFormatKey{FormatByte, ChannelsRGBA}]
	}

	f := backend.TextureFormat{
		Internal: backend.InternalFormatRGBA,
		Format:   backend.PixelFormatRGBA,
		Type:     backend.PixelTypeUnsignedByte,
	}
	if cfg.Channels == ChannelsRGB {
		f.Internal, f.Format = backend.InternalFormatRGB, backend.PixelFormatRGB
	}
	switch cfg.Format {
	case FormatFloat:
		f.Type = backend.PixelTypeFloat
	case FormatHalfFloat:
		f.Type = backend.PixelTypeHalfFloatOES
	}
	return f
}

// depthFormat resolves the depth texture format for cfg on a context with caps.
func depthFormat(cfg Config, caps backend.Caps) backend.TextureFormat {
	if !caps.AtLeast2() {
		return backend.TextureFormat{
			Internal: backend.InternalFormatDepthComponent,
			Format:   backend.PixelFormatDepth,
			Type:     backend.PixelTypeUnsignedInt,
		}
	}
	if cfg.DepthFormat == DepthFloat {
		return backend.TextureFormat{
			Internal: backend.InternalFormatDepthComponent32F,
			Format:   backend.PixelFormatDepth,
			Type:     backend.PixelTypeFloat,
		}
	}
	return backend.TextureFormat{
		Internal: backend.InternalFormatDepthComponent24,
		Format:   backend.PixelFormatDepth,
		Type:     backend.PixelTypeUnsignedInt,
	}
}
