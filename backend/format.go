package backend

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// InternalFormat is the storage format of a texture or renderbuffer, as
// passed to TexImage2D and RenderbufferStorageMultisample.
//
// Sized formats (RGBA8, RGBA32F, ...) are only valid on version-2 contexts.
// Version-1 contexts accept the unsized formats RGBA, RGB and DepthComponent,
// where the pixel type alone decides the component size.
type InternalFormat uint16

const (
	InternalFormatUndefined InternalFormat = iota
	InternalFormatRGBA8
	InternalFormatRGB8
	InternalFormatRGBA32F
	InternalFormatRGB32F
	InternalFormatRGBA16F
	InternalFormatRGB16F
	InternalFormatRGBA
	InternalFormatRGB
	InternalFormatDepthComponent16
	InternalFormatDepthComponent24
	InternalFormatDepthComponent32F
	InternalFormatDepthComponent
)

// String returns a GL-style name for the format.
func (f InternalFormat) String() string {
	switch f {
	case InternalFormatRGBA8:
		return "RGBA8"
	case InternalFormatRGB8:
		return "RGB8"
	case InternalFormatRGBA32F:
		return "RGBA32F"
	case InternalFormatRGB32F:
		return "RGB32F"
	case InternalFormatRGBA16F:
		return "RGBA16F"
	case InternalFormatRGB16F:
		return "RGB16F"
	case InternalFormatRGBA:
		return "RGBA"
	case InternalFormatRGB:
		return "RGB"
	case InternalFormatDepthComponent16:
		return "DEPTH_COMPONENT16"
	case InternalFormatDepthComponent24:
		return "DEPTH_COMPONENT24"
	case InternalFormatDepthComponent32F:
		return "DEPTH_COMPONENT32F"
	case InternalFormatDepthComponent:
		return "DEPTH_COMPONENT"
	default:
		return fmt.Sprintf("InternalFormat(%d)", f)
	}
}

// IsDepth reports whether f stores depth values.
func (f InternalFormat) IsDepth() bool {
	switch f {
	case InternalFormatDepthComponent16, InternalFormatDepthComponent24,
		InternalFormatDepthComponent32F, InternalFormatDepthComponent:
		return true
	}
	return false
}

// IsSized reports whether f carries its own component size.
func (f InternalFormat) IsSized() bool {
	switch f {
	case InternalFormatRGBA, InternalFormatRGB, InternalFormatDepthComponent, InternalFormatUndefined:
		return false
	}
	return true
}

// Channels returns the number of color components, 1 for depth formats.
func (f InternalFormat) Channels() int {
	switch f {
	case InternalFormatRGB8, InternalFormatRGB32F, InternalFormatRGB16F, InternalFormatRGB:
		return 3
	case InternalFormatRGBA8, InternalFormatRGBA32F, InternalFormatRGBA16F, InternalFormatRGBA:
		return 4
	case InternalFormatUndefined:
		return 0
	}
	return 1
}

// PixelFormat is the client-side layout of pixel data.
type PixelFormat uint8

const (
	PixelFormatRGBA PixelFormat = iota
	PixelFormatRGB
	PixelFormatDepth
)

// String returns a GL-style name for the layout.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGBA:
		return "RGBA"
	case PixelFormatRGB:
		return "RGB"
	case PixelFormatDepth:
		return "DEPTH_COMPONENT"
	default:
		return fmt.Sprintf("PixelFormat(%d)", f)
	}
}

// PixelType is the component data type of pixel data.
type PixelType uint8

const (
	PixelTypeUnsignedByte PixelType = iota
	PixelTypeUnsignedInt
	PixelTypeFloat
	// PixelTypeHalfFloat is the core half-float type of version-2 contexts.
	PixelTypeHalfFloat
	// PixelTypeHalfFloatOES is the extension half-float type of version-1 contexts.
	PixelTypeHalfFloatOES
)

// String returns a GL-style name for the type.
func (t PixelType) String() string {
	switch t {
	case PixelTypeUnsignedByte:
		return "UNSIGNED_BYTE"
	case PixelTypeUnsignedInt:
		return "UNSIGNED_INT"
	case PixelTypeFloat:
		return "FLOAT"
	case PixelTypeHalfFloat:
		return "HALF_FLOAT"
	case PixelTypeHalfFloatOES:
		return "HALF_FLOAT_OES"
	default:
		return fmt.Sprintf("PixelType(%d)", t)
	}
}

// TextureFormat is the full (internal format, format, type) triple for a
// texture upload.
type TextureFormat struct {
	Internal InternalFormat
	Format   PixelFormat
	Type     PixelType
}

// String returns "internal/format/type".
func (f TextureFormat) String() string {
	return f.Internal.String() + "/" + f.Format.String() + "/" + f.Type.String()
}

// GPUFormat maps the texture format to the closest WebGPU texture format.
// Three-channel formats have no WebGPU equivalent and map to their padded
// four-channel counterpart. Unsized formats are resolved through the pixel
// type.
func (f TextureFormat) GPUFormat() gputypes.TextureFormat {
	switch f.Internal {
	case InternalFormatRGBA8, InternalFormatRGB8:
		return gputypes.TextureFormatRGBA8Unorm
	case InternalFormatRGBA32F, InternalFormatRGB32F:
		return gputypes.TextureFormatRGBA32Float
	case InternalFormatRGBA16F, InternalFormatRGB16F:
		return gputypes.TextureFormatRGBA16Float
	case InternalFormatDepthComponent16:
		return gputypes.TextureFormatDepth16Unorm
	case InternalFormatDepthComponent24:
		return gputypes.TextureFormatDepth24Plus
	case InternalFormatDepthComponent32F:
		return gputypes.TextureFormatDepth32Float
	case InternalFormatDepthComponent:
		if f.Type == PixelTypeFloat {
			return gputypes.TextureFormatDepth32Float
		}
		return gputypes.TextureFormatDepth24Plus
	case InternalFormatRGBA, InternalFormatRGB:
		switch f.Type {
		case PixelTypeFloat:
			return gputypes.TextureFormatRGBA32Float
		case PixelTypeHalfFloat, PixelTypeHalfFloatOES:
			return gputypes.TextureFormatRGBA16Float
		}
		return gputypes.TextureFormatRGBA8Unorm
	}
	return gputypes.TextureFormatUndefined
}
