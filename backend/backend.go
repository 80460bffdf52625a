package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNoBinding is returned when an operation needs a bound object and none is bound.
	ErrNoBinding = errors.New("backend: no object bound")

	// ErrInvalidValue is returned for out-of-range sizes, sample counts or rectangles.
	ErrInvalidValue = errors.New("backend: invalid value")

	// ErrInvalidOperation is returned when an operation is not allowed in the current state.
	ErrInvalidOperation = errors.New("backend: invalid operation")

	// ErrUnsupportedFormat is returned when a format is not supported by the context.
	ErrUnsupportedFormat = errors.New("backend: unsupported format")
)

// Texture, Framebuffer and Renderbuffer are opaque object names.
// The zero value names no object; Create* returns zero on failure.
type (
	Texture      uint32
	Framebuffer  uint32
	Renderbuffer uint32
)

// FramebufferTarget selects a framebuffer binding point.
type FramebufferTarget uint8

const (
	// TargetFramebuffer addresses both the draw and read binding points.
	// Binding to it sets both; querying it returns the draw binding.
	TargetFramebuffer FramebufferTarget = iota
	TargetDrawFramebuffer
	TargetReadFramebuffer
)

// Attachment names a framebuffer attachment point.
type Attachment uint8

const (
	AttachmentColor0 Attachment = iota
	AttachmentDepth
)

// String returns a GL-style name for the attachment point.
func (a Attachment) String() string {
	switch a {
	case AttachmentColor0:
		return "COLOR_ATTACHMENT0"
	case AttachmentDepth:
		return "DEPTH_ATTACHMENT"
	default:
		return fmt.Sprintf("Attachment(%d)", a)
	}
}

// BufferMask selects the planes touched by Clear and BlitFramebuffer.
type BufferMask uint8

const (
	ColorBufferBit BufferMask = 1 << iota
	DepthBufferBit
)

// Status is the result of CheckFramebufferStatus.
type Status uint8

const (
	StatusComplete Status = iota
	StatusIncompleteAttachment
	StatusMissingAttachment
	StatusIncompleteDimensions
	StatusIncompleteMultisample
	StatusUnsupported
)

// String returns a GL-style name for the status.
func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "FRAMEBUFFER_COMPLETE"
	case StatusIncompleteAttachment:
		return "FRAMEBUFFER_INCOMPLETE_ATTACHMENT"
	case StatusMissingAttachment:
		return "FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT"
	case StatusIncompleteDimensions:
		return "FRAMEBUFFER_INCOMPLETE_DIMENSIONS"
	case StatusIncompleteMultisample:
		return "FRAMEBUFFER_INCOMPLETE_MULTISAMPLE"
	case StatusUnsupported:
		return "FRAMEBUFFER_UNSUPPORTED"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// Rect is a viewport or blit rectangle in physical pixels, origin bottom-left.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Caps describes what a context can do. Framebuffer settings are negotiated
// against it before any object is created.
type Caps struct {
	// Version is the API generation: 1 for WebGL1-class, 2 for WebGL2-class.
	Version int

	// FloatTextures reports renderable 32-bit float color textures.
	FloatTextures bool

	// HalfFloatTextures reports renderable 16-bit float color textures.
	HalfFloatTextures bool

	// DepthTextures reports samplable depth textures.
	DepthTextures bool

	// MaxSamples is the largest multisample count; 0 means no multisampling.
	MaxSamples int

	// MaxTextureSize is the largest texture dimension.
	MaxTextureSize int
}

// AtLeast2 reports whether the context is a version-2 context.
func (c Caps) AtLeast2() bool { return c.Version >= 2 }

// SamplerParams are per-texture sampling parameters.
type SamplerParams struct {
	MinFilter gputypes.FilterMode
	MagFilter gputypes.FilterMode
	Wrap      gputypes.AddressMode
}

// Context is the GPU context a framebuffer is built on: a single-threaded,
// WebGL-shaped object API with global binding points.
//
// Texture and renderbuffer calls operate on the currently bound object.
// Framebuffer attachment calls operate on the framebuffer bound to the
// given target.
type Context interface {
	// Name returns the backend identifier.
	Name() string

	// Caps returns the capability set of the context.
	Caps() Caps

	CreateTexture() Texture
	DeleteTexture(t Texture)
	BindTexture(t Texture)
	BoundTexture() Texture
	// TexImage2D allocates storage for the bound texture.
	TexImage2D(format TextureFormat, width, height int) error
	// TexParameters sets sampling parameters of the bound texture.
	TexParameters(p SamplerParams) error
	// TextureParameters returns the sampling parameters of t.
	TextureParameters(t Texture) SamplerParams

	CreateFramebuffer() Framebuffer
	DeleteFramebuffer(fb Framebuffer)
	BindFramebuffer(target FramebufferTarget, fb Framebuffer)
	BoundFramebuffer(target FramebufferTarget) Framebuffer
	FramebufferTexture2D(target FramebufferTarget, att Attachment, t Texture) error
	FramebufferRenderbuffer(target FramebufferTarget, att Attachment, rb Renderbuffer) error
	CheckFramebufferStatus(target FramebufferTarget) Status

	CreateRenderbuffer() Renderbuffer
	DeleteRenderbuffer(rb Renderbuffer)
	BindRenderbuffer(rb Renderbuffer)
	BoundRenderbuffer() Renderbuffer
	// RenderbufferStorageMultisample allocates storage for the bound renderbuffer.
	RenderbufferStorageMultisample(samples int, format InternalFormat, width, height int) error

	Viewport(r Rect)
	CurrentViewport() Rect

	// Clear fills the selected planes of the draw framebuffer.
	Clear(mask BufferMask, c gputypes.Color, depth float32) error

	// BlitFramebuffer copies the selected planes from the read framebuffer
	// to the draw framebuffer.
	BlitFramebuffer(src, dst Rect, mask BufferMask, filter gputypes.FilterMode) error

	// ReadPixels reads RGBA8 rows of the read framebuffer's color attachment
	// into dst, bottom row first.
	ReadPixels(r Rect, dst []byte) error
}
