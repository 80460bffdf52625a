package fbo

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/fbo/backend"
)

// Property selects one texture of a framebuffer.
type Property uint8

const (
	PropertyColor Property = iota
	PropertyDepth
)

// String returns the property name.
func (p Property) String() string {
	switch p {
	case PropertyColor:
		return "color"
	case PropertyDepth:
		return "depth"
	default:
		return fmt.Sprintf("Property(%d)", p)
	}
}

// TextureView exposes one texture of a framebuffer to whatever binds it
// for sampling. A view does not own the texture: Texture always returns the
// framebuffer's current handle, which changes on every resize and is zero
// after Remove.
type TextureView struct {
	fb   *Framebuffer
	prop Property
}

// Framebuffer returns the framebuffer the view belongs to.
func (v *TextureView) Framebuffer() *Framebuffer { return v.fb }

// Property returns which texture the view refers to.
func (v *TextureView) Property() Property { return v.prop }

// Width returns the physical width of the texture.
func (v *TextureView) Width() int {
	w, _ := v.fb.PhysicalSize()
	return w
}

// Height returns the physical height of the texture.
func (v *TextureView) Height() int {
	_, h := v.fb.PhysicalSize()
	return h
}

// Texture returns the current GPU texture.
func (v *TextureView) Texture() backend.Texture {
	if v.prop == PropertyDepth {
		return v.fb.handles.DepthTexture
	}
	return v.fb.handles.ColorTexture
}

// Format returns the texture's format in WebGPU terms.
func (v *TextureView) Format() gputypes.TextureFormat {
	if v.prop == PropertyDepth {
		return depthFormat(v.fb.cfg, v.fb.caps).GPUFormat()
	}
	return colorFormat(v.fb.cfg, v.fb.caps).GPUFormat()
}

// Filter returns the magnification filter samplers should use.
func (v *TextureView) Filter() gputypes.FilterMode {
	if v.prop == PropertyDepth {
		return gputypes.FilterModeNearest
	}
	return v.fb.filter
}

var _ gpucontext.Texture = (*TextureView)(nil)
