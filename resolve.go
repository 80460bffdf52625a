package fbo

import (
	"fmt"

	"github.com/gogpu/fbo/backend"
)

// allocateAntialias adds the multisampled framebuffer to h. It is backed by
// renderbuffers of the same size and formats as the primary attachments.
func (fb *Framebuffer) allocateAntialias(h *Handles, w, ht int) error {
	gl := fb.gl
	samples := fb.cfg.Samples

	if h.AntialiasFramebuffer = gl.CreateFramebuffer(); h.AntialiasFramebuffer == 0 {
		return creationError("antialias framebuffer", nil)
	}

	if h.ColorRenderbuffer = gl.CreateRenderbuffer(); h.ColorRenderbuffer == 0 {
		return creationError("color renderbuffer", nil)
	}
	gl.BindRenderbuffer(h.ColorRenderbuffer)
	if err := gl.RenderbufferStorageMultisample(samples, colorFormat(fb.cfg, fb.caps).Internal, w, ht); err != nil {
		return creationError("color renderbuffer", err)
	}

	if fb.cfg.Depth {
		if h.DepthRenderbuffer = gl.CreateRenderbuffer(); h.DepthRenderbuffer == 0 {
			return creationError("depth renderbuffer", nil)
		}
		gl.BindRenderbuffer(h.DepthRenderbuffer)
		if err := gl.RenderbufferStorageMultisample(samples, depthFormat(fb.cfg, fb.caps).Internal, w, ht); err != nil {
			return creationError("depth renderbuffer", err)
		}
	}

	gl.BindFramebuffer(backend.TargetFramebuffer, h.AntialiasFramebuffer)
	if err := gl.FramebufferRenderbuffer(backend.TargetFramebuffer, backend.AttachmentColor0, h.ColorRenderbuffer); err != nil {
		return creationError("antialias color attachment", err)
	}
	if fb.cfg.Depth {
		if err := gl.FramebufferRenderbuffer(backend.TargetFramebuffer, backend.AttachmentDepth, h.DepthRenderbuffer); err != nil {
			return creationError("antialias depth attachment", err)
		}
	}
	if status := gl.CheckFramebufferStatus(backend.TargetFramebuffer); status != backend.StatusComplete {
		return creationError("antialias framebuffer", fmt.Errorf("status %v", status))
	}
	return nil
}

// resolve copies the multisampled planes into the primary textures: color
// first, then depth. Each plane is filtered with its destination texture's
// magnification filter. The caller restores the framebuffer bindings.
func (fb *Framebuffer) resolve() error {
	gl := fb.gl
	h := fb.handles
	w, ht := fb.PhysicalSize()
	r := backend.Rect{Width: w, Height: ht}

	gl.BindFramebuffer(backend.TargetReadFramebuffer, h.AntialiasFramebuffer)
	gl.BindFramebuffer(backend.TargetDrawFramebuffer, h.Framebuffer)

	filter := gl.TextureParameters(h.ColorTexture).MagFilter
	if err := gl.BlitFramebuffer(r, r, backend.ColorBufferBit, filter); err != nil {
		return fmt.Errorf("resolve color: %w", err)
	}
	if fb.cfg.Depth {
		filter := gl.TextureParameters(h.DepthTexture).MagFilter
		if err := gl.BlitFramebuffer(r, r, backend.DepthBufferBit, filter); err != nil {
			return fmt.Errorf("resolve depth: %w", err)
		}
	}
	return nil
}
