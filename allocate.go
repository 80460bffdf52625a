package fbo

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/fbo/backend"
)

// bindings is a snapshot of the context's binding points.
type bindings struct {
	texture      backend.Texture
	renderbuffer backend.Renderbuffer
	draw         backend.Framebuffer
	read         backend.Framebuffer
}

func saveBindings(gl backend.Context) bindings {
	return bindings{
		texture:      gl.BoundTexture(),
		renderbuffer: gl.BoundRenderbuffer(),
		draw:         gl.BoundFramebuffer(backend.TargetDrawFramebuffer),
		read:         gl.BoundFramebuffer(backend.TargetReadFramebuffer),
	}
}

func (b bindings) restore(gl backend.Context) {
	gl.BindTexture(b.texture)
	gl.BindRenderbuffer(b.renderbuffer)
	gl.BindFramebuffer(backend.TargetDrawFramebuffer, b.draw)
	gl.BindFramebuffer(backend.TargetReadFramebuffer, b.read)
}

// creationError reports a failed GPU object.
func creationError(object string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrResourceCreation, object)
	}
	return fmt.Errorf("%w: %s: %w", ErrResourceCreation, object, err)
}

// allocate creates all GPU objects at the current physical size and stores
// them in fb.handles. The context's bindings are restored on every path.
// On failure every object created here is deleted again.
func (fb *Framebuffer) allocate() (err error) {
	gl := fb.gl
	saved := saveBindings(gl)
	defer saved.restore(gl)

	var h Handles
	defer func() {
		if err != nil {
			fb.release(h)
		}
	}()

	w, ht := fb.PhysicalSize()

	if h.Framebuffer = gl.CreateFramebuffer(); h.Framebuffer == 0 {
		return creationError("framebuffer", nil)
	}

	if h.ColorTexture = gl.CreateTexture(); h.ColorTexture == 0 {
		return creationError("color texture", nil)
	}
	gl.BindTexture(h.ColorTexture)
	if err := gl.TexImage2D(colorFormat(fb.cfg, fb.caps), w, ht); err != nil {
		return creationError("color texture", err)
	}
	if err := gl.TexParameters(backend.SamplerParams{
		MinFilter: fb.filter,
		MagFilter: fb.filter,
		Wrap:      gputypes.AddressModeClampToEdge,
	}); err != nil {
		return creationError("color texture", err)
	}

	if fb.cfg.Depth {
		if h.DepthTexture = gl.CreateTexture(); h.DepthTexture == 0 {
			return creationError("depth texture", nil)
		}
		gl.BindTexture(h.DepthTexture)
		if err := gl.TexImage2D(depthFormat(fb.cfg, fb.caps), w, ht); err != nil {
			return creationError("depth texture", err)
		}
		if err := gl.TexParameters(backend.SamplerParams{
			MinFilter: gputypes.FilterModeNearest,
			MagFilter: gputypes.FilterModeNearest,
			Wrap:      gputypes.AddressModeClampToEdge,
		}); err != nil {
			return creationError("depth texture", err)
		}
	}

	gl.BindFramebuffer(backend.TargetFramebuffer, h.Framebuffer)
	if err := gl.FramebufferTexture2D(backend.TargetFramebuffer, backend.AttachmentColor0, h.ColorTexture); err != nil {
		return creationError("color attachment", err)
	}
	if fb.cfg.Depth {
		if err := gl.FramebufferTexture2D(backend.TargetFramebuffer, backend.AttachmentDepth, h.DepthTexture); err != nil {
			return creationError("depth attachment", err)
		}
	}
	if status := gl.CheckFramebufferStatus(backend.TargetFramebuffer); status != backend.StatusComplete {
		return creationError("framebuffer", fmt.Errorf("status %v", status))
	}

	if fb.cfg.Antialias() {
		if err := fb.allocateAntialias(&h, w, ht); err != nil {
			return err
		}
	}

	fb.handles = h
	Logger().Debug("fbo: allocated GPU objects",
		"id", fb.id, "width", w, "height", ht,
		"framebuffer", h.Framebuffer, "color", h.ColorTexture, "depth", h.DepthTexture,
		"antialias", h.AntialiasFramebuffer)
	return nil
}

// release deletes the objects in h. Zero handles are skipped.
func (fb *Framebuffer) release(h Handles) {
	gl := fb.gl
	if h.ColorTexture != 0 {
		gl.DeleteTexture(h.ColorTexture)
	}
	if h.DepthTexture != 0 {
		gl.DeleteTexture(h.DepthTexture)
	}
	if h.ColorRenderbuffer != 0 {
		gl.DeleteRenderbuffer(h.ColorRenderbuffer)
	}
	if h.DepthRenderbuffer != 0 {
		gl.DeleteRenderbuffer(h.DepthRenderbuffer)
	}
	if h.Framebuffer != 0 {
		gl.DeleteFramebuffer(h.Framebuffer)
	}
	if h.AntialiasFramebuffer != 0 {
		gl.DeleteFramebuffer(h.AntialiasFramebuffer)
	}
	Logger().Debug("fbo: released GPU objects", "id", fb.id)
}
