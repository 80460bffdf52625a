package fbo

import (
	"errors"
	"fmt"

	"github.com/gogpu/fbo/backend"
)

// Session is an open drawing session on a framebuffer. While it is open,
// draw calls on the surface render into the framebuffer. End restores the
// render target and viewport that were bound when the session began.
//
// A framebuffer has at most one open session. Sessions of different
// framebuffers nest: ending the inner one restores the outer one's target.
type Session struct {
	fb       *Framebuffer
	prevDraw backend.Framebuffer
	prevRead backend.Framebuffer
	prevView backend.Rect
	ended    bool
}

// Begin opens a drawing session. It binds the multisampled framebuffer when
// antialiasing and the primary framebuffer otherwise, sets the viewport to
// the physical size, pushes the surface's drawing state and makes the
// default camera active with its view matrix loaded.
//
// Begin returns a *UsageError wrapping ErrSessionActive if a session is
// already open.
func (fb *Framebuffer) Begin() (*Session, error) {
	if fb.removed {
		return nil, usage("begin", ErrRemoved)
	}
	if fb.session != nil {
		return nil, usage("begin", ErrSessionActive)
	}
	if fb.handles.Framebuffer == 0 {
		return nil, fmt.Errorf("begin: %w: no GPU objects", ErrResourceCreation)
	}

	gl := fb.gl
	s := &Session{
		fb:       fb,
		prevDraw: gl.BoundFramebuffer(backend.TargetDrawFramebuffer),
		prevRead: gl.BoundFramebuffer(backend.TargetReadFramebuffer),
		prevView: gl.CurrentViewport(),
	}

	gl.BindFramebuffer(backend.TargetFramebuffer, fb.renderTarget())
	w, h := fb.PhysicalSize()
	gl.Viewport(backend.Rect{Width: w, Height: h})

	fb.target.Push()
	fb.target.SetActiveCamera(fb.defaultCamera)
	fb.target.LoadTransform(fb.defaultCamera.ViewMatrix())

	fb.session = s
	Logger().Debug("fbo: begin", "id", fb.id, "previous", s.prevDraw)
	return s, nil
}

// renderTarget returns the framebuffer draw calls go to.
func (fb *Framebuffer) renderTarget() backend.Framebuffer {
	if fb.cfg.Antialias() {
		return fb.handles.AntialiasFramebuffer
	}
	return fb.handles.Framebuffer
}

// End closes the session: it resolves multisampling, restores the previous
// render target and viewport, and pops the surface's drawing state.
// The restore happens even when the resolve fails.
//
// Ending a session twice returns a *UsageError wrapping ErrNotActive.
func (s *Session) End() error {
	if s.ended {
		return usage("end", ErrNotActive)
	}
	s.ended = true
	fb := s.fb
	fb.session = nil

	var err error
	if fb.cfg.Antialias() {
		err = fb.resolve()
	}

	gl := fb.gl
	gl.BindFramebuffer(backend.TargetDrawFramebuffer, s.prevDraw)
	gl.BindFramebuffer(backend.TargetReadFramebuffer, s.prevRead)
	gl.Viewport(s.prevView)
	fb.target.Pop()

	Logger().Debug("fbo: end", "id", fb.id, "restored", s.prevDraw)
	if err != nil {
		return fmt.Errorf("fbo: end: %w", err)
	}
	return nil
}

// Framebuffer returns the framebuffer the session draws into.
func (s *Session) Framebuffer() *Framebuffer { return s.fb }

// End closes the open session. Without one it returns a *UsageError
// wrapping ErrNotActive.
func (fb *Framebuffer) End() error {
	if fb.session == nil {
		return usage("end", ErrNotActive)
	}
	return fb.session.End()
}

// Draw runs fn inside a session. The session is ended even when fn returns
// an error or panics; errors from fn and from ending are joined.
func (fb *Framebuffer) Draw(fn func() error) (err error) {
	s, err := fb.Begin()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.End())
	}()
	return fn()
}
