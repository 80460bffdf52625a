// Package fbo manages off-screen render targets on a WebGL-shaped GPU
// context.
//
// # Overview
//
// A Framebuffer is a surface you can draw into instead of the screen and
// later sample as a texture or read back. It owns a color texture, an
// optional depth texture and, when antialiased, a multisampled twin made of
// renderbuffers that is resolved into the textures whenever drawing ends.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/fbo"
//	    "github.com/gogpu/fbo/backend"
//	    "github.com/gogpu/fbo/integration/canvas"
//	)
//
//	c, _ := canvas.New(backend.MustDefault(), 400, 300)
//	fb, _ := fbo.New(c, fbo.WithSize(256, 256), fbo.WithAntialiasSamples(4))
//
//	_ = fb.Draw(func() error {
//	    return c.Clear(gputypes.ColorRed)
//	})
//
//	img, _ := fb.Image()
//
// # Settings
//
// Requested settings are negotiated against the context's Caps before any
// GPU object is created. Unsupported combinations are downgraded, never
// rejected: float formats fall back to bytes, float depth to integer depth,
// RGB to RGBA for floating-point formats, and the sample count is clamped
// to what the context supports. Each downgrade is logged as a warning.
//
// # Sessions
//
// Begin binds the framebuffer and returns a *Session; Session.End resolves
// multisampling and restores exactly the render target and viewport that
// were bound before. Draw wraps both around a callback and ends the session
// on every path. Sessions of different framebuffers nest; beginning the
// same framebuffer twice is a *UsageError.
//
// # Sizing
//
// A framebuffer either has an explicit size (WithSize, Resize) or follows
// its surface (the default, SetAutoSized). GPU objects are sized to the
// logical size times the pixel density and rebuilt on every change. Resize
// and Remove are rejected while a session is open.
//
// # Cameras
//
// Each framebuffer has a default camera sized to it with y flipped, made
// active by Begin. CreateCamera returns additional cameras. A camera with
// default settings adopts new defaults on resize; one with an explicit
// perspective keeps it and only takes the new aspect ratio.
//
// # Logging
//
// fbo is silent by default. Call SetLogger to enable structured logging
// through log/slog.
package fbo
