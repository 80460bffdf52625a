// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas provides the on-screen drawing surface that off-screen
// framebuffers are created on.
//
// A Canvas wraps a backend.Context and its default framebuffer. It keeps
// the state framebuffers need from their owner:
//
//   - logical size and pixel density, with Resize and SetPixelDensity
//   - antialias and transparency flags used for framebuffer defaults
//   - a drawing-state stack holding the active camera and view transform
//   - the set of framebuffers to notify when the size changes
//
// # Usage
//
//	c, err := canvas.New(backend.MustDefault(), 800, 600,
//	    canvas.WithPixelDensity(2),
//	    canvas.WithAntialias(true),
//	)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	fb, err := c.CreateFramebuffer() // auto-sized to 800x600 at density 2
//	if err != nil {
//	    return err
//	}
//	err = fb.Draw(func() error {
//	    return c.Clear(gputypes.ColorBlack)
//	})
//
//	_ = c.Resize(1024, 768) // fb follows
//
// # Thread Safety
//
// Canvas is NOT safe for concurrent use. Create one Canvas per goroutine,
// or use external synchronization.
package canvas
