// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/fbo"
	"github.com/gogpu/fbo/backend"
	"github.com/gogpu/fbo/camera"
)

func newSoftware() *backend.Software {
	return backend.NewSoftware(backend.DefaultSoftwareConfig())
}

// TestNew tests canvas creation.
func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		gl        backend.Context
		width     int
		height    int
		opts      []Option
		wantErr   error
		checkFunc func(*testing.T, *Canvas)
	}{
		{
			name:   "valid creation",
			gl:     newSoftware(),
			width:  800,
			height: 600,
			checkFunc: func(t *testing.T, c *Canvas) {
				if c.Width() != 800 || c.Height() != 600 {
					t.Errorf("Size() = %dx%d, want 800x600", c.Width(), c.Height())
				}
				if c.PixelDensity() != 1 {
					t.Errorf("PixelDensity() = %v, want 1", c.PixelDensity())
				}
				if !c.Transparent() {
					t.Error("Transparent() = false, want true by default")
				}
				if c.ActiveCamera() != c.DefaultCamera() {
					t.Error("ActiveCamera() should start as the default camera")
				}
				if c.Provider() == nil {
					t.Error("Provider() = nil, want the software context")
				}
			},
		},
		{
			name:   "options",
			gl:     newSoftware(),
			width:  100,
			height: 50,
			opts:   []Option{WithPixelDensity(2), WithAntialias(true), WithTransparent(false)},
			checkFunc: func(t *testing.T, c *Canvas) {
				if w, h := c.PhysicalSize(); w != 200 || h != 100 {
					t.Errorf("PhysicalSize() = %dx%d, want 200x100", w, h)
				}
				if !c.Antialiased() || c.Transparent() {
					t.Errorf("Antialiased/Transparent = %v/%v, want true/false", c.Antialiased(), c.Transparent())
				}
				if got := c.GPU().CurrentViewport(); got.Width != 200 || got.Height != 100 {
					t.Errorf("screen viewport = %+v, want 200x100", got)
				}
			},
		},
		{
			name:    "nil context",
			width:   800,
			height:  600,
			wantErr: ErrNilContext,
		},
		{
			name:    "zero width",
			gl:      newSoftware(),
			width:   0,
			height:  600,
			wantErr: ErrInvalidDimensions,
		},
		{
			name:    "negative density",
			gl:      newSoftware(),
			width:   10,
			height:  10,
			opts:    []Option{WithPixelDensity(-1)},
			wantErr: ErrInvalidDimensions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.gl, tt.width, tt.height, tt.opts...)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error = %v", err)
			}
			defer c.Close()

			if tt.checkFunc != nil {
				tt.checkFunc(t, c)
			}
		})
	}
}

// TestMustNew tests panic behavior.
func TestMustNew(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("MustNew() panicked: %v", r)
			}
		}()
		c := MustNew(newSoftware(), 10, 10)
		_ = c.Close()
	})

	t.Run("panic on error", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("MustNew() should panic on invalid dimensions")
			}
		}()
		MustNew(newSoftware(), 0, 0)
	})
}

func TestPushPop(t *testing.T) {
	c := MustNew(newSoftware(), 100, 100)
	defer c.Close()

	other := camera.New(nil)
	m := f32.Mat4{2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 1}

	c.Push()
	c.SetActiveCamera(other)
	c.LoadTransform(m)
	if c.ActiveCamera() != other || c.Transform() != m {
		t.Fatal("SetActiveCamera/LoadTransform did not take effect")
	}
	if c.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", c.Depth())
	}

	c.Pop()
	if c.ActiveCamera() != c.DefaultCamera() {
		t.Error("Pop() should restore the default camera")
	}
	if c.Transform() != c.DefaultCamera().ViewMatrix() {
		t.Error("Pop() should restore the default transform")
	}

	// Unbalanced pop is ignored.
	c.Pop()
	if c.Depth() != 0 {
		t.Errorf("Depth() = %d after unbalanced Pop, want 0", c.Depth())
	}

	c.SetActiveCamera(nil)
	if c.ActiveCamera() != c.DefaultCamera() {
		t.Error("SetActiveCamera(nil) should select the default camera")
	}
}

func TestResize(t *testing.T) {
	gl := newSoftware()
	c := MustNew(gl, 100, 100)
	defer c.Close()

	tests := []struct {
		name          string
		width, height int
		wantErr       error
	}{
		{"grow", 200, 150, nil},
		{"same size", 200, 150, nil},
		{"zero", 0, 100, ErrInvalidDimensions},
		{"negative", 100, -5, ErrInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Resize(tt.width, tt.height)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Resize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if w, h := c.Size(); w != 200 || h != 150 {
		t.Errorf("Size() = %dx%d, want 200x150", w, h)
	}
	if got := gl.CurrentViewport(); got.Width != 200 || got.Height != 150 {
		t.Errorf("screen viewport = %+v, want 200x150", got)
	}
	if got := c.DefaultCamera().Aspect(); got < 1.33 || got > 1.34 {
		t.Errorf("camera aspect = %v, want 4/3", got)
	}
}

func TestResizeNotifiesAutoSizedFramebuffers(t *testing.T) {
	c := MustNew(newSoftware(), 100, 80, WithPixelDensity(2))
	defer c.Close()

	auto, err := c.CreateFramebuffer(fbo.WithRegistry(fbo.NewTextureRegistry()))
	if err != nil {
		t.Fatalf("CreateFramebuffer() error = %v", err)
	}
	fixed, err := c.CreateFramebuffer(fbo.WithSize(32, 32), fbo.WithRegistry(fbo.NewTextureRegistry()))
	if err != nil {
		t.Fatalf("CreateFramebuffer() error = %v", err)
	}
	if len(c.Framebuffers()) != 2 {
		t.Fatalf("Framebuffers() = %d, want 2", len(c.Framebuffers()))
	}

	if err := c.Resize(60, 40); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if w, h := auto.Size(); w != 60 || h != 40 {
		t.Errorf("auto-sized framebuffer = %dx%d, want 60x40", w, h)
	}
	if w, h := fixed.Size(); w != 32 || h != 32 {
		t.Errorf("fixed framebuffer = %dx%d, want 32x32", w, h)
	}

	if err := c.SetPixelDensity(1); err != nil {
		t.Fatalf("SetPixelDensity() error = %v", err)
	}
	if auto.PixelDensity() != 1 {
		t.Errorf("auto-sized density = %v, want 1", auto.PixelDensity())
	}
	if fixed.PixelDensity() != 2 {
		t.Errorf("fixed density = %v, want 2", fixed.PixelDensity())
	}
}

func TestTrackUntrack(t *testing.T) {
	c := MustNew(newSoftware(), 10, 10)
	defer c.Close()

	fb, err := c.CreateFramebuffer(fbo.WithRegistry(fbo.NewTextureRegistry()))
	if err != nil {
		t.Fatalf("CreateFramebuffer() error = %v", err)
	}
	c.Track(fb) // duplicate is ignored
	if len(c.Framebuffers()) != 1 {
		t.Errorf("Framebuffers() = %d, want 1", len(c.Framebuffers()))
	}
	if err := fb.Remove(); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if len(c.Framebuffers()) != 0 {
		t.Errorf("Framebuffers() = %d after Remove, want 0", len(c.Framebuffers()))
	}
}

func TestClear(t *testing.T) {
	gl := newSoftware()
	c := MustNew(gl, 2, 2)
	defer c.Close()

	if err := c.Clear(gputypes.ColorGreen); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	buf := make([]byte, 2*2*4)
	if err := gl.ReadPixels(backend.Rect{Width: 2, Height: 2}, buf); err != nil {
		t.Fatalf("ReadPixels() error = %v", err)
	}
	if buf[1] != 255 || buf[0] != 0 {
		t.Errorf("screen pixel = %v, want green", buf[:4])
	}
}

func TestClose(t *testing.T) {
	gl := newSoftware()
	c := MustNew(gl, 10, 10)

	fb, err := c.CreateFramebuffer(fbo.WithRegistry(fbo.NewTextureRegistry()))
	if err != nil {
		t.Fatalf("CreateFramebuffer() error = %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !fb.Removed() {
		t.Error("Close() should remove tracked framebuffers")
	}
	if live := gl.Stats().Live(); live != 0 {
		t.Errorf("live GPU objects after Close = %d, want 0", live)
	}

	// Idempotent.
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if c.GPU() != nil {
		t.Error("GPU() should be nil after Close")
	}
	if _, err := c.CreateFramebuffer(); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("CreateFramebuffer() after Close error = %v, want ErrCanvasClosed", err)
	}
	if err := c.Resize(20, 20); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("Resize() after Close error = %v, want ErrCanvasClosed", err)
	}
}

func TestCloseWithOpenSession(t *testing.T) {
	gl := newSoftware()
	c := MustNew(gl, 10, 10)

	open, err := c.CreateFramebuffer(fbo.WithRegistry(fbo.NewTextureRegistry()))
	if err != nil {
		t.Fatalf("CreateFramebuffer() error = %v", err)
	}
	idle, err := c.CreateFramebuffer(fbo.WithRegistry(fbo.NewTextureRegistry()))
	if err != nil {
		t.Fatalf("CreateFramebuffer() error = %v", err)
	}
	s, err := open.Begin()
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	if err := c.Close(); !errors.Is(err, fbo.ErrSessionActive) {
		t.Fatalf("Close() error = %v, want ErrSessionActive", err)
	}
	if !idle.Removed() {
		t.Error("Close() should remove framebuffers without a session")
	}
	if fbs := c.Framebuffers(); len(fbs) != 1 || fbs[0] != open {
		t.Errorf("Framebuffers() = %v, want only the framebuffer in session", fbs)
	}
	if c.GPU() == nil {
		t.Error("canvas should stay open while a framebuffer could not be removed")
	}

	if err := s.End(); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if live := gl.Stats().Live(); live != 0 {
		t.Errorf("live GPU objects after Close = %d, want 0", live)
	}
}
