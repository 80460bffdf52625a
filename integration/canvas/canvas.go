// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/fbo"
	"github.com/gogpu/fbo/backend"
	"github.com/gogpu/fbo/camera"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("canvas: canvas is closed")

	// ErrInvalidDimensions is returned when width, height or density is invalid.
	ErrInvalidDimensions = errors.New("canvas: invalid dimensions")

	// ErrNilContext is returned when a nil GPU context is passed.
	ErrNilContext = errors.New("canvas: nil GPU context")
)

// screenResizer is implemented by contexts whose default framebuffer can
// be resized, such as backend.Software.
type screenResizer interface {
	ResizeScreen(width, height int)
}

// state is one entry of the drawing-state stack.
type state struct {
	camera    *camera.Camera
	transform f32.Mat4
}

// Canvas is the main drawing surface of an application. It owns the
// default framebuffer of a GPU context and implements fbo.Surface, so
// off-screen framebuffers can be created on it.
//
// Canvas is NOT safe for concurrent use. Create one Canvas per goroutine,
// or use external synchronization.
type Canvas struct {
	gl          backend.Context
	width       int
	height      int
	density     float64
	antialias   bool
	transparent bool

	defaultCamera *camera.Camera
	camera        *camera.Camera
	transform     f32.Mat4
	stack         []state

	tracked []*fbo.Framebuffer
	closed  bool
}

// Option configures a Canvas during creation.
type Option func(*Canvas)

// WithPixelDensity sets the ratio of physical to logical pixels. Default 1.
func WithPixelDensity(d float64) Option {
	return func(c *Canvas) {
		c.density = d
	}
}

// WithAntialias marks the canvas as multisampled. Framebuffers created on
// an antialiased canvas are multisampled by default.
func WithAntialias(enabled bool) Option {
	return func(c *Canvas) {
		c.antialias = enabled
	}
}

// WithTransparent marks the canvas as having an alpha channel. Framebuffers
// created on a transparent canvas default to RGBA.
func WithTransparent(enabled bool) Option {
	return func(c *Canvas) {
		c.transparent = enabled
	}
}

// New creates a Canvas on gl with the given logical size.
//
// Returns error if dimensions are invalid or gl is nil.
func New(gl backend.Context, width, height int, opts ...Option) (*Canvas, error) {
	if gl == nil {
		return nil, ErrNilContext
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	c := &Canvas{
		gl:          gl,
		width:       width,
		height:      height,
		density:     1,
		transparent: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.density <= 0 || math.IsNaN(c.density) || math.IsInf(c.density, 0) {
		return nil, fmt.Errorf("%w: density=%v", ErrInvalidDimensions, c.density)
	}

	c.resizeScreen()
	c.defaultCamera = camera.New(canvasPolicy{c})
	c.camera = c.defaultCamera
	c.transform = c.defaultCamera.ViewMatrix()
	return c, nil
}

// MustNew is like New but panics on error.
// Use only when errors are programming mistakes (e.g., hardcoded dimensions).
func MustNew(gl backend.Context, width, height int, opts ...Option) *Canvas {
	c, err := New(gl, width, height, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// GPU returns the GPU context, or nil if the canvas is closed.
func (c *Canvas) GPU() backend.Context {
	if c.closed {
		return nil
	}
	return c.gl
}

// Provider returns the context as a gpucontext.DeviceProvider if it is one.
// Returns nil if the canvas is closed.
func (c *Canvas) Provider() gpucontext.DeviceProvider {
	if c.closed {
		return nil
	}
	p, _ := c.gl.(gpucontext.DeviceProvider)
	return p
}

// Width returns the logical canvas width.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the logical canvas height.
func (c *Canvas) Height() int {
	return c.height
}

// Size returns width and height as a convenience.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// PhysicalSize returns the size of the default framebuffer in pixels.
func (c *Canvas) PhysicalSize() (width, height int) {
	return int(math.Ceil(float64(c.width) * c.density)), int(math.Ceil(float64(c.height) * c.density))
}

// PixelDensity returns the ratio of physical to logical pixels.
func (c *Canvas) PixelDensity() float64 {
	return c.density
}

// Antialiased reports whether the canvas is multisampled.
func (c *Canvas) Antialiased() bool {
	return c.antialias
}

// Transparent reports whether the canvas has an alpha channel.
func (c *Canvas) Transparent() bool {
	return c.transparent
}

// Push saves the active camera and transform.
func (c *Canvas) Push() {
	c.stack = append(c.stack, state{camera: c.camera, transform: c.transform})
}

// Pop restores the camera and transform saved by the matching Push.
// An unbalanced Pop is logged and ignored.
func (c *Canvas) Pop() {
	if len(c.stack) == 0 {
		fbo.Logger().Warn("canvas: pop without matching push")
		return
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.camera, c.transform = top.camera, top.transform
}

// Depth returns the number of saved drawing states.
func (c *Canvas) Depth() int {
	return len(c.stack)
}

// ActiveCamera returns the camera draw calls are issued with.
func (c *Canvas) ActiveCamera() *camera.Camera {
	return c.camera
}

// SetActiveCamera replaces the active camera. Nil selects the canvas's
// default camera.
func (c *Canvas) SetActiveCamera(cam *camera.Camera) {
	if cam == nil {
		cam = c.defaultCamera
	}
	c.camera = cam
}

// DefaultCamera returns the canvas's own camera.
func (c *Canvas) DefaultCamera() *camera.Camera {
	return c.defaultCamera
}

// LoadTransform replaces the current view transform.
func (c *Canvas) LoadTransform(m f32.Mat4) {
	c.transform = m
}

// Transform returns the current view transform.
func (c *Canvas) Transform() f32.Mat4 {
	return c.transform
}

// Track adds fb to the set of framebuffers notified on resize.
func (c *Canvas) Track(fb *fbo.Framebuffer) {
	if fb == nil || slices.Contains(c.tracked, fb) {
		return
	}
	c.tracked = append(c.tracked, fb)
}

// Untrack removes fb from the set of framebuffers notified on resize.
func (c *Canvas) Untrack(fb *fbo.Framebuffer) {
	c.tracked = slices.DeleteFunc(c.tracked, func(t *fbo.Framebuffer) bool { return t == fb })
}

// Framebuffers returns the tracked framebuffers in creation order.
func (c *Canvas) Framebuffers() []*fbo.Framebuffer {
	return slices.Clone(c.tracked)
}

// CreateFramebuffer creates a framebuffer on this canvas.
func (c *Canvas) CreateFramebuffer(opts ...fbo.Option) (*fbo.Framebuffer, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}
	return fbo.New(c, opts...)
}

// Resize changes the logical canvas size, resizes the default framebuffer
// and notifies auto-sized framebuffers.
//
// Returns error if dimensions are invalid or canvas is closed. Errors from
// framebuffers are joined; every framebuffer is notified regardless.
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	// No-op if dimensions haven't changed
	if c.width == width && c.height == height {
		return nil
	}

	c.width = width
	c.height = height
	return c.changed()
}

// SetPixelDensity changes the density, resizes the default framebuffer and
// notifies auto-sized framebuffers.
func (c *Canvas) SetPixelDensity(d float64) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return fmt.Errorf("%w: density=%v", ErrInvalidDimensions, d)
	}
	if c.density == d {
		return nil
	}
	c.density = d
	return c.changed()
}

func (c *Canvas) changed() error {
	c.resizeScreen()
	c.defaultCamera.Resize()
	if c.camera == c.defaultCamera {
		c.transform = c.defaultCamera.ViewMatrix()
	}

	var errs []error
	for _, fb := range slices.Clone(c.tracked) {
		if err := fb.SurfaceResized(); err != nil {
			errs = append(errs, fmt.Errorf("canvas: framebuffer %d: %w", fb.ID(), err))
		}
	}
	fbo.Logger().Debug("canvas: resized", "width", c.width, "height", c.height, "density", c.density)
	return errors.Join(errs...)
}

func (c *Canvas) resizeScreen() {
	if r, ok := c.gl.(screenResizer); ok {
		r.ResizeScreen(c.PhysicalSize())
	}
}

// Clear fills the color and depth planes of the bound render target.
// Inside a framebuffer session this clears the framebuffer.
func (c *Canvas) Clear(col gputypes.Color) error {
	if c.closed {
		return ErrCanvasClosed
	}
	return c.gl.Clear(backend.ColorBufferBit|backend.DepthBufferBit, col, 1)
}

// Close removes all framebuffers created on the canvas.
// After Close, the Canvas should not be used.
// Close is idempotent - multiple calls are safe.
//
// If a framebuffer cannot be removed, for example because its session is
// still open, it stays tracked, the canvas stays open and the errors are
// returned. Close can be called again once the sessions have ended.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	var errs []error
	for _, fb := range slices.Clone(c.tracked) {
		if err := fb.Remove(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	c.closed = true
	c.tracked = nil
	return nil
}

// canvasPolicy sizes the default camera to the canvas. The canvas is not
// flipped.
type canvasPolicy struct {
	c *Canvas
}

func (p canvasPolicy) RecomputeDefaults(cam *camera.Camera) {
	cam.SetDefaults(float32(p.c.width), float32(p.c.height))
}

func (p canvasPolicy) ApplyFlip(cam *camera.Camera) {
	cam.SetScaleY(1)
}

var _ fbo.Surface = (*Canvas)(nil)
