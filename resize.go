package fbo

import (
	"fmt"
	"math"
)

// Resize sets an explicit logical size and stops following the surface.
// All GPU objects are recreated, even when the size is unchanged.
func (fb *Framebuffer) Resize(width, height int) error {
	if err := fb.checkMutable("resize"); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	fb.autoSized = false
	return fb.rebuild(width, height, fb.density)
}

// SetPixelDensity sets the density and stops following the surface.
// All GPU objects are recreated.
func (fb *Framebuffer) SetPixelDensity(density float64) error {
	if err := fb.checkMutable("set pixel density"); err != nil {
		return err
	}
	if density <= 0 || math.IsNaN(density) || math.IsInf(density, 0) {
		return fmt.Errorf("%w: density %v", ErrInvalidDimensions, density)
	}
	fb.autoSized = false
	return fb.rebuild(fb.width, fb.height, density)
}

// SetAutoSized switches surface tracking on or off. Turning it on adopts
// the surface's size and density immediately.
func (fb *Framebuffer) SetAutoSized(auto bool) error {
	if err := fb.checkMutable("set auto-sized"); err != nil {
		return err
	}
	fb.autoSized = auto
	if !auto {
		return nil
	}
	w, h := fb.target.Size()
	return fb.rebuild(w, h, surfaceDensity(fb.target))
}

// SurfaceResized is called by the surface after it changed size or
// density. It is ignored unless the framebuffer is auto-sized.
func (fb *Framebuffer) SurfaceResized() error {
	if !fb.autoSized || fb.removed {
		return nil
	}
	if fb.session != nil {
		return usage("surface resized", ErrSessionActive)
	}
	w, h := fb.target.Size()
	return fb.rebuild(w, h, surfaceDensity(fb.target))
}

// rebuild tears down every GPU object, adopts the new size and density,
// allocates again and updates the cameras. Sizes the context cannot hold
// are rejected before anything is torn down.
func (fb *Framebuffer) rebuild(width, height int, density float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if err := fb.checkLimit(width, height, density); err != nil {
		return err
	}

	fb.unregisterViews()
	fb.release(fb.handles)
	fb.handles = Handles{}

	fb.width, fb.height, fb.density = width, height, density
	if err := fb.allocate(); err != nil {
		return err
	}
	fb.registerViews()

	fb.defaultCamera.Resize()
	for _, c := range fb.cameras {
		c.Resize()
	}

	pw, ph := fb.PhysicalSize()
	Logger().Info("fbo: framebuffer resized",
		"id", fb.id, "size", fmt.Sprintf("%dx%d", width, height),
		"density", density, "physical", fmt.Sprintf("%dx%d", pw, ph))
	return nil
}
