// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package camera

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// DefaultFOV is the vertical field of view of a default camera, in radians.
const DefaultFOV = math32.Pi / 3

// Policy customizes how a camera derives its defaults from whatever it
// renders into.
type Policy interface {
	// RecomputeDefaults refreshes the camera's default settings from the
	// current size of its render target, usually through SetDefaults.
	RecomputeDefaults(c *Camera)

	// ApplyFlip sets the vertical scale of the projection.
	ApplyFlip(c *Camera)
}

// Defaults are the settings a camera falls back to while it has not been
// customized.
type Defaults struct {
	FOV    float32
	Aspect float32
	EyeZ   float32
	Near   float32
	Far    float32
}

// ComputeDefaults returns the default settings for a width x height target.
//
// The eye sits on the z axis at the distance where the view frustum spans
// exactly height units at z = 0.
func ComputeDefaults(width, height float32) Defaults {
	eyeZ := height / (2 * math32.Tan(DefaultFOV/2))
	return Defaults{
		FOV:    DefaultFOV,
		Aspect: width / height,
		EyeZ:   eyeZ,
		Near:   eyeZ * 0.1,
		Far:    eyeZ * 10,
	}
}

// Camera is a perspective camera with a look-at view.
//
// A Camera is NOT safe for concurrent use.
type Camera struct {
	policy   Policy
	defaults Defaults

	fov    float32
	aspect float32
	near   float32
	far    float32
	scaleY float32

	eye    f32.Vec3
	center f32.Vec3
	up     f32.Vec3

	// customPerspective and customView record explicit Perspective and
	// LookAt calls. Resize keeps whatever the user set.
	customPerspective bool
	customView        bool

	projection f32.Mat4
	view       f32.Mat4
}

// New creates a camera with default settings obtained from p.
// A nil policy is treated as a policy that does nothing.
func New(p Policy) *Camera {
	if p == nil {
		p = nopPolicy{}
	}
	c := &Camera{policy: p, scaleY: 1}
	p.RecomputeDefaults(c)
	c.resetPerspective()
	c.resetView()
	p.ApplyFlip(c)
	c.updateProjection()
	return c
}

// SetDefaults replaces the default settings with those of a
// width x height target. Non-positive sizes are ignored.
func (c *Camera) SetDefaults(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	c.defaults = ComputeDefaults(width, height)
}

// Defaults returns the current default settings.
func (c *Camera) Defaults() Defaults { return c.defaults }

// SetScaleY sets the vertical scale applied to the projection.
func (c *Camera) SetScaleY(s float32) {
	c.scaleY = s
	c.updateProjection()
}

// ScaleY returns the vertical scale applied to the projection.
func (c *Camera) ScaleY() float32 { return c.scaleY }

// Perspective sets an explicit projection. Zero arguments fall back to
// the defaults. After Perspective the camera is no longer a default camera.
func (c *Camera) Perspective(fov, aspect, near, far float32) {
	if fov == 0 {
		fov = c.defaults.FOV
	}
	if aspect == 0 {
		aspect = c.defaults.Aspect
	}
	if near == 0 {
		near = c.defaults.Near
	}
	if far == 0 {
		far = c.defaults.Far
	}
	c.fov, c.aspect, c.near, c.far = fov, aspect, near, far
	c.customPerspective = true
	c.policy.ApplyFlip(c)
	c.updateProjection()
}

// LookAt positions the camera.
func (c *Camera) LookAt(eye, center, up f32.Vec3) {
	c.eye, c.center, c.up = eye, center, up
	c.customView = true
	c.updateView()
}

// IsDefault reports whether the projection still follows the defaults.
func (c *Camera) IsDefault() bool { return !c.customPerspective }

// Resize refreshes the camera after its render target changed size.
//
// A default camera adopts the new defaults completely. A camera with an
// explicit projection keeps its field of view and clip planes and only
// takes the new aspect ratio.
func (c *Camera) Resize() {
	c.policy.RecomputeDefaults(c)
	if c.customPerspective {
		c.aspect = c.defaults.Aspect
	} else {
		c.resetPerspective()
	}
	if !c.customView {
		c.resetView()
	}
	c.policy.ApplyFlip(c)
	c.updateProjection()
}

// FOV returns the vertical field of view in radians.
func (c *Camera) FOV() float32 { return c.fov }

// Aspect returns the width / height ratio of the projection.
func (c *Camera) Aspect() float32 { return c.aspect }

// Near returns the near clip distance.
func (c *Camera) Near() float32 { return c.near }

// Far returns the far clip distance.
func (c *Camera) Far() float32 { return c.far }

// Eye returns the camera position.
func (c *Camera) Eye() f32.Vec3 { return c.eye }

// Center returns the point the camera looks at.
func (c *Camera) Center() f32.Vec3 { return c.center }

// Up returns the up vector.
func (c *Camera) Up() f32.Vec3 { return c.up }

// ProjectionMatrix returns the perspective projection, row major.
func (c *Camera) ProjectionMatrix() f32.Mat4 { return c.projection }

// ViewMatrix returns the world-to-eye transform, row major.
func (c *Camera) ViewMatrix() f32.Mat4 { return c.view }

func (c *Camera) resetPerspective() {
	d := c.defaults
	c.fov, c.aspect, c.near, c.far = d.FOV, d.Aspect, d.Near, d.Far
}

func (c *Camera) resetView() {
	c.eye = f32.Vec3{0, 0, c.defaults.EyeZ}
	c.center = f32.Vec3{}
	c.up = f32.Vec3{0, 1, 0}
	c.updateView()
}

func (c *Camera) updateProjection() {
	c.projection = perspective(c.fov, c.aspect, c.near, c.far, c.scaleY)
}

func (c *Camera) updateView() {
	c.view = lookAt(c.eye, c.center, c.up)
}

type nopPolicy struct{}

func (nopPolicy) RecomputeDefaults(*Camera) {}
func (nopPolicy) ApplyFlip(*Camera)         {}
