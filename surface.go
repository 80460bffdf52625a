package fbo

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/fbo/backend"
	"github.com/gogpu/fbo/camera"
)

// Surface is the drawable a framebuffer belongs to, typically the main
// canvas of an application. The framebuffer borrows the surface's GPU
// context, follows its size and density when auto-sized, and uses its
// drawing-state stack while a session is open.
//
// See integration/canvas for the implementation used with the software
// context.
type Surface interface {
	// GPU returns the context all framebuffers of this surface are built on.
	GPU() backend.Context

	// Size returns the logical size of the surface.
	Size() (width, height int)

	// PixelDensity returns the ratio of physical to logical pixels.
	PixelDensity() float64

	// Antialiased reports whether the surface itself is multisampled.
	// Framebuffers default to multisampling on antialiased surfaces.
	Antialiased() bool

	// Transparent reports whether the surface has an alpha channel.
	// Framebuffers default to RGBA on transparent surfaces and RGB otherwise.
	Transparent() bool

	// Push saves the drawing state. Pop restores the last saved state.
	Push()
	Pop()

	// ActiveCamera returns the camera draw calls are issued with.
	ActiveCamera() *camera.Camera

	// SetActiveCamera replaces the active camera.
	SetActiveCamera(c *camera.Camera)

	// LoadTransform replaces the current view transform.
	LoadTransform(m f32.Mat4)

	// Track and Untrack maintain the set of framebuffers to notify via
	// SurfaceResized when the surface changes size.
	Track(fb *Framebuffer)
	Untrack(fb *Framebuffer)
}
