package fbo

import "github.com/gogpu/fbo/camera"

// framebufferPolicy sizes a camera to its framebuffer and flips y, since
// texture rows run bottom to top.
type framebufferPolicy struct {
	fb *Framebuffer
}

func (p framebufferPolicy) RecomputeDefaults(c *camera.Camera) {
	c.SetDefaults(float32(p.fb.width), float32(p.fb.height))
}

func (p framebufferPolicy) ApplyFlip(c *camera.Camera) {
	c.SetScaleY(-1)
}

// DefaultCamera returns the camera Begin makes active.
func (fb *Framebuffer) DefaultCamera() *camera.Camera { return fb.defaultCamera }

// CreateCamera returns a new camera sized to the framebuffer and makes it
// the surface's active camera. The camera follows later resizes.
func (fb *Framebuffer) CreateCamera() (*camera.Camera, error) {
	if fb.removed {
		return nil, usage("create camera", ErrRemoved)
	}
	c := camera.New(framebufferPolicy{fb})
	fb.cameras = append(fb.cameras, c)
	fb.target.SetActiveCamera(c)
	fb.target.LoadTransform(c.ViewMatrix())
	return c, nil
}
