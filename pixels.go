package fbo

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/fbo/backend"
)

// ReadPixels reads the color texture at physical size. Rows are returned
// top to bottom, the reverse of the GPU's row order.
//
// ReadPixels is not allowed during a session, since the multisampled
// contents have not been resolved yet.
func (fb *Framebuffer) ReadPixels() (*image.RGBA, error) {
	if err := fb.checkMutable("read pixels"); err != nil {
		return nil, err
	}

	gl := fb.gl
	prev := gl.BoundFramebuffer(backend.TargetReadFramebuffer)
	defer gl.BindFramebuffer(backend.TargetReadFramebuffer, prev)
	gl.BindFramebuffer(backend.TargetReadFramebuffer, fb.handles.Framebuffer)

	w, h := fb.PhysicalSize()
	buf := make([]byte, w*h*4)
	if err := gl.ReadPixels(backend.Rect{Width: w, Height: h}, buf); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	stride := w * 4
	for y := 0; y < h; y++ {
		src := buf[(h-1-y)*stride : (h-y)*stride]
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], src)
	}
	return img, nil
}

// Image returns the color texture scaled to the logical size. When the
// density is 1 it is the same as ReadPixels. Nearest filtering scales with
// nearest-neighbor sampling and linear filtering with bilinear sampling.
func (fb *Framebuffer) Image() (*image.RGBA, error) {
	src, err := fb.ReadPixels()
	if err != nil {
		return nil, err
	}
	if src.Bounds().Dx() == fb.width && src.Bounds().Dy() == fb.height {
		return src, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	var scaler draw.Scaler = draw.ApproxBiLinear
	if fb.filter == FilterNearest {
		scaler = draw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}
