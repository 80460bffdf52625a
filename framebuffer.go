package fbo

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/fbo/backend"
	"github.com/gogpu/fbo/camera"
)

// nextID numbers framebuffers for registry keys and log output.
var nextID atomic.Uint64

// Handles are the GPU objects owned by a framebuffer. Zero values name no
// object.
type Handles struct {
	Framebuffer          backend.Framebuffer
	AntialiasFramebuffer backend.Framebuffer
	ColorTexture         backend.Texture
	DepthTexture         backend.Texture
	ColorRenderbuffer    backend.Renderbuffer
	DepthRenderbuffer    backend.Renderbuffer
}

// Framebuffer is an off-screen render target: a color texture, an optional
// depth texture and, when antialiased, a multisampled twin that is resolved
// into them at the end of every session.
//
// All GPU objects are sized to the logical size times the pixel density and
// are recreated on every size or density change.
//
// Framebuffer is NOT safe for concurrent use, like the GPU context it
// wraps.
type Framebuffer struct {
	id       uint64
	target   Surface
	gl       backend.Context
	caps     backend.Caps
	cfg      Config
	filter   gputypes.FilterMode
	registry *TextureRegistry

	width     int
	height    int
	density   float64
	autoSized bool

	handles Handles
	color   *TextureView
	depth   *TextureView

	defaultCamera *camera.Camera
	cameras       []*camera.Camera

	session *Session
	removed bool
}

// New creates a framebuffer on target and allocates its GPU objects.
//
// Settings the GPU context cannot honor are downgraded with a warning on
// Logger(). GPU object creation failures are returned wrapping
// ErrResourceCreation; no framebuffer is returned in that case and no GPU
// object is left behind.
func New(target Surface, opts ...Option) (*Framebuffer, error) {
	if target == nil {
		return nil, ErrNilSurface
	}
	gl := target.GPU()
	if gl == nil {
		return nil, ErrNilContext
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !o.channelsSet {
		o.cfg.Channels = ChannelsRGB
		if target.Transparent() {
			o.cfg.Channels = ChannelsRGBA
		}
	}
	if !o.samplesSet && target.Antialiased() {
		o.cfg.Samples = DefaultAntialiasSamples
	}
	if o.width < 0 || o.height < 0 || o.density < 0 || math.IsNaN(o.density) || math.IsInf(o.density, 0) {
		return nil, fmt.Errorf("%w: width=%d height=%d density=%v", ErrInvalidDimensions, o.width, o.height, o.density)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}

	fb := &Framebuffer{
		id:       nextID.Add(1),
		target:   target,
		gl:       gl,
		caps:     gl.Caps(),
		filter:   o.filter,
		registry: o.registry,
		density:  o.density,
	}
	if fb.density == 0 {
		fb.density = surfaceDensity(target)
	}

	switch {
	case o.width > 0 && o.height > 0:
		fb.width, fb.height = o.width, o.height
	case o.width > 0 || o.height > 0:
		Logger().Warn("fbo: width and height must be set together, using surface size",
			"width", o.width, "height", o.height)
		fallthrough
	default:
		fb.autoSized = true
		fb.width, fb.height = target.Size()
	}
	if fb.width <= 0 || fb.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, fb.width, fb.height)
	}
	if err := fb.checkLimit(fb.width, fb.height, fb.density); err != nil {
		return nil, err
	}

	var downgrades []Downgrade
	fb.cfg, downgrades = Negotiate(o.cfg, fb.caps)
	for _, d := range downgrades {
		Logger().Warn("fbo: setting not supported, falling back",
			"setting", d.Setting, "requested", d.From, "using", d.To, "backend", gl.Name())
	}

	fb.color = &TextureView{fb: fb, prop: PropertyColor}
	if fb.cfg.Depth {
		fb.depth = &TextureView{fb: fb, prop: PropertyDepth}
	}

	if err := fb.allocate(); err != nil {
		return nil, err
	}
	fb.registerViews()

	fb.defaultCamera = camera.New(framebufferPolicy{fb})
	target.Track(fb)

	pw, ph := fb.PhysicalSize()
	Logger().Info("fbo: framebuffer created",
		"id", fb.id, "size", fmt.Sprintf("%dx%d", fb.width, fb.height),
		"physical", fmt.Sprintf("%dx%d", pw, ph), "config", fb.cfg.String())
	return fb, nil
}

// surfaceDensity returns the surface density, or 1 if it reports none.
func surfaceDensity(s Surface) float64 {
	if d := s.PixelDensity(); d > 0 {
		return d
	}
	return 1
}

// checkLimit rejects sizes whose physical extent exceeds the context's
// maximum texture size.
func (fb *Framebuffer) checkLimit(width, height int, density float64) error {
	w, h := physicalSize(width, density), physicalSize(height, density)
	if limit := fb.caps.MaxTextureSize; limit > 0 && (w > limit || h > limit) {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidDimensions, w, h, limit)
	}
	return nil
}

// physicalSize is ceil(size * density), at least 1.
func physicalSize(size int, density float64) int {
	return max(int(math.Ceil(float64(size)*density)), 1)
}

// ID returns the process-unique framebuffer number.
func (fb *Framebuffer) ID() uint64 { return fb.id }

// Surface returns the surface the framebuffer belongs to.
func (fb *Framebuffer) Surface() Surface { return fb.target }

// Width returns the logical width.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the logical height.
func (fb *Framebuffer) Height() int { return fb.height }

// Size returns the logical size.
func (fb *Framebuffer) Size() (width, height int) { return fb.width, fb.height }

// PhysicalSize returns the size of the GPU objects.
func (fb *Framebuffer) PhysicalSize() (width, height int) {
	return physicalSize(fb.width, fb.density), physicalSize(fb.height, fb.density)
}

// PixelDensity returns the ratio of physical to logical pixels.
func (fb *Framebuffer) PixelDensity() float64 { return fb.density }

// AutoSized reports whether the framebuffer follows its surface's size.
func (fb *Framebuffer) AutoSized() bool { return fb.autoSized }

// Config returns the negotiated settings.
func (fb *Framebuffer) Config() Config { return fb.cfg }

// Format returns the negotiated color component type.
func (fb *Framebuffer) Format() Format { return fb.cfg.Format }

// Channels returns the negotiated color layout.
func (fb *Framebuffer) Channels() Channels { return fb.cfg.Channels }

// UseDepth reports whether the framebuffer has a depth attachment.
func (fb *Framebuffer) UseDepth() bool { return fb.cfg.Depth }

// DepthFormat returns the negotiated depth component type.
func (fb *Framebuffer) DepthFormat() DepthFormat { return fb.cfg.DepthFormat }

// Antialias reports whether the framebuffer is multisampled.
func (fb *Framebuffer) Antialias() bool { return fb.cfg.Antialias() }

// AntialiasSamples returns the negotiated sample count.
func (fb *Framebuffer) AntialiasSamples() int { return fb.cfg.Samples }

// TextureFiltering returns the color texture filter.
func (fb *Framebuffer) TextureFiltering() gputypes.FilterMode { return fb.filter }

// Handles returns the GPU objects currently owned by the framebuffer.
func (fb *Framebuffer) Handles() Handles { return fb.handles }

// Color returns the view of the color texture.
func (fb *Framebuffer) Color() *TextureView { return fb.color }

// Depth returns the view of the depth texture, or nil without depth.
func (fb *Framebuffer) Depth() *TextureView { return fb.depth }

// Active reports whether a drawing session is open.
func (fb *Framebuffer) Active() bool { return fb.session != nil }

// Removed reports whether Remove has been called.
func (fb *Framebuffer) Removed() bool { return fb.removed }

// Remove deletes every GPU object of the framebuffer and detaches it from
// its surface. Calling Remove during a session or a second time returns a
// *UsageError.
func (fb *Framebuffer) Remove() error {
	if fb.removed {
		return usage("remove", ErrRemoved)
	}
	if fb.session != nil {
		return usage("remove", ErrSessionActive)
	}
	fb.unregisterViews()
	fb.release(fb.handles)
	fb.handles = Handles{}
	fb.removed = true
	fb.target.Untrack(fb)
	Logger().Info("fbo: framebuffer removed", "id", fb.id)
	return nil
}

// checkMutable guards operations that recreate GPU objects.
func (fb *Framebuffer) checkMutable(op string) error {
	if fb.removed {
		return usage(op, ErrRemoved)
	}
	if fb.session != nil {
		return usage(op, ErrSessionActive)
	}
	return nil
}
