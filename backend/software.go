package backend

import (
	"fmt"
	"math"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// SoftwareConfig configures a Software context.
type SoftwareConfig struct {
	// Version is the emulated API generation (1 or 2).
	Version int

	FloatTextures     bool
	HalfFloatTextures bool
	DepthTextures     bool

	// MaxSamples is the largest multisample count. Forced to 0 on version 1.
	MaxSamples int

	// MaxTextureSize bounds texture and renderbuffer dimensions.
	MaxTextureSize int

	// ScreenWidth and ScreenHeight size the default framebuffer.
	ScreenWidth  int
	ScreenHeight int
}

// DefaultSoftwareConfig returns a fully capable version-2 configuration.
func DefaultSoftwareConfig() SoftwareConfig {
	return SoftwareConfig{
		Version:           2,
		FloatTextures:     true,
		HalfFloatTextures: true,
		DepthTextures:     true,
		MaxSamples:        4,
		MaxTextureSize:    8192,
		ScreenWidth:       100,
		ScreenHeight:      100,
	}
}

// GL1SoftwareConfig returns a version-1 configuration with the common
// extension set: half-float and depth textures, no float, no multisampling.
func GL1SoftwareConfig() SoftwareConfig {
	return SoftwareConfig{
		Version:           1,
		HalfFloatTextures: true,
		DepthTextures:     true,
		MaxTextureSize:    4096,
		ScreenWidth:       100,
		ScreenHeight:      100,
	}
}

// init registers the software backends on package import.
func init() {
	Register(BackendSoftware, func() Context {
		return NewSoftware(DefaultSoftwareConfig())
	})
	Register(BackendSoftwareGL1, func() Context {
		return NewSoftware(GL1SoftwareConfig())
	})
}

// ObjectKind names a kind of GPU object for fault injection and stats.
type ObjectKind uint8

const (
	KindTexture ObjectKind = iota
	KindFramebuffer
	KindRenderbuffer
)

// String returns the object kind name.
func (k ObjectKind) String() string {
	switch k {
	case KindTexture:
		return "texture"
	case KindFramebuffer:
		return "framebuffer"
	case KindRenderbuffer:
		return "renderbuffer"
	default:
		return fmt.Sprintf("ObjectKind(%d)", k)
	}
}

// plane is the pixel storage of a texture, renderbuffer or the screen.
// Color planes hold 4 floats per pixel, depth planes hold 1.
// Row 0 is the bottom row.
type plane struct {
	width  int
	height int
	format TextureFormat
	pix    []float32
}

func newPlane(format TextureFormat, width, height int) *plane {
	n := 4
	if format.Internal.IsDepth() {
		n = 1
	}
	p := &plane{width: width, height: height, format: format, pix: make([]float32, width*height*n)}
	if n == 4 && format.Internal.Channels() == 3 {
		for i := 3; i < len(p.pix); i += 4 {
			p.pix[i] = 1
		}
	}
	return p
}

func (p *plane) isDepth() bool { return p.format.Internal.IsDepth() }

func (p *plane) stride() int {
	if p.isDepth() {
		return 1
	}
	return 4
}

func (p *plane) sizeBytes() uint64 {
	bpc := uint64(1)
	switch p.format.Type {
	case PixelTypeFloat, PixelTypeUnsignedInt:
		bpc = 4
	case PixelTypeHalfFloat, PixelTypeHalfFloatOES:
		bpc = 2
	}
	//nolint:gosec // G115: dimensions bounded by MaxTextureSize
	return uint64(p.width*p.height*p.format.Internal.Channels()) * bpc
}

// store writes one component, applying the precision of the plane.
func (p *plane) store(i int, v float32) {
	if p.format.Type == PixelTypeUnsignedByte && !p.isDepth() {
		v = float32(math.Round(float64(clamp01(v))*255) / 255)
	}
	if p.isDepth() {
		v = clamp01(v)
	}
	p.pix[i] = v
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

type softTexture struct {
	storage *plane
	params  SamplerParams
	usage   gputypes.TextureUsage
}

type softRenderbuffer struct {
	storage *plane
	samples int
}

// attachment refers to either a texture or a renderbuffer.
type attachment struct {
	tex Texture
	rb  Renderbuffer
}

func (a attachment) empty() bool { return a.tex == 0 && a.rb == 0 }

type softFramebuffer struct {
	color attachment
	depth attachment
}

// BlitRecord describes one BlitFramebuffer call.
type BlitRecord struct {
	Read   Framebuffer
	Draw   Framebuffer
	Src    Rect
	Dst    Rect
	Mask   BufferMask
	Filter gputypes.FilterMode
}

// SoftwareStats reports the live objects of a Software context.
type SoftwareStats struct {
	Textures      int
	Framebuffers  int
	Renderbuffers int

	// TextureBytes is the storage held by allocated textures and renderbuffers.
	TextureBytes uint64
}

// String returns a human-readable summary.
func (s SoftwareStats) String() string {
	return fmt.Sprintf("Objects[%d textures, %d framebuffers, %d renderbuffers, %d bytes]",
		s.Textures, s.Framebuffers, s.Renderbuffers, s.TextureBytes)
}

// Live returns the total number of live objects.
func (s SoftwareStats) Live() int {
	return s.Textures + s.Framebuffers + s.Renderbuffers
}

// Software is an in-memory Context. It keeps real pixel storage so that
// clears, blits and readback can be observed, and it validates calls the
// way a strict driver would.
//
// Software is NOT safe for concurrent use, like any GPU context.
type Software struct {
	cfg  SoftwareConfig
	next uint32

	textures      map[Texture]*softTexture
	framebuffers  map[Framebuffer]*softFramebuffer
	renderbuffers map[Renderbuffer]*softRenderbuffer

	texture      Texture
	renderbuffer Renderbuffer
	draw         Framebuffer
	read         Framebuffer
	viewport     Rect

	screenColor *plane
	screenDepth *plane

	failures map[ObjectKind]int
	skips    map[ObjectKind]int
	blits    []BlitRecord
}

// NewSoftware creates a Software context.
func NewSoftware(cfg SoftwareConfig) *Software {
	if cfg.Version < 1 {
		cfg.Version = 1
	}
	if cfg.Version < 2 {
		cfg.MaxSamples = 0
	}
	if cfg.MaxSamples < 0 {
		cfg.MaxSamples = 0
	}
	if cfg.MaxTextureSize <= 0 {
		cfg.MaxTextureSize = 4096
	}
	if cfg.ScreenWidth <= 0 || cfg.ScreenHeight <= 0 {
		cfg.ScreenWidth, cfg.ScreenHeight = 100, 100
	}
	s := &Software{
		cfg:           cfg,
		textures:      make(map[Texture]*softTexture),
		framebuffers:  make(map[Framebuffer]*softFramebuffer),
		renderbuffers: make(map[Renderbuffer]*softRenderbuffer),
		failures:      make(map[ObjectKind]int),
		skips:         make(map[ObjectKind]int),
	}
	s.ResizeScreen(cfg.ScreenWidth, cfg.ScreenHeight)
	return s
}

// Name returns the backend identifier.
func (s *Software) Name() string {
	if s.cfg.Version < 2 {
		return BackendSoftwareGL1
	}
	return BackendSoftware
}

// Caps returns the configured capabilities.
func (s *Software) Caps() Caps {
	return Caps{
		Version:           s.cfg.Version,
		FloatTextures:     s.cfg.FloatTextures,
		HalfFloatTextures: s.cfg.HalfFloatTextures,
		DepthTextures:     s.cfg.DepthTextures,
		MaxSamples:        s.cfg.MaxSamples,
		MaxTextureSize:    s.cfg.MaxTextureSize,
	}
}

// ResizeScreen reallocates the default framebuffer and resets the viewport
// to cover it.
func (s *Software) ResizeScreen(width, height int) {
	s.screenColor = newPlane(TextureFormat{InternalFormatRGBA8, PixelFormatRGBA, PixelTypeUnsignedByte}, width, height)
	s.screenDepth = newPlane(TextureFormat{InternalFormatDepthComponent24, PixelFormatDepth, PixelTypeUnsignedInt}, width, height)
	s.viewport = Rect{Width: width, Height: height}
}

// FailNext makes the next n Create calls for kind return the zero object.
func (s *Software) FailNext(kind ObjectKind, n int) {
	s.failures[kind] += n
}

// FailAfter lets skip Create calls for kind succeed and fails the one after.
func (s *Software) FailAfter(kind ObjectKind, skip int) {
	s.skips[kind] = skip
	s.failures[kind]++
}

func (s *Software) failing(kind ObjectKind) bool {
	if s.failures[kind] > 0 {
		if s.skips[kind] > 0 {
			s.skips[kind]--
			return false
		}
		s.failures[kind]--
		slogger().Debug("software: injected create failure", "kind", kind)
		return true
	}
	return false
}

func (s *Software) newName() uint32 {
	s.next++
	return s.next
}

// Stats returns the live object counts.
func (s *Software) Stats() SoftwareStats {
	st := SoftwareStats{
		Textures:      len(s.textures),
		Framebuffers:  len(s.framebuffers),
		Renderbuffers: len(s.renderbuffers),
	}
	for _, t := range s.textures {
		if t.storage != nil {
			st.TextureBytes += t.storage.sizeBytes()
		}
	}
	for _, rb := range s.renderbuffers {
		if rb.storage != nil {
			st.TextureBytes += rb.storage.sizeBytes() * uint64(max(rb.samples, 1))
		}
	}
	return st
}

// Blits returns the BlitFramebuffer calls issued so far.
func (s *Software) Blits() []BlitRecord {
	return append([]BlitRecord(nil), s.blits...)
}

// ResetBlits clears the blit log.
func (s *Software) ResetBlits() { s.blits = nil }

// IsTexture reports whether t names a live texture.
func (s *Software) IsTexture(t Texture) bool {
	_, ok := s.textures[t]
	return ok
}

// IsFramebuffer reports whether fb names a live framebuffer.
func (s *Software) IsFramebuffer(fb Framebuffer) bool {
	_, ok := s.framebuffers[fb]
	return ok
}

// IsRenderbuffer reports whether rb names a live renderbuffer.
func (s *Software) IsRenderbuffer(rb Renderbuffer) bool {
	_, ok := s.renderbuffers[rb]
	return ok
}

// RenderbufferSamples returns the sample count of rb, or -1 if rb is not live.
func (s *Software) RenderbufferSamples(rb Renderbuffer) int {
	r, ok := s.renderbuffers[rb]
	if !ok {
		return -1
	}
	return r.samples
}

// TextureFormatOf returns the storage format of t.
func (s *Software) TextureFormatOf(t Texture) (TextureFormat, bool) {
	tex, ok := s.textures[t]
	if !ok || tex.storage == nil {
		return TextureFormat{}, false
	}
	return tex.storage.format, true
}

// TextureSize returns the storage size of t.
func (s *Software) TextureSize(t Texture) gputypes.Extent3D {
	tex, ok := s.textures[t]
	if !ok || tex.storage == nil {
		return gputypes.Extent3D{}
	}
	//nolint:gosec // G115: dimensions bounded by MaxTextureSize
	return gputypes.NewExtent2D(uint32(tex.storage.width), uint32(tex.storage.height))
}

// TextureUsage returns the usage flags of t.
func (s *Software) TextureUsage(t Texture) gputypes.TextureUsage {
	if tex, ok := s.textures[t]; ok {
		return tex.usage
	}
	return gputypes.TextureUsageNone
}

// CreateTexture creates a texture object without storage.
func (s *Software) CreateTexture() Texture {
	if s.failing(KindTexture) {
		return 0
	}
	t := Texture(s.newName())
	s.textures[t] = &softTexture{
		params: SamplerParams{
			MinFilter: gputypes.FilterModeNearest,
			MagFilter: gputypes.FilterModeLinear,
			Wrap:      gputypes.AddressModeRepeat,
		},
		usage: gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
	return t
}

// DeleteTexture deletes t, unbinding and detaching it first.
// Deleting zero or an unknown name is a no-op.
func (s *Software) DeleteTexture(t Texture) {
	if _, ok := s.textures[t]; !ok {
		return
	}
	if s.texture == t {
		s.texture = 0
	}
	for _, fb := range s.framebuffers {
		if fb.color.tex == t {
			fb.color = attachment{}
		}
		if fb.depth.tex == t {
			fb.depth = attachment{}
		}
	}
	delete(s.textures, t)
}

// BindTexture binds t to the texture binding point.
func (s *Software) BindTexture(t Texture) {
	if t != 0 && !s.IsTexture(t) {
		slogger().Debug("software: bind of unknown texture ignored", "texture", t)
		return
	}
	s.texture = t
}

// BoundTexture returns the bound texture.
func (s *Software) BoundTexture() Texture { return s.texture }

func (s *Software) checkFormat(f TextureFormat) error {
	if f.Internal.IsSized() && s.cfg.Version < 2 {
		return fmt.Errorf("%w: sized format %v on version %d", ErrUnsupportedFormat, f.Internal, s.cfg.Version)
	}
	if f.Internal.IsDepth() != (f.Format == PixelFormatDepth) {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	switch f.Type {
	case PixelTypeFloat:
		if !f.Internal.IsDepth() && !s.cfg.FloatTextures {
			return fmt.Errorf("%w: float textures", ErrUnsupportedFormat)
		}
	case PixelTypeHalfFloat:
		if s.cfg.Version < 2 || !s.cfg.HalfFloatTextures {
			return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f.Type)
		}
	case PixelTypeHalfFloatOES:
		if s.cfg.Version >= 2 || !s.cfg.HalfFloatTextures {
			return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f.Type)
		}
	}
	return nil
}

func (s *Software) checkSize(width, height int) error {
	if width <= 0 || height <= 0 || width > s.cfg.MaxTextureSize || height > s.cfg.MaxTextureSize {
		return fmt.Errorf("%w: size %dx%d (max %d)", ErrInvalidValue, width, height, s.cfg.MaxTextureSize)
	}
	return nil
}

// TexImage2D allocates storage for the bound texture.
func (s *Software) TexImage2D(format TextureFormat, width, height int) error {
	tex, ok := s.textures[s.texture]
	if !ok {
		return fmt.Errorf("teximage2d: %w", ErrNoBinding)
	}
	if err := s.checkSize(width, height); err != nil {
		return err
	}
	if format.Internal.IsDepth() && !s.cfg.DepthTextures {
		return fmt.Errorf("%w: depth textures", ErrUnsupportedFormat)
	}
	if err := s.checkFormat(format); err != nil {
		return err
	}
	tex.storage = newPlane(format, width, height)
	tex.usage |= gputypes.TextureUsageRenderAttachment
	return nil
}

// TexParameters sets sampling parameters of the bound texture.
func (s *Software) TexParameters(p SamplerParams) error {
	tex, ok := s.textures[s.texture]
	if !ok {
		return fmt.Errorf("texparameters: %w", ErrNoBinding)
	}
	tex.params = p
	return nil
}

// TextureParameters returns the sampling parameters of t.
func (s *Software) TextureParameters(t Texture) SamplerParams {
	if tex, ok := s.textures[t]; ok {
		return tex.params
	}
	return SamplerParams{}
}

// CreateFramebuffer creates a framebuffer object with no attachments.
func (s *Software) CreateFramebuffer() Framebuffer {
	if s.failing(KindFramebuffer) {
		return 0
	}
	fb := Framebuffer(s.newName())
	s.framebuffers[fb] = &softFramebuffer{}
	return fb
}

// DeleteFramebuffer deletes fb. Bindings to it revert to the default framebuffer.
func (s *Software) DeleteFramebuffer(fb Framebuffer) {
	if _, ok := s.framebuffers[fb]; !ok {
		return
	}
	if s.draw == fb {
		s.draw = 0
	}
	if s.read == fb {
		s.read = 0
	}
	delete(s.framebuffers, fb)
}

// BindFramebuffer binds fb to target.
func (s *Software) BindFramebuffer(target FramebufferTarget, fb Framebuffer) {
	if fb != 0 && !s.IsFramebuffer(fb) {
		slogger().Debug("software: bind of unknown framebuffer ignored", "framebuffer", fb)
		return
	}
	switch target {
	case TargetDrawFramebuffer:
		s.draw = fb
	case TargetReadFramebuffer:
		s.read = fb
	default:
		s.draw, s.read = fb, fb
	}
}

// BoundFramebuffer returns the framebuffer bound to target.
func (s *Software) BoundFramebuffer(target FramebufferTarget) Framebuffer {
	if target == TargetReadFramebuffer {
		return s.read
	}
	return s.draw
}

func (s *Software) boundFramebuffer(target FramebufferTarget) (*softFramebuffer, error) {
	fb, ok := s.framebuffers[s.BoundFramebuffer(target)]
	if !ok {
		return nil, fmt.Errorf("framebuffer attachment: %w", ErrNoBinding)
	}
	return fb, nil
}

func (s *Software) attach(fb *softFramebuffer, att Attachment, a attachment) error {
	switch att {
	case AttachmentColor0:
		fb.color = a
	case AttachmentDepth:
		fb.depth = a
	default:
		return fmt.Errorf("%w: attachment %v", ErrInvalidValue, att)
	}
	return nil
}

// FramebufferTexture2D attaches t to the framebuffer bound at target.
// Attaching zero detaches.
func (s *Software) FramebufferTexture2D(target FramebufferTarget, att Attachment, t Texture) error {
	fb, err := s.boundFramebuffer(target)
	if err != nil {
		return err
	}
	if t != 0 && !s.IsTexture(t) {
		return fmt.Errorf("%w: unknown texture %d", ErrInvalidOperation, t)
	}
	return s.attach(fb, att, attachment{tex: t})
}

// FramebufferRenderbuffer attaches rb to the framebuffer bound at target.
// Attaching zero detaches.
func (s *Software) FramebufferRenderbuffer(target FramebufferTarget, att Attachment, rb Renderbuffer) error {
	fb, err := s.boundFramebuffer(target)
	if err != nil {
		return err
	}
	if rb != 0 && !s.IsRenderbuffer(rb) {
		return fmt.Errorf("%w: unknown renderbuffer %d", ErrInvalidOperation, rb)
	}
	return s.attach(fb, att, attachment{rb: rb})
}

// storage resolves an attachment to its plane and sample count.
func (s *Software) storage(a attachment) (*plane, int) {
	if a.tex != 0 {
		if t, ok := s.textures[a.tex]; ok {
			return t.storage, 0
		}
		return nil, 0
	}
	if a.rb != 0 {
		if r, ok := s.renderbuffers[a.rb]; ok {
			return r.storage, r.samples
		}
	}
	return nil, 0
}

// CheckFramebufferStatus validates the framebuffer bound at target.
func (s *Software) CheckFramebufferStatus(target FramebufferTarget) Status {
	name := s.BoundFramebuffer(target)
	if name == 0 {
		return StatusComplete
	}
	fb, ok := s.framebuffers[name]
	if !ok {
		return StatusUnsupported
	}
	if fb.color.empty() && fb.depth.empty() {
		return StatusMissingAttachment
	}

	var planes []*plane
	var samples []int
	for i, a := range []attachment{fb.color, fb.depth} {
		if a.empty() {
			continue
		}
		p, n := s.storage(a)
		if p == nil {
			return StatusIncompleteAttachment
		}
		if (i == 1) != p.isDepth() {
			return StatusIncompleteAttachment
		}
		planes = append(planes, p)
		samples = append(samples, n)
	}
	for i := 1; i < len(planes); i++ {
		if planes[i].width != planes[0].width || planes[i].height != planes[0].height {
			return StatusIncompleteDimensions
		}
		if samples[i] != samples[0] {
			return StatusIncompleteMultisample
		}
	}
	return StatusComplete
}

// CreateRenderbuffer creates a renderbuffer object without storage.
func (s *Software) CreateRenderbuffer() Renderbuffer {
	if s.failing(KindRenderbuffer) {
		return 0
	}
	rb := Renderbuffer(s.newName())
	s.renderbuffers[rb] = &softRenderbuffer{}
	return rb
}

// DeleteRenderbuffer deletes rb, unbinding and detaching it first.
func (s *Software) DeleteRenderbuffer(rb Renderbuffer) {
	if _, ok := s.renderbuffers[rb]; !ok {
		return
	}
	if s.renderbuffer == rb {
		s.renderbuffer = 0
	}
	for _, fb := range s.framebuffers {
		if fb.color.rb == rb {
			fb.color = attachment{}
		}
		if fb.depth.rb == rb {
			fb.depth = attachment{}
		}
	}
	delete(s.renderbuffers, rb)
}

// BindRenderbuffer binds rb to the renderbuffer binding point.
func (s *Software) BindRenderbuffer(rb Renderbuffer) {
	if rb != 0 && !s.IsRenderbuffer(rb) {
		slogger().Debug("software: bind of unknown renderbuffer ignored", "renderbuffer", rb)
		return
	}
	s.renderbuffer = rb
}

// BoundRenderbuffer returns the bound renderbuffer.
func (s *Software) BoundRenderbuffer() Renderbuffer { return s.renderbuffer }

// RenderbufferStorageMultisample allocates storage for the bound renderbuffer.
func (s *Software) RenderbufferStorageMultisample(samples int, format InternalFormat, width, height int) error {
	rb, ok := s.renderbuffers[s.renderbuffer]
	if !ok {
		return fmt.Errorf("renderbufferstorage: %w", ErrNoBinding)
	}
	if samples > 0 && s.cfg.Version < 2 {
		return fmt.Errorf("%w: multisample renderbuffers need version 2", ErrInvalidOperation)
	}
	if samples < 0 || samples > s.cfg.MaxSamples {
		return fmt.Errorf("%w: %d samples (max %d)", ErrInvalidValue, samples, s.cfg.MaxSamples)
	}
	if err := s.checkSize(width, height); err != nil {
		return err
	}
	f := TextureFormat{Internal: format, Format: PixelFormatRGBA, Type: PixelTypeUnsignedByte}
	switch format {
	case InternalFormatRGBA32F, InternalFormatRGB32F:
		if !s.cfg.FloatTextures {
			return fmt.Errorf("%w: float renderbuffers", ErrUnsupportedFormat)
		}
		f.Type = PixelTypeFloat
	case InternalFormatRGBA16F, InternalFormatRGB16F:
		if !s.cfg.HalfFloatTextures {
			return fmt.Errorf("%w: half-float renderbuffers", ErrUnsupportedFormat)
		}
		f.Type = PixelTypeHalfFloat
	case InternalFormatDepthComponent32F:
		f.Format, f.Type = PixelFormatDepth, PixelTypeFloat
	case InternalFormatDepthComponent16, InternalFormatDepthComponent24, InternalFormatDepthComponent:
		f.Format, f.Type = PixelFormatDepth, PixelTypeUnsignedInt
	case InternalFormatUndefined:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	rb.storage = newPlane(f, width, height)
	rb.samples = samples
	return nil
}

// Viewport sets the viewport rectangle.
func (s *Software) Viewport(r Rect) { s.viewport = r }

// CurrentViewport returns the viewport rectangle.
func (s *Software) CurrentViewport() Rect { return s.viewport }

// planes returns the color and depth storage of the framebuffer bound at target.
func (s *Software) planes(target FramebufferTarget) (color, depth *plane, samples int, err error) {
	name := s.BoundFramebuffer(target)
	if name == 0 {
		return s.screenColor, s.screenDepth, 0, nil
	}
	fb, ok := s.framebuffers[name]
	if !ok {
		return nil, nil, 0, fmt.Errorf("%w: framebuffer %d", ErrInvalidOperation, name)
	}
	color, samples = s.storage(fb.color)
	depth, _ = s.storage(fb.depth)
	return color, depth, samples, nil
}

// Clear fills the selected planes of the draw framebuffer.
func (s *Software) Clear(mask BufferMask, c gputypes.Color, depth float32) error {
	if s.CheckFramebufferStatus(TargetDrawFramebuffer) != StatusComplete {
		return fmt.Errorf("clear: %w: incomplete framebuffer", ErrInvalidOperation)
	}
	color, depthPlane, _, err := s.planes(TargetDrawFramebuffer)
	if err != nil {
		return err
	}
	if mask&ColorBufferBit != 0 && color != nil {
		rgba := [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
		if color.format.Internal.Channels() == 3 {
			rgba[3] = 1
		}
		for i := 0; i < len(color.pix); i += 4 {
			for k := 0; k < 4; k++ {
				color.store(i+k, rgba[k])
			}
		}
	}
	if mask&DepthBufferBit != 0 && depthPlane != nil {
		for i := range depthPlane.pix {
			depthPlane.store(i, depth)
		}
	}
	return nil
}

// BlitFramebuffer copies the selected planes from the read framebuffer to
// the draw framebuffer with nearest-neighbour scaling. Depth blits require
// a nearest filter, and the destination must not be multisampled.
func (s *Software) BlitFramebuffer(src, dst Rect, mask BufferMask, filter gputypes.FilterMode) error {
	if s.cfg.Version < 2 {
		return fmt.Errorf("blit: %w: needs version 2", ErrInvalidOperation)
	}
	if src.Empty() || dst.Empty() {
		return fmt.Errorf("blit: %w: empty rectangle", ErrInvalidValue)
	}
	if mask&DepthBufferBit != 0 && filter != gputypes.FilterModeNearest {
		return fmt.Errorf("blit: %w: depth requires nearest filter", ErrInvalidOperation)
	}
	readColor, readDepth, _, err := s.planes(TargetReadFramebuffer)
	if err != nil {
		return err
	}
	drawColor, drawDepth, drawSamples, err := s.planes(TargetDrawFramebuffer)
	if err != nil {
		return err
	}
	if drawSamples > 0 {
		return fmt.Errorf("blit: %w: multisampled destination", ErrInvalidOperation)
	}
	if mask&ColorBufferBit != 0 {
		if readColor == nil || drawColor == nil {
			return fmt.Errorf("blit: %w: missing color attachment", ErrInvalidOperation)
		}
		copyPlane(drawColor, dst, readColor, src)
	}
	if mask&DepthBufferBit != 0 {
		if readDepth == nil || drawDepth == nil {
			return fmt.Errorf("blit: %w: missing depth attachment", ErrInvalidOperation)
		}
		copyPlane(drawDepth, dst, readDepth, src)
	}
	s.blits = append(s.blits, BlitRecord{
		Read:   s.read,
		Draw:   s.draw,
		Src:    src,
		Dst:    dst,
		Mask:   mask,
		Filter: filter,
	})
	return nil
}

func copyPlane(dst *plane, dr Rect, src *plane, sr Rect) {
	n := dst.stride()
	for y := 0; y < dr.Height; y++ {
		dy := dr.Y + y
		sy := sr.Y + y*sr.Height/dr.Height
		if dy < 0 || dy >= dst.height || sy < 0 || sy >= src.height {
			continue
		}
		for x := 0; x < dr.Width; x++ {
			dx := dr.X + x
			sx := sr.X + x*sr.Width/dr.Width
			if dx < 0 || dx >= dst.width || sx < 0 || sx >= src.width {
				continue
			}
			di := (dy*dst.width + dx) * n
			si := (sy*src.width + sx) * n
			for k := 0; k < n; k++ {
				dst.store(di+k, src.pix[si+k])
			}
		}
	}
}

// ReadPixels reads RGBA8 rows of the read framebuffer's color attachment.
func (s *Software) ReadPixels(r Rect, dst []byte) error {
	if r.Empty() {
		return fmt.Errorf("readpixels: %w: empty rectangle", ErrInvalidValue)
	}
	if len(dst) < r.Width*r.Height*4 {
		return fmt.Errorf("readpixels: %w: buffer too small", ErrInvalidValue)
	}
	color, _, samples, err := s.planes(TargetReadFramebuffer)
	if err != nil {
		return err
	}
	if color == nil {
		return fmt.Errorf("readpixels: %w: no color attachment", ErrInvalidOperation)
	}
	if samples > 0 {
		return fmt.Errorf("readpixels: %w: multisampled source", ErrInvalidOperation)
	}
	for y := 0; y < r.Height; y++ {
		sy := r.Y + y
		for x := 0; x < r.Width; x++ {
			sx := r.X + x
			o := (y*r.Width + x) * 4
			if sx < 0 || sx >= color.width || sy < 0 || sy >= color.height {
				dst[o], dst[o+1], dst[o+2], dst[o+3] = 0, 0, 0, 0
				continue
			}
			i := (sy*color.width + sx) * 4
			for k := 0; k < 4; k++ {
				dst[o+k] = uint8(math.Round(float64(clamp01(color.pix[i+k])) * 255))
			}
		}
	}
	return nil
}

// Device returns the context itself; Software has no separate device object.
func (s *Software) Device() gpucontext.Device { return s }

// Queue returns the context itself; commands execute immediately.
func (s *Software) Queue() gpucontext.Queue { return s }

// Adapter returns the context itself.
func (s *Software) Adapter() gpucontext.Adapter { return s }

// SurfaceFormat returns the default framebuffer format.
func (s *Software) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// AdapterInfo describes the software adapter.
func (s *Software) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{
		Name: fmt.Sprintf("Software GL v%d", s.cfg.Version),
		Type: gpucontext.AdapterTypeSoftware,
	}
}

var (
	_ Context                   = (*Software)(nil)
	_ gpucontext.DeviceProvider = (*Software)(nil)
)
