package fbo

import "sync"

// registryKey identifies one texture of one framebuffer.
type registryKey struct {
	id   uint64
	prop Property
}

// TextureRegistry maps framebuffer textures to their views for the code
// that binds textures to shaders. Framebuffers add their views when their
// GPU objects are allocated and remove them before deleting the objects,
// so a registered view always refers to a live texture.
//
// TextureRegistry is safe for concurrent use.
type TextureRegistry struct {
	mu    sync.RWMutex
	views map[registryKey]*TextureView
}

var defaultRegistry = NewTextureRegistry()

// NewTextureRegistry creates an empty registry.
func NewTextureRegistry() *TextureRegistry {
	return &TextureRegistry{views: make(map[registryKey]*TextureView)}
}

// DefaultRegistry returns the registry framebuffers use unless created with
// WithRegistry.
func DefaultRegistry() *TextureRegistry { return defaultRegistry }

// Register adds v, replacing any view of the same framebuffer and property.
func (r *TextureRegistry) Register(v *TextureView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[registryKey{v.fb.id, v.prop}] = v
}

// Unregister removes the view of fb's property p, if any.
func (r *TextureRegistry) Unregister(fb *Framebuffer, p Property) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, registryKey{fb.id, p})
}

// Lookup returns the registered view of fb's property p.
func (r *TextureRegistry) Lookup(fb *Framebuffer, p Property) (*TextureView, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[registryKey{fb.id, p}]
	return v, ok
}

// Len returns the number of registered views.
func (r *TextureRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

func (fb *Framebuffer) registerViews() {
	fb.registry.Register(fb.color)
	if fb.depth != nil {
		fb.registry.Register(fb.depth)
	}
}

func (fb *Framebuffer) unregisterViews() {
	fb.registry.Unregister(fb, PropertyColor)
	fb.registry.Unregister(fb, PropertyDepth)
}
