package backend

import (
	"slices"

	"github.com/gogpu/gpucontext"
)

// Factory creates a new context instance.
type Factory func() Context

// Backend name constants.
const (
	// BackendSoftware is the in-memory version-2 context.
	BackendSoftware = "software"
	// BackendSoftwareGL1 is the in-memory version-1 context.
	BackendSoftwareGL1 = "software-gl1"
)

// Priority order for backend selection (first available wins).
// Hardware backends registered by host packages take precedence.
var backends = gpucontext.NewRegistry[Context](
	gpucontext.WithPriority("webgl2", "gles3", BackendSoftware, "webgl1", "gles2", BackendSoftwareGL1),
)

// Register registers a context factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	backends.Register(name, factory)
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	backends.Unregister(name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	names := backends.Available()
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	return backends.Has(name)
}

// Get returns a new context by name.
// Returns nil if the backend is not registered.
func Get(name string) Context {
	return backends.Get(name)
}

// Open is like Get but reports an unknown name as ErrBackendNotAvailable.
func Open(name string) (Context, error) {
	if !backends.Has(name) {
		return nil, &NotAvailableError{Name: name}
	}
	ctx := backends.Get(name)
	if ctx == nil {
		return nil, &NotAvailableError{Name: name}
	}
	return ctx, nil
}

// Default returns a new context from the best available backend.
// Returns nil if no backends are registered.
func Default() Context {
	return backends.Best()
}

// DefaultName returns the name Default would use.
func DefaultName() string {
	return backends.BestName()
}

// MustDefault returns the default context or panics.
func MustDefault() Context {
	c := Default()
	if c == nil {
		panic("backend: no backend available")
	}
	return c
}

// NotAvailableError reports a backend name that is not registered.
type NotAvailableError struct {
	Name string
}

func (e *NotAvailableError) Error() string {
	return "backend: " + e.Name + " not available"
}

// Unwrap returns ErrBackendNotAvailable.
func (e *NotAvailableError) Unwrap() error { return ErrBackendNotAvailable }
