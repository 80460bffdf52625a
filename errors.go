package fbo

import "errors"

// Errors returned by Framebuffer operations.
var (
	// ErrNilSurface is returned when New is called without a surface.
	ErrNilSurface = errors.New("fbo: nil surface")

	// ErrNilContext is returned when the surface has no GPU context.
	ErrNilContext = errors.New("fbo: surface has no GPU context")

	// ErrResourceCreation is returned when the GPU context fails to create
	// a texture, renderbuffer or framebuffer object, or when the resulting
	// framebuffer is incomplete.
	ErrResourceCreation = errors.New("fbo: GPU resource creation failed")

	// ErrSessionActive is returned by Begin while a session is open, and by
	// Resize, SetPixelDensity, ReadPixels and Remove during a session.
	ErrSessionActive = errors.New("fbo: drawing session already active")

	// ErrNotActive is returned when a session is ended twice.
	ErrNotActive = errors.New("fbo: no active drawing session")

	// ErrRemoved is returned by operations on a removed framebuffer.
	ErrRemoved = errors.New("fbo: framebuffer removed")

	// ErrInvalidDimensions is returned for non-positive sizes or densities.
	ErrInvalidDimensions = errors.New("fbo: invalid dimensions")
)

// UsageError reports a call made in the wrong state, such as beginning a
// session twice. It is distinct from resource errors so callers can tell
// programming mistakes from GPU failures with errors.As.
type UsageError struct {
	Op  string
	Err error
}

func (e *UsageError) Error() string {
	return "fbo: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying sentinel error.
func (e *UsageError) Unwrap() error { return e.Err }

func usage(op string, err error) error {
	return &UsageError{Op: op, Err: err}
}
