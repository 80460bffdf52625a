// Package backend defines the GPU context that framebuffers are built on.
//
// The Context interface is a WebGL-shaped object API: textures,
// renderbuffers and framebuffer objects named by integer handles, global
// binding points, multisample renderbuffer storage and framebuffer blits.
// Caps reports what the context supports so that callers can negotiate
// formats before creating anything.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The software backends are registered on import:
//
//	import "github.com/gogpu/fbo/backend"
//
//	ctx := backend.Default()            // best available
//	ctx, err := backend.Open("software") // by name
//
// # Available Backends
//
//   - "software": in-memory version-2 context with float, half-float and
//     depth textures and up to 4 samples
//   - "software-gl1": in-memory version-1 context with half-float and depth
//     textures and no multisampling
//
// Host packages may register hardware contexts under "webgl2", "gles3",
// "webgl1" or "gles2"; those names take precedence in Default.
//
// # Software Context
//
// Software keeps real pixel storage, so clears, blits and ReadPixels can be
// observed in tests. It also exposes Stats for leak checks and FailNext for
// injecting object creation failures.
package backend
