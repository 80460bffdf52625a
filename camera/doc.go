// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package camera provides a perspective camera whose defaults follow the
// size of the target it renders into.
//
// The target supplies a [Policy]. RecomputeDefaults derives the default
// field of view, aspect ratio, eye distance and clip planes from the
// target's size, and ApplyFlip sets the vertical scale of the projection.
// Off-screen targets use ApplyFlip to flip y so that textures come out
// upright when sampled.
//
// Usage:
//
//	c := camera.New(policy)
//	c.Perspective(math32.Pi/4, 0, 0, 0) // custom FOV, default aspect and planes
//	// ... target resized ...
//	c.Resize() // keeps FOV, adopts the new aspect ratio
//
// Matrices are [f32.Mat4] in row-major order.
package camera
