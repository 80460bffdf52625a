// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package camera

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Identity is the 4x4 identity matrix.
var Identity = f32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// perspective builds a right-handed projection mapping z in [-near, -far]
// to [-1, 1]. Degenerate parameters yield the identity.
func perspective(fov, aspect, near, far, scaleY float32) f32.Mat4 {
	if aspect == 0 || near == far || fov <= 0 {
		return Identity
	}
	f := 1 / math32.Tan(fov/2)
	nf := 1 / (near - far)
	return f32.Mat4{
		f / aspect, 0, 0, 0,
		0, f * scaleY, 0, 0,
		0, 0, (far + near) * nf, 2 * far * near * nf,
		0, 0, -1, 0,
	}
}

// lookAt builds the view matrix of an eye looking at center.
// A degenerate basis yields a pure translation.
func lookAt(eye, center, up f32.Vec3) f32.Mat4 {
	z := normalize(sub(eye, center))
	x := normalize(cross(up, z))
	if x == (f32.Vec3{}) || z == (f32.Vec3{}) {
		return f32.Mat4{
			1, 0, 0, -eye[0],
			0, 1, 0, -eye[1],
			0, 0, 1, -eye[2],
			0, 0, 0, 1,
		}
	}
	y := cross(z, x)
	return f32.Mat4{
		x[0], x[1], x[2], -dot(x, eye),
		y[0], y[1], y[2], -dot(y, eye),
		z[0], z[1], z[2], -dot(z, eye),
		0, 0, 0, 1,
	}
}

// Mul returns a * b.
func Mul(a, b f32.Mat4) f32.Mat4 {
	var m f32.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += a[4*r+k] * b[4*k+c]
			}
			m[4*r+c] = s
		}
	}
	return m
}

// Transform applies m to the point p and performs the perspective divide.
func Transform(m f32.Mat4, p f32.Vec3) f32.Vec3 {
	var v f32.Vec4
	for r := 0; r < 4; r++ {
		v[r] = m[4*r]*p[0] + m[4*r+1]*p[1] + m[4*r+2]*p[2] + m[4*r+3]
	}
	if v[3] == 0 {
		return f32.Vec3{v[0], v[1], v[2]}
	}
	return f32.Vec3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
}

func sub(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b f32.Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v f32.Vec3) f32.Vec3 {
	l := math32.Sqrt(dot(v, v))
	if l == 0 {
		return f32.Vec3{}
	}
	return f32.Vec3{v[0] / l, v[1] / l, v[2] / l}
}
