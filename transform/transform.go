// SPDX-License-Identifier: EPL-2.0

package transform

import (
	"math"

	"github.com/ik5/audscene/utils"
)

// Quaternion is a rotation split into vector and scalar parts.
type Quaternion struct {
	// V is the vector (imaginary) part.
	V [3]float32
	// S is the scalar (real) part.
	S float32
}

// Identity returns the identity rotation.
func Identity() Quaternion {
	return Quaternion{S: 1}
}

// Norm returns the Euclidean norm of q.
func (q Quaternion) Norm() float32 {
	return float32(math.Sqrt(float64(q.V[0]*q.V[0] + q.V[1]*q.V[1] + q.V[2]*q.V[2] + q.S*q.S)))
}

// Normalized returns q scaled to unit norm.
// A degenerate (near-zero) quaternion normalizes to the identity.
func (q Quaternion) Normalized() Quaternion {
	n := q.Norm()
	if n < 1e-9 {
		return Identity()
	}
	inv := 1 / n
	return Quaternion{
		V: [3]float32{q.V[0] * inv, q.V[1] * inv, q.V[2] * inv},
		S: q.S * inv,
	}
}

// Mul returns the Hamilton product q * r.
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		V: [3]float32{
			q.S*r.V[0] + q.V[0]*r.S + q.V[1]*r.V[2] - q.V[2]*r.V[1],
			q.S*r.V[1] - q.V[0]*r.V[2] + q.V[1]*r.S + q.V[2]*r.V[0],
			q.S*r.V[2] + q.V[0]*r.V[1] - q.V[1]*r.V[0] + q.V[2]*r.S,
		},
		S: q.S*r.S - q.V[0]*r.V[0] - q.V[1]*r.V[1] - q.V[2]*r.V[2],
	}
}

// FromEuler builds a rotation from azimuth, elevation and roll angles
// given in degrees.  Azimuth rotates about the z axis, elevation about
// the (rotated) x axis, roll about the (rotated) y axis.
func FromEuler(azim, elev, roll float32) Quaternion {
	qz := axisAngle(2, azim)
	qx := axisAngle(0, elev)
	qy := axisAngle(1, roll)
	return qz.Mul(qx).Mul(qy).Normalized()
}

func axisAngle(axis int, degrees float32) Quaternion {
	half := float64(degrees) * math.Pi / 360
	q := Quaternion{S: float32(math.Cos(half))}
	q.V[axis] = float32(math.Sin(half))
	return q
}

// Slerp spherically interpolates between a and b.
// x is the fractional position between them (0 <= x <= 1).
// The result is renormalized to guard against drift over
// long chains of interpolations.
func Slerp(a, b Quaternion, x float32) Quaternion {
	dot := a.V[0]*b.V[0] + a.V[1]*b.V[1] + a.V[2]*b.V[2] + a.S*b.S

	// Take the short way around
	if dot < 0 {
		b = Quaternion{V: [3]float32{-b.V[0], -b.V[1], -b.V[2]}, S: -b.S}
		dot = -dot
	}

	var wa, wb float32
	if dot > 0.9995 {
		// Nearly parallel: fall back to linear weights
		wa = 1 - x
		wb = x
	} else {
		theta := math.Acos(float64(dot))
		sin := math.Sin(theta)
		wa = float32(math.Sin((1-float64(x))*theta) / sin)
		wb = float32(math.Sin(float64(x)*theta) / sin)
	}

	return Quaternion{
		V: [3]float32{
			wa*a.V[0] + wb*b.V[0],
			wa*a.V[1] + wb*b.V[1],
			wa*a.V[2] + wb*b.V[2],
		},
		S: wa*a.S + wb*b.S,
	}.Normalized()
}

// Transform is the spatial pose of a source or the reference at a
// given frame.  When Active is false the remaining fields carry no
// meaning and must not be used for rendering.
type Transform struct {
	Active bool
	// Pos is the position in meters (x, y, z).
	Pos [3]float32
	// Rot is the orientation as a unit quaternion.
	Rot Quaternion
	// Vol is the volume, typically in [0, 1] but not clamped.
	Vol float32
}

// Inactive returns the default transform for a source that currently
// has no defined pose.
func Inactive() Transform {
	return Transform{Rot: Identity()}
}

// interpolate blends two transforms at fractional position x.
// Position and volume are interpolated linearly, orientation spherically.
func interpolate(a, b Transform, x float32) Transform {
	return Transform{
		Active: true,
		Pos: [3]float32{
			utils.Lerp(a.Pos[0], b.Pos[0], x),
			utils.Lerp(a.Pos[1], b.Pos[1], x),
			utils.Lerp(a.Pos[2], b.Pos[2], x),
		},
		Rot: Slerp(a.Rot, b.Rot, x),
		Vol: utils.Lerp(a.Vol, b.Vol, x),
	}
}
