// Package vmath provides the small float vector types shared by the world and mesh packages.
package vmath

import "math"

// Vec3 is a float64 3D point. Y is up; the cave floor lies in the XZ plane.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 is a float64 2D point, used for texture coordinates.
type Vec2 struct {
	X, Y float64
}

// Up is the unit vector along +Y.
var Up = Vec3{Y: 1}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) MagSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Mag() float64 {
	return math.Sqrt(v.MagSq())
}

// InverseLerp returns where v falls between a and b as a fraction clamped to [0,1].
// A zero-width range yields 0.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	t := (v - a) / (b - a)
	return math.Max(0, math.Min(1, t))
}
