package math

import "github.com/chewxy/math32"

// Box is an axis-aligned bounding box. A box whose Min exceeds its Max on
// any axis is empty; EmptyBox is the canonical empty value.
type Box struct {
	Min Vec3
	Max Vec3
}

// EmptyBox returns the empty sentinel box. Extending it by any point
// yields a box containing exactly that point.
func EmptyBox() Box {
	inf := math32.Inf(1)
	return Box{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewBox creates a box from two corners in any order.
func NewBox(a, b Vec3) Box {
	return Box{Min: a.Min(b), Max: a.Max(b)}
}

// Valid reports whether the box is non-empty.
func (b Box) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Extend grows the box to contain p.
func (b Box) Extend(p Vec3) Box {
	return Box{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes. Empty boxes are
// ignored.
func (b Box) Union(other Box) Box {
	if !other.Valid() {
		return b
	}
	if !b.Valid() {
		return other
	}
	return Box{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Center returns the box center.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extent returns the box size along each axis.
func (b Box) Extent() Vec3 {
	if !b.Valid() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Radius returns the radius of the sphere enclosing the box.
func (b Box) Radius() float32 {
	return b.Extent().Length() / 2
}

// Corners returns the eight box corners.
func (b Box) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
	}
}

// Transform returns the bounds of the box after transformation by m.
// An empty box stays empty.
func (b Box) Transform(m Mat4) Box {
	if !b.Valid() {
		return b
	}
	out := EmptyBox()
	for _, c := range b.Corners() {
		out = out.Extend(m.TransformPoint(c))
	}
	return out
}

// Pad expands the box by d on every side.
func (b Box) Pad(d float32) Box {
	if !b.Valid() {
		return b
	}
	p := Vec3{d, d, d}
	return Box{Min: b.Min.Sub(p), Max: b.Max.Add(p)}
}
