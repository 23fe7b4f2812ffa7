package math

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal Vec3
	D      float32
}

// PlaneFromPoint builds a plane through point with the given normal.
func PlaneFromPoint(normal, point Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, D: -n.Dot(point)}
}

// Distance returns the signed distance from p to the plane.
func (p Plane) Distance(pt Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Array returns the plane equation coefficients (a, b, c, d).
func (p Plane) Array() [4]float32 {
	return [4]float32{p.Normal.X, p.Normal.Y, p.Normal.Z, p.D}
}
