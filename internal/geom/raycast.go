package geom

import "github.com/chewxy/math32"

// Ray is an origin plus a normalized direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// AABB is an axis-aligned box in world space.
type AABB struct {
	Min Vec3
	Max Vec3
}

// AABBFromCenter builds an AABB from a center point and full extents.
func AABBFromCenter(center Vec3, size Dimensions) AABB {
	half := Vec3{size.Width / 2, size.Height / 2, size.Depth / 2}
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// RaycastAABB runs the slab test against a box and returns the ray parameter
// of the nearest hit within maxDistance.
func RaycastAABB(ray Ray, box AABB, maxDistance float32) (float32, bool) {
	tmin := float32(-1e30)
	tmax := float32(1e30)

	// X slab
	if ray.Direction.X != 0 {
		t1 := (box.Min.X - ray.Origin.X) / ray.Direction.X
		t2 := (box.Max.X - ray.Origin.X) / ray.Direction.X
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = t1
		tmax = t2
	} else if ray.Origin.X < box.Min.X || ray.Origin.X > box.Max.X {
		return 0, false
	}

	// Y slab
	if ray.Direction.Y != 0 {
		t1 := (box.Min.Y - ray.Origin.Y) / ray.Direction.Y
		t2 := (box.Max.Y - ray.Origin.Y) / ray.Direction.Y
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if ray.Origin.Y < box.Min.Y || ray.Origin.Y > box.Max.Y {
		return 0, false
	}

	if tmin > tmax {
		return 0, false
	}

	// Z slab
	if ray.Direction.Z != 0 {
		t1 := (box.Min.Z - ray.Origin.Z) / ray.Direction.Z
		t2 := (box.Max.Z - ray.Origin.Z) / ray.Direction.Z
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if ray.Origin.Z < box.Min.Z || ray.Origin.Z > box.Max.Z {
		return 0, false
	}

	if tmin > tmax || tmax < 0 || tmin > maxDistance {
		return 0, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return 0, false
	}
	return t, true
}

// RayPlane returns where a ray hits a plane defined by a point and a normal.
func RayPlane(ray Ray, planePoint, planeNormal Vec3) (Vec3, bool) {
	denom := ray.Direction.Dot(planeNormal)
	if math32.Abs(denom) < 1e-6 {
		return Vec3{}, false
	}
	t := planePoint.Sub(ray.Origin).Dot(planeNormal) / denom
	if t < 0 {
		return Vec3{}, false
	}
	return ray.Origin.Add(ray.Direction.Scale(t)), true
}

// ClosestBetweenRays finds the closest approach between two rays.
// Returns (t1, t2, distance) where t1/t2 are parameters along each ray.
func ClosestBetweenRays(a, u, b, v Vec3) (t1, t2, dist float32) {
	w := a.Sub(b)
	uu := u.Dot(u)
	uv := u.Dot(v)
	vv := v.Dot(v)
	uw := u.Dot(w)
	vw := v.Dot(w)

	denom := uu*vv - uv*uv
	if denom < 1e-6 {
		return 0, 0, 1e9
	}

	t1 = (uv*vw - vv*uw) / denom
	t2 = (uu*vw - uv*uw) / denom

	p1 := a.Add(u.Scale(t1))
	p2 := b.Add(v.Scale(t2))
	dist = p1.Sub(p2).Length()
	return
}
