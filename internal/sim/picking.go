package sim

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"roomplanner/internal/bounds"
	"roomplanner/internal/geom"
	"roomplanner/internal/store"
)

const pickMaxDistance = 100.0

func toVec3(v rl.Vector3) geom.Vec3 {
	return geom.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

func toRaylib(v geom.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// instanceBox is the world AABB of a yaw-rotated instance, grown to the
// rotation-aware footprint so picking matches what the user sees.
func instanceBox(inst store.Instance) geom.AABB {
	fp := bounds.FootprintFor(inst.Dimensions, inst.Rotation.Y)
	size := geom.Dimensions{
		Width:  fp.HalfWidth * 2,
		Height: inst.Dimensions.Height,
		Depth:  fp.HalfDepth * 2,
	}
	return geom.AABBFromCenter(inst.Position, size)
}

// pickInstance returns the id of the nearest visible instance hit by the
// pointer ray, or "" when the ray misses everything.
func (s *Session) pickInstance(ray rl.Ray) string {
	gray := geom.Ray{Origin: toVec3(ray.Position), Direction: toVec3(ray.Direction)}

	bestID := ""
	bestT := float32(pickMaxDistance)
	for _, inst := range s.store.Instances() {
		if !s.store.Visible(inst.ID) {
			continue
		}
		if t, ok := geom.RaycastAABB(gray, instanceBox(inst), pickMaxDistance); ok && t < bestT {
			bestT = t
			bestID = inst.ID
		}
	}
	return bestID
}
