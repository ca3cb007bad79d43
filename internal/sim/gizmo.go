package sim

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"roomplanner/internal/bounds"
	"roomplanner/internal/geom"
)

const (
	gizmoLength    float32 = 0.9
	gizmoTipSize   float32 = 0.09
	gizmoHitDist   float32 = 0.12
	gizmoThickness float32 = 0.03
)

var gizmoAxes = [3]geom.Vec3{
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
}

var gizmoColors = [3]rl.Color{rl.Red, rl.Green, rl.Blue}

// pickGizmoAxis returns the axis handle closest to the pointer ray, or -1.
func (s *Session) pickGizmoAxis(ray rl.Ray) int {
	inst, ok := s.store.Get(s.activeID)
	if !ok {
		return -1
	}
	center := inst.Position

	bestDist := float32(999.0)
	bestAxis := -1
	for i, axis := range gizmoAxes {
		_, t2, dist := geom.ClosestBetweenRays(toVec3(ray.Position), toVec3(ray.Direction), center, axis)
		if t2 > 0 && t2 < gizmoLength && dist < gizmoHitDist && dist < bestDist {
			bestDist = dist
			bestAxis = i
		}
	}
	return bestAxis
}

func (s *Session) startDrag(axisIdx int, ray rl.Ray) {
	inst, ok := s.store.Get(s.activeID)
	if !ok {
		return
	}

	s.dragging = true
	s.dragAxisIdx = axisIdx
	s.dragAxis = gizmoAxes[axisIdx]
	s.dragInitPos = inst.Position

	// Drag plane contains the axis and faces the camera as much as possible.
	camPos := toVec3(s.camera.Camera().Position)
	viewDir := s.dragInitPos.Sub(camPos).Normalize()
	cross1 := viewDir.Cross(s.dragAxis)
	s.dragPlaneNormal = s.dragAxis.Cross(cross1).Normalize()

	gray := geom.Ray{Origin: toVec3(ray.Position), Direction: toVec3(ray.Direction)}
	if pt, ok := geom.RayPlane(gray, s.dragInitPos, s.dragPlaneNormal); ok {
		s.dragStart = pt.Sub(s.dragInitPos).Dot(s.dragAxis)
	}
}

// updateDrag moves the active instance along the drag axis. The containment
// clamp runs on the candidate before it reaches the store, so an out-of-room
// position is never observable.
func (s *Session) updateDrag(ray rl.Ray) {
	inst, ok := s.store.Get(s.activeID)
	if !ok {
		s.dragging = false
		return
	}

	gray := geom.Ray{Origin: toVec3(ray.Position), Direction: toVec3(ray.Direction)}
	pt, hit := geom.RayPlane(gray, s.dragInitPos, s.dragPlaneNormal)
	if !hit {
		return
	}

	currentT := pt.Sub(s.dragInitPos).Dot(s.dragAxis)
	delta := currentT - s.dragStart

	candidate := s.dragInitPos.Add(s.dragAxis.Scale(delta))
	clamped := bounds.Clamp(candidate, inst.Rotation.Y, inst.Dimensions, s.store.Room())
	s.store.UpdatePosition(s.activeID, clamped)
}

func (s *Session) endDrag() {
	s.dragging = false
	s.dragAxisIdx = -1
}

// drawGizmo draws the three translate handles on the active instance. Call
// inside BeginMode3D.
func (s *Session) drawGizmo() {
	inst, ok := s.store.Get(s.activeID)
	if !ok {
		return
	}
	center := toRaylib(inst.Position)

	rl.DrawRenderBatchActive()
	rl.DisableDepthTest()

	for i, axis := range gizmoAxes {
		color := gizmoColors[i]
		if s.dragging && s.dragAxisIdx == i {
			color = rl.Yellow
		} else if !s.dragging && s.hoveredAxis == i {
			color = rl.Yellow
		}

		end := rl.Vector3Add(center, rl.Vector3Scale(toRaylib(axis), gizmoLength))
		rl.DrawCylinderEx(center, end, gizmoThickness, gizmoThickness, 8, color)
		tip := rl.Vector3{X: gizmoTipSize, Y: gizmoTipSize, Z: gizmoTipSize}
		rl.DrawCubeV(end, tip, color)
	}

	rl.DrawRenderBatchActive()
	rl.EnableDepthTest()
}
