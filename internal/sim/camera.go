package sim

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"roomplanner/internal/geom"
)

// OrbitCamera circles a target point. Input moves the goal values; the
// current values chase them with damping so the view settles smoothly.
// Damping runs every tick even when draws are throttled.
type OrbitCamera struct {
	Target   rl.Vector3
	Yaw      float32 // degrees
	Pitch    float32
	Distance float32

	curYaw      float32
	curPitch    float32
	curDistance float32
	curTarget   rl.Vector3

	LookSpeed float32
	ZoomSpeed float32
	Damping   float32
}

func NewOrbitCamera(target rl.Vector3, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Target:      target,
		Yaw:         -135.0,
		Pitch:       -35.0,
		Distance:    distance,
		curYaw:      -135.0,
		curPitch:    -35.0,
		curDistance: distance,
		curTarget:   target,
		LookSpeed:   0.25,
		ZoomSpeed:   0.6,
		Damping:     10.0,
	}
}

// HandleInput applies orbit drag and wheel zoom. The session suppresses this
// while a gizmo drag is active or the pointer is over the panel.
func (c *OrbitCamera) HandleInput() {
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		c.Yaw += delta.X * c.LookSpeed
		c.Pitch -= delta.Y * c.LookSpeed
		if c.Pitch > 89 {
			c.Pitch = 89
		}
		if c.Pitch < -89 {
			c.Pitch = -89
		}
	}

	if scroll := rl.GetMouseWheelMove(); scroll != 0 {
		c.Distance -= scroll * c.ZoomSpeed
		if c.Distance < 0.5 {
			c.Distance = 0.5
		}
		if c.Distance > 50 {
			c.Distance = 50
		}
	}
}

// Update advances the damped values toward their goals.
func (c *OrbitCamera) Update(deltaTime float32) {
	t := c.Damping * deltaTime
	if t > 1 {
		t = 1
	}
	c.curYaw += (c.Yaw - c.curYaw) * t
	c.curPitch += (c.Pitch - c.curPitch) * t
	c.curDistance += (c.Distance - c.curDistance) * t
	c.curTarget.X += (c.Target.X - c.curTarget.X) * t
	c.curTarget.Y += (c.Target.Y - c.curTarget.Y) * t
	c.curTarget.Z += (c.Target.Z - c.curTarget.Z) * t
}

// ViewOverhead frames the whole room from above at 1.1x its diagonal.
func (c *OrbitCamera) ViewOverhead(room geom.Dimensions) {
	diag := math32.Sqrt(room.Width*room.Width + room.Height*room.Height + room.Depth*room.Depth)
	c.Target = rl.Vector3{X: room.Width / 2, Y: room.Height / 2, Z: room.Depth / 2}
	c.Distance = diag * 1.1
	c.Pitch = -50
	c.Yaw = -135
}

// ViewInside drops the viewpoint to eye height at the room center.
func (c *OrbitCamera) ViewInside(room geom.Dimensions) {
	c.Target = rl.Vector3{X: room.Width / 2, Y: room.Height * 0.6, Z: room.Depth / 2}
	c.Distance = 0.8
	c.Pitch = -5
}

// Camera materializes the damped state as a raylib camera.
func (c *OrbitCamera) Camera() rl.Camera3D {
	yawRad := c.curYaw * rl.Deg2rad
	pitchRad := c.curPitch * rl.Deg2rad

	offset := rl.Vector3{
		X: math32.Cos(yawRad) * math32.Cos(pitchRad),
		Y: math32.Sin(pitchRad),
		Z: math32.Sin(yawRad) * math32.Cos(pitchRad),
	}
	pos := rl.Vector3{
		X: c.curTarget.X - offset.X*c.curDistance,
		Y: c.curTarget.Y - offset.Y*c.curDistance,
		Z: c.curTarget.Z - offset.Z*c.curDistance,
	}

	return rl.Camera3D{
		Position:   pos,
		Target:     c.curTarget,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
