// Package bounds keeps furniture inside the room shell.
package bounds

import (
	"github.com/chewxy/math32"

	"roomplanner/internal/geom"
)

// Footprint is the axis-aligned half-extent of a piece of furniture after
// applying its yaw. A bounding approximation of the rotated rectangle, so the
// check stays O(1) and independent of rotation order.
type Footprint struct {
	HalfWidth float32
	HalfDepth float32
}

// FootprintFor computes the rotated half-extents for the given dimensions and
// yaw in radians.
func FootprintFor(dims geom.Dimensions, yaw float32) Footprint {
	cos := math32.Abs(math32.Cos(yaw))
	sin := math32.Abs(math32.Sin(yaw))
	return Footprint{
		HalfWidth: dims.Width/2*cos + dims.Depth/2*sin,
		HalfDepth: dims.Depth/2*cos + dims.Width/2*sin,
	}
}

// Clamp corrects a candidate position so the rotated footprint stays inside
// [0, room.Width] x [0, room.Depth] and the piece rests on or above the floor.
// There is no ceiling clamp.
//
// When the footprint is wider than the room on an axis the min/max bounds
// invert; the position snaps to the room center on that axis instead.
func Clamp(candidate geom.Vec3, yaw float32, dims geom.Dimensions, room geom.Dimensions) geom.Vec3 {
	fp := FootprintFor(dims, yaw)

	out := candidate
	if room.Width < 2*fp.HalfWidth {
		out.X = room.Width / 2
	} else {
		out.X = geom.Clamp(candidate.X, fp.HalfWidth, room.Width-fp.HalfWidth)
	}

	if room.Depth < 2*fp.HalfDepth {
		out.Z = room.Depth / 2
	} else {
		out.Z = geom.Clamp(candidate.Z, fp.HalfDepth, room.Depth-fp.HalfDepth)
	}

	if out.Y < dims.Height/2 {
		out.Y = dims.Height / 2
	}
	return out
}

// Inside reports whether a position already satisfies the containment
// invariant for the given yaw and dimensions.
func Inside(pos geom.Vec3, yaw float32, dims geom.Dimensions, room geom.Dimensions) bool {
	return Clamp(pos, yaw, dims, room) == pos
}
