// Package store is the single source of truth for the arrangement: the
// ordered furniture list, the room dimensions and per-instance visibility.
// The scene layer mirrors this state, never the other way around.
package store

import (
	"roomplanner/internal/bounds"
	"roomplanner/internal/geom"
)

// Dimension edit limits, in meters.
const (
	DimensionMin  float32 = 0.05
	DimensionMax  float32 = 3.0
	DimensionStep float32 = 0.1
)

// DefaultRoom is used when nothing was persisted.
func DefaultRoom() geom.Dimensions {
	return geom.Dimensions{Width: 5, Height: 2.5, Depth: 4}
}

// SaveFunc receives a snapshot after every mutation that changes the list or
// the room. Write-through on every change: frequent small writes in exchange
// for crash safety.
type SaveFunc func(instances []Instance, room geom.Dimensions)

// DimensionPatch updates only the set fields.
type DimensionPatch struct {
	Width  *float32
	Height *float32
	Depth  *float32
}

// RotationPatch updates only the set fields, in radians.
type RotationPatch struct {
	X *float32
	Y *float32
	Z *float32
}

// Store owns the canonical instance list. All mutations replace the list
// wholesale so readers never observe a half-updated instance.
type Store struct {
	instances  []Instance
	room       geom.Dimensions
	visibility map[string]bool
	save       SaveFunc
}

// New builds a store around the given room. save may be nil.
func New(room geom.Dimensions, save SaveFunc) *Store {
	if room.Width <= 0 || room.Height <= 0 || room.Depth <= 0 {
		room = DefaultRoom()
	}
	return &Store{
		room:       room,
		visibility: make(map[string]bool),
		save:       save,
	}
}

// Instances returns a copy of the current list, newest first.
func (s *Store) Instances() []Instance {
	out := make([]Instance, len(s.instances))
	copy(out, s.instances)
	return out
}

// Get returns the instance with the given id.
func (s *Store) Get(id string) (Instance, bool) {
	for _, inst := range s.instances {
		if inst.ID == id {
			return inst, true
		}
	}
	return Instance{}, false
}

// Len returns the number of placed instances.
func (s *Store) Len() int {
	return len(s.instances)
}

// Room returns the current room dimensions.
func (s *Store) Room() geom.Dimensions {
	return s.room
}

// SetRoom updates the room dimensions and immediately re-clamps every
// instance so nothing is left poking through the new walls.
func (s *Store) SetRoom(room geom.Dimensions) bool {
	if room.Width <= 0 || room.Height <= 0 || room.Depth <= 0 {
		return false
	}
	s.room = room

	next := make([]Instance, len(s.instances))
	copy(next, s.instances)
	for i := range next {
		next[i].Position = bounds.Clamp(next[i].Position, next[i].Rotation.Y, next[i].Dimensions, s.room)
	}
	s.instances = next
	s.snapshot()
	return true
}

// Add prepends a new instance, matching the panel's newest-first ordering.
// A duplicate id is rejected.
func (s *Store) Add(inst Instance) bool {
	if inst.ID == "" {
		return false
	}
	if _, exists := s.Get(inst.ID); exists {
		return false
	}
	next := make([]Instance, 0, len(s.instances)+1)
	next = append(next, inst)
	next = append(next, s.instances...)
	s.instances = next
	s.visibility[inst.ID] = true
	s.snapshot()
	return true
}

// Append adds an instance at the end of the list. Batch restores use this to
// keep the persisted ordering.
func (s *Store) Append(inst Instance) bool {
	if inst.ID == "" {
		return false
	}
	if _, exists := s.Get(inst.ID); exists {
		return false
	}
	next := make([]Instance, len(s.instances), len(s.instances)+1)
	copy(next, s.instances)
	s.instances = append(next, inst)
	s.visibility[inst.ID] = true
	s.snapshot()
	return true
}

// Remove deletes the instance and returns it so the caller can release its
// mesh and detach the gizmo.
func (s *Store) Remove(id string) (Instance, bool) {
	for i, inst := range s.instances {
		if inst.ID != id {
			continue
		}
		next := make([]Instance, 0, len(s.instances)-1)
		next = append(next, s.instances[:i]...)
		next = append(next, s.instances[i+1:]...)
		s.instances = next
		delete(s.visibility, id)
		s.snapshot()
		return inst, true
	}
	return Instance{}, false
}

// Clear drops every instance. The photo-analysis rebuild starts from here.
func (s *Store) Clear() {
	s.instances = nil
	s.visibility = make(map[string]bool)
	s.snapshot()
}

// UpdateDimensions applies a partial dimension edit, clamped to the allowed
// range. A no-op for product instances: real furniture is not resizable.
func (s *Store) UpdateDimensions(id string, patch DimensionPatch) (Instance, bool) {
	return s.update(id, func(inst *Instance) bool {
		if !inst.Resizable() {
			return false
		}
		d := inst.Dimensions
		if patch.Width != nil {
			d.Width = geom.Clamp(*patch.Width, DimensionMin, DimensionMax)
		}
		if patch.Height != nil {
			d.Height = geom.Clamp(*patch.Height, DimensionMin, DimensionMax)
		}
		if patch.Depth != nil {
			d.Depth = geom.Clamp(*patch.Depth, DimensionMin, DimensionMax)
		}
		inst.Dimensions = d
		return true
	})
}

// UpdateRotation applies a partial rotation edit. Yaw wraps into [0, 2π).
func (s *Store) UpdateRotation(id string, patch RotationPatch) (Instance, bool) {
	return s.update(id, func(inst *Instance) bool {
		r := inst.Rotation
		if patch.X != nil {
			r.X = *patch.X
		}
		if patch.Y != nil {
			r.Y = geom.WrapAngle(*patch.Y)
		}
		if patch.Z != nil {
			r.Z = *patch.Z
		}
		inst.Rotation = r
		return true
	})
}

// UpdatePosition commits a new anchor position. Callers run the containment
// clamp first; the store trusts the value it is handed.
func (s *Store) UpdatePosition(id string, pos geom.Vec3) (Instance, bool) {
	return s.update(id, func(inst *Instance) bool {
		inst.Position = pos
		return true
	})
}

// SetLoadFailed flags an instance whose model loading fell back to a
// placeholder.
func (s *Store) SetLoadFailed(id string, failed bool) {
	s.update(id, func(inst *Instance) bool {
		inst.LoadFailed = failed
		return true
	})
}

// Visible reports the instance's visibility; unknown ids default to visible.
func (s *Store) Visible(id string) bool {
	v, ok := s.visibility[id]
	return !ok || v
}

// SetVisibility toggles whether the scene draws the instance. Not persisted.
func (s *Store) SetVisibility(id string, visible bool) {
	s.visibility[id] = visible
}

func (s *Store) update(id string, fn func(*Instance) bool) (Instance, bool) {
	for i, inst := range s.instances {
		if inst.ID != id {
			continue
		}
		if !fn(&inst) {
			return s.instances[i], false
		}
		next := make([]Instance, len(s.instances))
		copy(next, s.instances)
		next[i] = inst
		s.instances = next
		s.snapshot()
		return inst, true
	}
	return Instance{}, false
}

func (s *Store) snapshot() {
	if s.save == nil {
		return
	}
	s.save(s.Instances(), s.room)
}
