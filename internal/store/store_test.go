package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomplanner/internal/geom"
)

func chairDims() geom.Dimensions {
	return geom.Dimensions{Width: 0.75, Height: 1, Depth: 0.5}
}

func roomCenter(room geom.Dimensions, height float32) geom.Vec3 {
	return geom.Vec3{X: room.Width / 2, Y: height / 2, Z: room.Depth / 2}
}

func TestUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for range 200 {
		inst := NewCatalogInstance("チェア", chairDims(), geom.Vec3{})
		require.False(t, seen[inst.ID], "duplicate id %s", inst.ID)
		seen[inst.ID] = true
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	s := New(DefaultRoom(), nil)
	inst := NewCatalogInstance("チェア", chairDims(), geom.Vec3{})

	assert.True(t, s.Add(inst))
	assert.False(t, s.Add(inst))
	assert.Equal(t, 1, s.Len())
}

func TestAddPrependsRemoveKeepsOrder(t *testing.T) {
	s := New(DefaultRoom(), nil)
	a := NewCatalogInstance("a", chairDims(), geom.Vec3{})
	b := NewCatalogInstance("b", chairDims(), geom.Vec3{})
	c := NewCatalogInstance("c", chairDims(), geom.Vec3{})
	s.Add(a)
	s.Add(b)
	s.Add(c)

	list := s.Instances()
	require.Len(t, list, 3)
	assert.Equal(t, []string{c.ID, b.ID, a.ID}, []string{list[0].ID, list[1].ID, list[2].ID})

	removed, ok := s.Remove(b.ID)
	require.True(t, ok)
	assert.Equal(t, b.ID, removed.ID)

	list = s.Instances()
	require.Len(t, list, 2)
	assert.Equal(t, []string{c.ID, a.ID}, []string{list[0].ID, list[1].ID})
}

func TestProductInstanceNotResizable(t *testing.T) {
	s := New(DefaultRoom(), nil)
	p := NewProductInstance(42, "sofa-x", geom.Dimensions{Width: 1.8, Height: 0.7, Depth: 0.9}, geom.Vec3{})
	s.Add(p)

	w := float32(2.5)
	got, changed := s.UpdateDimensions(p.ID, DimensionPatch{Width: &w})
	assert.False(t, changed)
	assert.Equal(t, float32(1.8), got.Dimensions.Width)

	// still unchanged in the list
	stored, _ := s.Get(p.ID)
	assert.Equal(t, float32(1.8), stored.Dimensions.Width)
}

func TestUpdateDimensionsClampsToRange(t *testing.T) {
	s := New(DefaultRoom(), nil)
	inst := NewCatalogInstance("チェア", chairDims(), geom.Vec3{})
	s.Add(inst)

	big := float32(99)
	tiny := float32(0.001)
	got, changed := s.UpdateDimensions(inst.ID, DimensionPatch{Width: &big, Height: &tiny})
	require.True(t, changed)
	assert.Equal(t, DimensionMax, got.Dimensions.Width)
	assert.Equal(t, DimensionMin, got.Dimensions.Height)
	assert.Equal(t, chairDims().Depth, got.Dimensions.Depth)
}

func TestRotateTwiceByQuarterTurn(t *testing.T) {
	room := geom.Dimensions{Width: 5, Depth: 4, Height: 2.5}
	s := New(room, nil)
	inst := NewCatalogInstance("チェア", chairDims(), roomCenter(room, 1))
	s.Add(inst)

	for range 2 {
		cur, _ := s.Get(inst.ID)
		y := cur.Rotation.Y + math.Pi/2
		got, changed := s.UpdateRotation(inst.ID, RotationPatch{Y: &y})
		require.True(t, changed)
		assert.Equal(t, chairDims(), got.Dimensions)
	}

	got, _ := s.Get(inst.ID)
	assert.InDelta(t, math.Pi, got.Rotation.Y, 1e-5)
}

func TestYawWrapsAround(t *testing.T) {
	s := New(DefaultRoom(), nil)
	inst := NewCatalogInstance("チェア", chairDims(), geom.Vec3{})
	s.Add(inst)

	y := float32(2*math.Pi + 0.25)
	got, _ := s.UpdateRotation(inst.ID, RotationPatch{Y: &y})
	assert.InDelta(t, 0.25, got.Rotation.Y, 1e-5)

	y = float32(-math.Pi / 2)
	got, _ = s.UpdateRotation(inst.ID, RotationPatch{Y: &y})
	assert.InDelta(t, 3*math.Pi/2, got.Rotation.Y, 1e-5)
}

func TestRoomShrinkReclampsImmediately(t *testing.T) {
	room := geom.Dimensions{Width: 5, Depth: 4, Height: 2.5}
	s := New(room, nil)
	inst := NewCatalogInstance("ソファ", geom.Dimensions{Width: 1.2, Height: 0.6, Depth: 0.85}, geom.Vec3{X: 4.3, Y: 0.3, Z: 3.5})
	s.Add(inst)

	require.True(t, s.SetRoom(geom.Dimensions{Width: 2, Depth: 2, Height: 2.5}))

	got, _ := s.Get(inst.ID)
	assert.InDelta(t, 2-0.6, got.Position.X, 1e-5)   // width - halfWidth
	assert.InDelta(t, 2-0.425, got.Position.Z, 1e-5) // depth - halfDepth
	assert.InDelta(t, 0.3, got.Position.Y, 1e-5)     // untouched
}

func TestSetRoomRejectsNonPositive(t *testing.T) {
	s := New(DefaultRoom(), nil)
	assert.False(t, s.SetRoom(geom.Dimensions{Width: 0, Depth: 4, Height: 2.5}))
	assert.Equal(t, DefaultRoom(), s.Room())
}

func TestVisibilityDefaultsToVisible(t *testing.T) {
	s := New(DefaultRoom(), nil)
	inst := NewCatalogInstance("チェア", chairDims(), geom.Vec3{})
	s.Add(inst)

	assert.True(t, s.Visible(inst.ID))
	assert.True(t, s.Visible("never-seen"))

	s.SetVisibility(inst.ID, false)
	assert.False(t, s.Visible(inst.ID))

	// visibility survives unrelated instance mutations
	y := float32(1)
	s.UpdateRotation(inst.ID, RotationPatch{Y: &y})
	assert.False(t, s.Visible(inst.ID))
}

func TestWriteThroughOnEveryListChange(t *testing.T) {
	var saves int
	s := New(DefaultRoom(), func(instances []Instance, room geom.Dimensions) {
		saves++
	})

	inst := NewCatalogInstance("チェア", chairDims(), geom.Vec3{})
	s.Add(inst)
	s.UpdatePosition(inst.ID, geom.Vec3{X: 1, Y: 0.5, Z: 1})
	s.Remove(inst.ID)

	assert.Equal(t, 3, saves)
}

func TestSnapshotStripsNothingButReadersGetCopies(t *testing.T) {
	s := New(DefaultRoom(), nil)
	inst := NewCatalogInstance("チェア", chairDims(), geom.Vec3{})
	s.Add(inst)

	list := s.Instances()
	list[0].Label = "mutated"

	got, _ := s.Get(inst.ID)
	assert.Equal(t, "チェア", got.Label)
}
