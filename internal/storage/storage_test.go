package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomplanner/internal/geom"
	"roomplanner/internal/store"
)

func openTemp(t *testing.T) *Adapter {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "arrangement.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	a := openTemp(t)

	assert.Equal(t, store.DefaultRoom(), a.LoadRoom())
	assert.Empty(t, a.LoadInstances())
}

func TestRoundTrip(t *testing.T) {
	a := openTemp(t)

	room := geom.Dimensions{Width: 6, Height: 2.4, Depth: 3.5}
	chair := store.NewCatalogInstance("チェア", geom.Dimensions{Width: 0.75, Height: 1, Depth: 0.5}, geom.Vec3{X: 3, Y: 0.5, Z: 1.75})
	chair.Rotation.Y = 1.5
	sofa := store.NewProductInstance(42, "sofa-x", geom.Dimensions{Width: 1.8, Height: 0.7, Depth: 0.9}, geom.Vec3{X: 1, Y: 0.35, Z: 1})
	sofa.LoadFailed = true // transient, must not round-trip

	require.NoError(t, a.Save([]store.Instance{chair, sofa}, room))

	assert.Equal(t, room, a.LoadRoom())

	got := a.LoadInstances()
	require.Len(t, got, 2)

	assert.Equal(t, chair.ID, got[0].ID)
	assert.Equal(t, chair.Label, got[0].Label)
	assert.Equal(t, chair.Position, got[0].Position)
	assert.Equal(t, chair.Rotation, got[0].Rotation)
	assert.Equal(t, chair.Dimensions, got[0].Dimensions)
	assert.Equal(t, store.KindCatalog, got[0].Kind)

	assert.Equal(t, store.KindProduct, got[1].Kind)
	assert.Equal(t, int64(42), got[1].ProductID)
	assert.False(t, got[1].LoadFailed)
}

func TestSaveOverwrites(t *testing.T) {
	a := openTemp(t)

	first := store.NewCatalogInstance("ベッド", geom.Dimensions{Width: 1, Height: 0.4, Depth: 2}, geom.Vec3{})
	require.NoError(t, a.Save([]store.Instance{first}, store.DefaultRoom()))
	require.NoError(t, a.Save(nil, store.DefaultRoom()))

	assert.Empty(t, a.LoadInstances())
}

func TestMalformedBlobsYieldDefaults(t *testing.T) {
	a := openTemp(t)

	require.NoError(t, a.put(keyFurniture, []byte("{not json")))
	require.NoError(t, a.put(keyRoom, []byte(`{"width":-1,"depth":4,"height":2.5}`)))

	assert.Empty(t, a.LoadInstances())
	assert.Equal(t, store.DefaultRoom(), a.LoadRoom())
}

func TestDeletedInstanceAbsentFromSnapshot(t *testing.T) {
	a := openTemp(t)

	s := store.New(store.DefaultRoom(), func(instances []store.Instance, room geom.Dimensions) {
		_ = a.Save(instances, room)
	})

	kept := store.NewCatalogInstance("デスク", geom.Dimensions{Width: 1, Height: 0.6, Depth: 0.8}, geom.Vec3{})
	doomed := store.NewCatalogInstance("チェア", geom.Dimensions{Width: 0.75, Height: 1, Depth: 0.5}, geom.Vec3{})
	s.Add(kept)
	s.Add(doomed)
	s.Remove(doomed.ID)

	got := a.LoadInstances()
	require.Len(t, got, 1)
	assert.Equal(t, kept.ID, got[0].ID)
}
