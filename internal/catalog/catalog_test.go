package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltin(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, c.Entries())

	chair, ok := c.ByName("chair")
	require.True(t, ok)
	assert.Equal(t, "chair.glb", chair.Model)
	assert.Equal(t, [3]float32{0.75, 1, 0.5}, chair.DefaultScale)

	dims := chair.Dimensions()
	assert.Equal(t, float32(0.75), dims.Width)
	assert.Equal(t, float32(1), dims.Height)
	assert.Equal(t, float32(0.5), dims.Depth)
}

func TestLookupByLabelFallsBackToName(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	byLabel, ok := c.ByLabel("チェア")
	require.True(t, ok)
	byName, ok2 := c.ByLabel("chair")
	require.True(t, ok2)
	assert.Equal(t, byLabel, byName)

	_, ok = c.ByLabel("no-such-furniture")
	assert.False(t, ok)
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	override := `furniture:
  - name: stool
    label: スツール
    model: stool.glb
    defaultScale: [0.4, 0.45, 0.4]
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)
	_, ok := c.ByName("chair")
	assert.False(t, ok)
	_, ok = c.ByName("stool")
	assert.True(t, ok)
}

func TestLoadMissingOverrideUsesBuiltin(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	_, ok := c.ByName("sofa")
	assert.True(t, ok)
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("furniture:\n  - label: x\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
