package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.NotEmpty(t, cfg.AnalysisURL)
	assert.NotEmpty(t, cfg.ChatURL)
	assert.NotEmpty(t, cfg.SearchURL)
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "arrangement.db"), cfg.DatabasePath())
	assert.Equal(t, filepath.Join(cfg.DataDir, "models"), cfg.ModelCacheDir())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ROOMPLANNER_CHAT_URL", "http://example.test/chat")
	t.Setenv("ROOMPLANNER_DATA_DIR", "/tmp/planner")

	cfg := Load()
	assert.Equal(t, "http://example.test/chat", cfg.ChatURL)
	assert.Equal(t, "/tmp/planner", cfg.DataDir)
	assert.Equal(t, filepath.Join("/tmp/planner", "pending_product"), cfg.PendingProductFile)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nROOMPLANNER_TEST_KEY=plain\nROOMPLANNER_TEST_QUOTED=\"with spaces\"\nbroken line\n=novalue\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("ROOMPLANNER_TEST_KEY", "")
	t.Setenv("ROOMPLANNER_TEST_QUOTED", "")

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "plain", os.Getenv("ROOMPLANNER_TEST_KEY"))
	assert.Equal(t, "with spaces", os.Getenv("ROOMPLANNER_TEST_QUOTED"))
}

func TestLoadEnvMissingFileIsFine(t *testing.T) {
	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "nope.env")))
}
