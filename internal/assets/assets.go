package assets

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlaceholderColor tints the stand-in box drawn when a model cannot be
// loaded. Semi-transparent so the user sees it is not the real furniture.
var PlaceholderColor = rl.Color{R: 0x00, G: 0xff, B: 0x99, A: 0x80}

// LoadResult is what a load attempt produced. Placeholder is set when the
// real model could not be loaded and a box of the requested dimensions was
// generated instead; Reason says why.
type LoadResult struct {
	Model       rl.Model
	Placeholder bool
	Reason      string
}

// Loader loads furniture models, caching by source so repeated placements of
// the same catalog entry share GPU resources. Remote product models are
// downloaded once into a disk cache.
type Loader struct {
	cdnBase  string
	cacheDir string
	http     *http.Client

	models map[string]rl.Model
}

// downloadTimeout bounds a CDN fetch so an unreachable host cannot stall the
// session indefinitely.
const downloadTimeout = 30 * time.Second

// NewLoader returns a loader that fetches product models from cdnBase and
// keeps downloads under cacheDir.
func NewLoader(cdnBase, cacheDir string) *Loader {
	return &Loader{
		cdnBase:  cdnBase,
		cacheDir: cacheDir,
		http:     &http.Client{Timeout: downloadTimeout},
		models:   make(map[string]rl.Model),
	}
}

// LoadCatalogModel loads a bundled catalog model from disk. It never fails
// outright: a broken or missing file yields a placeholder box.
func (l *Loader) LoadCatalogModel(path string) LoadResult {
	if model, exists := l.models[path]; exists {
		return LoadResult{Model: model}
	}

	if _, err := os.Stat(path); err != nil {
		return l.placeholder(fmt.Sprintf("model file %s: %v", path, err))
	}

	model := rl.LoadModel(path)
	if model.MeshCount == 0 {
		return l.placeholder(fmt.Sprintf("model file %s: no meshes", path))
	}

	l.models[path] = model
	return LoadResult{Model: model}
}

// LoadProductModel fetches a product model from the CDN, caching the download
// on disk. Network or decode failures yield a placeholder box.
func (l *Loader) LoadProductModel(productID int64) LoadResult {
	url := fmt.Sprintf("%s/products/%d/model.glb", l.cdnBase, productID)
	if model, exists := l.models[url]; exists {
		return LoadResult{Model: model}
	}

	local := filepath.Join(l.cacheDir, fmt.Sprintf("%d.glb", productID))
	if _, err := os.Stat(local); err != nil {
		if err := l.download(url, local); err != nil {
			return l.placeholder(fmt.Sprintf("product %d: %v", productID, err))
		}
	}

	model := rl.LoadModel(local)
	if model.MeshCount == 0 {
		// a stale or truncated cache entry should not wedge the product forever
		os.Remove(local)
		return l.placeholder(fmt.Sprintf("product %d: cached model has no meshes", productID))
	}

	l.models[url] = model
	return LoadResult{Model: model}
}

func (l *Loader) download(url, local string) error {
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return err
	}

	resp, err := l.http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("download %s: %s", url, resp.Status)
	}

	tmp := local + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, local)
}

// placeholder generates a unit box; the scene scales it to the instance
// dimensions like any other model, so the box tracks later resize edits.
func (l *Loader) placeholder(reason string) LoadResult {
	slog.Warn("falling back to placeholder model", "reason", reason)
	mesh := rl.GenMeshCube(1, 1, 1)
	model := rl.LoadModelFromMesh(mesh)
	return LoadResult{Model: model, Placeholder: true, Reason: reason}
}

// UnloadPlaceholder releases a placeholder model. Placeholders are per
// instance, never shared, so they are freed when the instance goes away.
func (l *Loader) UnloadPlaceholder(res LoadResult) {
	if res.Placeholder {
		rl.UnloadModel(res.Model)
	}
}

// Unload releases every cached model.
func (l *Loader) Unload() {
	for _, model := range l.models {
		rl.UnloadModel(model)
	}
	l.models = make(map[string]rl.Model)
}
