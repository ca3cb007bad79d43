// Package catalog holds the static set of placeable furniture types.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"roomplanner/internal/geom"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// Entry describes one placeable furniture type. Name is the stable key used
// by persisted arrangements and the photo-analysis service; Label is what the
// panel shows.
type Entry struct {
	Name         string     `yaml:"name"`
	Label        string     `yaml:"label"`
	Model        string     `yaml:"model"`
	DefaultScale [3]float32 `yaml:"defaultScale"`
}

// Dimensions returns the entry's default scale as furniture dimensions.
func (e Entry) Dimensions() geom.Dimensions {
	return geom.Dimensions{
		Width:  e.DefaultScale[0],
		Height: e.DefaultScale[1],
		Depth:  e.DefaultScale[2],
	}
}

// Catalog is a read-only lookup of furniture entries, in file order.
type Catalog struct {
	entries []Entry
	byName  map[string]int
	byLabel map[string]int
}

type catalogFile struct {
	Furniture []Entry `yaml:"furniture"`
}

// Load reads a catalog from path, falling back to the built-in catalog when
// path is empty or missing.
func Load(path string) (*Catalog, error) {
	data := builtinCatalog
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			data = b
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(cf.Furniture) == 0 {
		return nil, fmt.Errorf("catalog has no furniture entries")
	}

	c := &Catalog{
		entries: cf.Furniture,
		byName:  make(map[string]int, len(cf.Furniture)),
		byLabel: make(map[string]int, len(cf.Furniture)),
	}
	for i, e := range cf.Furniture {
		if e.Name == "" || e.Model == "" {
			return nil, fmt.Errorf("catalog entry %d: name and model are required", i)
		}
		c.byName[e.Name] = i
		if e.Label != "" {
			c.byLabel[e.Label] = i
		}
	}
	return c, nil
}

// Entries returns all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// ByName finds an entry by its stable key.
func (c *Catalog) ByName(name string) (Entry, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// ByLabel finds an entry by its display label. Persisted arrangements key
// catalog furniture by label, so restores resolve through here first and fall
// back to the stable name.
func (c *Catalog) ByLabel(label string) (Entry, bool) {
	if i, ok := c.byLabel[label]; ok {
		return c.entries[i], true
	}
	return c.ByName(label)
}
