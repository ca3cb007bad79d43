// Package storage persists the arrangement to an embedded SQLite database:
// a small key/value table holding one JSON blob per key, the durable
// equivalent of the browser profile the arrangement used to live in.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"roomplanner/internal/geom"
	"roomplanner/internal/store"
)

const (
	keyFurniture = "furnitureData"
	keyRoom      = "roomDimensions"
)

// storedInstance is the serializable projection of a store.Instance. The mesh
// handle and the transient load-failure flag are stripped; productId is kept
// only when set.
type storedInstance struct {
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	Color      string          `json:"color"`
	Position   geom.Vec3       `json:"position"`
	Rotation   geom.Vec3       `json:"rotation"`
	Dimensions geom.Dimensions `json:"dimensions"`
	ProductID  int64           `json:"productId,omitempty"`
}

// Adapter reads and writes arrangement snapshots.
type Adapter struct {
	db *sql.DB
}

// Open opens (or creates) the snapshot database at path.
func Open(path string) (*Adapter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &Adapter{db: db}, nil
}

func (a *Adapter) Close() error {
	return a.db.Close()
}

// Save writes both snapshot keys. Called on every arrangement change.
func (a *Adapter) Save(instances []store.Instance, room geom.Dimensions) error {
	projected := make([]storedInstance, 0, len(instances))
	for _, inst := range instances {
		si := storedInstance{
			ID:         inst.ID,
			Label:      inst.Label,
			Color:      inst.Color,
			Position:   inst.Position,
			Rotation:   inst.Rotation,
			Dimensions: inst.Dimensions,
		}
		if inst.Kind == store.KindProduct {
			si.ProductID = inst.ProductID
		}
		projected = append(projected, si)
	}

	furniture, err := json.Marshal(projected)
	if err != nil {
		return fmt.Errorf("marshal furniture: %w", err)
	}
	dims, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("marshal room: %w", err)
	}

	if err := a.put(keyFurniture, furniture); err != nil {
		return err
	}
	return a.put(keyRoom, dims)
}

func (a *Adapter) put(key string, value []byte) error {
	_, err := a.db.Exec(`
		INSERT INTO snapshots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// LoadRoom reads the persisted room dimensions. Missing or malformed data
// yields the default room, never an error.
func (a *Adapter) LoadRoom() geom.Dimensions {
	raw, ok := a.get(keyRoom)
	if !ok {
		return store.DefaultRoom()
	}
	var room geom.Dimensions
	if err := json.Unmarshal(raw, &room); err != nil {
		return store.DefaultRoom()
	}
	if room.Width <= 0 || room.Height <= 0 || room.Depth <= 0 {
		return store.DefaultRoom()
	}
	return room
}

// LoadInstances reads the persisted furniture list. Missing or malformed data
// yields an empty list. Mesh reconstruction happens elsewhere; this returns
// plain instances with the product/catalog split already resolved.
func (a *Adapter) LoadInstances() []store.Instance {
	raw, ok := a.get(keyFurniture)
	if !ok {
		return nil
	}
	var saved []storedInstance
	if err := json.Unmarshal(raw, &saved); err != nil {
		return nil
	}

	out := make([]store.Instance, 0, len(saved))
	for _, si := range saved {
		if si.ID == "" {
			continue
		}
		inst := store.Instance{
			ID:         si.ID,
			Label:      si.Label,
			Color:      si.Color,
			Kind:       store.KindCatalog,
			Position:   si.Position,
			Rotation:   si.Rotation,
			Dimensions: si.Dimensions,
		}
		if si.ProductID != 0 {
			inst.Kind = store.KindProduct
			inst.ProductID = si.ProductID
		}
		out = append(out, inst)
	}
	return out
}

func (a *Adapter) get(key string) ([]byte, bool) {
	var value string
	err := a.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return nil, false
	}
	return []byte(value), true
}
