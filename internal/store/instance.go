package store

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"roomplanner/internal/geom"
)

// Kind separates catalog furniture from real products. The distinction is
// resolved once at construction: product instances carry a ProductID, keep
// their real-world dimensions and cannot be resized.
type Kind int

const (
	KindCatalog Kind = iota
	KindProduct
)

// Instance is one placed piece of furniture. Renderable handles live in the
// scene layer, keyed by ID; the store only holds plain data.
type Instance struct {
	ID         string
	Label      string
	Color      string
	Kind       Kind
	ProductID  int64
	Position   geom.Vec3
	Rotation   geom.Vec3 // Euler radians; only yaw is user adjustable
	Dimensions geom.Dimensions

	// LoadFailed marks an instance whose model fell back to a placeholder
	// box. Informational only, never persisted.
	LoadFailed bool
}

// Resizable reports whether dimension edits apply. Real products keep their
// manufactured size.
func (i Instance) Resizable() bool {
	return i.Kind != KindProduct
}

// NewCatalogInstance builds an instance for a catalog entry placed at pos.
func NewCatalogInstance(label string, dims geom.Dimensions, pos geom.Vec3) Instance {
	return Instance{
		ID:         newID(),
		Label:      label,
		Color:      randomColor(),
		Kind:       KindCatalog,
		Position:   pos,
		Dimensions: dims,
	}
}

// NewProductInstance builds an instance for a remotely sourced product.
func NewProductInstance(productID int64, name string, dims geom.Dimensions, pos geom.Vec3) Instance {
	return Instance{
		ID:         newID(),
		Label:      name,
		Color:      randomColor(),
		Kind:       KindProduct,
		ProductID:  productID,
		Position:   pos,
		Dimensions: dims,
	}
}

// newID composes creation time with a random suffix so ids stay unique and
// roughly sortable by placement order.
func newID() string {
	return fmt.Sprintf("furniture-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// randomColor picks the cosmetic tag shown next to the instance in the panel.
func randomColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}
