// Package ai holds the clients for the optional AI affordances: room-photo
// analysis, the chat advisor and product search. All of them are black-box
// HTTP collaborators; any failure here leaves the arrangement untouched.
package ai

import (
	"roomplanner/internal/geom"
	"roomplanner/internal/store"
)

// FurnitureSummary is the per-instance context the chat and search services
// receive. Mirrors the snapshot projection minus color and rotation.
type FurnitureSummary struct {
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	Position   geom.Vec3       `json:"position"`
	Dimensions geom.Dimensions `json:"dimensions"`
	ProductID  int64           `json:"productId,omitempty"`
}

// Summarize projects store instances into the shape the AI services expect.
func Summarize(instances []store.Instance) []FurnitureSummary {
	out := make([]FurnitureSummary, 0, len(instances))
	for _, inst := range instances {
		fs := FurnitureSummary{
			ID:         inst.ID,
			Label:      inst.Label,
			Position:   inst.Position,
			Dimensions: inst.Dimensions,
		}
		if inst.Kind == store.KindProduct {
			fs.ProductID = inst.ProductID
		}
		out = append(out, fs)
	}
	return out
}
