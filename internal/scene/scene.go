package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"roomplanner/internal/assets"
	"roomplanner/internal/bounds"
	"roomplanner/internal/geom"
	"roomplanner/internal/store"
)

const wallThickness = 0.05

type node struct {
	res assets.LoadResult
}

// Scene owns the renderable side of the arrangement: the room shell, the
// lighting shader and one model per placed instance, keyed by instance id.
// All state flows in from the store; the scene never mutates it.
type Scene struct {
	loader *assets.Loader

	shader   rl.Shader
	lightDir rl.Vector3

	room  geom.Dimensions
	floor rl.Model
	walls [4]wallPanel

	nodes map[string]node
}

type wallPanel struct {
	model rl.Model
	pos   rl.Vector3
}

// New creates a scene with lighting set up. Call Build before drawing.
func New(loader *assets.Loader) *Scene {
	s := &Scene{
		loader: loader,
		nodes:  make(map[string]node),
	}

	s.shader = rl.LoadShaderFromMemory(lightingVS, lightingFS)
	s.lightDir = rl.Vector3Normalize(rl.Vector3{X: 0.35, Y: -1.0, Z: -0.35})

	lightDirLoc := rl.GetShaderLocation(s.shader, "lightDir")
	rl.SetShaderValue(s.shader, lightDirLoc, []float32{s.lightDir.X, s.lightDir.Y, s.lightDir.Z}, rl.ShaderUniformVec3)

	lightColorLoc := rl.GetShaderLocation(s.shader, "lightColor")
	rl.SetShaderValue(s.shader, lightColorLoc, []float32{0.9, 0.9, 0.85, 1.0}, rl.ShaderUniformVec4)

	ambientLoc := rl.GetShaderLocation(s.shader, "ambient")
	rl.SetShaderValue(s.shader, ambientLoc, []float32{0.35, 0.35, 0.35, 1.0}, rl.ShaderUniformVec4)

	return s
}

// Build generates the room shell for the given dimensions. The floor spans
// (0,0,0)-(W,0,D); walls sit on the four edges.
func (s *Scene) Build(room geom.Dimensions) {
	s.room = room

	floorMesh := rl.GenMeshPlane(room.Width, room.Depth, 1, 1)
	s.floor = rl.LoadModelFromMesh(floorMesh)
	s.applyShader(s.floor)

	w, h, d := room.Width, room.Height, room.Depth
	sizes := [4]rl.Vector3{
		{X: w, Y: h, Z: wallThickness},
		{X: w, Y: h, Z: wallThickness},
		{X: wallThickness, Y: h, Z: d},
		{X: wallThickness, Y: h, Z: d},
	}
	positions := [4]rl.Vector3{
		{X: w / 2, Y: h / 2, Z: 0},
		{X: w / 2, Y: h / 2, Z: d},
		{X: 0, Y: h / 2, Z: d / 2},
		{X: w, Y: h / 2, Z: d / 2},
	}
	for i := range s.walls {
		mesh := rl.GenMeshCube(sizes[i].X, sizes[i].Y, sizes[i].Z)
		s.walls[i] = wallPanel{model: rl.LoadModelFromMesh(mesh), pos: positions[i]}
		s.applyShader(s.walls[i].model)
	}
}

// Resize regenerates the room shell in place. Furniture nodes are untouched;
// the store has already re-clamped positions.
func (s *Scene) Resize(room geom.Dimensions) {
	s.unloadRoom()
	s.Build(room)
}

// Room returns the dimensions the shell was last built for.
func (s *Scene) Room() geom.Dimensions {
	return s.room
}

// Center is the point the orbit camera targets.
func (s *Scene) Center() rl.Vector3 {
	return rl.Vector3{X: s.room.Width / 2, Y: s.room.Height / 2, Z: s.room.Depth / 2}
}

// Attach loads the model for an instance and registers it under the instance
// id. Catalog instances load modelPath from disk; product instances fetch
// from the CDN. Returns true when the load fell back to a placeholder.
func (s *Scene) Attach(inst store.Instance, modelPath string) bool {
	var res assets.LoadResult
	if inst.Kind == store.KindProduct {
		res = s.loader.LoadProductModel(inst.ProductID)
	} else {
		res = s.loader.LoadCatalogModel(modelPath)
	}
	s.applyShader(res.Model)
	s.nodes[inst.ID] = node{res: res}
	return res.Placeholder
}

// Detach drops the node for an instance, releasing placeholder geometry.
func (s *Scene) Detach(id string) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	s.loader.UnloadPlaceholder(n.res)
	delete(s.nodes, id)
}

// Has reports whether a node exists for the instance id.
func (s *Scene) Has(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// Clear detaches every furniture node.
func (s *Scene) Clear() {
	for id := range s.nodes {
		s.Detach(id)
	}
}

// Draw renders the room shell and every visible instance. The caller is
// inside BeginMode3D. The selected instance gets a wire box highlight.
func (s *Scene) Draw(instances []store.Instance, visible func(id string) bool, selectedID string) {
	rl.DrawModel(s.floor, rl.Vector3{X: s.room.Width / 2, Y: 0, Z: s.room.Depth / 2}, 1.0, rl.LightGray)
	for _, wall := range s.walls {
		rl.DrawModel(wall.model, wall.pos, 1.0, rl.Fade(rl.Beige, 0.35))
	}

	for _, inst := range instances {
		if visible != nil && !visible(inst.ID) {
			continue
		}
		n, ok := s.nodes[inst.ID]
		if !ok {
			continue
		}

		pos := rl.Vector3{X: inst.Position.X, Y: inst.Position.Y, Z: inst.Position.Z}
		yawDeg := inst.Rotation.Y * rl.Rad2deg

		scale, tint := appearance(n, inst)
		rl.DrawModelEx(n.res.Model, pos, rl.Vector3{Y: 1}, yawDeg, scale, tint)

		if inst.ID == selectedID {
			fp := footprintSize(inst)
			rl.DrawCubeWires(pos, fp.X, fp.Y, fp.Z, rl.Yellow)
		}
	}
}

// appearance picks the draw scale and tint for an instance node. Both real
// and placeholder models are unit-sized, so the scale always tracks the
// instance dimensions, resize edits included.
func appearance(n node, inst store.Instance) (rl.Vector3, rl.Color) {
	scale := rl.Vector3{X: inst.Dimensions.Width, Y: inst.Dimensions.Height, Z: inst.Dimensions.Depth}
	tint := rl.White
	if n.res.Placeholder {
		tint = assets.PlaceholderColor
	}
	return scale, tint
}

// footprintSize is the axis-aligned extent of a yaw-rotated instance, used
// for the selection highlight.
func footprintSize(inst store.Instance) rl.Vector3 {
	fp := bounds.FootprintFor(inst.Dimensions, inst.Rotation.Y)
	return rl.Vector3{X: fp.HalfWidth * 2, Y: inst.Dimensions.Height, Z: fp.HalfDepth * 2}
}

func (s *Scene) applyShader(model rl.Model) {
	mats := model.GetMaterials()
	for i := range mats {
		mats[i].Shader = s.shader
	}
}

func (s *Scene) unloadRoom() {
	rl.UnloadModel(s.floor)
	for _, wall := range s.walls {
		rl.UnloadModel(wall.model)
	}
}

// Unload releases everything the scene owns, including the shared loader
// cache.
func (s *Scene) Unload() {
	s.Clear()
	s.unloadRoom()
	rl.UnloadShader(s.shader)
	s.loader.Unload()
}
