package sim

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"roomplanner/internal/ai"
	"roomplanner/internal/bounds"
	"roomplanner/internal/catalog"
	"roomplanner/internal/geom"
	"roomplanner/internal/product"
	"roomplanner/internal/store"
)

const remoteTimeout = 30 * time.Second

// placementCenter is where newly added furniture lands: the middle of the
// floor, resting on it.
func (s *Session) placementCenter(dims geom.Dimensions) geom.Vec3 {
	room := s.store.Room()
	pos := geom.Vec3{X: room.Width / 2, Y: dims.Height / 2, Z: room.Depth / 2}
	return bounds.Clamp(pos, 0, dims, room)
}

// addCatalog places a new piece of catalog furniture and attaches the gizmo.
func (s *Session) addCatalog(entry catalog.Entry) {
	dims := entry.Dimensions()
	inst := store.NewCatalogInstance(entry.Label, dims, s.placementCenter(dims))
	if !s.store.Add(inst) {
		return
	}
	s.attach(inst, entry.Model)
	s.selectInstance(inst.ID)
}

// addProductByID fetches product metadata and places the product. Used by the
// startup hand-off.
func (s *Session) addProductByID(id int64) {
	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	info, err := s.products.Lookup(ctx, id)
	if err != nil {
		slog.Error("product lookup failed", "id", id, "error", err)
		s.panel.status = "商品の取得に失敗しました"
		return
	}
	s.placeProduct(info)
}

// placeProduct adds a product instance to the room and attaches the gizmo.
func (s *Session) placeProduct(info product.Info) {
	dims := info.Dimensions()
	inst := store.NewProductInstance(info.ID, info.Name, dims, s.placementCenter(dims))
	if !s.store.Add(inst) {
		return
	}
	s.attach(inst, "")
	s.selectInstance(inst.ID)
}

// refreshProduct re-fetches product metadata for a restored instance. On
// failure the persisted values stay and the caller flags the instance.
func (s *Session) refreshProduct(inst store.Instance) (store.Instance, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	info, err := s.products.Lookup(ctx, inst.ProductID)
	if err != nil {
		slog.Warn("product refresh failed on restore", "id", inst.ProductID, "error", err)
		return inst, false
	}
	return mergeProductInfo(inst, info, s.store.Room()), true
}

// mergeProductInfo applies current metadata to a persisted product instance
// and re-clamps the position in case the product grew.
func mergeProductInfo(inst store.Instance, info product.Info, room geom.Dimensions) store.Instance {
	inst.Label = info.Name
	inst.Dimensions = info.Dimensions()
	inst.Position = bounds.Clamp(inst.Position, inst.Rotation.Y, inst.Dimensions, room)
	return inst
}

func (s *Session) selectInstance(id string) {
	s.activeID = id
	s.panel.expandedID = id
}

// toggleRow is the panel row click: selection and row expansion move
// together, so collapsing an expanded row also detaches the gizmo.
func (s *Session) toggleRow(id string) {
	if s.panel.expandedID == id {
		s.panel.expandedID = ""
		if s.activeID == id {
			s.activeID = ""
		}
		return
	}
	s.selectInstance(id)
}

// deleteInstance removes the instance, its scene node and, if active, the
// gizmo.
func (s *Session) deleteInstance(id string) {
	if s.activeID == id {
		s.activeID = ""
	}
	if s.panel.expandedID == id {
		s.panel.expandedID = ""
	}
	s.scene.Detach(id)
	s.store.Remove(id)
}

// setVisibility hides or shows an instance. Hiding the active instance
// detaches the gizmo so the user cannot drag something invisible.
func (s *Session) setVisibility(id string, visible bool) {
	s.store.SetVisibility(id, visible)
	if !visible && s.activeID == id {
		s.activeID = ""
	}
}

// rotateBy turns an instance's yaw by delta radians, wrapping into [0, 2π).
func (s *Session) rotateBy(id string, delta float32) {
	inst, ok := s.store.Get(id)
	if !ok {
		return
	}
	yaw := inst.Rotation.Y + delta
	s.store.UpdateRotation(id, store.RotationPatch{Y: &yaw})
}

// setRoom resizes the room: store re-clamps instances, the scene regenerates
// its shell, and the camera re-frames.
func (s *Session) setRoom(room geom.Dimensions) {
	if !s.store.SetRoom(room) {
		return
	}
	s.scene.Resize(room)
	if s.overhead {
		s.camera.ViewOverhead(room)
	} else {
		s.camera.ViewInside(room)
	}
}

// toggleView flips between the overhead framing and the room-center view.
func (s *Session) toggleView() {
	s.overhead = !s.overhead
	if s.overhead {
		s.camera.ViewOverhead(s.store.Room())
	} else {
		s.camera.ViewInside(s.store.Room())
	}
}

// purchase is the informational affordance on product rows; checkout is out
// of scope.
func (s *Session) purchase(inst store.Instance) {
	slog.Info("purchase requested", "product_id", inst.ProductID, "name", inst.Label)
	s.panel.status = "購入ページ: " + inst.Label
}

// captureSnapshot grabs the current frame, downscaled and encoded for the AI
// services. An empty string means the capture failed; requests go out without
// an image.
func (s *Session) captureSnapshot() string {
	img := rl.LoadImageFromScreen()
	goImg := img.ToImage()
	rl.UnloadImage(img)

	encoded, err := ai.EncodeSnapshot(goImg)
	if err != nil {
		slog.Warn("snapshot encode failed", "error", err)
		return ""
	}
	return encoded
}

// sendChat pushes the user message plus scene context to the advisor.
func (s *Session) sendChat(text string) {
	if s.chatBusy || text == "" {
		return
	}
	s.chatBusy = true
	s.panel.status = "アドバイスを問い合わせ中..."

	s.chatHistory = append(s.chatHistory, ai.ChatMessage{Role: "user", Text: text})
	history := make([]ai.ChatMessage, len(s.chatHistory))
	copy(history, s.chatHistory)

	snapshot := s.captureSnapshot()
	room := s.store.Room()
	furniture := ai.Summarize(s.store.Instances())

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		reply, err := s.chat.Send(ctx, history, snapshot, room, furniture)
		s.chatCh <- chatResult{reply: reply, err: err}
	}()
}

// runSearch asks the search service for one product matching the category.
func (s *Session) runSearch(category string) {
	if s.searchBusy || category == "" {
		return
	}
	s.searchBusy = true
	s.searchResult = nil
	s.panel.status = "商品を検索中..."

	snapshot := s.captureSnapshot()
	room := s.store.Room()
	furniture := ai.Summarize(s.store.Instances())

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		info, err := s.search.Search(ctx, category, snapshot, room, furniture)
		s.searchCh <- searchResult{info: info, err: err}
	}()
}

// analyzePhoto uploads a room photo. The resulting layout waits for an
// explicit confirmation before it replaces the arrangement.
func (s *Session) analyzePhoto(path string) {
	if s.analysisBusy || path == "" {
		return
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		s.panel.status = "写真を読めませんでした"
		slog.Error("read photo", "path", path, "error", err)
		return
	}

	s.analysisBusy = true
	s.panel.status = "写真を解析中..."

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		layout, err := s.analysis.Analyze(ctx, raw)
		s.analysisCh <- analysisResult{layout: layout, err: err}
	}()
}

// applyLayout clears the arrangement and rebuilds it from an analysis result.
// Unknown furniture names skip that entry only.
func (s *Session) applyLayout(layout ai.RoomLayout) {
	s.activeID = ""
	s.panel.expandedID = ""
	s.scene.Clear()
	s.store.Clear()

	room := layout.RoomDimensions
	if room.Width > 0 && room.Height > 0 && room.Depth > 0 {
		s.setRoom(room)
	}

	for _, det := range layout.FurnitureData {
		entry, ok := s.catalog.ByName(det.Name)
		if !ok {
			slog.Warn("analysis returned unknown furniture, skipped", "name", det.Name)
			continue
		}

		dims := geom.Dimensions{Width: det.Width, Height: det.Height, Depth: det.Depth}
		if dims.Width <= 0 || dims.Height <= 0 || dims.Depth <= 0 {
			dims = entry.Dimensions()
		}

		pos := geom.Vec3{X: det.PositionX, Y: math32.Max(det.PositionY, dims.Height/2), Z: det.PositionZ}
		pos = bounds.Clamp(pos, det.Rotation.Y, dims, s.store.Room())

		inst := store.NewCatalogInstance(entry.Label, dims, pos)
		inst.Rotation = det.Rotation
		inst.Rotation.Y = geom.WrapAngle(inst.Rotation.Y)
		if !s.store.Append(inst) {
			continue
		}
		s.attach(inst, entry.Model)
	}

	s.pendingLayout = nil
	s.panel.status = "写真から部屋を再現しました"
}
