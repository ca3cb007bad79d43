package sim

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"roomplanner/internal/store"
)

const (
	panelWidth   float32 = 320
	rowHeight    float32 = 26
	rowGap       float32 = 6
	sectionGap   float32 = 14
	panelPadding float32 = 12
)

var (
	colorPanelBg   = rl.NewColor(18, 18, 24, 245)
	colorPanelLine = rl.NewColor(40, 40, 55, 255)
	colorAccent    = rl.NewColor(108, 99, 255, 255)
	colorTextMain  = rl.NewColor(230, 230, 238, 255)
	colorTextMuted = rl.NewColor(150, 150, 160, 255)
)

type panelState struct {
	scroll      float32
	expandedID  string
	status      string
	showCatalog bool

	chatInput   string
	chatEditing bool
	chatReply   string

	searchInput   string
	searchEditing bool

	photoInput   string
	photoEditing bool
}

func initPanelStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(rl.NewColor(10, 10, 15, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(28, 28, 38, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(38, 38, 52, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(200, 200, 208, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextMain))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextMain))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(colorPanelLine))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 14)
}

func (s *Session) drawPanel() {
	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())
	panelX := screenW - panelWidth

	rl.DrawRectangle(int32(panelX), 0, int32(panelWidth), int32(screenH), colorPanelBg)
	rl.DrawRectangle(int32(panelX), 0, 2, int32(screenH), colorPanelLine)

	mouse := rl.GetMousePosition()
	if mouse.X > panelX {
		s.panel.scroll -= rl.GetMouseWheelMove() * 30
		if s.panel.scroll < 0 {
			s.panel.scroll = 0
		}
	}

	x := panelX + panelPadding
	w := panelWidth - 2*panelPadding
	y := panelPadding - s.panel.scroll

	y = s.drawViewSection(x, y, w)
	y = s.drawRoomSection(x, y, w)
	y = s.drawCatalogSection(x, y, w)
	y = s.drawFurnitureSection(x, y, w)
	y = s.drawAISection(x, y, w)
	_ = y

	if s.panel.status != "" {
		rl.DrawRectangle(int32(panelX), int32(screenH-28), int32(panelWidth), 28, rl.NewColor(28, 28, 38, 255))
		rl.DrawText(s.panel.status, int32(panelX+panelPadding), int32(screenH-22), 13, colorTextMuted)
	}
}

func (s *Session) drawViewSection(x, y, w float32) float32 {
	rl.DrawText("Room Planner", int32(x), int32(y), 18, colorTextMain)
	y += 26

	label := "視点: 全体"
	if !s.overhead {
		label = "視点: 室内"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: rowHeight}, label) {
		s.toggleView()
	}
	return y + rowHeight + sectionGap
}

func (s *Session) drawRoomSection(x, y, w float32) float32 {
	rl.DrawText("部屋サイズ", int32(x), int32(y), 15, colorTextMuted)
	y += 20

	room := s.store.Room()
	next := room

	next.Width = gui.Slider(rl.Rectangle{X: x + 60, Y: y, Width: w - 110, Height: 18},
		"幅", fmt.Sprintf("%.1fm", room.Width), room.Width, 1, 10)
	y += rowHeight
	next.Depth = gui.Slider(rl.Rectangle{X: x + 60, Y: y, Width: w - 110, Height: 18},
		"奥行", fmt.Sprintf("%.1fm", room.Depth), room.Depth, 1, 10)
	y += rowHeight
	next.Height = gui.Slider(rl.Rectangle{X: x + 60, Y: y, Width: w - 110, Height: 18},
		"高さ", fmt.Sprintf("%.1fm", room.Height), room.Height, 1, 5)
	y += rowHeight

	if next != room {
		s.setRoom(next)
	}
	return y + sectionGap
}

func (s *Session) drawCatalogSection(x, y, w float32) float32 {
	label := "家具を追加 ▸"
	if s.panel.showCatalog {
		label = "家具を追加 ▾"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: rowHeight}, label) {
		s.panel.showCatalog = !s.panel.showCatalog
	}
	y += rowHeight + rowGap

	if !s.panel.showCatalog {
		return y + sectionGap - rowGap
	}

	half := (w - rowGap) / 2
	entries := s.catalog.Entries()
	for i := 0; i < len(entries); i += 2 {
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: rowHeight}, entries[i].Label) {
			s.addCatalog(entries[i])
		}
		if i+1 < len(entries) {
			if gui.Button(rl.Rectangle{X: x + half + rowGap, Y: y, Width: half, Height: rowHeight}, entries[i+1].Label) {
				s.addCatalog(entries[i+1])
			}
		}
		y += rowHeight + rowGap
	}
	return y + sectionGap - rowGap
}

func (s *Session) drawFurnitureSection(x, y, w float32) float32 {
	instances := s.store.Instances()
	rl.DrawText(fmt.Sprintf("配置済み (%d)", len(instances)), int32(x), int32(y), 15, colorTextMuted)
	y += 20

	for _, inst := range instances {
		y = s.drawFurnitureRow(inst, x, y, w)
	}
	return y + sectionGap
}

func (s *Session) drawFurnitureRow(inst store.Instance, x, y, w float32) float32 {
	rowLabel := inst.Label
	if inst.LoadFailed {
		rowLabel += " (仮表示)"
	}
	if inst.ID == s.activeID {
		rl.DrawRectangle(int32(x-4), int32(y), 3, int32(rowHeight), colorAccent)
	}
	rl.DrawRectangleV(rl.Vector2{X: x, Y: y + 6}, rl.Vector2{X: 14, Y: 14}, tagColor(inst.Color))

	if gui.Button(rl.Rectangle{X: x + 20, Y: y, Width: w - 20, Height: rowHeight}, rowLabel) {
		s.toggleRow(inst.ID)
	}
	y += rowHeight + rowGap

	if s.panel.expandedID != inst.ID {
		return y
	}

	visible := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 18, Height: 18}, "表示", s.store.Visible(inst.ID))
	if visible != s.store.Visible(inst.ID) {
		s.setVisibility(inst.ID, visible)
	}
	if gui.Button(rl.Rectangle{X: x + 90, Y: y, Width: 60, Height: rowHeight}, "-90°") {
		s.rotateBy(inst.ID, -rl.Pi/2)
	}
	if gui.Button(rl.Rectangle{X: x + 156, Y: y, Width: 60, Height: rowHeight}, "+90°") {
		s.rotateBy(inst.ID, rl.Pi/2)
	}
	y += rowHeight + rowGap

	yawDeg := inst.Rotation.Y * rl.Rad2deg
	newYawDeg := gui.Slider(rl.Rectangle{X: x + 60, Y: y, Width: w - 110, Height: 18},
		"回転", fmt.Sprintf("%.0f°", yawDeg), yawDeg, 0, 360)
	if newYawDeg != yawDeg {
		yawRad := newYawDeg * rl.Deg2rad
		s.store.UpdateRotation(inst.ID, store.RotationPatch{Y: &yawRad})
	}
	y += rowHeight

	if inst.Resizable() {
		y = s.drawDimensionRow(inst, "幅", x, y, w, inst.Dimensions.Width, func(v float32) store.DimensionPatch {
			return store.DimensionPatch{Width: &v}
		})
		y = s.drawDimensionRow(inst, "高さ", x, y, w, inst.Dimensions.Height, func(v float32) store.DimensionPatch {
			return store.DimensionPatch{Height: &v}
		})
		y = s.drawDimensionRow(inst, "奥行", x, y, w, inst.Dimensions.Depth, func(v float32) store.DimensionPatch {
			return store.DimensionPatch{Depth: &v}
		})
	}

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 80, Height: rowHeight}, "削除") {
		s.deleteInstance(inst.ID)
		return y + rowHeight + rowGap
	}
	if inst.Kind == store.KindProduct {
		if gui.Button(rl.Rectangle{X: x + 90, Y: y, Width: w - 90, Height: rowHeight}, "購入する") {
			s.purchase(inst)
		}
	}
	return y + rowHeight + rowGap
}

func (s *Session) drawDimensionRow(inst store.Instance, label string, x, y, w, value float32, patch func(float32) store.DimensionPatch) float32 {
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 24, Height: 18}, "-") {
		s.store.UpdateDimensions(inst.ID, patch(value-store.DimensionStep))
	}
	if gui.Button(rl.Rectangle{X: x + w - 24, Y: y, Width: 24, Height: 18}, "+") {
		s.store.UpdateDimensions(inst.ID, patch(value+store.DimensionStep))
	}
	slid := gui.Slider(rl.Rectangle{X: x + 60, Y: y, Width: w - 120, Height: 18},
		label, fmt.Sprintf("%.2f", value), value, store.DimensionMin, store.DimensionMax)
	if slid != value {
		s.store.UpdateDimensions(inst.ID, patch(slid))
	}
	return y + rowHeight
}

func (s *Session) drawAISection(x, y, w float32) float32 {
	rl.DrawText("AIアシスタント", int32(x), int32(y), 15, colorTextMuted)
	y += 20

	if gui.TextBox(rl.Rectangle{X: x, Y: y, Width: w - 66, Height: rowHeight}, &s.panel.chatInput, 128, s.panel.chatEditing) {
		s.panel.chatEditing = !s.panel.chatEditing
	}
	if gui.Button(rl.Rectangle{X: x + w - 60, Y: y, Width: 60, Height: rowHeight}, "相談") && !s.chatBusy {
		s.sendChat(s.panel.chatInput)
		s.panel.chatInput = ""
	}
	y += rowHeight + rowGap

	if s.panel.chatReply != "" {
		y = drawWrapped(s.panel.chatReply, x, y, w)
		y += rowGap
	}

	if gui.TextBox(rl.Rectangle{X: x, Y: y, Width: w - 66, Height: rowHeight}, &s.panel.searchInput, 64, s.panel.searchEditing) {
		s.panel.searchEditing = !s.panel.searchEditing
	}
	if gui.Button(rl.Rectangle{X: x + w - 60, Y: y, Width: 60, Height: rowHeight}, "検索") && !s.searchBusy {
		s.runSearch(s.panel.searchInput)
	}
	y += rowHeight + rowGap

	if s.searchResult != nil {
		label := fmt.Sprintf("配置: %s (%.1fx%.1fx%.1fm)", s.searchResult.Name,
			s.searchResult.Width, s.searchResult.Height, s.searchResult.Depth)
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: rowHeight}, label) {
			s.placeProduct(*s.searchResult)
			s.searchResult = nil
		}
		y += rowHeight + rowGap
	}

	if gui.TextBox(rl.Rectangle{X: x, Y: y, Width: w - 66, Height: rowHeight}, &s.panel.photoInput, 256, s.panel.photoEditing) {
		s.panel.photoEditing = !s.panel.photoEditing
	}
	if gui.Button(rl.Rectangle{X: x + w - 60, Y: y, Width: 60, Height: rowHeight}, "解析") && !s.analysisBusy {
		s.analyzePhoto(s.panel.photoInput)
	}
	y += rowHeight + rowGap

	if s.pendingLayout != nil {
		rl.DrawText("解析結果で部屋を置き換えますか?", int32(x), int32(y), 13, colorTextMain)
		y += 20
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: (w - rowGap) / 2, Height: rowHeight}, "置き換える") {
			s.applyLayout(*s.pendingLayout)
		}
		if gui.Button(rl.Rectangle{X: x + (w+rowGap)/2, Y: y, Width: (w - rowGap) / 2, Height: rowHeight}, "キャンセル") {
			s.pendingLayout = nil
		}
		y += rowHeight + rowGap
	}
	return y
}

// drawWrapped renders text broken into panel-width lines. Measurement is
// per rune, good enough for short advisor replies.
func drawWrapped(text string, x, y, w float32) float32 {
	const size = 13
	runes := []rune(text)
	line := ""
	for _, r := range runes {
		candidate := line + string(r)
		if float32(rl.MeasureText(candidate, size)) > w || r == '\n' {
			rl.DrawText(line, int32(x), int32(y), size, colorTextMain)
			y += size + 4
			line = ""
			if r != '\n' {
				line = string(r)
			}
			continue
		}
		line = candidate
	}
	if line != "" {
		rl.DrawText(line, int32(x), int32(y), size, colorTextMain)
		y += size + 4
	}
	return y
}

// tagColor parses the "#rrggbb" tag on an instance; bad values fall back to
// gray.
func tagColor(hex string) rl.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return rl.Gray
	}
	return rl.NewColor(r, g, b, 255)
}
