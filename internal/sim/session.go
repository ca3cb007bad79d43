// Package sim runs the interactive arrangement session: the window, the
// orbit camera, pointer selection, the transform gizmo and the side panel.
// It wires the pure state packages to the renderer and owns every raylib
// handle for the lifetime of one Run call.
package sim

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"roomplanner/internal/ai"
	"roomplanner/internal/assets"
	"roomplanner/internal/catalog"
	"roomplanner/internal/config"
	"roomplanner/internal/geom"
	"roomplanner/internal/product"
	"roomplanner/internal/scene"
	"roomplanner/internal/storage"
	"roomplanner/internal/store"
)

const (
	screenWidth  = 1280
	screenHeight = 800

	// The loop runs at 60Hz for input and camera damping; the scene is drawn
	// every drawDivisor-th frame.
	targetFPS   = 60
	drawDivisor = 2

	doubleClickSeconds = 0.3
)

type Session struct {
	cfg     config.Config
	catalog *catalog.Catalog
	adapter *storage.Adapter
	store   *store.Store

	products *product.Client
	analysis *ai.AnalysisClient
	chat     *ai.ChatClient
	search   *ai.SearchClient

	loader *assets.Loader
	scene  *scene.Scene
	camera *OrbitCamera

	// selection and gizmo state
	activeID        string
	hoveredAxis     int
	dragging        bool
	dragAxisIdx     int
	dragAxis        geom.Vec3
	dragPlaneNormal geom.Vec3
	dragStart       float32
	dragInitPos     geom.Vec3
	lastClickTime   float64

	overhead bool

	panel panelState

	chatHistory []ai.ChatMessage
	chatBusy    bool
	chatCh      chan chatResult

	searchBusy   bool
	searchCh     chan searchResult
	searchResult *product.Info

	analysisBusy  bool
	analysisCh    chan analysisResult
	pendingLayout *ai.RoomLayout

	frame int
}

type chatResult struct {
	reply string
	err   error
}

type searchResult struct {
	info product.Info
	err  error
}

type analysisResult struct {
	layout ai.RoomLayout
	err    error
}

// New prepares a session: storage, catalog and the remote clients. Raylib is
// not touched until Run.
func New(cfg config.Config) (*Session, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	adapter, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	s := &Session{
		cfg:         cfg,
		catalog:     cat,
		adapter:     adapter,
		products:    product.NewClient(cfg.ProductURL),
		analysis:    ai.NewAnalysisClient(cfg.AnalysisURL),
		chat:        ai.NewChatClient(cfg.ChatURL),
		search:      ai.NewSearchClient(cfg.SearchURL),
		hoveredAxis: -1,
		dragAxisIdx: -1,
		chatCh:      make(chan chatResult, 1),
		searchCh:    make(chan searchResult, 1),
		analysisCh:  make(chan analysisResult, 1),
	}

	s.store = store.New(adapter.LoadRoom(), func(instances []store.Instance, room geom.Dimensions) {
		if err := adapter.Save(instances, room); err != nil {
			slog.Error("snapshot save failed", "error", err)
		}
	})
	return s, nil
}

// Run opens the window, restores the persisted arrangement and loops until
// the window closes. All raylib resources are released before returning.
func (s *Session) Run() error {
	rl.InitWindow(screenWidth, screenHeight, "Room Planner")
	defer rl.CloseWindow()
	rl.SetTargetFPS(targetFPS)

	s.loader = assets.NewLoader(s.cfg.CDNBaseURL, s.cfg.ModelCacheDir())
	s.scene = scene.New(s.loader)
	s.scene.Build(s.store.Room())

	room := s.store.Room()
	s.camera = NewOrbitCamera(s.scene.Center(), roomDiagonal(room)*1.1)
	s.overhead = true
	s.camera.ViewOverhead(room)

	initPanelStyle()

	s.restore()
	s.consumePendingProduct()

	for !rl.WindowShouldClose() {
		s.update(rl.GetFrameTime())

		s.frame++
		if s.frame%drawDivisor == 0 {
			s.draw()
		} else {
			// input polling and frame pacing happen in EndDrawing
			rl.BeginDrawing()
			rl.EndDrawing()
		}
	}

	s.scene.Unload()
	return s.adapter.Close()
}

func (s *Session) update(deltaTime float32) {
	s.camera.Update(deltaTime)
	s.drainResults()

	mouse := rl.GetMousePosition()
	overPanel := mouse.X > float32(rl.GetScreenWidth())-panelWidth
	ray := rl.GetScreenToWorldRay(mouse, s.camera.Camera())

	if s.dragging {
		// orbit input stays suspended until the drag ends
		if !rl.IsMouseButtonDown(rl.MouseLeftButton) {
			s.endDrag()
		} else {
			s.updateDrag(ray)
		}
		return
	}

	if !overPanel {
		s.camera.HandleInput()
	}

	s.hoveredAxis = -1
	if s.activeID != "" {
		s.hoveredAxis = s.pickGizmoAxis(ray)
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !overPanel {
		now := rl.GetTime()
		switch {
		case now-s.lastClickTime < doubleClickSeconds:
			s.activeID = ""
		case s.hoveredAxis >= 0:
			s.startDrag(s.hoveredAxis, ray)
		default:
			s.activeID = s.pickInstance(ray)
			if s.activeID != "" {
				s.panel.expandedID = s.activeID
			}
		}
		s.lastClickTime = now
	}
}

func (s *Session) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(24, 26, 32, 255))

	rl.BeginMode3D(s.camera.Camera())
	s.scene.Draw(s.store.Instances(), s.store.Visible, s.activeID)
	if s.activeID != "" {
		s.drawGizmo()
	}
	rl.EndMode3D()

	s.drawPanel()
	rl.EndDrawing()
}

func (s *Session) drainResults() {
	select {
	case res := <-s.chatCh:
		s.chatBusy = false
		if res.err != nil {
			s.panel.status = "チャットに失敗しました"
			slog.Error("chat failed", "error", res.err)
		} else {
			s.chatHistory = append(s.chatHistory, ai.ChatMessage{Role: "model", Text: res.reply})
			s.panel.chatReply = res.reply
		}
	default:
	}

	select {
	case res := <-s.searchCh:
		s.searchBusy = false
		if res.err != nil {
			s.panel.status = "検索に失敗しました"
			slog.Error("search failed", "error", res.err)
		} else {
			info := res.info
			s.searchResult = &info
			s.panel.status = "検索結果: " + info.Name
		}
	default:
	}

	select {
	case res := <-s.analysisCh:
		s.analysisBusy = false
		if res.err != nil {
			s.panel.status = "写真の解析に失敗しました"
			slog.Error("photo analysis failed", "error", res.err)
		} else {
			layout := res.layout
			s.pendingLayout = &layout
			s.panel.status = fmt.Sprintf("解析完了: 家具%d点", len(layout.FurnitureData))
		}
	default:
	}
}

// restore rebuilds the scene from the persisted arrangement. Each instance
// restores independently: a missing catalog name drops that instance, a model
// or metadata failure joins the list as a flagged placeholder.
func (s *Session) restore() {
	for _, inst := range s.adapter.LoadInstances() {
		if inst.Kind == store.KindCatalog {
			entry, ok := s.catalog.ByLabel(inst.Label)
			if !ok {
				slog.Warn("persisted furniture not in catalog, dropped", "label", inst.Label, "id", inst.ID)
				s.panel.status = "カタログにない家具を読み飛ばしました: " + inst.Label
				continue
			}
			if !s.store.Append(inst) {
				continue
			}
			s.attach(inst, entry.Model)
			continue
		}

		// product metadata may have changed since the save; re-fetch it
		inst, fresh := s.refreshProduct(inst)
		if !s.store.Append(inst) {
			continue
		}
		if !fresh {
			s.store.SetLoadFailed(inst.ID, true)
		}
		s.attach(inst, "")
	}
}

// attach loads the model for an instance and flags placeholder fallbacks. An
// instance removed while its model was loading is discarded.
func (s *Session) attach(inst store.Instance, modelFile string) {
	path := ""
	if modelFile != "" {
		path = filepath.Join("assets", "models", modelFile)
	}
	placeholder := s.scene.Attach(inst, path)

	if _, exists := s.store.Get(inst.ID); !exists {
		s.scene.Detach(inst.ID)
		return
	}
	if placeholder {
		s.store.SetLoadFailed(inst.ID, true)
	}
}

// consumePendingProduct handles the catalog front-end hand-off: a file with a
// single product id, written before this program starts. The file is removed
// whether or not the product resolves.
func (s *Session) consumePendingProduct() {
	raw, err := os.ReadFile(s.cfg.PendingProductFile)
	if err != nil {
		return
	}
	os.Remove(s.cfg.PendingProductFile)

	id, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		slog.Warn("pending product file is not a product id", "content", string(raw))
		return
	}
	s.addProductByID(id)
}

func roomDiagonal(room geom.Dimensions) float32 {
	return geom.Vec3{X: room.Width, Y: room.Height, Z: room.Depth}.Length()
}
