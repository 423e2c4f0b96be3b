// Package render is the ebiten front end of the map editor.
package render

import (
	"errors"
	"image"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/talgya/battle-isles/internal/editor"
	"github.com/talgya/battle-isles/internal/logger"
	"github.com/talgya/battle-isles/internal/viewport"
	"github.com/talgya/battle-isles/internal/visual"
	"github.com/talgya/battle-isles/internal/world"
)

var background = color.RGBA{12, 14, 20, 255}

// Store saves and loads maps by name.
type Store interface {
	SaveMap(name string, m *world.Map) error
	LoadMap(name string) (*world.Map, error)
}

// Options configure the editor window.
type Options struct {
	WindowW int
	WindowH int
	Insets  viewport.Insets

	// Initial contents of the size fields.
	MapW int
	MapH int

	// Store may be nil, which disables Save and Load.
	Store   Store
	MapName string
}

// Game implements ebiten.Game for the editor.
type Game struct {
	ctrl   *editor.Controller
	scene  *visual.Scene[*ebiten.Image]
	panels *panels
	opts   Options

	width, height int
	cam           viewport.Camera
	camDirty      bool

	brush     world.Terrain
	lastPaint image.Point
	painting  bool

	log *logrus.Entry
}

// New builds the editor around ctrl. It subscribes to ctrl's events, so
// create it before the first map is generated.
func New(ctrl *editor.Controller, opts Options) *Game {
	if opts.MapName == "" {
		opts.MapName = "untitled"
	}
	g := &Game{
		ctrl:     ctrl,
		scene:    visual.NewScene(newSpriteCache()),
		opts:     opts,
		width:    opts.WindowW,
		height:   opts.WindowH,
		brush:    world.TerrainPlains,
		camDirty: true,
		log:      logger.For("render"),
	}
	ctrl.Subscribe(g.scene.Handle)
	ctrl.Subscribe(g.onEvent)

	g.panels = newPanels(opts.Insets, opts.MapW, opts.MapH, opts.MapName, actions{
		generate: func(w, h int) { ctrl.Submit(editor.GenerateMapIntent{Width: w, Height: h}) },
		islands:  func() { ctrl.Submit(editor.SeedIslandsIntent{Config: world.DefaultIslandConfig()}) },
		save:     g.save,
		load:     g.load,
		copyText: g.copyPreview,
		brush:    g.setBrush,
	})
	g.panels.setBrush(g.brush)
	return g
}

func (g *Game) onEvent(e editor.Event) {
	if _, ok := e.(editor.MapReplaced); ok {
		g.camDirty = true
	}
}

func (g *Game) setBrush(t world.Terrain) {
	g.brush = t
	g.panels.setBrush(t)
}

func (g *Game) save(name string) {
	m := g.ctrl.Map()
	switch {
	case g.opts.Store == nil:
		g.panels.setStatus("no database configured", true)
	case m == nil:
		g.panels.setStatus(editor.ErrNoMap.Error(), true)
	case name == "":
		g.panels.setStatus("map name is empty", true)
	default:
		if err := g.opts.Store.SaveMap(name, m); err != nil {
			g.log.WithError(err).WithField("name", name).Error("save failed")
			g.panels.setStatus(err.Error(), true)
			return
		}
		g.panels.setStatus("saved "+name, false)
	}
}

func (g *Game) load(name string) {
	if g.opts.Store == nil {
		g.panels.setStatus("no database configured", true)
		return
	}
	m, err := g.opts.Store.LoadMap(name)
	if err != nil {
		g.log.WithError(err).WithField("name", name).Warn("load failed")
		g.panels.setStatus(err.Error(), true)
		return
	}
	g.ctrl.Submit(editor.LoadMapIntent{Map: m})
}

func (g *Game) copyPreview() {
	m := g.ctrl.Map()
	if m == nil {
		g.panels.setStatus(editor.ErrNoMap.Error(), true)
		return
	}
	if err := clipboard.WriteAll(visual.ASCII(m)); err != nil {
		g.log.WithError(err).Warn("clipboard unavailable")
		g.panels.setStatus(err.Error(), true)
		return
	}
	g.panels.setStatus("map preview copied", false)
}

func (g *Game) refreshCamera() {
	m := g.ctrl.Map()
	if m == nil {
		g.cam = viewport.Camera{}
	} else {
		g.cam = viewport.NewCamera(m.ViewBounds(), g.width, g.height, g.opts.Insets)
	}
	g.camDirty = false
}

// Update handles input, then applies this frame's queued intents.
func (g *Game) Update() error {
	g.panels.ui.Update()
	g.handlePointer()

	res := g.ctrl.Tick()
	if len(res.Errors) > 0 {
		g.panels.setStatus(errors.Join(res.Errors...).Error(), true)
	} else if res.Applied > 0 {
		g.panels.setStatus(g.ctrl.Status(), false)
	}
	if g.camDirty {
		g.refreshCamera()
	}
	return nil
}

// handlePointer queues a paint while the left button is held over the
// viewport. Clicks over the panels belong to the UI.
func (g *Game) handlePointer() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.painting = false
		return
	}
	x, y := ebiten.CursorPosition()
	if !g.cam.Visible() || !g.cam.Contains(x, y) {
		return
	}
	pt := image.Pt(x, y)
	if g.painting && pt == g.lastPaint {
		return
	}
	g.painting = true
	g.lastPaint = pt
	g.ctrl.Submit(editor.PaintIntent{
		Pos:     g.cam.ScreenToWorld(float64(x), float64(y)),
		Terrain: g.brush,
	})
}

// Draw renders the tiles clipped to the viewport, then the panels.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.drawTiles(screen)
	g.panels.ui.Draw(screen)
}

func (g *Game) drawTiles(screen *ebiten.Image) {
	// Every frame redraws all tiles, so the dirty list is only drained.
	g.scene.TakeDirty()
	m := g.scene.Map()
	if m == nil || !g.cam.Visible() {
		return
	}
	dst := screen.SubImage(g.cam.Screen).(*ebiten.Image)
	sw, sh := spriteSize(spriteRadius)
	scale := m.HexSize() * g.cam.Scale() / spriteRadius

	for i := range g.scene.Len() {
		sprite, _ := g.scene.HandleAt(i)
		p, ok := m.Placement(i)
		if sprite == nil || !ok {
			continue
		}
		sx, sy := g.cam.WorldToScreen(p)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(sw)/2, -float64(sh)/2)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(sx, sy)
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(sprite, op)
	}
}

// Layout tracks the window size so the camera refits on resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.camDirty = true
	}
	return g.width, g.height
}
