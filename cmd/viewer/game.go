package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/battlestage/ecs/render"
	"github.com/milk9111/battlestage/prefabs"
	"github.com/milk9111/battlestage/viewer"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	viewer   *viewer.Viewer
	watcher  *prefabs.Watcher
	renderer *render.Renderer
	ui       *ebitenui.UI
	panel    *viewerUI
	debug    bool
}

func NewGame(v *viewer.Viewer, watcher *prefabs.Watcher, debug bool) *Game {
	panel := newViewerUI(v)
	return &Game{
		viewer:   v,
		watcher:  watcher,
		renderer: render.NewRenderer(prefabs.HUDSpec{}),
		ui:       panel.UI,
		panel:    panel,
		debug:    debug,
	}
}

func (g *Game) Update() error {
	for _, name := range g.watcher.Drain() {
		rel := prefabs.Rel(name)
		g.viewer.Reload(rel)
		render.ForgetImages()
	}

	var h, v float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		h--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		h++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v++
	}
	g.viewer.Pan(h, v)
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.viewer.ToggleUI()
	}
	if !g.panel.Focused() && inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.viewer.ResetCamera()
	}

	g.viewer.Update()
	g.panel.Sync()
	g.ui.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Background = g.viewer.Background()
	g.renderer.Draw(screen, g.viewer.World())
	if g.viewer.UIVisible() {
		g.ui.Draw(screen)
	}
	if g.debug {
		x, y := g.viewer.Camera()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  camera: %.0f,%.0f  slot: %s", ebiten.ActualFPS(), x, y, g.viewer.ActiveSlot()), 8, baseHeight-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
