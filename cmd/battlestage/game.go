package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/battlestage/config"
	"github.com/milk9111/battlestage/ecs/render"
	"github.com/milk9111/battlestage/prefabs"
	"github.com/milk9111/battlestage/stage"
)

const (
	baseWidth  = 960
	baseHeight = 540
)

type Game struct {
	stage    *stage.Stage
	watcher  *prefabs.Watcher
	renderer *render.Renderer
	cfg      config.Config
	paused   bool
}

func NewGame(st *stage.Stage, watcher *prefabs.Watcher, cfg config.Config) *Game {
	r := render.NewRenderer(st.Spec.HUD)
	r.Background = st.Background
	return &Game{stage: st, watcher: watcher, renderer: r, cfg: cfg}
}

func (g *Game) Update() error {
	g.reload()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		wx, wy := render.ScreenToWorld(g.stage.World(), float64(cx), float64(cy), baseWidth, baseHeight)
		g.stage.Touch(wx, wy)
	}
	if g.paused {
		return nil
	}

	g.stage.Update()
	return nil
}

func (g *Game) reload() {
	for _, name := range g.watcher.Drain() {
		rel := prefabs.Rel(name)
		if rel == "speech.yaml" {
			table, err := loadSpeech(g.cfg.Locale)
			if err != nil {
				log.Printf("battlestage: reload speech: %v", err)
				continue
			}
			g.stage.Characters.Speech = table
			continue
		}
		g.stage.Reload(rel)
		render.ForgetImages()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.stage.World())
	if g.cfg.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Tick: %d    FPS: %.2f    Boss: %s", g.stage.Tick(), ebiten.ActualFPS(), g.stage.BossID()))
		if boss, ok := g.stage.Entity(g.stage.BossID()); ok {
			names := g.stage.World().ComponentNames(boss)
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s: %s", boss, strings.Join(names, " ")), 0, 16)
		}
	}
	if g.paused {
		ebitenutil.DebugPrintAt(screen, "Paused", baseWidth/2-20, baseHeight/2)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
