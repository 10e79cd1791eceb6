package main

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/battlestage/config"
	"github.com/milk9111/battlestage/prefabs"
	"github.com/milk9111/battlestage/resource"
	"github.com/milk9111/battlestage/viewer"
)

const historyApp = "battlestage_viewer"

func main() {
	cfg, err := config.Load("viewer", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	prefabs.SetDir(cfg.PrefabsDir)

	if cfg.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	v, err := viewer.New(resource.NewLoader(prefabs.Load), viewer.OpenHistory(historyApp))
	if err != nil {
		log.Fatal(err)
	}

	watcher, err := prefabs.NewTreeWatcher(prefabs.Dir())
	if err != nil {
		log.Printf("viewer: hot reload disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("battlestage viewer")

	if err := ebiten.RunGame(NewGame(v, watcher, cfg.Debug)); err != nil {
		log.Fatal(err)
	}
}
