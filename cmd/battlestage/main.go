package main

import (
	"context"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/battlestage/battlelog"
	"github.com/milk9111/battlestage/config"
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/audio"
	"github.com/milk9111/battlestage/prefabs"
	"github.com/milk9111/battlestage/speech"
	"github.com/milk9111/battlestage/stage"
)

func main() {
	cfg, err := config.Load("battlestage", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	prefabs.SetDir(cfg.PrefabsDir)

	if cfg.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	table, err := loadSpeech(cfg.Locale)
	if err != nil {
		log.Printf("battlestage: speech disabled: %v", err)
	}

	opts := stage.Options{
		Speech:  table,
		Systems: []ecs.System{audio.NewAudioSystem(cfg.Volume)},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.FeedURL != "" {
		feed, err := battlelog.DialFeed(ctx, cfg.FeedURL)
		if err != nil {
			log.Fatal(err)
		}
		opts.Source = feed
	}

	st, err := stage.Load(cfg.Stage, opts)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	watcher, err := prefabs.NewTreeWatcher(prefabs.Dir())
	if err != nil {
		log.Printf("battlestage: hot reload disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("battlestage")

	game := NewGame(st, watcher, cfg)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// loadSpeech returns the speech table for locale. A nil table disables
// speech bubbles.
func loadSpeech(locale string) (*speech.Table, error) {
	data, err := prefabs.Load("speech.yaml")
	if err != nil {
		return nil, err
	}
	catalog, err := speech.Parse(data)
	if err != nil {
		return nil, err
	}
	return catalog.Table(locale), nil
}
