// Package config reads binary settings from the environment and flags.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the game and viewer binaries.
type Config struct {
	PrefabsDir string  `env:"BATTLESTAGE_PREFABS_DIR"`
	Locale     string  `env:"BATTLESTAGE_LOCALE" envDefault:"en"`
	Stage      string  `env:"BATTLESTAGE_STAGE" envDefault:"stage_1"`
	FeedURL    string  `env:"BATTLESTAGE_FEED_URL"`
	Volume     float64 `env:"BATTLESTAGE_VOLUME" envDefault:"0.6"`
	Debug      bool    `env:"BATTLESTAGE_DEBUG"`
	// BaseMonitor opens the window on the first monitor instead of the primary one.
	BaseMonitor bool `env:"BATTLESTAGE_BASE_MONITOR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the environment, then lets flags in args override it.
func Load(name string, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.PrefabsDir, "prefabs", cfg.PrefabsDir, "directory overriding embedded prefabs")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "speech locale (BCP 47)")
	fs.StringVar(&cfg.Stage, "stage", cfg.Stage, "stage name in prefabs/stages (basename, .yaml optional)")
	fs.StringVar(&cfg.FeedURL, "feed", cfg.FeedURL, "websocket battle log feed; empty plays the stage replay")
	fs.Float64Var(&cfg.Volume, "volume", cfg.Volume, "sound effect volume 0..1")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug mode")
	fs.BoolVar(&cfg.BaseMonitor, "m", cfg.BaseMonitor, "use base monitor instead of primary (for multi-monitor setups)")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Volume < 0 || cfg.Volume > 1 {
		return Config{}, fmt.Errorf("volume %v out of range [0, 1]", cfg.Volume)
	}
	return cfg, nil
}
