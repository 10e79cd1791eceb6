package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("test", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Locale != "en" || cfg.Stage != "stage_1" || cfg.Volume != 0.6 || cfg.Debug {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadEnvThenFlags(t *testing.T) {
	t.Setenv("BATTLESTAGE_LOCALE", "ko")
	t.Setenv("BATTLESTAGE_STAGE", "stage_2")
	t.Setenv("BATTLESTAGE_DEBUG", "true")
	t.Setenv("BATTLESTAGE_FEED_URL", "ws://localhost:9000/feed")

	cfg, err := Load("test", []string{"-stage", "stage_3", "-volume", "0.25"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Locale != "ko" || !cfg.Debug || cfg.FeedURL != "ws://localhost:9000/feed" {
		t.Fatalf("env values not applied: %+v", cfg)
	}
	if cfg.Stage != "stage_3" || cfg.Volume != 0.25 {
		t.Fatalf("flags should override env: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		args []string
		want string
	}{
		{name: "bad env", env: map[string]string{"BATTLESTAGE_DEBUG": "maybe"}, want: "parse env:"},
		{name: "bad flag", args: []string{"-volume", "loud"}, want: "parse flags:"},
		{name: "volume range", args: []string{"-volume", "2"}, want: "out of range"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load("test", tc.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err=%v, want %q", err, tc.want)
			}
		})
	}
}
