package prefabs

import (
	"image/color"
	"testing"

	"github.com/milk9111/battlestage/resource"
	"github.com/milk9111/battlestage/speech"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedVisualsLoad(t *testing.T) {
	loader := resource.NewLoader(Load)
	cases := []struct {
		id       string
		wantClip string
	}{
		{"201000", "attack"},
		{"205007", "criticalattack"},
		{"100001", "win"},
		{"400000", "standing"},
		{"dialog_merchant", "touch_01"},
		{"300001", "open"},
	}
	for _, c := range cases {
		t.Run(c.id, func(t *testing.T) {
			p := resource.Path(resource.Classify(c.id), c.id)
			v, err := loader.Visual(p)
			if err != nil {
				t.Fatalf("load %s: %v", p, err)
			}
			if !v.HasClip(c.wantClip) {
				t.Fatalf("%s missing clip %s", p, c.wantClip)
			}
		})
	}
}

func TestEmbeddedBackgroundLoads(t *testing.T) {
	loader := resource.NewLoader(Load)
	bg, err := loader.Background(resource.BackgroundPath("forest"))
	if err != nil {
		t.Fatal(err)
	}
	if bg.Image == "" || bg.Scale != 1 {
		t.Fatalf("background=%+v", bg)
	}
}

func TestLoadStageSpec(t *testing.T) {
	spec, err := LoadStageSpec("stage_1")
	if err != nil {
		t.Fatal(err)
	}
	if spec.Background != "forest" || len(spec.NPCs) != 2 || len(spec.Scripts) != 1 {
		t.Fatalf("stage=%+v", spec)
	}
	want := color.NRGBA{R: 0xd9, G: 0x40, B: 0x40, A: 0xff}
	if got := spec.HUD.HPBarColor.Or(color.White); got != want {
		t.Fatalf("hp bar color=%v, want %v", got, want)
	}
	if _, err := LoadScript(spec.Scripts[0].File); err != nil {
		t.Fatalf("load script: %v", err)
	}
}

func TestEmbeddedSpeechCatalog(t *testing.T) {
	data, err := Load("speech.yaml")
	if err != nil {
		t.Fatal(err)
	}
	cat, err := speech.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cat.Table("en").Lookup("ENEMY_INIT", 0); !ok {
		t.Fatalf("expected ENEMY_INIT_0 cue")
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{`"#ff000080"`, color.NRGBA{R: 255, A: 128}, false},
		{`"00ff00"`, color.NRGBA{G: 255, A: 255}, false},
		{`"fff"`, color.NRGBA{}, true},
	}
	for _, c := range cases {
		var got YAMLColor
		err := yaml.Unmarshal([]byte(c.in), &got)
		if (err != nil) != c.wantErr {
			t.Fatalf("%s: err=%v", c.in, err)
		}
		if !c.wantErr && got.Color != c.want {
			t.Fatalf("%s: got %v, want %v", c.in, got.Color, c.want)
		}
	}
}

func TestCleanScriptPath(t *testing.T) {
	cases := map[string]string{
		"npc_stomp.tengo":                 "scripts/npc_stomp.tengo",
		"scripts/npc_stomp.tengo":         "scripts/npc_stomp.tengo",
		"prefabs/scripts/npc_stomp.tengo": "scripts/npc_stomp.tengo",
	}
	for in, want := range cases {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q)=%q, want %q", in, got, want)
		}
	}
}
