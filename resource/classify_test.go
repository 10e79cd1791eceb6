package resource

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		id   string
		want Kind
	}{
		{"", KindInvalid},
		{"100010", KindPlayer},
		{"1", KindPlayer},
		{"201000", KindMonster},
		{"2", KindMonster},
		{"300001", KindNPC},
		{"3", KindNPC},
		{"dialog_merchant", KindNPC},
		{"dialog_", KindNPC},
		{"40100001", KindFullCostume},
		{"501000", KindInvalid},
		{"0", KindInvalid},
		{"merchant", KindInvalid},
		{"Dialog_merchant", KindInvalid},
		{" 201000", KindInvalid},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%q", c.id), func(t *testing.T) {
			if got := Classify(c.id); got != c.want {
				t.Fatalf("Classify(%q) = %v, want %v", c.id, got, c.want)
			}
		})
	}
}

func TestClassifyRulesDoNotOverlap(t *testing.T) {
	rules := map[Kind]func(string) bool{
		KindPlayer:      func(s string) bool { return strings.HasPrefix(s, "1") },
		KindMonster:     func(s string) bool { return strings.HasPrefix(s, "2") },
		KindNPC:         func(s string) bool { return strings.HasPrefix(s, "3") || strings.HasPrefix(s, DialogNPCPrefix) },
		KindFullCostume: func(s string) bool { return strings.HasPrefix(s, "4") },
	}

	inputs := []string{"1", "2", "3", "4", "5", "dialog_x", "2dialog_", "30", "", "x"}
	for _, in := range inputs {
		matches := 0
		var matched Kind
		for kind, rule := range rules {
			if rule(in) {
				matches++
				matched = kind
			}
		}
		if matches > 1 {
			t.Fatalf("input %q matched %d rules", in, matches)
		}
		want := KindInvalid
		if matches == 1 {
			want = matched
		}
		if got := Classify(in); got != want {
			t.Fatalf("Classify(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPath(t *testing.T) {
	cases := []struct {
		kind Kind
		id   string
		want string
	}{
		{KindMonster, "201000", "Character/Monster/201000"},
		{KindPlayer, "100010", "Character/Player/100010"},
		{KindNPC, "dialog_merchant", "Character/NPC/dialog_merchant"},
		{KindFullCostume, "40100001", "Character/FullCostume/40100001"},
		{KindInvalid, "x", ""},
	}
	for _, c := range cases {
		if got := Path(c.kind, c.id); got != c.want {
			t.Fatalf("Path(%v, %q) = %q, want %q", c.kind, c.id, got, c.want)
		}
	}
	if got := MonsterPath(201000); got != "Character/Monster/201000" {
		t.Fatalf("MonsterPath = %q", got)
	}
}

const monsterYAML = `
name: slime
sheet: monster-sheet.png
bounds:
  center_x: 0
  center_y: 0.5
  width: 1
  height: 1
clips:
  idle:
    row: 0
    frame_count: 4
    frame_w: 32
    frame_h: 32
    fps: 8
    loop: true
  attack:
    row: 1
    frame_count: 6
    frame_w: 32
    frame_h: 32
    fps: 12
    events:
      3: [Smash]
`

func TestLoaderVisual(t *testing.T) {
	reads := 0
	files := map[string]string{"character/monster/201000.yaml": monsterYAML}
	l := NewLoader(func(name string) ([]byte, error) {
		reads++
		s, ok := files[name]
		if !ok {
			return nil, errors.New("not found")
		}
		return []byte(s), nil
	})

	v, err := l.Visual("Character/Monster/201000")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if v.Path != "Character/Monster/201000" || v.Scale != 1 || !v.HasClip("attack") || v.HasClip("die") {
		t.Fatalf("unexpected visual %+v", v)
	}
	if names := v.EventNames(); len(names) != 1 || names[0] != "Smash" {
		t.Fatalf("unexpected event names %v", names)
	}
	if got := v.Clips["attack"].Ticks(); got != 30 {
		t.Fatalf("attack ticks = %d, want 30", got)
	}

	if _, err := l.Visual("Character/Monster/201000"); err != nil || reads != 1 {
		t.Fatalf("expected cached visual, reads=%d err=%v", reads, err)
	}
	l.Invalidate("prefabs/character/monster/201000.yaml")
	if _, err := l.Visual("Character/Monster/201000"); err != nil || reads != 2 {
		t.Fatalf("expected reload after invalidate, reads=%d err=%v", reads, err)
	}
}

func TestLoaderMissingResource(t *testing.T) {
	l := NewLoader(func(string) ([]byte, error) { return nil, errors.New("not found") })

	_, err := l.Visual("Character/Monster/209999")
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T %v", err, err)
	}
	if loadErr.Path != "Character/Monster/209999" {
		t.Fatalf("unexpected path %q", loadErr.Path)
	}
	if !strings.Contains(err.Error(), "Character/Monster/209999") {
		t.Fatalf("message must name the path: %q", err.Error())
	}
}
