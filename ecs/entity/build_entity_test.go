package entity

import (
	"errors"
	"testing"

	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/resource"
)

func TestBuildCharacters(t *testing.T) {
	cases := []struct {
		name  string
		spawn func(w *ecs.World) (ecs.Entity, error)
		kind  component.CharacterKind
		enemy bool
	}{
		{"enemy", func(w *ecs.World) (ecs.Entity, error) { return NewEnemy(w, 400, 300) }, component.CharacterEnemy, true},
		{"player", func(w *ecs.World) (ecs.Entity, error) { return NewPlayer(w, 400, 300) }, component.CharacterPlayer, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := c.spawn(w)
			if err != nil {
				t.Fatalf("spawn: %v", err)
			}
			ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
			if !ok || ch.Kind != c.kind {
				t.Fatalf("character=%+v", ch)
			}
			if ecs.Has(w, e, component.EnemyTagComponent.Kind()) != c.enemy {
				t.Fatalf("enemy tag mismatch")
			}
			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			if tr.X != 400 || tr.Y != 300 {
				t.Fatalf("transform=%+v", tr)
			}
			anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind())
			if !ok || anim.Pending != "idle" {
				t.Fatalf("animator=%+v", anim)
			}
		})
	}
}

func TestNewNPC(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := NewNPC(w, "dialog_merchant", nil, 0, 0); !errors.Is(err, component.ErrNilTarget) {
		t.Fatalf("expected ErrNilTarget, got %v", err)
	}

	visual := &resource.Visual{Clips: map[string]resource.Clip{
		"appear":  {FrameCount: 2, FPS: 10},
		"idle_01": {FrameCount: 2, FPS: 10, Loop: true},
	}}
	e, err := NewNPC(w, "dialog_merchant", visual, 10, 20)
	if err != nil {
		t.Fatal(err)
	}
	anim, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if anim.Current != "appear" || anim.TimeScale != 1.2 {
		t.Fatalf("animator=%+v", anim)
	}
	npc, _ := ecs.Get(w, e, component.NPCComponent.Kind())
	if npc.ResourceID != "dialog_merchant" {
		t.Fatalf("npc=%+v", npc)
	}
	if !ecs.Has(w, e, component.TouchInputComponent.Kind()) {
		t.Fatalf("expected touch input")
	}
}

func TestCameraAndHUD(t *testing.T) {
	w := ecs.NewWorld()
	cam, err := NewCamera(w, 320, 180)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	if !c.Active || c.X != 320 || c.Zoom != 1 {
		t.Fatalf("camera=%+v", c)
	}
	hud, err := NewBossHUD(w)
	if err != nil {
		t.Fatal(err)
	}
	if !ecs.Has(w, hud, component.BossStatusComponent.Kind()) {
		t.Fatalf("expected boss status")
	}
}
