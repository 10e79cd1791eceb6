package system

import (
	"testing"

	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
)

func TestEffectsSystemExpiresTransients(t *testing.T) {
	w := ecs.NewWorld()
	speaker := ecs.CreateEntity(w)
	_ = ecs.Add(w, speaker, component.SpeechBubbleComponent.Kind(), &component.SpeechBubble{Key: "ENEMY_7", TTL: 2})
	text := ecs.CreateEntity(w)
	_ = ecs.Add(w, text, component.DamageTextComponent.Kind(), &component.DamageText{Value: -3, VY: -2, TTL: 3})
	fader := ecs.CreateEntity(w)
	vis := &component.Visibility{Alpha: 1, Fade: -0.5}
	_ = ecs.Add(w, fader, component.VisibilityComponent.Kind(), vis)

	sched := ecs.NewScheduler(NewEffectsSystem())
	sched.Update(w, ecs.Frame{Tick: 1})
	if !ecs.Has(w, speaker, component.SpeechBubbleComponent.Kind()) {
		t.Fatalf("bubble removed too early")
	}
	sched.Update(w, ecs.Frame{Tick: 2})
	sched.Update(w, ecs.Frame{Tick: 3})

	if ecs.Has(w, speaker, component.SpeechBubbleComponent.Kind()) {
		t.Fatalf("expected bubble expired")
	}
	if !ecs.IsAlive(w, speaker) {
		t.Fatalf("speaker must outlive its bubble")
	}
	if ecs.IsAlive(w, text) {
		t.Fatalf("expected damage text destroyed")
	}
	if vis.Alpha != 0 || vis.Fade != 0 {
		t.Fatalf("fade did not settle: %+v", vis)
	}
}
