package component

import (
	"testing"

	"github.com/milk9111/battlestage/resource"
)

func visual(path string, clips ...string) *resource.Visual {
	v := &resource.Visual{Path: path, Clips: map[string]resource.Clip{}}
	for _, c := range clips {
		v.Clips[c] = resource.Clip{FrameCount: 4, FPS: 12}
	}
	return v
}

func TestAnimatorPlayAndHasType(t *testing.T) {
	a := NewAnimator(1)
	if err := a.ResetTarget(visual("a", "idle", "attack")); err != nil {
		t.Fatal(err)
	}

	if !a.HasType(CharacterAttack) || a.HasType(CharacterDie) {
		t.Fatalf("unexpected HasType results")
	}
	if !a.Play(CharacterAttack) || a.Current != "attack" || !a.Playing {
		t.Fatalf("expected attack playing, got %+v", a)
	}
	if a.Play(CharacterDie) {
		t.Fatalf("die must not start on a target without the clip")
	}
	if a.Current != "attack" || a.Pending != "die" {
		t.Fatalf("expected die pending behind attack, got current=%q pending=%q", a.Current, a.Pending)
	}
}

func TestAnimatorResetTargetKeepsIntent(t *testing.T) {
	cases := []struct {
		name        string
		first       *resource.Visual
		play        AnimationType
		next        *resource.Visual
		wantCurrent string
		wantPending string
	}{
		{"pending_starts_on_new_target", visual("a", "idle"), CharacterDie, visual("b", "idle", "die"), "die", ""},
		{"current_restarts_on_new_target", visual("a", "run"), CharacterRun, visual("b", "run"), "run", ""},
		{"current_becomes_pending", visual("a", "run"), CharacterRun, visual("b", "idle"), "", "run"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewAnimator(1)
			if err := a.ResetTarget(c.first); err != nil {
				t.Fatal(err)
			}
			a.Play(c.play)
			if err := a.ResetTarget(c.next); err != nil {
				t.Fatal(err)
			}
			if a.Current != c.wantCurrent || a.Pending != c.wantPending {
				t.Fatalf("current=%q pending=%q, want %q %q", a.Current, a.Pending, c.wantCurrent, c.wantPending)
			}
			if a.Target != c.next {
				t.Fatalf("target not rebound")
			}
		})
	}
}

func TestAnimatorResetTargetRejectsNil(t *testing.T) {
	a := NewAnimator(1)
	v := visual("a", "idle")
	_ = a.ResetTarget(v)
	if err := a.ResetTarget(nil); err != ErrNilTarget {
		t.Fatalf("expected ErrNilTarget, got %v", err)
	}
	if a.Target != v {
		t.Fatalf("nil target must not unbind the previous one")
	}
}

func TestAnimationTypeClipNames(t *testing.T) {
	if CharacterTurnOver01.ClipName() != "turnover_01" {
		t.Fatalf("got %q", CharacterTurnOver01.ClipName())
	}
	if NPCTouch01.ClipName() != "touch_01" || NPCTouch01.String() != "Touch_01" {
		t.Fatalf("got %q %q", NPCTouch01.ClipName(), NPCTouch01.String())
	}
	if len(CharacterAnimations()) != 16 || len(NPCAnimations()) != 12 {
		t.Fatalf("unexpected enumeration sizes")
	}
}
