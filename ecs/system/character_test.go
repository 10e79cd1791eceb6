package system

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/model"
	"github.com/milk9111/battlestage/resource"
	"github.com/milk9111/battlestage/speech"
)

type fakeVisuals map[string]*resource.Visual

func (f fakeVisuals) Visual(path string) (*resource.Visual, error) {
	v, ok := f[path]
	if !ok {
		return nil, &resource.LoadError{Path: path}
	}
	return v, nil
}

type fakeSpeech struct {
	cues  map[string]string
	asked []string
}

func (f *fakeSpeech) Lookup(key string, params ...int) (string, bool) {
	k := speech.Key(key, params...)
	f.asked = append(f.asked, k)
	text, ok := f.cues[k]
	return text, ok
}

func (f *fakeSpeech) askedFor(key string) bool {
	for _, k := range f.asked {
		if k == key {
			return true
		}
	}
	return false
}

func testVisual(path string) *resource.Visual {
	clip := func(frames int) resource.Clip { return resource.Clip{FrameCount: frames, FPS: 60} }
	return &resource.Visual{
		Path:   path,
		Scale:  1,
		Bounds: resource.Box{CenterX: 10, CenterY: 40, Width: 60, Height: 80},
		Clips: map[string]resource.Clip{
			"idle":   clip(4),
			"run":    clip(4),
			"attack": clip(8),
			"hit":    clip(6),
			"die":    clip(10),
		},
	}
}

type fixture struct {
	w      *ecs.World
	sys    *CharacterSystem
	speech *fakeSpeech
	sched  *ecs.Scheduler
	tick   uint64
}

func newFixture(cues map[string]string) *fixture {
	visuals := fakeVisuals{
		resource.MonsterPath(201000): testVisual(resource.MonsterPath(201000)),
		resource.MonsterPath(7):      testVisual(resource.MonsterPath(7)),
		resource.PlayerPath(100):     testVisual(resource.PlayerPath(100)),
	}
	sp := &fakeSpeech{cues: cues}
	sys := NewCharacterSystem(visuals, sp)
	return &fixture{
		w:      ecs.NewWorld(),
		sys:    sys,
		speech: sp,
		sched:  ecs.NewScheduler(sys, NewEffectsSystem()),
	}
}

func (f *fixture) spawn(kind component.CharacterKind, x float64) ecs.Entity {
	e := ecs.CreateEntity(f.w)
	_ = ecs.Add(f.w, e, component.CharacterComponent.Kind(), &component.Character{Kind: kind})
	_ = ecs.Add(f.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, ScaleX: 1, ScaleY: 1})
	if kind == component.CharacterEnemy {
		_ = ecs.Add(f.w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
	} else {
		_ = ecs.Add(f.w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	}
	return e
}

func (f *fixture) run(ticks int, boss string) {
	for i := 0; i < ticks; i++ {
		f.tick++
		f.sched.Update(f.w, ecs.Frame{Tick: f.tick, BossID: boss})
	}
}

func (f *fixture) character(e ecs.Entity) *component.Character {
	c, _ := ecs.Get(f.w, e, component.CharacterComponent.Kind())
	return c
}

func TestSetRejectsWrongVariant(t *testing.T) {
	cases := []struct {
		name string
		kind component.CharacterKind
		m    model.Character
	}{
		{"player_model_on_enemy", component.CharacterEnemy, model.NewPlayer("p", 100, 10, 1, 1)},
		{"enemy_model_on_player", component.CharacterPlayer, model.NewEnemy("e", 7, 10, 1, 0)},
		{"nil_model", component.CharacterEnemy, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(nil)
			e := f.spawn(c.kind, 0)
			err := f.sys.Set(f.w, e, c.m, true)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if f.character(e).Model != nil {
				t.Fatalf("rejected model must not be bound")
			}
		})
	}
}

func TestSetDisposesPreviousModel(t *testing.T) {
	f := newFixture(nil)
	e := f.spawn(component.CharacterEnemy, 0)
	first := model.NewEnemy("e-1", 7, 30, 1, 0)
	second := model.NewEnemy("e-2", 7, 50, 1, 1)

	if err := f.sys.Set(f.w, e, first, true); err != nil {
		t.Fatal(err)
	}
	if first.HPChanged.Len() != 1 || first.BuffsChanged.Len() != 1 {
		t.Fatalf("expected one subscription per signal on first model")
	}
	if err := f.sys.ApplySkill(f.w, e, model.SkillInfo{Effect: 10}, true); err != nil {
		t.Fatal(err)
	}

	if err := f.sys.Set(f.w, e, second, true); err != nil {
		t.Fatal(err)
	}
	if first.HPChanged.Len() != 0 || first.BuffsChanged.Len() != 0 {
		t.Fatalf("previous model still has subscribers")
	}
	if second.HPChanged.Len() != 1 {
		t.Fatalf("expected new model subscription")
	}

	f.run(30, "")
	c := f.character(e)
	if c.CurrentHP != 50 {
		t.Fatalf("damage sequence of previous model leaked: hp=%d", c.CurrentHP)
	}
	if c.ID() != "e-2" {
		t.Fatalf("expected e-2 bound, got %q", c.ID())
	}
}

func TestDamageCueAfterDeathCheck(t *testing.T) {
	cases := []struct {
		name       string
		damage     int
		wantDamage bool
		wantDead   bool
	}{
		{"survives", 4, true, false},
		{"lethal", 10, false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(map[string]string{
				CueEnemyDamage: "Ouch",
				CueEnemyDead:   "Argh",
			})
			e := f.spawn(component.CharacterEnemy, 0)
			if err := f.sys.Set(f.w, e, model.NewEnemy("e", 7, 10, 1, 0), true); err != nil {
				t.Fatal(err)
			}
			if err := f.sys.ApplySkill(f.w, e, model.SkillInfo{Effect: c.damage}, true); err != nil {
				t.Fatal(err)
			}
			f.run(80, "")

			if got := f.speech.askedFor(CueEnemyDamage); got != c.wantDamage {
				t.Fatalf("damage cue asked=%v, want %v", got, c.wantDamage)
			}
			if got := f.character(e).Phase == component.PhaseDead; got != c.wantDead {
				t.Fatalf("dead=%v, want %v (phase %s)", got, c.wantDead, f.character(e).Phase)
			}
			if c.wantDead && !f.speech.askedFor(CueEnemyDead) {
				t.Fatalf("expected death cue")
			}
		})
	}
}

func TestDeadStartFiresOnceBeforeDeadState(t *testing.T) {
	f := newFixture(nil)
	e := f.spawn(component.CharacterEnemy, 0)
	if err := f.sys.Set(f.w, e, model.NewEnemy("e", 7, 5, 1, 0), true); err != nil {
		t.Fatal(err)
	}

	var fired int
	var phaseAtFire component.CombatPhase
	var hiddenAtFire bool
	f.sys.DeadStart.Subscribe(func(got ecs.Entity) {
		fired++
		if got != e {
			t.Errorf("dead start for %s, want %s", got, e)
		}
		phaseAtFire = f.character(e).Phase
		bar, _ := ecs.Get(f.w, e, component.HPBarComponent.Kind())
		hiddenAtFire = bar.Hidden
	})

	_ = f.sys.ApplySkill(f.w, e, model.SkillInfo{Effect: 5}, true)
	_ = f.sys.ApplySkill(f.w, e, model.SkillInfo{Effect: 5}, true)
	f.run(120, "")

	if fired != 1 {
		t.Fatalf("expected dead start once, got %d", fired)
	}
	if phaseAtFire != component.PhaseDying || hiddenAtFire {
		t.Fatalf("dead start ran after dead-state logic: phase=%s hidden=%v", phaseAtFire, hiddenAtFire)
	}
	c := f.character(e)
	if c.Phase != component.PhaseDead {
		t.Fatalf("expected dead, got %s", c.Phase)
	}
	vis, ok := ecs.Get(f.w, e, component.VisibilityComponent.Kind())
	if !ok || !vis.Hidden {
		t.Fatalf("expected visual hidden after dead end")
	}

	if err := f.sys.ProcessAttack(f.w, e, e, model.SkillInfo{Effect: 1}); !errors.Is(err, ErrDead) {
		t.Fatalf("expected ErrDead for attack by dead character, got %v", err)
	}
	if c.Phase != component.PhaseDead {
		t.Fatalf("dead must be terminal, got %s", c.Phase)
	}
}

func TestBossStatusPush(t *testing.T) {
	cases := []struct {
		name        string
		boss        string
		wantUpdates int
	}{
		{"other_boss", "boss-1", 0},
		{"no_boss", "", 0},
		{"is_boss", "e-1", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(nil)
			hud := ecs.CreateEntity(f.w)
			status := &component.BossStatus{}
			_ = ecs.Add(f.w, hud, component.BossStatusComponent.Kind(), status)

			e := f.spawn(component.CharacterEnemy, 0)
			m := model.NewEnemy("e-1", 7, 40, 1, 0)
			m.Buffs = []model.Buff{{ID: 1, Name: "shield", RemainedDuration: 2}}
			f.run(1, c.boss)
			if err := f.sys.Set(f.w, e, m, true); err != nil {
				t.Fatal(err)
			}
			status.Updates = 0

			f.sys.UpdateHPBar(f.w, e)
			f.sys.UpdateHPBar(f.w, e)

			if status.Updates != c.wantUpdates {
				t.Fatalf("updates=%d, want %d", status.Updates, c.wantUpdates)
			}
			if c.wantUpdates == 0 && (status.Max != 0 || len(status.Buffs) != 0) {
				t.Fatalf("non-boss push mutated the HUD: %+v", status)
			}
			if c.wantUpdates > 0 && (status.Current != 40 || status.Max != 40 || len(status.Buffs) != 1) {
				t.Fatalf("unexpected HUD state %+v", status)
			}
		})
	}
}

func TestInitialSpeechFallback(t *testing.T) {
	cases := []struct {
		name    string
		cues    map[string]string
		wantKey string
	}{
		{"specific", map[string]string{"ENEMY_7": "Row seven", "ENEMY_INIT_3": "Spawn three"}, "ENEMY_7"},
		{"fallback", map[string]string{"ENEMY_INIT_3": "Spawn three"}, "ENEMY_INIT_3"},
		{"none", map[string]string{}, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(c.cues)
			e := f.spawn(component.CharacterEnemy, 0)
			if err := f.sys.Set(f.w, e, model.NewEnemy("e", 7, 10, 1, 3), true); err != nil {
				t.Fatal(err)
			}
			bubble, ok := ecs.Get(f.w, e, component.SpeechBubbleComponent.Kind())
			if c.wantKey == "" {
				if ok {
					t.Fatalf("expected no bubble, got %+v", bubble)
				}
				return
			}
			if !ok || bubble.Key != c.wantKey || bubble.Text != c.cues[c.wantKey] {
				t.Fatalf("bubble=%+v, want key %s", bubble, c.wantKey)
			}
		})
	}
}

func TestUpdateArmorHitPoint(t *testing.T) {
	f := newFixture(nil)
	e := f.spawn(component.CharacterEnemy, 0)
	if err := f.sys.Set(f.w, e, model.NewEnemy("e", 7, 10, 50, 0), true); err != nil {
		t.Fatal(err)
	}

	hp, ok := ecs.Get(f.w, e, component.HitPointComponent.Kind())
	if !ok {
		t.Fatalf("expected hit point")
	}
	if want := (cp.BB{L: -20, B: 0, R: 40, T: 80}); hp.Box != want {
		t.Fatalf("box=%v, want %v", hp.Box, want)
	}
	if hp.Offset.X != -20 || hp.Offset.Y != 0 {
		t.Fatalf("offset=%v, want (-20, 0)", hp.Offset)
	}
	if hp.Attack.X != -70 || hp.Attack.Y != 0 {
		t.Fatalf("attack=%v, want (-70, 0)", hp.Attack)
	}

	anim, _ := ecs.Get(f.w, e, component.AnimatorComponent.Kind())
	before := anim.Target
	if err := f.sys.Set(f.w, e, model.NewEnemy("e", 999, 10, 50, 0), true); err != nil {
		t.Fatal(err)
	}
	if anim.Target != before {
		t.Fatalf("failed load must keep the previous visual")
	}
}

func TestEnemyStopsInAttackRange(t *testing.T) {
	f := newFixture(nil)
	player := f.spawn(component.CharacterPlayer, 0)
	if err := f.sys.Set(f.w, player, model.NewPlayer("p", 100, 10, 1, 0), true); err != nil {
		t.Fatal(err)
	}
	enemy := f.spawn(component.CharacterEnemy, 100)
	if err := f.sys.Set(f.w, enemy, model.NewEnemy("e", 7, 10, 50, 0), true); err != nil {
		t.Fatal(err)
	}
	c := f.character(enemy)
	if c.Phase != component.PhaseRunning || c.Speed != EnemyRunSpeed {
		t.Fatalf("expected enemy running at fixed speed, got %s %v", c.Phase, c.Speed)
	}

	f.run(80, "")
	tr, _ := ecs.Get(f.w, enemy, component.TransformComponent.Kind())
	if tr.X != 80 {
		t.Fatalf("enemy x=%v, want 80", tr.X)
	}
	if c.Phase != component.PhaseIdle {
		t.Fatalf("expected idle in range, got %s", c.Phase)
	}
}

func TestEnemyBoundBeforePlayerStops(t *testing.T) {
	f := newFixture(nil)
	enemy := f.spawn(component.CharacterEnemy, 300)
	if err := f.sys.Set(f.w, enemy, model.NewEnemy("e", 7, 10, 50, 0), true); err != nil {
		t.Fatal(err)
	}
	c := f.character(enemy)
	if c.Target != 0 {
		t.Fatalf("expected no target before the player exists, got %v", c.Target)
	}

	f.run(10, "")
	player := f.spawn(component.CharacterPlayer, 0)
	if err := f.sys.Set(f.w, player, model.NewPlayer("p", 100, 10, 1, 0), true); err != nil {
		t.Fatal(err)
	}

	f.run(600, "")
	tr, _ := ecs.Get(f.w, enemy, component.TransformComponent.Kind())
	if tr.X != 80 {
		t.Fatalf("enemy x=%v, want 80", tr.X)
	}
	if c.Target != player.Ref() {
		t.Fatalf("target=%v, want player %v", c.Target, player)
	}
	if c.Phase != component.PhaseIdle {
		t.Fatalf("expected idle in range, got %s", c.Phase)
	}
}

func TestProcessAttackSpeechOrder(t *testing.T) {
	f := newFixture(map[string]string{
		"ENEMY_SKILL_1_0": "Burn",
		CueEnemyAttack:    "Take that",
	})
	player := f.spawn(component.CharacterPlayer, 0)
	_ = f.sys.Set(f.w, player, model.NewPlayer("p", 100, 30, 1, 0), true)
	enemy := f.spawn(component.CharacterEnemy, 10)
	_ = f.sys.Set(f.w, enemy, model.NewEnemy("e", 7, 10, 50, 0), true)
	f.speech.asked = nil

	skill := model.SkillInfo{Effect: 3, ElementalType: model.ElementalFire, SkillCategory: model.SkillNormalAttack}
	if err := f.sys.ProcessAttack(f.w, enemy, player, skill); err != nil {
		t.Fatal(err)
	}
	if len(f.speech.asked) != 2 || f.speech.asked[0] != "ENEMY_SKILL_1_0" || f.speech.asked[1] != CueEnemyAttack {
		t.Fatalf("unexpected cue order %v", f.speech.asked)
	}
	if f.character(enemy).Phase != component.PhaseAttacking {
		t.Fatalf("expected attacking")
	}

	f.run(40, "")
	if got := f.character(player).CurrentHP; got != 27 {
		t.Fatalf("player hp=%d, want 27", got)
	}
	if f.character(enemy).Phase == component.PhaseAttacking {
		t.Fatalf("attack sequence did not settle")
	}
}
