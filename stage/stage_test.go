package stage

import (
	"errors"
	"testing"

	"github.com/milk9111/battlestage/battlelog"
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/ecs/system"
	"github.com/milk9111/battlestage/model"
	"github.com/milk9111/battlestage/prefabs"
)

type sliceSource struct {
	events []battlelog.Event
	closed bool
}

func (s *sliceSource) Poll() (battlelog.Event, bool) {
	if len(s.events) == 0 {
		return battlelog.Event{}, false
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, true
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

func testSpec() *prefabs.StageSpec {
	return &prefabs.StageSpec{
		Name:         "test",
		PlayerX:      100,
		EnemyX:       400,
		GroundY:      300,
		EnemySpacing: 50,
	}
}

func TestReplayRunsToRewards(t *testing.T) {
	s, err := Load("stage_1", Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	for i := 0; i < 4; i++ {
		s.Update()
	}
	if s.BossID() != "boss" {
		t.Fatalf("boss=%q after spawn events, want boss", s.BossID())
	}
	hud, ok := ecs.First(s.World(), component.BossStatusComponent.Kind())
	if !ok {
		t.Fatal("expected boss hud")
	}
	status, _ := ecs.Get(s.World(), hud, component.BossStatusComponent.Kind())
	if status.Max != 90 || status.Current != 90 {
		t.Fatalf("boss status %d/%d, want 90/90", status.Current, status.Max)
	}

	for i := 0; i < 1500 && !(s.Done() && len(s.Rewards) == 2); i++ {
		s.Update()
	}
	if len(s.Rewards) != 2 || s.Rewards[0] != "slime-a" || s.Rewards[1] != "boss" {
		t.Fatalf("rewards=%v, want [slime-a boss]", s.Rewards)
	}
	if len(status.Buffs) == 0 || status.Buffs[0].Name != "stone_skin" {
		t.Fatalf("boss buffs=%v, want stone_skin", status.Buffs)
	}

	player, _ := s.Entity("player")
	c, _ := ecs.Get(s.World(), player, component.CharacterComponent.Kind())
	if c.CurrentHP != 97 || c.Phase == component.PhaseDead {
		t.Fatalf("player hp=%d phase=%s, want 97 and alive", c.CurrentHP, c.Phase)
	}
}

func TestEventDelay(t *testing.T) {
	src := &sliceSource{events: []battlelog.Event{
		{Kind: battlelog.KindWait, Ticks: 3},
		{Kind: battlelog.KindSpawnEnemy, ID: "e", RowID: 201000, HP: 10, AttackRange: 10},
	}}
	s, err := New(testSpec(), Options{Source: src})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		s.Update()
		if _, ok := s.Entity("e"); ok {
			t.Fatalf("enemy spawned at tick %d during wait", s.Tick())
		}
	}
	s.Update()
	e, ok := s.Entity("e")
	if !ok {
		t.Fatal("expected enemy after wait")
	}
	tr, _ := ecs.Get(s.World(), e, component.TransformComponent.Kind())
	if tr.X > 400 || tr.X < 399 {
		t.Fatalf("enemy x=%v, want spawn at 400", tr.X)
	}
	if err := s.Close(); err != nil || !src.closed {
		t.Fatalf("close err=%v closed=%t", err, src.closed)
	}
}

func TestApplyErrors(t *testing.T) {
	s, err := New(testSpec(), Options{Source: &sliceSource{}})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name string
		ev   battlelog.Event
		want error
	}{
		{"boss unknown", battlelog.Event{Kind: battlelog.KindSetBoss, ID: "nobody"}, ErrUnknownCharacter},
		{"attacker unknown", battlelog.Event{Kind: battlelog.KindAttack, ID: "nobody"}, ErrUnknownCharacter},
		{"buff unknown", battlelog.Event{Kind: battlelog.KindBuff, ID: "nobody"}, ErrUnknownCharacter},
		{"bad kind", battlelog.Event{Kind: "jump", ID: "x"}, battlelog.ErrUnknownKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := s.Apply(tc.ev); !errors.Is(err, tc.want) {
				t.Fatalf("err=%v, want %v", err, tc.want)
			}
		})
	}
}

func TestRespawnKeepsDisplayedHP(t *testing.T) {
	s, err := New(testSpec(), Options{Source: &sliceSource{}})
	if err != nil {
		t.Fatal(err)
	}
	spawn := battlelog.Event{Kind: battlelog.KindSpawnEnemy, ID: "e", RowID: 201000, HP: 10, AttackRange: 10}
	if err := s.Apply(spawn); err != nil {
		t.Fatal(err)
	}
	e, _ := s.Entity("e")
	c, _ := ecs.Get(s.World(), e, component.CharacterComponent.Kind())
	c.CurrentHP = 4
	token := c.Token

	spawn.HP = 20
	if err := s.Apply(spawn); err != nil {
		t.Fatal(err)
	}
	if again, _ := s.Entity("e"); again != e {
		t.Fatalf("respawn created a new entity")
	}
	if c.CurrentHP != 4 || c.HP != 20 || c.Token != token+1 {
		t.Fatalf("hp=%d/%d token=%d, want 4/20 token %d", c.CurrentHP, c.HP, c.Token, token+1)
	}
}

func TestHealSettlesModel(t *testing.T) {
	s, err := New(testSpec(), Options{Source: &sliceSource{}})
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Apply(battlelog.Event{Kind: battlelog.KindSpawnPlayer, ID: "p", ArmorID: 100001, HP: 50})
	m := s.models["p"].Base()
	m.CurrentHP = 30
	s.settle(model.SkillInfo{TargetID: "p", Effect: 40, SkillCategory: model.SkillHeal})
	if m.CurrentHP != 50 {
		t.Fatalf("healed hp=%d, want capped at 50", m.CurrentHP)
	}
	s.settle(model.SkillInfo{TargetID: "p", Effect: 70})
	if m.CurrentHP != 0 {
		t.Fatalf("damaged hp=%d, want 0", m.CurrentHP)
	}
}

func TestTouchPlaysNPCTouch(t *testing.T) {
	spec := testSpec()
	spec.NPCs = []prefabs.NPCSpec{{ID: "dialog_merchant", X: 60, Y: 300, Layer: component.LayerForeground, Order: 2}}
	s, err := New(spec, Options{Source: &sliceSource{}})
	if err != nil {
		t.Fatal(err)
	}
	if s.Touch(500, 100) {
		t.Fatal("touch outside every npc should miss")
	}
	if !s.Touch(60, 280) {
		t.Fatal("touch on merchant should hit")
	}

	npc := s.npcs[0]
	anim, _ := ecs.Get(s.World(), npc, component.AnimatorComponent.Kind())
	played := false
	for i := 0; i < 30 && !played; i++ {
		s.Update()
		played = anim.Current == component.NPCTouch01.ClipName()
	}
	if !played {
		t.Fatalf("expected touch clip, got %q", anim.Current)
	}

	spawned := false
	for i := 0; i < 40 && !spawned; i++ {
		s.Update()
		_, spawned = ecs.First(s.World(), component.VFXComponent.Kind())
	}
	if !spawned {
		t.Fatal("expected smash vfx from touch clip event")
	}
}

func TestUnknownScriptEventRejected(t *testing.T) {
	spec := testSpec()
	spec.Scripts = []prefabs.ScriptSpec{{Event: "Stomp", File: "npc_stomp.tengo"}}
	_, err := New(spec, Options{Source: &sliceSource{}})
	if !errors.Is(err, system.ErrInvalidArgument) {
		t.Fatalf("err=%v, want invalid argument for event no visual uses", err)
	}
}
