package system

import (
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/model"
)

// stepSequences advances every sequence of a once. Sequences whose token no
// longer matches the character binding are dropped.
func (s *CharacterSystem) stepSequences(a *Actor) {
	seqs, ok := ecs.Get(a.World, a.Entity, component.SequencesComponent.Kind())
	if !ok || len(seqs.Active) == 0 {
		return
	}

	active := seqs.Active
	seqs.Active = nil
	kept := make([]component.Sequence, 0, len(active))
	for _, seq := range active {
		if seq.Token != a.Character.Token {
			continue
		}
		if seq.Wait > 0 {
			seq.Wait--
			kept = append(kept, seq)
			continue
		}
		if !s.step(a, &seq) {
			kept = append(kept, seq)
		}
	}
	// Steps may start new sequences on the same entity.
	seqs.Active = append(kept, seqs.Active...)
}

// step runs the current step of seq and reports whether seq is done.
func (s *CharacterSystem) step(a *Actor, seq *component.Sequence) bool {
	switch seq.Kind {
	case component.SequenceAttack:
		a.settle(component.PhaseAttacking)
		return true
	case component.SequenceCast:
		a.settle(component.PhaseCasting)
		return true
	case component.SequenceDamage:
		return s.stepDamage(a, seq)
	case component.SequenceDying:
		return s.stepDying(a, seq)
	default:
		return true
	}
}

func (s *CharacterSystem) stepDamage(a *Actor, seq *component.Sequence) bool {
	c := a.Character
	st := s.strategy(c.Kind)

	switch seq.Step {
	case 0:
		s.applyDamage(a, st, seq.Skill)
		seq.Step = 1
		seq.Wait = a.clipTicks(component.CharacterHit, defaultHitTicks)
		return false
	default:
		a.settle(component.PhaseHit)
		if c.IsDead() {
			if seq.ConsiderDie {
				s.startDying(a)
			}
			return true
		}
		st.AfterDamage(a)
		return true
	}
}

func (s *CharacterSystem) applyDamage(a *Actor, st CharacterStrategy, skill model.SkillInfo) {
	c := a.Character
	heal := skill.SkillCategory == model.SkillHeal
	if heal {
		c.CurrentHP += skill.Effect
		if c.CurrentHP > c.HP {
			c.CurrentHP = c.HP
		}
	} else {
		c.CurrentHP -= skill.Effect
		if c.CurrentHP < 0 {
			c.CurrentHP = 0
		}
	}

	if !heal && skill.Effect > 0 && !a.dying() && !c.IsDead() {
		switch c.Phase {
		case component.PhaseIdle, component.PhaseRunning, component.PhaseHit:
			c.Phase = component.PhaseHit
			a.play(component.CharacterHit)
		}
	}

	if skill.Effect > 0 {
		s.spawnDamageText(a, st, skill)
	}
	s.UpdateHPBar(a.World, a.Entity)
}

func (s *CharacterSystem) spawnDamageText(a *Actor, st CharacterStrategy, skill model.SkillInfo) {
	pos := a.position()
	force := st.DamageTextForce()
	e := ecs.CreateEntity(a.World)
	value := skill.Effect
	if skill.SkillCategory != model.SkillHeal {
		value = -value
	}
	_ = ecs.Add(a.World, e, component.DamageTextComponent.Kind(), &component.DamageText{
		Value:    value,
		Critical: skill.Critical,
		X:        pos.X,
		Y:        pos.Y - hudTextHeight,
		VX:       force.X * damageTextSpeed,
		VY:       -force.Y * damageTextSpeed,
		TTL:      DamageTextTicks,
	})
}

const (
	hudTextHeight   = 64
	damageTextSpeed = 2
)

func (s *CharacterSystem) stepDying(a *Actor, seq *component.Sequence) bool {
	switch seq.Step {
	case 0:
		s.deadStart(a)
		seq.Step = 1
		seq.Wait = DeadFadeTicks
		return false
	default:
		s.deadEnd(a)
		return true
	}
}

// deadStart notifies the strategy once, then applies the shared dead state.
func (s *CharacterSystem) deadStart(a *Actor) {
	c := a.Character
	if c.DeadStartFired {
		return
	}
	c.DeadStartFired = true
	s.strategy(c.Kind).OnDeadStart(a)

	c.Phase = component.PhaseDead
	if bar, ok := ecs.Get(a.World, a.Entity, component.HPBarComponent.Kind()); ok {
		bar.Hidden = true
	}
	vis, ok := ecs.Get(a.World, a.Entity, component.VisibilityComponent.Kind())
	if !ok {
		vis = &component.Visibility{Alpha: 1}
		_ = ecs.Add(a.World, a.Entity, component.VisibilityComponent.Kind(), vis)
	}
	vis.Fade = -1.0 / DeadFadeTicks
}

func (s *CharacterSystem) deadEnd(a *Actor) {
	vis, ok := ecs.Get(a.World, a.Entity, component.VisibilityComponent.Kind())
	if !ok {
		vis = &component.Visibility{}
		_ = ecs.Add(a.World, a.Entity, component.VisibilityComponent.Kind(), vis)
	}
	vis.Hidden = true
	vis.Alpha = 0
	vis.Fade = 0
}

// settle returns a character in phase back to idle.
func (a *Actor) settle(phase component.CombatPhase) {
	if a.Character.Phase != phase {
		return
	}
	a.Character.Phase = component.PhaseIdle
	a.play(component.CharacterIdle)
}
