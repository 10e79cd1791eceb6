package stage

import (
	"fmt"

	"github.com/milk9111/battlestage/battlelog"
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/entity"
	"github.com/milk9111/battlestage/model"
)

// Apply plays one battle log event on the world.
func (s *Stage) Apply(ev battlelog.Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	switch ev.Kind {
	case battlelog.KindSpawnPlayer:
		return s.spawnPlayer(ev)
	case battlelog.KindSpawnEnemy:
		return s.spawnEnemy(ev)
	case battlelog.KindSetBoss:
		if _, ok := s.ids[ev.ID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCharacter, ev.ID)
		}
		s.bossID = ev.ID
		s.world.SetFrame(ecs.Frame{Tick: s.tick, BossID: s.bossID})
		s.Characters.UpdateHPBar(s.world, s.ids[ev.ID])
		return nil
	case battlelog.KindAttack:
		return s.attack(ev)
	case battlelog.KindCast:
		return s.cast(ev)
	case battlelog.KindBuff:
		m, ok := s.models[ev.ID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCharacter, ev.ID)
		}
		m.Base().SetBuffs(ev.Buffs)
		return nil
	case battlelog.KindWait:
		s.delay = ev.Ticks
		return nil
	}
	return nil
}

func (s *Stage) spawnPlayer(ev battlelog.Event) error {
	if _, ok := s.ids[ev.ID]; ok {
		return s.rebind(ev)
	}
	e, err := entity.NewPlayer(s.world, s.Spec.PlayerX, s.Spec.GroundY)
	if err != nil {
		return err
	}
	m := playerModel(ev)
	if err := s.Characters.Set(s.world, e, m, true); err != nil {
		ecs.DestroyEntity(s.world, e)
		return err
	}
	s.ids[ev.ID] = e
	s.models[ev.ID] = m
	return nil
}

func (s *Stage) spawnEnemy(ev battlelog.Event) error {
	if _, ok := s.ids[ev.ID]; ok {
		return s.rebind(ev)
	}
	x := s.Spec.EnemyX + float64(ev.SpawnIndex)*s.Spec.EnemySpacing
	e, err := entity.NewEnemy(s.world, x, s.Spec.GroundY)
	if err != nil {
		return err
	}
	m := enemyModel(ev)
	if err := s.Characters.Set(s.world, e, m, true); err != nil {
		ecs.DestroyEntity(s.world, e)
		return err
	}
	s.ids[ev.ID] = e
	s.models[ev.ID] = m
	return nil
}

// rebind reassigns a fresh model to an existing character, keeping the
// displayed health.
func (s *Stage) rebind(ev battlelog.Event) error {
	var m model.Character
	if ev.Kind == battlelog.KindSpawnPlayer {
		m = playerModel(ev)
	} else {
		m = enemyModel(ev)
	}
	if err := s.Characters.Set(s.world, s.ids[ev.ID], m, false); err != nil {
		return err
	}
	s.models[ev.ID] = m
	return nil
}

func playerModel(ev battlelog.Event) *model.Player {
	m := model.NewPlayer(ev.ID, ev.ArmorID, ev.HP, ev.AttackRange, ev.RunSpeed)
	m.FullCostumeID = ev.FullCostumeID
	return m
}

func enemyModel(ev battlelog.Event) *model.Enemy {
	return model.NewEnemy(ev.ID, ev.RowID, ev.HP, ev.AttackRange, ev.SpawnIndex)
}

func (s *Stage) attack(ev battlelog.Event) error {
	attacker, ok := s.ids[ev.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCharacter, ev.ID)
	}
	for i, skill := range ev.Skills {
		target, ok := s.ids[skill.TargetID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCharacter, skill.TargetID)
		}
		var err error
		if i == 0 {
			err = s.Characters.ProcessAttack(s.world, attacker, target, skill)
		} else {
			err = s.Characters.ApplySkill(s.world, target, skill, true)
		}
		if err != nil {
			return err
		}
		s.settle(skill)
	}
	s.delay = ActionDelayTicks
	return nil
}

func (s *Stage) cast(ev battlelog.Event) error {
	caster, ok := s.ids[ev.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCharacter, ev.ID)
	}
	if len(ev.Skills) == 0 {
		return fmt.Errorf("stage: cast by %s has no skills", ev.ID)
	}
	if err := s.Characters.Cast(s.world, caster, ev.Skills[0]); err != nil {
		return err
	}
	for _, skill := range ev.Skills {
		target, ok := s.ids[skill.TargetID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCharacter, skill.TargetID)
		}
		if err := s.Characters.ApplySkill(s.world, target, skill, true); err != nil {
			return err
		}
		s.settle(skill)
	}
	s.delay = ActionDelayTicks
	return nil
}

// settle mirrors the simulation result of skill on the target model.
func (s *Stage) settle(skill model.SkillInfo) {
	m, ok := s.models[skill.TargetID]
	if !ok {
		return
	}
	base := m.Base()
	if skill.SkillCategory == model.SkillHeal {
		base.SetCurrentHP(base.CurrentHP + skill.Effect)
		return
	}
	base.SetCurrentHP(base.CurrentHP - skill.Effect)
}
