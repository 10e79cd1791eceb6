package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/model"
	"github.com/milk9111/battlestage/resource"
)

const (
	// EnemyRunSpeed is the fixed run speed of every enemy.
	EnemyRunSpeed = -1.0
	// DefaultEnemyRowID is the visual used when an enemy has no model.
	DefaultEnemyRowID = 201000
)

// Speech cue keys used by enemies.
const (
	CueEnemy       = "ENEMY"
	CueEnemyInit   = "ENEMY_INIT"
	CueEnemyDamage = "ENEMY_DAMAGE"
	CueEnemyDead   = "ENEMY_DEAD"
	CueEnemySkill  = "ENEMY_SKILL"
	CueEnemyAttack = "ENEMY_ATTACK"
)

// EnemyStrategy drives monsters: fixed run speed, contextual speech and
// the boss HUD mirror.
type EnemyStrategy struct {
	BaseStrategy
}

func (EnemyStrategy) Accepts(m model.Character) bool {
	_, ok := m.(*model.Enemy)
	return ok
}

func (EnemyStrategy) RunSpeed(a *Actor) float64 { return EnemyRunSpeed }

// CanRun also stops the enemy once the player is within attack range.
func (s EnemyStrategy) CanRun(a *Actor) bool {
	if !s.BaseStrategy.CanRun(a) {
		return false
	}
	player, ok := a.TargetActor()
	if !ok {
		linkPlayer(a)
		player, ok = a.TargetActor()
	}
	return !ok || !a.InAttackRange(player)
}

// linkPlayer targets the first player with a bound model, or nothing.
func linkPlayer(a *Actor) {
	a.Character.Target = 0
	ecs.ForEach2(a.World, component.PlayerTagComponent.Kind(), component.CharacterComponent.Kind(),
		func(e ecs.Entity, _ *component.PlayerTag, c *component.Character) {
			if a.Character.Target == 0 && c.Model != nil {
				a.Character.Target = e.Ref()
			}
		})
}

func (EnemyStrategy) ResourcePath(a *Actor) string {
	rowID := DefaultEnemyRowID
	if a != nil && a.Character.Model != nil {
		rowID = a.Character.Model.Base().RowData.ID
	}
	return resource.MonsterPath(rowID)
}

// UpdateHitPoint anchors the hit point at the lower-left corner of the box
// and places the attack point behind it by the attack range.
func (s EnemyStrategy) UpdateHitPoint(a *Actor, hp *component.HitPoint, v *resource.Visual) {
	s.BaseStrategy.UpdateHitPoint(a, hp, v)
	if hp == nil {
		return
	}
	center := hp.Box.Center()
	size := cp.Vector{X: hp.Box.R - hp.Box.L, Y: hp.Box.T - hp.Box.B}
	hp.Offset = cp.Vector{X: center.X - size.X/2, Y: center.Y - size.Y/2}
	hp.Attack = cp.Vector{X: hp.Offset.X - attackRange(a), Y: 0}
}

func (EnemyStrategy) OnSet(a *Actor) {
	linkPlayer(a)

	base := a.Character.Model.Base()
	if !a.ShowSpeech(CueEnemy, base.RowData.ID) {
		a.ShowSpeech(CueEnemyInit, base.SpawnIndex)
	}
}

func (EnemyStrategy) BeforeAttack(a *Actor, skill model.SkillInfo) {
	a.ShowSpeech(CueEnemySkill, int(skill.ElementalType), int(skill.SkillCategory))
}

func (EnemyStrategy) AfterAttack(a *Actor, skill model.SkillInfo) {
	a.ShowSpeech(CueEnemyAttack)
}

func (EnemyStrategy) BeforeCast(a *Actor, skill model.SkillInfo) {
	a.ShowSpeech(CueEnemySkill, int(skill.ElementalType), int(skill.SkillCategory))
}

func (EnemyStrategy) AfterDamage(a *Actor) {
	a.ShowSpeech(CueEnemyDamage)
}

func (EnemyStrategy) BeforeDying(a *Actor) {
	a.ShowSpeech(CueEnemyDead)
}

func (EnemyStrategy) OnDeadStart(a *Actor) {
	a.World.Events().Push(ecs.Event{Type: ecs.EventEnemyDeadStart, Data: a.Entity})
	a.System.DeadStart.Emit(a.Entity)
}

// OnHPBarUpdated mirrors health and buffs to the boss HUD when this enemy
// is the active boss of the frame.
func (EnemyStrategy) OnHPBarUpdated(a *Actor) {
	boss := a.World.Frame().BossID
	if boss == "" || boss != a.Character.ID() {
		return
	}
	hud, ok := ecs.First(a.World, component.BossStatusComponent.Kind())
	if !ok {
		return
	}
	status, ok := ecs.Get(a.World, hud, component.BossStatusComponent.Kind())
	if !ok {
		return
	}
	status.Current = a.Character.CurrentHP
	status.Max = a.Character.HP
	status.Buffs = append(status.Buffs[:0], a.Character.Model.Base().Buffs...)
	status.Updates++
}

func (EnemyStrategy) DamageTextForce() cp.Vector { return cp.Vector{X: 0, Y: 0.8} }
