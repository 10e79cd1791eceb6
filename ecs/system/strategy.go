package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/model"
	"github.com/milk9111/battlestage/resource"
)

// CharacterStrategy supplies the variant specific hooks of a character.
type CharacterStrategy interface {
	// Accepts reports whether m is the model variant this strategy drives.
	Accepts(m model.Character) bool
	RunSpeed(a *Actor) float64
	CanRun(a *Actor) bool
	ResourcePath(a *Actor) string
	UpdateHitPoint(a *Actor, hp *component.HitPoint, v *resource.Visual)
	OnSet(a *Actor)
	BeforeAttack(a *Actor, skill model.SkillInfo)
	AfterAttack(a *Actor, skill model.SkillInfo)
	BeforeCast(a *Actor, skill model.SkillInfo)
	// AfterDamage runs once a damage sequence finishes with the character alive.
	AfterDamage(a *Actor)
	BeforeDying(a *Actor)
	// OnDeadStart runs before the shared dead state is applied.
	OnDeadStart(a *Actor)
	OnHPBarUpdated(a *Actor)
	DamageTextForce() cp.Vector
}

// BaseStrategy implements the shared behavior. Variants embed it and
// override what differs.
type BaseStrategy struct{}

func (BaseStrategy) Accepts(m model.Character) bool { return m != nil }

func (BaseStrategy) RunSpeed(a *Actor) float64 {
	if a == nil || a.Character.Model == nil {
		return 0
	}
	return a.Character.Model.Base().RunSpeed
}

func (BaseStrategy) CanRun(a *Actor) bool {
	if a == nil || a.Character.Model == nil || a.Character.IsDead() {
		return false
	}
	switch a.Character.Phase {
	case component.PhaseIdle, component.PhaseRunning:
		return true
	default:
		return false
	}
}

func (BaseStrategy) ResourcePath(a *Actor) string { return "" }

// UpdateHitPoint derives the hit box from the visual bounds. The hit point
// sits at the box center and attacks reach forward by the attack range.
func (BaseStrategy) UpdateHitPoint(a *Actor, hp *component.HitPoint, v *resource.Visual) {
	if hp == nil {
		return
	}
	var bounds resource.Box
	if v != nil {
		bounds = v.Bounds
	}
	scale := 1.0
	if v != nil && v.Scale > 0 {
		scale = v.Scale
	}
	center := cp.Vector{X: bounds.CenterX * scale, Y: bounds.CenterY * scale}
	hw, hh := bounds.Width*scale/2, bounds.Height*scale/2
	hp.Box = cp.NewBBForExtents(center, hw, hh)
	hp.Offset = center
	hp.Attack = cp.Vector{X: hp.Offset.X + attackRange(a), Y: 0}
}

func (BaseStrategy) OnSet(a *Actor)                               {}
func (BaseStrategy) BeforeAttack(a *Actor, skill model.SkillInfo) {}
func (BaseStrategy) AfterAttack(a *Actor, skill model.SkillInfo)  {}
func (BaseStrategy) BeforeCast(a *Actor, skill model.SkillInfo)   {}
func (BaseStrategy) AfterDamage(a *Actor)                         {}
func (BaseStrategy) BeforeDying(a *Actor)                         {}
func (BaseStrategy) OnDeadStart(a *Actor)                         {}
func (BaseStrategy) OnHPBarUpdated(a *Actor)                      {}

func (BaseStrategy) DamageTextForce() cp.Vector { return cp.Vector{X: 0.2, Y: 1} }

func attackRange(a *Actor) float64 {
	if a == nil || a.Character == nil || a.Character.Model == nil {
		return 0
	}
	return a.Character.Model.Base().AttackRange
}
