package system

import (
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/model"
	"github.com/milk9111/battlestage/resource"
)

// PlayerStrategy drives the player character.
type PlayerStrategy struct {
	BaseStrategy
}

func (PlayerStrategy) Accepts(m model.Character) bool {
	_, ok := m.(*model.Player)
	return ok
}

// CanRun stops the player while any living enemy is within attack range.
func (s PlayerStrategy) CanRun(a *Actor) bool {
	if !s.BaseStrategy.CanRun(a) {
		return false
	}
	blocked := false
	ecs.ForEach2(a.World, component.EnemyTagComponent.Kind(), component.CharacterComponent.Kind(),
		func(e ecs.Entity, _ *component.EnemyTag, c *component.Character) {
			if blocked || c.Model == nil || c.Phase == component.PhaseDying || c.Phase == component.PhaseDead {
				return
			}
			if a.InAttackRange(&Actor{System: a.System, World: a.World, Entity: e, Character: c}) {
				blocked = true
			}
		})
	return !blocked
}

func (PlayerStrategy) ResourcePath(a *Actor) string {
	p, ok := a.Character.Model.(*model.Player)
	if !ok {
		return resource.PlayerPath(0)
	}
	if p.FullCostumeID != 0 {
		return resource.FullCostumePath(p.FullCostumeID)
	}
	return resource.PlayerPath(p.ArmorID)
}

func (PlayerStrategy) OnSet(a *Actor) {
	a.Character.Target = 0
	ecs.ForEach2(a.World, component.EnemyTagComponent.Kind(), component.CharacterComponent.Kind(),
		func(e ecs.Entity, _ *component.EnemyTag, c *component.Character) {
			if a.Character.Target == 0 && c.Model != nil && c.Phase != component.PhaseDead {
				a.Character.Target = e.Ref()
			}
		})
}
