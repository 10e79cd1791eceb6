package entity

import (
	"fmt"

	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/resource"
)

// NewNPC spawns an NPC bound to visual. A nil visual is rejected.
func NewNPC(w *ecs.World, id string, visual *resource.Visual, x, y float64) (ecs.Entity, error) {
	if visual == nil {
		return 0, fmt.Errorf("npc %s: %w", id, component.ErrNilTarget)
	}
	e, err := spawnAt(w, "entities/npc.yaml", x, y)
	if err != nil {
		return 0, err
	}
	if npc, ok := ecs.Get(w, e, component.NPCComponent.Kind()); ok {
		npc.ResourceID = id
	}
	anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("npc %s: prefab has no animator", id)
	}
	if err := anim.ResetTarget(visual); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("npc %s: %w", id, err)
	}
	if anim.Current == "" {
		anim.Play(component.NPCIdle01)
	}
	return e, nil
}
