package system

import (
	"fmt"

	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/resource"
)

const (
	// NPCTimeScale is the playback speed of NPC animators.
	NPCTimeScale = 1.2
	// ClickWindowTicks is the longest gap between clicks of one gesture.
	ClickWindowTicks = 20
)

// NPCSystem handles touch input and animation events of stage NPCs.
type NPCSystem struct {
	Events *EventRegistry
}

func NewNPCSystem(events *EventRegistry) *NPCSystem {
	if events == nil {
		events = DefaultEventRegistry()
	}
	return &NPCSystem{Events: events}
}

// ClassifyClicks groups raw click ticks into gestures. A group closes once
// window ticks pass after its last click; clicks of a group still open at
// now are returned as rest.
func ClassifyClicks(clicks []uint64, now, window uint64) (gestures []component.Gesture, rest []uint64) {
	if len(clicks) == 0 {
		return nil, nil
	}
	start := 0
	for i := 1; i <= len(clicks); i++ {
		if i < len(clicks) && clicks[i]-clicks[i-1] <= window {
			continue
		}
		last := clicks[i-1]
		if i == len(clicks) && now-last < window {
			return gestures, append([]uint64(nil), clicks[start:]...)
		}
		gestures = append(gestures, gestureFor(i-start))
		start = i
	}
	return gestures, nil
}

func gestureFor(n int) component.Gesture {
	switch {
	case n <= 1:
		return component.GestureClick
	case n == 2:
		return component.GestureDoubleClick
	default:
		return component.GestureMultipleClick
	}
}

func (s *NPCSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Frame().Tick
	ecs.ForEach2(w, component.NPCComponent.Kind(), component.AnimatorComponent.Kind(), func(e ecs.Entity, _ *component.NPC, anim *component.Animator) {
		if touch, ok := ecs.Get(w, e, component.TouchInputComponent.Kind()); ok {
			gestures, rest := ClassifyClicks(touch.Clicks, now, ClickWindowTicks)
			touch.Clicks = rest
			touch.Gestures = append(touch.Gestures, gestures...)
			if len(touch.Gestures) > 0 {
				touch.Gestures = touch.Gestures[:0]
				anim.Play(component.NPCTouch01)
			}
		}

		for _, name := range anim.DrainEvents() {
			s.Events.Dispatch(w, e, name)
		}

		if anim.Finished && anim.HasType(component.NPCIdle01) {
			anim.Play(component.NPCIdle01)
		}
	})
}

// PlayAnimation plays t on the NPC entity e.
func (s *NPCSystem) PlayAnimation(w *ecs.World, e ecs.Entity, t component.NPCAnimation) bool {
	anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if !ok {
		return false
	}
	return anim.Play(t)
}

// SetSortingLayer moves e to layer, keeping its order.
func (s *NPCSystem) SetSortingLayer(w *ecs.World, e ecs.Entity, layer string) error {
	order := 0
	if sl, ok := ecs.Get(w, e, component.SortingLayerComponent.Kind()); ok {
		order = sl.Order
	}
	return s.SetSortingLayerOrder(w, e, layer, order)
}

// SetSortingLayerOrder moves e to layer at order.
func (s *NPCSystem) SetSortingLayerOrder(w *ecs.World, e ecs.Entity, layer string, order int) error {
	if !component.KnownLayer(layer) {
		return fmt.Errorf("npc: sorting layer %q: %w", layer, ErrInvalidArgument)
	}
	sl, ok := ecs.Get(w, e, component.SortingLayerComponent.Kind())
	if !ok {
		sl = &component.SortingLayer{}
		if err := ecs.Add(w, e, component.SortingLayerComponent.Kind(), sl); err != nil {
			return fmt.Errorf("npc: sorting layer: %w", err)
		}
	}
	sl.Name = layer
	sl.Order = order
	return nil
}

// ResetAnimatorTarget rebinds the NPC animator to target.
func (s *NPCSystem) ResetAnimatorTarget(w *ecs.World, e ecs.Entity, target *resource.Visual) error {
	if target == nil {
		return fmt.Errorf("npc: reset animator target: %w", component.ErrNilTarget)
	}
	anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if !ok {
		return fmt.Errorf("npc: entity %s has no animator: %w", e, ErrInvalidArgument)
	}
	return anim.ResetTarget(target)
}
