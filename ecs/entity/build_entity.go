package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"enemy_tag":     addEnemyTag,
	"player_tag":    addPlayerTag,
	"boss_hud_tag":  addBossHUDTag,
	"npc":           addNPC,
	"character":     addCharacter,
	"transform":     addTransform,
	"animator":      addAnimator,
	"sorting_layer": addSortingLayer,
	"visibility":    addVisibility,
	"hp_bar":        addHPBar,
	"boss_status":   addBossStatus,
	"touch_input":   addTouchInput,
	"camera":        addCamera,
	"sequences":     addSequences,
	"subscriptions": addSubscriptions,
}

var componentBuildOrder = []string{
	"enemy_tag",
	"player_tag",
	"boss_hud_tag",
	"npc",
	"character",
	"transform",
	"animator",
	"sorting_layer",
	"visibility",
	"hp_bar",
	"boss_status",
	"touch_input",
	"camera",
	"sequences",
	"subscriptions",
}

// BuildEntity creates an entity with the components listed in a prefab.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	return e, nil
}

// SetEntityTransform moves e, adding a transform when it has none.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addEnemyTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addBossHUDTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.BossHUDTagComponent.Kind(), &component.BossHUDTag{})
}

func addNPC(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.NPCComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode npc spec: %w", err)
	}
	return ecs.Add(w, e, component.NPCComponent.Kind(), &component.NPC{ResourceID: spec.ResourceID})
}

func addCharacter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CharacterComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode character spec: %w", err)
	}
	var kind component.CharacterKind
	switch spec.Kind {
	case "enemy", "":
		kind = component.CharacterEnemy
	case "player":
		kind = component.CharacterPlayer
	default:
		return fmt.Errorf("unknown character kind %q", spec.Kind)
	}
	return ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{Kind: kind})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      spec.X,
		Y:      spec.Y,
		ScaleX: spec.ScaleX,
		ScaleY: spec.ScaleY,
	})
}

func addAnimator(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimatorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animator spec: %w", err)
	}
	anim := component.NewAnimator(spec.TimeScale)
	// Resolved once a visual is bound.
	anim.Pending = spec.Initial
	return ecs.Add(w, e, component.AnimatorComponent.Kind(), anim)
}

func addSortingLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SortingLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sorting_layer spec: %w", err)
	}
	if spec.Layer == "" {
		spec.Layer = component.LayerCharacter
	}
	if !component.KnownLayer(spec.Layer) {
		return fmt.Errorf("unknown sorting layer %q", spec.Layer)
	}
	return ecs.Add(w, e, component.SortingLayerComponent.Kind(), &component.SortingLayer{Name: spec.Layer, Order: spec.Order})
}

func addVisibility(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.VisibilityComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode visibility spec: %w", err)
	}
	if spec.Alpha == 0 {
		spec.Alpha = 1
	}
	return ecs.Add(w, e, component.VisibilityComponent.Kind(), &component.Visibility{Alpha: spec.Alpha})
}

func addHPBar(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.HPBarComponent.Kind(), &component.HPBar{})
}

func addBossStatus(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.BossStatusComponent.Kind(), &component.BossStatus{})
}

func addTouchInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.TouchInputComponent.Kind(), &component.TouchInput{})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom == 0 {
		spec.Zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{Zoom: spec.Zoom})
}

func addSequences(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SequencesComponent.Kind(), &component.Sequences{})
}

func addSubscriptions(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SubscriptionsComponent.Kind(), &component.Subscriptions{})
}
