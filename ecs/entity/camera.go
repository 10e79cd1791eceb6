package entity

import (
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
)

// NewCamera spawns the active stage camera centered on (x, y).
func NewCamera(w *ecs.World, x, y float64) (ecs.Entity, error) {
	e, err := spawnAt(w, "entities/camera.yaml", x, y)
	if err != nil {
		return 0, err
	}
	if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
		cam.X = x
		cam.Y = y
		cam.Active = true
	}
	return e, nil
}

// NewBossHUD spawns the boss status HUD entity.
func NewBossHUD(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "entities/boss_hud.yaml")
}
