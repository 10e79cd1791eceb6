package entity

import (
	"fmt"

	"github.com/milk9111/battlestage/ecs"
)

// NewEnemy spawns an unbound enemy character at (x, y).
func NewEnemy(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return spawnAt(w, "entities/enemy.yaml", x, y)
}

// NewPlayer spawns an unbound player character at (x, y).
func NewPlayer(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return spawnAt(w, "entities/player.yaml", x, y)
}

func spawnAt(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("%s: set transform: %w", prefab, err)
	}
	return e, nil
}
