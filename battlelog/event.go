// Package battlelog feeds battle-simulation results to the stage one event
// at a time, either from a recorded replay or a live websocket feed.
package battlelog

import (
	"errors"
	"fmt"

	"github.com/milk9111/battlestage/model"
)

var ErrUnknownKind = errors.New("battlelog: unknown event kind")

type Kind string

const (
	KindSpawnEnemy  Kind = "spawn_enemy"
	KindSpawnPlayer Kind = "spawn_player"
	KindSetBoss     Kind = "set_boss"
	KindAttack      Kind = "attack"
	KindCast        Kind = "cast"
	KindBuff        Kind = "buff"
	KindWait        Kind = "wait"
)

// Event is one simulation step. Fields not used by Kind are zero.
type Event struct {
	Kind          Kind              `yaml:"kind" json:"kind"`
	ID            string            `yaml:"id,omitempty" json:"id,omitempty"`
	RowID         int               `yaml:"row_id,omitempty" json:"row_id,omitempty"`
	ArmorID       int               `yaml:"armor_id,omitempty" json:"armor_id,omitempty"`
	FullCostumeID int               `yaml:"full_costume_id,omitempty" json:"full_costume_id,omitempty"`
	HP            int               `yaml:"hp,omitempty" json:"hp,omitempty"`
	AttackRange   float64           `yaml:"attack_range,omitempty" json:"attack_range,omitempty"`
	RunSpeed      float64           `yaml:"run_speed,omitempty" json:"run_speed,omitempty"`
	SpawnIndex    int               `yaml:"spawn_index,omitempty" json:"spawn_index,omitempty"`
	Ticks         int               `yaml:"ticks,omitempty" json:"ticks,omitempty"`
	Skills        []model.SkillInfo `yaml:"skills,omitempty" json:"skills,omitempty"`
	Buffs         []model.Buff      `yaml:"buffs,omitempty" json:"buffs,omitempty"`
}

// Validate checks that the event kind is known and carries what it needs.
func (e Event) Validate() error {
	switch e.Kind {
	case KindWait:
		if e.Ticks < 0 {
			return fmt.Errorf("battlelog: wait ticks %d is negative", e.Ticks)
		}
		return nil
	case KindSpawnEnemy, KindSpawnPlayer, KindSetBoss, KindAttack, KindCast, KindBuff:
		if e.ID == "" {
			return fmt.Errorf("battlelog: %s event has no id", e.Kind)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}
}

// Source yields events without blocking the tick.
type Source interface {
	// Poll returns the next event if one is ready.
	Poll() (Event, bool)
	Close() error
}
