// Package model holds the battle-simulation state the presentation layer
// reads. The simulation owns and mutates these values; views subscribe to
// the signals and never write back.
package model

// RowData is the static game-data record a character was built from.
type RowData struct {
	ID int `yaml:"id" json:"id"`
}

// Buff is an active status effect on a character.
type Buff struct {
	ID               int    `yaml:"id" json:"id"`
	Name             string `yaml:"name" json:"name"`
	RemainedDuration int    `yaml:"remained_duration" json:"remained_duration"`
}

// CharacterBase carries the stats shared by every combatant.
type CharacterBase struct {
	ID          string
	HP          int
	CurrentHP   int
	AttackRange float64
	RunSpeed    float64
	Buffs       []Buff
	RowData     RowData
	SpawnIndex  int

	HPChanged    Signal[int]
	BuffsChanged Signal[[]Buff]
}

// Character is implemented by every model variant.
type Character interface {
	Base() *CharacterBase
}

func (c *CharacterBase) Base() *CharacterBase { return c }

// SetCurrentHP updates the simulation hp and notifies subscribers.
func (c *CharacterBase) SetCurrentHP(hp int) {
	if hp < 0 {
		hp = 0
	}
	if hp > c.HP {
		hp = c.HP
	}
	c.CurrentHP = hp
	c.HPChanged.Emit(hp)
}

// SetBuffs replaces the active buffs and notifies subscribers.
func (c *CharacterBase) SetBuffs(buffs []Buff) {
	c.Buffs = append([]Buff(nil), buffs...)
	c.BuffsChanged.Emit(c.Buffs)
}

// IsDead reports whether the simulation considers the character dead.
func (c *CharacterBase) IsDead() bool {
	return c.CurrentHP <= 0
}

// Enemy is a monster spawned by a stage wave.
type Enemy struct {
	CharacterBase
}

// Player is the avatar controlled by the user.
type Player struct {
	CharacterBase
	ArmorID       int
	FullCostumeID int
}

// NewEnemy builds an enemy model at full health.
func NewEnemy(id string, rowID, hp int, attackRange float64, spawnIndex int) *Enemy {
	return &Enemy{CharacterBase: CharacterBase{
		ID:          id,
		HP:          hp,
		CurrentHP:   hp,
		AttackRange: attackRange,
		RowData:     RowData{ID: rowID},
		SpawnIndex:  spawnIndex,
	}}
}

// NewPlayer builds a player model at full health.
func NewPlayer(id string, armorID, hp int, attackRange, runSpeed float64) *Player {
	return &Player{
		CharacterBase: CharacterBase{
			ID:          id,
			HP:          hp,
			CurrentHP:   hp,
			AttackRange: attackRange,
			RunSpeed:    runSpeed,
			RowData:     RowData{ID: armorID},
		},
		ArmorID: armorID,
	}
}
