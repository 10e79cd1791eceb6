package component

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// NPC marks an interaction-only stage character.
type NPC struct {
	ResourceID string
}

var NPCComponent = NewComponent[NPC]()

type BossHUDTag struct{}

var BossHUDTagComponent = NewComponent[BossHUDTag]()

// Visibility controls whether and how opaque an entity is drawn.
type Visibility struct {
	Hidden bool
	Alpha  float64
	// Fade is the alpha change applied per tick.
	Fade float64
}

var VisibilityComponent = NewComponent[Visibility]()
