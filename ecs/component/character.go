package component

import "github.com/milk9111/battlestage/model"

// CharacterKind selects the strategy that drives a character entity.
type CharacterKind int

const (
	CharacterEnemy CharacterKind = iota
	CharacterPlayer
)

func (k CharacterKind) String() string {
	switch k {
	case CharacterEnemy:
		return "enemy"
	case CharacterPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// CombatPhase is the combat state of a character. Dead is terminal.
type CombatPhase int

const (
	PhaseIdle CombatPhase = iota
	PhaseRunning
	PhaseAttacking
	PhaseCasting
	PhaseHit
	PhaseDying
	PhaseDead
)

var phaseNames = [...]string{"idle", "running", "attacking", "casting", "hit", "dying", "dead"}

func (p CombatPhase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Character is the presentation state of one combatant bound to a model.
type Character struct {
	Kind  CharacterKind
	Model model.Character
	Phase CombatPhase

	// CurrentHP is the displayed health; the model stays untouched.
	CurrentHP int
	HP        int

	Target EntityRef
	// Token identifies the current model binding. Sequences started under
	// an older token are dropped.
	Token uint64

	DeadStartFired bool
	// Speed is the horizontal run speed in world units per tick.
	Speed float64
}

// IsDead reports whether the displayed health is exhausted.
func (c *Character) IsDead() bool {
	return c != nil && c.Model != nil && c.CurrentHP <= 0
}

// ID returns the bound model id, or "" when unbound.
func (c *Character) ID() string {
	if c == nil || c.Model == nil {
		return ""
	}
	return c.Model.Base().ID
}

var CharacterComponent = NewComponent[Character]()
