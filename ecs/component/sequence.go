package component

import "github.com/milk9111/battlestage/model"

// SequenceKind names a multi-step combat sequence.
type SequenceKind int

const (
	SequenceAttack SequenceKind = iota
	SequenceCast
	SequenceDamage
	SequenceDying
)

func (k SequenceKind) String() string {
	switch k {
	case SequenceAttack:
		return "attack"
	case SequenceCast:
		return "cast"
	case SequenceDamage:
		return "damage"
	case SequenceDying:
		return "dying"
	default:
		return "unknown"
	}
}

// Sequence is a tick-driven state machine. Step advances once Wait reaches zero.
type Sequence struct {
	Kind  SequenceKind
	Step  int
	Wait  int
	Token uint64

	Skill       model.SkillInfo
	ConsiderDie bool
	Attacker    EntityRef
}

// Sequences holds the sequences running on one entity.
type Sequences struct {
	Active []Sequence
}

// Start appends a sequence bound to token.
func (s *Sequences) Start(seq Sequence, token uint64) {
	if s == nil {
		return
	}
	seq.Token = token
	s.Active = append(s.Active, seq)
}

// Running reports whether a sequence of kind is active under token.
func (s *Sequences) Running(kind SequenceKind, token uint64) bool {
	if s == nil {
		return false
	}
	for _, seq := range s.Active {
		if seq.Kind == kind && seq.Token == token {
			return true
		}
	}
	return false
}

var SequencesComponent = NewComponent[Sequences]()
