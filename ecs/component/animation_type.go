package component

// AnimationType is an enumerated clip identifier of one character family.
type AnimationType interface {
	ClipName() string
	String() string
}

// CharacterAnimation enumerates clips of players and monsters.
type CharacterAnimation int

const (
	CharacterIdle CharacterAnimation = iota
	CharacterRun
	CharacterAttack
	CharacterCasting
	CharacterCastingAttack
	CharacterCriticalAttack
	CharacterHit
	CharacterDie
	CharacterWin
	CharacterTouch
	CharacterAppear
	CharacterDisappear
	CharacterStanding
	CharacterStandingToIdle
	CharacterTurnOver01
	CharacterTurnOver02
)

var characterAnimationNames = [...]string{
	"Idle", "Run", "Attack", "Casting", "CastingAttack", "CriticalAttack", "Hit", "Die",
	"Win", "Touch", "Appear", "Disappear", "Standing", "StandingToIdle", "TurnOver_01", "TurnOver_02",
}

func (t CharacterAnimation) String() string {
	if t < 0 || int(t) >= len(characterAnimationNames) {
		return "Unknown"
	}
	return characterAnimationNames[t]
}

// ClipName is the clip key in visual specs: the lower-cased type name.
func (t CharacterAnimation) ClipName() string {
	return clipName(t.String())
}

// CharacterAnimations lists every CharacterAnimation in declaration order.
func CharacterAnimations() []AnimationType {
	out := make([]AnimationType, 0, len(characterAnimationNames))
	for i := range characterAnimationNames {
		out = append(out, CharacterAnimation(i))
	}
	return out
}

// NPCAnimation enumerates clips of stage NPCs.
type NPCAnimation int

const (
	NPCAppear NPCAnimation = iota
	NPCGreeting
	NPCOpen
	NPCIdle01
	NPCIdle02
	NPCIdle03
	NPCEmotion
	NPCTouch01
	NPCTouch02
	NPCTouch03
	NPCLoop
	NPCDisappear
)

var npcAnimationNames = [...]string{
	"Appear", "Greeting", "Open", "Idle_01", "Idle_02", "Idle_03", "Emotion",
	"Touch_01", "Touch_02", "Touch_03", "Loop", "Disappear",
}

func (t NPCAnimation) String() string {
	if t < 0 || int(t) >= len(npcAnimationNames) {
		return "Unknown"
	}
	return npcAnimationNames[t]
}

func (t NPCAnimation) ClipName() string {
	return clipName(t.String())
}

// NPCAnimations lists every NPCAnimation in declaration order.
func NPCAnimations() []AnimationType {
	out := make([]AnimationType, 0, len(npcAnimationNames))
	for i := range npcAnimationNames {
		out = append(out, NPCAnimation(i))
	}
	return out
}

func clipName(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
