package model

import "strconv"

type ElementalType int

const (
	ElementalNormal ElementalType = iota
	ElementalFire
	ElementalWater
	ElementalLand
	ElementalWind
)

var elementalNames = [...]string{"Normal", "Fire", "Water", "Land", "Wind"}

func (e ElementalType) String() string {
	if e < 0 || int(e) >= len(elementalNames) {
		return "ElementalType(" + strconv.Itoa(int(e)) + ")"
	}
	return elementalNames[e]
}

type SkillCategory int

const (
	SkillNormalAttack SkillCategory = iota
	SkillBlowAttack
	SkillDoubleAttack
	SkillAreaAttack
	SkillBuffRemovalAttack
	SkillHeal
	SkillHPBuff
	SkillAttackBuff
	SkillDefenseBuff
)

var skillCategoryNames = [...]string{
	"NormalAttack", "BlowAttack", "DoubleAttack", "AreaAttack", "BuffRemovalAttack",
	"Heal", "HPBuff", "AttackBuff", "DefenseBuff",
}

func (c SkillCategory) String() string {
	if c < 0 || int(c) >= len(skillCategoryNames) {
		return "SkillCategory(" + strconv.Itoa(int(c)) + ")"
	}
	return skillCategoryNames[c]
}

// SkillInfo is one resolved hit of a skill against a single target.
type SkillInfo struct {
	TargetID      string        `yaml:"target" json:"target"`
	Effect        int           `yaml:"effect" json:"effect"`
	Critical      bool          `yaml:"critical" json:"critical"`
	ElementalType ElementalType `yaml:"elemental" json:"elemental"`
	SkillCategory SkillCategory `yaml:"category" json:"category"`
}
