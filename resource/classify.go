// Package resource maps character resource identifiers to loadable visual
// specs. Classification is convention based: the leading character of an
// identifier names the character family.
package resource

import (
	"fmt"
	"strings"
)

// Kind is the character family an identifier belongs to.
type Kind int

const (
	KindInvalid Kind = iota
	KindPlayer
	KindMonster
	KindNPC
	KindFullCostume
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindMonster:
		return "monster"
	case KindNPC:
		return "npc"
	case KindFullCostume:
		return "full_costume"
	default:
		return "invalid"
	}
}

const (
	playerPathFormat      = "Character/Player/%s"
	monsterPathFormat     = "Character/Monster/%s"
	npcPathFormat         = "Character/NPC/%s"
	fullCostumePathFormat = "Character/FullCostume/%s"
	backgroundPathFormat  = "Prefab/Background/%s"

	// DialogNPCPrefix marks dialog-only NPC resources.
	DialogNPCPrefix = "dialog_"
)

// Classify returns the family of id. Exactly one rule matches any input;
// everything that matches none is KindInvalid.
func Classify(id string) Kind {
	switch {
	case id == "":
		return KindInvalid
	case strings.HasPrefix(id, DialogNPCPrefix):
		return KindNPC
	}
	switch id[0] {
	case '1':
		return KindPlayer
	case '2':
		return KindMonster
	case '3':
		return KindNPC
	case '4':
		return KindFullCostume
	}
	return KindInvalid
}

// Path returns the resource path for id within kind, or "" for KindInvalid.
func Path(kind Kind, id string) string {
	switch kind {
	case KindPlayer:
		return fmt.Sprintf(playerPathFormat, id)
	case KindMonster:
		return fmt.Sprintf(monsterPathFormat, id)
	case KindNPC:
		return fmt.Sprintf(npcPathFormat, id)
	case KindFullCostume:
		return fmt.Sprintf(fullCostumePathFormat, id)
	}
	return ""
}

// MonsterPath returns the visual path of a monster row id.
func MonsterPath(rowID int) string {
	return fmt.Sprintf(monsterPathFormat, fmt.Sprint(rowID))
}

// PlayerPath returns the visual path of a player armor id.
func PlayerPath(armorID int) string {
	return fmt.Sprintf(playerPathFormat, fmt.Sprint(armorID))
}

// FullCostumePath returns the visual path of a full costume id.
func FullCostumePath(costumeID int) string {
	return fmt.Sprintf(fullCostumePathFormat, fmt.Sprint(costumeID))
}

// BackgroundPath returns the prefab path of a stage background.
func BackgroundPath(name string) string {
	return fmt.Sprintf(backgroundPathFormat, name)
}
