package component

import "github.com/milk9111/battlestage/model"

// HPBar is the health bar drawn above a character.
type HPBar struct {
	Current int
	Max     int
	Buffs   []model.Buff
	Hidden  bool
}

var HPBarComponent = NewComponent[HPBar]()
