package component

import "github.com/milk9111/battlestage/model"

// BossStatus mirrors the health and buffs of the active boss on the HUD.
type BossStatus struct {
	Current int
	Max     int
	Buffs   []model.Buff
	// Updates counts pushes received.
	Updates int
}

var BossStatusComponent = NewComponent[BossStatus]()
