// Package audio plays queued sound effect codes through ebiten audio.
package audio

import (
	"log"

	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/battlestage/assets"
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
)

type PlayerLoader func(code string) (*ebaudio.Player, error)

// AudioSystem drains the sfx queue every tick and plays each code once.
type AudioSystem struct {
	Volume float64

	load    PlayerLoader
	players map[string]*ebaudio.Player
	missing map[string]bool
}

func NewAudioSystem(volume float64) *AudioSystem {
	return &AudioSystem{
		Volume:  volume,
		load:    func(code string) (*ebaudio.Player, error) { return assets.LoadAudioPlayer(assets.SFXPath(code)) },
		players: map[string]*ebaudio.Player{},
		missing: map[string]bool{},
	}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.SFXQueueComponent.Kind(), func(_ ecs.Entity, q *component.SFXQueue) {
		for _, code := range q.Drain() {
			a.play(code)
		}
	})
}

func (a *AudioSystem) play(code string) {
	if a.missing[code] {
		return
	}
	player, ok := a.players[code]
	if !ok {
		p, err := a.load(code)
		if err != nil {
			log.Printf("audio: load sfx %s: %v", code, err)
			a.missing[code] = true
			return
		}
		player = p
		a.players[code] = player
	}
	player.SetVolume(a.Volume)
	if err := player.Rewind(); err != nil {
		log.Printf("audio: rewind sfx %s: %v", code, err)
	}
	player.Play()
}
