package system

import (
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
)

const DefaultVFXTicks = 36

// EffectsSystem ages transient presentation entities: speech bubbles,
// damage text, particle effects and fades.
type EffectsSystem struct{}

func NewEffectsSystem() *EffectsSystem {
	return &EffectsSystem{}
}

func (s *EffectsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.SpeechBubbleComponent.Kind(), func(e ecs.Entity, b *component.SpeechBubble) {
		b.TTL--
		if b.TTL <= 0 {
			ecs.Remove(w, e, component.SpeechBubbleComponent.Kind())
		}
	})

	ecs.ForEach(w, component.DamageTextComponent.Kind(), func(e ecs.Entity, d *component.DamageText) {
		d.X += d.VX
		d.Y += d.VY
		d.VY *= 0.92
		d.TTL--
		if d.TTL <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})

	ecs.ForEach(w, component.VFXComponent.Kind(), func(e ecs.Entity, v *component.VFX) {
		if v.Follow != 0 {
			if cam, ok := ecs.Get(w, ecs.Deref(v.Follow), component.CameraComponent.Kind()); ok {
				v.X = cam.X + v.OffsetX
				v.Y = cam.Y + v.OffsetY
			}
		}
		v.TTL--
		if v.TTL <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})

	ecs.ForEach(w, component.VisibilityComponent.Kind(), func(e ecs.Entity, v *component.Visibility) {
		if v.Fade == 0 {
			return
		}
		v.Alpha += v.Fade
		if v.Alpha <= 0 {
			v.Alpha = 0
			v.Fade = 0
		} else if v.Alpha >= 1 {
			v.Alpha = 1
			v.Fade = 0
		}
	})
}
