package stage

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
)

// hitBox returns the world box of the visual bound to e. Visual bounds are
// measured upward from the entity's feet.
func hitBox(w *ecs.World, e ecs.Entity) (cp.BB, bool) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.BB{}, false
	}
	anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if !ok || anim.Target == nil {
		return cp.BB{}, false
	}
	b := anim.Target.Bounds
	scale := anim.Target.Scale
	return cp.BB{
		L: tr.X + (b.CenterX-b.Width/2)*scale,
		R: tr.X + (b.CenterX+b.Width/2)*scale,
		B: tr.Y - (b.CenterY+b.Height/2)*scale,
		T: tr.Y - (b.CenterY-b.Height/2)*scale,
	}, true
}

func hitTest(w *ecs.World, e ecs.Entity, x, y float64) bool {
	bb, ok := hitBox(w, e)
	if !ok {
		return false
	}
	return bb.L <= x && x <= bb.R && bb.B <= y && y <= bb.T
}
