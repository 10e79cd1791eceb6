package system

import (
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/resource"
)

// AnimatorSystem advances clip playback and publishes frame events.
type AnimatorSystem struct{}

func NewAnimatorSystem() *AnimatorSystem {
	return &AnimatorSystem{}
}

func (s *AnimatorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(e ecs.Entity, a *component.Animator) {
		a.Events = nil
		if !a.Playing {
			return
		}
		clip, ok := a.Clip()
		if !ok || clip.FrameCount <= 0 {
			return
		}

		fireThrough(w, e, a, clip, a.Frame)
		if a.Finished {
			return
		}

		a.Elapsed += clip.FPS / 60 * a.TimeScale
		for a.Elapsed >= 1 {
			a.Elapsed--
			a.Frame++
			if a.Frame < clip.FrameCount {
				continue
			}
			if clip.Loop {
				// Frames skipped on the way to the wrap still fire.
				fireThrough(w, e, a, clip, clip.FrameCount-1)
				a.Frame = 0
				a.Fired = -1
				continue
			}
			a.Frame = clip.FrameCount - 1
			a.Elapsed = 0
			a.Finished = true
		}
	})
}

// fireThrough publishes the events of every frame after a.Fired up to last.
func fireThrough(w *ecs.World, e ecs.Entity, a *component.Animator, clip resource.Clip, last int) {
	for f := a.Fired + 1; f <= last; f++ {
		for _, name := range clip.Events[f] {
			a.Publish(name)
			w.Events().Push(ecs.Event{
				Type: ecs.EventAnimation,
				Data: ecs.AnimationEvent{Entity: e, Clip: a.Current, Name: name},
			})
		}
	}
	if last > a.Fired {
		a.Fired = last
	}
}
