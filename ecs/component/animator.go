package component

import (
	"errors"

	"github.com/milk9111/battlestage/resource"
)

var ErrNilTarget = errors.New("animator: target is nil")

// Animator plays clips of the visual it is bound to. Requests for clips the
// target lacks stay pending until a target that has them is bound.
type Animator struct {
	Target    *resource.Visual
	TimeScale float64

	Current  string
	Frame    int
	Elapsed  float64
	Playing  bool
	Finished bool
	// Fired is the last frame of Current whose events were published.
	Fired int

	Pending string
	// Events holds event names published during the current tick.
	Events []string
}

// NewAnimator creates an animator with no target bound.
func NewAnimator(timeScale float64) *Animator {
	if timeScale <= 0 {
		timeScale = 1
	}
	return &Animator{TimeScale: timeScale, Fired: -1}
}

// Play requests a transition to t. It reports whether the clip started.
func (a *Animator) Play(t AnimationType) bool {
	if a == nil || t == nil {
		return false
	}
	return a.PlayClip(t.ClipName())
}

// PlayClip requests a transition to the named clip.
func (a *Animator) PlayClip(name string) bool {
	if a == nil || name == "" {
		return false
	}
	if !a.Target.HasClip(name) {
		a.Pending = name
		return false
	}
	a.start(name)
	return true
}

// HasType reports whether the bound target has a clip for t.
func (a *Animator) HasType(t AnimationType) bool {
	if a == nil || t == nil {
		return false
	}
	return a.Target.HasClip(t.ClipName())
}

// ResetTarget rebinds the animator to target, keeping the current and
// pending requests.
func (a *Animator) ResetTarget(target *resource.Visual) error {
	if a == nil {
		return ErrNilComponent
	}
	if target == nil {
		return ErrNilTarget
	}
	a.Target = target

	switch {
	case a.Pending != "" && target.HasClip(a.Pending):
		a.start(a.Pending)
	case a.Current != "" && target.HasClip(a.Current):
		a.start(a.Current)
	case a.Current != "":
		a.Pending = a.Current
		a.Current = ""
		a.Playing = false
	}
	return nil
}

// Clip returns the definition of the current clip.
func (a *Animator) Clip() (resource.Clip, bool) {
	if a == nil || a.Target == nil || a.Current == "" {
		return resource.Clip{}, false
	}
	clip, ok := a.Target.Clips[a.Current]
	return clip, ok
}

// Publish appends a named event to the side channel.
func (a *Animator) Publish(name string) {
	if a == nil || name == "" {
		return
	}
	a.Events = append(a.Events, name)
}

// DrainEvents returns and clears the published event names.
func (a *Animator) DrainEvents() []string {
	if a == nil || len(a.Events) == 0 {
		return nil
	}
	out := a.Events
	a.Events = nil
	return out
}

func (a *Animator) start(name string) {
	a.Current = name
	a.Frame = 0
	a.Elapsed = 0
	a.Fired = -1
	a.Playing = true
	a.Finished = false
	a.Pending = ""
}

var AnimatorComponent = NewComponent[Animator]()
