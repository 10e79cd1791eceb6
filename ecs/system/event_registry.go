package system

import (
	"fmt"
	"sort"
	"strings"

	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
)

// Animation event names emitted by NPC visuals.
const (
	EventSmash   = "Smash"
	EventEmotion = "emotion"
)

const (
	SFXCombinationSmash = "combination_smash"
	VFXHammerSmash      = "hammer_smash"
	// PixelsPerUnit converts effect offsets from world units to screen pixels.
	PixelsPerUnit = 100
)

// KnownEvents is the animation event vocabulary handled out of the box.
var KnownEvents = []string{EventSmash, EventEmotion}

// EventContext is passed to animation event handlers.
type EventContext struct {
	World  *ecs.World
	Entity ecs.Entity
	Name   string
}

type EventHandler func(ctx EventContext)

// EventRegistry maps animation event names to handlers. Unregistered names
// are ignored.
type EventRegistry struct {
	handlers map[string]EventHandler
}

func NewEventRegistry() *EventRegistry {
	return &EventRegistry{handlers: map[string]EventHandler{}}
}

// DefaultEventRegistry returns a registry with the built-in NPC handlers.
func DefaultEventRegistry() *EventRegistry {
	r := NewEventRegistry()
	_ = r.Register(EventSmash, func(ctx EventContext) {
		PlaySFX(ctx.World, SFXCombinationSmash)
		SpawnCameraVFX(ctx.World, VFXHammerSmash, 0.7, -0.25)
	})
	_ = r.Register(EventEmotion, func(EventContext) {})
	return r
}

func (r *EventRegistry) Register(name string, h EventHandler) error {
	if r == nil || strings.TrimSpace(name) == "" || h == nil {
		return fmt.Errorf("events: register %q: %w", name, ErrInvalidArgument)
	}
	if r.handlers == nil {
		r.handlers = map[string]EventHandler{}
	}
	r.handlers[name] = h
	return nil
}

// Dispatch runs the handler for name and reports whether one ran.
func (r *EventRegistry) Dispatch(w *ecs.World, e ecs.Entity, name string) bool {
	if r == nil {
		return false
	}
	h, ok := r.handlers[name]
	if !ok {
		return false
	}
	h(EventContext{World: w, Entity: e, Name: name})
	return true
}

// Names returns the registered event names in sorted order.
func (r *EventRegistry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate rejects handlers registered for names outside vocabulary.
func (r *EventRegistry) Validate(vocabulary []string) error {
	known := make(map[string]bool, len(vocabulary))
	for _, v := range vocabulary {
		known[v] = true
	}
	var unknown []string
	for _, name := range r.Names() {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("events: handlers for unknown events %s: %w", strings.Join(unknown, ", "), ErrInvalidArgument)
	}
	return nil
}

// PlaySFX queues a sound effect code on the world's sfx queue.
func PlaySFX(w *ecs.World, code string) {
	if w == nil || code == "" {
		return
	}
	e, ok := ecs.First(w, component.SFXQueueComponent.Kind())
	if !ok {
		e = ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.SFXQueueComponent.Kind(), &component.SFXQueue{})
	}
	q, _ := ecs.Get(w, e, component.SFXQueueComponent.Kind())
	q.Play(code)
}

// SpawnCameraVFX spawns an effect chasing the active camera at an offset
// given in world units, y up.
func SpawnCameraVFX(w *ecs.World, name string, dx, dy float64) ecs.Entity {
	if w == nil || name == "" {
		return 0
	}
	vfx := &component.VFX{
		Name:    name,
		OffsetX: dx * PixelsPerUnit,
		OffsetY: -dy * PixelsPerUnit,
		TTL:     DefaultVFXTicks,
	}
	if cam, ok := ActiveCamera(w); ok {
		c, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
		vfx.Follow = cam.Ref()
		vfx.X = c.X + vfx.OffsetX
		vfx.Y = c.Y + vfx.OffsetY
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.VFXComponent.Kind(), vfx)
	return e
}

// ActiveCamera returns the first camera marked active.
func ActiveCamera(w *ecs.World) (ecs.Entity, bool) {
	var found ecs.Entity
	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, c *component.Camera) {
		if found == 0 && c.Active {
			found = e
		}
	})
	return found, found != 0
}
