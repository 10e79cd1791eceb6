// Package viewer is the debug resource browser: it classifies a typed
// resource id, binds the matching character slot and offers one button per
// animation type.
package viewer

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/ecs/entity"
	"github.com/milk9111/battlestage/ecs/system"
	"github.com/milk9111/battlestage/resource"
)

const (
	MsgEmptyID       = "Resource ID is empty."
	MsgInvalidPrefab = "Prefab name is invaild."

	// CameraSpeed is the pan distance per tick at full axis input.
	CameraSpeed = 4.0
)

type Slot int

const (
	SlotNone Slot = iota
	SlotEnemy
	SlotNPC
	SlotPlayer
)

func (s Slot) String() string {
	switch s {
	case SlotEnemy:
		return "enemy"
	case SlotNPC:
		return "npc"
	case SlotPlayer:
		return "player"
	default:
		return "none"
	}
}

// Button is a pooled animation button.
type Button struct {
	Label  string
	Active bool
	Type   component.AnimationType

	onClick func()
}

func (b *Button) Click() {
	if b != nil && b.Active && b.onClick != nil {
		b.onClick()
	}
}

type Viewer struct {
	History *History

	world     *ecs.World
	scheduler *ecs.Scheduler
	loader    *resource.Loader
	camera    ecs.Entity
	slots     map[Slot]ecs.Entity
	active    Slot
	tick      uint64

	warning     string
	showWarning bool
	uiVisible   bool

	pool        []*Button
	activeCount int

	current      string
	background   *resource.Background
	backgroundID string
}

// New creates a viewer with one hidden slot per character family.
func New(loader *resource.Loader, history *History) (*Viewer, error) {
	if loader == nil {
		return nil, fmt.Errorf("viewer: nil loader: %w", system.ErrInvalidArgument)
	}
	w := ecs.NewWorld()
	v := &Viewer{
		History:   history,
		world:     w,
		loader:    loader,
		slots:     map[Slot]ecs.Entity{},
		uiVisible: true,
		scheduler: ecs.NewScheduler(
			system.NewAnimatorSystem(),
			system.NewNPCSystem(nil),
			system.NewEffectsSystem(),
		),
	}

	cam, err := entity.NewCamera(w, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("viewer: camera: %w", err)
	}
	v.camera = cam

	builders := map[Slot]func() (ecs.Entity, error){
		SlotEnemy:  func() (ecs.Entity, error) { return entity.NewEnemy(w, 0, 0) },
		SlotPlayer: func() (ecs.Entity, error) { return entity.NewPlayer(w, 0, 0) },
		SlotNPC: func() (ecs.Entity, error) {
			e, err := entity.BuildEntity(w, "entities/npc.yaml")
			if err != nil {
				return 0, err
			}
			return e, entity.SetEntityTransform(w, e, 0, 0)
		},
	}
	for slot, build := range builders {
		e, err := build()
		if err != nil {
			return nil, fmt.Errorf("viewer: %s slot: %w", slot, err)
		}
		v.slots[slot] = e
		v.setSlotActive(slot, false)
	}
	return v, nil
}

func (v *Viewer) World() *ecs.World { return v.world }

// Update advances the slot animations one tick.
func (v *Viewer) Update() {
	v.tick++
	v.scheduler.Update(v.world, ecs.Frame{Tick: v.tick})
}

// Warning returns the warning text and whether it is shown.
func (v *Viewer) Warning() (string, bool) { return v.warning, v.showWarning }

func (v *Viewer) ActiveSlot() Slot { return v.active }

// SlotEntity returns the entity backing slot.
func (v *Viewer) SlotEntity(slot Slot) (ecs.Entity, bool) {
	e, ok := v.slots[slot]
	return e, ok
}

// Current returns the id of the shown resource.
func (v *Viewer) Current() string { return v.current }

func (v *Viewer) Background() *resource.Background { return v.background }

func (v *Viewer) UIVisible() bool { return v.uiVisible }

func (v *Viewer) ToggleUI() { v.uiVisible = !v.uiVisible }

func (v *Viewer) warn(msg string) {
	v.warning = msg
	v.showWarning = true
}

func (v *Viewer) hideWarning() { v.showWarning = false }

// LoadResource classifies id and shows it in the matching slot. Every slot
// is disabled first; a slot only becomes active once its visual loaded.
func (v *Viewer) LoadResource(id string) {
	for slot := range v.slots {
		v.setSlotActive(slot, false)
	}
	v.active = SlotNone
	v.hideWarning()

	if strings.TrimSpace(id) == "" {
		v.warn(MsgEmptyID)
		return
	}

	kind := resource.Classify(id)
	if kind == resource.KindInvalid {
		v.warn(MsgInvalidPrefab)
		return
	}

	if err := v.show(kind, id); err != nil {
		var loadErr *resource.LoadError
		if errors.As(err, &loadErr) {
			v.warn(loadErr.Error())
		} else {
			v.warn(err.Error())
		}
		log.Printf("viewer: load %s: %v", id, err)
		return
	}
	v.current = id
	v.History.Push(id)
}

func slotFor(kind resource.Kind) Slot {
	switch kind {
	case resource.KindMonster:
		return SlotEnemy
	case resource.KindNPC:
		return SlotNPC
	case resource.KindPlayer, resource.KindFullCostume:
		return SlotPlayer
	}
	return SlotNone
}

func (v *Viewer) show(kind resource.Kind, id string) error {
	slot := slotFor(kind)
	e := v.slots[slot]
	anim, ok := ecs.Get(v.world, e, component.AnimatorComponent.Kind())
	if !ok {
		return fmt.Errorf("viewer: %s slot has no animator", slot)
	}

	visual, err := v.loader.Visual(resource.Path(kind, id))
	if err != nil {
		return err
	}
	if err := anim.ResetTarget(visual); err != nil {
		return err
	}

	types := component.CharacterAnimations()
	idle := component.AnimationType(component.CharacterIdle)
	if slot == SlotNPC {
		types = component.NPCAnimations()
		idle = component.NPCIdle01
	}
	if _, playing := anim.Clip(); !playing {
		anim.Play(idle)
	}

	v.setSlotActive(slot, true)
	v.active = slot
	v.showAnimations(anim, types)
	return nil
}

func (v *Viewer) setSlotActive(slot Slot, active bool) {
	e, ok := v.slots[slot]
	if !ok {
		return
	}
	vis, ok := ecs.Get(v.world, e, component.VisibilityComponent.Kind())
	if !ok {
		vis = &component.Visibility{Alpha: 1}
		_ = ecs.Add(v.world, e, component.VisibilityComponent.Kind(), vis)
	}
	vis.Hidden = !active
}

// showAnimations returns the active buttons to the pool and binds one
// button per type. The pool only grows.
func (v *Viewer) showAnimations(anim *component.Animator, types []component.AnimationType) {
	v.hideWarning()
	for _, b := range v.pool {
		b.Active = false
		b.onClick = nil
	}
	for i, t := range types {
		if i >= len(v.pool) {
			v.pool = append(v.pool, &Button{})
		}
		b := v.pool[i]
		t := t
		b.Label = t.String()
		b.Type = t
		b.Active = true
		b.onClick = func() {
			v.hideWarning()
			if !anim.HasType(t) {
				v.warn(fmt.Sprintf("Animation not found.\nType : %s", t))
				return
			}
			anim.Play(t)
		}
	}
	v.activeCount = len(types)
}

// Buttons returns the active animation buttons in type order.
func (v *Viewer) Buttons() []*Button {
	return v.pool[:v.activeCount]
}

// PoolSize returns how many buttons have ever been created.
func (v *Viewer) PoolSize() int { return len(v.pool) }

// LoadBackground shows the background prefab name. Asking for the shown
// background again does nothing.
func (v *Viewer) LoadBackground(name string) {
	name = strings.TrimSpace(name)
	if v.background != nil {
		if v.backgroundID == name {
			return
		}
		v.background = nil
		v.backgroundID = ""
	}

	bg, err := v.loader.Background(resource.BackgroundPath(name))
	if err != nil {
		var loadErr *resource.LoadError
		if errors.As(err, &loadErr) {
			v.warn(loadErr.Error())
		} else {
			v.warn(err.Error())
		}
		return
	}
	v.background = bg
	v.backgroundID = name
}

// Pan moves the camera by axis input in [-1, 1].
func (v *Viewer) Pan(h, vert float64) {
	cam, ok := ecs.Get(v.world, v.camera, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam.X += h * CameraSpeed
	cam.Y += vert * CameraSpeed
}

func (v *Viewer) ResetCamera() {
	if cam, ok := ecs.Get(v.world, v.camera, component.CameraComponent.Kind()); ok {
		cam.X, cam.Y = 0, 0
	}
}

// Camera returns the camera position.
func (v *Viewer) Camera() (x, y float64) {
	if cam, ok := ecs.Get(v.world, v.camera, component.CameraComponent.Kind()); ok {
		return cam.X, cam.Y
	}
	return 0, 0
}

// Reload drops cached specs of the changed prefab file and shows the
// current resource again.
func (v *Viewer) Reload(name string) {
	v.loader.Invalidate(name)
	if v.current == "" {
		return
	}
	kind := resource.Classify(v.current)
	if err := v.show(kind, v.current); err != nil {
		v.warn(err.Error())
	}
}
