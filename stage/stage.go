// Package stage runs one battle: it owns the world, the scheduler and the
// battle log feeding them.
package stage

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/battlestage/battlelog"
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/ecs/entity"
	"github.com/milk9111/battlestage/ecs/system"
	"github.com/milk9111/battlestage/model"
	"github.com/milk9111/battlestage/prefabs"
	"github.com/milk9111/battlestage/resource"
)

// ActionDelayTicks is how long the stage waits after an attack or cast
// before pulling the next event.
const ActionDelayTicks = 60

var ErrUnknownCharacter = errors.New("stage: unknown character id")

// Options configure a Stage. Zero values fall back to the embedded data.
type Options struct {
	Loader *resource.Loader
	Speech system.SpeechLookup
	// Source overrides the replay named by the stage spec.
	Source battlelog.Source
	// Systems run after the built-in systems each tick.
	Systems []ecs.System
}

type Stage struct {
	Spec       *prefabs.StageSpec
	Background *resource.Background
	Characters *system.CharacterSystem
	NPCs       *system.NPCSystem
	Events     *system.EventRegistry

	world     *ecs.World
	scheduler *ecs.Scheduler
	loader    *resource.Loader
	source    battlelog.Source

	tick   uint64
	delay  int
	bossID string
	ids    map[string]ecs.Entity
	models map[string]model.Character
	npcs   []ecs.Entity

	// Rewards lists the model ids whose death triggered a reward.
	Rewards []string
}

// New builds the stage described by spec: camera, HUD, background, NPCs and
// their event handlers. Characters arrive later through the battle log.
func New(spec *prefabs.StageSpec, opts Options) (*Stage, error) {
	if spec == nil {
		return nil, fmt.Errorf("stage: nil spec: %w", system.ErrInvalidArgument)
	}
	loader := opts.Loader
	if loader == nil {
		loader = resource.NewLoader(prefabs.Load)
	}

	s := &Stage{
		Spec:   spec,
		world:  ecs.NewWorld(),
		loader: loader,
		source: opts.Source,
		ids:    map[string]ecs.Entity{},
		models: map[string]model.Character{},
		Events: system.DefaultEventRegistry(),
	}
	s.Characters = system.NewCharacterSystem(loader, opts.Speech)
	s.NPCs = system.NewNPCSystem(s.Events)
	s.Characters.DeadStart.Subscribe(s.onDeadStart)

	s.scheduler = ecs.NewScheduler(
		s.Characters,
		system.NewAnimatorSystem(),
		s.NPCs,
		system.NewEffectsSystem(),
	)
	for _, sys := range opts.Systems {
		s.scheduler.Add(sys)
	}

	if spec.Background != "" {
		bg, err := loader.Background(resource.BackgroundPath(spec.Background))
		if err != nil {
			log.Printf("stage: %s background: %v", spec.Name, err)
		} else {
			s.Background = bg
		}
	}

	if _, err := entity.NewCamera(s.world, spec.PlayerX+(spec.EnemyX-spec.PlayerX)/2, spec.GroundY-100); err != nil {
		return nil, fmt.Errorf("stage: camera: %w", err)
	}
	if _, err := entity.NewBossHUD(s.world); err != nil {
		return nil, fmt.Errorf("stage: boss hud: %w", err)
	}

	vocabulary := append([]string(nil), system.KnownEvents...)
	for _, n := range spec.NPCs {
		names, err := s.spawnNPC(n)
		if err != nil {
			return nil, err
		}
		vocabulary = append(vocabulary, names...)
	}

	for _, sc := range spec.Scripts {
		src, err := prefabs.LoadScript(sc.File)
		if err != nil {
			return nil, fmt.Errorf("stage: load script %s: %w", sc.File, err)
		}
		if err := s.Events.RegisterScript(sc.Event, src); err != nil {
			return nil, err
		}
	}
	if err := s.Events.Validate(vocabulary); err != nil {
		return nil, fmt.Errorf("stage: %s: %w", spec.Name, err)
	}

	if s.source == nil && spec.Replay != "" {
		src, err := battlelog.LoadReplay(spec.Replay)
		if err != nil {
			return nil, err
		}
		s.source = src
	}
	return s, nil
}

// Load builds the stage named name from the prefabs tree.
func Load(name string, opts Options) (*Stage, error) {
	spec, err := prefabs.LoadStageSpec(name)
	if err != nil {
		return nil, err
	}
	return New(spec, opts)
}

func (s *Stage) spawnNPC(n prefabs.NPCSpec) ([]string, error) {
	path := resource.Path(resource.Classify(n.ID), n.ID)
	v, err := s.loader.Visual(path)
	if err != nil {
		return nil, fmt.Errorf("stage: npc %s: %w", n.ID, err)
	}
	y := n.Y
	if y == 0 {
		y = s.Spec.GroundY
	}
	e, err := entity.NewNPC(s.world, n.ID, v, n.X, y)
	if err != nil {
		return nil, err
	}
	if n.Layer != "" {
		if err := s.NPCs.SetSortingLayerOrder(s.world, e, n.Layer, n.Order); err != nil {
			return nil, fmt.Errorf("stage: npc %s: %w", n.ID, err)
		}
	}
	s.npcs = append(s.npcs, e)
	return v.EventNames(), nil
}

func (s *Stage) World() *ecs.World { return s.world }

func (s *Stage) Tick() uint64 { return s.tick }

// BossID returns the model id of the current boss, empty when none.
func (s *Stage) BossID() string { return s.bossID }

// Entity returns the character entity bound to model id.
func (s *Stage) Entity(id string) (ecs.Entity, bool) {
	e, ok := s.ids[id]
	return e, ok
}

// Done reports whether the replay has nothing left to apply.
func (s *Stage) Done() bool {
	if r, ok := s.source.(*battlelog.ReplaySource); ok {
		return r.Remaining() == 0 && s.delay == 0
	}
	return false
}

// Update advances the stage one tick. At most one battle log event is
// applied, and only once the delay of the previous one has elapsed.
func (s *Stage) Update() {
	s.tick++
	frame := ecs.Frame{Tick: s.tick, BossID: s.bossID}
	s.world.SetFrame(frame)

	if s.delay > 0 {
		s.delay--
	} else if s.source != nil {
		if ev, ok := s.source.Poll(); ok {
			if err := s.Apply(ev); err != nil {
				log.Printf("stage: apply %s %s: %v", ev.Kind, ev.ID, err)
			}
			frame.BossID = s.bossID
		}
	}

	s.scheduler.Update(s.world, frame)
}

// Close stops the battle log source.
func (s *Stage) Close() error {
	if s.source == nil {
		return nil
	}
	return s.source.Close()
}

func (s *Stage) onDeadStart(e ecs.Entity) {
	c, ok := ecs.Get(s.world, e, component.CharacterComponent.Kind())
	if !ok || c.Model == nil {
		return
	}
	id := c.Model.Base().ID
	s.Rewards = append(s.Rewards, id)
	log.Printf("stage: reward trigger entity=%s id=%s boss=%t", e, id, id == s.bossID)
}

// Touch forwards a click at world position (x, y) to the NPC under it.
func (s *Stage) Touch(x, y float64) bool {
	for i := len(s.npcs) - 1; i >= 0; i-- {
		e := s.npcs[i]
		if !hitTest(s.world, e, x, y) {
			continue
		}
		touch, ok := ecs.Get(s.world, e, component.TouchInputComponent.Kind())
		if !ok {
			return false
		}
		touch.Click(s.tick)
		return true
	}
	return false
}

// Reload drops cached specs for the changed prefab file and rebinds every
// visual loaded from it.
func (s *Stage) Reload(name string) {
	s.loader.Invalidate(name)
	for _, e := range s.ids {
		if err := s.Characters.RefreshArmor(s.world, e); err != nil {
			log.Printf("stage: reload entity=%s: %v", e, err)
		}
	}
	for _, e := range s.npcs {
		anim, ok := ecs.Get(s.world, e, component.AnimatorComponent.Kind())
		if !ok || anim.Target == nil {
			continue
		}
		v, err := s.loader.Visual(anim.Target.Path)
		if err != nil {
			log.Printf("stage: reload entity=%s: %v", e, err)
			continue
		}
		if err := s.NPCs.ResetAnimatorTarget(s.world, e, v); err != nil {
			log.Printf("stage: reload entity=%s: %v", e, err)
		}
	}
}
