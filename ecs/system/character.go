package system

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/model"
	"github.com/milk9111/battlestage/resource"
	"github.com/milk9111/battlestage/speech"
)

const (
	SpeechTicks        = 120
	DamageTextTicks    = 45
	DeadFadeTicks      = 30
	defaultAttackTicks = 30
	defaultCastTicks   = 40
	defaultHitTicks    = 18
	defaultDieTicks    = 40
)

// VisualLoader resolves a resource path to a loaded visual.
type VisualLoader interface {
	Visual(path string) (*resource.Visual, error)
}

// SpeechLookup resolves speech cue keys to display text.
type SpeechLookup interface {
	Lookup(key string, params ...int) (string, bool)
}

// CharacterSystem runs the combat behavior shared by every character and
// defers the variant specific parts to a CharacterStrategy.
type CharacterSystem struct {
	Visuals VisualLoader
	Speech  SpeechLookup

	// DeadStart fires once per binding when a character enters its dead state.
	DeadStart model.Signal[ecs.Entity]

	strategies map[component.CharacterKind]CharacterStrategy
}

func NewCharacterSystem(visuals VisualLoader, lookup SpeechLookup) *CharacterSystem {
	return &CharacterSystem{
		Visuals: visuals,
		Speech:  lookup,
		strategies: map[component.CharacterKind]CharacterStrategy{
			component.CharacterEnemy:  EnemyStrategy{},
			component.CharacterPlayer: PlayerStrategy{},
		},
	}
}

// SetStrategy replaces the strategy driving characters of kind.
func (s *CharacterSystem) SetStrategy(kind component.CharacterKind, strategy CharacterStrategy) {
	if s.strategies == nil {
		s.strategies = map[component.CharacterKind]CharacterStrategy{}
	}
	s.strategies[kind] = strategy
}

// Actor is the view of one character passed to strategy hooks.
type Actor struct {
	System    *CharacterSystem
	World     *ecs.World
	Entity    ecs.Entity
	Character *component.Character
}

func (s *CharacterSystem) actor(w *ecs.World, e ecs.Entity) (*Actor, error) {
	c, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("character: entity %s has no character: %w", e, ErrInvalidArgument)
	}
	return &Actor{System: s, World: w, Entity: e, Character: c}, nil
}

func (s *CharacterSystem) strategy(kind component.CharacterKind) CharacterStrategy {
	if st, ok := s.strategies[kind]; ok && st != nil {
		return st
	}
	return BaseStrategy{}
}

// Set binds m to the character entity e. Subscriptions made for the
// previous model are disposed before any new one is made, and sequences
// started for it are dropped.
func (s *CharacterSystem) Set(w *ecs.World, e ecs.Entity, m model.Character, updateCurrentHP bool) error {
	a, err := s.actor(w, e)
	if err != nil {
		return err
	}
	c := a.Character
	st := s.strategy(c.Kind)
	if m == nil || !st.Accepts(m) {
		return fmt.Errorf("character: set %s on %s entity %s: %w", modelName(m), c.Kind, e, ErrInvalidArgument)
	}
	if c.Phase == component.PhaseDead {
		return fmt.Errorf("character: set on entity %s: %w", e, ErrDead)
	}

	subs := s.subscriptions(w, e)
	subs.DisposeAll()

	first := c.Model == nil
	c.Token++
	c.Model = m
	base := m.Base()
	c.HP = base.HP
	if updateCurrentHP || first {
		c.CurrentHP = base.CurrentHP
	}
	if c.CurrentHP > c.HP {
		c.CurrentHP = c.HP
	}
	c.Phase = component.PhaseIdle
	c.DeadStartFired = false
	c.Speed = st.RunSpeed(a)

	subs.Add(base.HPChanged.Subscribe(func(int) { s.UpdateHPBar(w, e) }))
	subs.Add(base.BuffsChanged.Subscribe(func([]model.Buff) { s.UpdateHPBar(w, e) }))

	s.updateArmor(a, st)
	st.OnSet(a)
	s.StartRun(a)
	s.UpdateHPBar(w, e)
	return nil
}

func (s *CharacterSystem) subscriptions(w *ecs.World, e ecs.Entity) *component.Subscriptions {
	subs, ok := ecs.Get(w, e, component.SubscriptionsComponent.Kind())
	if !ok {
		subs = &component.Subscriptions{}
		_ = ecs.Add(w, e, component.SubscriptionsComponent.Kind(), subs)
	}
	return subs
}

func (s *CharacterSystem) sequences(w *ecs.World, e ecs.Entity) *component.Sequences {
	seqs, ok := ecs.Get(w, e, component.SequencesComponent.Kind())
	if !ok {
		seqs = &component.Sequences{}
		_ = ecs.Add(w, e, component.SequencesComponent.Kind(), seqs)
	}
	return seqs
}

// updateArmor binds the visual for the current model and recomputes the
// hit point. A failed load keeps the previous visual.
func (s *CharacterSystem) updateArmor(a *Actor, st CharacterStrategy) {
	path := st.ResourcePath(a)
	anim, ok := ecs.Get(a.World, a.Entity, component.AnimatorComponent.Kind())
	if !ok {
		anim = component.NewAnimator(1)
		_ = ecs.Add(a.World, a.Entity, component.AnimatorComponent.Kind(), anim)
	}

	if s.Visuals != nil {
		v, err := s.Visuals.Visual(path)
		if err != nil {
			log.Printf("character: entity=%s update armor: %v", a.Entity, err)
		} else if err := anim.ResetTarget(v); err != nil {
			log.Printf("character: entity=%s reset target: %v", a.Entity, err)
		}
	}

	hp, ok := ecs.Get(a.World, a.Entity, component.HitPointComponent.Kind())
	if !ok {
		hp = &component.HitPoint{}
		_ = ecs.Add(a.World, a.Entity, component.HitPointComponent.Kind(), hp)
	}
	st.UpdateHitPoint(a, hp, anim.Target)
}

// RefreshArmor reloads the visual of the bound model, as after a resource
// file changed on disk.
func (s *CharacterSystem) RefreshArmor(w *ecs.World, e ecs.Entity) error {
	a, err := s.actor(w, e)
	if err != nil {
		return err
	}
	if a.Character.Model == nil {
		return nil
	}
	s.updateArmor(a, s.strategy(a.Character.Kind))
	return nil
}

// StartRun moves an idle character into the running phase when allowed.
func (s *CharacterSystem) StartRun(a *Actor) {
	if a == nil || a.Character == nil {
		return
	}
	if !s.strategy(a.Character.Kind).CanRun(a) {
		return
	}
	a.Character.Phase = component.PhaseRunning
	a.play(component.CharacterRun)
}

// ProcessAttack plays the attack of attacker and starts a damage sequence
// on target.
func (s *CharacterSystem) ProcessAttack(w *ecs.World, attacker, target ecs.Entity, skill model.SkillInfo) error {
	a, err := s.actor(w, attacker)
	if err != nil {
		return err
	}
	t, err := s.actor(w, target)
	if err != nil {
		return err
	}
	if a.Character.Model == nil || t.Character.Model == nil {
		return fmt.Errorf("character: attack %s -> %s: unbound: %w", attacker, target, ErrInvalidArgument)
	}
	if a.dying() {
		return fmt.Errorf("character: attack by %s: %w", attacker, ErrDead)
	}

	st := s.strategy(a.Character.Kind)
	st.BeforeAttack(a, skill)

	clip := component.CharacterAttack
	if skill.Critical && a.hasType(component.CharacterCriticalAttack) {
		clip = component.CharacterCriticalAttack
	}
	a.Character.Phase = component.PhaseAttacking
	a.play(clip)
	s.sequences(w, attacker).Start(component.Sequence{
		Kind: component.SequenceAttack,
		Wait: a.clipTicks(clip, defaultAttackTicks),
	}, a.Character.Token)
	s.startDamage(t, skill, attacker, true)

	st.AfterAttack(a, skill)
	return nil
}

// Cast plays the casting animation of caster for the cast duration.
func (s *CharacterSystem) Cast(w *ecs.World, caster ecs.Entity, skill model.SkillInfo) error {
	a, err := s.actor(w, caster)
	if err != nil {
		return err
	}
	if a.Character.Model == nil {
		return fmt.Errorf("character: cast by %s: unbound: %w", caster, ErrInvalidArgument)
	}
	if a.dying() {
		return fmt.Errorf("character: cast by %s: %w", caster, ErrDead)
	}

	s.strategy(a.Character.Kind).BeforeCast(a, skill)

	a.Character.Phase = component.PhaseCasting
	a.play(component.CharacterCasting)
	s.sequences(w, caster).Start(component.Sequence{
		Kind:  component.SequenceCast,
		Wait:  a.clipTicks(component.CharacterCasting, defaultCastTicks),
		Skill: skill,
	}, a.Character.Token)
	return nil
}

// ApplySkill starts a damage sequence on target without an attack
// animation, as done for buffs and heals.
func (s *CharacterSystem) ApplySkill(w *ecs.World, target ecs.Entity, skill model.SkillInfo, considerDie bool) error {
	t, err := s.actor(w, target)
	if err != nil {
		return err
	}
	if t.Character.Model == nil {
		return fmt.Errorf("character: apply skill to %s: unbound: %w", target, ErrInvalidArgument)
	}
	s.startDamage(t, skill, 0, considerDie)
	return nil
}

func (s *CharacterSystem) startDamage(t *Actor, skill model.SkillInfo, attacker ecs.Entity, considerDie bool) {
	if t.dying() {
		return
	}
	s.sequences(t.World, t.Entity).Start(component.Sequence{
		Kind:        component.SequenceDamage,
		Skill:       skill,
		ConsiderDie: considerDie,
		Attacker:    attacker.Ref(),
	}, t.Character.Token)
}

func (s *CharacterSystem) startDying(a *Actor) {
	if a.dying() {
		return
	}
	s.strategy(a.Character.Kind).BeforeDying(a)
	a.Character.Phase = component.PhaseDying
	a.play(component.CharacterDie)
	s.sequences(a.World, a.Entity).Start(component.Sequence{
		Kind: component.SequenceDying,
		Wait: a.clipTicks(component.CharacterDie, defaultDieTicks),
	}, a.Character.Token)
}

// UpdateHPBar refreshes the health bar of e from its displayed health.
func (s *CharacterSystem) UpdateHPBar(w *ecs.World, e ecs.Entity) {
	a, err := s.actor(w, e)
	if err != nil || a.Character.Model == nil {
		return
	}
	bar, ok := ecs.Get(w, e, component.HPBarComponent.Kind())
	if !ok {
		bar = &component.HPBar{}
		_ = ecs.Add(w, e, component.HPBarComponent.Kind(), bar)
	}
	bar.Current = a.Character.CurrentHP
	bar.Max = a.Character.HP
	bar.Buffs = append(bar.Buffs[:0], a.Character.Model.Base().Buffs...)

	s.strategy(a.Character.Kind).OnHPBarUpdated(a)
}

// Update advances sequences and movement of every character.
func (s *CharacterSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.CharacterComponent.Kind(), func(e ecs.Entity, c *component.Character) {
		if c.Model == nil {
			return
		}
		a := &Actor{System: s, World: w, Entity: e, Character: c}
		s.stepSequences(a)
		s.move(a)
	})
}

func (s *CharacterSystem) move(a *Actor) {
	c := a.Character
	st := s.strategy(c.Kind)
	switch c.Phase {
	case component.PhaseIdle:
		s.StartRun(a)
	case component.PhaseRunning:
		if !st.CanRun(a) {
			c.Phase = component.PhaseIdle
			a.play(component.CharacterIdle)
			return
		}
		if tr, ok := ecs.Get(a.World, a.Entity, component.TransformComponent.Kind()); ok {
			tr.X += c.Speed
		}
	}
}

// modelName names the model variant for error messages.
func modelName(m model.Character) string {
	switch m.(type) {
	case *model.Enemy:
		return "enemy model"
	case *model.Player:
		return "player model"
	case nil:
		return "nil model"
	default:
		return fmt.Sprintf("%T", m)
	}
}

// ShowSpeech shows the cue resolved from key and params above the actor.
// It reports false when no cue exists.
func (a *Actor) ShowSpeech(key string, params ...int) bool {
	if a == nil || a.System == nil || a.System.Speech == nil {
		return false
	}
	text, ok := a.System.Speech.Lookup(key, params...)
	if !ok {
		return false
	}
	bubble := &component.SpeechBubble{Key: speech.Key(key, params...), Text: text, TTL: SpeechTicks}
	if err := ecs.Add(a.World, a.Entity, component.SpeechBubbleComponent.Kind(), bubble); err != nil {
		log.Printf("character: entity=%s speech %s: %v", a.Entity, bubble.Key, err)
		return false
	}
	return true
}

// TargetActor returns the actor linked as this character's target.
func (a *Actor) TargetActor() (*Actor, bool) {
	if a == nil || a.Character == nil || a.Character.Target == 0 {
		return nil, false
	}
	t, err := a.System.actor(a.World, ecs.Deref(a.Character.Target))
	if err != nil || t.Character.Model == nil {
		return nil, false
	}
	return t, true
}

// HitX returns the world x of the actor's hit point.
func (a *Actor) HitX() float64 {
	x := 0.0
	if tr, ok := ecs.Get(a.World, a.Entity, component.TransformComponent.Kind()); ok {
		x = tr.X
	}
	hp, _ := ecs.Get(a.World, a.Entity, component.HitPointComponent.Kind())
	return hp.HitX(x)
}

// InAttackRange reports whether target's hit point is within attack range.
func (a *Actor) InAttackRange(target *Actor) bool {
	if a == nil || target == nil || a.Character.Model == nil {
		return false
	}
	dx := a.HitX() - target.HitX()
	if dx < 0 {
		dx = -dx
	}
	return dx <= a.Character.Model.Base().AttackRange
}

func (a *Actor) dying() bool {
	return a.Character.Phase == component.PhaseDying || a.Character.Phase == component.PhaseDead
}

func (a *Actor) animator() *component.Animator {
	anim, _ := ecs.Get(a.World, a.Entity, component.AnimatorComponent.Kind())
	return anim
}

func (a *Actor) play(t component.AnimationType) {
	a.animator().Play(t)
}

func (a *Actor) hasType(t component.AnimationType) bool {
	return a.animator().HasType(t)
}

func (a *Actor) clipTicks(t component.AnimationType, fallback int) int {
	anim := a.animator()
	if anim == nil || anim.Target == nil {
		return fallback
	}
	clip, ok := anim.Target.Clips[t.ClipName()]
	if !ok || clip.Ticks() <= 0 {
		return fallback
	}
	scale := anim.TimeScale
	if scale <= 0 {
		scale = 1
	}
	return int(float64(clip.Ticks()) / scale)
}

func (a *Actor) position() cp.Vector {
	if tr, ok := ecs.Get(a.World, a.Entity, component.TransformComponent.Kind()); ok {
		return cp.Vector{X: tr.X, Y: tr.Y}
	}
	return cp.Vector{}
}
