package ecs

// System is one per-tick behavior.
type System interface {
	Update(w *World)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

// Scheduler runs systems in registration order once per tick.
type Scheduler struct {
	systems []System
	ticks   uint64
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

// Add appends system after the ones already registered. Nil is ignored.
func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update publishes frame on the world and runs every system once. Events
// pushed during the tick are visible to every later system of the same
// tick and are flushed before the next one.
func (s *Scheduler) Update(w *World, frame Frame) {
	if w == nil {
		return
	}
	w.frame = frame
	for _, system := range s.systems {
		system.Update(w)
	}
	w.events.flush()
	s.ticks++
}

// Ticks reports how many times Update ran.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

func (s *Scheduler) Len() int { return len(s.systems) }
