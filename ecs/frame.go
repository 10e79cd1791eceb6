package ecs

// Frame is the per-tick context handed to systems by the scheduler.
type Frame struct {
	Tick uint64
	// BossID is the model id of the stage boss, empty when the stage has none.
	BossID string
}
