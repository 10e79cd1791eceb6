package component

// SFXQueue collects sound effect codes requested this tick.
type SFXQueue struct {
	Codes []string
}

func (q *SFXQueue) Play(code string) {
	if q == nil || code == "" {
		return
	}
	q.Codes = append(q.Codes, code)
}

// Drain returns the queued codes and clears the queue.
func (q *SFXQueue) Drain() []string {
	if q == nil || len(q.Codes) == 0 {
		return nil
	}
	out := q.Codes
	q.Codes = nil
	return out
}

var SFXQueueComponent = NewComponent[SFXQueue]()
