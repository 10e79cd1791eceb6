package battlelog

import (
	"fmt"

	"github.com/milk9111/battlestage/prefabs"
	"gopkg.in/yaml.v3"
)

type replayFile struct {
	Events []Event `yaml:"events"`
}

// ReplaySource plays back a recorded battle log.
type ReplaySource struct {
	events []Event
	next   int
}

// ParseReplay decodes a YAML replay and validates every event.
func ParseReplay(data []byte) (*ReplaySource, error) {
	var f replayFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("battlelog: parse replay: %w", err)
	}
	for i, ev := range f.Events {
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("battlelog: replay event %d: %w", i, err)
		}
	}
	return &ReplaySource{events: f.Events}, nil
}

// LoadReplay reads a replay from the prefabs tree.
func LoadReplay(name string) (*ReplaySource, error) {
	data, err := prefabs.Load(name)
	if err != nil {
		return nil, fmt.Errorf("battlelog: load replay %s: %w", name, err)
	}
	return ParseReplay(data)
}

func (r *ReplaySource) Poll() (Event, bool) {
	if r == nil || r.next >= len(r.events) {
		return Event{}, false
	}
	ev := r.events[r.next]
	r.next++
	return ev, true
}

// Remaining returns how many events have not been polled.
func (r *ReplaySource) Remaining() int {
	if r == nil {
		return 0
	}
	return len(r.events) - r.next
}

func (r *ReplaySource) Close() error { return nil }
