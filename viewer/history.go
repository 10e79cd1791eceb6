package viewer

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// HistorySize is how many recent ids are kept.
const HistorySize = 10

const (
	historyObject   = "viewer"
	historyProperty = "recent"
)

// History keeps the most recently loaded resource ids, newest first. With a
// nil manager it only lives in memory.
type History struct {
	manager *gdata.Manager
	ids     []string
}

// OpenHistory opens persistent history storage for appName. Storage errors
// fall back to an in-memory history.
func OpenHistory(appName string) *History {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("viewer: open history storage: %v (history is not saved)", err)
		return NewHistory(nil)
	}
	return NewHistory(m)
}

func NewHistory(m *gdata.Manager) *History {
	h := &History{manager: m}
	if err := h.load(); err != nil {
		log.Printf("viewer: load history: %v", err)
	}
	return h
}

func (h *History) load() error {
	if h.manager == nil || !h.manager.ObjectPropExists(historyObject, historyProperty) {
		return nil
	}
	data, err := h.manager.LoadObjectProp(historyObject, historyProperty)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	var ids []string
	if err := yaml.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("unmarshal history: %w", err)
	}
	if len(ids) > HistorySize {
		ids = ids[:HistorySize]
	}
	h.ids = ids
	return nil
}

// Push moves id to the front, dropping duplicates and the oldest entries.
func (h *History) Push(id string) {
	if h == nil || id == "" {
		return
	}
	ids := make([]string, 0, HistorySize)
	ids = append(ids, id)
	for _, old := range h.ids {
		if old != id && len(ids) < HistorySize {
			ids = append(ids, old)
		}
	}
	h.ids = ids
	if err := h.save(); err != nil {
		log.Printf("viewer: save history: %v", err)
	}
}

func (h *History) save() error {
	if h.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(h.ids)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := h.manager.SaveObjectProp(historyObject, historyProperty, data); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Recent returns the ids, newest first.
func (h *History) Recent() []string {
	if h == nil {
		return nil
	}
	return append([]string(nil), h.ids...)
}
