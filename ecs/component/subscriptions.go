package component

import "github.com/milk9111/battlestage/model"

// Subscriptions tracks model subscriptions owned by an entity.
type Subscriptions struct {
	items []model.Disposable
}

func (s *Subscriptions) Add(d model.Disposable) {
	if s == nil || d == nil {
		return
	}
	s.items = append(s.items, d)
}

// DisposeAll disposes every tracked subscription and clears the list.
func (s *Subscriptions) DisposeAll() {
	if s == nil {
		return
	}
	items := s.items
	s.items = nil
	for _, d := range items {
		d.Dispose()
	}
}

func (s *Subscriptions) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

var SubscriptionsComponent = NewComponent[Subscriptions]()
