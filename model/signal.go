package model

// Disposable releases a subscription.
type Disposable interface {
	Dispose()
}

// DisposeFunc adapts a function to Disposable.
type DisposeFunc func()

func (f DisposeFunc) Dispose() {
	if f != nil {
		f()
	}
}

type handler[T any] struct {
	id uint64
	fn func(T)
}

// Signal is a synchronous publish/subscribe stream. Handlers run in
// subscription order on the emitting goroutine.
type Signal[T any] struct {
	handlers []handler[T]
	next     uint64
}

// Subscribe registers fn and returns the Disposable that removes it. A
// disposed handler never runs again, even when disposed during an Emit.
func (s *Signal[T]) Subscribe(fn func(T)) Disposable {
	if s == nil || fn == nil {
		return DisposeFunc(nil)
	}
	s.next++
	id := s.next
	s.handlers = append(s.handlers, handler[T]{id: id, fn: fn})
	return DisposeFunc(func() { s.remove(id) })
}

// Emit delivers v to every live handler.
func (s *Signal[T]) Emit(v T) {
	if s == nil || len(s.handlers) == 0 {
		return
	}
	snapshot := append([]handler[T](nil), s.handlers...)
	for _, h := range snapshot {
		if !s.has(h.id) {
			continue
		}
		h.fn(v)
	}
}

// Len returns the number of live handlers.
func (s *Signal[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.handlers)
}

func (s *Signal[T]) has(id uint64) bool {
	for _, h := range s.handlers {
		if h.id == id {
			return true
		}
	}
	return false
}

func (s *Signal[T]) remove(id uint64) {
	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
			return
		}
	}
}
