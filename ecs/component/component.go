package component

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID identifies a component type within the process. Zero is
// never assigned.
type ComponentID uint32

// Kind is the type-erased view of a ComponentKind used by queries.
type Kind interface {
	ID() ComponentID
}

// ComponentKind is the typed key a component of type T is stored under.
type ComponentKind[T any] struct {
	id ComponentID
}

// ComponentHandle is what component files export: one per data type.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

var registry struct {
	sync.Mutex
	names []string
}

// NewComponentKind allocates a fresh id named after T.
func NewComponentKind[T any]() ComponentKind[T] {
	var zero T
	name := fmt.Sprintf("%T", zero)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	registry.Lock()
	defer registry.Unlock()
	registry.names = append(registry.names, name)
	return ComponentKind[T]{id: ComponentID(len(registry.names))}
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// Name returns the type name a component id was allocated for.
func Name(id ComponentID) string {
	registry.Lock()
	defer registry.Unlock()
	if id == 0 || int(id) > len(registry.names) {
		return fmt.Sprintf("component(%d)", id)
	}
	return registry.names[id-1]
}

// EntityRef is an entity handle stored inside component data.
type EntityRef uint64
