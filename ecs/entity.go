package ecs

import (
	"fmt"

	"github.com/milk9111/battlestage/ecs/component"
)

// Entity is a generational handle: the slot index sits in the low 32 bits
// and the slot generation in the high 32 bits. A handle whose slot was
// recycled reads as dead. The zero Entity is never handed out.
type Entity uint64

// NoEntity is the zero handle.
const NoEntity Entity = 0

type entityID uint32
type generation uint32

const (
	entityIDBits = 32
	entityIDMask = 1<<entityIDBits - 1
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint64(e) & entityIDMask)
}

func (e Entity) generation() generation {
	return generation(uint64(e) >> entityIDBits)
}

// Ref converts e for storage inside component data.
func (e Entity) Ref() component.EntityRef {
	return component.EntityRef(e)
}

// Deref turns a reference stored in component data back into a handle.
func Deref(r component.EntityRef) Entity {
	return Entity(r)
}

// String formats e as slot:generation, the form used in log lines.
func (e Entity) String() string {
	if e == NoEntity {
		return "none"
	}
	return fmt.Sprintf("%d:%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e.id() > 0
}
