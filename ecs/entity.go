package ecs

import "fmt"

// EntityIndex is the position of an entity record in the entity table.
// It is only stable between two calls to Manager.Refresh.
type EntityIndex int

// DataIndex is the position of an entity's payloads inside every component column.
type DataIndex int

// HandleDataIndex addresses a handle-data slot. An entity keeps the same
// HandleDataIndex for its whole lifetime, across compactions.
type HandleDataIndex int

// Counter is the generation counter stored in a handle-data slot.
// It is incremented once every time the entity referenced by the slot dies.
type Counter uint32

// Unknown is returned by registry lookups for kinds that were never registered.
const Unknown = -1

// entity is one record of the entity table.
type entity struct {
	dataIndex       DataIndex
	handleDataIndex HandleDataIndex
	bitset          Bitset
	alive           bool
}

// handleData is one slot of the handle indirection layer.
type handleData struct {
	entityIndex EntityIndex
	counter     Counter
}

// Handle is a long-lived reference to an entity. It stays safe to hold across
// frames: once the entity dies and its slot is reused the handle stops validating.
type Handle struct {
	handleDataIndex HandleDataIndex
	counter         Counter
}

// HandleDataIndex returns the handle-data slot this handle refers to.
func (h Handle) HandleDataIndex() HandleDataIndex {
	return h.handleDataIndex
}

// Counter returns the generation captured when the handle was created.
func (h Handle) Counter() Counter {
	return h.counter
}

func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.handleDataIndex, h.counter)
}

// Ref is satisfied by both ways of addressing an entity: a raw EntityIndex
// (caller guarantees it is alive this frame) or a Handle (revalidated on use).
type Ref interface {
	EntityIndex | Handle
}
