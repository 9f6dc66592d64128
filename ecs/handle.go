package ecs

import "fmt"

// IsHandleValid reports whether the entity the handle was created for has not
// died since. It never panics for handles produced by this Manager.
func (m *Manager) IsHandleValid(h Handle) bool {
	return h.counter == m.handleDataAt(h.handleDataIndex).counter
}

// EntityIndexOf returns the current index of the entity behind h.
// It panics when the handle is no longer valid.
func (m *Manager) EntityIndexOf(h Handle) EntityIndex {
	hd := m.handleDataAt(h.handleDataIndex)
	if h.counter != hd.counter {
		panic(fmt.Sprintf("ecs: handle %s is no longer valid (current counter %d)", h, hd.counter))
	}
	return hd.entityIndex
}

func (m *Manager) handleDataAt(i HandleDataIndex) *handleData {
	if i < 0 || int(i) >= len(m.handleData) {
		panic(fmt.Sprintf("ecs: handle-data index %d out of range [0, %d)", i, len(m.handleData)))
	}
	return &m.handleData[i]
}

// resolve turns either form of entity reference into an index.
func resolve[E Ref](m *Manager, e E) EntityIndex {
	switch v := any(e).(type) {
	case EntityIndex:
		return v
	case Handle:
		return m.EntityIndexOf(v)
	}
	panic("unreachable")
}
