package ecs

import (
	"unsafe"
)

// fill points every component field of the signature struct at base to the
// payloads stored at dataIndex. Fields of unregistered components are left nil.
func (m *Manager) fill(sig *signatureKind, dataIndex DataIndex, base unsafe.Pointer) {
	for _, f := range sig.fields {
		*(*unsafe.Pointer)(unsafe.Add(base, f.offset)) = m.columns[f.component].ptr(dataIndex)
	}
}

// View gives random access to the components of single entities through a
// signature struct S.
type View[S any] struct {
	manager *Manager
	sig     *signatureKind
}

// NewView creates a view for signature S. S must be registered.
func NewView[S any](m *Manager) *View[S] {
	return &View[S]{
		manager: m,
		sig:     mustSignature[S](m.settings),
	}
}

// Fill populates out with pointers to the entity's components.
// Returns false, leaving out untouched, if the entity does not match S.
func (v *View[S]) Fill(i EntityIndex, out *S) bool {
	e := v.manager.entity(i)
	if !e.bitset.Contains(v.sig.bitset) {
		return false
	}
	v.manager.fill(v.sig, e.dataIndex, unsafe.Pointer(out))
	return true
}

// Get returns the populated signature struct for the entity at index i.
func (v *View[S]) Get(i EntityIndex) (S, bool) {
	var result S
	ok := v.Fill(i, &result)
	return result, ok
}

// GetHandle is Get for a handle. It returns false for stale handles instead of panicking.
func (v *View[S]) GetHandle(h Handle) (S, bool) {
	if !v.manager.IsHandleValid(h) {
		var zero S
		return zero, false
	}
	return v.Get(v.manager.EntityIndexOf(h))
}
