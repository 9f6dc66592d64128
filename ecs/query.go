package ecs

import (
	"iter"
	"unsafe"
)

// ForEntities calls fn for every entity index in [0, EntityCount()) in
// ascending order. The range is taken when the call starts: entities created
// by fn are not visited and entities killed by fn are still visited.
func (m *Manager) ForEntities(fn func(EntityIndex)) {
	n := m.size
	for i := 0; i < n; i++ {
		fn(EntityIndex(i))
	}
}

// Entities is the iterator form of ForEntities.
func (m *Manager) Entities() iter.Seq[EntityIndex] {
	return func(yield func(EntityIndex) bool) {
		n := m.size
		for i := 0; i < n; i++ {
			if !yield(EntityIndex(i)) {
				return
			}
		}
	}
}

// ForEntitiesMatching calls fn for every entity matching signature S, passing
// S populated with pointers to the entity's components.
func ForEntitiesMatching[S any](m *Manager, fn func(EntityIndex, S)) {
	for i, s := range Matching[S](m) {
		fn(i, s)
	}
}

// Matching is the iterator form of ForEntitiesMatching.
func Matching[S any](m *Manager) iter.Seq2[EntityIndex, S] {
	sig := mustSignature[S](m.settings)
	return func(yield func(EntityIndex, S) bool) {
		var result S
		resultPtr := unsafe.Pointer(&result)

		n := m.size
		for i := 0; i < n; i++ {
			e := &m.entities[i]
			if !e.bitset.Contains(sig.bitset) {
				continue
			}
			m.fill(sig, e.dataIndex, resultPtr)
			if !yield(EntityIndex(i), result) {
				return
			}
		}
	}
}

// ForEntitiesMatchingID calls fn for every entity matching the signature,
// passing one pointer per recognized component member in registration order.
// The slice is reused between calls and must not be retained.
func (m *Manager) ForEntitiesMatchingID(id SignatureID, fn func(EntityIndex, []any)) {
	sig := m.settings.signatures[id]
	args := make([]any, len(sig.components))

	n := m.size
	for i := 0; i < n; i++ {
		e := &m.entities[i]
		if !e.bitset.Contains(sig.bitset) {
			continue
		}
		for j, cid := range sig.components {
			args[j] = m.columns[cid].value(e.dataIndex)
		}
		fn(EntityIndex(i), args)
	}
}

// Query caches the entities matching signature S once per frame.
// Systems declare Query fields and the Scheduler initializes and executes them.
//
// Only indices are cached. Component pointers are resolved as each entity is
// yielded, so entities created during iteration do not invalidate later items.
type Query[S any] struct {
	manager *Manager
	sig     *signatureKind

	cachedEntities []EntityIndex
	cachedData     []DataIndex
	cacheValid     bool
}

// NewQuery creates a Query over m.
func NewQuery[S any](m *Manager) *Query[S] {
	q := &Query[S]{}
	q.Init(m)
	return q
}

// Init binds the Query to a Manager. Called by the Scheduler during system registration.
func (q *Query[S]) Init(m *Manager) {
	q.manager = m
	q.sig = mustSignature[S](m.settings)
	q.cacheValid = false
}

// Execute rebuilds the cache. Cached indices are valid until the next Refresh.
func (q *Query[S]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedData = q.cachedData[:0]

	m := q.manager
	for i := 0; i < m.size; i++ {
		e := &m.entities[i]
		if !e.bitset.Contains(q.sig.bitset) {
			continue
		}
		q.cachedEntities = append(q.cachedEntities, EntityIndex(i))
		q.cachedData = append(q.cachedData, e.dataIndex)
	}

	q.cacheValid = true
}

// Len returns the number of cached matches.
func (q *Query[S]) Len() int {
	return len(q.cachedEntities)
}

// Iter returns an iterator over the cached entities and their components.
// Panics if Execute has not been called.
func (q *Query[S]) Iter() iter.Seq2[EntityIndex, S] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityIndex, S) bool) {
		var result S
		resultPtr := unsafe.Pointer(&result)
		for i := range q.cachedEntities {
			q.manager.fill(q.sig, q.cachedData[i], resultPtr)
			if !yield(q.cachedEntities[i], result) {
				return
			}
		}
	}
}

// Values returns an iterator over the component structs only.
// Panics if Execute has not been called.
func (q *Query[S]) Values() iter.Seq[S] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(S) bool) {
		var result S
		resultPtr := unsafe.Pointer(&result)
		for i := range q.cachedData {
			q.manager.fill(q.sig, q.cachedData[i], resultPtr)
			if !yield(result) {
				return
			}
		}
	}
}
