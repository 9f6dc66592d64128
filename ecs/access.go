package ecs

import "strconv"

// AddComponent sets the component bit on e and stores v in its slot,
// overwriting whatever was there. The returned pointer is only valid until
// the next call that can grow the Manager.
func AddComponent[T any, E Ref](m *Manager, e E, v T) *T {
	id := mustComponent[T](m.settings)
	ent := m.entity(resolve(m, e))
	ent.bitset.Set(int(id))

	slot := m.columns[id].(*typedColumn[T]).at(ent.dataIndex)
	*slot = v
	return slot
}

// GetComponent returns a pointer to e's T payload. It panics when e does not have T.
func GetComponent[T any, E Ref](m *Manager, e E) *T {
	id := mustComponent[T](m.settings)
	i := resolve(m, e)
	ent := m.entity(i)
	if !ent.bitset.Test(int(id)) {
		panic("ecs: entity " + strconv.Itoa(int(i)) + " has no " + m.settings.components[id].typ.String() + " component")
	}
	return m.columns[id].(*typedColumn[T]).at(ent.dataIndex)
}

// HasComponent reports whether e has component T.
func HasComponent[T any, E Ref](m *Manager, e E) bool {
	id := mustComponent[T](m.settings)
	return m.entity(resolve(m, e)).bitset.Test(int(id))
}

// DelComponent clears the component bit. The payload stays in storage until
// it is overwritten.
func DelComponent[T any, E Ref](m *Manager, e E) {
	id := mustComponent[T](m.settings)
	m.entity(resolve(m, e)).bitset.Clear(int(id))
}

// HasTag reports whether e carries tag T.
func HasTag[T any, E Ref](m *Manager, e E) bool {
	bit := mustTagBit[T](m.settings)
	return m.entity(resolve(m, e)).bitset.Test(bit)
}

// AddTag marks e with tag T.
func AddTag[T any, E Ref](m *Manager, e E) {
	bit := mustTagBit[T](m.settings)
	m.entity(resolve(m, e)).bitset.Set(bit)
}

// DelTag removes tag T from e.
func DelTag[T any, E Ref](m *Manager, e E) {
	bit := mustTagBit[T](m.settings)
	m.entity(resolve(m, e)).bitset.Clear(bit)
}

// MatchesSignature reports whether e has every recognized member of signature S.
func MatchesSignature[S any, E Ref](m *Manager, e E) bool {
	sig := mustSignature[S](m.settings)
	return m.entity(resolve(m, e)).bitset.Contains(sig.bitset)
}

// MatchesSignatureID is the untyped form of MatchesSignature.
func (m *Manager) MatchesSignatureID(i EntityIndex, id SignatureID) bool {
	return m.entity(i).bitset.Contains(m.settings.signatures[id].bitset)
}
