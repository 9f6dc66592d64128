package ecs

import (
	"reflect"
	"unsafe"
)

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// typeKey returns the address of the runtime type descriptor behind t.
// There is exactly one descriptor per type, so the address is a stable map key.
func typeKey(t reflect.Type) uint64 {
	return uint64(uintptr((*iface)(unsafe.Pointer(&t)).data))
}

func typeKeyFor[T any]() uint64 {
	return typeKey(reflect.TypeFor[T]())
}
