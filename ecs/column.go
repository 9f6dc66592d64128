package ecs

import (
	"reflect"
	"slices"
	"unsafe"
)

// column is the type-erased view of one component kind's storage.
type column interface {
	// grow resizes the column to n slots, keeping existing values and
	// zeroing the new ones.
	grow(n int)
	ptr(i DataIndex) unsafe.Pointer
	value(i DataIndex) any
	zero()
	len() int
	elemType() reflect.Type
}

// typedColumn stores every payload of component T contiguously, addressed by DataIndex.
type typedColumn[T any] struct {
	data []T
}

func newColumn[T any]() column {
	return &typedColumn[T]{}
}

func (c *typedColumn[T]) grow(n int) {
	old := len(c.data)
	if n <= old {
		return
	}
	c.data = slices.Grow(c.data, n-old)[:n]
	clear(c.data[old:])
}

func (c *typedColumn[T]) at(i DataIndex) *T {
	return &c.data[i]
}

func (c *typedColumn[T]) ptr(i DataIndex) unsafe.Pointer {
	return unsafe.Pointer(&c.data[i])
}

func (c *typedColumn[T]) value(i DataIndex) any {
	return &c.data[i]
}

func (c *typedColumn[T]) zero() {
	clear(c.data)
}

func (c *typedColumn[T]) len() int {
	return len(c.data)
}

func (c *typedColumn[T]) elemType() reflect.Type {
	return reflect.TypeFor[T]()
}
