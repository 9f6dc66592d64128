package ecs

import (
	"reflect"
)

// Singleton provides access to a single value of type T that belongs to the
// Manager rather than to an entity. Use it for frame-global state such as a
// score or a spawn timer. Singletons survive Clear.
type Singleton[T any] struct {
	manager *Manager
	value   *T
}

// NewSingleton returns an accessor for the T singleton of m, creating it with
// the initializer (or the zero value) if it does not exist yet.
func NewSingleton[T any](m *Manager, initializer ...T) *Singleton[T] {
	key := typeKeyFor[T]()
	if _, ok := m.singletons.Get(key); !ok {
		value := new(T)
		if len(initializer) > 0 {
			*value = initializer[0]
		}
		m.singletons.Put(key, value)
		m.logger.Debug("added singleton", "type", reflect.TypeFor[T]().String())
	}

	s := &Singleton[T]{}
	s.Init(m)
	return s
}

// Init binds the accessor to a Manager. This is called automatically by the
// Scheduler during system registration.
func (s *Singleton[T]) Init(m *Manager) {
	s.manager = m
	s.value = nil
	s.updateCache()
}

// Get returns a pointer to the singleton, or nil if it has not been created.
func (s *Singleton[T]) Get() *T {
	if s.value == nil {
		s.updateCache()
	}
	return s.value
}

// Exists reports whether the singleton has been created.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) updateCache() {
	if s.manager == nil {
		return
	}
	if v, ok := s.manager.singletons.Get(typeKeyFor[T]()); ok {
		s.value = v.(*T)
	}
}
