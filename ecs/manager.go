package ecs

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kamstrup/intmap"
)

// DefaultCapacity is the number of entity slots a Manager starts with.
const DefaultCapacity = 100

// Manager owns the entity table, the handle-data slots and one column per
// registered component. It is not safe for concurrent use.
type Manager struct {
	settings *Settings
	logger   *slog.Logger

	capacity int
	size     int
	sizeNext int

	entities   []entity
	handleData []handleData
	columns    []column

	singletons *intmap.Map[uint64, any]
}

// Option configures a Manager.
type Option func(*managerOptions)

type managerOptions struct {
	capacity int
	logger   *slog.Logger
}

// WithCapacity sets the number of entity slots allocated up front.
func WithCapacity(capacity int) Option {
	return func(o *managerOptions) {
		o.capacity = capacity
	}
}

// WithLogger sets the logger used for growth and lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *managerOptions) {
		o.logger = logger
	}
}

// NewManager freezes settings and creates a Manager over them.
func NewManager(settings *Settings, opts ...Option) *Manager {
	o := managerOptions{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default().With("logger", "ECS")
	}
	if o.capacity <= 0 {
		panic("ecs: capacity must be positive")
	}

	settings.Freeze()
	for _, sig := range settings.signatures {
		for _, m := range sig.dropped {
			o.logger.Warn("signature member is not registered and will be ignored",
				"signature", sig.typ.String(), "field", m.name, "type", m.typ.String())
		}
	}

	m := &Manager{
		settings:   settings,
		logger:     o.logger,
		columns:    make([]column, len(settings.components)),
		singletons: intmap.New[uint64, any](8),
	}
	for i, kind := range settings.components {
		m.columns[i] = kind.newColumn()
	}
	m.growTo(o.capacity)
	return m
}

// Settings returns the catalog the Manager was built from.
func (m *Manager) Settings() *Settings {
	return m.settings
}

// growTo extends the entity table, the handle-data slots and every column to
// newCapacity. New entity slots are dead with a cleared bitset; new handle
// slots point at themselves with counter 0.
func (m *Manager) growTo(newCapacity int) {
	if newCapacity <= m.capacity {
		panic(fmt.Sprintf("ecs: cannot grow from %d to %d", m.capacity, newCapacity))
	}

	for _, c := range m.columns {
		c.grow(newCapacity)
	}

	entities := make([]entity, newCapacity)
	copy(entities, m.entities)
	handles := make([]handleData, newCapacity)
	copy(handles, m.handleData)

	for i := m.capacity; i < newCapacity; i++ {
		entities[i] = entity{
			dataIndex:       DataIndex(i),
			handleDataIndex: HandleDataIndex(i),
		}
		handles[i] = handleData{entityIndex: EntityIndex(i)}
	}

	if m.capacity > 0 {
		m.logger.Debug("grew entity capacity", "from", m.capacity, "to", newCapacity)
	}

	m.entities = entities
	m.handleData = handles
	m.capacity = newCapacity
}

func (m *Manager) growIfNeeded() {
	if m.capacity > m.sizeNext {
		return
	}
	m.growTo((m.capacity + 10) * 2)
}

func (m *Manager) entity(i EntityIndex) *entity {
	if i < 0 || int(i) >= m.sizeNext {
		panic(fmt.Sprintf("ecs: entity index %d out of range [0, %d)", i, m.sizeNext))
	}
	return &m.entities[i]
}

// CreateIndex claims the next free slot and returns its entity index.
// The index is valid until the next Refresh.
func (m *Manager) CreateIndex() EntityIndex {
	m.growIfNeeded()

	free := EntityIndex(m.sizeNext)
	m.sizeNext++

	e := &m.entities[free]
	if e.alive {
		panic(fmt.Sprintf("ecs: free slot %d is still alive", free))
	}
	e.alive = true
	e.bitset.Reset()
	return free
}

// CreateHandle creates an entity and returns a handle to it.
func (m *Manager) CreateHandle() Handle {
	return m.HandleOf(m.CreateIndex())
}

// HandleOf binds the entity's handle-data slot to its current index and
// returns a handle carrying the slot's current counter.
func (m *Manager) HandleOf(i EntityIndex) Handle {
	e := m.entity(i)
	hd := &m.handleData[e.handleDataIndex]
	hd.entityIndex = i
	return Handle{handleDataIndex: e.handleDataIndex, counter: hd.counter}
}

// IsAlive reports whether the entity at index i has not been killed.
func (m *Manager) IsAlive(i EntityIndex) bool {
	return m.entity(i).alive
}

// IsHandleAlive reports whether the entity behind a valid handle has not been killed.
func (m *Manager) IsHandleAlive(h Handle) bool {
	return m.IsAlive(m.EntityIndexOf(h))
}

// Kill marks the entity dead. Storage is reclaimed and handles are
// invalidated by the next Refresh.
func (m *Manager) Kill(i EntityIndex) {
	m.entity(i).alive = false
}

// KillHandle kills the entity behind a valid handle.
func (m *Manager) KillHandle(h Handle) {
	m.Kill(m.EntityIndexOf(h))
}

// Refresh compacts alive entities to the front of the table and invalidates
// the handles of every entity killed since the previous Refresh.
func (m *Manager) Refresh() {
	if m.sizeNext == 0 {
		m.size = 0
		return
	}
	m.sizeNext = m.refreshImpl()
	m.size = m.sizeNext
}

// refreshImpl walks iD forward to the first dead slot and iA backward to the
// last alive slot, swapping the two records until the cursors cross. Dead
// slots passed by iA are trimmed off without a swap. Returns the alive count.
func (m *Manager) refreshImpl() int {
	iD, iA := 0, m.sizeNext-1

	for {
		for ; ; iD++ {
			if iD > iA {
				return iD
			}
			if !m.entities[iD].alive {
				break
			}
		}

		for ; ; iA-- {
			if m.entities[iA].alive {
				break
			}
			m.invalidateHandle(iA)
			if iA <= iD {
				return iD
			}
		}

		m.entities[iA], m.entities[iD] = m.entities[iD], m.entities[iA]
		m.refreshHandle(iD)
		m.invalidateHandle(iA)
		m.refreshHandle(iA)

		iD++
		iA--
	}
}

func (m *Manager) invalidateHandle(i int) {
	m.handleData[m.entities[i].handleDataIndex].counter++
}

func (m *Manager) refreshHandle(i int) {
	m.handleData[m.entities[i].handleDataIndex].entityIndex = EntityIndex(i)
}

// Clear resets every slot to its freshly grown state. Handles created before
// Clear may validate again against new entities; use it only for hard resets.
func (m *Manager) Clear() {
	for i := 0; i < m.capacity; i++ {
		m.entities[i] = entity{
			dataIndex:       DataIndex(i),
			handleDataIndex: HandleDataIndex(i),
		}
		m.handleData[i] = handleData{entityIndex: EntityIndex(i)}
	}
	for _, c := range m.columns {
		c.zero()
	}
	m.size = 0
	m.sizeNext = 0
	m.logger.Debug("cleared entities", "capacity", m.capacity)
}

// EntityCount returns the number of entities alive as of the last Refresh.
func (m *Manager) EntityCount() int {
	return m.size
}

// SizeNext returns the number of claimed slots, including entities created or
// killed since the last Refresh.
func (m *Manager) SizeNext() int {
	return m.sizeNext
}

// Capacity returns the number of allocated entity slots.
func (m *Manager) Capacity() int {
	return m.capacity
}

// EntityBitset returns the membership bitset of an entity.
func (m *Manager) EntityBitset(i EntityIndex) Bitset {
	return m.entity(i).bitset
}

// ComponentValue returns a pointer to the component payload boxed in an any,
// or nil when the entity does not have the component.
func (m *Manager) ComponentValue(i EntityIndex, id ComponentID) any {
	e := m.entity(i)
	if !e.bitset.Test(int(id)) {
		return nil
	}
	return m.columns[id].value(e.dataIndex)
}

// WriteState writes the counters and one A (alive) or D (dead) per claimed slot.
func (m *Manager) WriteState(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nsize: %d\nsizeNext: %d\ncapacity: %d\n", m.size, m.sizeNext, m.capacity)
	for i := 0; i < m.sizeNext; i++ {
		if m.entities[i].alive {
			sb.WriteByte('A')
		} else {
			sb.WriteByte('D')
		}
	}
	sb.WriteString("\n\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// DebugString returns the output of WriteState.
func (m *Manager) DebugString() string {
	var sb strings.Builder
	_ = m.WriteState(&sb)
	return sb.String()
}
