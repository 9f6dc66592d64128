package ecs

import (
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serial int

func newSerialManager(capacity int) *Manager {
	s := NewSettings()
	RegisterComponent[serial](s)
	return NewManager(s, WithCapacity(capacity), WithLogger(slog.New(slog.DiscardHandler)))
}

// checkInvariants verifies the table layout that must hold right after Refresh.
func checkInvariants(t *testing.T, m *Manager) {
	t.Helper()

	require.Equal(t, m.size, m.sizeNext)
	require.LessOrEqual(t, m.sizeNext, m.capacity)

	dataSeen := make(map[DataIndex]bool, m.capacity)
	handleSeen := make(map[HandleDataIndex]bool, m.capacity)
	for i := 0; i < m.capacity; i++ {
		e := m.entities[i]
		require.Equal(t, i < m.size, e.alive, "slot %d", i)
		require.False(t, dataSeen[e.dataIndex], "data index %d shared", e.dataIndex)
		require.False(t, handleSeen[e.handleDataIndex], "handle-data index %d shared", e.handleDataIndex)
		dataSeen[e.dataIndex] = true
		handleSeen[e.handleDataIndex] = true
	}

	for i := 0; i < m.size; i++ {
		hd := m.handleData[m.entities[i].handleDataIndex]
		require.Equal(t, EntityIndex(i), hd.entityIndex, "handle of slot %d", i)
	}
}

func TestRefreshSwapLayout(t *testing.T) {
	m := newSerialManager(8)
	for i := 0; i < 5; i++ {
		e := m.CreateIndex()
		AddComponent(m, e, serial(i))
	}
	m.Refresh()

	m.Kill(1)
	m.Kill(3)
	m.Refresh()
	checkInvariants(t, m)

	order := []serial{}
	m.ForEntities(func(e EntityIndex) {
		order = append(order, *GetComponent[serial](m, e))
	})
	assert.Equal(t, []serial{0, 4, 2}, order)
}

func TestRefreshInvariantsUnderChurn(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	m := newSerialManager(4)

	type tracked struct {
		handle Handle
		value  serial
	}
	var live []tracked
	var dead []Handle
	next := serial(0)

	for frame := 0; frame < 300; frame++ {
		spawns := rng.IntN(12)
		for i := 0; i < spawns; i++ {
			h := m.CreateHandle()
			AddComponent(m, h, next)
			live = append(live, tracked{handle: h, value: next})
			next++
		}

		survivors := live[:0]
		for _, tr := range live {
			if rng.IntN(3) == 0 {
				m.KillHandle(tr.handle)
				dead = append(dead, tr.handle)
				continue
			}
			survivors = append(survivors, tr)
		}
		live = survivors

		m.Refresh()
		checkInvariants(t, m)
		require.Equal(t, len(live), m.EntityCount())

		for _, tr := range live {
			require.True(t, m.IsHandleValid(tr.handle))
			require.Equal(t, tr.value, *GetComponent[serial](m, tr.handle))
		}
		for _, h := range dead {
			require.False(t, m.IsHandleValid(h))
		}
	}
}

func TestRefreshInvariantsAfterGrowth(t *testing.T) {
	m := newSerialManager(2)
	for i := 0; i < 30; i++ {
		e := m.CreateIndex()
		AddComponent(m, e, serial(i))
		if i%3 == 0 {
			m.Kill(e)
		}
	}
	m.Refresh()
	checkInvariants(t, m)
	assert.Equal(t, 20, m.EntityCount())

	seen := map[serial]bool{}
	m.ForEntities(func(e EntityIndex) {
		seen[*GetComponent[serial](m, e)] = true
	})
	for i := 0; i < 30; i++ {
		assert.Equal(t, i%3 != 0, seen[serial(i)], "serial %d", i)
	}
}
