package ecs

// KindCount is the number of alive entities carrying one component or tag kind,
// or matching one signature.
type KindCount struct {
	Name  string
	Count int
}

// Stats is a snapshot of a Manager's occupancy.
type Stats struct {
	EntityCount    int
	SizeNext       int
	Capacity       int
	PendingKills   int
	SingletonCount int
	Components     []KindCount
	Tags           []KindCount
	Signatures     []KindCount
}

// CollectStats walks the claimed slots and counts kinds among alive entities.
// Entities killed since the last Refresh are reported as PendingKills.
func (m *Manager) CollectStats() Stats {
	s := m.settings
	stats := Stats{
		EntityCount:    m.size,
		SizeNext:       m.sizeNext,
		Capacity:       m.capacity,
		SingletonCount: m.singletons.Len(),
		Components:     make([]KindCount, len(s.components)),
		Tags:           make([]KindCount, len(s.tags)),
		Signatures:     make([]KindCount, len(s.signatures)),
	}
	for i, c := range s.components {
		stats.Components[i].Name = c.typ.String()
	}
	for i, t := range s.tags {
		stats.Tags[i].Name = t.String()
	}
	for i, sig := range s.signatures {
		stats.Signatures[i].Name = sig.typ.String()
	}

	for i := 0; i < m.sizeNext; i++ {
		e := &m.entities[i]
		if !e.alive {
			stats.PendingKills++
			continue
		}
		for c := range stats.Components {
			if e.bitset.Test(c) {
				stats.Components[c].Count++
			}
		}
		for t := range stats.Tags {
			if e.bitset.Test(len(s.components) + t) {
				stats.Tags[t].Count++
			}
		}
		for j, sig := range s.signatures {
			if e.bitset.Contains(sig.bitset) {
				stats.Signatures[j].Count++
			}
		}
	}
	return stats
}
