package ecs

// Commands buffers structural work requested by systems so it can run after
// every system has finished iterating.
type Commands struct {
	spawns []spawnCommand
	kills  []Handle
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	build func(m *Manager, e EntityIndex)
}

// Spawn queues the creation of an entity. build is called with the new index
// and is expected to attach the entity's components and tags.
func (c *Commands) Spawn(build func(m *Manager, e EntityIndex)) {
	c.spawns = append(c.spawns, spawnCommand{build: build})
}

// Kill queues a kill through a handle. Handles that are stale at flush time are skipped.
func (c *Commands) Kill(h Handle) {
	c.kills = append(c.kills, h)
}

// Defer queues a function to run at flush time.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.kills) + len(c.defers)
}

// Flush applies kills, then spawns, then deferred functions, and resets the buffer.
func (c *Commands) Flush(m *Manager) {
	for _, h := range c.kills {
		if m.IsHandleValid(h) {
			m.KillHandle(h)
		}
	}

	for _, cmd := range c.spawns {
		e := m.CreateIndex()
		if cmd.build != nil {
			cmd.build(m, e)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.kills = c.kills[:0]
	c.defers = c.defers[:0]
}
