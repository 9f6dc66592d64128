package ecs

// UpdateFrame is passed to every system during one Scheduler pass.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Manager   *Manager
}

func newUpdateFrame(dt float64, manager *Manager) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Manager:   manager,
	}
}
