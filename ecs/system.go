package ecs

// System represents a behavior that runs once per frame.
// Systems may declare Query and Singleton fields; the Scheduler binds them to
// its Manager on registration and executes the queries before each run.
type System interface {
	Execute(frame *UpdateFrame)
}
