package system

import "time"

// Priority orders systems within a single tick. Higher runs first.
type Priority int

const (
	PriorityUpdate     Priority = 500 // advance Updatable entities (movement, weapons, timers)
	PriorityCollision  Priority = 400 // detect overlapping bodies, publish collisions
	PriorityDispatch   Priority = 300 // drain the event bus through the rules
	PriorityPostUpdate Priority = 200 // screen wrap, culling
	PriorityCommit     Priority = 0   // apply staged World mutations
)

// System is the interface every scheduled system implements.
type System interface {
	Priority() Priority
	Update(dt time.Duration)
}
