package model

import (
	"github.com/viant/morph/internal/idgen"
)

// LifecycleEvent marks a notification with a pipeline lifecycle transition.
type LifecycleEvent string

const (
	// StartSession marks the beginning of a new ingestion session; commands
	// holding per-session state reset on it.
	StartSession LifecycleEvent = "startSession"

	// CommitTransaction marks a successful end of a unit of work.
	CommitTransaction LifecycleEvent = "commitTransaction"

	// RollbackTransaction marks an aborted unit of work.
	RollbackTransaction LifecycleEvent = "rollbackTransaction"

	// Shutdown marks pipeline teardown.
	Shutdown LifecycleEvent = "shutdown"
)

// Notification is an immutable lifecycle event broadcast through the command
// chain. Commands inspect the markers they care about and forward the
// notification unchanged.
type Notification struct {
	ID     string
	Events []LifecycleEvent
}

// NewNotification creates a notification carrying the supplied lifecycle markers.
func NewNotification(events ...LifecycleEvent) *Notification {
	return &Notification{ID: idgen.New(), Events: events}
}

// Contains returns true when the notification carries the supplied marker.
func (n *Notification) Contains(event LifecycleEvent) bool {
	for _, candidate := range n.Events {
		if candidate == event {
			return true
		}
	}
	return false
}
