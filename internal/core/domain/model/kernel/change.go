package kernel

import (
	"time"
)

// Action names what happened to an entity in a change record.
type Action string

const (
	ActionCreated            Action = "created"
	ActionModified           Action = "modified"
	ActionDeleted            Action = "deleted"
	ActionRestored           Action = "restored"
	ActionApproved           Action = "approved"
	ActionMoved              Action = "moved"
	ActionProcessingStarted  Action = "processing_started"
	ActionProcessingFinished Action = "processing_finished"
)

// Change is one entry of the append-only audit trail.
// ChangeSetID is empty until the unit of work commits the record.
type Change struct {
	ChangeSetID   UUID
	AggregateType string
	AggregateID   int64
	EntityType    string
	EntityID      int64
	Action        Action
	ActorID       string
	OccurredAt    time.Time
	Details       map[string]any
}

// ChangeRecorder is implemented by entities whose mutations end up in the audit trail.
// PullChanges returns the pending changes with ids resolved and clears them.
type ChangeRecorder interface {
	PullChanges() []Change
}

// ChangeLog buffers changes raised by an entity until its unit of work commits.
// Entity ids are filled in on Pull because new entities do not have one yet when they record.
type ChangeLog struct {
	pending []Change
}

func (l *ChangeLog) Record(action Action, actorID string, at time.Time, details map[string]any) {
	l.pending = append(l.pending, Change{
		Action:     action,
		ActorID:    actorID,
		OccurredAt: at,
		Details:    details,
	})
}

func (l *ChangeLog) Pending() int {
	return len(l.pending)
}

// Pull stamps entity and aggregate identity on every pending change and empties the buffer.
func (l *ChangeLog) Pull(entityType string, entityID int64, aggregateType string, aggregateID int64) []Change {
	out := l.pending
	l.pending = nil
	for i := range out {
		out[i].EntityType = entityType
		out[i].EntityID = entityID
		out[i].AggregateType = aggregateType
		out[i].AggregateID = aggregateID
	}
	return out
}
