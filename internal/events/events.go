package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Action names the kind of change a RecordEvent describes.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// RecordEvent describes a committed change to a stored record.
type RecordEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Entity is the lower-case entity name, e.g. "patient".
	Entity string `json:"entity"`

	Action   Action `json:"action"`
	RecordID int    `json:"record_id"`

	// Sequence is the emitting store's commit counter. Events are delivered
	// after the store lock is released, so handlers that care about order
	// must sort by Sequence rather than arrival.
	Sequence uint64 `json:"sequence"`

	// Record is the record as stored after the change. It is empty for
	// deletions.
	Record json.RawMessage `json:"record,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalRecord decodes the event's record snapshot into v.
func (e *RecordEvent) UnmarshalRecord(v any) error {
	return json.Unmarshal(e.Record, v)
}

// NewRecordEvent creates a RecordEvent. A nil record leaves the snapshot
// empty.
func NewRecordEvent(entity string, action Action, recordID int, record any) (*RecordEvent, error) {
	var raw json.RawMessage
	if record != nil {
		b, err := json.Marshal(record)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &RecordEvent{
		ID:        uuid.New(),
		Entity:    entity,
		Action:    action,
		RecordID:  recordID,
		Record:    raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *RecordEvent) error
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *RecordEvent) error
}

// HandlerFunc adapts an ordinary function to EventHandler.
type HandlerFunc func(ctx context.Context, event *RecordEvent) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *RecordEvent) error {
	return f(ctx, event)
}
