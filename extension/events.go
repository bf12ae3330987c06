// events.go defines notifications extensions can observe.
//
// Events are fire-and-forget: they are delivered after the operation has
// committed and a handler cannot veto it. Handler errors are returned to
// the caller joined together, but every handler still runs.

package extension

import "errors"

// EventType identifies the kind of event.
type EventType string

const (
	EventSnapshotCreate EventType = "snapshot:create"
	EventSnapshotDelete EventType = "snapshot:delete"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	// SnapshotID returns the snapshot the event concerns.
	SnapshotID() string
}

// SnapshotCreateEvent is fired after a snapshot is indexed.
type SnapshotCreateEvent struct {
	ID    string
	Root  string
	Files int64
}

func (e SnapshotCreateEvent) EventType() EventType { return EventSnapshotCreate }
func (e SnapshotCreateEvent) SnapshotID() string   { return e.ID }

// SnapshotDeleteEvent is fired after a snapshot and its entries are removed.
type SnapshotDeleteEvent struct {
	ID string
}

func (e SnapshotDeleteEvent) EventType() EventType { return EventSnapshotDelete }
func (e SnapshotDeleteEvent) SnapshotID() string   { return e.ID }

// EventHandler is implemented by extensions that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}

// Dispatch delivers e to every registered extension implementing
// EventHandler, in registration order.
func Dispatch(ctx Context, e Event) error {
	var errs []error
	for _, ext := range All() {
		if h, ok := ext.(EventHandler); ok {
			if err := h.HandleEvent(ctx, e); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
