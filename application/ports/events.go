package ports

import (
	"context"

	"soulink-backend/domain/events"
)

// EventPublisher publishes note lifecycle events to an external bus.
// Publishing is best-effort: callers log failures and never surface them
// to the API client.
type EventPublisher interface {
	Publish(ctx context.Context, event events.NoteEvent) error
}
