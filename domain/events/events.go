// Package events defines the note lifecycle events published to the event bus.
package events

// Event types emitted after successful writes.
const (
	NoteCreated = "NoteCreated"
	NoteUpdated = "NoteUpdated"
	NoteDeleted = "NoteDeleted"
)

// NoteEvent describes a single note lifecycle change.
type NoteEvent struct {
	Type       string `json:"type"`
	UserID     string `json:"userId"`
	NoteID     string `json:"noteId"`
	OccurredAt string `json:"occurredAt"`
}
