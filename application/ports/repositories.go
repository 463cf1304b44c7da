package ports

import (
	"context"

	"soulink-backend/domain/notes"
)

// NotesRepository defines the interface for note persistence.
// This is a port in hexagonal architecture - the domain doesn't know about the implementation.
//
// Absence is an expected outcome, not an error: GetNote and UpdateNote
// return (nil, nil) when the note does not exist. Errors are reserved for
// transport and storage faults.
type NotesRepository interface {
	// CreateNote writes a fresh note unconditionally. The caller supplies a
	// globally unique noteID; createdAt and updatedAt are stamped equal.
	CreateNote(ctx context.Context, userID, noteID, title, content string) (*notes.Note, error)

	// GetNote performs an exact-key point lookup.
	GetNote(ctx context.Context, userID, noteID string) (*notes.Note, error)

	// ListNotes returns all notes for a user ordered most-recently-updated
	// first, ties broken by note id. Never returns a nil slice.
	ListNotes(ctx context.Context, userID string) ([]*notes.Note, error)

	// UpdateNote reads the existing record, applies only the fields present
	// in update, stamps a new updatedAt and rewrites the whole record.
	// The read-modify-write is not atomic; the last writer wins.
	UpdateNote(ctx context.Context, userID, noteID string, update notes.Update) (*notes.Note, error)

	// DeleteNote removes a note by exact key. Deleting a note that does not
	// exist is not an error.
	DeleteNote(ctx context.Context, userID, noteID string) error
}
