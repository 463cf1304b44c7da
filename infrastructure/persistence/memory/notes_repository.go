// Package memory provides an in-memory NotesRepository with the same
// contract as the DynamoDB implementation. It backs handler and service
// tests and local development without AWS credentials.
package memory

import (
	"context"
	"sort"
	"sync"

	"soulink-backend/application/ports"
	"soulink-backend/domain/notes"
	"soulink-backend/pkg/utils"
)

// record pairs the domain note with its derived index sort key so listing
// can reproduce the store's ordering exactly.
type record struct {
	note     notes.Note
	indexKey string
}

// NotesRepository is a mutex-guarded map keyed by user then note id.
type NotesRepository struct {
	mu    sync.RWMutex
	users map[string]map[string]record
}

// NewNotesRepository creates an empty in-memory repository.
func NewNotesRepository() ports.NotesRepository {
	return &NotesRepository{
		users: make(map[string]map[string]record),
	}
}

// CreateNote writes a fresh note unconditionally.
func (r *NotesRepository) CreateNote(ctx context.Context, userID, noteID, title, content string) (*notes.Note, error) {
	now := utils.NowISO8601()
	note := notes.Note{
		ID:        noteID,
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store(note)

	out := note
	return &out, nil
}

// GetNote returns (nil, nil) when the note does not exist.
func (r *NotesRepository) GetNote(ctx context.Context, userID, noteID string) (*notes.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[userID][noteID]
	if !ok {
		return nil, nil
	}

	out := rec.note
	return &out, nil
}

// ListNotes returns the user's notes ordered by descending index sort key,
// matching the store's ByUpdatedAt traversal.
func (r *NotesRepository) ListNotes(ctx context.Context, userID string) ([]*notes.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := make([]record, 0, len(r.users[userID]))
	for _, rec := range r.users[userID] {
		recs = append(recs, rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].indexKey > recs[j].indexKey
	})

	out := make([]*notes.Note, 0, len(recs))
	for _, rec := range recs {
		note := rec.note
		out = append(out, &note)
	}

	return out, nil
}

// UpdateNote applies only the fields present in update and rewrites the
// record with a fresh updatedAt. Absent note returns (nil, nil).
func (r *NotesRepository) UpdateNote(ctx context.Context, userID, noteID string, update notes.Update) (*notes.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[userID][noteID]
	if !ok {
		return nil, nil
	}

	note := rec.note
	if update.Title != nil {
		note.Title = *update.Title
	}
	if update.Content != nil {
		note.Content = *update.Content
	}
	note.UpdatedAt = utils.NowISO8601()
	r.store(note)

	out := note
	return &out, nil
}

// DeleteNote is idempotent; deleting an absent note succeeds.
func (r *NotesRepository) DeleteNote(ctx context.Context, userID, noteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users[userID], noteID)
	return nil
}

// store indexes a note under both keys. Caller holds the write lock.
func (r *NotesRepository) store(note notes.Note) {
	if r.users[note.UserID] == nil {
		r.users[note.UserID] = make(map[string]record)
	}
	r.users[note.UserID][note.ID] = record{
		note:     note,
		indexKey: notes.IndexSortKey(note.UpdatedAt, note.ID),
	}
}
