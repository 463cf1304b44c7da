package services

import (
	"context"
	"errors"
	"testing"

	domainevents "soulink-backend/domain/events"
	"soulink-backend/domain/notes"
	"soulink-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// capturingPublisher records published events; it can be told to fail to
// verify that publishing failures never surface to callers.
type capturingPublisher struct {
	events []domainevents.NoteEvent
	err    error
}

func (p *capturingPublisher) Publish(ctx context.Context, event domainevents.NoteEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func newTestService(publisher *capturingPublisher) *NotesService {
	repo := memory.NewNotesRepository()
	return NewNotesService(repo, publisher, nil, nil, zap.NewNop())
}

func strptr(s string) *string { return &s }

func TestCreateNotePublishesEvent(t *testing.T) {
	publisher := &capturingPublisher{}
	service := newTestService(publisher)

	note, err := service.CreateNote(context.Background(), "u1", "n1", "Hello", "World")
	require.NoError(t, err)
	require.NotNil(t, note)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, domainevents.NoteCreated, event.Type)
	assert.Equal(t, "u1", event.UserID)
	assert.Equal(t, "n1", event.NoteID)
	assert.NotEmpty(t, event.OccurredAt)
}

func TestUpdateNotePublishesEvent(t *testing.T) {
	publisher := &capturingPublisher{}
	service := newTestService(publisher)

	_, err := service.CreateNote(context.Background(), "u1", "n1", "Hello", "World")
	require.NoError(t, err)

	updated, err := service.UpdateNote(context.Background(), "u1", "n1", notes.Update{Title: strptr("X")})
	require.NoError(t, err)
	require.NotNil(t, updated)

	require.Len(t, publisher.events, 2)
	assert.Equal(t, domainevents.NoteUpdated, publisher.events[1].Type)
}

func TestUpdateMissingNotePublishesNothing(t *testing.T) {
	publisher := &capturingPublisher{}
	service := newTestService(publisher)

	updated, err := service.UpdateNote(context.Background(), "u1", "missing", notes.Update{Title: strptr("X")})
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.Empty(t, publisher.events)
}

func TestDeleteNotePublishesEvent(t *testing.T) {
	publisher := &capturingPublisher{}
	service := newTestService(publisher)

	_, err := service.CreateNote(context.Background(), "u1", "n1", "Hello", "World")
	require.NoError(t, err)

	require.NoError(t, service.DeleteNote(context.Background(), "u1", "n1"))

	require.Len(t, publisher.events, 2)
	assert.Equal(t, domainevents.NoteDeleted, publisher.events[1].Type)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	publisher := &capturingPublisher{err: errors.New("bus unavailable")}
	service := newTestService(publisher)

	note, err := service.CreateNote(context.Background(), "u1", "n1", "Hello", "World")
	require.NoError(t, err)
	assert.NotNil(t, note)
}

func TestNilPublisherIsTolerated(t *testing.T) {
	repo := memory.NewNotesRepository()
	service := NewNotesService(repo, nil, nil, nil, zap.NewNop())

	note, err := service.CreateNote(context.Background(), "u1", "n1", "Hello", "World")
	require.NoError(t, err)
	assert.NotNil(t, note)

	require.NoError(t, service.DeleteNote(context.Background(), "u1", "n1"))
}
