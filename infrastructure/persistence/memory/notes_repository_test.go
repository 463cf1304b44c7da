package memory

import (
	"context"
	"testing"
	"time"

	"soulink-backend/domain/notes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestCreateThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepository()

	created, err := repo.CreateNote(ctx, "u1", "n1", "Hello", "World")
	require.NoError(t, err)
	assert.Equal(t, "n1", created.ID)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := repo.GetNote(ctx, "u1", "n1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created, got)
}

func TestGetMissingNoteReturnsNilNil(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepository()

	got, err := repo.GetNote(ctx, "u1", "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListNotesEmptyForUnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepository()

	list, err := repo.ListNotes(ctx, "nobody")
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListNotesMostRecentlyUpdatedFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepository()

	_, err := repo.CreateNote(ctx, "u1", "n1", "first", "a")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = repo.CreateNote(ctx, "u1", "n2", "second", "b")
	require.NoError(t, err)

	list, err := repo.ListNotes(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n2", list[0].ID)
	assert.Equal(t, "n1", list[1].ID)

	// Updating the older note moves it to the front.
	time.Sleep(5 * time.Millisecond)
	_, err = repo.UpdateNote(ctx, "u1", "n1", notes.Update{Title: strptr("bumped")})
	require.NoError(t, err)

	list, err = repo.ListNotes(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n1", list[0].ID)
}

func TestListNotesOrderIsDeterministic(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepository()

	for _, id := range []string{"c", "a", "b"} {
		_, err := repo.CreateNote(ctx, "u1", id, "t", "c")
		require.NoError(t, err)
	}

	first, err := repo.ListNotes(ctx, "u1")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := repo.ListNotes(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestUpdatePreservesUnsetFields(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepository()

	created, err := repo.CreateNote(ctx, "u1", "n1", "Hello", "World")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	updated, err := repo.UpdateNote(ctx, "u1", "n1", notes.Update{Title: strptr("X")})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "X", updated.Title)
	assert.Equal(t, "World", updated.Content)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Greater(t, updated.UpdatedAt, created.UpdatedAt)
}

func TestUpdateWithEmptyStringOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepository()

	_, err := repo.CreateNote(ctx, "u1", "n1", "Hello", "World")
	require.NoError(t, err)

	updated, err := repo.UpdateNote(ctx, "u1", "n1", notes.Update{Content: strptr("")})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Hello", updated.Title)
	assert.Equal(t, "", updated.Content)
}

func TestUpdateMissingNoteReturnsNilAndWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepository()

	updated, err := repo.UpdateNote(ctx, "u1", "missing", notes.Update{Title: strptr("X")})
	require.NoError(t, err)
	assert.Nil(t, updated)

	list, err := repo.ListNotes(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepository()

	_, err := repo.CreateNote(ctx, "u1", "n1", "t", "c")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteNote(ctx, "u1", "n1"))
	require.NoError(t, repo.DeleteNote(ctx, "u1", "n1"))

	got, err := repo.GetNote(ctx, "u1", "n1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepository()

	created, err := repo.CreateNote(ctx, "A", "n1", "private", "data")
	require.NoError(t, err)

	got, err := repo.GetNote(ctx, "B", created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err := repo.ListNotes(ctx, "B")
	require.NoError(t, err)
	assert.Empty(t, list)
}
