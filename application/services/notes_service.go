package services

import (
	"context"

	"soulink-backend/application/ports"
	domainevents "soulink-backend/domain/events"
	"soulink-backend/domain/notes"
	"soulink-backend/pkg/observability"
	"soulink-backend/pkg/utils"

	"go.uber.org/zap"
)

// NotesService orchestrates the notes repository with lifecycle event
// publishing and operation metrics. Events and metrics are best-effort;
// only repository errors reach the caller.
type NotesService struct {
	repo    ports.NotesRepository
	events  ports.EventPublisher
	metrics *observability.Metrics
	tracer  *observability.Tracer
	logger  *zap.Logger
}

// NewNotesService creates a new notes service
func NewNotesService(
	repo ports.NotesRepository,
	events ports.EventPublisher,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *NotesService {
	return &NotesService{
		repo:    repo,
		events:  events,
		metrics: metrics,
		tracer:  tracer,
		logger:  logger,
	}
}

// CreateNote persists a fresh note and announces it.
func (s *NotesService) CreateNote(ctx context.Context, userID, noteID, title, content string) (*notes.Note, error) {
	var created *notes.Note
	err := s.tracer.TraceFunction(ctx, "NotesRepository.CreateNote", func(ctx context.Context) error {
		var err error
		created, err = s.repo.CreateNote(ctx, userID, noteID, title, content)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domainevents.NoteCreated, userID, noteID)
	s.metrics.IncrementCounter("NotesCreated")

	return created, nil
}

// GetNote fetches a single note; (nil, nil) means not found.
func (s *NotesService) GetNote(ctx context.Context, userID, noteID string) (*notes.Note, error) {
	var note *notes.Note
	err := s.tracer.TraceFunction(ctx, "NotesRepository.GetNote", func(ctx context.Context) error {
		var err error
		note, err = s.repo.GetNote(ctx, userID, noteID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return note, nil
}

// ListNotes returns the user's notes, most-recently-updated first.
func (s *NotesService) ListNotes(ctx context.Context, userID string) ([]*notes.Note, error) {
	var out []*notes.Note
	err := s.tracer.TraceFunction(ctx, "NotesRepository.ListNotes", func(ctx context.Context) error {
		var err error
		out, err = s.repo.ListNotes(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// UpdateNote applies a partial update; (nil, nil) means not found.
func (s *NotesService) UpdateNote(ctx context.Context, userID, noteID string, update notes.Update) (*notes.Note, error) {
	var updated *notes.Note
	err := s.tracer.TraceFunction(ctx, "NotesRepository.UpdateNote", func(ctx context.Context) error {
		var err error
		updated, err = s.repo.UpdateNote(ctx, userID, noteID, update)
		return err
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	s.publish(ctx, domainevents.NoteUpdated, userID, noteID)
	s.metrics.IncrementCounter("NotesUpdated")

	return updated, nil
}

// DeleteNote removes a note; deleting an absent note succeeds.
func (s *NotesService) DeleteNote(ctx context.Context, userID, noteID string) error {
	err := s.tracer.TraceFunction(ctx, "NotesRepository.DeleteNote", func(ctx context.Context) error {
		return s.repo.DeleteNote(ctx, userID, noteID)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, domainevents.NoteDeleted, userID, noteID)
	s.metrics.IncrementCounter("NotesDeleted")

	return nil
}

// publish emits a lifecycle event. Failures are logged, never surfaced.
func (s *NotesService) publish(ctx context.Context, eventType, userID, noteID string) {
	if s.events == nil {
		return
	}

	event := domainevents.NoteEvent{
		Type:       eventType,
		UserID:     userID,
		NoteID:     noteID,
		OccurredAt: utils.NowISO8601(),
	}

	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish note event",
			zap.String("eventType", eventType),
			zap.String("noteID", noteID),
			zap.Error(err),
		)
	}
}
