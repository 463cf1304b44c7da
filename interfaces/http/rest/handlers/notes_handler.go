package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"soulink-backend/application/services"
	"soulink-backend/domain/notes"
	"soulink-backend/pkg/common"
	"soulink-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotesHandler handles note-related HTTP requests. Each handler follows the
// same sequence: authentication, input validation, delegation, response
// mapping. Validation failures never escalate to faults.
type NotesHandler struct {
	service *services.NotesService
	logger  *zap.Logger
}

// NewNotesHandler creates a new notes handler
func NewNotesHandler(service *services.NotesService, logger *zap.Logger) *NotesHandler {
	return &NotesHandler{
		service: service,
		logger:  logger,
	}
}

// CreateNoteRequest represents the request body for creating a note.
// Pointer fields distinguish an absent field from an explicit empty string;
// both title and content must be present, but either may be empty.
type CreateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content" validate:"omitempty,max=100000"`
}

// UpdateNoteRequest represents the request body for updating a note.
// A nil field leaves the stored value unchanged.
type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content" validate:"omitempty,max=100000"`
}

type noteResponse struct {
	Note *notes.Note `json:"note"`
}

type listNotesResponse struct {
	Notes []*notes.Note `json:"notes"`
}

// CreateNote handles POST /notes
func (h *NotesHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.GetUserID(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateNoteRequest
	// An empty body reads as "no fields given" and falls through to the
	// presence checks.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Title == nil || req.Content == nil {
		common.RespondError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	noteID := uuid.New().String()

	note, err := h.service.CreateNote(r.Context(), userID, noteID, *req.Title, *req.Content)
	if err != nil {
		h.logger.Error("Failed to create note",
			zap.String("userID", userID),
			zap.Error(err),
		)
		common.RespondFault(w, "Failed to create note", err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, noteResponse{Note: note})
}

// GetNote handles GET /notes/{noteID}
func (h *NotesHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.GetUserID(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	noteID := chi.URLParam(r, "noteID")
	if noteID == "" {
		common.RespondError(w, http.StatusBadRequest, "Note ID is required")
		return
	}

	note, err := h.service.GetNote(r.Context(), userID, noteID)
	if err != nil {
		h.logger.Error("Failed to get note",
			zap.String("userID", userID),
			zap.String("noteID", noteID),
			zap.Error(err),
		)
		common.RespondFault(w, "Failed to get note", err)
		return
	}
	if note == nil {
		common.RespondError(w, http.StatusNotFound, "Note not found")
		return
	}

	common.RespondJSON(w, http.StatusOK, noteResponse{Note: note})
}

// ListNotes handles GET /notes
func (h *NotesHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.GetUserID(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	list, err := h.service.ListNotes(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list notes",
			zap.String("userID", userID),
			zap.Error(err),
		)
		common.RespondFault(w, "Failed to list notes", err)
		return
	}

	common.RespondJSON(w, http.StatusOK, listNotesResponse{Notes: list})
}

// UpdateNote handles PUT /notes/{noteID}
func (h *NotesHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.GetUserID(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	noteID := chi.URLParam(r, "noteID")
	if noteID == "" {
		common.RespondError(w, http.StatusBadRequest, "Note ID is required")
		return
	}

	var req UpdateNoteRequest
	// An empty body reads as "no fields given" and falls through to the
	// presence check.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Title == nil && req.Content == nil {
		common.RespondError(w, http.StatusBadRequest, "At least one of title or content must be provided")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	note, err := h.service.UpdateNote(r.Context(), userID, noteID, notes.Update{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.logger.Error("Failed to update note",
			zap.String("userID", userID),
			zap.String("noteID", noteID),
			zap.Error(err),
		)
		common.RespondFault(w, "Failed to update note", err)
		return
	}
	if note == nil {
		common.RespondError(w, http.StatusNotFound, "Note not found")
		return
	}

	common.RespondJSON(w, http.StatusOK, noteResponse{Note: note})
}

// DeleteNote handles DELETE /notes/{noteID}
func (h *NotesHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.GetUserID(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	noteID := chi.URLParam(r, "noteID")
	if noteID == "" {
		common.RespondError(w, http.StatusBadRequest, "Note ID is required")
		return
	}

	if err := h.service.DeleteNote(r.Context(), userID, noteID); err != nil {
		h.logger.Error("Failed to delete note",
			zap.String("userID", userID),
			zap.String("noteID", noteID),
			zap.Error(err),
		)
		common.RespondFault(w, "Failed to delete note", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
