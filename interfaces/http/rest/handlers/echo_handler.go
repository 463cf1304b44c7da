package handlers

import (
	"encoding/json"
	"net/http"

	"soulink-backend/pkg/common"
	"soulink-backend/pkg/utils"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// EchoHandler is a diagnostics endpoint: it reflects the request body and
// the authenticated subject back to the caller.
type EchoHandler struct {
	logger *zap.Logger
}

// NewEchoHandler creates a new echo handler
func NewEchoHandler(logger *zap.Logger) *EchoHandler {
	return &EchoHandler{logger: logger}
}

type echoUser struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

type echoResponse struct {
	Message      string      `json:"message"`
	ReceivedBody interface{} `json:"receivedBody"`
	Timestamp    string      `json:"timestamp"`
	User         *echoUser   `json:"user"`
	RequestID    string      `json:"requestId,omitempty"`
	Method       string      `json:"httpMethod"`
	Path         string      `json:"path"`
}

// Echo handles POST /echo
func (h *EchoHandler) Echo(w http.ResponseWriter, r *http.Request) {
	var body interface{}
	if r.Body != nil {
		// A malformed body is still echoed as null rather than rejected.
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			body = nil
		}
	}

	var user *echoUser
	if userID, ok := common.GetUserID(r.Context()); ok {
		user = &echoUser{ID: userID}
		if email, ok := common.GetUserEmail(r.Context()); ok {
			user.Email = email
		}
	}

	common.RespondJSON(w, http.StatusOK, echoResponse{
		Message:      "Echo response from Soul Ink API",
		ReceivedBody: body,
		Timestamp:    utils.NowISO8601(),
		User:         user,
		RequestID:    chimiddleware.GetReqID(r.Context()),
		Method:       r.Method,
		Path:         r.URL.Path,
	})
}
