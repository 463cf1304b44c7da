package common

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body shape for every non-2xx response. Error carries
// the underlying fault description on 500s and is omitted otherwise.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError sends an error response with the given status and message
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Message: message})
}

// RespondFault sends a 500 response carrying a generic message plus the
// underlying fault description. Storage and transport failures are never
// interpreted into domain status codes.
func RespondFault(w http.ResponseWriter, message string, err error) {
	body := ErrorResponse{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	RespondJSON(w, http.StatusInternalServerError, body)
}
