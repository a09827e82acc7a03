package web

// errors.go maps service errors onto JSON error responses. Technical detail
// is logged server-side with the chi request id for correlation; clients get
// the message and an HTTP status that reflects the failure class.

import (
	"errors"
	"net/http"

	"github.com/taxdesk/taxdesk/internal/logging"
	"github.com/taxdesk/taxdesk/internal/pg"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondError classifies err, logs it, and writes the JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	body := ErrorResponse{Error: "internal error"}

	var fe *pg.FieldError
	switch {
	case errors.Is(err, pg.ErrNotFound):
		status = http.StatusNotFound
		body.Error = "document not found"
	case errors.As(err, &fe):
		status = http.StatusUnprocessableEntity
		if fe.Field == "id" {
			status = http.StatusBadRequest
		}
		body.Error = fe.Message
		body.Field = fe.Field
	}

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)

	writeJSON(w, status, body)
}

// badRequest writes a 400 with the given message, without error mapping.
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}
