package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error from the dataset service
//  2. Calls respondError(w, r, err)
//  3. The error is mapped via dataset.MapError / dataset.HTTPStatus
//  4. Technical detail is logged with the request ID for correlation
//  5. The sanitized user message is returned as JSON
//
// Internal paths never reach the client; they only appear in server logs.

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/EJ-L/code-treat-data/internal/dataset"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse is the JSON structure for API error responses. It carries
// both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error server-side and writes the
// sanitized user message with its stable status code.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	userMsg := dataset.MapError(err)
	status := dataset.HTTPStatus(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// writeJSON encodes v as JSON and writes it to w.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
