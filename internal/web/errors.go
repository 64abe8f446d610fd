package web

// errors.go provides unified error response handling for the web layer.
//
// Every handler error is:
//   - Logged with full technical details and the request ID
//   - Returned as JSON with a user-friendly message from core.MapError
//
// The status code is derived from the error with errorStatus.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/pm3import/internal/core"
	"github.com/JonMunkholm/pm3import/internal/csvtab"
	"github.com/JonMunkholm/pm3import/internal/history"
	"github.com/JonMunkholm/pm3import/internal/importer"
	"github.com/JonMunkholm/pm3import/internal/kitexport"
	"github.com/JonMunkholm/pm3import/internal/logging"
	"github.com/JonMunkholm/pm3import/internal/savefile"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// errBadRequest marks request parsing failures.
var errBadRequest = errors.New("bad request")

// respondError logs err and writes its user message. A zero statusCode is
// derived from the error.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	if statusCode == 0 {
		statusCode = errorStatus(err)
	}
	userMsg := core.MapError(err)

	log := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if statusCode >= http.StatusInternalServerError {
		log.Error("request error", attrs...)
	} else {
		log.Warn("request error", attrs...)
	}

	w.Header().Set("X-Request-ID", requestID(r))
	if statusCode == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", "5")
	}
	respondErrorJSON(w, err, userMsg, statusCode)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, err error, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   err.Error(),
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, core.ErrImportBusy):
		return http.StatusTooManyRequests
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadRequest),
		errors.Is(err, savefile.ErrInvalidGame),
		errors.Is(err, savefile.ErrTargetChoice),
		errors.Is(err, core.ErrMissingTable),
		errors.Is(err, core.ErrInvalidYear),
		errors.Is(err, csvtab.ErrEmptyTable),
		errors.Is(err, importer.ErrNoClubs),
		errors.Is(err, kitexport.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, history.ErrNotConfigured),
		errors.Is(err, savefile.ErrNoBackup):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, core.ErrNoInstallPath):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// requestID returns the chi request ID for correlation in responses.
func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
