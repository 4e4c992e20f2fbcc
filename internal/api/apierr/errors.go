package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chessdb/chessdb/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeMalformedRecord     = "MALFORMED_RECORD"
	CodeReferenceNotFound   = "REFERENCE_NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeTimeControlNotFound = "TIME_CONTROL_NOT_FOUND"
	CodeOpeningNotFound     = "OPENING_NOT_FOUND"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Typed domain errors carry their own messages
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return &httpError{http.StatusBadRequest, APIError{CodeValidationFailed, verr.Error()}}
	}
	var merr *model.MalformedRecordError
	if errors.As(err, &merr) {
		return &httpError{http.StatusBadRequest, APIError{CodeMalformedRecord, merr.Error()}}
	}
	var rerr *model.ReferenceError
	if errors.As(err, &rerr) {
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeReferenceNotFound, rerr.Error()}}
	}
	var cerr *model.ConflictError
	if errors.As(err, &cerr) {
		return &httpError{http.StatusConflict, APIError{CodeConflict, cerr.Error()}}
	}

	// Sentinel lookup misses
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrTimeControlNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTimeControlNotFound, "Time control not found"}}
	case errors.Is(err, model.ErrOpeningNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeOpeningNotFound, "Opening not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
