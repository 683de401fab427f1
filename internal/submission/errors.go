package submission

import (
	"errors"
	"net/http"
)

// Domain errors for submission operations.
var (
	ErrNotFound          = errors.New("submission not found")
	ErrDuplicate         = errors.New("submission already exists")
	ErrInvalidID         = errors.New("invalid submission id")
	ErrInvalidStatus     = errors.New("invalid submission status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidPayload    = errors.New("invalid request payload")
)

// MapHTTPStatus maps submission domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidTransition) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidPayload) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
