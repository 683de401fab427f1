package extraction

import (
	"errors"
	"net/http"
)

// Domain errors for extraction operations.
var (
	ErrNoFiles          = errors.New("submission has no uploaded files")
	ErrUnsupportedFile  = errors.New("unsupported file type")
	ErrEmptyDocument    = errors.New("document contains no extractable content")
	ErrMalformedData    = errors.New("extracted data does not match the expected structure")
	ErrAllFilesFailed   = errors.New("extraction failed for every uploaded file")
	ErrModelUnavailable = errors.New("extraction model request failed")
)

// MapHTTPStatus maps extraction domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNoFiles) || errors.Is(err, ErrUnsupportedFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrEmptyDocument) || errors.Is(err, ErrMalformedData) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrAllFilesFailed) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrModelUnavailable) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
