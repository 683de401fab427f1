package workflow

import (
	"errors"
	"net/http"

	"github.com/submitez/submitez/internal/extraction"
	"github.com/submitez/submitez/internal/generation"
	"github.com/submitez/submitez/internal/submission"
)

var (
	// ErrNoFilesProvided indicates an upload request with no files attached.
	ErrNoFilesProvided = errors.New("no files provided")
	// ErrFileTooLarge indicates the upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	// ErrInvalidUpload indicates a malformed multipart upload.
	ErrInvalidUpload = errors.New("invalid upload")
	// ErrFileNotFound indicates no attached file matches the requested name.
	ErrFileNotFound = errors.New("file not found on submission")
	// ErrNotReady indicates the submission does not meet the completeness
	// gate for form generation.
	ErrNotReady = errors.New("submission not ready for form generation")
)

// MapHTTPStatus maps pipeline errors, including those surfaced from the
// stage services, to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoFilesProvided), errors.Is(err, ErrInvalidUpload):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotReady):
		return http.StatusConflict
	}

	if code := extraction.MapHTTPStatus(err); code != http.StatusInternalServerError {
		return code
	}
	if code := generation.MapHTTPStatus(err); code != http.StatusInternalServerError {
		return code
	}
	return submission.MapHTTPStatus(err)
}
