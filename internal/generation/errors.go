package generation

import (
	"errors"
	"net/http"
)

// Domain errors for form generation.
var (
	ErrUnsupportedForm = errors.New("unsupported ACORD form type")
	ErrTemplateMissing = errors.New("form template not found")
	ErrNoApplicantData = errors.New("submission has no applicant data to fill forms with")
	ErrNoAcroForm      = errors.New("template carries no fillable form fields")
	ErrTemplateInvalid = errors.New("form template could not be read")
)

// MapHTTPStatus maps generation domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnsupportedForm) || errors.Is(err, ErrNoApplicantData) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrTemplateMissing) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrNoAcroForm) || errors.Is(err, ErrTemplateInvalid) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
