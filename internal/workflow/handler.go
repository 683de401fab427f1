package workflow

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/submitez/submitez/internal/submission"
	"github.com/submitez/submitez/pkg/handlers"
	"github.com/submitez/submitez/pkg/routes"
)

// Handler provides HTTP endpoints for the submission pipeline.
type Handler struct {
	svc           *Service
	logger        *slog.Logger
	maxUploadSize int64
}

// ValidateRequest selects the validation mode for the validate endpoint.
type ValidateRequest struct {
	Strict bool `json:"strict"`
}

// GenerateRequest names the ACORD forms to fill. An empty list lets the
// pipeline detect forms from the available data.
type GenerateRequest struct {
	Forms []string `json:"forms"`
}

// ProcessRequest combines the validate and generate options for a full
// pipeline run.
type ProcessRequest struct {
	Strict bool     `json:"strict"`
	Forms  []string `json:"forms"`
}

// NewHandler creates a Handler with the given pipeline service and
// upload size limit.
func NewHandler(svc *Service, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		svc:           svc,
		logger:        logger.With("handler", "workflow"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for pipeline endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/submissions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{id}/files", Handler: h.Upload},
			{Method: "GET", Pattern: "/{id}/files/{filename}", Handler: h.Download},
			{Method: "POST", Pattern: "/{id}/extract", Handler: h.Extract},
			{Method: "POST", Pattern: "/{id}/validate", Handler: h.Validate},
			{Method: "POST", Pattern: "/{id}/generate", Handler: h.Generate},
			{Method: "POST", Pattern: "/{id}/process", Handler: h.Process},
		},
	}
}

// Upload attaches broker documents from a multipart form to the
// submission and moves it to uploaded.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	files, err := readUploadFiles(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	sub, err := h.svc.Upload(r.Context(), id, files)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, sub)
}

// Download streams an attached file by filename.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ref, result, err := h.svc.DownloadFile(r.Context(), id, r.PathValue("filename"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer result.Body.Close()

	contentType := ref.ContentType
	if contentType == "" {
		contentType = result.ContentType
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ref.Filename))
	if result.ContentLength > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", result.ContentLength))
	}

	if _, err := io.Copy(w, result.Body); err != nil {
		h.logger.Warn("file stream interrupted", "id", id, "filename", ref.Filename, "error", err)
	}
}

// Extract runs the extraction stage.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	sub, err := h.svc.Extract(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sub)
}

// Validate runs the validation stage and returns the full report
// alongside the updated submission.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req ValidateRequest
	if !decodeOptionalBody(w, h.logger, r, &req) {
		return
	}

	sub, result, err := h.svc.Validate(r.Context(), id, req.Strict)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"submission": sub,
		"validation": result,
	})
}

// Generate runs the form generation stage.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req GenerateRequest
	if !decodeOptionalBody(w, h.logger, r, &req) {
		return
	}

	sub, outputs, err := h.svc.Generate(r.Context(), id, req.Forms)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"submission": sub,
		"forms":      outputs,
	})
}

// Process runs the full pipeline: extract, validate, generate.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req ProcessRequest
	if !decodeOptionalBody(w, h.logger, r, &req) {
		return
	}

	sub, result, err := h.svc.Process(r.Context(), id, req.Strict, req.Forms)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"submission": sub,
		"pipeline":   result,
	})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, submission.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func readUploadFiles(r *http.Request) ([]UploadFile, error) {
	if r.MultipartForm == nil {
		return nil, ErrNoFilesProvided
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
	}
	if len(headers) == 0 {
		return nil, ErrNoFilesProvided
	}

	files := make([]UploadFile, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidUpload, header.Filename)
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidUpload, header.Filename)
		}

		files = append(files, UploadFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}

// decodeOptionalBody decodes a JSON body into dst when one is present.
// An empty body leaves dst at its zero value.
func decodeOptionalBody(w http.ResponseWriter, logger *slog.Logger, r *http.Request, dst any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		handlers.RespondError(w, logger, http.StatusBadRequest, submission.ErrInvalidPayload)
		return false
	}
	return true
}
