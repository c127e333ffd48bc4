package announcements

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitfield/placard/pkg/handlers"
	"github.com/mwhitfield/placard/pkg/pagination"
	"github.com/mwhitfield/placard/pkg/patch"
	"github.com/mwhitfield/placard/pkg/routes"
)

// Guard wraps a handler with an authentication check. List and Find are
// public; every mutating endpoint goes through the guard.
type Guard func(http.HandlerFunc) http.HandlerFunc

// Handler provides HTTP endpoints for announcement operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
	guard         Guard
}

// NewHandler creates a Handler with the given system, logger, pagination
// config, upload size limit, and auth guard.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
	guard Guard,
) *Handler {
	if guard == nil {
		guard = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "announcements"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
		guard:         guard,
	}
}

// Routes returns the route group definition for announcement endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/announcement",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.guard(h.Create)},
			{Method: "PUT", Pattern: "/{id}", Handler: h.guard(h.Update)},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.guard(h.Delete)},
		},
	}
}

// List returns a paginated list of announcements with optional search and sort.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, "announcements retrieved successfully", result)
}

// Find returns a single announcement by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	a, err := h.sys.Get(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, "announcement retrieved successfully", a)
}

// Create processes a multipart form containing announcement fields, a
// signatory id list, and the image file.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}

	title := r.FormValue("title")
	category := r.FormValue("category")
	body := r.FormValue("body")
	session := r.FormValue("session")
	if title == "" || category == "" || body == "" || session == "" {
		handlers.RespondError(
			w, h.logger,
			http.StatusBadRequest,
			fmt.Errorf("%w: title, category, body, and session are required", ErrInvalidRequest),
		)
		return
	}

	publishedAt, err := time.Parse(time.RFC3339, r.FormValue("published_at"))
	if err != nil {
		handlers.RespondError(
			w, h.logger,
			http.StatusBadRequest,
			fmt.Errorf("%w: published_at must be RFC 3339", ErrInvalidRequest),
		)
		return
	}

	signatoryIDs, err := parseSignatoryIDs(r.MultipartForm.Value["signatories"])
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	image, err := readImage(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if image == nil {
		handlers.RespondError(
			w, h.logger,
			http.StatusBadRequest,
			fmt.Errorf("%w: image file is required", ErrInvalidRequest),
		)
		return
	}

	cmd := CreateCommand{
		Title:        title,
		Category:     category,
		Body:         body,
		Session:      session,
		PublishedAt:  publishedAt,
		SignatoryIDs: signatoryIDs,
		Image:        *image,
	}

	a, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, "announcement created successfully", a)
}

// Update processes a partial multipart form against an existing announcement.
// Fields absent from the form leave the stored values unchanged; a supplied
// signatories list (even empty) replaces the association set.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if !h.parseMultipart(w, r) {
		return
	}

	cmd := UpdateCommand{
		Title:    formField(r, "title"),
		Category: formField(r, "category"),
		Body:     formField(r, "body"),
		Session:  formField(r, "session"),
	}

	if values, ok := r.MultipartForm.Value["published_at"]; ok && len(values) > 0 {
		publishedAt, err := time.Parse(time.RFC3339, values[0])
		if err != nil {
			handlers.RespondError(
				w, h.logger,
				http.StatusBadRequest,
				fmt.Errorf("%w: published_at must be RFC 3339", ErrInvalidRequest),
			)
			return
		}
		cmd.PublishedAt = patch.Field[time.Time]{Value: publishedAt, Set: true, Valid: true}
	}

	if values, ok := r.MultipartForm.Value["signatories"]; ok {
		ids, err := parseSignatoryIDs(values)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
		cmd.SignatoryIDs = &ids
	}

	image, err := readImage(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	cmd.Image = image

	a, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, "announcement updated successfully", a)
}

// Delete removes an announcement and its stored image by UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseMultipart parses the request form under the upload size limit,
// responding with 413 when the limit is exceeded and 400 for a body that
// cannot be parsed. Returns false when a response was already written.
func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		} else {
			handlers.RespondError(
				w, h.logger,
				http.StatusBadRequest,
				fmt.Errorf("%w: malformed multipart body", ErrInvalidRequest),
			)
		}
		return false
	}
	return true
}

// formField reads a multipart field into a patch value, preserving the
// distinction between an absent field and one supplied empty.
func formField(r *http.Request, name string) patch.Field[string] {
	values, ok := r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return patch.Field[string]{}
	}
	return patch.Field[string]{Value: values[0], Set: true, Valid: true}
}

// parseSignatoryIDs parses the repeated signatories form values. Empty
// strings are skipped so clients can send a single empty value to express
// an empty list.
func parseSignatoryIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid signatory id %q", ErrInvalidRequest, v)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// readImage extracts the image file part when one was supplied. Returns
// nil without error when the form has no image part.
func readImage(r *http.Request) (*ImagePayload, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	return &ImagePayload{
		Data:        data,
		Filename:    header.Filename,
		ContentType: detectContentType(header.Header.Get("Content-Type"), data),
	}, nil
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}
