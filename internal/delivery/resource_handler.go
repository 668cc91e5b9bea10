package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"eduresources/internal/models"
	"eduresources/internal/ports"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUploadSize = 32 << 20 // 32 MB

type ResourceHandler struct {
	resources ports.ResourceService
	log       *zap.SugaredLogger
}

func NewResourceHandler(resources ports.ResourceService, log *zap.SugaredLogger) *ResourceHandler {
	return &ResourceHandler{
		resources: resources,
		log:       log,
	}
}

// GET /resources/all
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.resources.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, list)
}

// GET /resources/{id}
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	res, err := h.resources.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, res)
}

// POST /resources/add
func (h *ResourceHandler) Add(w http.ResponseWriter, r *http.Request) {
	file, closeFile, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	defer closeFile()

	created, err := h.resources.Add(r.Context(), fieldsFromForm(r), file)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Infow("resource created", "id", created.ID, "title", created.Title)
	h.writeJSON(w, created)
}

// PUT /resources/update/{id}
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	file, closeFile, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	defer closeFile()

	updated, err := h.resources.Update(r.Context(), id, fieldsFromForm(r), file)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Infow("resource updated", "id", updated.ID, "fileReplaced", file != nil)
	h.writeJSON(w, updated)
}

// DELETE /resources/delete/{id}
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.resources.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Infow("resource deleted", "id", id)
	h.writeJSON(w, map[string]string{"message": "Resource deleted"})
}

func (h *ResourceHandler) idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// parseForm reads the multipart body and extracts the optional file part.
// A body without a file part is fine here; Add enforces its presence.
func (h *ResourceHandler) parseForm(w http.ResponseWriter, r *http.Request) (*models.FileUpload, func(), bool) {
	noop := func() {}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, noop, false
	}

	f, hdr, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, true
		}
		http.Error(w, "invalid file part: "+err.Error(), http.StatusBadRequest)
		return nil, noop, false
	}

	upload := &models.FileUpload{
		Reader:      f,
		Size:        hdr.Size,
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
	}
	return upload, func() { _ = f.Close() }, true
}

func fieldsFromForm(r *http.Request) models.ResourceFields {
	return models.ResourceFields{
		Type:        r.FormValue("type"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
}

func (h *ResourceHandler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain failures to statuses; anything unexpected is logged
// and returned as an opaque 500.
func (h *ResourceHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, "resource not found", http.StatusNotFound)
	case errors.Is(err, models.ErrFileRequired), errors.Is(err, models.ErrTitleRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrUnsupportedFileType):
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
	default:
		h.log.Errorw("request failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
