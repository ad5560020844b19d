package document

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/document"
	"github.com/MrJamesThe3rd/khusela/internal/http/respond"
)

// multipartOverhead leaves room for form fields around the file part.
const multipartOverhead = 1 << 20

type Handler struct {
	svc      *document.Service
	maxBytes int64
}

func NewHandler(svc *document.Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/upload", h.upload)
	r.Get("/application/{application_id}", h.listByApplication)
	r.Get("/download/{id}", h.download)
	r.Delete("/{id}", h.delete)
}

type documentResponse struct {
	ID            uuid.UUID  `json:"id"`
	ApplicationID *uuid.UUID `json:"application_id"`
	EmployeeID    *uuid.UUID `json:"employee_id"`
	DocType       string     `json:"doc_type"`
	FileName      string     `json:"file_name"`
	Key           string     `json:"r2_url"`
	UploadedBy    *uuid.UUID `json:"uploaded_by"`
	UploadedAt    time.Time  `json:"uploaded_at"`
}

func toResponse(d *document.Document) documentResponse {
	return documentResponse{
		ID:            d.ID,
		ApplicationID: d.ApplicationID,
		EmployeeID:    d.EmployeeID,
		DocType:       d.DocType,
		FileName:      d.FileName,
		Key:           d.Key,
		UploadedBy:    d.UploadedBy,
		UploadedAt:    d.UploadedAt,
	}
}

func optionalID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

type uploadResponse struct {
	Message  string           `json:"message"`
	Document documentResponse `json:"document"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respond.Error(w, http.StatusRequestEntityTooLarge, "File is too large.")
			return
		}

		respond.Error(w, http.StatusBadRequest, "No file provided.")

		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "No file provided.")
		return
	}
	defer file.Close()

	appID, err := optionalID(r.FormValue("application_id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid application_id.")
		return
	}

	empID, err := optionalID(r.FormValue("employee_id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid employee_id.")
		return
	}

	params := document.UploadParams{
		ApplicationID: appID,
		EmployeeID:    empID,
		DocType:       r.FormValue("doc_type"),
		FileName:      header.Filename,
		ContentType:   header.Header.Get("Content-Type"),
		Size:          header.Size,
		Body:          file,
	}

	if id, ok := auth.FromContext(r.Context()); ok {
		params.UploadedBy = &id.UserID
	}

	doc, err := h.svc.Upload(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, document.ErrNoFile):
			respond.Error(w, http.StatusBadRequest, "No file provided.")
		case errors.Is(err, document.ErrDocTypeRequired):
			respond.Error(w, http.StatusBadRequest, "doc_type is required.")
		case errors.Is(err, document.ErrUnsupportedType):
			respond.Error(w, http.StatusBadRequest, "Only JPG, PNG and PDF files are allowed.")
		case errors.Is(err, document.ErrTooLarge):
			respond.Error(w, http.StatusRequestEntityTooLarge, "File is too large.")
		case errors.Is(err, document.ErrOwnerRequired):
			respond.Error(w, http.StatusBadRequest, "application_id or employee_id is required.")
		default:
			respond.Internal(w, r, "File upload failed.", err)
		}

		return
	}

	respond.JSON(w, http.StatusCreated, uploadResponse{Message: "File uploaded successfully.", Document: toResponse(doc)})
}

func (h *Handler) listByApplication(w http.ResponseWriter, r *http.Request) {
	appID, err := uuid.Parse(chi.URLParam(r, "application_id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid application_id.")
		return
	}

	docs, err := h.svc.ListByApplication(r.Context(), appID)
	if err != nil {
		respond.Internal(w, r, "Failed to fetch documents.", err)
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toResponse(d))
	}

	respond.JSON(w, http.StatusOK, out)
}

type downloadResponse struct {
	URL      string           `json:"url"`
	Document documentResponse `json:"document"`
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id.")
		return
	}

	url, doc, err := h.svc.DownloadURL(r.Context(), id)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Document not found.")
			return
		}

		respond.Internal(w, r, "Failed to generate download URL.", err)

		return
	}

	respond.JSON(w, http.StatusOK, downloadResponse{URL: url, Document: toResponse(doc)})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id.")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, document.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Document not found.")
			return
		}

		respond.Internal(w, r, "Failed to delete document.", err)

		return
	}

	respond.Message(w, "Document deleted.")
}
