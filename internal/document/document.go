package document

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrNoFile          = errors.New("no file provided")
	ErrDocTypeRequired = errors.New("doc_type is required")
	ErrOwnerRequired   = errors.New("application_id or employee_id is required")
	ErrUnsupportedType = errors.New("only JPG, PNG and PDF files are allowed")
	ErrTooLarge        = errors.New("file exceeds the upload limit")
)

// AllowedTypes maps accepted content types to the file extension used in keys.
var AllowedTypes = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"application/pdf": "pdf",
}

// Document is an uploaded file attached to an application or an employee.
// Key is the object key in the bucket, not a public URL.
type Document struct {
	ID            uuid.UUID
	ApplicationID *uuid.UUID
	EmployeeID    *uuid.UUID
	DocType       string
	FileName      string
	Key           string
	UploadedBy    *uuid.UUID
	UploadedAt    time.Time
}
