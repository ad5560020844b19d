package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/khusela/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=document
type Repository interface {
	CreateDocument(ctx context.Context, d *Document) error
	GetDocument(ctx context.Context, id uuid.UUID) (*Document, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*Document, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}

type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	repo    Repository
	objects ObjectStore

	maxBytes int64
	urlTTL   time.Duration
	now      func() time.Time
}

func NewService(repo Repository, objects ObjectStore, maxBytes int64, urlTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		objects:  objects,
		maxBytes: maxBytes,
		urlTTL:   urlTTL,
		now:      time.Now,
	}
}

// SetClock replaces the time source used to build object keys.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

type UploadParams struct {
	ApplicationID *uuid.UUID
	EmployeeID    *uuid.UUID
	DocType       string
	FileName      string
	ContentType   string
	Size          int64
	Body          io.Reader
	UploadedBy    *uuid.UUID
}

// Upload stores the file under applications/<id>/ or employees/<id>/ and then
// records it. The application owner wins when both ids are given.
func (s *Service) Upload(ctx context.Context, p UploadParams) (*Document, error) {
	if p.Body == nil || p.Size == 0 {
		return nil, ErrNoFile
	}

	docType := strings.TrimSpace(p.DocType)
	if docType == "" {
		return nil, ErrDocTypeRequired
	}

	ext, ok := AllowedTypes[p.ContentType]
	if !ok {
		return nil, ErrUnsupportedType
	}

	if s.maxBytes > 0 && p.Size > s.maxBytes {
		return nil, ErrTooLarge
	}

	var folder, owner string

	switch {
	case p.ApplicationID != nil:
		folder, owner = "applications/"+p.ApplicationID.String(), "application"
	case p.EmployeeID != nil:
		folder, owner = "employees/"+p.EmployeeID.String(), "employee"
	default:
		return nil, ErrOwnerRequired
	}

	if e := strings.TrimPrefix(strings.ToLower(path.Ext(p.FileName)), "."); e != "" {
		ext = e
	}

	key := fmt.Sprintf("%s/%s_%d.%s", folder, docType, s.now().UnixMilli(), ext)

	if err := s.objects.Put(ctx, key, p.ContentType, p.Body); err != nil {
		return nil, fmt.Errorf("storing object: %w", err)
	}

	doc := &Document{
		DocType:    docType,
		FileName:   p.FileName,
		Key:        key,
		UploadedBy: p.UploadedBy,
	}

	if p.ApplicationID != nil {
		doc.ApplicationID = p.ApplicationID
	} else {
		doc.EmployeeID = p.EmployeeID
	}

	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			slog.Error("failed to remove orphaned object", "key", key, "error", delErr)
		}

		return nil, fmt.Errorf("recording document: %w", err)
	}

	metrics.DocumentUploads.WithLabelValues(owner).Inc()

	return doc, nil
}

// ListByApplication returns the newest uploads first.
func (s *Service) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*Document, error) {
	return s.repo.ListByApplication(ctx, applicationID)
}

// DownloadURL returns a time-limited link to the stored object.
func (s *Service) DownloadURL(ctx context.Context, id uuid.UUID) (string, *Document, error) {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return "", nil, err
	}

	url, err := s.objects.SignedURL(ctx, doc.Key, s.urlTTL)
	if err != nil {
		return "", nil, fmt.Errorf("signing url: %w", err)
	}

	return url, doc, nil
}

// Delete removes the object first so a failed bucket call leaves the row in place.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	if err := s.objects.Delete(ctx, doc.Key); err != nil {
		return fmt.Errorf("deleting object: %w", err)
	}

	return s.repo.DeleteDocument(ctx, id)
}
