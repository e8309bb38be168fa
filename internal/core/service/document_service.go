package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

const (
	publicObjectMarker  = "/storage/v1/object/public/"
	defaultSignedURLTTL = time.Hour
)

// signedURLBuckets are tried in order after the bucket parsed from the URL
// is slotted in second.
var signedURLBuckets = []string{domain.BucketProjectDocuments, "", "documents", "project_documents"}

type documentService struct {
	repo    ports.DocumentRepository
	storage ports.ObjectStorage
	now     func() time.Time
	log     zerolog.Logger
}

func NewDocumentService(repo ports.DocumentRepository, storage ports.ObjectStorage, now func() time.Time, log zerolog.Logger) ports.DocumentService {
	if now == nil {
		now = time.Now
	}
	return &documentService{repo: repo, storage: storage, now: now, log: log}
}

func (s *documentService) ByProject(ctx context.Context, projectID string) []domain.Document {
	docs, err := s.repo.ListByProject(ctx, projectID, false)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", projectID).Msg("list documents failed")
		return []domain.Document{}
	}
	return docs
}

// Upload stores the file under <projectID>/<unix>_<name> and records it.
func (s *documentService) Upload(ctx context.Context, projectID string, in ports.UploadInput, visibleToClient bool, uploadedBy string) (*domain.Document, error) {
	name := sanitizeFileName(in.Name)
	if projectID == "" {
		return nil, domain.NewValidationError("project_id", "is required")
	}
	if name == "" || in.Body == nil {
		return nil, domain.NewValidationError("file", "is required")
	}

	objectPath := fmt.Sprintf("%s/%d_%s", projectID, s.now().Unix(), name)
	if err := s.storage.Upload(ctx, domain.BucketProjectDocuments, objectPath, in.Body, in.ContentType); err != nil {
		return nil, fmt.Errorf("upload document: %w", err)
	}

	doc := &domain.Document{
		ProjectID: projectID,
		Name:      in.Name,
		FileURL:   s.storage.PublicURL(domain.BucketProjectDocuments, objectPath),
		FileType:  in.ContentType,
		Size:      in.Size,
		IsPublic:  visibleToClient,
	}
	if uploadedBy != "" {
		doc.UploadedBy = &uploadedBy
	}
	created, err := s.repo.Create(ctx, doc)
	if err != nil {
		if rmErr := s.storage.Remove(ctx, domain.BucketProjectDocuments, objectPath); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("path", objectPath).Msg("failed to remove orphaned upload")
		}
		return nil, fmt.Errorf("upload document: %w", err)
	}
	return created, nil
}

// Delete removes the record and, best effort, the stored object.
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if bucket, objectPath, ok := ParsePublicObjectURL(doc.FileURL); ok {
		if err := s.storage.Remove(ctx, bucket, objectPath); err != nil {
			s.log.Warn().Err(err).Str("document_id", id).Msg("stored object not removed")
		}
	}
	return nil
}

// SignedURL turns a public object URL into a time-limited link, trying the
// known document buckets in order.
func (s *documentService) SignedURL(ctx context.Context, publicURL string, ttl time.Duration) (*domain.SignedURL, error) {
	return signObject(ctx, s.storage, s.now, s.log, publicURL, ttl)
}

func signObject(ctx context.Context, storage ports.ObjectStorage, now func() time.Time, log zerolog.Logger, publicURL string, ttl time.Duration) (*domain.SignedURL, error) {
	bucket, objectPath, ok := ParsePublicObjectURL(publicURL)
	if !ok {
		return nil, domain.NewValidationError("url", "is not a stored object URL")
	}
	if ttl <= 0 {
		ttl = defaultSignedURLTTL
	}

	seen := make(map[string]struct{}, len(signedURLBuckets))
	strategies := make([]strategy[*domain.SignedURL], 0, len(signedURLBuckets))
	for _, b := range signedURLBuckets {
		if b == "" {
			b = bucket
		}
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		strategies = append(strategies, strategy[*domain.SignedURL]{
			name: "bucket:" + b,
			run: func(ctx context.Context) (*domain.SignedURL, error) {
				signed, err := storage.SignedURL(ctx, b, objectPath, ttl)
				if err != nil {
					return nil, err
				}
				return &domain.SignedURL{URL: signed, Bucket: b, PublicURL: publicURL, ExpiresAt: now().Add(ttl)}, nil
			},
		})
	}

	res, err := firstOf(ctx, log, "document.signed_url", onObjectMissing, strategies...)
	if err != nil {
		return nil, fmt.Errorf("sign document url: %w", err)
	}
	return res, nil
}

func onObjectMissing(err error) bool {
	return errors.Is(err, ports.ErrBucketNotFound) || errors.Is(err, ports.ErrObjectNotFound)
}

// ParsePublicObjectURL extracts bucket and object path from a public object
// URL (absolute or path-only).
func ParsePublicObjectURL(raw string) (bucket, objectPath string, ok bool) {
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	i := strings.Index(p, publicObjectMarker)
	if i < 0 {
		return "", "", false
	}
	rest := p[i+len(publicObjectMarker):]
	bucket, objectPath, found := strings.Cut(rest, "/")
	if !found || bucket == "" || objectPath == "" {
		return "", "", false
	}
	if unescaped, err := url.PathUnescape(objectPath); err == nil {
		objectPath = unescaped
	}
	return bucket, objectPath, true
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '#', '?', '%':
			return '_'
		}
		return r
	}, name)
}
