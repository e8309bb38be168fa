package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

func TestParsePublicObjectURL(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		bucket string
		path   string
		ok     bool
	}{
		{"absolute", "https://x.test/storage/v1/object/public/project-documents/p1/1_plan.pdf", "project-documents", "p1/1_plan.pdf", true},
		{"path only", "/storage/v1/object/public/documents/p1/a.png", "documents", "p1/a.png", true},
		{"escaped", "https://x.test/storage/v1/object/public/docs/p1/mon%20plan.pdf", "docs", "p1/mon plan.pdf", true},
		{"query dropped", "https://x.test/storage/v1/object/public/docs/p1/a.pdf?download=1", "docs", "p1/a.pdf", true},
		{"no marker", "https://x.test/files/a.pdf", "", "", false},
		{"bucket only", "https://x.test/storage/v1/object/public/docs", "", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, p, ok := ParsePublicObjectURL(tc.raw)
			if ok != tc.ok || b != tc.bucket || p != tc.path {
				t.Fatalf("got (%q, %q, %v), want (%q, %q, %v)", b, p, ok, tc.bucket, tc.path, tc.ok)
			}
		})
	}
}

func TestDocumentService_UploadAndDelete(t *testing.T) {
	repo := &stubDocuments{}
	storage := newStubStorage()
	clock := newFakeClock()
	svc := NewDocumentService(repo, storage, clock.Now, zerolog.Nop())
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "p1", ports.UploadInput{
		Name: "plan étage 1.pdf", ContentType: "application/pdf", Size: 4, Body: strings.NewReader("%PDF"),
	}, true, "admin-1")
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	wantPath := "p1/" + "1741597200_plan_étage_1.pdf"
	if _, ok := storage.objects[domain.BucketProjectDocuments+"/"+wantPath]; !ok {
		t.Fatalf("object not stored at %s: %v", wantPath, storage.objects)
	}
	if !doc.IsPublic || doc.UploadedBy == nil || *doc.UploadedBy != "admin-1" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if got := svc.ByProject(ctx, "p1"); len(got) != 1 {
		t.Fatalf("expected 1 document, got %d", len(got))
	}

	if err := svc.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(storage.objects) != 0 {
		t.Fatalf("stored object must be removed: %v", storage.objects)
	}
}

func TestDocumentService_SignedURLFallsBackAcrossBuckets(t *testing.T) {
	storage := newStubStorage()
	storage.objects["documents/p1/a.pdf"] = "application/pdf"
	clock := newFakeClock()
	svc := NewDocumentService(&stubDocuments{}, storage, clock.Now, zerolog.Nop())

	signed, err := svc.SignedURL(context.Background(), storage.PublicURL("legacy", "p1/a.pdf"), 10*time.Minute)
	if err != nil {
		t.Fatalf("SignedURL returned error: %v", err)
	}
	if signed.Bucket != "documents" {
		t.Fatalf("expected documents bucket, got %q", signed.Bucket)
	}
	if !signed.ExpiresAt.Equal(clock.Now().Add(10 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", signed.ExpiresAt)
	}
}

func TestDocumentService_SignedURLErrors(t *testing.T) {
	svc := NewDocumentService(&stubDocuments{}, newStubStorage(), nil, zerolog.Nop())

	if _, err := svc.SignedURL(context.Background(), "https://elsewhere.test/a.pdf", 0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err := svc.SignedURL(context.Background(), "https://x.test/storage/v1/object/public/documents/p1/missing.pdf", 0)
	if !errors.Is(err, ports.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}
