package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/infrastructure/storage"
)

type stubObjects struct {
	dir      string
	public   map[string]bool
	verifyFn func(token, bucket, objectPath string) error
}

func (s *stubObjects) IsPublic(bucket string) bool { return s.public[bucket] }

func (s *stubObjects) Open(bucket, objectPath string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.dir, bucket, filepath.FromSlash(objectPath)))
	if err != nil {
		return nil, ports.ErrObjectNotFound
	}
	return f, nil
}

func (s *stubObjects) Verify(token, bucket, objectPath string) error {
	return s.verifyFn(token, bucket, objectPath)
}

func newStubObjects(t *testing.T) *stubObjects {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "documents", "p1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "documents", "p1", "plan.txt"), []byte("floor plan"), 0o644); err != nil {
		t.Fatal(err)
	}
	return &stubObjects{dir: dir, public: map[string]bool{"documents": true}}
}

func TestStorageHandler_Public(t *testing.T) {
	objs := newStubObjects(t)
	c, rec := newCtx(http.MethodGet, storage.PublicPrefix+"documents/p1/plan.txt", "", nil)
	c.SetParamNames("bucket", "*")
	c.SetParamValues("documents", "p1/plan.txt")

	if err := NewStorageHandler(objs).Public(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "floor plan" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}

func TestStorageHandler_Public_Missing(t *testing.T) {
	objs := newStubObjects(t)
	c, _ := newCtx(http.MethodGet, storage.PublicPrefix+"documents/p1/none.txt", "", nil)
	c.SetParamNames("bucket", "*")
	c.SetParamValues("documents", "p1/none.txt")

	if err := NewStorageHandler(objs).Public(c); !errors.Is(err, ports.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestStorageHandler_Signed(t *testing.T) {
	objs := newStubObjects(t)
	objs.verifyFn = func(token, bucket, objectPath string) error {
		if token == "good" && bucket == "documents" && objectPath == "p1/plan.txt" {
			return nil
		}
		return storage.ErrInvalidToken
	}

	c, _ := newCtx(http.MethodGet, storage.SignPrefix+"documents/p1/plan.txt?token=bad", "", nil)
	c.SetParamNames("bucket", "*")
	c.SetParamValues("documents", "p1/plan.txt")
	if err := NewStorageHandler(objs).Signed(c); !errors.Is(err, storage.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	c, rec := newCtx(http.MethodGet, storage.SignPrefix+"documents/p1/plan.txt?token=good", "", nil)
	c.SetParamNames("bucket", "*")
	c.SetParamValues("documents", "p1/plan.txt")
	if err := NewStorageHandler(objs).Signed(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "floor plan" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestStorageHandler_Public_PrivateBucket(t *testing.T) {
	objs := newStubObjects(t)
	objs.public = map[string]bool{"profile-photos": true}
	c, rec := newCtx(http.MethodGet, storage.PublicPrefix+"documents/p1/plan.txt", "", nil)
	c.SetParamNames("bucket", "*")
	c.SetParamValues("documents", "p1/plan.txt")

	if err := NewStorageHandler(objs).Public(c); !errors.Is(err, ports.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound for a private bucket, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("private object must not be written, got %q", rec.Body.String())
	}
}
