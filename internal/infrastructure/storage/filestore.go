// Package storage implements bucketed object storage on the local
// filesystem with public and signed URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tde-services/project-portal/internal/core/ports"
)

// URL prefixes served by the storage handler.
const (
	PublicPrefix = "/storage/v1/object/public/"
	SignPrefix   = "/storage/v1/object/sign/"
)

// Buckets the portal writes to.
var DefaultBuckets = []string{"project-documents", "documents", "project_documents", "profile-photos", "project-images"}

// DefaultPublicBuckets are readable without a signature. Document buckets
// are only reachable through signed URLs.
var DefaultPublicBuckets = []string{"profile-photos", "project-images"}

var (
	ErrInvalidPath  = errors.New("invalid object path")
	ErrInvalidToken = errors.New("invalid or expired signature")
)

type Config struct {
	Root          string
	PublicURL     string
	SigningSecret string
	Buckets       []string
	PublicBuckets []string
}

// FileStore keeps each bucket in a directory under Root.
type FileStore struct {
	root    string
	baseURL string
	secret  []byte
	buckets map[string]struct{}
	public  map[string]struct{}
	now     func() time.Time
}

var _ ports.ObjectStorage = (*FileStore)(nil)

// New creates the bucket directories and returns the store.
func New(cfg Config) (*FileStore, error) {
	if cfg.Root == "" {
		return nil, errors.New("storage root is required")
	}
	if cfg.SigningSecret == "" {
		return nil, errors.New("storage signing secret is required")
	}
	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = DefaultBuckets
	}
	s := &FileStore{
		root:    cfg.Root,
		baseURL: strings.TrimRight(cfg.PublicURL, "/"),
		secret:  []byte(cfg.SigningSecret),
		buckets: make(map[string]struct{}, len(buckets)),
		public:  make(map[string]struct{}),
		now:     time.Now,
	}
	public := cfg.PublicBuckets
	if len(public) == 0 {
		public = DefaultPublicBuckets
	}
	for _, b := range public {
		s.public[b] = struct{}{}
	}
	for _, b := range buckets {
		if err := os.MkdirAll(filepath.Join(cfg.Root, b), 0o755); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", b, err)
		}
		s.buckets[b] = struct{}{}
	}
	return s, nil
}

// resolve maps bucket and object path to a file below the bucket directory.
func (s *FileStore) resolve(bucket, objectPath string) (string, error) {
	if _, ok := s.buckets[bucket]; !ok {
		return "", ports.ErrBucketNotFound
	}
	clean := path.Clean("/" + objectPath)
	if clean == "/" || strings.Contains(objectPath, "..") || strings.ContainsRune(objectPath, 0) {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, bucket, filepath.FromSlash(clean)), nil
}

func (s *FileStore) Upload(ctx context.Context, bucket, objectPath string, r io.Reader, _ string) error {
	dst, err := s.resolve(bucket, objectPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("upload %s/%s: %w", bucket, objectPath, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("upload %s/%s: %w", bucket, objectPath, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("upload %s/%s: %w", bucket, objectPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("upload %s/%s: %w", bucket, objectPath, err)
	}
	return os.Rename(tmp.Name(), dst)
}

// PublicURL returns the unsigned URL of an object.
func (s *FileStore) PublicURL(bucket, objectPath string) string {
	return s.baseURL + PublicPrefix + bucket + "/" + escapePath(objectPath)
}

// IsPublic reports whether objects of bucket may be read by their public
// URL.
func (s *FileStore) IsPublic(bucket string) bool {
	_, ok := s.public[bucket]
	return ok
}

type signClaims struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
	jwt.RegisteredClaims
}

// SignedURL returns a URL granting read access to an existing object for
// ttl.
func (s *FileStore) SignedURL(_ context.Context, bucket, objectPath string, ttl time.Duration) (string, error) {
	file, err := s.resolve(bucket, objectPath)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ports.ErrObjectNotFound
		}
		return "", err
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, signClaims{
		Bucket: bucket,
		Path:   objectPath,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s/%s: %w", bucket, objectPath, err)
	}
	return s.baseURL + SignPrefix + bucket + "/" + escapePath(objectPath) + "?token=" + url.QueryEscape(signed), nil
}

// Verify checks that token grants access to bucket/objectPath.
func (s *FileStore) Verify(token, bucket, objectPath string) error {
	var claims signClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Bucket != bucket || claims.Path != objectPath {
		return ErrInvalidToken
	}
	return nil
}

// Open returns the object for reading.
func (s *FileStore) Open(bucket, objectPath string) (*os.File, error) {
	file, err := s.resolve(bucket, objectPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ports.ErrObjectNotFound
	}
	return f, err
}

// Remove deletes objects; missing ones are ignored.
func (s *FileStore) Remove(_ context.Context, bucket string, paths ...string) error {
	for _, p := range paths {
		file, err := s.resolve(bucket, p)
		if err != nil {
			return err
		}
		if err := os.Remove(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s/%s: %w", bucket, p, err)
		}
	}
	return nil
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
