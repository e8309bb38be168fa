package handler

import (
	"net/http"
	"net/url"
	"os"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/tde-services/project-portal/internal/core/ports"
)

// ObjectServer reads stored objects and checks signed-URL tokens.
type ObjectServer interface {
	Open(bucket, objectPath string) (*os.File, error)
	Verify(token, bucket, objectPath string) error
	IsPublic(bucket string) bool
}

// StorageHandler serves the public and signed object URLs.
type StorageHandler struct {
	objects ObjectServer
}

func NewStorageHandler(objects ObjectServer) *StorageHandler {
	return &StorageHandler{objects: objects}
}

// Public serves an object by its public URL. Buckets that are not public
// answer as if the object did not exist.
//
// @Summary      Public object
// @Tags         storage
// @Produce      octet-stream
// @Param        bucket  path  string  true  "Bucket"
// @Param        path    path  string  true  "Object path"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /storage/v1/object/public/{bucket}/{path} [get]
func (h *StorageHandler) Public(c echo.Context) error {
	bucket := c.Param("bucket")
	if !h.objects.IsPublic(bucket) {
		return ports.ErrObjectNotFound
	}
	return h.serve(c, bucket, objectPath(c))
}

// Signed serves an object when the token query parameter grants it.
//
// @Summary      Signed object
// @Tags         storage
// @Produce      octet-stream
// @Param        bucket  path   string  true  "Bucket"
// @Param        path    path   string  true  "Object path"
// @Param        token   query  string  true  "Signature"
// @Success      200
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /storage/v1/object/sign/{bucket}/{path} [get]
func (h *StorageHandler) Signed(c echo.Context) error {
	bucket, p := c.Param("bucket"), objectPath(c)
	if err := h.objects.Verify(c.QueryParam("token"), bucket, p); err != nil {
		return err
	}
	return h.serve(c, bucket, p)
}

func (h *StorageHandler) serve(c echo.Context, bucket, p string) error {
	f, err := h.objects.Open(bucket, p)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	http.ServeContent(c.Response(), c.Request(), path.Base(p), info.ModTime(), f)
	return nil
}

// objectPath returns the wildcard part of the route, unescaped once.
func objectPath(c echo.Context) string {
	p := c.Param("*")
	if c.Request().URL.RawPath == "" {
		return p
	}
	if u, err := url.PathUnescape(p); err == nil {
		return u
	}
	return p
}
