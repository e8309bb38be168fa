package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tde-services/project-portal/internal/core/ports"
)

// maxUploadSize bounds multipart uploads.
const maxUploadSize = 50 << 20

type DocumentHandler struct {
	documents ports.DocumentService
}

func NewDocumentHandler(documents ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// List returns every document of a project, client-visible or not.
//
// @Summary      List documents
// @Tags         documents
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {array}   domain.Document
// @Router       /api/admin/projects/{id}/documents [get]
func (h *DocumentHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.documents.ByProject(c.Request().Context(), c.Param("id")))
}

// Upload stores a file and records it on the project.
//
// @Summary      Upload a document
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        id                 path      string  true   "Project id"
// @Param        file               formData  file    true   "Document"
// @Param        visible_to_client  formData  bool    false  "Show in the client portal"
// @Success      201                {object}  domain.Document
// @Failure      400                {object}  errorResponse
// @Router       /api/admin/projects/{id}/documents [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	in, closeFn, err := formUpload(c, "file")
	if err != nil {
		return err
	}
	defer closeFn()

	visible, _ := strconv.ParseBool(c.FormValue("visible_to_client"))
	doc, err := h.documents.Upload(c.Request().Context(), c.Param("id"), in, visible, actorID(sc))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

// Delete removes a document and its file.
//
// @Summary      Delete a document
// @Tags         documents
// @Produce      json
// @Param        id   path      string  true  "Document id"
// @Success      200  {object}  successResponse
// @Router       /api/admin/documents/{id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	if err := h.documents.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c)
}

// Sign turns a stored public URL into a time-limited signed URL.
//
// @Summary      Sign a document URL
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body      signURLRequest  true  "Public URL"
// @Success      200   {object}  domain.SignedURL
// @Failure      400   {object}  errorResponse
// @Router       /api/admin/documents/sign [post]
func (h *DocumentHandler) Sign(c echo.Context) error {
	var req signURLRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	signed, err := h.documents.SignedURL(c.Request().Context(), req.URL, adminSignedURLTTL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, signed)
}

// formUpload opens the multipart file named field.
func formUpload(c echo.Context, field string) (ports.UploadInput, func(), error) {
	c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, maxUploadSize)
	fh, err := c.FormFile(field)
	if err != nil {
		return ports.UploadInput{}, nil, echo.NewHTTPError(http.StatusBadRequest, field+" is required")
	}
	f, err := fh.Open()
	if err != nil {
		return ports.UploadInput{}, nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	in := ports.UploadInput{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}
	return in, func() { _ = f.Close() }, nil
}
