package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

// ProjectHandler serves the back-office project and phase screens.
type ProjectHandler struct {
	projects ports.ProjectService
	phases   ports.PhaseService
}

func NewProjectHandler(projects ports.ProjectService, phases ports.PhaseService) *ProjectHandler {
	return &ProjectHandler{projects: projects, phases: phases}
}

// List returns every project, newest first.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}   domain.Project
// @Router       /api/admin/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.projects.GetAll(c.Request().Context()))
}

// Stats returns the dashboard counters.
//
// @Summary      Project statistics
// @Tags         projects
// @Produce      json
// @Success      200  {object}  domain.ProjectStats
// @Router       /api/admin/projects/stats [get]
func (h *ProjectHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.projects.Stats(c.Request().Context()))
}

// Get returns one project.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	p := h.projects.GetByID(c.Request().Context(), c.Param("id"))
	if p == nil {
		return domain.ErrProjectNotFound
	}
	return c.JSON(http.StatusOK, p)
}

// Create stores a new project.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      ports.ProjectInput  true  "Project"
// @Success      201   {object}  domain.Project
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req ports.ProjectInput
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p, err := h.projects.Create(c.Request().Context(), req, actorID(sc))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Update applies a partial update.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Project id"
// @Param        body  body      ports.ProjectPatch  true  "Fields to change"
// @Success      200   {object}  domain.Project
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/projects/{id} [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req ports.ProjectPatch
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p, err := h.projects.Update(c.Request().Context(), c.Param("id"), req, actorID(sc))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete removes a project.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	if err := h.projects.Delete(c.Request().Context(), c.Param("id"), actorID(sc)); err != nil {
		return err
	}
	return ok(c)
}

// Activity returns the audit trail of a project.
//
// @Summary      Project activity
// @Tags         projects
// @Produce      json
// @Param        id     path      string  true   "Project id"
// @Param        limit  query     int     false  "Maximum entries"
// @Success      200    {array}   domain.ActivityLog
// @Router       /api/admin/projects/{id}/activity [get]
func (h *ProjectHandler) Activity(c echo.Context) error {
	return c.JSON(http.StatusOK, h.projects.Activity(c.Request().Context(), c.Param("id"), queryInt(c, "limit", 50)))
}

// Phases returns the timeline of a project.
//
// @Summary      List phases
// @Tags         phases
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {array}   domain.Phase
// @Router       /api/admin/projects/{id}/phases [get]
func (h *ProjectHandler) Phases(c echo.Context) error {
	return c.JSON(http.StatusOK, h.phases.ByProject(c.Request().Context(), c.Param("id")))
}

// CreatePhase appends a phase to a project.
//
// @Summary      Create a phase
// @Tags         phases
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Project id"
// @Param        body  body      ports.PhaseInput  true  "Phase"
// @Success      201   {object}  domain.Phase
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/projects/{id}/phases [post]
func (h *ProjectHandler) CreatePhase(c echo.Context) error {
	var req ports.PhaseInput
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ph, err := h.phases.Create(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ph)
}

// UpdatePhase applies a partial update to a phase.
//
// @Summary      Update a phase
// @Tags         phases
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Phase id"
// @Param        body  body      ports.PhasePatch  true  "Fields to change"
// @Success      200   {object}  domain.Phase
// @Router       /api/admin/phases/{id} [patch]
func (h *ProjectHandler) UpdatePhase(c echo.Context) error {
	var req ports.PhasePatch
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ph, err := h.phases.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ph)
}

// DeletePhase removes a phase.
//
// @Summary      Delete a phase
// @Tags         phases
// @Produce      json
// @Param        id   path      string  true  "Phase id"
// @Success      200  {object}  successResponse
// @Router       /api/admin/phases/{id} [delete]
func (h *ProjectHandler) DeletePhase(c echo.Context) error {
	if err := h.phases.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c)
}
