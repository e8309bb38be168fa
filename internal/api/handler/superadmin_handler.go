package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tde-services/project-portal/internal/core/ports"
)

type SuperAdminHandler struct {
	superadmin ports.SuperAdminService
}

func NewSuperAdminHandler(superadmin ports.SuperAdminService) *SuperAdminHandler {
	return &SuperAdminHandler{superadmin: superadmin}
}

type unlockRequest struct {
	Key string `json:"key" validate:"required"`
}

type stealthResponse struct {
	Access bool `json:"access"`
}

type promoteRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// StealthStatus reports whether the device unlocked the superadmin entry.
//
// @Summary      Stealth access status
// @Tags         superadmin
// @Produce      json
// @Success      200  {object}  stealthResponse
// @Router       /api/superadmin/stealth [get]
func (h *SuperAdminHandler) StealthStatus(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stealthResponse{Access: sc.Stealth.HasAccess(c.Request().Context())})
}

// Unlock opens the superadmin entry on this device for twelve hours.
//
// @Summary      Unlock the superadmin entry
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Param        body  body      unlockRequest  true  "Key"
// @Success      200   {object}  stealthResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/superadmin/stealth/unlock [post]
func (h *SuperAdminHandler) Unlock(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req unlockRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if !sc.Stealth.Unlock(c.Request().Context(), req.Key) {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}
	return c.JSON(http.StatusOK, stealthResponse{Access: true})
}

// Lock closes the superadmin entry on this device.
//
// @Summary      Lock the superadmin entry
// @Tags         superadmin
// @Produce      json
// @Success      200  {object}  stealthResponse
// @Router       /api/superadmin/stealth/lock [post]
func (h *SuperAdminHandler) Lock(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	sc.Stealth.Lock(c.Request().Context())
	return c.JSON(http.StatusOK, stealthResponse{Access: false})
}

// CreateAdmin creates or promotes a back-office account.
//
// @Summary      Create an admin
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Param        body  body      ports.CreateAdminInput  true  "Account"
// @Success      200   {object}  ports.CreateAdminResult
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/superadmin/admins [post]
func (h *SuperAdminHandler) CreateAdmin(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req ports.CreateAdminInput
	if err := bindValid(c, &req); err != nil {
		return err
	}
	res, err := h.superadmin.CreateAdmin(c.Request().Context(), sc.Admin.CurrentProfile(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// AuthUsers lists the identity users with their profile role.
//
// @Summary      List identity users
// @Tags         superadmin
// @Produce      json
// @Success      200  {array}   ports.AuthUserSummary
// @Router       /api/superadmin/users [get]
func (h *SuperAdminHandler) AuthUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.superadmin.AuthUsers(c.Request().Context()))
}

// Promote grants the admin role to an identity user.
//
// @Summary      Promote an identity user
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Param        body  body      promoteRequest  true  "User"
// @Success      200   {object}  successResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/superadmin/users/promote [post]
func (h *SuperAdminHandler) Promote(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req promoteRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := h.superadmin.PromoteAuthUser(c.Request().Context(), sc.Admin.CurrentProfile(), req.UserID); err != nil {
		return err
	}
	return ok(c)
}
