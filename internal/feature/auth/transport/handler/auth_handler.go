// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobboard_backend/internal/feature/auth/domain/entity"
	"jobboard_backend/internal/feature/auth/transport/http/dto"
	"jobboard_backend/internal/feature/auth/transport/middleware"
	"jobboard_backend/internal/feature/auth/usecase"
	jwtmw "jobboard_backend/internal/platform/jwt"
	"jobboard_backend/internal/platform/http/httperr"
)

// AuthUsecase defines the account operations used by the handlers.
// Interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (entity.User, error)
	Login(ctx context.Context, email, password string, meta usecase.ClientMeta) (usecase.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	UpdateProfile(ctx context.Context, sessionID string, in usecase.ProfileInput) (entity.User, error)

	ListUsers(ctx context.Context, status entity.UserStatus) ([]entity.User, error)
	ActivateUser(ctx context.Context, id string) (entity.User, error)
	SuspendUser(ctx context.Context, adminID, id string) (entity.User, error)
	DeleteUser(ctx context.Context, adminID, id string) error
}

// AuthHandler handles HTTP requests for the account lifecycle.
type AuthHandler struct {
	auth AuthUsecase
	log  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase, l *zap.Logger) *AuthHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuthHandler{auth: auth, log: l}
}

// mapError translates auth errors. Credential and state failures on login
// are reported separately because the client shows a different message
// for each.
func mapError(err error) *httperr.HTTPError {
	switch {
	case errors.Is(err, usecase.ErrMissingField):
		return httperr.New(http.StatusBadRequest, err.Error(), "MISSING_FIELD")
	case errors.Is(err, usecase.ErrInvalidEmail):
		return httperr.New(http.StatusBadRequest, err.Error(), "INVALID_EMAIL")
	case errors.Is(err, usecase.ErrWeakPassword):
		return httperr.New(http.StatusBadRequest, err.Error(), "WEAK_PASSWORD")
	case errors.Is(err, usecase.ErrInvalidInput):
		return httperr.New(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, usecase.ErrEmailTaken):
		return httperr.New(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return httperr.New(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, usecase.ErrSessionInvalid), errors.Is(err, usecase.ErrNoSession):
		return httperr.New(http.StatusUnauthorized, err.Error(), "SESSION_INVALID")
	case errors.Is(err, usecase.ErrAccountSuspended):
		return httperr.New(http.StatusForbidden, err.Error(), "ACCOUNT_SUSPENDED")
	case errors.Is(err, usecase.ErrPaymentPending):
		return httperr.New(http.StatusForbidden, err.Error(), "PAYMENT_PENDING")
	case errors.Is(err, usecase.ErrUserNotFound):
		return httperr.New(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	}
	return nil
}

func (h *AuthHandler) fail(c *gin.Context, err error) {
	httperr.Respond(c, h.log, err, mapError)
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	u, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		h.log.Info("registration rejected", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewUserRes(u))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, usecase.ClientMeta{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		h.log.Info("login failed", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginRes{
		Token:     res.Token,
		ExpiresAt: res.Session.ExpiresAt.Format(time.RFC3339),
		User:      dto.NewUserRes(res.User),
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), jwtmw.SessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me handles GET /auth/me. RequireSession has already revalidated the user.
func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		h.fail(c, usecase.ErrNoSession)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(u))
}

// UpdateMe handles PATCH /auth/me.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	u, err := h.auth.UpdateProfile(c.Request.Context(), jwtmw.SessionID(c), usecase.ProfileInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Avatar:   req.Avatar,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(u))
}

// ListUsers handles GET /admin/users?status=.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	status := entity.UserStatus(c.Query("status"))
	switch status {
	case "", entity.StatusPending, entity.StatusActive, entity.StatusSuspended:
	default:
		h.fail(c, httperr.New(http.StatusBadRequest, "unknown status", "INVALID_REQUEST"))
		return
	}
	users, err := h.auth.ListUsers(c.Request.Context(), status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserList(users))
}

// ActivateUser handles POST /admin/users/:id/activate.
func (h *AuthHandler) ActivateUser(c *gin.Context) {
	u, err := h.auth.ActivateUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(u))
}

// SuspendUser handles POST /admin/users/:id/suspend.
func (h *AuthHandler) SuspendUser(c *gin.Context) {
	admin, _ := middleware.CurrentUser(c)
	u, err := h.auth.SuspendUser(c.Request.Context(), admin.ID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(u))
}

// DeleteUser handles DELETE /admin/users/:id.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	admin, _ := middleware.CurrentUser(c)
	if err := h.auth.DeleteUser(c.Request.Context(), admin.ID, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
