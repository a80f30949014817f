// Package handler provides the HTTP handlers of the applications feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobboard_backend/internal/feature/applications/domain/entity"
	"jobboard_backend/internal/feature/applications/transport/http/dto"
	"jobboard_backend/internal/feature/applications/usecase"
	authmw "jobboard_backend/internal/feature/auth/transport/middleware"
	"jobboard_backend/internal/platform/http/httperr"
)

// ApplicationUsecase defines the application operations used by the handlers.
type ApplicationUsecase interface {
	Apply(ctx context.Context, userID, jobID string, in usecase.ApplyInput) (entity.Application, error)
	ByUser(ctx context.Context, userID string) ([]entity.Application, error)
	ByJob(ctx context.Context, jobID string) ([]entity.Application, error)
	HasApplied(ctx context.Context, userID, jobID string) (bool, error)
	All(ctx context.Context) ([]entity.Application, error)
	SetStatus(ctx context.Context, id string, status entity.ApplicationStatus) (entity.Application, error)
}

type ApplicationHandler struct {
	apps ApplicationUsecase
	log  *zap.Logger
}

// NewApplicationHandler returns a handler backed by apps.
func NewApplicationHandler(apps ApplicationUsecase, l *zap.Logger) *ApplicationHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &ApplicationHandler{apps: apps, log: l}
}

func mapError(err error) *httperr.HTTPError {
	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return httperr.New(http.StatusNotFound, err.Error(), "JOB_NOT_FOUND")
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return httperr.New(http.StatusNotFound, err.Error(), "APPLICATION_NOT_FOUND")
	case errors.Is(err, usecase.ErrAccountNotActive):
		return httperr.New(http.StatusForbidden, err.Error(), "ACCOUNT_NOT_ACTIVE")
	case errors.Is(err, usecase.ErrJobClosed):
		return httperr.New(http.StatusConflict, err.Error(), "JOB_CLOSED")
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return httperr.New(http.StatusConflict, err.Error(), "ALREADY_APPLIED")
	case errors.Is(err, usecase.ErrInvalidInput):
		return httperr.New(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	}
	return nil
}

func (h *ApplicationHandler) fail(c *gin.Context, err error) {
	httperr.Respond(c, h.log, err, mapError)
}

// currentUserID returns the id set by RequireSession.
func currentUserID(c *gin.Context) string {
	u, _ := authmw.CurrentUser(c)
	return u.ID
}

// Apply handles POST /jobs/:id/applications.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dto.ApplyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	a, err := h.apps.Apply(c.Request.Context(), currentUserID(c), c.Param("id"), usecase.ApplyInput{
		Resume:      req.Resume,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// Applied handles GET /jobs/:id/applications/me.
func (h *ApplicationHandler) Applied(c *gin.Context) {
	ok, err := h.apps.HasApplied(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AppliedRes{Applied: ok})
}

// Mine handles GET /me/applications.
func (h *ApplicationHandler) Mine(c *gin.Context) {
	apps, err := h.apps.ByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewApplicationList(apps))
}

// List handles GET /admin/applications.
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.apps.All(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewApplicationList(apps))
}

// ByJob handles GET /admin/jobs/:id/applications.
func (h *ApplicationHandler) ByJob(c *gin.Context) {
	apps, err := h.apps.ByJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewApplicationList(apps))
}

// SetStatus handles PATCH /admin/applications/:id.
func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	var req dto.StatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	a, err := h.apps.SetStatus(c.Request.Context(), c.Param("id"), entity.ApplicationStatus(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
