// Package handler provides the HTTP handlers of the payments feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authentity "jobboard_backend/internal/feature/auth/domain/entity"
	authmw "jobboard_backend/internal/feature/auth/transport/middleware"
	"jobboard_backend/internal/feature/payments/domain/entity"
	"jobboard_backend/internal/feature/payments/transport/http/dto"
	"jobboard_backend/internal/feature/payments/usecase"
	"jobboard_backend/internal/platform/http/httperr"
)

type PaymentUsecase interface {
	Submit(ctx context.Context, in usecase.SubmitInput) (entity.Payment, error)
	Confirm(ctx context.Context, id, adminID string) (entity.Payment, error)
	Reject(ctx context.Context, id, adminID string) (entity.Payment, error)
	Get(ctx context.Context, id string) (entity.Payment, error)
	All(ctx context.Context) ([]entity.Payment, error)
	Pending(ctx context.Context) ([]entity.Payment, error)
	ByUser(ctx context.Context, userID string) ([]entity.Payment, error)
}

type PaymentHandler struct {
	payments PaymentUsecase
	log      *zap.Logger
}

// NewPaymentHandler returns a handler backed by payments.
func NewPaymentHandler(payments PaymentUsecase, l *zap.Logger) *PaymentHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &PaymentHandler{payments: payments, log: l}
}

func mapError(err error) *httperr.HTTPError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return httperr.New(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, usecase.ErrUserNotFound):
		return httperr.New(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return httperr.New(http.StatusNotFound, err.Error(), "PAYMENT_NOT_FOUND")
	case errors.Is(err, usecase.ErrAlreadyActive):
		return httperr.New(http.StatusConflict, err.Error(), "ALREADY_ACTIVE")
	case errors.Is(err, usecase.ErrPaymentNotPending):
		return httperr.New(http.StatusConflict, err.Error(), "PAYMENT_NOT_PENDING")
	case errors.Is(err, usecase.ErrAccountSuspended):
		return httperr.New(http.StatusForbidden, err.Error(), "ACCOUNT_SUSPENDED")
	}
	return nil
}

func (h *PaymentHandler) fail(c *gin.Context, err error) {
	httperr.Respond(c, h.log, err, mapError)
}

// Submit handles POST /payments. It is public: a pending user cannot log in
// yet and identifies the account by email.
func (h *PaymentHandler) Submit(c *gin.Context) {
	var req dto.SubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	p, err := h.payments.Submit(c.Request.Context(), usecase.SubmitInput{
		Email:  req.Email,
		Method: authentity.PaymentMethod(req.Method),
		Proof:  req.Proof,
	})
	if err != nil {
		h.log.Info("payment rejected", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPaymentRes(p))
}

// Mine handles GET /me/payments.
func (h *PaymentHandler) Mine(c *gin.Context) {
	u, _ := authmw.CurrentUser(c)
	ps, err := h.payments.ByUser(c.Request.Context(), u.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaymentList(ps))
}

// List handles GET /admin/payments?status=pending.
func (h *PaymentHandler) List(c *gin.Context) {
	var (
		ps  []entity.Payment
		err error
	)
	switch c.Query("status") {
	case "":
		ps, err = h.payments.All(c.Request.Context())
	case string(entity.StatePending):
		ps, err = h.payments.Pending(c.Request.Context())
	default:
		h.fail(c, httperr.New(http.StatusBadRequest, "only status=pending is supported", "INVALID_REQUEST"))
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AdminList(ps))
}

// Get handles GET /admin/payments/:id, proof included.
func (h *PaymentHandler) Get(c *gin.Context) {
	p, err := h.payments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Confirm handles POST /admin/payments/:id/confirm.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	admin, _ := authmw.CurrentUser(c)
	p, err := h.payments.Confirm(c.Request.Context(), c.Param("id"), admin.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Reject handles POST /admin/payments/:id/reject.
func (h *PaymentHandler) Reject(c *gin.Context) {
	admin, _ := authmw.CurrentUser(c)
	p, err := h.payments.Reject(c.Request.Context(), c.Param("id"), admin.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
