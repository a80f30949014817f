// Package dto defines data transfer objects for the payments feature's HTTP transport layer.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"jobboard_backend/internal/feature/payments/domain/entity"
)

// SubmitReq is the body of POST /payments. Proof is the uploaded image as a
// data URL.
type SubmitReq struct {
	Email  string `json:"email" binding:"required"`
	Method string `json:"method" binding:"required"`
	Proof  string `json:"proof" binding:"required"`
}

// PaymentRes is the applicant's view of a payment. The proof image is only
// rendered to admins.
type PaymentRes struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Method      string          `json:"method"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	ConfirmedAt *time.Time      `json:"confirmedAt,omitempty"`
}

// NewPaymentRes converts p for the wire.
func NewPaymentRes(p entity.Payment) PaymentRes {
	return PaymentRes{
		ID:          p.ID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Method:      string(p.Method),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		ConfirmedAt: p.ConfirmedAt,
	}
}

// NewPaymentList converts ps, rendering nil as [].
func NewPaymentList(ps []entity.Payment) []PaymentRes {
	out := make([]PaymentRes, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewPaymentRes(p))
	}
	return out
}

// AdminList renders nil as an empty list.
func AdminList(ps []entity.Payment) []entity.Payment {
	if ps == nil {
		return []entity.Payment{}
	}
	return ps
}
