package dto

import (
	"time"

	"jobboard_backend/internal/feature/auth/domain/entity"
)

// UserRes is the public view of a user. The password hash and the payment
// proof are never rendered.
type UserRes struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	Phone         string    `json:"phone,omitempty"`
	Avatar        string    `json:"avatar,omitempty"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewUserRes converts an entity.User.
func NewUserRes(u entity.User) UserRes {
	return UserRes{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Phone:         u.Phone,
		Avatar:        u.Avatar,
		Role:          string(u.Role),
		Status:        string(u.Status),
		PaymentStatus: string(u.PaymentStatus),
		PaymentMethod: string(u.PaymentMethod),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// NewUserList converts a slice of users.
func NewUserList(users []entity.User) []UserRes {
	out := make([]UserRes, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserRes(u))
	}
	return out
}
