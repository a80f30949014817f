// Package entity defines the domain entities for the auth feature.
package entity

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserStatus gates authentication. Only active users can log in.
type UserStatus string

const (
	StatusPending   UserStatus = "pending"
	StatusActive    UserStatus = "active"
	StatusSuspended UserStatus = "suspended"
)

// PaymentStatus tracks the registration fee independently of UserStatus.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentConfirmed PaymentStatus = "confirmed"
)

type PaymentMethod string

const (
	MethodPayPal PaymentMethod = "paypal"
	MethodAlipay PaymentMethod = "alipay"
	MethodWeChat PaymentMethod = "wechat"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodPayPal, MethodAlipay, MethodWeChat:
		return true
	}
	return false
}

// User represents a registered account.
// PasswordHash holds a bcrypt hash and is never rendered by the HTTP layer.
type User struct {
	ID            string        `json:"id"`
	Email         string        `json:"email"`
	PasswordHash  string        `json:"passwordHash"`
	FullName      string        `json:"fullName"`
	Phone         string        `json:"phone,omitempty"`
	Avatar        string        `json:"avatar,omitempty"`
	Role          Role          `json:"role"`
	Status        UserStatus    `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	PaymentProof  string        `json:"paymentProof,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// IsAdmin reports whether u has the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsActive reports whether u may sign in.
func (u User) IsActive() bool { return u.Status == StatusActive }

// UserPatch is a partial update. Nil fields are left untouched.
// Role and status change only through admin transitions.
type UserPatch struct {
	FullName     *string
	Phone        *string
	Avatar       *string
	PasswordHash *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.FullName == nil && p.Phone == nil && p.Avatar == nil && p.PasswordHash == nil
}

// Apply merges the patch into u and stamps UpdatedAt.
func (p UserPatch) Apply(u *User, now time.Time) {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	u.UpdatedAt = now
}
