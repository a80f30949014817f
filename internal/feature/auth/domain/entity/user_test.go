package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserPatch_Apply(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	name := "New Name"
	u := User{ID: "user-1", Email: "a@b.co", FullName: "Old", Phone: "123", Role: RoleUser, Status: StatusActive}

	assert.False(t, UserPatch{FullName: &name}.Empty())
	UserPatch{FullName: &name}.Apply(&u, now)

	assert.Equal(t, "New Name", u.FullName)
	assert.Equal(t, "123", u.Phone, "untouched field is kept")
	assert.Equal(t, StatusActive, u.Status)
	assert.Equal(t, now, u.UpdatedAt)
	assert.True(t, UserPatch{}.Empty())
}

func TestSession_Timing(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Session{LastValidatedAt: t0, ExpiresAt: t0.Add(time.Hour)}

	tests := []struct {
		name      string
		now       time.Time
		interval  time.Duration
		wantExp   bool
		wantStale bool
	}{
		{"fresh", t0.Add(10 * time.Second), time.Minute, false, false},
		{"stale", t0.Add(2 * time.Minute), time.Minute, false, true},
		{"zero interval always stale", t0, 0, false, true},
		{"expired at boundary", t0.Add(time.Hour), time.Minute, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantExp, s.IsExpired(tt.now))
			assert.Equal(t, tt.wantStale, s.StaleAfter(tt.interval, tt.now))
		})
	}
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, MethodWeChat.Valid())
	assert.False(t, PaymentMethod("cash").Valid())
}
