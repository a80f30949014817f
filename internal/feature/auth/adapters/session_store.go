package adapters

import (
	"context"
	"errors"
	"time"

	"jobboard_backend/internal/feature/auth/domain/entity"
	"jobboard_backend/internal/feature/auth/usecase"
	"jobboard_backend/internal/platform/kv"
	"jobboard_backend/internal/platform/recordstore"
)

// SessionKeyPrefix is joined with the namespace and the session id.
const SessionKeyPrefix = "current_user:"

var errSessionGone = errors.New("session gone")

// SessionStore keeps each session in its own slot, so logging one session
// out never touches another.
type SessionStore struct {
	store     kv.Store
	namespace string
	opts      []recordstore.Option
}

var _ usecase.SessionRepository = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore.
func NewSessionStore(store kv.Store, namespace string, opts ...recordstore.Option) *SessionStore {
	return &SessionStore{store: store, namespace: namespace, opts: opts}
}

func (s *SessionStore) slot(id string) *recordstore.Slot[entity.Session] {
	return recordstore.NewSlot[entity.Session](s.store, s.namespace+SessionKeyPrefix+id, s.opts...)
}

// Create stores sess under its id.
func (s *SessionStore) Create(ctx context.Context, sess entity.Session) error {
	return s.slot(sess.ID).Store(ctx, sess)
}

// Get returns the session with id.
func (s *SessionStore) Get(ctx context.Context, id string) (entity.Session, bool, error) {
	return s.slot(id).Load(ctx)
}

// Touch stamps LastValidatedAt without recreating a session that was
// deleted concurrently.
func (s *SessionStore) Touch(ctx context.Context, id string, at time.Time) (bool, error) {
	_, err := s.slot(id).Modify(ctx, func(cur *entity.Session, exists bool) error {
		if !exists {
			return errSessionGone
		}
		cur.LastValidatedAt = at
		return nil
	})
	if errors.Is(err, errSessionGone) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the session with id.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.slot(id).Clear(ctx)
}
