package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard_backend/internal/feature/applications/domain/entity"
	authentity "jobboard_backend/internal/feature/auth/domain/entity"
	jobentity "jobboard_backend/internal/feature/jobs/domain/entity"
)

// mockApplicationRepository is a mock implementation of ApplicationRepository.
type mockApplicationRepository struct {
	CreateFunc       func(a entity.Application) (entity.Application, error)
	UpdateStatusFunc func(id string, status entity.ApplicationStatus, now time.Time) (entity.Application, bool, error)
	created          []entity.Application
}

func (m *mockApplicationRepository) All(ctx context.Context) ([]entity.Application, error) {
	return m.created, nil
}

func (m *mockApplicationRepository) ByUser(ctx context.Context, userID string) ([]entity.Application, error) {
	return nil, nil
}

func (m *mockApplicationRepository) ByJob(ctx context.Context, jobID string) ([]entity.Application, error) {
	return nil, nil
}

func (m *mockApplicationRepository) HasApplied(ctx context.Context, userID, jobID string) (bool, error) {
	return false, nil
}

func (m *mockApplicationRepository) Create(ctx context.Context, a entity.Application) (entity.Application, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(a)
	}
	m.created = append(m.created, a)
	return a, nil
}

func (m *mockApplicationRepository) UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus, now time.Time) (entity.Application, bool, error) {
	return m.UpdateStatusFunc(id, status, now)
}

type mockUsers map[string]authentity.User

func (m mockUsers) Get(ctx context.Context, id string) (authentity.User, bool, error) {
	u, ok := m[id]
	return u, ok, nil
}

type mockJobs map[string]jobentity.Job

func (m mockJobs) Get(ctx context.Context, id string) (jobentity.Job, bool, error) {
	j, ok := m[id]
	return j, ok, nil
}

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestUsecase(repo *mockApplicationRepository) *applicationUsecase {
	users := mockUsers{
		"user-active":    {ID: "user-active", Status: authentity.StatusActive},
		"user-pending":   {ID: "user-pending", Status: authentity.StatusPending},
		"user-suspended": {ID: "user-suspended", Status: authentity.StatusSuspended},
	}
	jobs := mockJobs{
		"job-001": {ID: "job-001", Status: jobentity.JobActive},
		"job-old": {ID: "job-old", Status: jobentity.JobClosed},
	}
	uc := NewApplicationUsecase(repo, users, jobs, nil)
	uc.now = func() time.Time { return testNow }
	return uc
}

func TestApplicationUsecase_Apply(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		jobID   string
		repoErr error
		wantErr error
	}{
		{"active user, active job", "user-active", "job-001", nil, nil},
		{"pending user", "user-pending", "job-001", nil, ErrAccountNotActive},
		{"suspended user", "user-suspended", "job-001", nil, ErrAccountNotActive},
		{"deleted user", "user-gone", "job-001", nil, ErrAccountNotActive},
		{"unknown job", "user-active", "job-404", nil, ErrJobNotFound},
		{"closed job", "user-active", "job-old", nil, ErrJobClosed},
		{"second application", "user-active", "job-001", ErrAlreadyApplied, ErrAlreadyApplied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockApplicationRepository{}
			if tt.repoErr != nil {
				repo.CreateFunc = func(a entity.Application) (entity.Application, error) { return entity.Application{}, tt.repoErr }
			}
			uc := newTestUsecase(repo)

			a, err := uc.Apply(context.Background(), tt.userID, tt.jobID, ApplyInput{Resume: "cv.pdf", CoverLetter: "hi"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.created)
				return
			}
			require.NoError(t, err)
			assert.Regexp(t, `^app-\d+-[0-9a-f]{9}$`, a.ID)
			assert.Equal(t, entity.StatusPending, a.Status)
			assert.Equal(t, "cv.pdf", a.Resume)
			assert.Equal(t, testNow, a.CreatedAt)
			assert.Len(t, repo.created, 1)
		})
	}
}

func TestApplicationUsecase_SetStatus(t *testing.T) {
	repo := &mockApplicationRepository{UpdateStatusFunc: func(id string, status entity.ApplicationStatus, now time.Time) (entity.Application, bool, error) {
		if id != "app-1" {
			return entity.Application{}, false, nil
		}
		return entity.Application{ID: id, Status: status, UpdatedAt: now}, true, nil
	}}
	uc := newTestUsecase(repo)
	ctx := context.Background()

	a, err := uc.SetStatus(ctx, "app-1", entity.StatusHired)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusHired, a.Status)
	assert.Equal(t, testNow, a.UpdatedAt)

	_, err = uc.SetStatus(ctx, "app-1", "ghosted")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.SetStatus(ctx, "app-2", entity.StatusRejected)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}
