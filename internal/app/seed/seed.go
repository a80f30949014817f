// Package seed writes the default records into an empty backend.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	appadapters "jobboard_backend/internal/feature/applications/adapters"
	appentity "jobboard_backend/internal/feature/applications/domain/entity"
	authadapters "jobboard_backend/internal/feature/auth/adapters"
	authentity "jobboard_backend/internal/feature/auth/domain/entity"
	jobadapters "jobboard_backend/internal/feature/jobs/adapters"
	payadapters "jobboard_backend/internal/feature/payments/adapters"
	payentity "jobboard_backend/internal/feature/payments/domain/entity"
	"jobboard_backend/internal/platform/kv"
)

// Options controls the values that vary between runs.
type Options struct {
	Now  func() time.Time
	Hash func(password string) (string, error)
	Log  *zap.Logger
}

// Result lists the keys that were absent and have been written.
type Result struct {
	Written []string
}

func bcryptHash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type entry struct {
	key   string
	write func(ctx context.Context) (bool, error)
	clear func(ctx context.Context) error
}

func entries(store kv.Store, namespace string, now time.Time, adminHash func() (string, error)) []entry {
	users := authadapters.NewUserStore(store, namespace).Collection()
	jobs := jobadapters.NewJobStore(store, namespace).Collection()
	apps := appadapters.NewApplicationStore(store, namespace, nil, nil).Collection()
	pays := payadapters.NewPaymentStore(store, namespace, nil, nil).Collection()
	cats := jobadapters.NewCategoryStore(store, namespace).Collection()
	comps := jobadapters.NewCompanyStore(store, namespace).Collection()
	stats := jobadapters.NewStatsStore(store, namespace).Slot()

	return []entry{
		{users.Key(), func(ctx context.Context) (bool, error) {
			// Skip the bcrypt cost when the key already exists.
			if _, err := store.Get(ctx, users.Key()); !errors.Is(err, kv.ErrNotFound) {
				return false, err
			}
			hash, err := adminHash()
			if err != nil {
				return false, fmt.Errorf("hash admin password: %w", err)
			}
			return users.Seed(ctx, []authentity.User{adminUser(hash, now)})
		}, users.Clear},
		{jobs.Key(), func(ctx context.Context) (bool, error) {
			return jobs.Seed(ctx, defaultJobs(now))
		}, jobs.Clear},
		{apps.Key(), func(ctx context.Context) (bool, error) {
			return apps.Seed(ctx, []appentity.Application{})
		}, apps.Clear},
		{pays.Key(), func(ctx context.Context) (bool, error) {
			return pays.Seed(ctx, []payentity.Payment{})
		}, pays.Clear},
		{cats.Key(), func(ctx context.Context) (bool, error) {
			return cats.Seed(ctx, defaultCategories())
		}, cats.Clear},
		{comps.Key(), func(ctx context.Context) (bool, error) {
			return comps.Seed(ctx, defaultCompanies())
		}, comps.Clear},
		{stats.Key(), func(ctx context.Context) (bool, error) {
			return stats.Seed(ctx, defaultStats())
		}, stats.Clear},
	}
}

// Initialize writes the default content of every collection whose key is
// absent. Existing keys are never overwritten.
func Initialize(ctx context.Context, store kv.Store, namespace string, opts Options) (Result, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Hash == nil {
		opts.Hash = bcryptHash
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	now := opts.Now().UTC()
	adminHash := func() (string, error) { return opts.Hash(AdminPassword) }

	var res Result
	for _, e := range entries(store, namespace, now, adminHash) {
		wrote, err := e.write(ctx)
		if err != nil {
			return res, fmt.Errorf("seed %s: %w", e.key, err)
		}
		if wrote {
			res.Written = append(res.Written, e.key)
		}
	}
	opts.Log.Info("bootstrap finished", zap.Strings("written", res.Written))
	return res, nil
}

// Reset removes every collection, sessions excluded. Orphaned sessions fail
// revalidation once their user is gone.
func Reset(ctx context.Context, store kv.Store, namespace string) error {
	for _, e := range entries(store, namespace, time.Time{}, nil) {
		if err := e.clear(ctx); err != nil {
			return fmt.Errorf("clear %s: %w", e.key, err)
		}
	}
	return nil
}
