package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/platform/recordstore"
)

// catalogUsecase serves categories, companies and the site stats.
type catalogUsecase struct {
	categories CategoryRepository
	companies  CompanyRepository
	stats      StatsRepository
	log        *zap.Logger
}

// NewCatalogUsecase wires the category, company and stats repositories.
func NewCatalogUsecase(categories CategoryRepository, companies CompanyRepository, stats StatsRepository, l *zap.Logger) *catalogUsecase {
	if l == nil {
		l = zap.NewNop()
	}
	return &catalogUsecase{categories: categories, companies: companies, stats: stats, log: l}
}

// Categories returns every stored category.
func (u *catalogUsecase) Categories(ctx context.Context) ([]entity.Category, error) {
	return u.categories.All(ctx)
}

// CreateCategory validates c and stores it under a fresh id.
func (u *catalogUsecase) CreateCategory(ctx context.Context, c entity.Category) (entity.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return entity.Category{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if c.JobCount < 0 {
		return entity.Category{}, fmt.Errorf("%w: jobCount", ErrInvalidInput)
	}
	c.ID = recordstore.NewID("cat-")
	return u.categories.Create(ctx, c)
}

// UpdateCategory merges p into the category.
func (u *catalogUsecase) UpdateCategory(ctx context.Context, id string, p entity.CategoryPatch) (entity.Category, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return entity.Category{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if p.JobCount != nil && *p.JobCount < 0 {
		return entity.Category{}, fmt.Errorf("%w: jobCount", ErrInvalidInput)
	}
	c, ok, err := u.categories.Update(ctx, id, p.Apply)
	if err != nil {
		return entity.Category{}, err
	}
	if !ok {
		return entity.Category{}, ErrCategoryNotFound
	}
	return c, nil
}

// DeleteCategory removes the category or returns ErrCategoryNotFound.
func (u *catalogUsecase) DeleteCategory(ctx context.Context, id string) error {
	ok, err := u.categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

// AdjustCategoryJobCount adds delta to the named category's job count.
// The count never drops below zero.
func (u *catalogUsecase) AdjustCategoryJobCount(ctx context.Context, name string, delta int) (entity.Category, error) {
	c, ok, err := u.categories.UpdateJobCount(ctx, name, delta)
	if err != nil {
		return entity.Category{}, err
	}
	if !ok {
		return entity.Category{}, ErrCategoryNotFound
	}
	return c, nil
}

// Companies returns the stored companies, at most limit when limit > 0.
func (u *catalogUsecase) Companies(ctx context.Context, limit int) ([]entity.Company, error) {
	cs, err := u.companies.All(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(cs) > limit {
		cs = cs[:limit]
	}
	return cs, nil
}

func validateCompany(c entity.Company) error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case !c.Size.Valid():
		return fmt.Errorf("%w: size", ErrInvalidInput)
	case c.OpenPositions < 0:
		return fmt.Errorf("%w: openPositions", ErrInvalidInput)
	}
	return nil
}

// CreateCompany validates c and stores it under a fresh id.
func (u *catalogUsecase) CreateCompany(ctx context.Context, c entity.Company) (entity.Company, error) {
	if err := validateCompany(c); err != nil {
		return entity.Company{}, err
	}
	c.ID = recordstore.NewID("comp-")
	return u.companies.Create(ctx, c)
}

// UpdateCompany merges p into the company after validating the merge
// against a snapshot.
func (u *catalogUsecase) UpdateCompany(ctx context.Context, id string, p entity.CompanyPatch) (entity.Company, error) {
	cur, ok, err := u.companies.Get(ctx, id)
	if err != nil {
		return entity.Company{}, err
	}
	if !ok {
		return entity.Company{}, ErrCompanyNotFound
	}
	p.Apply(&cur)
	if err := validateCompany(cur); err != nil {
		return entity.Company{}, err
	}

	var invalid error
	c, ok, err := u.companies.Update(ctx, id, func(cur *entity.Company) {
		next := *cur
		p.Apply(&next)
		if invalid = validateCompany(next); invalid == nil {
			*cur = next
		}
	})
	if err != nil {
		return entity.Company{}, err
	}
	if !ok {
		return entity.Company{}, ErrCompanyNotFound
	}
	if invalid != nil {
		return entity.Company{}, invalid
	}
	return c, nil
}

// DeleteCompany removes the company or returns ErrCompanyNotFound.
func (u *catalogUsecase) DeleteCompany(ctx context.Context, id string) error {
	ok, err := u.companies.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCompanyNotFound
	}
	return nil
}

// Stats returns the site-wide counters.
func (u *catalogUsecase) Stats(ctx context.Context) (entity.Stats, error) {
	return u.stats.Get(ctx)
}

// UpdateStats overwrites the counters set in p.
func (u *catalogUsecase) UpdateStats(ctx context.Context, p entity.StatsPatch) (entity.Stats, error) {
	return u.stats.Update(ctx, p)
}

// IncrementStat adds delta to one counter. A zero delta counts as one.
func (u *catalogUsecase) IncrementStat(ctx context.Context, key entity.StatKey, delta int) (entity.Stats, error) {
	if delta == 0 {
		delta = 1
	}
	var probe entity.Stats
	if probe.Field(key) == nil {
		return entity.Stats{}, fmt.Errorf("%w: %q", ErrUnknownStat, key)
	}
	return u.stats.Increment(ctx, key, delta)
}
