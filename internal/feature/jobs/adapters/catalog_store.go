package adapters

import (
	"context"
	"errors"

	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/feature/jobs/usecase"
	"jobboard_backend/internal/platform/kv"
	"jobboard_backend/internal/platform/recordstore"
)

const (
	CategoriesKey = "categories"
	CompaniesKey  = "companies"
	StatsKey      = "stats"
)

var errNoMatch = errors.New("no matching record")

// CategoryStore keeps all categories in one collection.
type CategoryStore struct {
	c *recordstore.Collection[entity.Category]
}

var _ usecase.CategoryRepository = (*CategoryStore)(nil)

// NewCategoryStore returns a category collection stored under namespace.
func NewCategoryStore(store kv.Store, namespace string, opts ...recordstore.Option) *CategoryStore {
	return &CategoryStore{
		c: recordstore.NewCollection(store, namespace+CategoriesKey, func(c entity.Category) string { return c.ID }, opts...),
	}
}

// Collection exposes the underlying collection for seeding.
func (s *CategoryStore) Collection() *recordstore.Collection[entity.Category] {
	return s.c
}

// All returns every category.
func (s *CategoryStore) All(ctx context.Context) ([]entity.Category, error) {
	return s.c.All(ctx)
}

// GetByName returns the category with the given name.
func (s *CategoryStore) GetByName(ctx context.Context, name string) (entity.Category, bool, error) {
	return s.c.Find(ctx, func(c entity.Category) bool { return c.Name == name })
}

// Create appends c.
func (s *CategoryStore) Create(ctx context.Context, c entity.Category) (entity.Category, error) {
	return s.c.Create(ctx, c)
}

// Update applies mutate to the category with id.
func (s *CategoryStore) Update(ctx context.Context, id string, mutate func(*entity.Category)) (entity.Category, bool, error) {
	return s.c.Update(ctx, id, mutate)
}

// Delete removes the category with id.
func (s *CategoryStore) Delete(ctx context.Context, id string) (bool, error) {
	return s.c.Delete(ctx, id)
}

// UpdateJobCount adds delta to the first category with the given name and
// clamps the result at zero. Nothing is written when no category matches.
func (s *CategoryStore) UpdateJobCount(ctx context.Context, name string, delta int) (entity.Category, bool, error) {
	var updated entity.Category
	_, err := s.c.Modify(ctx, func(cats []entity.Category) ([]entity.Category, error) {
		for i := range cats {
			if cats[i].Name == name {
				cats[i].JobCount = max(0, cats[i].JobCount+delta)
				updated = cats[i]
				return cats, nil
			}
		}
		return nil, errNoMatch
	})
	if errors.Is(err, errNoMatch) {
		return entity.Category{}, false, nil
	}
	if err != nil {
		return entity.Category{}, false, err
	}
	return updated, true, nil
}

// CompanyStore keeps all companies in one collection.
type CompanyStore struct {
	c *recordstore.Collection[entity.Company]
}

var _ usecase.CompanyRepository = (*CompanyStore)(nil)

// NewCompanyStore returns a company collection stored under namespace.
func NewCompanyStore(store kv.Store, namespace string, opts ...recordstore.Option) *CompanyStore {
	return &CompanyStore{
		c: recordstore.NewCollection(store, namespace+CompaniesKey, func(c entity.Company) string { return c.ID }, opts...),
	}
}

// Collection exposes the underlying collection for seeding.
func (s *CompanyStore) Collection() *recordstore.Collection[entity.Company] {
	return s.c
}

// All returns every company.
func (s *CompanyStore) All(ctx context.Context) ([]entity.Company, error) {
	return s.c.All(ctx)
}

// Get returns the company with id.
func (s *CompanyStore) Get(ctx context.Context, id string) (entity.Company, bool, error) {
	return s.c.Get(ctx, id)
}

// GetByName matches Job.Company against Company.Name exactly.
func (s *CompanyStore) GetByName(ctx context.Context, name string) (entity.Company, bool, error) {
	return s.c.Find(ctx, func(c entity.Company) bool { return c.Name == name })
}

// Create appends c.
func (s *CompanyStore) Create(ctx context.Context, c entity.Company) (entity.Company, error) {
	return s.c.Create(ctx, c)
}

// Update applies mutate to the company with id.
func (s *CompanyStore) Update(ctx context.Context, id string, mutate func(*entity.Company)) (entity.Company, bool, error) {
	return s.c.Update(ctx, id, mutate)
}

// Delete removes the company with id.
func (s *CompanyStore) Delete(ctx context.Context, id string) (bool, error) {
	return s.c.Delete(ctx, id)
}

// StatsStore keeps the single stats object.
type StatsStore struct {
	s *recordstore.Slot[entity.Stats]
}

var _ usecase.StatsRepository = (*StatsStore)(nil)

// NewStatsStore returns the stats slot stored under namespace.
func NewStatsStore(store kv.Store, namespace string, opts ...recordstore.Option) *StatsStore {
	return &StatsStore{s: recordstore.NewSlot[entity.Stats](store, namespace+StatsKey, opts...)}
}

// Slot exposes the underlying slot for seeding.
func (s *StatsStore) Slot() *recordstore.Slot[entity.Stats] {
	return s.s
}

// Get returns the stored stats, zero when absent.
func (s *StatsStore) Get(ctx context.Context) (entity.Stats, error) {
	st, _, err := s.s.Load(ctx)
	return st, err
}

// Update merges p into the stored stats.
func (s *StatsStore) Update(ctx context.Context, p entity.StatsPatch) (entity.Stats, error) {
	return s.s.Modify(ctx, func(cur *entity.Stats, _ bool) error {
		p.Apply(cur)
		return nil
	})
}

// Increment adds delta to one counter. The read and the write are one
// compare-and-set cycle.
func (s *StatsStore) Increment(ctx context.Context, key entity.StatKey, delta int) (entity.Stats, error) {
	return s.s.Modify(ctx, func(cur *entity.Stats, _ bool) error {
		f := cur.Field(key)
		if f == nil {
			return usecase.ErrUnknownStat
		}
		*f += delta
		return nil
	})
}
