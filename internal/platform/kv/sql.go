package kv

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntryModel is the GORM model backing SQLStore.
type EntryModel struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:191"`
	Value     []byte    `gorm:"column:value"` // blob / longblob / bytea, stored verbatim
	Version   int64     `gorm:"column:version;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM.
func (EntryModel) TableName() string {
	return "kv_entries"
}

// SQLStore implements Store on any GORM dialect.
// Conditional writes are an UPDATE guarded by the expected version.
type SQLStore struct {
	db *gorm.DB
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore creates a new SQLStore using db.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates or updates the kv_entries table.
func (s *SQLStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&EntryModel{})
}

// Get loads the entry for key.
func (s *SQLStore) Get(ctx context.Context, key string) (Item, error) {
	var m EntryModel
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return Item{Value: m.Value, Version: m.Version}, nil
}

// Set writes value unconditionally inside a transaction.
func (s *SQLStore) Set(ctx context.Context, key string, value []byte) (int64, error) {
	var next int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m EntryModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("entry_key = ?", key).First(&m).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			next = 1
			return tx.Create(&EntryModel{Key: key, Value: value, Version: next}).Error
		case err != nil:
			return err
		}
		next = m.Version + 1
		return tx.Model(&EntryModel{}).Where("entry_key = ?", key).Updates(map[string]any{
			"value":      value,
			"version":    next,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// CompareAndSet inserts the entry when version is 0, otherwise updates it
// only where the stored version matches.
func (s *SQLStore) CompareAndSet(ctx context.Context, key string, value []byte, version int64) (int64, error) {
	db := s.db.WithContext(ctx)
	next := version + 1

	if version == 0 {
		res := db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&EntryModel{Key: key, Value: value, Version: next})
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 0 {
			return 0, ErrVersionConflict
		}
		return next, nil
	}

	res := db.Model(&EntryModel{}).
		Where("entry_key = ? AND version = ?", key, version).
		Updates(map[string]any{
			"value":      value,
			"version":    next,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrVersionConflict
	}
	return next, nil
}

// Delete removes the entry for key.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&EntryModel{}).Error
}
