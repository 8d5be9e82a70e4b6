package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TableName is the table GormKV keeps its documents in.
const TableName = "kv_entries"

// KVEntry is one stored document.
type KVEntry struct {
	Key       string         `gorm:"column:key;primaryKey;size:191"`
	Value     datatypes.JSON `gorm:"column:value"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

// TableName implements gorm's Tabler.
func (KVEntry) TableName() string { return TableName }

// GormKV stores documents in a relational database.
type GormKV struct {
	db *gorm.DB
}

// NewGormKV wraps an open connection. Call Migrate before first use.
func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

// DB exposes the underlying connection.
func (s *GormKV) DB() *gorm.DB { return s.db }

// Migrate creates or updates the kv_entries table.
func (s *GormKV) Migrate() error {
	if err := s.db.AutoMigrate(&KVEntry{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", TableName, err)
	}
	return nil
}

func (s *GormKV) Get(ctx context.Context, key string) ([]byte, error) {
	var row KVEntry
	err := s.db.WithContext(ctx).Where(keyIs(key)).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return []byte(row.Value), nil
}

func (s *GormKV) Set(ctx context.Context, key string, value []byte) error {
	row := KVEntry{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *GormKV) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where(keyIs(key)).Delete(&KVEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (s *GormKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func keyIs(key string) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}
