package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecotrivia/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gorm stores records in a SQL table. A SQLite file shared by several
// processes works the same way a Postgres database does.
type Gorm struct {
	db *gorm.DB
}

// NewGorm wraps an opened and migrated database.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) Get(ctx context.Context, key string) (Entry, error) {
	var rec models.Record
	if err := g.db.WithContext(ctx).First(&rec, "record_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return Entry{Value: rec.Value, Revision: rec.Revision}, nil
}

// unconditionalAttempts bounds the retries of an AnyRevision write racing other writers.
const unconditionalAttempts = 5

func (g *Gorm) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	if expected != AnyRevision {
		return g.put(ctx, key, value, expected)
	}
	var err error
	for range unconditionalAttempts {
		var next int64
		if next, err = g.put(ctx, key, value, AnyRevision); !errors.Is(err, ErrRevisionMismatch) {
			return next, err
		}
	}
	return 0, err
}

func (g *Gorm) put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	var next int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if expected == AnyRevision {
			var rec models.Record
			err := tx.First(&rec, "record_key = ?", key).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				expected = 0
			case err != nil:
				return err
			default:
				expected = rec.Revision
			}
		}

		next = expected + 1
		if expected == 0 {
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Record{
				Key:       key,
				Value:     value,
				Revision:  next,
				UpdatedAt: time.Now(),
			})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrRevisionMismatch
			}
			return nil
		}

		result := tx.Model(&models.Record{}).
			Where("record_key = ? AND revision = ?", key, expected).
			Updates(map[string]any{
				"value":      value,
				"revision":   next,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRevisionMismatch
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRevisionMismatch) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to write %s: %w", key, err)
	}
	return next, nil
}

func (g *Gorm) Delete(ctx context.Context, key string) error {
	if err := g.db.WithContext(ctx).Delete(&models.Record{}, "record_key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
