// Package counterrepo stores the per-day order sequence.
package counterrepo

import (
	"context"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"

	"gorm.io/gorm"
)

// CounterDTO is one row per business date. Date is the compact YYYYMMDD form.
type CounterDTO struct {
	Date string `gorm:"column:date;primaryKey;size:8"`
	Seq  int    `gorm:"not null"`
}

func (CounterDTO) TableName() string {
	return "counters"
}

// incrementSQL is a single statement so that the row lock taken by the upsert
// serializes concurrent callers for the same date. PostgreSQL and SQLite both
// accept it.
const incrementSQL = `INSERT INTO counters ("date", seq) VALUES (?, 1)
ON CONFLICT ("date") DO UPDATE SET seq = counters.seq + 1
RETURNING seq`

type GormCounterRepository struct {
	db *gorm.DB
}

func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// Increment returns the next sequence value for date, starting at 1.
func (r *GormCounterRepository) Increment(ctx context.Context, date kernel.BusinessDate) (int, error) {
	if date.IsZero() {
		return 0, errs.NewValueIsRequiredError("date")
	}

	var seq int
	if err := r.db.WithContext(ctx).Raw(incrementSQL, date.String()).Scan(&seq).Error; err != nil {
		return 0, err
	}
	return seq, nil
}
