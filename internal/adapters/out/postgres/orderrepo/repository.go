package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes a concurrent writer can cause.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
// db is either the transaction of a unit of work or a plain connection for reads.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with all of its KOT lines and items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translate(err, aggregate.ID(), aggregate.Version())
	}

	return nil
}

// Update writes the order row guarded by its version and inserts the KOT lines
// that are not stored yet. Stored lines are never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	id := aggregate.ID().String()
	expected := aggregate.Version()

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", id, expected).
		Updates(map[string]any{
			"table_number": aggregate.TableNumber(),
			"status":       aggregate.Status().String(),
			"updated_at":   aggregate.UpdatedAt(),
			"paid_at":      aggregate.PaidAt(),
			"version":      expected + 1,
		})
	if result.Error != nil {
		return translate(result.Error, aggregate.ID(), expected)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&OrderDTO{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", id)
		}
		return errs.NewVersionConflictError("order", id, expected)
	}

	var stored int64
	if err := db.Model(&KotLineDTO{}).Where("order_id = ?", id).Count(&stored).Error; err != nil {
		return err
	}

	lines := aggregate.KotLines()
	if int(stored) > len(lines) {
		return fmt.Errorf("order %s has %d stored KOT lines but only %d in memory", id, stored, len(lines))
	}
	if fresh := kotLinesFromDomain(id, lines[stored:], int(stored)); len(fresh) > 0 {
		if err := db.Create(&fresh).Error; err != nil {
			return translate(err, aggregate.ID(), expected)
		}
	}

	aggregate.AdvanceVersion()
	return nil
}

// Get retrieves an order by ID with its lines and items in position order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// List retrieves all orders, newest first.
func (r *GormOrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.preloaded(ctx).Order("created_at DESC").Order("id DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Delete removes the order, its lines and their items.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	lineIDs := db.Model(&KotLineDTO{}).Select("id").Where("order_id = ?", id.String())

	if err := db.Where("kot_line_id IN (?)", lineIDs).Delete(&KotLineItemDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", id.String()).Delete(&KotLineDTO{}).Error; err != nil {
		return err
	}

	result := db.Where("id = ?", id.String()).Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("KotLines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("KotLines.Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}

// translate turns write conflicts into VersionConflictError so that the use case
// retries them; everything else is returned unchanged.
func translate(err error, id kernel.OrderID, expected int) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewVersionConflictError("order", id.String(), expected)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgSerializationFailure, pgDeadlockDetected:
			return errs.NewVersionConflictError("order", id.String(), expected)
		}
	}

	return err
}
