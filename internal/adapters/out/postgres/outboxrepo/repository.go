// Package outboxrepo persists the order event log.
//
// Seq is assigned by the database on insert and is the cursor observers use to
// catch up, so rows must become visible in seq order. On PostgreSQL, Append takes
// a transaction-scoped advisory lock before inserting: a second appender waits
// until the first transaction commits or rolls back, and a reader can never see
// seq N+1 while seq N is still pending. SQLite allows a single writer, which
// gives the same order. The relay marks rows published once the broker confirms them.
package outboxrepo

import (
	"context"
	"time"

	"cafe/internal/core/domain/model/event"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// appendLockKey identifies the advisory lock that orders outbox inserts.
const appendLockKey int64 = 0x6f7574626f78

type EventDTO struct {
	Seq         int64          `gorm:"primaryKey;autoIncrement"`
	ID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Name        string         `gorm:"not null;size:32"`
	OrderID     string         `gorm:"not null;size:32;index"`
	Payload     datatypes.JSON `gorm:"not null"`
	OccurredAt  time.Time      `gorm:"not null"`
	PublishedAt *time.Time     `gorm:"index"`
}

func (EventDTO) TableName() string {
	return "outbox_events"
}

func fromDomain(e event.Event) EventDTO {
	return EventDTO{
		Seq:         e.Seq,
		ID:          e.ID,
		Name:        string(e.Name),
		OrderID:     e.OrderID.String(),
		Payload:     datatypes.JSON(e.Payload),
		OccurredAt:  e.OccurredAt,
		PublishedAt: e.PublishedAt,
	}
}

func toDomain(dto EventDTO) (event.Event, error) {
	id, err := kernel.ParseOrderID(dto.OrderID)
	if err != nil {
		return event.Event{}, err
	}

	var publishedAt *time.Time
	if dto.PublishedAt != nil {
		p := dto.PublishedAt.UTC()
		publishedAt = &p
	}

	return event.Event{
		ID:          dto.ID,
		Seq:         dto.Seq,
		Name:        event.Name(dto.Name),
		OrderID:     id,
		Payload:     []byte(dto.Payload),
		OccurredAt:  dto.OccurredAt.UTC(),
		PublishedAt: publishedAt,
	}, nil
}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append inserts the event and returns it with the assigned Seq. Inside a
// transaction the append lock is held until commit, so Append should be the
// last write before Commit.
func (r *GormOutboxRepository) Append(ctx context.Context, e event.Event) (event.Event, error) {
	if err := e.Name.Validate(); err != nil {
		return event.Event{}, err
	}
	if e.ID == uuid.Nil {
		return event.Event{}, errs.NewValueIsRequiredError("event id")
	}

	db := r.db.WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("SELECT pg_advisory_xact_lock(?)", appendLockKey).Error; err != nil {
			return event.Event{}, err
		}
	}

	dto := fromDomain(e)
	dto.Seq = 0
	if err := db.Create(&dto).Error; err != nil {
		return event.Event{}, err
	}

	e.Seq = dto.Seq
	return e, nil
}

func (r *GormOutboxRepository) ListAfter(ctx context.Context, after int64, limit int) ([]event.Event, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("seq > ?", after).
		Order("seq").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// ListUnpublished locks the returned rows on PostgreSQL so that two relays
// never publish the same batch.
func (r *GormOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]event.Event, error) {
	query := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("seq").
		Limit(limit)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
	}

	var dtos []EventDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("id = ?", id).
		Update("published_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("event", id)
	}
	return nil
}

func toDomainList(dtos []EventDTO) ([]event.Event, error) {
	events := make([]event.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
