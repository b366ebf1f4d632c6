package mysql

import (
	"context"

	"gorm.io/gorm"

	eventDomain "loanflow-backend/internal/domain/event"
)

// EventRepository is append-only: rows are inserted and read, never updated
// or deleted. Ordering by (created_at, id) defines the timeline.
type EventRepository struct{ db *gorm.DB }

func NewEventRepository(db *gorm.DB) *EventRepository { return &EventRepository{db: db} }

func (r *EventRepository) Create(ctx context.Context, e *eventDomain.DealEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepository) ListByDealID(ctx context.Context, dealID string) ([]eventDomain.DealEvent, error) {
	var out []eventDomain.DealEvent
	res := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *EventRepository) ListVisibleByDealID(ctx context.Context, dealID string, vis []eventDomain.Visibility) ([]eventDomain.DealEvent, error) {
	var out []eventDomain.DealEvent
	res := r.db.WithContext(ctx).
		Where("deal_id = ? AND visibility IN ?", dealID, vis).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
