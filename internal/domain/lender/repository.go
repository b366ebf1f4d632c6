package lender

import "context"

type Repository interface {
	Create(ctx context.Context, l *Lender) error
	GetByLenderID(ctx context.Context, lenderID string) (*Lender, error)
	// GetByName matches the exact name case-insensitively, active or not.
	GetByName(ctx context.Context, name string) (*Lender, error)
	// ListActive returns active lenders, optionally filtered by a
	// case-insensitive substring match on name. nameQuery == "" means no filter.
	ListActive(ctx context.Context, nameQuery string) ([]Lender, error)
	CountActive(ctx context.Context) (int64, error)
	Save(ctx context.Context, l *Lender) error
}

type DealLenderRepository interface {
	// Upsert creates the (deal, lender) row or refreshes its status.
	// Reassigning the same lender is a status no-op; historical rows are
	// never removed.
	Upsert(ctx context.Context, dealID, lenderID string, status AssignmentStatus) error
	ListByDealID(ctx context.Context, dealID string) ([]DealLender, error)
}
