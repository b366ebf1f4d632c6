package event

import "context"

// Repository is append-only by design: there is no update or delete path
// anywhere in the module.
type Repository interface {
	Create(ctx context.Context, e *DealEvent) error
	ListByDealID(ctx context.Context, dealID string) ([]DealEvent, error)
	ListVisibleByDealID(ctx context.Context, dealID string, visibilities []Visibility) ([]DealEvent, error)
}
