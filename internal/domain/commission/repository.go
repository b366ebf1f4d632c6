package commission

import "context"

type Repository interface {
	Create(ctx context.Context, c *Commission) error
	GetByDealID(ctx context.Context, dealID string) (*Commission, error)
	GetByCommissionID(ctx context.Context, commissionID string) (*Commission, error)
	Save(ctx context.Context, c *Commission) error
	ListByPartnerID(ctx context.Context, partnerID string) ([]Commission, error)
	ListAll(ctx context.Context) ([]Commission, error)
}
