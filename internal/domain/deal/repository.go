package deal

import "context"

type Repository interface {
	Create(ctx context.Context, d *Deal) error
	GetByDealID(ctx context.Context, dealID string) (*Deal, error)
	// GetByDealIDForUpdate locks the row for the duration of the surrounding
	// transaction so concurrent stage changes serialize.
	GetByDealIDForUpdate(ctx context.Context, dealID string) (*Deal, error)
	GetByAccessToken(ctx context.Context, token string) (*Deal, error)
	ReferenceNumberExists(ctx context.Context, ref string) (bool, error)
	Save(ctx context.Context, d *Deal) error
	ListByPartnerID(ctx context.Context, partnerID string) ([]Deal, error)
}

type BorrowerRepository interface {
	Create(ctx context.Context, b *Borrower) error
	GetByBorrowerID(ctx context.Context, borrowerID string) (*Borrower, error)
}
