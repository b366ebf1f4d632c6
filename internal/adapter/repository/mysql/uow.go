package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	dealDomain "loanflow-backend/internal/domain/deal"
	"loanflow-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Deals:       &DealRepository{db: tx},
		Borrowers:   &BorrowerRepository{db: tx},
		Partners:    &PartnerRepository{db: tx},
		Commissions: &CommissionRepository{db: tx},
		Events:      &EventRepository{db: tx},
		Lenders:     &LenderRepository{db: tx},
		DealLenders: &DealLenderRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

// WithinDealTx locks the deal row up-front. Concurrent writers to the same
// deal serialize here; whoever arrives second re-reads the committed state
// and re-validates against it.
func (u *GormUoW) WithinDealTx(ctx context.Context, dealID string, fn func(r uow.Repos, d *dealDomain.Deal) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		d, err := r.Deals.GetByDealIDForUpdate(ctx, dealID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dealDomain.ErrNotFound
			}
			return err
		}
		return fn(r, d)
	})
}
