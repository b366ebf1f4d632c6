package mysql

import (
	"context"

	"gorm.io/gorm"

	commissionDomain "loanflow-backend/internal/domain/commission"
)

type CommissionRepository struct{ db *gorm.DB }

func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

func (r *CommissionRepository) Create(ctx context.Context, c *commissionDomain.Commission) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommissionRepository) Save(ctx context.Context, c *commissionDomain.Commission) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CommissionRepository) GetByDealID(ctx context.Context, dealID string) (*commissionDomain.Commission, error) {
	var out commissionDomain.Commission
	res := r.db.WithContext(ctx).Where("deal_id = ?", dealID).First(&out)
	return &out, res.Error
}

func (r *CommissionRepository) GetByCommissionID(ctx context.Context, commissionID string) (*commissionDomain.Commission, error) {
	var out commissionDomain.Commission
	res := r.db.WithContext(ctx).Where("commission_id = ?", commissionID).First(&out)
	return &out, res.Error
}

func (r *CommissionRepository) ListByPartnerID(ctx context.Context, partnerID string) ([]commissionDomain.Commission, error) {
	var out []commissionDomain.Commission
	res := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *CommissionRepository) ListAll(ctx context.Context) ([]commissionDomain.Commission, error) {
	var out []commissionDomain.Commission
	res := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
