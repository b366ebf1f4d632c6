package mysql

import (
	"context"

	"gorm.io/gorm"

	partnerDomain "loanflow-backend/internal/domain/partner"
)

type PartnerRepository struct{ db *gorm.DB }

func NewPartnerRepository(db *gorm.DB) *PartnerRepository { return &PartnerRepository{db: db} }

func (r *PartnerRepository) Create(ctx context.Context, p *partnerDomain.Partner) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PartnerRepository) Save(ctx context.Context, p *partnerDomain.Partner) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PartnerRepository) GetByPartnerID(ctx context.Context, partnerID string) (*partnerDomain.Partner, error) {
	var out partnerDomain.Partner
	res := r.db.WithContext(ctx).Where("partner_id = ?", partnerID).First(&out)
	return &out, res.Error
}
