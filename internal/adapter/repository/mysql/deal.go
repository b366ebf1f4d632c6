package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dealDomain "loanflow-backend/internal/domain/deal"
)

type DealRepository struct{ db *gorm.DB }

func NewDealRepository(db *gorm.DB) *DealRepository { return &DealRepository{db: db} }

func (r *DealRepository) Create(ctx context.Context, d *dealDomain.Deal) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DealRepository) Save(ctx context.Context, d *dealDomain.Deal) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DealRepository) GetByDealID(ctx context.Context, dealID string) (*dealDomain.Deal, error) {
	var out dealDomain.Deal
	res := r.db.WithContext(ctx).Where("deal_id = ?", dealID).First(&out)
	return &out, res.Error
}

// GetByDealIDForUpdate locks the row for the life of the surrounding
// transaction. Callers must already be inside one.
func (r *DealRepository) GetByDealIDForUpdate(ctx context.Context, dealID string) (*dealDomain.Deal, error) {
	var out dealDomain.Deal
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("deal_id = ?", dealID).
		First(&out)
	return &out, res.Error
}

func (r *DealRepository) GetByAccessToken(ctx context.Context, token string) (*dealDomain.Deal, error) {
	var out dealDomain.Deal
	res := r.db.WithContext(ctx).Where("borrower_access_token = ?", token).First(&out)
	return &out, res.Error
}

func (r *DealRepository) ReferenceNumberExists(ctx context.Context, ref string) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&dealDomain.Deal{}).
		Where("reference_number = ?", ref).
		Count(&n)
	return n > 0, res.Error
}

func (r *DealRepository) ListByPartnerID(ctx context.Context, partnerID string) ([]dealDomain.Deal, error) {
	var out []dealDomain.Deal
	res := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

type BorrowerRepository struct{ db *gorm.DB }

func NewBorrowerRepository(db *gorm.DB) *BorrowerRepository { return &BorrowerRepository{db: db} }

func (r *BorrowerRepository) Create(ctx context.Context, b *dealDomain.Borrower) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BorrowerRepository) GetByBorrowerID(ctx context.Context, borrowerID string) (*dealDomain.Borrower, error) {
	var out dealDomain.Borrower
	res := r.db.WithContext(ctx).Where("borrower_id = ?", borrowerID).First(&out)
	return &out, res.Error
}
