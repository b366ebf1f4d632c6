package mysql

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	lenderDomain "loanflow-backend/internal/domain/lender"
)

type LenderRepository struct{ db *gorm.DB }

func NewLenderRepository(db *gorm.DB) *LenderRepository { return &LenderRepository{db: db} }

func (r *LenderRepository) Create(ctx context.Context, l *lenderDomain.Lender) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LenderRepository) Save(ctx context.Context, l *lenderDomain.Lender) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LenderRepository) GetByLenderID(ctx context.Context, lenderID string) (*lenderDomain.Lender, error) {
	var out lenderDomain.Lender
	res := r.db.WithContext(ctx).Where("lender_id = ?", lenderID).First(&out)
	return &out, res.Error
}

func (r *LenderRepository) GetByName(ctx context.Context, name string) (*lenderDomain.Lender, error) {
	var out lenderDomain.Lender
	res := r.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(name)).First(&out)
	return &out, res.Error
}

func (r *LenderRepository) ListActive(ctx context.Context, nameQuery string) ([]lenderDomain.Lender, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if nameQuery != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(nameQuery)+"%")
	}
	var out []lenderDomain.Lender
	res := q.Order("name ASC").Find(&out)
	return out, res.Error
}

func (r *LenderRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&lenderDomain.Lender{}).
		Where("is_active = ?", true).
		Count(&n)
	return n, res.Error
}

type DealLenderRepository struct{ db *gorm.DB }

func NewDealLenderRepository(db *gorm.DB) *DealLenderRepository {
	return &DealLenderRepository{db: db}
}

// Upsert inserts the (deal, lender) pair or refreshes its status. The pair
// carries a unique index, so reassignment maps to an update.
func (r *DealLenderRepository) Upsert(ctx context.Context, dealID, lenderID string, status lenderDomain.AssignmentStatus) error {
	row := lenderDomain.DealLender{
		DealID:   dealID,
		LenderID: lenderID,
		Status:   status,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "deal_id"}, {Name: "lender_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *DealLenderRepository) ListByDealID(ctx context.Context, dealID string) ([]lenderDomain.DealLender, error) {
	var out []lenderDomain.DealLender
	res := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
