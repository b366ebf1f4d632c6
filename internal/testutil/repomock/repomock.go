// Package repomock provides function-backed mocks for the domain
// repositories. Fill in the function fields a test needs; unfilled ones
// return a "not implemented" error so accidental calls surface loudly.
package repomock

import (
	"context"
	"errors"

	"loanflow-backend/internal/domain/commission"
	"loanflow-backend/internal/domain/deal"
	"loanflow-backend/internal/domain/event"
	"loanflow-backend/internal/domain/lender"
	"loanflow-backend/internal/domain/partner"
)

var errUnimplemented = errors.New("repomock: method not implemented")

type DealRepo struct {
	CreateFn                func(ctx context.Context, d *deal.Deal) error
	GetByDealIDFn           func(ctx context.Context, dealID string) (*deal.Deal, error)
	GetByDealIDForUpdateFn  func(ctx context.Context, dealID string) (*deal.Deal, error)
	GetByAccessTokenFn      func(ctx context.Context, token string) (*deal.Deal, error)
	ReferenceNumberExistsFn func(ctx context.Context, ref string) (bool, error)
	SaveFn                  func(ctx context.Context, d *deal.Deal) error
	ListByPartnerIDFn       func(ctx context.Context, partnerID string) ([]deal.Deal, error)
}

var _ deal.Repository = (*DealRepo)(nil)

func (m *DealRepo) Create(ctx context.Context, d *deal.Deal) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *DealRepo) GetByDealID(ctx context.Context, dealID string) (*deal.Deal, error) {
	if m.GetByDealIDFn != nil {
		return m.GetByDealIDFn(ctx, dealID)
	}
	return nil, errUnimplemented
}

func (m *DealRepo) GetByDealIDForUpdate(ctx context.Context, dealID string) (*deal.Deal, error) {
	if m.GetByDealIDForUpdateFn != nil {
		return m.GetByDealIDForUpdateFn(ctx, dealID)
	}
	return nil, errUnimplemented
}

func (m *DealRepo) GetByAccessToken(ctx context.Context, token string) (*deal.Deal, error) {
	if m.GetByAccessTokenFn != nil {
		return m.GetByAccessTokenFn(ctx, token)
	}
	return nil, errUnimplemented
}

func (m *DealRepo) ReferenceNumberExists(ctx context.Context, ref string) (bool, error) {
	if m.ReferenceNumberExistsFn != nil {
		return m.ReferenceNumberExistsFn(ctx, ref)
	}
	return false, nil
}

func (m *DealRepo) Save(ctx context.Context, d *deal.Deal) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *DealRepo) ListByPartnerID(ctx context.Context, partnerID string) ([]deal.Deal, error) {
	if m.ListByPartnerIDFn != nil {
		return m.ListByPartnerIDFn(ctx, partnerID)
	}
	return nil, errUnimplemented
}

type BorrowerRepo struct {
	CreateFn          func(ctx context.Context, b *deal.Borrower) error
	GetByBorrowerIDFn func(ctx context.Context, borrowerID string) (*deal.Borrower, error)
}

var _ deal.BorrowerRepository = (*BorrowerRepo)(nil)

func (m *BorrowerRepo) Create(ctx context.Context, b *deal.Borrower) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *BorrowerRepo) GetByBorrowerID(ctx context.Context, borrowerID string) (*deal.Borrower, error) {
	if m.GetByBorrowerIDFn != nil {
		return m.GetByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, errUnimplemented
}

type PartnerRepo struct {
	CreateFn         func(ctx context.Context, p *partner.Partner) error
	GetByPartnerIDFn func(ctx context.Context, partnerID string) (*partner.Partner, error)
	SaveFn           func(ctx context.Context, p *partner.Partner) error
}

var _ partner.Repository = (*PartnerRepo)(nil)

func (m *PartnerRepo) Create(ctx context.Context, p *partner.Partner) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *PartnerRepo) GetByPartnerID(ctx context.Context, partnerID string) (*partner.Partner, error) {
	if m.GetByPartnerIDFn != nil {
		return m.GetByPartnerIDFn(ctx, partnerID)
	}
	return nil, errUnimplemented
}

func (m *PartnerRepo) Save(ctx context.Context, p *partner.Partner) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

type CommissionRepo struct {
	CreateFn            func(ctx context.Context, c *commission.Commission) error
	GetByDealIDFn       func(ctx context.Context, dealID string) (*commission.Commission, error)
	GetByCommissionIDFn func(ctx context.Context, commissionID string) (*commission.Commission, error)
	SaveFn              func(ctx context.Context, c *commission.Commission) error
	ListByPartnerIDFn   func(ctx context.Context, partnerID string) ([]commission.Commission, error)
	ListAllFn           func(ctx context.Context) ([]commission.Commission, error)
}

var _ commission.Repository = (*CommissionRepo)(nil)

func (m *CommissionRepo) Create(ctx context.Context, c *commission.Commission) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *CommissionRepo) GetByDealID(ctx context.Context, dealID string) (*commission.Commission, error) {
	if m.GetByDealIDFn != nil {
		return m.GetByDealIDFn(ctx, dealID)
	}
	return nil, errUnimplemented
}

func (m *CommissionRepo) GetByCommissionID(ctx context.Context, commissionID string) (*commission.Commission, error) {
	if m.GetByCommissionIDFn != nil {
		return m.GetByCommissionIDFn(ctx, commissionID)
	}
	return nil, errUnimplemented
}

func (m *CommissionRepo) Save(ctx context.Context, c *commission.Commission) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *CommissionRepo) ListByPartnerID(ctx context.Context, partnerID string) ([]commission.Commission, error) {
	if m.ListByPartnerIDFn != nil {
		return m.ListByPartnerIDFn(ctx, partnerID)
	}
	return nil, errUnimplemented
}

func (m *CommissionRepo) ListAll(ctx context.Context) ([]commission.Commission, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, errUnimplemented
}

// EventRepo records created events in memory by default so tests can assert
// on the audit trail without wiring a function field.
type EventRepo struct {
	CreateFn              func(ctx context.Context, e *event.DealEvent) error
	ListByDealIDFn        func(ctx context.Context, dealID string) ([]event.DealEvent, error)
	ListVisibleByDealIDFn func(ctx context.Context, dealID string, vis []event.Visibility) ([]event.DealEvent, error)

	Created []event.DealEvent
}

var _ event.Repository = (*EventRepo)(nil)

func (m *EventRepo) Create(ctx context.Context, e *event.DealEvent) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	m.Created = append(m.Created, *e)
	return nil
}

func (m *EventRepo) ListByDealID(ctx context.Context, dealID string) ([]event.DealEvent, error) {
	if m.ListByDealIDFn != nil {
		return m.ListByDealIDFn(ctx, dealID)
	}
	return m.Created, nil
}

func (m *EventRepo) ListVisibleByDealID(ctx context.Context, dealID string, vis []event.Visibility) ([]event.DealEvent, error) {
	if m.ListVisibleByDealIDFn != nil {
		return m.ListVisibleByDealIDFn(ctx, dealID, vis)
	}
	var out []event.DealEvent
	for _, e := range m.Created {
		for _, v := range vis {
			if e.Visibility == v {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

type LenderRepo struct {
	CreateFn        func(ctx context.Context, l *lender.Lender) error
	GetByLenderIDFn func(ctx context.Context, lenderID string) (*lender.Lender, error)
	GetByNameFn     func(ctx context.Context, name string) (*lender.Lender, error)
	ListActiveFn    func(ctx context.Context, nameQuery string) ([]lender.Lender, error)
	CountActiveFn   func(ctx context.Context) (int64, error)
	SaveFn          func(ctx context.Context, l *lender.Lender) error
}

var _ lender.Repository = (*LenderRepo)(nil)

func (m *LenderRepo) Create(ctx context.Context, l *lender.Lender) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *LenderRepo) GetByLenderID(ctx context.Context, lenderID string) (*lender.Lender, error) {
	if m.GetByLenderIDFn != nil {
		return m.GetByLenderIDFn(ctx, lenderID)
	}
	return nil, errUnimplemented
}

func (m *LenderRepo) GetByName(ctx context.Context, name string) (*lender.Lender, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}
	return nil, errUnimplemented
}

func (m *LenderRepo) ListActive(ctx context.Context, nameQuery string) ([]lender.Lender, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx, nameQuery)
	}
	return nil, errUnimplemented
}

func (m *LenderRepo) CountActive(ctx context.Context) (int64, error) {
	if m.CountActiveFn != nil {
		return m.CountActiveFn(ctx)
	}
	return 0, nil
}

func (m *LenderRepo) Save(ctx context.Context, l *lender.Lender) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

type DealLenderRepo struct {
	UpsertFn       func(ctx context.Context, dealID, lenderID string, status lender.AssignmentStatus) error
	ListByDealIDFn func(ctx context.Context, dealID string) ([]lender.DealLender, error)
}

var _ lender.DealLenderRepository = (*DealLenderRepo)(nil)

func (m *DealLenderRepo) Upsert(ctx context.Context, dealID, lenderID string, status lender.AssignmentStatus) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, dealID, lenderID, status)
	}
	return nil
}

func (m *DealLenderRepo) ListByDealID(ctx context.Context, dealID string) ([]lender.DealLender, error) {
	if m.ListByDealIDFn != nil {
		return m.ListByDealIDFn(ctx, dealID)
	}
	return nil, errUnimplemented
}
