package uow

import (
	"context"

	"loanflow-backend/internal/domain/commission"
	"loanflow-backend/internal/domain/deal"
	"loanflow-backend/internal/domain/event"
	"loanflow-backend/internal/domain/lender"
	"loanflow-backend/internal/domain/partner"
)

// Repos bundles every repository bound to the same transaction.
type Repos struct {
	Deals       deal.Repository
	Borrowers   deal.BorrowerRepository
	Partners    partner.Repository
	Commissions commission.Repository
	Events      event.Repository
	Lenders     lender.Repository
	DealLenders lender.DealLenderRepository
}

type UnitOfWork interface {
	// WithinTx runs fn inside one transaction; all writes commit or none do.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinDealTx locks the deal row up front so concurrent stage changes
	// on the same deal serialize, then passes the current row to fn.
	WithinDealTx(ctx context.Context, dealID string, fn func(r Repos, d *deal.Deal) error) error
}
