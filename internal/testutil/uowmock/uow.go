package uowmock

import (
	"context"
	"errors"

	"loanflow-backend/internal/domain/deal"
	"loanflow-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

// UoW runs unit-of-work callbacks directly against the repos a test wires in.
// Override the Fn fields to simulate transaction failures.
type UoW struct {
	Repos uow.Repos

	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinDealTxFn func(ctx context.Context, dealID string, fn func(r uow.Repos, d *deal.Deal) error) error
}

func New(r uow.Repos) *UoW { return &UoW{Repos: r} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}

func (m *UoW) WithinDealTx(ctx context.Context, dealID string, fn func(r uow.Repos, d *deal.Deal) error) error {
	if m.WithinDealTxFn != nil {
		return m.WithinDealTxFn(ctx, dealID, fn)
	}
	if m.Repos.Deals == nil {
		return errors.New("uowmock: no deal repository wired")
	}
	d, err := m.Repos.Deals.GetByDealIDForUpdate(ctx, dealID)
	if err != nil {
		return err
	}
	return fn(m.Repos, d)
}
