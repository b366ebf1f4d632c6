package commission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"loanflow-backend/internal/domain/actor"
	domain "loanflow-backend/internal/domain/commission"
	"loanflow-backend/internal/domain/uow"
)

type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{uow: tx, log: log}
}

// MarkPaid moves a CONFIRMED commission to PAID and stamps the payment time.
// Paying a commission that was never confirmed is a conflict; paying one that
// is already PAID is a no-op so a retried request cannot fail.
func (u *Usecase) MarkPaid(ctx context.Context, act actor.Actor, commissionID string) (*domain.Commission, error) {
	if !act.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can mark commissions paid", actor.ErrForbidden)
	}

	var out *domain.Commission
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Commissions.GetByCommissionID(ctx, commissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		switch c.Status {
		case domain.StatusPaid:
			out = c
			return nil
		case domain.StatusConfirmed:
		default:
			return fmt.Errorf("%w: commission is %s", domain.ErrNotConfirmed, c.Status)
		}

		now := time.Now().UTC()
		c.Status = domain.StatusPaid
		c.PaidAt = &now
		if err := r.Commissions.Save(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("commission paid",
		zap.String("commission_id", out.CommissionID),
		zap.Float64("partner_amount", out.PartnerAmount))
	return out, nil
}

// List returns commissions scoped by role: admins see everything, partners
// see only their own.
func (u *Usecase) List(ctx context.Context, act actor.Actor) ([]domain.Commission, error) {
	var rows []domain.Commission
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		switch {
		case act.IsAdmin():
			rows, err = r.Commissions.ListAll(ctx)
		case act.IsPartner():
			rows, err = r.Commissions.ListByPartnerID(ctx, act.PartnerID)
		default:
			return actor.ErrForbidden
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
