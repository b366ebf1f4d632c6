package deal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"loanflow-backend/internal/domain/actor"
	"loanflow-backend/internal/domain/commission"
	domain "loanflow-backend/internal/domain/deal"
	"loanflow-backend/internal/domain/event"
	"loanflow-backend/internal/domain/partner"
	"loanflow-backend/internal/domain/uow"
	"loanflow-backend/internal/notify"
	"loanflow-backend/pkg/id"
)

type Usecase struct {
	uow      uow.UnitOfWork
	notifier *notify.Notifier
	log      *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, n *notify.Notifier, log *zap.Logger) *Usecase {
	return &Usecase{uow: tx, notifier: n, log: log}
}

// Submit creates the Borrower, the Deal (stage SUBMITTED), the ESTIMATED
// Commission, and the opening STAGE_CHANGE event in one transaction; either
// all four land or none do.
func (u *Usecase) Submit(ctx context.Context, act actor.Actor, in SubmitInput) (*DealDTO, error) {
	if !act.IsPartner() {
		return nil, fmt.Errorf("%w: only partners can submit deals", actor.ErrForbidden)
	}
	if err := validateSubmit(in); err != nil {
		return nil, err
	}

	firstName, lastName := splitClientName(in.ClientName)

	var dto *DealDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Partners.GetByPartnerID(ctx, act.PartnerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return partner.ErrNotFound
			}
			return err
		}

		pct := p.DefaultCommissionPct
		if in.PartnerCompensation != nil {
			pct = *in.PartnerCompensation
		}
		if pct < 0 || pct > 1 {
			return fmt.Errorf("%w: partner compensation must be a fraction between 0 and 1", domain.ErrValidation)
		}

		ref, err := uniqueReferenceNumber(ctx, r.Deals)
		if err != nil {
			return err
		}

		b := &domain.Borrower{
			BorrowerID: id.NewID32(),
			FirstName:  firstName,
			LastName:   lastName,
			Email:      strings.TrimSpace(in.ClientEmail),
			Phone:      strings.TrimSpace(in.ClientPhone),
		}
		if err := r.Borrowers.Create(ctx, b); err != nil {
			return err
		}

		now := time.Now().UTC()
		d := &domain.Deal{
			DealID:          id.NewID32(),
			ReferenceNumber: ref,
			PartnerID:       p.PartnerID,
			BorrowerID:      b.BorrowerID,

			LoanType:        domain.LoanType(in.LoanType),
			TransactionType: domain.TransactionType(in.TransactionType),
			LoanPosition:    loanPositionOrDefault(in.LoanPosition),
			PropertyType:    domain.PropertyType(in.PropertyType),
			Occupancy:       domain.Occupancy(in.Occupancy),
			PropertyAddress: strings.TrimSpace(in.PropertyAddress),

			PurchasePrice:           in.PurchasePrice,
			NOI:                     in.NOI,
			NOINotAvailable:         in.NOINotAvailable,
			SignedPurchaseAgreement: in.SignedPurchaseAgreement,
			InPlaceOccupancy:        in.InPlaceOccupancy,
			LoanAmountRequested:     in.LoanAmountRequested,
			TargetLTV:               in.TargetLTV,
			EstimatedCloseDate:      in.EstimatedCloseDate,
			RecourseAcceptance:      in.RecourseAcceptance,
			PartnerCompensation:     in.PartnerCompensation,

			Stage:                domain.StageSubmitted,
			EnableClientTracking: in.EnableClientTracking,
			BorrowerAccessToken:  uuid.NewString(),
			StageChangedAt:       now,
		}
		if err := r.Deals.Create(ctx, d); err != nil {
			return err
		}

		gross, part := commission.Calculate(in.LoanAmountRequested, pct)
		c := &commission.Commission{
			CommissionID:    id.NewID32(),
			DealID:          d.DealID,
			PartnerID:       p.PartnerID,
			PartnerPct:      pct,
			Status:          commission.StatusEstimated,
			GrossCommission: gross,
			PartnerAmount:   part,
		}
		if err := r.Commissions.Create(ctx, c); err != nil {
			return err
		}

		to := d.Stage
		ev := &event.DealEvent{
			EventID:    id.NewID32(),
			DealID:     d.DealID,
			ActorID:    act.ID,
			EventType:  event.TypeStageChange,
			ToStage:    &to,
			Visibility: event.VisibilityInternal,
		}
		if err := r.Events.Create(ctx, ev); err != nil {
			return err
		}

		dto = &DealDTO{
			DealID:               d.DealID,
			ReferenceNumber:      d.ReferenceNumber,
			Stage:                d.Stage,
			BorrowerAccessToken:  d.BorrowerAccessToken,
			EnableClientTracking: d.EnableClientTracking,
			CreatedAt:            now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("deal submitted",
		zap.String("deal_id", dto.DealID),
		zap.String("reference", dto.ReferenceNumber),
		zap.String("partner_id", act.PartnerID))
	return dto, nil
}

// Transition moves a deal along the stage graph. The deal row is locked for
// the duration of the transaction, so two admins racing on the same deal
// serialize and the loser fails re-validation instead of silently winning.
// Notifications go out after commit and never affect the result.
func (u *Usecase) Transition(ctx context.Context, act actor.Actor, in TransitionInput) error {
	if !act.IsAdmin() {
		return fmt.Errorf("%w: only admins can change deal stage", actor.ErrForbidden)
	}
	target, err := domain.ParseStage(in.TargetStage)
	if err != nil {
		return err
	}
	reason := strings.TrimSpace(in.Reason)

	var (
		d *domain.Deal
		p *partner.Partner
		b *domain.Borrower
	)
	err = u.uow.WithinDealTx(ctx, in.DealID, func(r uow.Repos, cur *domain.Deal) error {
		if !domain.CanTransition(cur.Stage, target) {
			return fmt.Errorf("%w: cannot move from %s to %s", domain.ErrInvalidTransition, cur.Stage, target)
		}

		switch target {
		case domain.StageDeclined:
			if reason == "" {
				return fmt.Errorf("%w: a reason is required to decline a deal", domain.ErrValidation)
			}
			cur.DeclineReason = reason
		case domain.StageLost:
			if reason == "" {
				return fmt.Errorf("%w: a reason is required to mark a deal lost", domain.ErrValidation)
			}
			cur.LostReason = reason
		case domain.StageClosed:
			if in.ClosedAmount == nil || *in.ClosedAmount <= 0 {
				return fmt.Errorf("%w: a positive closed amount is required to close a deal", domain.ErrValidation)
			}
			cur.LoanAmountClosed = in.ClosedAmount
		}

		from := cur.Stage
		cur.Stage = target
		cur.StageChangedAt = time.Now().UTC()
		if err := r.Deals.Save(ctx, cur); err != nil {
			return err
		}

		if target == domain.StageClosed {
			if err := confirmCommission(ctx, r, cur.DealID, *in.ClosedAmount); err != nil {
				return err
			}
		}

		fromCopy, toCopy := from, target
		ev := &event.DealEvent{
			EventID:    id.NewID32(),
			DealID:     cur.DealID,
			ActorID:    act.ID,
			EventType:  event.TypeStageChange,
			FromStage:  &fromCopy,
			ToStage:    &toCopy,
			Note:       reason,
			Visibility: event.VisibilityInternal,
		}
		if err := r.Events.Create(ctx, ev); err != nil {
			return err
		}

		d = cur
		p, b = u.loadRecipients(ctx, r, cur)
		return nil
	})
	if err != nil {
		return err
	}

	u.log.Info("deal stage changed",
		zap.String("deal_id", d.DealID),
		zap.String("stage", string(target)))

	if p != nil {
		u.notifier.PartnerStageChanged(p.Email, d.ReferenceNumber, d.DealID, target.Label())
	}
	if email := borrowerEmail(d, b); email != "" {
		u.notifier.BorrowerStageChanged(email, b.FirstName, d.ReferenceNumber, target.Label(), d.BorrowerAccessToken)
	}
	return nil
}

// AddNote appends a NOTE event. Partners may only annotate their own deals
// and cannot write INTERNAL notes.
func (u *Usecase) AddNote(ctx context.Context, act actor.Actor, dealID, note string, visibility event.Visibility) error {
	if !act.Known() {
		return actor.ErrForbidden
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return fmt.Errorf("%w: note text is required", domain.ErrValidation)
	}
	switch visibility {
	case event.VisibilityInternal, event.VisibilityPartner, event.VisibilityBorrower:
	default:
		return fmt.Errorf("%w: unknown visibility %q", domain.ErrValidation, visibility)
	}

	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Deals.GetByDealID(ctx, dealID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if act.IsPartner() {
			if d.PartnerID != act.PartnerID {
				return actor.ErrForbidden
			}
			if visibility == event.VisibilityInternal {
				return fmt.Errorf("%w: partners cannot write internal notes", actor.ErrForbidden)
			}
		}

		ev := &event.DealEvent{
			EventID:    id.NewID32(),
			DealID:     d.DealID,
			ActorID:    act.ID,
			EventType:  event.TypeNote,
			Note:       note,
			Visibility: visibility,
		}
		return r.Events.Create(ctx, ev)
	})
}

// List returns a partner's deals. Admins may list any partner's book by
// passing its id; partners always get their own.
func (u *Usecase) List(ctx context.Context, act actor.Actor, partnerID string) ([]domain.Deal, error) {
	switch {
	case act.IsPartner():
		partnerID = act.PartnerID
	case act.IsAdmin():
		if strings.TrimSpace(partnerID) == "" {
			return nil, fmt.Errorf("%w: partner_id is required", domain.ErrValidation)
		}
	default:
		return nil, actor.ErrForbidden
	}

	var deals []domain.Deal
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		deals, err = r.Deals.ListByPartnerID(ctx, partnerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return deals, nil
}

// SendTrackingLink emails the borrower their tokenized status link on demand.
func (u *Usecase) SendTrackingLink(ctx context.Context, act actor.Actor, dealID string) error {
	if !act.Known() {
		return actor.ErrForbidden
	}

	var (
		d *domain.Deal
		b *domain.Borrower
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		d, err = r.Deals.GetByDealID(ctx, dealID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if act.IsPartner() && d.PartnerID != act.PartnerID {
			return actor.ErrForbidden
		}
		b, err = r.Borrowers.GetByBorrowerID(ctx, d.BorrowerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	email := strings.TrimSpace(b.Email)
	if email == "" {
		return fmt.Errorf("%w: borrower has no email address", domain.ErrValidation)
	}
	u.notifier.BorrowerTrackingLink(email, b.FirstName, d.ReferenceNumber, d.BorrowerAccessToken)
	return nil
}

// confirmCommission reapplies the commission formula from the closed amount.
// Reapplying is idempotent: amounts are always recomputed, never accumulated.
func confirmCommission(ctx context.Context, r uow.Repos, dealID string, closedAmount float64) error {
	c, err := r.Commissions.GetByDealID(ctx, dealID)
	if err != nil {
		// One-to-one with the deal since submission; only legacy rows can
		// miss it, and closing those still succeeds.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	gross, part := commission.Calculate(closedAmount, c.PartnerPct)
	c.GrossCommission = gross
	c.PartnerAmount = part
	c.ClosedLoanAmount = &closedAmount
	c.Status = commission.StatusConfirmed
	return r.Commissions.Save(ctx, c)
}

// loadRecipients fetches the partner and borrower for post-commit
// notifications. Failures here only cost the notification, never the
// transition, so they are logged and dropped.
func (u *Usecase) loadRecipients(ctx context.Context, r uow.Repos, d *domain.Deal) (*partner.Partner, *domain.Borrower) {
	p, err := r.Partners.GetByPartnerID(ctx, d.PartnerID)
	if err != nil {
		u.log.Warn("partner lookup for notification failed", zap.String("deal_id", d.DealID), zap.Error(err))
		p = nil
	}
	b, err := r.Borrowers.GetByBorrowerID(ctx, d.BorrowerID)
	if err != nil {
		u.log.Warn("borrower lookup for notification failed", zap.String("deal_id", d.DealID), zap.Error(err))
		b = nil
	}
	return p, b
}

func borrowerEmail(d *domain.Deal, b *domain.Borrower) string {
	if !d.EnableClientTracking || b == nil {
		return ""
	}
	return strings.TrimSpace(b.Email)
}

// uniqueReferenceNumber regenerates until the reference is unused. Unbounded
// on purpose: repeated collision over the per-year space is negligible, and
// the surrounding transaction's unique index backstops the check.
func uniqueReferenceNumber(ctx context.Context, deals domain.Repository) (string, error) {
	for {
		ref := id.NewReferenceNumber()
		exists, err := deals.ReferenceNumberExists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !exists {
			return ref, nil
		}
	}
}

func validateSubmit(in SubmitInput) error {
	missing := func(field string) error {
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	switch {
	case strings.TrimSpace(in.LoanType) == "":
		return missing("loan type")
	case strings.TrimSpace(in.TransactionType) == "":
		return missing("transaction type")
	case strings.TrimSpace(in.PropertyType) == "":
		return missing("property type")
	case strings.TrimSpace(in.Occupancy) == "":
		return missing("occupancy")
	case strings.TrimSpace(in.ClientName) == "":
		return missing("client name")
	}
	if in.LoanAmountRequested <= 0 {
		return fmt.Errorf("%w: requested loan amount must be positive", domain.ErrValidation)
	}
	return nil
}

func splitClientName(name string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return "Client", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func loanPositionOrDefault(raw string) domain.LoanPosition {
	if raw == "" {
		return domain.PositionFirstMortgage
	}
	return domain.LoanPosition(raw)
}
