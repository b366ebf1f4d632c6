package status

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "loanflow-backend/internal/domain/deal"
	"loanflow-backend/internal/domain/event"
	"loanflow-backend/internal/domain/lender"
	"loanflow-backend/internal/domain/uow"
)

// View is the borrower-facing projection of a deal. It is keyed by the
// access token alone and deliberately thin: no amounts, no commission data,
// no internal notes.
type View struct {
	ReferenceNumber  string  `json:"reference_number"`
	Stage            string  `json:"stage"`
	StageLabel       string  `json:"stage_label"`
	ProgressPercent  float64 `json:"progress_percent"`
	TerminalNegative bool    `json:"terminal_negative"`
	StatusReason     string  `json:"status_reason,omitempty"`

	LenderName string `json:"lender_name,omitempty"`

	PartnerCompany string `json:"partner_company,omitempty"`
	PartnerContact string `json:"partner_contact,omitempty"`
	PartnerEmail   string `json:"partner_email,omitempty"`
	PartnerPhone   string `json:"partner_phone,omitempty"`

	Timeline []TimelineEntry `json:"timeline"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TimelineEntry is one visible event on the status page.
type TimelineEntry struct {
	EventType  string    `json:"event_type"`
	StageLabel string    `json:"stage_label,omitempty"`
	Note       string    `json:"note,omitempty"`
	LenderName string    `json:"lender_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{uow: tx, log: log}
}

// visibleToBorrower is the event filter for the status page. INTERNAL events
// never leave the building.
var visibleToBorrower = []event.Visibility{event.VisibilityBorrower, event.VisibilityPartner}

// Get resolves an access token to the borrower view. The token is the only
// credential; the client-tracking flag gates outbound emails, not this view.
func (u *Usecase) Get(ctx context.Context, token string) (*View, error) {
	if token == "" {
		return nil, domain.ErrNotFound
	}

	var view *View
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Deals.GetByAccessToken(ctx, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		view = &View{
			ReferenceNumber:  d.ReferenceNumber,
			Stage:            string(d.Stage),
			StageLabel:       d.Stage.Label(),
			ProgressPercent:  domain.ProgressPercent(d.Stage),
			TerminalNegative: domain.IsTerminalNegative(d.Stage),
			UpdatedAt:        d.StageChangedAt,
		}
		switch d.Stage {
		case domain.StageDeclined:
			view.StatusReason = d.DeclineReason
		case domain.StageLost:
			view.StatusReason = d.LostReason
		}

		if d.AssignedLenderID != nil {
			l, err := r.Lenders.GetByLenderID(ctx, *d.AssignedLenderID)
			switch {
			case err == nil:
				view.LenderName = l.Name
			case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, lender.ErrNotFound):
				// Stale pointer; the page simply omits the lender.
			default:
				return err
			}
		}

		p, err := r.Partners.GetByPartnerID(ctx, d.PartnerID)
		if err == nil {
			view.PartnerCompany = p.CompanyName
			view.PartnerContact = p.ContactName
			view.PartnerEmail = p.Email
			view.PartnerPhone = p.Phone
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		events, err := r.Events.ListVisibleByDealID(ctx, d.DealID, visibleToBorrower)
		if err != nil {
			return err
		}
		view.Timeline = make([]TimelineEntry, 0, len(events))
		for _, ev := range events {
			entry := TimelineEntry{
				EventType: string(ev.EventType),
				CreatedAt: ev.CreatedAt,
			}
			if ev.ToStage != nil {
				entry.StageLabel = ev.ToStage.Label()
			}
			if ev.EventType == event.TypeNote {
				entry.Note = ev.Note
			}
			if ev.Lender != nil {
				entry.LenderName = ev.Lender.LenderName
			}
			view.Timeline = append(view.Timeline, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
