package lender

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"loanflow-backend/internal/domain/actor"
	dealDomain "loanflow-backend/internal/domain/deal"
	"loanflow-backend/internal/domain/event"
	domain "loanflow-backend/internal/domain/lender"
	"loanflow-backend/internal/domain/uow"
	"loanflow-backend/internal/notify"
	"loanflow-backend/pkg/id"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 200
)

type Usecase struct {
	uow      uow.UnitOfWork
	notifier *notify.Notifier
	log      *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, n *notify.Notifier, log *zap.Logger) *Usecase {
	return &Usecase{uow: tx, notifier: n, log: log}
}

// Search scores every active lender against the criteria and returns the top
// page ordered by score, ties broken alphabetically by name. The unfiltered
// active count rides along so a thin result reads as "few matches", not
// "few lenders".
func (u *Usecase) Search(ctx context.Context, act actor.Actor, in SearchInput) (*SearchResult, error) {
	if !act.Known() {
		return nil, actor.ErrForbidden
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	criteria := domain.Criteria{
		State:        strings.ToUpper(strings.TrimSpace(in.State)),
		Amount:       in.LoanAmount,
		PropertyType: strings.ToUpper(strings.TrimSpace(in.PropertyType)),
	}

	var (
		actives []domain.Lender
		total   int64
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		actives, err = r.Lenders.ListActive(ctx, strings.TrimSpace(in.Name))
		if err != nil {
			return err
		}
		total, err = r.Lenders.CountActive(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(actives))
	for i := range actives {
		matches = append(matches, Match{
			Lender: actives[i],
			Score:  actives[i].MatchScore(criteria),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Lender.Name < matches[j].Lender.Name
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	return &SearchResult{Matches: matches, TotalActive: total}, nil
}

// Assign records a lender on a deal: the assignment row is upserted, the
// deal's current-lender pointer moves, and a LENDER_ASSIGNED event is
// appended. Notifications go out after commit.
func (u *Usecase) Assign(ctx context.Context, act actor.Actor, in AssignInput) error {
	if !act.IsAdmin() {
		return fmt.Errorf("%w: only admins can assign lenders", actor.ErrForbidden)
	}
	if strings.TrimSpace(in.LenderID) == "" {
		return fmt.Errorf("%w: lender id is required", dealDomain.ErrValidation)
	}

	var (
		d *dealDomain.Deal
		l *domain.Lender
		p partnerRecipient
		b *dealDomain.Borrower
	)
	err := u.uow.WithinDealTx(ctx, in.DealID, func(r uow.Repos, cur *dealDomain.Deal) error {
		var err error
		l, err = r.Lenders.GetByLenderID(ctx, in.LenderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		if err := r.DealLenders.Upsert(ctx, cur.DealID, l.LenderID, domain.StatusAssigned); err != nil {
			return err
		}
		cur.AssignedLenderID = &l.LenderID
		if err := r.Deals.Save(ctx, cur); err != nil {
			return err
		}

		ev := &event.DealEvent{
			EventID:   id.NewID32(),
			DealID:    cur.DealID,
			ActorID:   act.ID,
			EventType: event.TypeLenderAssigned,
			Lender: &event.LenderAssignment{
				LenderID:   l.LenderID,
				LenderName: l.Name,
			},
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

	u.log.Info("lender assigned",
		zap.String("deal_id", d.DealID),
		zap.String("lender_id", l.LenderID))

	if p.email != "" {
		u.notifier.PartnerLenderAssigned(p.email, d.ReferenceNumber, d.DealID, l.Name)
	}
	if d.EnableClientTracking && b != nil && strings.TrimSpace(b.Email) != "" {
		u.notifier.BorrowerLenderAssigned(strings.TrimSpace(b.Email), b.FirstName, d.ReferenceNumber, l.Name, d.BorrowerAccessToken)
	}
	return nil
}

// Assignments lists the historical lender assignments for a deal. Partners
// only see their own deals.
func (u *Usecase) Assignments(ctx context.Context, act actor.Actor, dealID string) ([]domain.DealLender, error) {
	if !act.Known() {
		return nil, actor.ErrForbidden
	}
	var rows []domain.DealLender
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Deals.GetByDealID(ctx, dealID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dealDomain.ErrNotFound
			}
			return err
		}
		if act.IsPartner() && d.PartnerID != act.PartnerID {
			return actor.ErrForbidden
		}
		rows, err = r.DealLenders.ListByDealID(ctx, d.DealID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// csvAliases maps the header spellings seen across lender sheets to canonical
// column names. Headers are matched lower-cased and trimmed.
var csvAliases = map[string]string{
	"name":              "name",
	"lender":            "name",
	"lender name":       "name",
	"contact":           "contact_name",
	"contact name":      "contact_name",
	"email":             "contact_email",
	"contact email":     "contact_email",
	"phone":             "contact_phone",
	"contact phone":     "contact_phone",
	"website":           "website",
	"type":              "lender_type",
	"lender type":       "lender_type",
	"min":               "min_loan_amount",
	"min loan":          "min_loan_amount",
	"minimum loan":      "min_loan_amount",
	"min loan amount":   "min_loan_amount",
	"max":               "max_loan_amount",
	"max loan":          "max_loan_amount",
	"maximum loan":      "max_loan_amount",
	"max loan amount":   "max_loan_amount",
	"states":            "states",
	"coverage":          "states",
	"coverage states":   "states",
	"property types":    "property_types",
	"asset types":       "property_types",
	"transaction types": "transaction_types",
}

// ImportCSV bulk-loads lenders from an admin-supplied sheet. Columns are
// keyed by header, so column order does not matter. Rows missing a name are
// skipped and reported; a lender whose name already exists is updated in
// place rather than duplicated.
func (u *Usecase) ImportCSV(ctx context.Context, act actor.Actor, src io.Reader) (*ImportReport, error) {
	if !act.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can import lenders", actor.ErrForbidden)
	}

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: could not read CSV header: %v", dealDomain.ErrValidation, err)
	}
	columns := make(map[int]string, len(header))
	for i, h := range header {
		if canonical, ok := csvAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			columns[i] = canonical
		}
	}
	if !hasColumn(columns, "name") {
		return nil, fmt.Errorf("%w: CSV is missing a lender name column", dealDomain.ErrValidation)
	}

	report := &ImportReport{}
	line := 1
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			line++
			if err != nil {
				report.Skipped++
				report.Errors = append(report.Errors, fmt.Sprintf("line %d: %v", line, err))
				continue
			}

			row := map[string]string{}
			for i, field := range record {
				if name, ok := columns[i]; ok {
					row[name] = strings.TrimSpace(field)
				}
			}
			if row["name"] == "" {
				report.Skipped++
				report.Errors = append(report.Errors, fmt.Sprintf("line %d: missing lender name", line))
				continue
			}

			if err := u.upsertImported(ctx, r, row); err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			report.Imported++
		}
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("lender import finished",
		zap.Int("imported", report.Imported),
		zap.Int("skipped", report.Skipped))
	return report, nil
}

func (u *Usecase) upsertImported(ctx context.Context, r uow.Repos, row map[string]string) error {
	existing, err := findByName(ctx, r.Lenders, row["name"])
	if err != nil {
		return err
	}

	l := existing
	if l == nil {
		l = &domain.Lender{LenderID: id.NewID32(), IsActive: true}
	}
	l.Name = row["name"]
	l.ContactName = row["contact_name"]
	l.ContactEmail = row["contact_email"]
	l.ContactPhone = row["contact_phone"]
	l.Website = row["website"]
	l.LenderType = row["lender_type"]
	l.MinLoanAmount = ParseLoanAmount(row["min_loan_amount"])
	l.MaxLoanAmount = ParseLoanAmount(row["max_loan_amount"])
	l.CoverageStates = NormalizeStates(splitList(row["states"]))
	l.PropertyTypes = NormalizePropertyTypes(splitList(row["property_types"]))
	l.TransactionTypes = normalizeUpper(splitList(row["transaction_types"]))

	if existing != nil {
		return r.Lenders.Save(ctx, l)
	}
	return r.Lenders.Create(ctx, l)
}

func findByName(ctx context.Context, lenders domain.Repository, name string) (*domain.Lender, error) {
	l, err := lenders.GetByName(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

type partnerRecipient struct {
	email string
}

func (u *Usecase) loadRecipients(ctx context.Context, r uow.Repos, d *dealDomain.Deal) (partnerRecipient, *dealDomain.Borrower) {
	var out partnerRecipient
	p, err := r.Partners.GetByPartnerID(ctx, d.PartnerID)
	if err != nil {
		u.log.Warn("partner lookup for notification failed", zap.String("deal_id", d.DealID), zap.Error(err))
	} else {
		out.email = p.Email
	}
	b, err := r.Borrowers.GetByBorrowerID(ctx, d.BorrowerID)
	if err != nil {
		u.log.Warn("borrower lookup for notification failed", zap.String("deal_id", d.DealID), zap.Error(err))
		b = nil
	}
	return out, b
}

func hasColumn(columns map[int]string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

// splitList accepts both comma and semicolon separated multi-value cells.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	raw = strings.ReplaceAll(raw, ";", ",")
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func normalizeUpper(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		out = append(out, strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_")))
	}
	return out
}
