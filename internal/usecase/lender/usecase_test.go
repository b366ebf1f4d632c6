package lender

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"loanflow-backend/internal/domain/actor"
	dealDomain "loanflow-backend/internal/domain/deal"
	"loanflow-backend/internal/domain/event"
	domain "loanflow-backend/internal/domain/lender"
	partnerDomain "loanflow-backend/internal/domain/partner"
	"loanflow-backend/internal/domain/uow"
	"loanflow-backend/internal/notify"
	"loanflow-backend/internal/testutil/repomock"
	"loanflow-backend/internal/testutil/uowmock"
)

type sinkRecorder struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (s *sinkRecorder) Send(_ context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *sinkRecorder) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func newTestUsecase(r uow.Repos, sink notify.Sink) (*Usecase, *notify.Notifier) {
	n := notify.New(sink, zap.NewNop(), "https://loanflow.test")
	return NewUsecase(uowmock.New(r), n, zap.NewNop()), n
}

var adminActor = actor.Actor{ID: "admin-1", Role: actor.RoleAdmin}

func f(v float64) *float64 { return &v }

func fixtureLenders() []domain.Lender {
	return []domain.Lender{
		{
			LenderID: "l-tx", Name: "Alamo Capital", IsActive: true,
			MinLoanAmount: f(500_000), MaxLoanAmount: f(10_000_000),
			CoverageStates: []string{"TX", "OK"},
			PropertyTypes:  []string{"MULTIFAMILY", "OFFICE"},
		},
		{
			LenderID: "l-nw", Name: "Continental Lending", IsActive: true,
			CoverageStates: []string{domain.Nationwide},
			PropertyTypes:  []string{"RETAIL"},
		},
		{
			LenderID: "l-small", Name: "Boutique Bridge", IsActive: true,
			MinLoanAmount: f(100_000), MaxLoanAmount: f(1_000_000),
			CoverageStates: []string{"CA"},
			PropertyTypes:  []string{"MULTIFAMILY"},
		},
	}
}

func searchRepos(lenders []domain.Lender) uow.Repos {
	return uow.Repos{
		Lenders: &repomock.LenderRepo{
			ListActiveFn: func(ctx context.Context, nameQuery string) ([]domain.Lender, error) {
				if nameQuery == "" {
					return lenders, nil
				}
				var out []domain.Lender
				for _, l := range lenders {
					if strings.Contains(strings.ToLower(l.Name), strings.ToLower(nameQuery)) {
						out = append(out, l)
					}
				}
				return out, nil
			},
			CountActiveFn: func(ctx context.Context) (int64, error) {
				return int64(len(lenders)), nil
			},
		},
	}
}

func TestSearch_ScoresAndOrders(t *testing.T) {
	uc, _ := newTestUsecase(searchRepos(fixtureLenders()), &sinkRecorder{})

	res, err := uc.Search(context.Background(), adminActor, SearchInput{
		State: "TX", LoanAmount: 2_000_000, PropertyType: "MULTIFAMILY",
	})
	if err != nil {
		t.Fatalf("Search err: %v", err)
	}
	if res.TotalActive != 3 {
		t.Fatalf("TotalActive = %d", res.TotalActive)
	}
	if len(res.Matches) != 3 {
		t.Fatalf("matches = %d", len(res.Matches))
	}
	// Alamo: state literal +2, amount in bounds +2, property +2 = 6.
	if res.Matches[0].Lender.LenderID != "l-tx" || res.Matches[0].Score != 6 {
		t.Fatalf("top match = %s score %d", res.Matches[0].Lender.LenderID, res.Matches[0].Score)
	}
	// Continental: nationwide +1, unbounded amount +2 = 3.
	if res.Matches[1].Lender.LenderID != "l-nw" || res.Matches[1].Score != 3 {
		t.Fatalf("second match = %s score %d", res.Matches[1].Lender.LenderID, res.Matches[1].Score)
	}
	// Boutique: amount 2M above the 1M max, wrong state = 0 from those, property +2.
	if res.Matches[2].Lender.LenderID != "l-small" || res.Matches[2].Score != 2 {
		t.Fatalf("third match = %s score %d", res.Matches[2].Lender.LenderID, res.Matches[2].Score)
	}
}

func TestSearch_TiesBreakAlphabetically(t *testing.T) {
	lenders := []domain.Lender{
		{LenderID: "l-z", Name: "Zenith Funding", IsActive: true},
		{LenderID: "l-a", Name: "Acme Capital", IsActive: true},
		{LenderID: "l-m", Name: "Midland Credit", IsActive: true},
	}
	uc, _ := newTestUsecase(searchRepos(lenders), &sinkRecorder{})

	res, err := uc.Search(context.Background(), adminActor, SearchInput{})
	if err != nil {
		t.Fatalf("Search err: %v", err)
	}
	got := []string{res.Matches[0].Lender.Name, res.Matches[1].Lender.Name, res.Matches[2].Lender.Name}
	want := []string{"Acme Capital", "Midland Credit", "Zenith Funding"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSearch_LimitDefaultsAndCaps(t *testing.T) {
	var many []domain.Lender
	for i := 0; i < 250; i++ {
		many = append(many, domain.Lender{
			LenderID: "l-" + strings.Repeat("x", i%5+1),
			Name:     "Lender " + strings.Repeat("a", i+1),
			IsActive: true,
		})
	}
	uc, _ := newTestUsecase(searchRepos(many), &sinkRecorder{})

	res, err := uc.Search(context.Background(), adminActor, SearchInput{})
	if err != nil {
		t.Fatalf("Search err: %v", err)
	}
	if len(res.Matches) != defaultSearchLimit {
		t.Fatalf("default page = %d, want %d", len(res.Matches), defaultSearchLimit)
	}

	res, err = uc.Search(context.Background(), adminActor, SearchInput{Limit: 1000})
	if err != nil {
		t.Fatalf("Search err: %v", err)
	}
	if len(res.Matches) != maxSearchLimit {
		t.Fatalf("capped page = %d, want %d", len(res.Matches), maxSearchLimit)
	}
}

func TestSearch_UnknownActorForbidden(t *testing.T) {
	uc, _ := newTestUsecase(uow.Repos{}, &sinkRecorder{})
	if _, err := uc.Search(context.Background(), actor.Actor{}, SearchInput{}); !errors.Is(err, actor.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

// ---- Assign ----

func assignRepos(cur *dealDomain.Deal, l *domain.Lender) (uow.Repos, *repomock.EventRepo, *[]string) {
	events := &repomock.EventRepo{}
	var upserts []string
	r := uow.Repos{
		Deals: &repomock.DealRepo{
			GetByDealIDForUpdateFn: func(ctx context.Context, dealID string) (*dealDomain.Deal, error) {
				if dealID != cur.DealID {
					return nil, dealDomain.ErrNotFound
				}
				return cur, nil
			},
		},
		Lenders: &repomock.LenderRepo{
			GetByLenderIDFn: func(ctx context.Context, lenderID string) (*domain.Lender, error) {
				if l != nil && lenderID == l.LenderID {
					return l, nil
				}
				return nil, domain.ErrNotFound
			},
		},
		DealLenders: &repomock.DealLenderRepo{
			UpsertFn: func(ctx context.Context, dealID, lenderID string, status domain.AssignmentStatus) error {
				upserts = append(upserts, dealID+"/"+lenderID)
				return nil
			},
		},
		Partners: &repomock.PartnerRepo{
			GetByPartnerIDFn: func(ctx context.Context, partnerID string) (*partnerDomain.Partner, error) {
				return &partnerDomain.Partner{PartnerID: partnerID, Email: "jane@kw.com"}, nil
			},
		},
		Borrowers: &repomock.BorrowerRepo{
			GetByBorrowerIDFn: func(ctx context.Context, borrowerID string) (*dealDomain.Borrower, error) {
				return &dealDomain.Borrower{BorrowerID: borrowerID, FirstName: "Bob", Email: "bob@client.com"}, nil
			},
		},
		Events: events,
	}
	return r, events, &upserts
}

func activeDeal() *dealDomain.Deal {
	return &dealDomain.Deal{
		DealID: "d-1", ReferenceNumber: "DL-2026-00042",
		PartnerID: "p-1", BorrowerID: "b-1",
		Stage:                dealDomain.StageProcessing,
		EnableClientTracking: true, BorrowerAccessToken: "tok-1",
	}
}

func TestAssign_RecordsAssignmentAndEvent(t *testing.T) {
	cur := activeDeal()
	l := &domain.Lender{LenderID: "l-tx", Name: "Alamo Capital", IsActive: true}
	r, events, upserts := assignRepos(cur, l)
	sink := &sinkRecorder{}
	uc, n := newTestUsecase(r, sink)

	err := uc.Assign(context.Background(), adminActor, AssignInput{DealID: "d-1", LenderID: "l-tx"})
	if err != nil {
		t.Fatalf("Assign err: %v", err)
	}
	n.Wait()

	if cur.AssignedLenderID == nil || *cur.AssignedLenderID != "l-tx" {
		t.Fatalf("AssignedLenderID = %v", cur.AssignedLenderID)
	}
	if len(*upserts) != 1 || (*upserts)[0] != "d-1/l-tx" {
		t.Fatalf("upserts = %v", *upserts)
	}
	if len(events.Created) != 1 {
		t.Fatalf("events = %d", len(events.Created))
	}
	ev := events.Created[0]
	if ev.EventType != event.TypeLenderAssigned || ev.Lender == nil || ev.Lender.LenderName != "Alamo Capital" {
		t.Fatalf("event = %+v", ev)
	}
	if sink.count() != 2 {
		t.Fatalf("notifications = %d, want partner and borrower", sink.count())
	}
}

func TestAssign_RejectsNonAdmin(t *testing.T) {
	uc, _ := newTestUsecase(uow.Repos{}, &sinkRecorder{})
	part := actor.Actor{ID: "u-1", Role: actor.RolePartner, PartnerID: "p-1"}
	err := uc.Assign(context.Background(), part, AssignInput{DealID: "d-1", LenderID: "l-tx"})
	if !errors.Is(err, actor.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestAssign_UnknownLender(t *testing.T) {
	cur := activeDeal()
	r, _, _ := assignRepos(cur, nil)
	uc, _ := newTestUsecase(r, &sinkRecorder{})
	err := uc.Assign(context.Background(), adminActor, AssignInput{DealID: "d-1", LenderID: "nope"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want lender ErrNotFound", err)
	}
	if cur.AssignedLenderID != nil {
		t.Fatal("deal must be untouched")
	}
}

func TestAssign_InactiveLenderAllowed(t *testing.T) {
	cur := activeDeal()
	l := &domain.Lender{LenderID: "l-tx", Name: "Alamo Capital", IsActive: false}
	r, _, upserts := assignRepos(cur, l)
	uc, n := newTestUsecase(r, &sinkRecorder{})
	err := uc.Assign(context.Background(), adminActor, AssignInput{DealID: "d-1", LenderID: "l-tx"})
	if err != nil {
		t.Fatalf("Assign err: %v", err)
	}
	n.Wait()
	if len(*upserts) != 1 {
		t.Fatalf("upserts = %v", *upserts)
	}
}

func TestAssign_TerminalDealAllowed(t *testing.T) {
	cur := activeDeal()
	cur.Stage = dealDomain.StageClosed
	l := &domain.Lender{LenderID: "l-tx", Name: "Alamo Capital", IsActive: true}
	r, events, _ := assignRepos(cur, l)
	uc, n := newTestUsecase(r, &sinkRecorder{})
	err := uc.Assign(context.Background(), adminActor, AssignInput{DealID: "d-1", LenderID: "l-tx"})
	if err != nil {
		t.Fatalf("Assign err: %v", err)
	}
	n.Wait()
	if cur.AssignedLenderID == nil || *cur.AssignedLenderID != "l-tx" {
		t.Fatalf("AssignedLenderID = %v", cur.AssignedLenderID)
	}
	if len(events.Created) != 1 {
		t.Fatalf("events = %d", len(events.Created))
	}
}

// ---- ImportCSV ----

func TestImportCSV_NormalizesFields(t *testing.T) {
	var created []*domain.Lender
	r := uow.Repos{
		Lenders: &repomock.LenderRepo{
			GetByNameFn: func(ctx context.Context, name string) (*domain.Lender, error) {
				return nil, gorm.ErrRecordNotFound
			},
			CreateFn: func(ctx context.Context, l *domain.Lender) error {
				created = append(created, l)
				return nil
			},
		},
	}
	uc, _ := newTestUsecase(r, &sinkRecorder{})

	src := strings.NewReader(
		"Lender Name,Contact Email,Min Loan Amount,Max Loan Amount,Coverage States,Property Types\n" +
			"Alamo Capital,deals@alamo.com,$500k,\"$10,000,000\",\"Texas; Oklahoma\",\"Multifamily, Apartments\"\n" +
			"Continental Lending,info@continental.com,1.5MM,,Nationwide,Retail\n" +
			",missing@nobody.com,,,,\n")

	report, err := uc.ImportCSV(context.Background(), adminActor, src)
	if err != nil {
		t.Fatalf("ImportCSV err: %v", err)
	}
	if report.Imported != 2 || report.Skipped != 1 {
		t.Fatalf("report = %+v", report)
	}
	if len(created) != 2 {
		t.Fatalf("created = %d", len(created))
	}

	alamo := created[0]
	if alamo.Name != "Alamo Capital" || alamo.ContactEmail != "deals@alamo.com" {
		t.Fatalf("alamo = %+v", alamo)
	}
	if alamo.MinLoanAmount == nil || *alamo.MinLoanAmount != 500_000 {
		t.Fatalf("min = %v", alamo.MinLoanAmount)
	}
	if alamo.MaxLoanAmount == nil || *alamo.MaxLoanAmount != 10_000_000 {
		t.Fatalf("max = %v", alamo.MaxLoanAmount)
	}
	if len(alamo.CoverageStates) != 2 || alamo.CoverageStates[0] != "TX" || alamo.CoverageStates[1] != "OK" {
		t.Fatalf("states = %v", alamo.CoverageStates)
	}
	if len(alamo.PropertyTypes) != 1 || alamo.PropertyTypes[0] != "MULTIFAMILY" {
		t.Fatalf("property types = %v", alamo.PropertyTypes)
	}
	if !alamo.IsActive || alamo.LenderID == "" {
		t.Fatalf("alamo = %+v", alamo)
	}

	continental := created[1]
	if continental.MinLoanAmount == nil || *continental.MinLoanAmount != 1_500_000 {
		t.Fatalf("continental min = %v", continental.MinLoanAmount)
	}
	if continental.MaxLoanAmount != nil {
		t.Fatalf("continental max = %v, want unbounded", continental.MaxLoanAmount)
	}
	if len(continental.CoverageStates) != 1 || continental.CoverageStates[0] != domain.Nationwide {
		t.Fatalf("continental states = %v", continental.CoverageStates)
	}
}

func TestImportCSV_UpdatesExistingByName(t *testing.T) {
	existing := domain.Lender{LenderID: "l-1", Name: "Alamo Capital", IsActive: true}
	var saved *domain.Lender
	r := uow.Repos{
		Lenders: &repomock.LenderRepo{
			GetByNameFn: func(ctx context.Context, name string) (*domain.Lender, error) {
				if strings.EqualFold(name, existing.Name) {
					cp := existing
					return &cp, nil
				}
				return nil, gorm.ErrRecordNotFound
			},
			SaveFn: func(ctx context.Context, l *domain.Lender) error {
				saved = l
				return nil
			},
			CreateFn: func(ctx context.Context, l *domain.Lender) error {
				t.Fatal("existing lender must be updated, not recreated")
				return nil
			},
		},
	}
	uc, _ := newTestUsecase(r, &sinkRecorder{})

	src := strings.NewReader("Name,Email\nalamo capital,new@alamo.com\n")
	report, err := uc.ImportCSV(context.Background(), adminActor, src)
	if err != nil {
		t.Fatalf("ImportCSV err: %v", err)
	}
	if report.Imported != 1 {
		t.Fatalf("report = %+v", report)
	}
	if saved == nil || saved.LenderID != "l-1" || saved.ContactEmail != "new@alamo.com" {
		t.Fatalf("saved = %+v", saved)
	}
}

func TestImportCSV_UpdatesInactiveExisting(t *testing.T) {
	existing := domain.Lender{LenderID: "l-1", Name: "Alamo Capital", IsActive: false}
	var saved *domain.Lender
	r := uow.Repos{
		Lenders: &repomock.LenderRepo{
			GetByNameFn: func(ctx context.Context, name string) (*domain.Lender, error) {
				if strings.EqualFold(name, existing.Name) {
					cp := existing
					return &cp, nil
				}
				return nil, gorm.ErrRecordNotFound
			},
			SaveFn: func(ctx context.Context, l *domain.Lender) error {
				saved = l
				return nil
			},
			CreateFn: func(ctx context.Context, l *domain.Lender) error {
				t.Fatal("inactive lender with the same name must be updated, not duplicated")
				return nil
			},
		},
	}
	uc, _ := newTestUsecase(r, &sinkRecorder{})

	src := strings.NewReader("Name,Email\nAlamo Capital,new@alamo.com\n")
	report, err := uc.ImportCSV(context.Background(), adminActor, src)
	if err != nil {
		t.Fatalf("ImportCSV err: %v", err)
	}
	if report.Imported != 1 {
		t.Fatalf("report = %+v", report)
	}
	if saved == nil || saved.LenderID != "l-1" {
		t.Fatalf("saved = %+v", saved)
	}
}

func TestImportCSV_MissingNameColumn(t *testing.T) {
	uc, _ := newTestUsecase(uow.Repos{}, &sinkRecorder{})
	_, err := uc.ImportCSV(context.Background(), adminActor, strings.NewReader("Email\na@b.com\n"))
	if !errors.Is(err, dealDomain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

// ---- normalization helpers ----

func TestNormalizeStates(t *testing.T) {
	got := NormalizeStates([]string{"Texas", "tx", " Oklahoma ", "Nationwide", "Atlantis"})
	want := []string{"TX", "OK", "NATIONWIDE"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParseLoanAmount(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"$1.5MM", f(1_500_000)},
		{"2m", f(2_000_000)},
		{"500k", f(500_000)},
		{"750,000", f(750_000)},
		{"$5,000,000+", f(5_000_000)},
		{"", nil},
		{"call us", nil},
	}
	for _, tc := range cases {
		got := ParseLoanAmount(tc.in)
		switch {
		case tc.want == nil && got != nil:
			t.Fatalf("%q: got %v, want nil", tc.in, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Fatalf("%q: got %v, want %v", tc.in, got, *tc.want)
		}
	}
}
