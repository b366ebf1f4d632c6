package mysql

import (
	"context"
	"testing"

	dealDomain "loanflow-backend/internal/domain/deal"
	eventDomain "loanflow-backend/internal/domain/event"
)

func TestEventRepository_TimelineOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	to1, to2 := dealDomain.StageSubmitted, dealDomain.StageUnderReview
	rows := []*eventDomain.DealEvent{
		{EventID: "e-1", DealID: "d-1", EventType: eventDomain.TypeStageChange, ToStage: &to1, Visibility: eventDomain.VisibilityInternal},
		{EventID: "e-2", DealID: "d-1", EventType: eventDomain.TypeNote, Note: "called broker", Visibility: eventDomain.VisibilityInternal},
		{EventID: "e-3", DealID: "d-1", EventType: eventDomain.TypeStageChange, ToStage: &to2, Visibility: eventDomain.VisibilityPartner},
		{EventID: "e-9", DealID: "d-other", EventType: eventDomain.TypeNote, Note: "unrelated", Visibility: eventDomain.VisibilityInternal},
	}
	for _, e := range rows {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("create %s: %v", e.EventID, err)
		}
	}

	out, err := repo.ListByDealID(ctx, "d-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len = %d", len(out))
	}
	for i, want := range []string{"e-1", "e-2", "e-3"} {
		if out[i].EventID != want {
			t.Fatalf("order[%d] = %s, want %s", i, out[i].EventID, want)
		}
	}
}

func TestEventRepository_VisibilityFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	rows := []*eventDomain.DealEvent{
		{EventID: "e-1", DealID: "d-1", EventType: eventDomain.TypeNote, Note: "internal only", Visibility: eventDomain.VisibilityInternal},
		{EventID: "e-2", DealID: "d-1", EventType: eventDomain.TypeNote, Note: "for the partner", Visibility: eventDomain.VisibilityPartner},
		{EventID: "e-3", DealID: "d-1", EventType: eventDomain.TypeNote, Note: "for the borrower", Visibility: eventDomain.VisibilityBorrower},
	}
	for _, e := range rows {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	out, err := repo.ListVisibleByDealID(ctx, "d-1", []eventDomain.Visibility{
		eventDomain.VisibilityBorrower, eventDomain.VisibilityPartner,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}
	for _, e := range out {
		if e.Visibility == eventDomain.VisibilityInternal {
			t.Fatalf("internal event leaked: %+v", e)
		}
	}
}

func TestEventRepository_LenderMetadataRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	e := &eventDomain.DealEvent{
		EventID: "e-1", DealID: "d-1",
		EventType:  eventDomain.TypeLenderAssigned,
		Lender:     &eventDomain.LenderAssignment{LenderID: "l-1", LenderName: "Alamo Capital"},
		Visibility: eventDomain.VisibilityPartner,
	}
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	out, err := repo.ListByDealID(ctx, "d-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 || out[0].Lender == nil || out[0].Lender.LenderName != "Alamo Capital" {
		t.Fatalf("out = %+v", out)
	}
}
