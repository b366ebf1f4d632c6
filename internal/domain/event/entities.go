package event

import (
	"time"

	"loanflow-backend/internal/domain/deal"
)

type Type string

const (
	TypeStageChange    Type = "STAGE_CHANGE"
	TypeNote           Type = "NOTE"
	TypeLenderAssigned Type = "LENDER_ASSIGNED"
)

type Visibility string

const (
	VisibilityInternal Visibility = "INTERNAL"
	VisibilityPartner  Visibility = "PARTNER"
	VisibilityBorrower Visibility = "BORROWER"
)

// LenderAssignment is the structured metadata carried by LENDER_ASSIGNED
// events. Kept as a typed variant rather than an open map so the payload is
// statically distinguishable from note text.
type LenderAssignment struct {
	LenderID   string `json:"lender_id"`
	LenderName string `json:"lender_name"`
}

// DealEvent is one append-only audit row on a deal's timeline. Events are
// never updated or deleted; ordering by creation time defines the timeline.
type DealEvent struct {
	ID      uint64 `gorm:"primaryKey;column:id" json:"-"`
	EventID string `gorm:"size:32;uniqueIndex:ux_deal_events_event_id" json:"event_id"`
	DealID  string `gorm:"size:32;index:idx_deal_events_deal" json:"deal_id"`
	ActorID string `gorm:"size:32" json:"actor_id,omitempty"`

	EventType  Type        `gorm:"size:24" json:"event_type"`
	FromStage  *deal.Stage `gorm:"size:16" json:"from_stage,omitempty"`
	ToStage    *deal.Stage `gorm:"size:16" json:"to_stage,omitempty"`
	Note       string      `gorm:"type:text" json:"note,omitempty"`
	Visibility Visibility  `gorm:"size:16;default:'INTERNAL'" json:"visibility"`

	// Lender is set only on LENDER_ASSIGNED events.
	Lender *LenderAssignment `gorm:"serializer:json;column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_deal_events_created" json:"created_at"`
}

func (DealEvent) TableName() string { return "deal_events" }
