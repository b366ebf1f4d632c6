package commission

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("commission not found")
	// ErrNotConfirmed rejects marking a commission paid before it has been
	// confirmed at close.
	ErrNotConfirmed = errors.New("commission is not confirmed")
)

type Status string

const (
	StatusEstimated Status = "ESTIMATED"
	StatusConfirmed Status = "CONFIRMED"
	StatusPaid      Status = "PAID"
)

// Commission is the payout owed to the referring partner, one-to-one with a
// deal. Created ESTIMATED off the requested amount at submission, recomputed
// and CONFIRMED when the deal closes, and PAID only by explicit admin action.
//
// Invariant: PartnerAmount == GrossCommission * PartnerPct at every state.
type Commission struct {
	ID           uint64 `gorm:"primaryKey;column:id" json:"-"`
	CommissionID string `gorm:"size:32;uniqueIndex:ux_commissions_commission_id" json:"commission_id"`
	DealID       string `gorm:"size:32;uniqueIndex:ux_commissions_deal" json:"deal_id"`
	PartnerID    string `gorm:"size:32;index:idx_commissions_partner" json:"partner_id"`

	PartnerPct       float64    `gorm:"type:decimal(6,4)" json:"partner_pct"`
	Status           Status     `gorm:"size:16;default:'ESTIMATED'" json:"status"`
	GrossCommission  float64    `gorm:"type:decimal(18,2)" json:"gross_commission"`
	PartnerAmount    float64    `gorm:"type:decimal(18,2)" json:"partner_amount"`
	ClosedLoanAmount *float64   `gorm:"type:decimal(18,2)" json:"closed_loan_amount"`
	PaidAt           *time.Time `json:"paid_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Commission) TableName() string { return "commissions" }
