package lender

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("lender not found")

// Nationwide is the coverage sentinel meaning "every state". A nationwide
// lender scores below a lender with a literal state match.
const Nationwide = "NATIONWIDE"

// Lender is reference data: an external capital source that can fund deals.
// Mutated only by admin import/edit; the matching path is read-only.
type Lender struct {
	ID       uint64 `gorm:"primaryKey;column:id" json:"-"`
	LenderID string `gorm:"size:32;uniqueIndex:ux_lenders_lender_id" json:"lender_id"`
	Name     string `gorm:"size:160;index:idx_lenders_name" json:"name"`

	ContactName  string `gorm:"size:120" json:"contact_name,omitempty"`
	ContactEmail string `gorm:"size:120" json:"contact_email,omitempty"`
	ContactPhone string `gorm:"size:32" json:"contact_phone,omitempty"`
	Website      string `gorm:"size:200" json:"website,omitempty"`
	LenderType   string `gorm:"size:40" json:"lender_type,omitempty"`

	// Nil bounds mean unbounded on that side.
	MinLoanAmount *float64 `gorm:"type:decimal(18,2)" json:"min_loan_amount"`
	MaxLoanAmount *float64 `gorm:"type:decimal(18,2)" json:"max_loan_amount"`

	CoverageStates   []string `gorm:"serializer:json" json:"coverage_states"`
	PropertyTypes    []string `gorm:"serializer:json" json:"property_types"`
	TransactionTypes []string `gorm:"serializer:json" json:"transaction_types"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Lender) TableName() string { return "lenders" }

type AssignmentStatus string

const StatusAssigned AssignmentStatus = "ASSIGNED"

// DealLender records that a lender was assigned to a deal at some point.
// Keyed by the (deal, lender) pair; a deal accumulates rows over its life and
// the current one is whatever Deal.AssignedLenderID points at.
type DealLender struct {
	ID        uint64           `gorm:"primaryKey;column:id" json:"-"`
	DealID    string           `gorm:"size:32;uniqueIndex:ux_deal_lenders_pair,priority:1" json:"deal_id"`
	LenderID  string           `gorm:"size:32;uniqueIndex:ux_deal_lenders_pair,priority:2" json:"lender_id"`
	Status    AssignmentStatus `gorm:"size:16;default:'ASSIGNED'" json:"status"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DealLender) TableName() string { return "deal_lenders" }
