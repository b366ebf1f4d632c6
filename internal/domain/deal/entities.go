package deal

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("deal not found")
	ErrInvalidTransition = errors.New("invalid stage transition")
	ErrValidation        = errors.New("validation failed")
)

type LoanType string

const (
	LoanPermanentMortgage LoanType = "PERMANENT_MORTGAGE"
	LoanBridge            LoanType = "BRIDGE"
	LoanLand              LoanType = "LAND"
	LoanConstruction      LoanType = "CONSTRUCTION"
	LoanSBA               LoanType = "SBA"
	LoanOther             LoanType = "OTHER"
)

type TransactionType string

const (
	TxAcquisition TransactionType = "ACQUISITION"
	TxRefinance   TransactionType = "REFINANCE"
)

type LoanPosition string

const (
	PositionFirstMortgage LoanPosition = "FIRST_MORTGAGE"
	PositionSubordinate   LoanPosition = "SUBORDINATE"
)

type PropertyType string

const (
	PropMultifamily      PropertyType = "MULTIFAMILY"
	PropRetail           PropertyType = "RETAIL"
	PropOffice           PropertyType = "OFFICE"
	PropIndustrial       PropertyType = "INDUSTRIAL"
	PropMixedUse         PropertyType = "MIXED_USE"
	PropHospitality      PropertyType = "HOSPITALITY"
	PropLand             PropertyType = "LAND"
	PropSelfStorage      PropertyType = "SELF_STORAGE"
	PropHealthcare       PropertyType = "HEALTHCARE"
	PropShortTermRentals PropertyType = "SHORT_TERM_RENTALS"
	PropOther            PropertyType = "OTHER"
)

type Occupancy string

const (
	OccupancyOwnerOccupied Occupancy = "OWNER_OCCUPIED"
	OccupancyInvestment    Occupancy = "INVESTMENT"
)

// Deal is the central entity: one referral case tracked from submission to a
// terminal outcome. Rows are never deleted; all history lives in deal_events.
type Deal struct {
	ID              uint64 `gorm:"primaryKey;column:id" json:"-"`
	DealID          string `gorm:"size:32;uniqueIndex:ux_deals_deal_id" json:"deal_id"`
	ReferenceNumber string `gorm:"size:16;uniqueIndex:ux_deals_reference" json:"reference_number"`
	PartnerID       string `gorm:"size:32;index:idx_deals_partner" json:"partner_id"`
	BorrowerID      string `gorm:"size:32;index:idx_deals_borrower" json:"borrower_id"`

	LoanType        LoanType        `gorm:"size:32" json:"loan_type"`
	TransactionType TransactionType `gorm:"size:16" json:"transaction_type"`
	LoanPosition    LoanPosition    `gorm:"size:24;default:'FIRST_MORTGAGE'" json:"loan_position"`
	PropertyType    PropertyType    `gorm:"size:32" json:"property_type"`
	Occupancy       Occupancy       `gorm:"size:20;default:'INVESTMENT'" json:"occupancy"`
	PropertyAddress string          `gorm:"type:text" json:"property_address"`

	PurchasePrice           *float64   `gorm:"type:decimal(18,2)" json:"purchase_price"`
	NOI                     *float64   `gorm:"type:decimal(18,2)" json:"noi"`
	NOINotAvailable         bool       `json:"noi_not_available"`
	SignedPurchaseAgreement bool       `json:"signed_purchase_agreement"`
	InPlaceOccupancy        *float64   `gorm:"type:decimal(6,2)" json:"in_place_occupancy"`
	LoanAmountRequested     float64    `gorm:"type:decimal(18,2)" json:"loan_amount_requested"`
	LoanAmountClosed        *float64   `gorm:"type:decimal(18,2)" json:"loan_amount_closed"`
	TargetLTV               *float64   `gorm:"column:target_ltv;type:decimal(6,4)" json:"target_ltv"`
	EstimatedCloseDate      *time.Time `json:"estimated_close_date"`
	RecourseAcceptance      bool       `json:"recourse_acceptance"`
	// PartnerCompensation overrides the partner's default share for this deal.
	PartnerCompensation *float64 `gorm:"type:decimal(6,4)" json:"partner_compensation"`

	Stage            Stage   `gorm:"size:16;default:'SUBMITTED';index:idx_deals_stage" json:"stage"`
	DeclineReason    string  `gorm:"type:text" json:"decline_reason,omitempty"`
	LostReason       string  `gorm:"type:text" json:"lost_reason,omitempty"`
	AssignedLenderID *string `gorm:"size:32;index:idx_deals_assigned_lender" json:"assigned_lender_id"`

	EnableClientTracking bool   `json:"enable_client_tracking"`
	BorrowerAccessToken  string `gorm:"size:64;uniqueIndex:ux_deals_access_token" json:"-"`

	StageChangedAt time.Time `json:"stage_changed_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Deal) TableName() string { return "deals" }

// Borrower is the client a deal is submitted on behalf of. Created together
// with its Deal at submission time.
type Borrower struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	BorrowerID string    `gorm:"size:32;uniqueIndex:ux_borrowers_borrower_id" json:"borrower_id"`
	FirstName  string    `gorm:"size:80" json:"first_name"`
	LastName   string    `gorm:"size:80" json:"last_name"`
	Email      string    `gorm:"size:120" json:"email"`
	Phone      string    `gorm:"size:32" json:"phone"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Borrower) TableName() string { return "borrowers" }
