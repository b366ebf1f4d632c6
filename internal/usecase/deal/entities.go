package deal

import (
	"time"

	domain "loanflow-backend/internal/domain/deal"
)

type SubmitInput struct {
	LoanType        string `json:"loan_type"`
	TransactionType string `json:"transaction_type"`
	LoanPosition    string `json:"loan_position"`
	PropertyType    string `json:"property_type"`
	Occupancy       string `json:"occupancy"`
	PropertyAddress string `json:"property_address"`

	PurchasePrice           *float64   `json:"purchase_price"`
	NOI                     *float64   `json:"noi"`
	NOINotAvailable         bool       `json:"noi_not_available"`
	SignedPurchaseAgreement bool       `json:"signed_purchase_agreement"`
	InPlaceOccupancy        *float64   `json:"in_place_occupancy"`
	LoanAmountRequested     float64    `json:"loan_amount_requested"`
	TargetLTV               *float64   `json:"target_ltv"`
	EstimatedCloseDate      *time.Time `json:"estimated_close_date"`
	RecourseAcceptance      bool       `json:"recourse_acceptance"`
	PartnerCompensation     *float64   `json:"partner_compensation"`

	ClientName           string `json:"client_name"`
	ClientEmail          string `json:"client_email"`
	ClientPhone          string `json:"client_phone"`
	EnableClientTracking bool   `json:"enable_client_tracking"`
}

type TransitionInput struct {
	DealID       string   `json:"-"`
	TargetStage  string   `json:"target_stage"`
	Reason       string   `json:"reason"`
	ClosedAmount *float64 `json:"closed_amount"`
}

type DealDTO struct {
	DealID               string       `json:"deal_id"`
	ReferenceNumber      string       `json:"reference_number"`
	Stage                domain.Stage `json:"stage"`
	BorrowerAccessToken  string       `json:"borrower_access_token"`
	EnableClientTracking bool         `json:"enable_client_tracking"`
	CreatedAt            time.Time    `json:"created_at"`
}
