package partner

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("partner not found")

// Partner is a referring entity (brokerage, agency). Owns many deals and
// earns a commission share on each.
type Partner struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	PartnerID   string `gorm:"size:32;uniqueIndex:ux_partners_partner_id" json:"partner_id"`
	CompanyName string `gorm:"size:120" json:"company_name"`
	ContactName string `gorm:"size:120" json:"contact_name"`
	Email       string `gorm:"size:120;index" json:"email"`
	Phone       string `gorm:"size:32" json:"phone"`
	// DefaultCommissionPct is the partner's share of the gross commission as
	// a fraction in [0,1], applied unless a deal overrides it.
	DefaultCommissionPct float64   `gorm:"type:decimal(6,4)" json:"default_commission_pct"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Partner) TableName() string { return "partners" }
