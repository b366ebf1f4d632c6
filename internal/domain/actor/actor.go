package actor

import "errors"

// ErrForbidden is returned when the acting identity lacks the role an
// operation requires.
var ErrForbidden = errors.New("forbidden")

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RolePartner Role = "PARTNER"
)

// Actor is the per-request identity descriptor resolved by the auth boundary
// before any core operation runs. Authentication itself happens upstream;
// core operations only check roles.
type Actor struct {
	ID   string
	Role Role
	// PartnerID is the public partner id, set only for PARTNER actors.
	PartnerID string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

func (a Actor) IsPartner() bool { return a.Role == RolePartner && a.PartnerID != "" }

// Known reports whether the actor can act at all. A PARTNER role without a
// partner id is treated as unknown; every partner-scoped check depends on it.
func (a Actor) Known() bool { return a.IsAdmin() || a.IsPartner() }
