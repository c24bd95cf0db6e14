package tui

import (
	"shipping_portal_backend/internal/lookup"
	"shipping_portal_backend/platform/novaposhta"
)

// Role tags which party a picker belongs to.
type Role int

const (
	RoleSender Role = iota
	RoleRecipient
)

func (r Role) String() string {
	if r == RoleSender {
		return "sender"
	}
	return "recipient"
}

// CitiesUpdated carries a city searcher snapshot into the update loop.
type CitiesUpdated struct {
	Role  Role
	State lookup.CityState
}

// WarehousesUpdated carries a warehouse loader snapshot into the update loop.
type WarehousesUpdated struct {
	Role  Role
	State lookup.WarehouseState
}

// DeclarationSubmitted reports the outcome of a declaration submission.
type DeclarationSubmitted struct {
	Document novaposhta.InternetDocument
	Err      error
}
