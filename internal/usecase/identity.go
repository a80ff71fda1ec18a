package usecase

import domain "github.com/Eddi3MS/delivery-bd/internal/entity"

// Identity is the authenticated caller, resolved once per request.
type Identity struct {
	ID   string
	Role domain.Role
}

func (i Identity) IsAdmin() bool { return i.Role == domain.RoleAdmin }

func requireAdmin(actor Identity) error {
	if !actor.IsAdmin() {
		return fail(ErrUnauthorized, "Unauthorized.")
	}
	return nil
}
