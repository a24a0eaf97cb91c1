// Package authz is the single role guard applied before any admin command
// reaches the ledger or the loan tracker.
package authz

import (
	"github.com/Anneshtika/library-management-website/model"
	"github.com/Anneshtika/library-management-website/util/apperr"
)

var rank = map[model.Role]int{
	model.RoleUser:  1,
	model.RoleAdmin: 2,
}

// RequireRole fails with a Forbidden error unless actor is authenticated and
// holds role or a higher one.
func RequireRole(actor model.Actor, role model.Role) error {
	if actor.Anonymous() {
		return apperr.Newf(apperr.ErrForbidden, "authentication required")
	}
	if rank[actor.Role] < rank[role] || rank[role] == 0 {
		return apperr.Newf(apperr.ErrForbidden, "requires role %s", role)
	}
	return nil
}

// RequireOwner lets the owner of a record, or an admin, through.
func RequireOwner(actor model.Actor, ownerID string) error {
	if err := RequireRole(actor, model.RoleUser); err != nil {
		return err
	}
	if actor.ID != ownerID && !actor.IsAdmin() {
		return apperr.New(apperr.ErrNotOwner)
	}
	return nil
}
