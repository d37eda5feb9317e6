// Package authz is the pure authorization decision engine. Every mutating or
// actor-scoped operation in the core calls Decide with the acting identity, the
// set of roles allowed to attempt the action, and an optional ownership
// predicate for the target resource. The engine has no side effects and does no
// I/O: resource state is captured by the caller inside the predicate.
package authz

import (
	"fmt"

	"github.com/fieldserve/jobs-system/internal/core/domain"
)

// Denial reasons carried on returned errors, used by the metrics layer.
const (
	ReasonRoleMismatch = "role_mismatch"
	ReasonNotOwner     = "ownership_violation"
)

// DenialError wraps domain.ErrForbidden with the reason the check failed.
type DenialError struct {
	Reason string
}

func (e *DenialError) Error() string {
	return fmt.Sprintf("%v (%s)", domain.ErrForbidden, e.Reason)
}

func (e *DenialError) Unwrap() error { return domain.ErrForbidden }

// Ownership is a predicate deciding whether the actor owns the target resource.
// It is evaluated only for USER actors: admins satisfy any ownership check.
type Ownership func(actor domain.Actor) bool

// Decide returns nil when the actor may perform the action, or an error
// wrapping domain.ErrForbidden when it may not.
//
//   - An actor with a missing or unrecognized role is always denied.
//   - An empty requiredRoles set means any authenticated actor passes the role
//     gate (authentication only, no role restriction).
//   - A non-empty set requires membership.
//   - The ownership predicate, when given, must hold for USER actors; ADMIN
//     bypasses it.
func Decide(actor domain.Actor, requiredRoles []domain.Role, owns Ownership) error {
	if !actor.Role.Valid() {
		return &DenialError{Reason: ReasonRoleMismatch}
	}

	if len(requiredRoles) > 0 {
		member := false
		for _, r := range requiredRoles {
			if actor.Role == r {
				member = true
				break
			}
		}
		if !member {
			return &DenialError{Reason: ReasonRoleMismatch}
		}
	}

	if owns != nil && actor.Role != domain.RoleAdmin {
		if !owns(actor) {
			return &DenialError{Reason: ReasonNotOwner}
		}
	}

	return nil
}

// AdminOnly is shorthand for the most common required-role set.
var AdminOnly = []domain.Role{domain.RoleAdmin}

// AnyAuthenticated is the empty role set: authentication without a role gate.
var AnyAuthenticated = []domain.Role{}
