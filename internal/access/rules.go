package access

import (
	"github.com/SuperFitApp/SF-Backend/internal/utils"
)

// ResourceKind names the resource a route's ownership rule is checked
// against.
type ResourceKind string

const (
	KindTrainee     ResourceKind = "trainee"
	KindWorkout     ResourceKind = "workout"
	KindMeasurement ResourceKind = "measurement"
	KindInvoice     ResourceKind = "invoice"
)

// Relation selects which ownership chain to walk for a given role: the
// supervising instructor's chain or the trainee's own account chain.
type Relation string

const (
	RelationSupervisor Relation = "supervisor"
	RelationSelf       Relation = "self"
)

// Outcome is the terminal result of one access decision. Decisions are made
// once per request and never retried.
type Outcome int

const (
	OutcomeAllow Outcome = iota
	OutcomeUnauthenticated
	OutcomeForbidden
)

// OwnershipRule gates roles that lack unconditional authority. Param names
// the URL parameter carrying the target resource id; Eligible maps each
// ownership-gated role to the chain it must satisfy.
type OwnershipRule struct {
	Kind     ResourceKind
	Param    string
	Eligible map[utils.Role]Relation
}

// Rule is the static access declaration attached to a route: roles allowed
// unconditionally, plus an optional ownership gate for the rest.
type Rule struct {
	Roles     []utils.Role
	Ownership *OwnershipRule
}

// Resolver answers whether the account identified by email owns the resource
// through the given relation chain. A missing resource and a non-owned
// resource both come back false; errors are reserved for the store itself
// failing.
type Resolver interface {
	Owns(email string, kind ResourceKind, rel Relation, resourceID string) (bool, error)
}

// Decide runs the two-level check: authentication, then role membership,
// then the ownership chain when the rule declares one. ident is nil for
// anonymous requests.
func Decide(ident *utils.Identity, rule Rule, resourceID string, res Resolver) (Outcome, error) {
	if ident == nil {
		return OutcomeUnauthenticated, nil
	}

	for _, role := range rule.Roles {
		if role == ident.Role {
			return OutcomeAllow, nil
		}
	}

	if rule.Ownership != nil {
		rel, eligible := rule.Ownership.Eligible[ident.Role]
		if eligible && resourceID != "" {
			owns, err := res.Owns(ident.Email, rule.Ownership.Kind, rel, resourceID)
			if err != nil {
				return OutcomeForbidden, err
			}
			if owns {
				return OutcomeAllow, nil
			}
		}
	}

	return OutcomeForbidden, nil
}
