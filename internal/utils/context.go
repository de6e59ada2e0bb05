package utils

import (
	"context"
)

// Role is the closed set of account roles. Routes declare which roles may
// reach them; the token carries the caller's role as a claim.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleInstructor Role = "instructor"
	RoleTrainee    Role = "trainee"
)

// ParseRole maps a role claim back to a known Role. Unknown values are
// rejected so a forged or stale claim never grants an undefined role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleInstructor, RoleTrainee:
		return Role(s), true
	}
	return "", false
}

// Identity is the request-scoped projection of a validated token. It lives
// only in the request context and is never persisted or shared.
type Identity struct {
	Email string
	Role  Role
}

type contextKey string

const ContextIdentityKey contextKey = "identity"

func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, ContextIdentityKey, ident)
}

func GetIdentityFromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(ContextIdentityKey).(Identity)
	return ident, ok
}
