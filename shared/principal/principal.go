// Package principal carries the authenticated caller through request handling.
//
// Roles arrive as free-form claim strings. ParseRole normalises them
// case-insensitively and maps the legacy "franchise" role onto RoleOperator,
// so "ADMIN", "admin" and "Admin" are the same role.
package principal

import (
	"context"
	"strings"

	"rental/shared/constant"
)

type Role string

const (
	RoleUnknown  Role = ""
	RoleCustomer Role = "customer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

var roleAliases = map[string]Role{
	"customer":  RoleCustomer,
	"operator":  RoleOperator,
	"franchise": RoleOperator,
	"admin":     RoleAdmin,
}

func ParseRole(raw string) Role {
	role, ok := roleAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return RoleUnknown
	}

	return role
}

func (r Role) String() string {
	return string(r)
}

type Principal struct {
	ID    string
	Role  Role
	Email string
}

func (p Principal) Is(roles ...Role) bool {
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}

	return false
}

func (p Principal) IsZero() bool {
	return p.ID == constant.Empty
}

func WithContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, constant.ContextKeyPrincipal, p)
}

// FromContext returns the principal stored by the auth middleware. A zero
// Principal is returned for anonymous requests.
func FromContext(ctx context.Context) Principal {
	p, _ := ctx.Value(constant.ContextKeyPrincipal).(Principal)

	return p
}
