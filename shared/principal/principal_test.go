package principal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"rental/shared/principal"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want principal.Role
	}{
		{raw: "customer", want: principal.RoleCustomer},
		{raw: "CUSTOMER", want: principal.RoleCustomer},
		{raw: " Admin ", want: principal.RoleAdmin},
		{raw: "ADMIN", want: principal.RoleAdmin},
		{raw: "operator", want: principal.RoleOperator},
		{raw: "FRANCHISE", want: principal.RoleOperator},
		{raw: "guest", want: principal.RoleUnknown},
		{raw: "", want: principal.RoleUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, principal.ParseRole(tt.raw))
		})
	}
}

func TestPrincipal_Is(t *testing.T) {
	p := principal.Principal{ID: "u-1", Role: principal.RoleOperator}

	assert.True(t, p.Is(principal.RoleOperator))
	assert.True(t, p.Is(principal.RoleAdmin, principal.RoleOperator))
	assert.False(t, p.Is(principal.RoleCustomer))
	assert.False(t, p.IsZero())
	assert.True(t, principal.Principal{}.IsZero())
}

func TestContextRoundTrip(t *testing.T) {
	p := principal.Principal{ID: "u-1", Role: principal.RoleCustomer, Email: "a@b.c"}

	ctx := principal.WithContext(context.Background(), p)

	assert.Equal(t, p, principal.FromContext(ctx))
	assert.True(t, principal.FromContext(context.Background()).IsZero())
}
