package services

import (
	"testing"

	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityService_SetFinancePin(t *testing.T) {
	env := newTestEnv(t)

	// first time needs no current PIN
	require.NoError(t, env.svc.Security.SetFinancePin(ctx, finance, "", "2468"))
	state := env.state(t)
	require.True(t, state.HasFinancePin())
	assert.NotEqual(t, "2468", *state.FinancePin)
	assert.True(t, access.MatchPin(*state.FinancePin, "2468"))

	// changing it needs the current one
	err := env.svc.Security.SetFinancePin(ctx, finance, "0000", "1357")
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Current finance PIN incorrect", err.Error())

	require.NoError(t, env.svc.Security.SetFinancePin(ctx, finance, "2468", "1357"))
	assert.True(t, access.MatchPin(*env.state(t).FinancePin, "1357"))
}

func TestSecurityService_SetFinancePin_FinanceOnly(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.Security.SetFinancePin(ctx, notice, "", "2468")
	var authErr *AuthorizationError
	assert.ErrorAs(t, err, &authErr)
	assert.False(t, env.state(t).HasFinancePin())
}

func TestSecurityService_SetFinancePin_Validation(t *testing.T) {
	env := newTestEnv(t)

	assert.EqualError(t, env.svc.Security.SetFinancePin(ctx, finance, "", ""), "Enter new finance PIN")

	err := env.svc.Security.SetFinancePin(ctx, finance, "", "12")
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestSecurityService_OverrideFinancePin(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.svc.Security.SetFinancePin(ctx, finance, "", "2468"))

	// only a privileged session may override
	err := env.svc.Security.OverrideFinancePin(ctx, finance, access.RolePatron, "8888", "9999")
	assert.EqualError(t, err, "Only Patron or President can override")

	err = env.svc.Security.OverrideFinancePin(ctx, patron, access.RoleFinance, "3333", "9999")
	assert.EqualError(t, err, "Only Patron or President can override")

	err = env.svc.Security.OverrideFinancePin(ctx, patron, access.RolePatron, "1111", "9999")
	assert.EqualError(t, err, "Incorrect leader PIN")
	assert.True(t, access.MatchPin(*env.state(t).FinancePin, "2468"))

	require.NoError(t, env.svc.Security.OverrideFinancePin(ctx, patron, access.RolePresident, "1111", "9999"))
	assert.True(t, access.MatchPin(*env.state(t).FinancePin, "9999"))
}
