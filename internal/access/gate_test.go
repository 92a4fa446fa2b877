package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_Login(t *testing.T) {
	gate := NewGate(nil)

	id, err := gate.Login(RoleFinance, "3333")
	require.NoError(t, err)
	assert.Equal(t, RoleFinance, id.Role)
	assert.True(t, id.Authenticated())

	_, err = gate.Login(RoleFinance, "1111")
	assert.ErrorIs(t, err, ErrWrongPin)

	_, err = gate.Login("Treasurer", "3333")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestGate_AuthorizeAndRequireRole(t *testing.T) {
	gate := NewGate(nil)

	assert.ErrorIs(t, gate.Authorize(Anonymous()), ErrNoSession)
	assert.ErrorIs(t, gate.Authorize(AsRole("Janitor")), ErrUnknownRole)
	assert.NoError(t, gate.Authorize(AsRole(RoleNotice)))

	assert.NoError(t, gate.RequireRole(AsRole(RoleFinance), RoleFinance))
	assert.ErrorIs(t, gate.RequireRole(AsRole(RoleSkills), RoleFinance), ErrRoleNotAllowed)
	assert.ErrorIs(t, gate.RequireRole(Anonymous(), RoleFinance), ErrNoSession)
}

func TestGate_CustomPins(t *testing.T) {
	gate := NewGate(map[string]string{RoleFinance: "0000", RolePatron: "4321"})

	_, err := gate.Login(RoleFinance, "3333")
	assert.ErrorIs(t, err, ErrWrongPin)
	_, err = gate.Login(RoleFinance, "0000")
	assert.NoError(t, err)
	assert.Equal(t, []string{RoleFinance, RolePatron}, gate.Roles())
}

func TestGate_VerifyPrivileged(t *testing.T) {
	gate := NewGate(nil)

	assert.NoError(t, gate.VerifyPrivileged(RolePatron, "8888"))
	assert.NoError(t, gate.VerifyPrivileged(RolePresident, "1111"))
	assert.ErrorIs(t, gate.VerifyPrivileged(RolePatron, "1111"), ErrWrongPin)
	assert.ErrorIs(t, gate.VerifyPrivileged(RoleFinance, "3333"), ErrNotPrivileged)
}

func TestMatchPin(t *testing.T) {
	hashed, err := HashPin("2468")
	require.NoError(t, err)
	assert.NotEqual(t, "2468", hashed)

	assert.True(t, MatchPin(hashed, "2468"))
	assert.False(t, MatchPin(hashed, "2469"))

	// plain values from older exports
	assert.True(t, MatchPin("2468", "2468"))
	assert.False(t, MatchPin("2468", "246"))
	assert.False(t, MatchPin("", ""))

	_, err = HashPin("12")
	assert.ErrorIs(t, err, ErrPinTooShort)
}
