// Package access maps cabinet roles to their PINs and decides who may run which operation.
package access

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Cabinet roles
const (
	RolePresident     = "President"
	RolePrimeMinister = "PrimeMinister"
	RoleFinance       = "Finance"
	RoleSkills        = "Skills"
	RoleNotice        = "Notice"
	RoleChiefJustice  = "ChiefJustice"
	RolePermanentSec  = "PermanentSec"
	RolePatron        = "Patron"
	RoleVicePresident = "VicePresident"
)

var (
	ErrNoSession      = errors.New("no active role session")
	ErrUnknownRole    = errors.New("unknown role")
	ErrWrongPin       = errors.New("incorrect PIN")
	ErrRoleNotAllowed = errors.New("role is not allowed to perform this operation")
	ErrNotPrivileged  = errors.New("only Patron or President can override")
	ErrPinTooShort    = errors.New("PIN must have at least 4 characters")
)

// roles allowed to override the finance PIN
var privilegedDefaults = []string{RolePatron, RolePresident}

// DefaultPins is the static role table the cabinet ships with
func DefaultPins() map[string]string {
	return map[string]string{
		RolePresident:     "1111",
		RolePrimeMinister: "2222",
		RoleFinance:       "3333",
		RoleSkills:        "4444",
		RoleNotice:        "5555",
		RoleChiefJustice:  "6666",
		RolePermanentSec:  "7777",
		RolePatron:        "8888",
		RoleVicePresident: "9999",
	}
}

// Identity is the role a caller acted as when logging in. The zero value has no session.
type Identity struct {
	Role string
}

// Anonymous returns an identity without a session
func Anonymous() Identity {
	return Identity{}
}

// AsRole returns an identity for role
func AsRole(role string) Identity {
	return Identity{Role: role}
}

// Authenticated returns true if a role session is active
func (i Identity) Authenticated() bool {
	return i.Role != ""
}

// Is reports whether the identity acts as one of roles
func (i Identity) Is(roles ...string) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

func (i Identity) String() string {
	if i.Role == "" {
		return "anonymous"
	}
	return i.Role
}

// Gate validates role sessions against the PIN table
type Gate struct {
	pins       map[string]string
	privileged []string
}

// NewGate builds a gate over pins. A nil or empty map uses DefaultPins.
func NewGate(pins map[string]string) *Gate {
	if len(pins) == 0 {
		pins = DefaultPins()
	}
	table := make(map[string]string, len(pins))
	for role, pin := range pins {
		table[role] = pin
	}
	return &Gate{pins: table, privileged: privilegedDefaults}
}

// Roles returns the known role names, sorted
func (g *Gate) Roles() []string {
	roles := make([]string, 0, len(g.pins))
	for role := range g.pins {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// Login checks a role and its static PIN and returns the resulting identity
func (g *Gate) Login(role, pin string) (Identity, error) {
	expected, ok := g.pins[role]
	if !ok {
		return Identity{}, fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}
	if !equalText(expected, pin) {
		return Identity{}, ErrWrongPin
	}
	return Identity{Role: role}, nil
}

// Authorize accepts any identity whose role is known
func (g *Gate) Authorize(id Identity) error {
	if !id.Authenticated() {
		return ErrNoSession
	}
	if _, ok := g.pins[id.Role]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRole, id.Role)
	}
	return nil
}

// RequireRole authorizes id and checks it acts as one of roles
func (g *Gate) RequireRole(id Identity, roles ...string) error {
	if err := g.Authorize(id); err != nil {
		return err
	}
	if !id.Is(roles...) {
		return fmt.Errorf("%w: requires %s", ErrRoleNotAllowed, strings.Join(roles, " or "))
	}
	return nil
}

// IsPrivileged reports whether role may override the finance PIN
func (g *Gate) IsPrivileged(role string) bool {
	for _, r := range g.privileged {
		if r == role {
			return true
		}
	}
	return false
}

// PrivilegedRoles returns the roles that may override the finance PIN
func (g *Gate) PrivilegedRoles() []string {
	return append([]string(nil), g.privileged...)
}

// VerifyPrivileged checks a re-supplied privileged role and its static PIN
func (g *Gate) VerifyPrivileged(role, pin string) error {
	if !g.IsPrivileged(role) {
		return ErrNotPrivileged
	}
	expected, ok := g.pins[role]
	if !ok || !equalText(expected, pin) {
		return ErrWrongPin
	}
	return nil
}

// HashPin returns the bcrypt hash stored for a finance PIN
func HashPin(pin string) (string, error) {
	if len(pin) < 4 {
		return "", ErrPinTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// MatchPin compares a supplied PIN with a stored one. Stored values may be
// bcrypt hashes or plain text imported from older exports.
func MatchPin(stored, supplied string) bool {
	if stored == "" {
		return false
	}
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return equalText(stored, supplied)
}

func isBcrypt(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

func equalText(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
