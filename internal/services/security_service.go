package services

import (
	"context"
	"errors"
	"time"

	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/repository"
)

const (
	opSetFinancePin      = "set_finance_pin"
	opOverrideFinancePin = "override_finance_pin"
)

// SecurityService manages the finance PIN that guards destructive operations
type SecurityService struct {
	*Ledger
}

// NewSecurityService creates a new security service
func NewSecurityService(ledger *Ledger) *SecurityService {
	return &SecurityService{Ledger: ledger}
}

// SetFinancePin stores a new finance PIN. Once a PIN exists the current one must be supplied.
func (s *SecurityService) SetFinancePin(ctx context.Context, id access.Identity, currentPin, newPin string) (err error) {
	defer s.track(opSetFinancePin, time.Now(), &err)

	if err := gateError(s.gate.RequireRole(id, access.RoleFinance)); err != nil {
		return err
	}
	if !required(newPin) {
		return invalid("Enter new finance PIN")
	}
	hashed, err := hashPin(newPin)
	if err != nil {
		return err
	}

	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		state, err := r.State.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if state.HasFinancePin() && !access.MatchPin(*state.FinancePin, currentPin) {
			return unauthorized("Current finance PIN incorrect")
		}
		return r.State.SetFinancePin(ctx, &hashed)
	})
	if err != nil {
		return err
	}
	s.committed(ctx, opSetFinancePin, id, "", "", zero)
	return nil
}

// OverrideFinancePin replaces the finance PIN without the current one. The session must belong
// to a privileged role and that role's PIN must be re-entered.
func (s *SecurityService) OverrideFinancePin(ctx context.Context, id access.Identity, role, rolePin, newPin string) (err error) {
	defer s.track(opOverrideFinancePin, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return err
	}
	if !s.gate.IsPrivileged(id.Role) {
		return unauthorized("Only Patron or President can override")
	}
	if !required(role, rolePin, newPin) {
		return invalid("Fill override fields")
	}
	switch err := s.gate.VerifyPrivileged(role, rolePin); {
	case errors.Is(err, access.ErrNotPrivileged):
		return unauthorized("Only Patron or President can override")
	case err != nil:
		return unauthorized("Incorrect leader PIN")
	}
	hashed, err := hashPin(newPin)
	if err != nil {
		return err
	}

	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		if _, err := r.State.GetForUpdate(ctx); err != nil {
			return err
		}
		return r.State.SetFinancePin(ctx, &hashed)
	})
	if err != nil {
		return err
	}
	s.committed(ctx, opOverrideFinancePin, id, role, "", zero)
	return nil
}

// checkFinancePin verifies pin against the stored finance PIN inside a transaction
func checkFinancePin(ctx context.Context, r *repository.Repositories, pin string) error {
	state, err := r.State.GetForUpdate(ctx)
	if err != nil {
		return err
	}
	if !state.HasFinancePin() {
		return conflict("No finance PIN set. Use override.")
	}
	if !access.MatchPin(*state.FinancePin, pin) {
		return unauthorized("Finance PIN incorrect")
	}
	return nil
}

func hashPin(pin string) (string, error) {
	hashed, err := access.HashPin(pin)
	if errors.Is(err, access.ErrPinTooShort) {
		return "", invalid("Finance PIN must have at least 4 characters")
	}
	return hashed, err
}
