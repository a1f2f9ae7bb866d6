package user

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

// PasswordPolicy decides whether a new password may be stored.
type PasswordPolicy struct {
	MinLength int
	MaxLength int
}

func NewPasswordPolicy(minLength int, maxLength int) PasswordPolicy {
	if minLength < 1 {
		minLength = 1
	}
	if maxLength < minLength {
		maxLength = minLength
	}
	return PasswordPolicy{MinLength: minLength, MaxLength: maxLength}
}

// Check returns an error wrapping ErrInvalidPassword for blank passwords
// and passwords outside of the allowed length.
func (p PasswordPolicy) Check(password RawPassword) error {
	raw := string(password)
	if err := validation.Validate(strings.TrimSpace(raw), validation.Required); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPassword, err)
	}
	if err := validation.Validate(raw, validation.RuneLength(p.MinLength, p.MaxLength)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPassword, err)
	}
	return nil
}
