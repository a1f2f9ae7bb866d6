package passwordreset

import (
	"crypto/subtle"
	"fmt"
	e "recovery/internal/core/domain/errors"
	"recovery/internal/core/domain/user"
	"strings"
	"time"
)

type ID int64

// Token is the opaque secret embedded into the reset link.
type Token string

func (t Token) String() string {
	return "***"
}

// IsBlank reports whether the token is empty or whitespace only.
func (t Token) IsBlank() bool {
	return strings.TrimSpace(string(t)) == ""
}

type TokenGenerator interface {
	GenerateToken() Token
}

type PasswordReset struct {
	ID        ID
	UserID    user.ID
	Token     Token
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the reset is no longer usable at the given moment.
// The expiration instant itself is already expired.
func (r PasswordReset) IsExpired(at time.Time) bool {
	return !at.Before(r.ExpiresAt)
}

func (r PasswordReset) Validate() error {
	if r.UserID == 0 {
		return e.NewInvalidStateError(fmt.Sprintf("user is not set for password reset %d", r.ID))
	}
	if r.Token.IsBlank() {
		return e.NewInvalidStateError(fmt.Sprintf("token is not set for password reset %d", r.ID))
	}
	if r.ExpiresAt.IsZero() {
		return e.NewInvalidStateError(fmt.Sprintf("expiration is not set for password reset %d", r.ID))
	}
	return nil
}

type CreateInput struct {
	UserID    user.ID
	Token     Token
	CreatedAt time.Time
	ExpiresAt time.Time
}

func NewCreateInput(userID user.ID, token Token, now time.Time, timeLimit time.Duration) CreateInput {
	return CreateInput{
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(timeLimit),
	}
}

func (i CreateInput) Validate() error {
	if i.UserID == 0 {
		return e.NewInvalidStateError("password reset must belong to a user")
	}
	if i.Token.IsBlank() {
		return e.NewInvalidStateError("password reset token must not be blank")
	}
	if !i.ExpiresAt.After(i.CreatedAt) {
		return e.NewInvalidStateError("password reset must expire after it has been created")
	}
	return nil
}

// Find returns the reset whose token equals the given one. Tokens are
// compared in constant time and every candidate is checked.
func Find(resets []PasswordReset, token Token) (found PasswordReset, ok bool) {
	if token.IsBlank() {
		return found, false
	}
	for _, r := range resets {
		if subtle.ConstantTimeCompare([]byte(r.Token), []byte(token)) == 1 && !ok {
			found, ok = r, true
		}
	}
	return found, ok
}

// Active returns the resets which are not expired at the given moment.
func Active(resets []PasswordReset, at time.Time) []PasswordReset {
	active := make([]PasswordReset, 0, len(resets))
	for _, r := range resets {
		if !r.IsExpired(at) {
			active = append(active, r)
		}
	}
	return active
}
