package response

import (
	passwordreset "recovery/internal/core/domain/password_reset"
	"recovery/internal/core/domain/user"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Email = string(du.Email)
	u.CreatedAt = du.CreatedAt
}

// PasswordReset never exposes the token.
type PasswordReset struct {
	ExpiresAt time.Time `json:"expires_at"`
}

func (r *PasswordReset) FromDomainPasswordReset(dr passwordreset.PasswordReset) {
	r.ExpiresAt = dr.ExpiresAt
}
