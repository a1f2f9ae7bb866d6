package uow

import (
	"context"
	passwordreset "recovery/internal/core/domain/password_reset"
	"recovery/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	Sessions() user.SessionRepository
	PasswordResets() passwordreset.Repository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
