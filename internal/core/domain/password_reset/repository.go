package passwordreset

import (
	"context"
	"recovery/internal/core/domain/user"
	"time"
)

type Repository interface {
	Create(ctx context.Context, input CreateInput) (PasswordReset, error)
	GetByUserID(ctx context.Context, userID user.ID) ([]PasswordReset, error)
	// GetByUserIDWithLock locks the returned rows until the surrounding
	// transaction ends.
	GetByUserIDWithLock(ctx context.Context, userID user.ID) ([]PasswordReset, error)
	// Deactivate moves expiration of the given resets to the given moment.
	// Resets which already expire earlier are left untouched.
	Deactivate(ctx context.Context, ids []ID, at time.Time) error
}

type Notifier interface {
	SendPasswordChangeNotification(ctx context.Context, u user.User, r PasswordReset) error
}
