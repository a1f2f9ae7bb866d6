package passwordreset

import (
	"context"
	e "recovery/internal/core/domain/errors"
	"recovery/internal/core/domain/user"
	"time"
)

// Invalidator deactivates every active reset of a user.
type Invalidator struct {
	now func() time.Time
}

func NewInvalidator(now func() time.Time) *Invalidator {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Invalidator{now: now}
}

// Run returns the number of deactivated resets. It is a no-op for users
// without active resets.
func (i *Invalidator) Run(ctx context.Context, resets Repository, userID user.ID) (int, error) {
	all, err := resets.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	at := i.now()
	active := Active(all, at)
	if len(active) == 0 {
		return 0, nil
	}

	ids := make([]ID, 0, len(active))
	for _, r := range active {
		ids = append(ids, r.ID)
	}
	if err := resets.Deactivate(ctx, ids, at); err != nil {
		return 0, err
	}
	return len(ids), nil
}
