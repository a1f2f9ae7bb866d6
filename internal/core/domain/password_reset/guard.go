package passwordreset

import (
	"context"
	"errors"
	e "recovery/internal/core/domain/errors"
	"recovery/internal/core/domain/user"
	"time"
)

type GuardInput struct {
	UserID user.ID
	Token  Token
	// Lock the user's resets until the surrounding transaction ends.
	Lock bool
}

// Allowed is what a passed guard exposes to the caller.
type Allowed struct {
	User          user.User
	PasswordReset PasswordReset
}

type guardState struct {
	input   GuardInput
	users   user.UserRepository
	resets  Repository
	now     func() time.Time
	allowed Allowed
}

type guard func(ctx context.Context, s *guardState) error

// Guard decides whether a (user, token) pair may be used to set a new password.
// Guards run in a fixed order and the first failing one wins.
type Guard struct {
	now    func() time.Time
	guards []guard
}

func NewGuard(now func() time.Time) *Guard {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Guard{
		now:    now,
		guards: []guard{forbidMissingToken, forbidNonExistentPasswordReset},
	}
}

func (g *Guard) Check(
	ctx context.Context,
	users user.UserRepository,
	resets Repository,
	input GuardInput,
) (allowed Allowed, err error) {
	state := &guardState{input: input, users: users, resets: resets, now: g.now}
	for _, check := range g.guards {
		if err := check(ctx, state); err != nil {
			return allowed, err
		}
	}
	return state.allowed, nil
}

func forbidMissingToken(ctx context.Context, s *guardState) error {
	if s.input.Token.IsBlank() {
		return ErrMissingToken
	}
	return nil
}

func forbidNonExistentPasswordReset(ctx context.Context, s *guardState) error {
	var resets []PasswordReset
	var err error
	if s.input.Lock {
		resets, err = s.resets.GetByUserIDWithLock(ctx, s.input.UserID)
	} else {
		resets, err = s.resets.GetByUserID(ctx, s.input.UserID)
	}
	if err != nil {
		return err
	}

	reset, ok := Find(resets, s.input.Token)
	if !ok {
		return ErrPasswordResetDoesNotExist
	}
	// The clock must be read after the rows are locked.
	if reset.IsExpired(s.now()) {
		return ErrPasswordResetExpired
	}

	u, err := s.users.GetByID(ctx, reset.UserID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return ErrPasswordResetUserIsMissing
	}
	if err != nil {
		return err
	}

	s.allowed = Allowed{User: u, PasswordReset: reset}
	return nil
}
