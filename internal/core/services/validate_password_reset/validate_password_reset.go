package validatepasswordreset

import (
	"context"
	"errors"
	e "recovery/internal/core/domain/errors"
	"recovery/internal/core/domain/logging"
	passwordreset "recovery/internal/core/domain/password_reset"
	"recovery/internal/core/domain/user"
	"recovery/internal/core/services"
)

type Input struct {
	UserID user.ID
	Token  passwordreset.Token
}

type Result struct {
	User          user.User
	PasswordReset passwordreset.PasswordReset
}

type service struct {
	log                     logging.Logger
	userRepository          user.UserRepository
	passwordResetRepository passwordreset.Repository
	guard                   *passwordreset.Guard
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordResetRepository passwordreset.Repository,
	guard *passwordreset.Guard,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordResetRepository == nil {
		panic(e.NewNilArgumentError("passwordResetRepository"))
	}
	if guard == nil {
		panic(e.NewNilArgumentError("guard"))
	}
	return &service{
		log:                     log,
		userRepository:          userRepository,
		passwordResetRepository: passwordResetRepository,
		guard:                   guard,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	allowed, err := s.guard.Check(
		ctx,
		s.userRepository,
		s.passwordResetRepository,
		passwordreset.GuardInput{UserID: input.UserID, Token: input.Token},
	)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, passwordreset.ErrForbidden) {
		s.log.Info(
			ctx,
			"Password reset link refused.",
			logging.Entry("userID", input.UserID),
			logging.Entry("reason", err),
		)
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID))
		return result, err
	}

	return Result{User: allowed.User, PasswordReset: allowed.PasswordReset}, nil
}
