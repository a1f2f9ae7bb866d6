package requestpasswordreset

import (
	"context"
	"errors"
	c "recovery/internal/core/domain/common"
	e "recovery/internal/core/domain/errors"
	"recovery/internal/core/domain/logging"
	passwordreset "recovery/internal/core/domain/password_reset"
	"recovery/internal/core/domain/user"
	"recovery/internal/core/services"
	"time"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "request-password-reset::" + string(i.Email)
}

// Result is the same whether or not the email belongs to a user.
type Result struct{}

type service struct {
	log                     logging.Logger
	userRepository          user.UserRepository
	passwordResetRepository passwordreset.Repository
	tokenGenerator          passwordreset.TokenGenerator
	notifier                passwordreset.Notifier
	settings                passwordreset.Settings
	now                     func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordResetRepository passwordreset.Repository,
	tokenGenerator passwordreset.TokenGenerator,
	notifier passwordreset.Notifier,
	settings passwordreset.Settings,
	now func() time.Time,
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
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                     log,
		userRepository:          userRepository,
		passwordResetRepository: passwordResetRepository,
		tokenGenerator:          tokenGenerator,
		notifier:                notifier,
		settings:                settings,
		now:                     now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	email := c.NewEmail(string(input.Email))
	u, err := s.userRepository.GetByEmail(ctx, email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.")
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	createInput := passwordreset.NewCreateInput(
		u.ID,
		s.tokenGenerator.GenerateToken(),
		s.now(),
		s.settings.TimeLimit,
	)
	if err := createInput.Validate(); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}
	reset, err := s.passwordResetRepository.Create(ctx, createInput)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create password reset.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := s.notifier.SendPasswordChangeNotification(ctx, u, reset); err != nil {
		s.log.Error(
			ctx,
			"Could not send password change notification.",
			logging.Entry("userID", u.ID),
			logging.Entry("passwordResetID", reset.ID),
			logging.Entry("err", err),
		)
		return result, nil
	}

	s.log.Info(
		ctx,
		"Password reset has been created.",
		logging.Entry("userID", u.ID),
		logging.Entry("passwordResetID", reset.ID),
		logging.Entry("expiresAt", reset.ExpiresAt),
	)
	return result, nil
}
