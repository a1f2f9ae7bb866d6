package completepasswordreset

import (
	"context"
	"errors"
	"net/url"
	e "recovery/internal/core/domain/errors"
	"recovery/internal/core/domain/logging"
	passwordreset "recovery/internal/core/domain/password_reset"
	uow "recovery/internal/core/domain/unit_of_work"
	"recovery/internal/core/domain/user"
	"recovery/internal/core/services"
	"time"
)

type Input struct {
	UserID      user.ID
	Token       passwordreset.Token
	NewPassword user.RawPassword
}

type Result struct {
	User         user.User
	SessionToken user.SessionToken
	RedirectURL  url.URL
}

type service struct {
	log                   logging.Logger
	unitOfWork            uow.UnitOfWork
	guard                 *passwordreset.Guard
	invalidator           *passwordreset.Invalidator
	passwordPolicy        user.PasswordPolicy
	passwordHasher        user.PasswordHasher
	sessionTokenGenerator user.SessionTokenGenerator
	settings              passwordreset.Settings
	now                   func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	guard *passwordreset.Guard,
	invalidator *passwordreset.Invalidator,
	passwordPolicy user.PasswordPolicy,
	passwordHasher user.PasswordHasher,
	sessionTokenGenerator user.SessionTokenGenerator,
	settings passwordreset.Settings,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if guard == nil {
		panic(e.NewNilArgumentError("guard"))
	}
	if invalidator == nil {
		panic(e.NewNilArgumentError("invalidator"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if sessionTokenGenerator == nil {
		panic(e.NewNilArgumentError("sessionTokenGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                   log,
		unitOfWork:            unitOfWork,
		guard:                 guard,
		invalidator:           invalidator,
		passwordPolicy:        passwordPolicy,
		passwordHasher:        passwordHasher,
		sessionTokenGenerator: sessionTokenGenerator,
		settings:              settings,
		now:                   now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	// The guard is checked again here: the reset may have expired or been
	// used since the edit form was shown.
	allowed, err := s.guard.Check(
		ctx,
		uow.Users(),
		uow.PasswordResets(),
		passwordreset.GuardInput{UserID: input.UserID, Token: input.Token, Lock: true},
	)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, passwordreset.ErrForbidden) {
		s.log.Info(
			ctx,
			"Password reset refused.",
			logging.Entry("userID", input.UserID),
			logging.Entry("reason", err),
		)
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID))
		return result, err
	}
	u := allowed.User

	if err := s.passwordPolicy.Check(input.NewPassword); err != nil {
		s.log.Info(
			ctx,
			"New password rejected, password reset stays usable.",
			logging.Entry("userID", u.ID),
			logging.Entry("reason", err),
		)
		return result, err
	}
	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}
	if err := uow.Users().SetPassword(ctx, u.ID, newPasswordHash); err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	u.PasswordHash = newPasswordHash

	deactivated, err := s.invalidator.Run(ctx, uow.PasswordResets(), u.ID)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not invalidate password resets.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	sessionToken := s.sessionTokenGenerator.GenerateToken()
	err = uow.Sessions().Create(ctx, user.CreateSessionInput{
		UserID:    u.ID,
		Token:     sessionToken,
		CreatedAt: s.now(),
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create session for user.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = uow.Commit(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not commit unit of work.", logging.Entry("userID", u.ID), logging.Entry("err", err))
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been set, user signed in.",
		logging.Entry("userID", u.ID),
		logging.Entry("passwordResetID", allowed.PasswordReset.ID),
		logging.Entry("deactivatedCount", deactivated),
	)
	return Result{User: u, SessionToken: sessionToken, RedirectURL: s.settings.PostUpdateURL}, nil
}
