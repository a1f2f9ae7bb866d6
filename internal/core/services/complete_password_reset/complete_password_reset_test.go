package completepasswordreset

import (
	"context"
	"errors"
	"net/url"
	c "recovery/internal/core/domain/common"
	"recovery/internal/core/domain/logging"
	passwordreset "recovery/internal/core/domain/password_reset"
	uow "recovery/internal/core/domain/unit_of_work"
	"recovery/internal/core/domain/user"
	"recovery/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	USER_ID       = user.ID(42)
	OTHER_USER_ID = user.ID(43)
	T1            = passwordreset.Token("test-token-1")
	T2            = passwordreset.Token("test-token-2")
	SESSION_TOKEN = "test-session-token"
	OLD_PASSWORD  = "old-password"
	NEW_PASSWORD  = "new-password"
)

var (
	T0          = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)
	RedirectURL = url.URL{Scheme: "https", Host: "test.test", Path: "/dashboard"}
)

type testSuite struct {
	suite.Suite
	now     time.Time
	Logger  *logging.FakeLogger
	Uow     *uow.FakeUnitOfWork
	Hasher  *user.FakePasswordHasher
	Service services.Service[Input, Result]
	R1      passwordreset.PasswordReset
	R2      passwordreset.PasswordReset
}

func (s *testSuite) SetupTest() {
	s.now = T0
	s.Logger = logging.NewFakeLogger()
	s.Uow = uow.NewFakeUnitOfWork()
	s.Hasher = user.NewFakePasswordHasher()
	now := func() time.Time { return s.now }
	s.Service = New(
		s.Logger,
		s.Uow,
		passwordreset.NewGuard(now),
		passwordreset.NewInvalidator(now),
		user.NewPasswordPolicy(8, 256),
		s.Hasher,
		user.NewFakeSessionTokenGenerator(SESSION_TOKEN),
		passwordreset.NewSettings(15*time.Minute, RedirectURL, ""),
		now,
	)

	oldHash, err := s.Hasher.HashPassword(OLD_PASSWORD)
	s.Require().NoError(err)
	s.Uow.Context.UserRepository.Users = []user.User{
		{ID: USER_ID, Email: c.NewEmail("test@test.test"), PasswordHash: oldHash},
		{ID: OTHER_USER_ID, Email: c.NewEmail("other@test.test"), PasswordHash: oldHash},
	}
	s.R1 = s.createReset(USER_ID, T1)
	s.R2 = s.createReset(USER_ID, T2)
}

func TestCompletePasswordResetService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createReset(userID user.ID, token passwordreset.Token) passwordreset.PasswordReset {
	reset, err := s.Uow.Context.PasswordResetRepository.Create(
		context.Background(),
		passwordreset.NewCreateInput(userID, token, s.now, 15*time.Minute),
	)
	s.Require().NoError(err)
	return reset
}

func (s *testSuite) activeResets(userID user.ID) []passwordreset.PasswordReset {
	resets, err := s.Uow.Context.PasswordResetRepository.GetByUserID(context.Background(), userID)
	s.Require().NoError(err)
	return passwordreset.Active(resets, s.now)
}

func (s *testSuite) assertPassword(password string) {
	u, err := s.Uow.Context.UserRepository.GetByID(context.Background(), USER_ID)
	s.Require().NoError(err)
	s.True(s.Hasher.ValidatePassword(user.RawPassword(password), u.PasswordHash))
}

func (s *testSuite) TestPasswordChanged() {
	s.now = T0.Add(time.Minute)

	result, err := s.Service.Run(
		context.Background(),
		Input{UserID: USER_ID, Token: T1, NewPassword: NEW_PASSWORD},
	)

	s.Require().NoError(err)
	s.Equal(USER_ID, result.User.ID)
	s.Equal(RedirectURL, result.RedirectURL)
	s.assertPassword(NEW_PASSWORD)
	s.True(s.Uow.Context.WasCommitCalled)
	s.Equal([]user.ID{USER_ID}, s.Uow.Context.PasswordResetRepository.LockedFor)
}

func (s *testSuite) TestUserSignedIn() {
	result, err := s.Service.Run(
		context.Background(),
		Input{UserID: USER_ID, Token: T1, NewPassword: NEW_PASSWORD},
	)

	s.Require().NoError(err)
	s.Equal(user.SessionToken(SESSION_TOKEN), result.SessionToken)
	u, err := s.Uow.Context.SessionRepository.GetUserByToken(context.Background(), SESSION_TOKEN)
	s.Require().NoError(err)
	s.Equal(USER_ID, u.ID)
}

func (s *testSuite) TestAllResetsOfUserInvalidated() {
	other := s.createReset(OTHER_USER_ID, "other-token")
	s.now = T0.Add(time.Minute)

	_, err := s.Service.Run(
		context.Background(),
		Input{UserID: USER_ID, Token: T1, NewPassword: NEW_PASSWORD},
	)

	s.Require().NoError(err)
	s.Empty(s.activeResets(USER_ID))
	s.Len(s.activeResets(OTHER_USER_ID), 1)
	s.Equal(other.ExpiresAt, s.Uow.Context.PasswordResetRepository.GetByID(other.ID).ExpiresAt)
}

func (s *testSuite) TestSiblingTokenForbiddenAfterSuccess() {
	_, err := s.Service.Run(
		context.Background(),
		Input{UserID: USER_ID, Token: T1, NewPassword: NEW_PASSWORD},
	)
	s.Require().NoError(err)

	_, err = s.Service.Run(
		context.Background(),
		Input{UserID: USER_ID, Token: T2, NewPassword: "another-password"},
	)

	s.ErrorIs(err, passwordreset.ErrForbidden)
	s.assertPassword(NEW_PASSWORD)
}

func (s *testSuite) TestTokenCannotBeReused() {
	_, err := s.Service.Run(
		context.Background(),
		Input{UserID: USER_ID, Token: T1, NewPassword: NEW_PASSWORD},
	)
	s.Require().NoError(err)

	_, err = s.Service.Run(
		context.Background(),
		Input{UserID: USER_ID, Token: T1, NewPassword: "another-password"},
	)

	s.ErrorIs(err, passwordreset.ErrForbidden)
	s.assertPassword(NEW_PASSWORD)
}

func (s *testSuite) TestInvalidPasswordKeepsResetUsable() {
	for _, password := range []user.RawPassword{"", "   ", "short"} {
		s.Uow.Context.WasCommitCalled = false

		_, err := s.Service.Run(
			context.Background(),
			Input{UserID: USER_ID, Token: T1, NewPassword: password},
		)

		s.ErrorIs(err, user.ErrInvalidPassword)
		s.False(errors.Is(err, passwordreset.ErrForbidden))
		s.False(s.Uow.Context.WasCommitCalled)
		s.True(s.Uow.Context.WasRollbackCalled)
		s.Equal(s.R1.ExpiresAt, s.Uow.Context.PasswordResetRepository.GetByID(s.R1.ID).ExpiresAt)
		s.Equal(s.R2.ExpiresAt, s.Uow.Context.PasswordResetRepository.GetByID(s.R2.ID).ExpiresAt)
		s.Equal(0, s.Uow.Context.SessionRepository.Count())
		s.assertPassword(OLD_PASSWORD)
	}

	_, err := s.Service.Run(
		context.Background(),
		Input{UserID: USER_ID, Token: T1, NewPassword: NEW_PASSWORD},
	)
	s.NoError(err)
	s.assertPassword(NEW_PASSWORD)
}

func (s *testSuite) TestExpiredResetForbidden() {
	s.now = T0.Add(15*time.Minute + time.Second)

	_, err := s.Service.Run(
		context.Background(),
		Input{UserID: USER_ID, Token: T1, NewPassword: NEW_PASSWORD},
	)

	s.ErrorIs(err, passwordreset.ErrForbidden)
	s.False(s.Uow.Context.WasCommitCalled)
	s.assertPassword(OLD_PASSWORD)
}

func (s *testSuite) TestForbiddenCheckedBeforePassword() {
	cases := []struct {
		id     string
		userID user.ID
		token  passwordreset.Token
	}{
		{id: "missing-token", userID: USER_ID, token: ""},
		{id: "wrong-token", userID: USER_ID, token: "wrong"},
		{id: "token-of-other-user", userID: OTHER_USER_ID, token: T1},
		{id: "unknown-user", userID: user.ID(111222333), token: T1},
	}
	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			_, err := s.Service.Run(
				context.Background(),
				Input{UserID: testcase.userID, Token: testcase.token, NewPassword: ""},
			)

			s.ErrorIs(err, passwordreset.ErrForbidden)
			s.False(s.Uow.Context.WasCommitCalled)
		})
	}
	s.Len(s.activeResets(USER_ID), 2)
}

func (s *testSuite) TestUnitOfWorkError() {
	s.Uow.ReturnError = true

	_, err := s.Service.Run(
		context.Background(),
		Input{UserID: USER_ID, Token: T1, NewPassword: NEW_PASSWORD},
	)

	s.Error(err)
	s.assertPassword(OLD_PASSWORD)
}

func (s *testSuite) TestSessionErrorRollsBack() {
	s.Uow.Context.SessionRepository.ReturnError = true

	_, err := s.Service.Run(
		context.Background(),
		Input{UserID: USER_ID, Token: T1, NewPassword: NEW_PASSWORD},
	)

	s.Error(err)
	s.False(s.Uow.Context.WasCommitCalled)
	s.True(s.Uow.Context.WasRollbackCalled)
}
