package validatepasswordreset

import (
	"context"
	"errors"
	c "recovery/internal/core/domain/common"
	"recovery/internal/core/domain/logging"
	passwordreset "recovery/internal/core/domain/password_reset"
	"recovery/internal/core/domain/user"
	"recovery/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	USER_ID = user.ID(42)
	TOKEN   = passwordreset.Token("test-password-reset-token")
)

var T0 = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	now     time.Time
	Logger  *logging.FakeLogger
	Users   *user.FakeUserRepository
	Resets  *passwordreset.FakeRepository
	Service services.Service[Input, Result]
}

func (s *testSuite) SetupTest() {
	s.now = T0
	s.Logger = logging.NewFakeLogger()
	s.Users = user.NewFakeUserRepository()
	s.Users.Users = []user.User{{ID: USER_ID, Email: c.NewEmail("test@test.test"), PasswordHash: "hash"}}
	s.Resets = passwordreset.NewFakeRepository()
	s.Service = New(
		s.Logger,
		s.Users,
		s.Resets,
		passwordreset.NewGuard(func() time.Time { return s.now }),
	)
	_, err := s.Resets.Create(
		context.Background(),
		passwordreset.NewCreateInput(USER_ID, TOKEN, T0, 15*time.Minute),
	)
	s.Require().NoError(err)
}

func TestValidatePasswordResetService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestAllowed() {
	result, err := s.Service.Run(context.Background(), Input{UserID: USER_ID, Token: TOKEN})

	s.Require().NoError(err)
	s.Equal(USER_ID, result.User.ID)
	s.Equal(TOKEN, result.PasswordReset.Token)
}

func (s *testSuite) TestAllowedJustBeforeExpiration() {
	s.now = T0.Add(15*time.Minute - time.Second)

	_, err := s.Service.Run(context.Background(), Input{UserID: USER_ID, Token: TOKEN})

	s.NoError(err)
}

func (s *testSuite) TestForbidden() {
	cases := []struct {
		id     string
		userID user.ID
		token  passwordreset.Token
		at     time.Time
	}{
		{id: "missing-token", userID: USER_ID, token: "", at: T0},
		{id: "missing-token-unknown-user", userID: user.ID(111222333), token: "", at: T0},
		{id: "wrong-token", userID: USER_ID, token: "wrong-token", at: T0},
		{id: "unknown-user", userID: user.ID(111222333), token: TOKEN, at: T0},
		{id: "expired", userID: USER_ID, token: TOKEN, at: T0.Add(15*time.Minute + time.Second)},
		{id: "expiration-instant", userID: USER_ID, token: TOKEN, at: T0.Add(15 * time.Minute)},
	}
	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			s.now = testcase.at

			result, err := s.Service.Run(context.Background(), Input{UserID: testcase.userID, Token: testcase.token})

			s.ErrorIs(err, passwordreset.ErrForbidden)
			s.Equal(Result{}, result)
		})
	}
}

func (s *testSuite) TestStorageError() {
	s.Resets.ReturnError = true

	_, err := s.Service.Run(context.Background(), Input{UserID: USER_ID, Token: TOKEN})

	s.Error(err)
	s.False(errors.Is(err, passwordreset.ErrForbidden))
	s.Equal(1, s.Logger.CountByLevel(logging.ERROR))
}

func (s *testSuite) TestValidationDoesNotConsume() {
	for i := 0; i < 3; i++ {
		_, err := s.Service.Run(context.Background(), Input{UserID: USER_ID, Token: TOKEN})
		s.Require().NoError(err)
	}
	s.Equal(T0.Add(15*time.Minute), s.Resets.Resets[0].ExpiresAt)
}
