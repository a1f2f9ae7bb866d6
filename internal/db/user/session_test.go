package user

import (
	"context"
	c "recovery/internal/core/domain/common"
	"recovery/internal/core/domain/user"
	"recovery/internal/db"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	SESSION_TOKEN = "test-session-token"
)

type testSessionSuite struct {
	suite.Suite
	pool              *pgxpool.Pool
	userRepository    *PgxUserRepository
	sessionRepository *PgxSessionRepository
}

func (suite *testSessionSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.userRepository = NewPgxRepository(suite.pool)
	suite.sessionRepository = NewPgxSessionRepository(suite.pool)
}

func (suite *testSessionSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSessionSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxSessionRepository(t *testing.T) {
	db.SkipWithoutDatabase(t)
	suite.Run(t, new(testSessionSuite))
}

func (s *testSessionSuite) TestCreate() {
	u := s.createUser()

	err := s.sessionRepository.Create(
		context.Background(),
		user.CreateSessionInput{
			UserID:    u.ID,
			Token:     user.SessionToken(SESSION_TOKEN),
			CreatedAt: NOW,
		},
	)
	s.Require().Nil(err)

	found, err := s.sessionRepository.GetUserByToken(context.Background(), user.SessionToken(SESSION_TOKEN))
	s.Require().Nil(err)
	s.Equal(u.ID, found.ID)
}

func (s *testSessionSuite) TestCreateForMissingUser() {
	err := s.sessionRepository.Create(
		context.Background(),
		user.CreateSessionInput{
			UserID:    user.ID(100500),
			Token:     user.SessionToken(SESSION_TOKEN),
			CreatedAt: NOW,
		},
	)
	s.ErrorIs(err, user.ErrUserDoesNotExist)
}

func (s *testSessionSuite) TestGetUserByUnknownToken() {
	_, err := s.sessionRepository.GetUserByToken(context.Background(), user.SessionToken("unknown"))
	s.ErrorIs(err, user.ErrSessionDoesNotExist)
}

func (s *testSessionSuite) createUser() user.User {
	u, err := s.userRepository.Create(context.Background(), user.CreateUserInput{
		Email:        c.Email(EMAIL),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		CreatedAt:    NOW,
	})
	s.Require().Nil(err)
	return u
}
