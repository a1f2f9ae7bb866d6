package passwordreset

import (
	"context"
	"errors"
	e "recovery/internal/core/domain/errors"
	passwordreset "recovery/internal/core/domain/password_reset"
	"recovery/internal/core/domain/user"
	"recovery/internal/db"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const columns = `id, user_id, token, created_at, expires_at`

type PgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(dbtx db.DBTX) *PgxRepository {
	if dbtx == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxRepository{db: dbtx}
}

func (r *PgxRepository) Create(
	ctx context.Context,
	input passwordreset.CreateInput,
) (reset passwordreset.PasswordReset, err error) {
	if err := input.Validate(); err != nil {
		return reset, err
	}
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO password_reset (user_id, token, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING `+columns,
		int64(input.UserID),
		string(input.Token),
		input.CreatedAt,
		input.ExpiresAt,
	)
	reset, err = scan(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == db.PG_FOREIGN_KEY_CONSTRAINT_ERR_CODE {
		return reset, user.ErrUserDoesNotExist
	}
	if err != nil {
		return reset, err
	}
	return reset, reset.Validate()
}

func (r *PgxRepository) GetByUserID(ctx context.Context, userID user.ID) ([]passwordreset.PasswordReset, error) {
	return r.list(ctx, `SELECT `+columns+` FROM password_reset WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *PgxRepository) GetByUserIDWithLock(ctx context.Context, userID user.ID) ([]passwordreset.PasswordReset, error) {
	return r.list(ctx, `SELECT `+columns+` FROM password_reset WHERE user_id = $1 ORDER BY id FOR UPDATE`, userID)
}

func (r *PgxRepository) Deactivate(ctx context.Context, ids []passwordreset.ID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	rawIDs := make([]int64, 0, len(ids))
	for _, id := range ids {
		rawIDs = append(rawIDs, int64(id))
	}
	_, err := r.db.Exec(
		ctx,
		`UPDATE password_reset SET expires_at = $2 WHERE id = ANY($1) AND expires_at > $2`,
		rawIDs,
		at,
	)
	return err
}

func (r *PgxRepository) list(ctx context.Context, query string, userID user.ID) ([]passwordreset.PasswordReset, error) {
	rows, err := r.db.Query(ctx, query, int64(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resets := make([]passwordreset.PasswordReset, 0)
	for rows.Next() {
		reset, err := scan(rows)
		if err != nil {
			return nil, err
		}
		if err := reset.Validate(); err != nil {
			return nil, err
		}
		resets = append(resets, reset)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return resets, nil
}

func scan(row pgx.Row) (reset passwordreset.PasswordReset, err error) {
	var (
		id     int64
		userID int64
		token  string
	)
	err = row.Scan(&id, &userID, &token, &reset.CreatedAt, &reset.ExpiresAt)
	if err != nil {
		return passwordreset.PasswordReset{}, err
	}
	reset.ID = passwordreset.ID(id)
	reset.UserID = user.ID(userID)
	reset.Token = passwordreset.Token(token)
	return reset, nil
}
