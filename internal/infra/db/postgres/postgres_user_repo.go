package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-referral-gate/internal/domain/model"
	"telegram-referral-gate/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*PostgresUserRepo)(nil)

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

// InitSchema creates the users table if absent. Safe to run at every
// startup.
func (r *PostgresUserRepo) InitSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS users (
    user_id     BIGINT PRIMARY KEY,
    username    TEXT,
    referred_by BIGINT,
    points      INTEGER NOT NULL DEFAULT 0,
    invite_sent BOOLEAN NOT NULL DEFAULT FALSE
);`
	if _, err := r.pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (r *PostgresUserRepo) Insert(ctx context.Context, tx repository.Tx, u *model.User) (bool, error) {
	const q = `
INSERT INTO users (user_id, username, referred_by)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO NOTHING;`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return false, err
	}
	tag, err := ex.Exec(ctx, q, u.ID, u.Username, u.ReferredBy)
	if err != nil {
		return false, fmt.Errorf("insert user: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresUserRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.User, error) {
	const q = `
SELECT user_id, username, referred_by, points, invite_sent
  FROM users WHERE user_id = $1;`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := ex.QueryRow(ctx, q, id).Scan(&u.ID, &u.Username, &u.ReferredBy, &u.Points, &u.InviteSent); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *PostgresUserRepo) IncrementPoints(ctx context.Context, tx repository.Tx, id int64) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	// Zero rows affected when the referrer has no row yet; the credit is
	// intentionally dropped.
	if _, err := ex.Exec(ctx, `UPDATE users SET points = points + 1 WHERE user_id = $1;`, id); err != nil {
		return fmt.Errorf("increment points: %w", err)
	}
	return nil
}

func (r *PostgresUserRepo) Points(ctx context.Context, tx repository.Tx, id int64) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var points int
	err = ex.QueryRow(ctx, `SELECT points FROM users WHERE user_id = $1;`, id).Scan(&points)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("points: %w", err)
	}
	return points, nil
}

func (r *PostgresUserRepo) InviteSent(ctx context.Context, tx repository.Tx, id int64) (bool, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return false, err
	}
	var sent bool
	err = ex.QueryRow(ctx, `SELECT invite_sent FROM users WHERE user_id = $1;`, id).Scan(&sent)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("invite sent: %w", err)
	}
	return sent, nil
}

func (r *PostgresUserRepo) MarkInviteSent(ctx context.Context, tx repository.Tx, id int64) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	if _, err := ex.Exec(ctx, `UPDATE users SET invite_sent = TRUE WHERE user_id = $1;`, id); err != nil {
		return fmt.Errorf("mark invite sent: %w", err)
	}
	return nil
}

func (r *PostgresUserRepo) ListIDs(ctx context.Context, tx repository.Tx) ([]int64, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `SELECT user_id FROM users ORDER BY user_id;`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
