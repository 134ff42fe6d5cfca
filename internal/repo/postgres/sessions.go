package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/taskhub/internal/domain/session"
	"github.com/geocoder89/taskhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewSessionsRepo(pool *pgxpool.Pool, prom *observability.Prom) *SessionsRepo {
	return &SessionsRepo{pool: pool, prom: prom}
}

func (r *SessionsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *SessionsRepo) Create(ctx context.Context, s session.Session) error {
	return r.observe("sessions.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO sessions (id, user_id, created_at, expires_at)
			 VALUES ($1,$2,$3,$4)`,
			s.ID, s.UserID, s.CreatedAt, s.ExpiresAt,
		)
		return err
	})
}

func (r *SessionsRepo) GetByID(ctx context.Context, id string) (session.Session, error) {
	var s session.Session

	err := r.observe("sessions.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, user_id, created_at, expires_at
			 FROM sessions
			 WHERE id = $1`,
			id,
		).Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}

		return session.Session{}, err
	}

	return s, nil
}

// Delete is idempotent: deleting an absent session is not an error.
func (r *SessionsRepo) Delete(ctx context.Context, id string) error {
	return r.observe("sessions.delete", func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
		return err
	})
}
