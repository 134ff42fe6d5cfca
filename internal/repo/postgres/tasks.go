package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/taskhub/internal/domain/task"
	"github.com/geocoder89/taskhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TasksRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewTasksRepo(pool *pgxpool.Pool, prom *observability.Prom) *TasksRepo {
	return &TasksRepo{pool: pool, prom: prom}
}

func (r *TasksRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *TasksRepo) Insert(ctx context.Context, t task.Task) error {
	return r.observe("tasks.insert", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO tasks (id, user_id, title, done, created_at)
			 VALUES ($1,$2,$3,$4,$5)`,
			t.ID, t.UserID, t.Title, t.Done, t.CreatedAt,
		)
		return err
	})
}

func (r *TasksRepo) ListByUser(ctx context.Context, userID string) ([]task.Task, error) {
	var out []task.Task

	err := r.observe("tasks.list_by_user", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, user_id, title, done, created_at
			 FROM tasks
			 WHERE user_id = $1
			 ORDER BY created_at DESC, id DESC`,
			userID,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]task.Task, 0, 16)

		for rows.Next() {
			var t task.Task

			err = rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Done, &t.CreatedAt)

			if err != nil {
				return err
			}

			out = append(out, t)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// SetDone filters on both task id and user id in one statement. A task that
// exists but belongs to someone else scans as no rows, same as one that does
// not exist at all.
func (r *TasksRepo) SetDone(ctx context.Context, userID, taskID string, done bool) (task.Task, error) {
	var t task.Task

	err := r.observe("tasks.set_done", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE tasks
			 SET done = $3
			 WHERE id = $1 AND user_id = $2
			 RETURNING id, user_id, title, done, created_at`,
			taskID, userID, done,
		).Scan(&t.ID, &t.UserID, &t.Title, &t.Done, &t.CreatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}

		return task.Task{}, err
	}

	return t, nil
}

// Delete enforces the same ownership predicate as SetDone.
func (r *TasksRepo) Delete(ctx context.Context, userID, taskID string) error {
	var affected int64

	err := r.observe("tasks.delete", func() error {
		tag, err := r.pool.Exec(ctx,
			`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
			taskID, userID,
		)

		if err != nil {
			return err
		}

		affected = tag.RowsAffected()
		return nil
	})

	if err != nil {
		return err
	}

	if affected == 0 {
		return task.ErrNotFound
	}

	return nil
}
