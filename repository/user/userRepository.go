package userrepo

import (
	"context"
	"time"

	"github.com/Anneshtika/library-management-website/model"
	"github.com/Anneshtika/library-management-website/util/database"
)

type Repo interface {
	Upsert(ctx context.Context, a model.Actor, at time.Time) error
	ByID(ctx context.Context, id string) (*model.User, error)
	Count(ctx context.Context) (int64, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Upsert(ctx context.Context, a model.Actor, at time.Time) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO users(id, name, role, first_seen_at, last_seen_at)
		VALUES ($1,$2,$3,$4,$4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			role = EXCLUDED.role,
			last_seen_at = EXCLUDED.last_seen_at`,
		a.ID, a.Name, a.Role, at,
	)
	return err
}

func (r *repo) ByID(ctx context.Context, id string) (*model.User, error) {
	u := &model.User{}
	err := r.db.Pool.QueryRow(ctx, `
        SELECT id, name, role, first_seen_at, last_seen_at
        FROM users
        WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Role, &u.FirstSeenAt, &u.LastSeenAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
