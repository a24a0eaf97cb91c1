package usersvc

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/Anneshtika/library-management-website/model"
	userrepo "github.com/Anneshtika/library-management-website/repository/user"
	"github.com/Anneshtika/library-management-website/util/apperr"
	"github.com/Anneshtika/library-management-website/util/clock"
)

type mockRepo struct {
	upsertFn func(ctx context.Context, a model.Actor, at time.Time) error
	byIDFn   func(ctx context.Context, id string) (*model.User, error)
	countFn  func(ctx context.Context) (int64, error)
}

var _ userrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Upsert(ctx context.Context, a model.Actor, at time.Time) error {
	if m.upsertFn == nil {
		return nil
	}
	return m.upsertFn(ctx, a, at)
}

func (m *mockRepo) ByID(ctx context.Context, id string) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn == nil {
		return 0, nil
	}
	return m.countFn(ctx)
}

var at = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func TestSync_Upserts(t *testing.T) {
	var got model.Actor
	var gotAt time.Time
	m := &mockRepo{
		upsertFn: func(ctx context.Context, a model.Actor, ts time.Time) error {
			got, gotAt = a, ts
			return nil
		},
	}
	s := New(m, clock.Fixed(at))

	actor := model.Actor{ID: "u-1", Name: "Uma", Role: model.RoleUser}
	require.NoError(t, s.Sync(context.Background(), actor))
	require.Equal(t, actor, got)
	require.Equal(t, at, gotAt)
}

func TestSync_AnonymousIsSkipped(t *testing.T) {
	m := &mockRepo{
		upsertFn: func(ctx context.Context, a model.Actor, ts time.Time) error {
			t.Fatal("upsert must not be called")
			return nil
		},
	}
	require.NoError(t, New(m, clock.Fixed(at)).Sync(context.Background(), model.Actor{}))
}

func TestMe(t *testing.T) {
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id string) (*model.User, error) {
			if id != "u-1" {
				return nil, pgx.ErrNoRows
			}
			return &model.User{ID: id, Name: "Uma", Role: model.RoleUser, FirstSeenAt: at, LastSeenAt: at}, nil
		},
	}
	s := New(m, clock.Fixed(at))
	ctx := context.Background()

	u, err := s.Me(ctx, model.Actor{ID: "u-1", Role: model.RoleUser})
	require.NoError(t, err)
	require.Equal(t, "Uma", u.Name)

	_, err = s.Me(ctx, model.Actor{ID: "u-2", Role: model.RoleUser})
	require.Equal(t, apperr.ErrUserNotFound, apperr.Code(err))

	_, err = s.Me(ctx, model.Actor{})
	require.Equal(t, apperr.ErrForbidden, apperr.Code(err))
}
