package usersvc

import (
	"context"
	"time"

	"github.com/Anneshtika/library-management-website/model"
	userrepo "github.com/Anneshtika/library-management-website/repository/user"
	"github.com/Anneshtika/library-management-website/service/authz"
	"github.com/Anneshtika/library-management-website/util/apperr"
	"github.com/Anneshtika/library-management-website/util/clock"
	"github.com/Anneshtika/library-management-website/util/database"
)

// Service keeps the local users table in step with the identities the
// provider hands us. Nothing here authenticates anybody.
type Service interface {
	Sync(ctx context.Context, actor model.Actor) error
	Me(ctx context.Context, actor model.Actor) (*model.User, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	ur  userrepo.Repo
	now clock.Clock
}

func New(ur userrepo.Repo, now clock.Clock) Service {
	if now == nil {
		now = clock.In(time.Local)
	}
	return &service{ur: ur, now: now}
}

func (s *service) Sync(ctx context.Context, actor model.Actor) error {
	if actor.Anonymous() {
		return nil
	}
	return s.ur.Upsert(ctx, actor, s.now())
}

func (s *service) Me(ctx context.Context, actor model.Actor) (*model.User, error) {
	if err := authz.RequireRole(actor, model.RoleUser); err != nil {
		return nil, err
	}
	u, err := s.ur.ByID(ctx, actor.ID)
	if err != nil {
		if database.NoRows(err) {
			return nil, apperr.New(apperr.ErrUserNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Count(ctx context.Context) (int64, error) { return s.ur.Count(ctx) }
