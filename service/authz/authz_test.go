package authz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Anneshtika/library-management-website/model"
	"github.com/Anneshtika/library-management-website/util/apperr"
)

var (
	anon  = model.Actor{}
	user  = model.Actor{ID: "u-1", Name: "Ana", Role: model.RoleUser}
	admin = model.Actor{ID: "a-1", Name: "Root", Role: model.RoleAdmin}
	odd   = model.Actor{ID: "x-1", Name: "Odd", Role: "librarian"}
)

func TestRequireRole(t *testing.T) {
	require.NoError(t, RequireRole(admin, model.RoleAdmin))
	require.NoError(t, RequireRole(admin, model.RoleUser))
	require.NoError(t, RequireRole(user, model.RoleUser))

	for _, a := range []model.Actor{anon, user, odd} {
		err := RequireRole(a, model.RoleAdmin)
		require.Error(t, err)
		require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	}

	require.Equal(t, apperr.ErrForbidden, apperr.Code(RequireRole(anon, model.RoleUser)))
	require.Equal(t, apperr.ErrForbidden, apperr.Code(RequireRole(odd, model.RoleUser)))
	require.Equal(t, apperr.ErrForbidden, apperr.Code(RequireRole(admin, "superuser")))
}

func TestRequireOwner(t *testing.T) {
	require.NoError(t, RequireOwner(user, "u-1"))
	require.NoError(t, RequireOwner(admin, "u-1"))

	require.Equal(t, apperr.ErrNotOwner, apperr.Code(RequireOwner(user, "u-2")))
	require.Equal(t, apperr.ErrForbidden, apperr.Code(RequireOwner(anon, "u-1")))
}
