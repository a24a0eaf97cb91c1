package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Anneshtika/library-management-website/model"
)

func TestIssueParse_RoundTrip(t *testing.T) {
	a := model.Actor{ID: "u-9", Name: "Nina", Role: model.RoleAdmin}
	tok, err := Issue("s3cret", a, time.Hour)
	require.NoError(t, err)

	c, err := ParseAuth("Bearer "+tok, "s3cret")
	require.NoError(t, err)
	require.Equal(t, a, c.Actor())
}

func TestParseAuth_Rejects(t *testing.T) {
	tok, err := Issue("s3cret", model.Actor{ID: "u-1", Role: model.RoleUser}, time.Hour)
	require.NoError(t, err)

	_, err = ParseAuth(tok, "other")
	require.Error(t, err)

	_, err = ParseAuth("Bearer ", "s3cret")
	require.Error(t, err)

	expired, err := Issue("s3cret", model.Actor{ID: "u-1"}, -time.Minute)
	require.NoError(t, err)
	_, err = ParseAuth(expired, "s3cret")
	require.Error(t, err)

	noSub, err := Issue("s3cret", model.Actor{}, time.Hour)
	require.NoError(t, err)
	_, err = ParseAuth(noSub, "s3cret")
	require.Error(t, err)
}

func TestClaims_UnknownRoleIsUser(t *testing.T) {
	c := &Claims{Role: "librarian"}
	c.Subject = "x"
	require.Equal(t, model.RoleUser, c.Actor().Role)
}
