// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/Anneshtika/library-management-website/model"
	jwtutil "github.com/Anneshtika/library-management-website/util/jwt"
)

const actorKey = "actor"

// ClaimsFromContext returns the claims echo-jwt stored under "user".
func ClaimsFromContext(c echo.Context) (*jwtutil.Claims, error) {
	claims, ok := c.Get("user").(*jwtutil.Claims)
	if !ok || claims == nil {
		return nil, errors.New("no jwt claims in context")
	}
	return claims, nil
}

func SetActor(c echo.Context, a model.Actor) { c.Set(actorKey, a) }

// ActorFromContext returns the caller, or the anonymous actor on public routes.
func ActorFromContext(c echo.Context) model.Actor {
	a, _ := c.Get(actorKey).(model.Actor)
	return a
}
