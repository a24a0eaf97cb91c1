// app/echoServer/middleware.go
package echoServer

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Anneshtika/library-management-website/app/echoServer/jwtx"
	"github.com/Anneshtika/library-management-website/model"
	"github.com/Anneshtika/library-management-website/service/authz"
	usersvc "github.com/Anneshtika/library-management-website/service/user"
	"github.com/Anneshtika/library-management-website/util/httpx"
	jwtutil "github.com/Anneshtika/library-management-website/util/jwt"
)

func RegisterMiddlewares(e *echo.Echo, log *slog.Logger) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog(log))
}

func Slog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler write the status before it is logged
				c.Error(err)
			}
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			log.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
				"user_id", jwtx.ActorFromContext(c).ID,
			)
			return nil
		}
	}
}

// JWTAuth verifies the Bearer token issued by the identity provider.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtutil.ParseAuth(auth, secret)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		},
	})
}

// Identity turns verified claims into the request actor and mirrors the
// identity into the users table.
func Identity(users usersvc.Service, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := jwtx.ClaimsFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			actor := claims.Actor()
			jwtx.SetActor(c, actor)

			if err := users.Sync(c.Request().Context(), actor); err != nil {
				log.Warn("user sync failed", "user_id", actor.ID, "err", err)
			}
			return next(c)
		}
	}
}

// RequireRole stops the request with 403 before the handler binds anything.
func RequireRole(role model.Role, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authz.RequireRole(jwtx.ActorFromContext(c), role); err != nil {
				return httpx.Fail(c, log, "authz", err)
			}
			return next(c)
		}
	}
}
