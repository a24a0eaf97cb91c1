package user

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Anneshtika/library-management-website/app/echoServer/jwtx"
	catalogsvc "github.com/Anneshtika/library-management-website/service/catalog"
	usersvc "github.com/Anneshtika/library-management-website/service/user"
	"github.com/Anneshtika/library-management-website/util/httpx"
)

type Controller struct {
	Svc     usersvc.Service
	Catalog catalogsvc.Service
	Log     *slog.Logger
}

// Me
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.User
// @Failure      401  {object}  map[string]any
// @Router       /v1/me [get]
func (h *Controller) Me(c echo.Context) error {
	u, err := h.Svc.Me(c.Request().Context(), jwtx.ActorFromContext(c))
	if err != nil {
		return httpx.Fail(c, h.Log, "me", err)
	}
	return c.JSON(http.StatusOK, u)
}

// GET /v1/me/dashboard
func (h *Controller) Dashboard(c echo.Context) error {
	d, err := h.Catalog.Dashboard(c.Request().Context(), jwtx.ActorFromContext(c))
	if err != nil {
		return httpx.Fail(c, h.Log, "dashboard", err)
	}
	return c.JSON(http.StatusOK, d)
}
