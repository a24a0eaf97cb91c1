package admin

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Anneshtika/library-management-website/app/echoServer/jwtx"
	catalogsvc "github.com/Anneshtika/library-management-website/service/catalog"
	"github.com/Anneshtika/library-management-website/util/httpx"
)

type Controller struct {
	Catalog catalogsvc.Service
	Log     *slog.Logger
}

// Stats
// @Summary      Library statistics
// @Description  Totals plus today's borrows and revenue; today is the local calendar day.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.Stats
// @Failure      403  {object}  map[string]any
// @Router       /v1/admin/stats [get]
func (h *Controller) Stats(c echo.Context) error {
	st, err := h.Catalog.Stats(c.Request().Context(), jwtx.ActorFromContext(c))
	if err != nil {
		return httpx.Fail(c, h.Log, "stats", err)
	}
	return c.JSON(http.StatusOK, st)
}
