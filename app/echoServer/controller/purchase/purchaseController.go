package purchase

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Anneshtika/library-management-website/app/echoServer/jwtx"
	catalogsvc "github.com/Anneshtika/library-management-website/service/catalog"
	"github.com/Anneshtika/library-management-website/util/httpx"
)

type PurchaseReq struct {
	BookID int64 `json:"book_id" validate:"required,gt=0"`
}

type Controller struct {
	Svc catalogsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/purchases
func (h *Controller) Create(c echo.Context) error {
	var req PurchaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"book_id": "gt 0"}})
	}
	p, err := h.Svc.Purchase(c.Request().Context(), jwtx.ActorFromContext(c), req.BookID)
	if err != nil {
		return httpx.Fail(c, h.Log, "purchase", err)
	}
	return c.JSON(http.StatusCreated, p)
}

// GET /v1/purchases/my
func (h *Controller) My(c echo.Context) error {
	rows, err := h.Svc.ListPurchasesForUser(c.Request().Context(), jwtx.ActorFromContext(c))
	if err != nil {
		return httpx.Fail(c, h.Log, "purchase list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
