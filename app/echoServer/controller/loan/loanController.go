package loan

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Anneshtika/library-management-website/app/echoServer/jwtx"
	"github.com/Anneshtika/library-management-website/app/echoServer/validation"
	loansvc "github.com/Anneshtika/library-management-website/service/loan"
	"github.com/Anneshtika/library-management-website/util/httpx"
)

type Controller struct {
	Svc loansvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Borrow a book
// @Summary      Borrow a book
// @Description  Takes one available copy; the loan is due 14 days later.
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  BorrowReq  true  "Book to borrow"
// @Success      201  {object}  model.LoanView
// @Failure      404  {object}  map[string]any "book not found"
// @Failure      409  {object}  map[string]any "no copies available / already borrowed"
// @Router       /v1/loans [post]
func (h *Controller) Borrow(c echo.Context) error {
	var req BorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  validation.Fields(err),
		})
	}

	out, err := h.Svc.Borrow(c.Request().Context(), jwtx.ActorFromContext(c), req.BookID)
	if err != nil {
		return httpx.Fail(c, h.Log, "loan borrow", err)
	}
	return c.JSON(http.StatusCreated, out)
}

// POST /v1/loans/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	out, err := h.Svc.Return(c.Request().Context(), jwtx.ActorFromContext(c), id)
	if err != nil {
		return httpx.Fail(c, h.Log, "loan return", err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /v1/loans/:id/renew
func (h *Controller) Renew(c echo.Context) error {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req RenewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  validation.Fields(err),
		})
	}
	out, err := h.Svc.Renew(c.Request().Context(), jwtx.ActorFromContext(c), id, *req.DueDate)
	if err != nil {
		return httpx.Fail(c, h.Log, "loan renew", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /v1/loans/my
func (h *Controller) My(c echo.Context) error {
	rows, err := h.Svc.ListForUser(c.Request().Context(), jwtx.ActorFromContext(c))
	if err != nil {
		return httpx.Fail(c, h.Log, "loan list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/loans/history
func (h *Controller) History(c echo.Context) error {
	rows, err := h.Svc.History(c.Request().Context(), jwtx.ActorFromContext(c))
	if err != nil {
		return httpx.Fail(c, h.Log, "loan history", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/admin/loans/overdue
func (h *Controller) Overdue(c echo.Context) error {
	rows, err := h.Svc.ListOverdue(c.Request().Context(), jwtx.ActorFromContext(c))
	if err != nil {
		return httpx.Fail(c, h.Log, "loan overdue", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
