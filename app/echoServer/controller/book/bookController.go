package book

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Anneshtika/library-management-website/app/echoServer/jwtx"
	"github.com/Anneshtika/library-management-website/app/echoServer/validation"
	"github.com/Anneshtika/library-management-website/model"
	booksvc "github.com/Anneshtika/library-management-website/service/book"
	catalogsvc "github.com/Anneshtika/library-management-website/service/catalog"
	"github.com/Anneshtika/library-management-website/util/httpx"
)

type Controller struct {
	Svc     booksvc.Service
	Catalog catalogsvc.Service
	V       *validator.Validate
	Log     *slog.Logger
}

// List books
// @Summary      List books
// @Description  Catalog listing with optional search text and exact category filter.
// @Tags         books
// @Produce      json
// @Param        q         query  string  false  "title, author or category contains"
// @Param        category  query  string  false  "exact category"
// @Success      200  {object}  map[string]any
// @Router       /v1/books [get]
func (h *Controller) List(c echo.Context) error {
	f := model.BookFilter{Query: c.QueryParam("q"), Category: c.QueryParam("category")}
	rows, err := h.Catalog.Books(c.Request().Context(), f)
	if err != nil {
		return httpx.Fail(c, h.Log, "book list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/books/categories
func (h *Controller) Categories(c echo.Context) error {
	cats, err := h.Svc.Categories(c.Request().Context())
	if err != nil {
		return httpx.Fail(c, h.Log, "book categories", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": cats})
}

// GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Catalog.Book(c.Request().Context(), id)
	if err != nil {
		return httpx.Fail(c, h.Log, "book detail", err)
	}
	return c.JSON(http.StatusOK, row)
}

// Create book
// @Summary      Add a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  CreateBookReq  true  "Book"
// @Success      201  {object}  model.Book
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /v1/books [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": validation.Fields(err)})
	}
	b, err := h.Svc.Create(c.Request().Context(), jwtx.ActorFromContext(c), req.NewBook())
	if err != nil {
		return httpx.Fail(c, h.Log, "book create", err)
	}
	return c.JSON(http.StatusCreated, b)
}

// PATCH /v1/books/:id  (admin)
func (h *Controller) Update(c echo.Context) error {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": validation.Fields(err)})
	}
	b, err := h.Svc.Update(c.Request().Context(), jwtx.ActorFromContext(c), id, req.Patch())
	if err != nil {
		return httpx.Fail(c, h.Log, "book update", err)
	}
	return c.JSON(http.StatusOK, b)
}

// DELETE /v1/books/:id  (admin)
func (h *Controller) Delete(c echo.Context) error {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), jwtx.ActorFromContext(c), id); err != nil {
		return httpx.Fail(c, h.Log, "book delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
