package echoServer

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Anneshtika/library-management-website/app/echoServer/controller/admin"
	"github.com/Anneshtika/library-management-website/app/echoServer/controller/book"
	"github.com/Anneshtika/library-management-website/app/echoServer/controller/loan"
	"github.com/Anneshtika/library-management-website/app/echoServer/controller/purchase"
	"github.com/Anneshtika/library-management-website/app/echoServer/controller/user"
	"github.com/Anneshtika/library-management-website/app/echoServer/validation"
	"github.com/Anneshtika/library-management-website/model"
	usersvc "github.com/Anneshtika/library-management-website/service/user"
)

type C struct {
	Book     *book.Controller
	Loan     *loan.Controller
	Purchase *purchase.Controller
	User     *user.Controller
	Admin    *admin.Controller

	Users     usersvc.Service
	JWTSecret string
	Log       *slog.Logger
}

// New builds the echo instance with middlewares, serializer and error handler.
func New(log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = JSONSerializer{}
	e.Validator = validation.New()
	e.HTTPErrorHandler = ErrorHandler(log)
	RegisterMiddlewares(e, log)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return e
}

func Register(e *echo.Echo, c C) {
	// Public catalog
	pub := e.Group("/v1")
	pub.GET("/books", c.Book.List)
	pub.GET("/books/categories", c.Book.Categories)
	pub.GET("/books/:id", c.Book.Detail)

	// Auth
	auth := e.Group("/v1", JWTAuth(c.JWTSecret), Identity(c.Users, c.Log))

	auth.POST("/loans", c.Loan.Borrow)
	auth.GET("/loans/my", c.Loan.My)
	auth.GET("/loans/history", c.Loan.History)
	auth.POST("/loans/:id/return", c.Loan.Return)
	auth.POST("/loans/:id/renew", c.Loan.Renew)

	auth.POST("/purchases", c.Purchase.Create)
	auth.GET("/purchases/my", c.Purchase.My)

	auth.GET("/me", c.User.Me)
	auth.GET("/me/dashboard", c.User.Dashboard)

	// Admin endpoints
	adm := auth.Group("", RequireRole(model.RoleAdmin, c.Log))
	adm.POST("/books", c.Book.Create)
	adm.PATCH("/books/:id", c.Book.Update)
	adm.DELETE("/books/:id", c.Book.Delete)
	adm.GET("/admin/stats", c.Admin.Stats)
	adm.GET("/admin/loans/overdue", c.Loan.Overdue)
}
