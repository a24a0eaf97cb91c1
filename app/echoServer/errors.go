package echoServer

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Anneshtika/library-management-website/util/apperr"
	"github.com/Anneshtika/library-management-website/util/httpx"
)

// ErrorHandler renders anything a handler returned instead of writing a
// response itself: routing errors, echo-jwt failures and coded errors.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		switch {
		case apperr.KindOf(err) != "":
			_ = httpx.Fail(c, log, "request", err)
		case errors.As(err, &he):
			msg, ok := he.Message.(string)
			if !ok {
				msg = http.StatusText(he.Code)
			}
			if he.Code >= http.StatusInternalServerError {
				log.Error("request", "err", err)
			}
			_ = c.JSON(he.Code, echo.Map{"message": msg})
		default:
			_ = httpx.Fail(c, log, "request", err)
		}
	}
}
