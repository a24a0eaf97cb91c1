// Package httpx holds the small response helpers shared by the controllers.
package httpx

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Anneshtika/library-management-website/util/apperr"
)

// Status maps an error kind onto its HTTP status. Uncoded errors are 500.
func Status(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindInvalidTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes err as {"message", "code"}. Internal errors are logged in full
// and reach the client only as "internal error".
func Fail(c echo.Context, log *slog.Logger, op string, err error) error {
	status := Status(err)
	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	if status == http.StatusInternalServerError {
		log.Error(op, "err", err, "req_id", rid)
		return c.JSON(status, echo.Map{"message": "internal error"})
	}

	code := apperr.Code(err)
	log.Warn(op, "code", code, "err", err, "req_id", rid)
	msg := apperr.Detail(err)
	if msg == "" {
		msg = strings.ToLower(strings.ReplaceAll(string(code), "_", " "))
	}
	return c.JSON(status, echo.Map{"message": msg, "code": code})
}

// ParamID reads a positive int64 path parameter.
func ParamID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
