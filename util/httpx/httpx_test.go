package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Anneshtika/library-management-website/util/apperr"
)

func TestStatus(t *testing.T) {
	cases := map[apperr.ErrCode]int{
		apperr.ErrInvalidInput:    http.StatusBadRequest,
		apperr.ErrISBNTaken:       http.StatusBadRequest,
		apperr.ErrBookNotFound:    http.StatusNotFound,
		apperr.ErrNoCopies:        http.StatusConflict,
		apperr.ErrAlreadyReturned: http.StatusConflict,
		apperr.ErrNotOwner:        http.StatusForbidden,
		apperr.ErrInvalidDueDate:  http.StatusUnprocessableEntity,
	}
	for code, want := range cases {
		require.Equal(t, want, Status(apperr.New(code)), code)
	}
	require.Equal(t, http.StatusInternalServerError, Status(errors.New("db down")))
}

func TestFail_Body(t *testing.T) {
	e := echo.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, Fail(c, log, "op", apperr.New(apperr.ErrNoCopies)))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"message":"no copies available","code":"NO_COPIES_AVAILABLE"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, Fail(c, log, "op", errors.New("pq: connection refused")))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"message":"internal error"}`, rec.Body.String())
}
