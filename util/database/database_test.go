package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/Anneshtika/library-management-website/util/retry"
)

func TestClassify_RetryableCodes(t *testing.T) {
	for _, code := range []string{pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected} {
		err := classify(fmt.Errorf("commit: %w", &pgconn.PgError{Code: code}))
		require.ErrorIs(t, err, retry.ErrConflict, code)

		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
	}
}

func TestClassify_OtherErrorsUntouched(t *testing.T) {
	plain := errors.New("boom")
	require.Equal(t, plain, classify(plain))

	err := classify(&pgconn.PgError{Code: pgerrcode.CheckViolation})
	require.NotErrorIs(t, err, retry.ErrConflict)
}

func TestUniqueViolation(t *testing.T) {
	name, ok := UniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "books_isbn_key",
	}))
	require.True(t, ok)
	require.Equal(t, "books_isbn_key", name)

	_, ok = UniqueViolation(errors.New("nope"))
	require.False(t, ok)
}

func TestNoRows(t *testing.T) {
	require.True(t, NoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	require.False(t, NoRows(errors.New("other")))
}
