package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	BookID int64  `json:"book_id" validate:"required,gt=0"`
	Title  string `json:"title" validate:"required"`
}

func TestFields(t *testing.T) {
	err := New().Validate(sample{BookID: -1})
	require.Error(t, err)
	require.Equal(t, map[string]string{"book_id": "gt 0", "title": "required"}, Fields(err))

	require.NoError(t, New().Validate(sample{BookID: 1, Title: "x"}))
	require.Nil(t, Fields(nil))
}
