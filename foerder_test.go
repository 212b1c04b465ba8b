package foerder_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Lechtr/foerder"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := foerder.Errorf(foerder.ENOTFOUND, "record %q not found", "test")

	assert.Equal(t, foerder.ENOTFOUND, foerder.ErrorCode(err))
	assert.Equal(t, "record \"test\" not found", foerder.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, foerder.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, foerder.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("crawl: %w", foerder.Errorf(foerder.EUNAVAILABLE, "gave up"))

	assert.Equal(t, foerder.EUNAVAILABLE, foerder.ErrorCode(err))
	assert.Equal(t, "gave up", foerder.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, foerder.EINTERNAL, foerder.ErrorCode(err))
	assert.Equal(t, "Internal error.", foerder.ErrorMessage(err))
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	t.Run("returns status of wrapped StatusError", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("fetch: %w", &foerder.StatusError{URL: "https://example.com", StatusCode: 503})

		assert.Equal(t, 503, foerder.StatusCode(err))
		assert.Contains(t, err.Error(), "HTTP 503 for https://example.com")
	})

	t.Run("returns zero for other errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0, foerder.StatusCode(errors.New("timeout")))
	})
}

func TestStartPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rows     int
		pageSize int
		want     int
	}{
		{rows: 0, pageSize: 10, want: 1},
		{rows: 9, pageSize: 10, want: 1},
		{rows: 10, pageSize: 10, want: 2},
		{rows: 57, pageSize: 10, want: 6},
		{rows: 57, pageSize: 0, want: 6},
		{rows: 12, pageSize: 5, want: 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d rows of %d", tt.rows, tt.pageSize), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, foerder.StartPage(tt.rows, tt.pageSize))
		})
	}
}
