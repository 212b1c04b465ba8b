package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/Lechtr/foerder"
	"github.com/Lechtr/foerder/mock"
	foerderslog "github.com/Lechtr/foerder/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := foerderslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://www.foerderdatenbank.de/p.html")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://www.foerderdatenbank.de/p.html")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := foerderslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://www.foerderdatenbank.de/p.html")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "err=\"network error\"")
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "status=0")
	})
}

func TestLoggingFetcher_StatusError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "", &foerder.StatusError{URL: url, StatusCode: 429}
		},
	}

	fetcher := foerderslog.NewLoggingFetcher(inner, logger)
	_, err := fetcher.Fetch(context.Background(), "https://www.foerderdatenbank.de/p.html")

	require.Error(t, err)
	assert.Contains(t, buf.String(), "status=429")
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("delegates to inner fetcher", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		closeCalled := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		fetcher := foerderslog.NewLoggingFetcher(inner, logger)
		err := fetcher.Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
	})
}
