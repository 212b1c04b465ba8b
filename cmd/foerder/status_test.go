package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Lechtr/foerder"
	main "github.com/Lechtr/foerder/cmd/foerder"
	"github.com/Lechtr/foerder/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(n, failed int) []*foerder.Record {
	var out []*foerder.Record
	for i := 0; i < n; i++ {
		r := foerder.NewRecord()
		r.Set(foerder.ColumnTitle, "p")
		r.Set(foerder.ColumnLink, "https://www.foerderdatenbank.de/p"+string(rune('a'+i%26))+".html")
		if i < failed {
			r.Set(foerder.ColumnError, "Failed to fetch details from x")
		}
		out = append(out, r)
	}
	return out
}

func TestStatusCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports missing checkpoint", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			StorePath: "foerderungen_list.csv",
			Store: &mock.RecordStore{
				ExistsFn: func(context.Context) (bool, error) { return false, nil },
			},
		}

		err := (&main.StatusCmd{PageSize: 10}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "starts at page 1")
	})

	t.Run("reports rows, failures and next page", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			StorePath: "foerderungen_list.csv",
			Store: &mock.RecordStore{
				ExistsFn: func(context.Context) (bool, error) { return true, nil },
				LoadFn:   func(context.Context) ([]*foerder.Record, error) { return rows(25, 2), nil },
			},
		}

		err := (&main.StatusCmd{PageSize: 10}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Programs:  25\n")
		assert.Contains(t, stdout.String(), "Failed:    2\n")
		assert.Contains(t, stdout.String(), "Next page: 3\n")
	})

	t.Run("prints load errors", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Store: &mock.RecordStore{
				ExistsFn: func(context.Context) (bool, error) { return true, nil },
				LoadFn: func(context.Context) ([]*foerder.Record, error) {
					return nil, foerder.Errorf(foerder.EINVALID, "bad csv")
				},
			},
		}

		err := (&main.StatusCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: bad csv")
	})

	t.Run("propagates exists errors", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Store: &mock.RecordStore{
				ExistsFn: func(context.Context) (bool, error) { return false, errors.New("permission denied") },
			},
		}

		assert.Error(t, (&main.StatusCmd{}).Run(deps))
	})
}
