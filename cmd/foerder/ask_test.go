package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/Lechtr/foerder"
	main "github.com/Lechtr/foerder/cmd/foerder"
	"github.com/Lechtr/foerder/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("asks free-form question and prints answer", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{
			AskFn: func(_ context.Context, question string) (string, error) {
				if question == "Gibt es Zuschüsse für Solaranlagen?" {
					return "Ja, zum Beispiel ...", nil
				}
				return "", nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Asker:  asker,
		}

		err := (&main.AskCmd{Question: "Gibt es Zuschüsse für Solaranlagen?"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Ja, zum Beispiel ...\n", stdout.String())
	})

	t.Run("builds question from company profile", func(t *testing.T) {
		t.Parallel()

		var got string
		asker := &mock.Asker{
			AskFn: func(_ context.Context, question string) (string, error) {
				got = question
				return "ok", nil
			},
		}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Asker:  asker,
		}

		cmd := &main.AskCmd{Location: "Sachsen, Leipzig", Industry: "Logistik", Employees: 80, FundingType: "Umweltschutz"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, got, "Standort: Sachsen, Leipzig\n")
		assert.Contains(t, got, "Mitarbeiter: 80\n")
		assert.Contains(t, got, "Förderart: Umweltschutz\n")
	})

	t.Run("rejects empty profile without calling the assistant", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Asker:  &mock.Asker{},
		}

		err := (&main.AskCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, foerder.EINVALID, foerder.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: profile needs")
	})

	t.Run("prints assistant errors", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Asker: &mock.Asker{AskFn: func(context.Context, string) (string, error) {
				return "", foerder.Errorf(foerder.ENOTFOUND, "no indexed funding programs found")
			}},
		}

		err := (&main.AskCmd{Question: "q"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: no indexed funding programs found")
	})
}
