package foerder_test

import (
	"context"
	"testing"

	"github.com/Lechtr/foerder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAsker verifies Asker interface can be implemented.
type mockAsker struct {
	AskFn func(ctx context.Context, question string) (string, error)
}

func (m *mockAsker) Ask(ctx context.Context, question string) (string, error) {
	return m.AskFn(ctx, question)
}

var _ foerder.Asker = (*mockAsker)(nil)

func TestAsker_CanBeImplemented(t *testing.T) {
	t.Parallel()

	asker := &mockAsker{
		AskFn: func(_ context.Context, question string) (string, error) {
			return "answer to " + question, nil
		},
	}

	answer, err := asker.Ask(context.Background(), "welche Programme?")

	require.NoError(t, err)
	assert.Equal(t, "answer to welche Programme?", answer)
}

func TestCompanyProfile(t *testing.T) {
	t.Parallel()

	t.Run("renders German profile message", func(t *testing.T) {
		t.Parallel()

		p := &foerder.CompanyProfile{
			Location:    "Bayern, München",
			Industry:    "Maschinenbau",
			Employees:   42,
			FundingType: "Digitalisierung",
		}

		q := p.Question()

		assert.Contains(t, q, "Standort: Bayern, München\n")
		assert.Contains(t, q, "Mitarbeiter: 42\n")
		assert.Contains(t, q, "Förderart: Digitalisierung\n")
		assert.NoError(t, p.Validate())
	})

	t.Run("rejects empty profile", func(t *testing.T) {
		t.Parallel()

		p := &foerder.CompanyProfile{}

		assert.Equal(t, foerder.EINVALID, foerder.ErrorCode(p.Validate()))
	})

	t.Run("rejects unknown funding type", func(t *testing.T) {
		t.Parallel()

		p := &foerder.CompanyProfile{Location: "Berlin", FundingType: "Lotterie"}

		err := p.Validate()
		assert.Equal(t, foerder.EINVALID, foerder.ErrorCode(err))
		assert.Contains(t, foerder.ErrorMessage(err), "Existenzgründung")
	})

	t.Run("rejects negative employee count", func(t *testing.T) {
		t.Parallel()

		p := &foerder.CompanyProfile{Industry: "IT", Employees: -1}

		assert.Equal(t, foerder.EINVALID, foerder.ErrorCode(p.Validate()))
	})
}
