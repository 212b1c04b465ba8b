package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	main "github.com/Lechtr/foerder/cmd/foerder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Story: a crawl is resumed, inspected, exported and indexed.

func TestMain_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "foerderungen_list.csv")
	db := filepath.Join(dir, "foerder.db")
	ctx := context.Background()

	crawlArgs := []string{
		"--output", out, "crawl",
		"--start-url", startURL,
		"--delay-min", "0s", "--delay-max", "0s",
		"--detail-rps", "0",
		"--page-size", "2",
	}

	// Given a first crawl limited to page 1
	fetcher, _ := siteFetcher(site())
	stdout := &bytes.Buffer{}
	err := (&main.Main{Fetcher: fetcher}).Run(ctx, append(crawlArgs, "--max-pages", "1"), stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Saved 2 new programs from 1 page; 2 total")

	// When I check the status
	stdout.Reset()
	err = main.NewMain().Run(ctx, []string{"--output", out, "status", "--page-size", "2"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Programs:  2\n")
	assert.Contains(t, stdout.String(), "Next page: 2\n")

	// And I resume with a larger budget
	fetcher, fetched := siteFetcher(site())
	stdout.Reset()
	err = (&main.Main{Fetcher: fetcher}).Run(ctx, append(crawlArgs, "--max-pages", "5"), stdout, &bytes.Buffer{})
	require.NoError(t, err)

	// Then page 1 is skipped without refetching its details
	assert.Contains(t, stdout.String(), "Page 1: skipped")
	assert.Contains(t, stdout.String(), "Saved 1 new program from 1 page, skipped 1 page; 3 total")
	assert.NotContains(t, *fetched, programURL("digital-jetzt"))

	// And the programs can be exported
	xlsxPath := filepath.Join(dir, "foerderungen.xlsx")
	err = main.NewMain().Run(ctx, []string{"--output", out, "export", "--xlsx", xlsxPath}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	// And indexed twice without duplicates
	stdout.Reset()
	err = main.NewMain().Run(ctx, []string{"--output", out, "--db", db, "index"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "3 new, 0 updated, 0 unchanged")

	stdout.Reset()
	err = main.NewMain().Run(ctx, []string{"--output", out, "--db", db, "index"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "0 new, 0 updated, 3 unchanged")
}

func TestMain_Run_AskRequiresAPIKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{
		"--output", filepath.Join(dir, "out.csv"),
		"--db", filepath.Join(dir, "foerder.db"),
		"ask", "--api-key=", "Was gibt es?",
	}, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY not set")
}
