package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	main "github.com/Lechtr/foerder/cmd/foerder"
	"github.com/Lechtr/foerder/crawl"
	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"crawl", "status", "index", "ask", "export"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range commands {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_CrawlDefaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--output", "out.csv", "crawl"})
	require.NoError(t, err)

	assert.Equal(t, "out.csv", cli.Output)
	assert.Equal(t, 10, cli.Crawl.MaxPages)
	assert.Equal(t, 10, cli.Crawl.PageSize)
	assert.Equal(t, 5, cli.Crawl.MaxAttempts)
	assert.Equal(t, crawl.DefaultDelayMin, cli.Crawl.DelayMin)
	assert.Equal(t, crawl.DefaultDelayMax, cli.Crawl.DelayMax)
	assert.Equal(t, "30s", cli.Crawl.Timeout.String())
	assert.InDelta(t, 1.0, cli.Crawl.DetailRPS, 0.001)
	assert.False(t, cli.Crawl.Browser)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	for _, cmd := range commands {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_UnknownCommand(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out.csv")
	err := main.NewMain().Run(context.Background(), []string{"--output", out, "frobnicate"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
}
