package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/replenish-planner/internal/config"
	"github.com/andresuchdata/replenish-planner/internal/planner"
)

// collectOptions runs runOptions behind the real run flags.
func collectOptions(t *testing.T, input string, args ...string) (planner.RunOptions, error) {
	t.Helper()

	var (
		opts planner.RunOptions
		err  error
	)
	app := &cli.App{
		Commands: []*cli.Command{{
			Name:  "run",
			Flags: runFlags(),
			Action: func(c *cli.Context) error {
				opts, err = runOptions(c, newPrompter(strings.NewReader(input), &bytes.Buffer{}))
				return nil
			},
		}},
	}
	require.NoError(t, app.Run(append([]string{"planner", "run"}, args...)))
	return opts, err
}

func TestRunOptions_FromFlags(t *testing.T) {
	opts, err := collectOptions(t, "", "--window", "3", "--platforms", "2", "--every-day", "no", "--gaps", "2,3")
	require.NoError(t, err)
	assert.Equal(t, planner.RunOptions{WindowDays: 3, Platforms: 2, Gaps: []int{2, 3}}, opts)
}

func TestRunOptions_Prompted(t *testing.T) {
	opts, err := collectOptions(t, "0\n3\n2\nmaybe\nyes\n")
	require.NoError(t, err)
	assert.Equal(t, 3, opts.WindowDays)
	assert.Equal(t, 2, opts.Platforms)
	assert.True(t, opts.EveryDay)
	assert.Nil(t, opts.Gaps)
}

func TestRunOptions_NoPrompt(t *testing.T) {
	_, err := collectOptions(t, "", "--no-prompt", "--window", "3")
	assert.ErrorContains(t, err, "--platforms")

	_, err = collectOptions(t, "", "--window", "3", "--platforms", "1", "--every-day", "sometimes")
	assert.ErrorContains(t, err, "yes or no")

	_, err = collectOptions(t, "", "--window", "3", "--platforms", "0", "--every-day", "yes")
	assert.ErrorIs(t, err, planner.ErrInvalidOptions)
}

func TestOutputPath(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{OutputDir: "out"}}

	assert.Equal(t, filepath.Join("out", "orders.xlsx"), outputPath(cfg, "", "orders.xlsx"))
	assert.Equal(t, filepath.Join("out", "x.csv"), outputPath(cfg, "x.csv", "orders.csv"))
	assert.Equal(t, "/tmp/x.xlsx", outputPath(cfg, "/tmp/x.xlsx", ""))
	assert.Equal(t, filepath.Join("reports", "x.xlsx"), outputPath(cfg, filepath.Join("reports", "x.xlsx"), ""))
	assert.Empty(t, outputPath(cfg, "", ""))
}
