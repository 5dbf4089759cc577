package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/replenish-planner/internal/config"
	"github.com/andresuchdata/replenish-planner/internal/planner"
	"github.com/andresuchdata/replenish-planner/internal/service"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Plan orders for the next platforms and export them",
		Flags: runFlags(),
		Action: func(c *cli.Context) error {
			cfg := config.Load()

			opts, err := runOptions(c, newPrompter(os.Stdin, os.Stdout))
			if err != nil {
				return err
			}

			svc, cleanup, err := newPlanService(c.Context, cfg)
			defer cleanup()
			if err != nil {
				return err
			}

			ref := c.String("workbook")
			if ref == "" {
				ref = cfg.Planner.Workbook
			}
			path, err := svc.ResolveWorkbook(c.Context, ref, cfg.App.DownloadDir)
			if err != nil {
				return err
			}

			req := service.PlanRequest{
				WorkbookPath: path,
				Settings:     plannerSettings(cfg),
				Options:      opts,
				OutputXLSX:   outputPath(cfg, c.String("output"), cfg.Planner.OutputXLSX),
				OutputCSV:    outputPath(cfg, c.String("csv"), cfg.Planner.OutputCSV),
				Archive:      c.Bool("archive"),
				Upload:       c.Bool("upload"),
			}
			if c.IsSet("workers") {
				req.Settings.Workers = c.Int("workers")
			}

			res, err := svc.Plan(c.Context, req)
			if res != nil {
				printSummary(c.App.Writer, res)
			}
			return err
		},
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "workbook",
			Usage:   "Workbook path, s3://<key> or drive://<path|id:fileID>",
			EnvVars: []string{"PLANNER_WORKBOOK"},
		},
		&cli.IntFlag{
			Name:  "window",
			Usage: "Ordering window in days (48-hour ordering is 3)",
		},
		&cli.IntFlag{
			Name:  "platforms",
			Usage: "Number of upcoming ordering platforms to plan",
		},
		&cli.StringFlag{
			Name:  "every-day",
			Usage: "Whether the branch has a platform every day (yes/no)",
		},
		&cli.IntSliceFlag{
			Name:  "gaps",
			Usage: "Days between consecutive platforms, one per platform",
		},
		&cli.StringFlag{
			Name:    "output",
			Usage:   "Output workbook path",
			EnvVars: []string{"PLANNER_OUTPUT_XLSX"},
		},
		&cli.StringFlag{
			Name:    "csv",
			Usage:   "Optional CSV copy of the output",
			EnvVars: []string{"PLANNER_OUTPUT_CSV"},
		},
		&cli.BoolFlag{
			Name:  "archive",
			Usage: "Store the run in PostgreSQL",
		},
		&cli.BoolFlag{
			Name:  "upload",
			Usage: "Upload the outputs to object storage",
		},
		&cli.IntFlag{
			Name:    "workers",
			Usage:   "Products evaluated concurrently within a platform",
			EnvVars: []string{"PLANNER_WORKERS"},
		},
		&cli.BoolFlag{
			Name:  "no-prompt",
			Usage: "Fail instead of asking for missing answers",
		},
	}
}

// runOptions takes the answers from flags and asks for whatever is missing.
func runOptions(c *cli.Context, p *prompter) (planner.RunOptions, error) {
	interactive := !c.Bool("no-prompt")
	missing := func(name string) error {
		return fmt.Errorf("--%s is required with --no-prompt", name)
	}

	var opts planner.RunOptions
	var err error

	switch {
	case c.IsSet("window"):
		opts.WindowDays = c.Int("window")
	case interactive:
		if opts.WindowDays, err = p.number("Please enter your ordering platform (for example, 48-hour ordering is 3): ", 1); err != nil {
			return opts, err
		}
	default:
		return opts, missing("window")
	}

	switch {
	case c.IsSet("platforms"):
		opts.Platforms = c.Int("platforms")
	case interactive:
		if opts.Platforms, err = p.number("Enter the number of platforms: ", 1); err != nil {
			return opts, err
		}
	default:
		return opts, missing("platforms")
	}

	switch {
	case c.IsSet("every-day"):
		v, ok := parseYesNo(c.String("every-day"))
		if !ok {
			return opts, fmt.Errorf("--every-day must be yes or no, got %q", c.String("every-day"))
		}
		opts.EveryDay = v
	case interactive:
		if opts.EveryDay, err = p.yesNo("Does the branch have a platform every day? (yes/no): "); err != nil {
			return opts, err
		}
	default:
		return opts, missing("every-day")
	}

	if !opts.EveryDay {
		switch {
		case c.IsSet("gaps"):
			opts.Gaps = c.IntSlice("gaps")
		case interactive:
			if opts.Gaps, err = p.gaps(opts.Platforms); err != nil {
				return opts, err
			}
		default:
			return opts, missing("gaps")
		}
	}

	return opts, opts.Validate()
}

func plannerSettings(cfg *config.Config) planner.Settings {
	pc := cfg.Planner
	return planner.Settings{
		DataSheet:         pc.DataSheet,
		ConfigSheet:       pc.ConfigSheet,
		KeyColumn:         pc.KeyColumn,
		ValueColumn:       pc.ValueColumn,
		ShelfLifeColumn:   pc.ShelfLifeColumn,
		SafetyDaysColumn:  pc.SafetyDaysColumn,
		ForecastDays:      pc.ForecastDays,
		DefaultProductGap: pc.DefaultProductGap,
		TrendLabels:       pc.TrendLabels,
		Workers:           pc.Workers,
	}
}

// outputPath places bare file names under the configured output directory.
func outputPath(cfg *config.Config, flag, fallback string) string {
	p := flag
	if p == "" {
		p = fallback
	}
	if p == "" || filepath.IsAbs(p) || strings.ContainsRune(p, filepath.Separator) {
		return p
	}
	return filepath.Join(cfg.App.OutputDir, p)
}

func printSummary(w io.Writer, res *service.PlanResult) {
	s := res.Summary
	fmt.Fprintf(w, "Lead time:      %d days\n", res.LeadTime)
	fmt.Fprintf(w, "Platforms:      %d\n", s.Platforms)
	fmt.Fprintf(w, "Orders:         %d\n", s.Orders)
	fmt.Fprintf(w, "Total quantity: %d\n", s.TotalQuantity)
	if len(s.EmptyPlatforms) > 0 {
		fmt.Fprintf(w, "No orders for:  %s\n", strings.Join(s.EmptyPlatforms, ", "))
	}
	fmt.Fprintf(w, "Workbook:       %s\n", res.OutputXLSX)
	if res.OutputCSV != "" {
		fmt.Fprintf(w, "CSV:            %s\n", res.OutputCSV)
	}
	if res.RunID != 0 {
		fmt.Fprintf(w, "Archived as:    run %d\n", res.RunID)
	}
	for _, key := range res.UploadedKeys {
		fmt.Fprintf(w, "Uploaded:       %s\n", key)
	}
}
