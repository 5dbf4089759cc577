package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/replenish-planner/internal/config"
	"github.com/andresuchdata/replenish-planner/internal/planner"
)

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List archived runs, or the orders of one run",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Number of runs to list",
				Value: 20,
			},
			&cli.Int64Flag{
				Name:  "run-id",
				Usage: "Show the orders of this run",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			svc, cleanup, err := newPlanService(c.Context, cfg)
			defer cleanup()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			defer tw.Flush()

			if id := c.Int64("run-id"); id != 0 {
				orders, err := svc.Suggestions(c.Context, id)
				if err != nil {
					return err
				}
				fmt.Fprintln(tw, "PLATFORM\tDATE\tPRODUCT\tQUANTITY")
				for _, o := range orders {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", o.Platform, o.DeliveryDate.Format(planner.DateLayout), o.ProductCode, o.Quantity)
				}
				return nil
			}

			runs, err := svc.History(c.Context, c.Int("limit"))
			if err != nil {
				return err
			}
			fmt.Fprintln(tw, "ID\tCREATED\tWORKBOOK\tWINDOW\tPLATFORMS\tORDERS\tTOTAL")
			for _, r := range runs {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Workbook, r.WindowDays, r.Platforms, r.Orders, r.TotalQty)
			}
			return nil
		},
	}
}
