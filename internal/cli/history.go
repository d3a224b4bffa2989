package cli

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"schedsim/internal/report"
	"schedsim/internal/store"
)

func newHistoryCmd() *cobra.Command {
	var (
		db    string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(db, logrus.StandardLogger())
			if err != nil {
				return err
			}
			defer st.Close()
			ctx := context.Background()
			if err := st.Migrate(ctx); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(args) == 1 {
				run, err := st.GetRun(ctx, args[0])
				if err != nil {
					return err
				}
				report.Results(w, run.Algorithm, run.Processes, run.Metrics)
				report.Metrics(w, run.Metrics)
				report.Gantt(w, run.Timeline)
				return nil
			}

			runs, err := st.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(w)
			table.SetHeader([]string{"ID", "Created", "Algorithm", "Cores", "Avg Wait", "Avg Turnaround", "CPU %", "Throughput"})
			for _, r := range runs {
				table.Append([]string{
					r.ID,
					r.CreatedAt.Format("2006-01-02 15:04:05"),
					r.Algorithm,
					fmt.Sprint(r.Cores),
					fmt.Sprintf("%.2f", r.Metrics.AvgWaiting),
					fmt.Sprintf("%.2f", r.Metrics.AvgTurnaround),
					fmt.Sprintf("%.2f", r.Metrics.CPUUtilization),
					fmt.Sprintf("%.4f", r.Metrics.Throughput),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&db, "db", "cpusched.db", "SQLite history database")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (0 = all)")
	return cmd
}
