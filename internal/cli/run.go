package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"schedsim/internal/report"
	"schedsim/internal/store"
)

func newRunCmd() *cobra.Command {
	var (
		sim       simFlags
		csvPath   string
		history   string
		showGantt bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and print results",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sim.session(cmd)
			if err != nil {
				return err
			}
			out, err := s.Run()
			if err != nil {
				return err
			}
			logrus.Infof("Simulated %d processes with %s on %d core(s)", len(out.Processes), out.Name, out.Cores)

			w := cmd.OutOrStdout()
			report.Results(w, out.Name, out.Processes, out.Metrics)
			report.Metrics(w, out.Metrics)
			if showGantt {
				_, _ = fmt.Fprintln(w)
				report.Gantt(w, out.Timeline)
			}

			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return fmt.Errorf("create csv: %w", err)
				}
				if err := report.CSV(f, out.Timeline); err != nil {
					f.Close()
					return fmt.Errorf("write csv: %w", err)
				}
				if err := f.Close(); err != nil {
					return err
				}
			}

			if history != "" {
				st, err := store.Open(history, logrus.StandardLogger())
				if err != nil {
					return err
				}
				defer st.Close()
				ctx := context.Background()
				if err := st.Migrate(ctx); err != nil {
					return err
				}
				run := store.FromOutcome(out)
				if err := st.SaveRun(ctx, run); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "Recorded run %s\n", run.ID)
			}
			return nil
		},
	}

	sim.register(cmd)
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the timeline as CSV to this file")
	cmd.Flags().StringVar(&history, "history", "", "Record the run in this SQLite database")
	cmd.Flags().BoolVar(&showGantt, "gantt", true, "Print a text Gantt chart")
	return cmd
}
