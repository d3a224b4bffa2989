package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"schedsim/internal/report"
)

func newStepCmd() *cobra.Command {
	var sim simFlags

	cmd := &cobra.Command{
		Use:   "step",
		Short: "Replay a simulation one timeline segment at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sim.session(cmd)
			if err != nil {
				return err
			}
			out, cursor, err := s.Step()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Algorithm: %s\n", out.Name)
			for frame := cursor.Advance(); ; frame = cursor.Advance() {
				if frame.Step > 0 {
					report.Frame(w, frame)
				}
				if frame.Done {
					break
				}
			}
			_, _ = fmt.Fprintln(w)
			report.Gantt(w, out.Timeline)
			report.Metrics(w, out.Metrics)
			return nil
		},
	}

	sim.register(cmd)
	return cmd
}
