package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"schedsim/internal/workload"
)

func newGenerateCmd() *cobra.Command {
	var (
		out   string
		count int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random process list",
		RunE: func(cmd *cobra.Command, args []string) error {
			procs := workload.Random(count, seed)
			if out == "" {
				return workload.Encode(cmd.OutOrStdout(), procs, workload.JSON)
			}
			if err := workload.Save(out, procs); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d processes to %s\n", len(procs), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (.json, .yml, .yaml); stdout when empty")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of processes (0 = random count between 3 and 10)")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "Random seed")
	return cmd
}
