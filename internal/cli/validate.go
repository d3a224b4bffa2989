package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"schedsim/internal/sandbox"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <script.js>",
		Short: "Check a custom scheduler script without running it on real data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			if err := sandbox.Validate(string(data)); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: custom scheduler is valid\n", args[0])
			return nil
		},
	}
}
