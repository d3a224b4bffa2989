package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagLogLevel string
	flagConfig   string
)

// NewRootCmd creates the root cobra command for the cpusched CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cpusched",
		Short: "CPU scheduling simulator",
		Long:  "cpusched computes dispatch timelines and metrics for classic and adaptive CPU scheduling algorithms.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(flagLogLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			logrus.SetOutput(cmd.ErrOrStderr())
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagLogLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Simulation config file (YAML)")

	root.AddCommand(
		newRunCmd(),
		newStepCmd(),
		newValidateCmd(),
		newGenerateCmd(),
		newHistoryCmd(),
	)
	return root
}
