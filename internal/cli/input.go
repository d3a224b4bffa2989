package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"schedsim/internal/sched"
	"schedsim/internal/session"
	"schedsim/internal/workload"
)

// simFlags are shared by run and step.
type simFlags struct {
	input     string
	random    int
	seed      uint64
	algorithm string
	quantum   int
	cores     int
	custom    string
}

func (f *simFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Process list file (.json, .yml, .yaml)")
	cmd.Flags().IntVar(&f.random, "random", -1, "Generate N random processes instead of reading --input (0 = random count)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 42, "Seed for --random")
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "FCFS, SJF-NP, SJF-P, PR-NP, PR-P, RR, MLFQ, Intelligent or Custom")
	cmd.Flags().IntVarP(&f.quantum, "quantum", "q", 0, "Time quantum for RR and MLFQ")
	cmd.Flags().IntVarP(&f.cores, "cores", "c", 0, "Number of logical cores")
	cmd.Flags().StringVar(&f.custom, "custom", "", "JavaScript file defining customScheduler (implies --algorithm Custom)")
}

// session builds the simulation session from config file, flags and input.
func (f *simFlags) session(cmd *cobra.Command) (*session.Session, error) {
	cfg, err := sched.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		if cfg.Algorithm, err = sched.ParseAlgorithm(f.algorithm); err != nil {
			return nil, err
		}
	}
	if flags.Changed("quantum") {
		cfg.Quantum = f.quantum
	}
	if flags.Changed("cores") {
		cfg.Cores = f.cores
	}

	var source string
	if f.custom != "" {
		data, err := os.ReadFile(f.custom)
		if err != nil {
			return nil, fmt.Errorf("read custom scheduler: %w", err)
		}
		source = string(data)
		cfg.Algorithm = sched.Custom
	}

	procs, err := f.processes()
	if err != nil {
		return nil, err
	}
	return session.New(cfg, procs, source)
}

func (f *simFlags) processes() ([]*sched.Process, error) {
	switch {
	case f.input != "":
		return workload.Load(f.input)
	case f.random >= 0:
		return workload.Random(f.random, f.seed), nil
	default:
		return nil, fmt.Errorf("either --input or --random is required")
	}
}
