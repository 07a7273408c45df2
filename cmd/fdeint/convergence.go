package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/born-ml/fdeint/internal/config"
	"github.com/born-ml/fdeint/internal/convergence"
	"github.com/born-ml/fdeint/internal/parallel"
)

func newConvergenceCmd() *cobra.Command {
	var (
		problemName string
		method      string
		order       float64
		terminal    float64
		initial     float64
		steps       []float64
		options     map[string]string
		workers     int
		dtype       string
	)

	cmd := &cobra.Command{
		Use:   "convergence",
		Short: "Estimate the empirical order of a scheme",
		Long: `Solves a problem with a known solution at every --steps value, in
parallel, and prints the error at the last grid point together with the
observed rate log(e1/e2)/log(h1/h2) between consecutive step sizes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := loggerFor(cmd)
			if err != nil {
				return err
			}

			run := config.Default()
			run.Problem = problemName
			run.Method = method
			run.Order = &order
			run.TerminalTime = &terminal
			run.DType = dtype
			if cmd.Flags().Changed("initial") {
				run.Initial = &initial
			}
			for k, v := range options {
				if run.Options == nil {
					run.Options = map[string]any{}
				}
				run.Options[k] = v
			}
			plan, err := run.Resolve()
			if err != nil {
				return err
			}

			cfg := parallel.DefaultConfig()
			if cmd.Flags().Changed("workers") {
				cfg = parallel.Config{Enabled: workers > 1, NumWorkers: workers}
			}
			study := &convergence.Study{
				Problem:  plan.Problem,
				Scheme:   plan.Scheme,
				Order:    plan.Order,
				Terminal: plan.Terminal,
				Initial:  plan.Initial,
				Steps:    steps,
				DType:    plan.DType,
				Parallel: cfg,
				Logger:   logger,
			}
			results, err := study.Run()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "%s / %s, order %g\n", plan.Problem.Name, plan.Scheme.Method(), plan.Order)
			fmt.Fprintln(w, "STEP\tPOINTS\tT\tERROR\tRATE")
			for _, r := range results {
				rate := "-"
				if !math.IsNaN(r.Rate) {
					rate = fmt.Sprintf("%.3f", r.Rate)
				}
				fmt.Fprintf(w, "%g\t%d\t%g\t%.3e\t%s\n", r.Step, r.Points, r.T, r.Error, rate)
			}
			return w.Flush()
		},
	}

	f := cmd.Flags()
	f.StringVarP(&problemName, "problem", "p", "relaxation", "Problem name")
	f.StringVarP(&method, "method", "m", "predictor", "Scheme")
	f.Float64VarP(&order, "order", "b", 1, "Fractional order")
	f.Float64VarP(&terminal, "terminal", "T", 1, "Terminal time")
	f.Float64Var(&initial, "initial", 0, "Initial value (default: the problem's)")
	f.Float64SliceVar(&steps, "steps", []float64{0.04, 0.02, 0.01, 0.005}, "Step sizes")
	f.StringToStringVarP(&options, "option", "o", nil, "Scheme option key=value")
	f.IntVar(&workers, "workers", 0, "Parallel solves (default: number of CPUs)")
	f.StringVar(&dtype, "dtype", "float64", "State dtype: float32 or float64")
	return cmd
}
