package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/fdeint/internal/logging"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fdeint",
		Short: "fdeint solves fractional differential equations",
		Long: `fdeint integrates Caputo-type fractional initial value problems with
Adams-Bashforth, predictor-corrector, L1, Grunwald-Letnikov and product
trapezoidal schemes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")

	cmd.AddCommand(newSolveCmd(), newConvergenceCmd(), newMethodsCmd(), newProblemsCmd(), newVersionCmd())
	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loggerFor(cmd *cobra.Command) (*slog.Logger, error) {
	name, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return logging.NewWriter(cmd.ErrOrStderr(), level), nil
}
