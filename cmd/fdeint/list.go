package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/born-ml/fdeint/internal/problem"
	"github.com/born-ml/fdeint/internal/solver"
)

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the available integration schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, m := range solver.Methods() {
				fmt.Fprintf(w, "%s\t%s\n", m, m.Description())
			}
			return w.Flush()
		},
	}
}

func newProblemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "problems",
		Short: "List the built-in test equations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tORDER\tT\tH\tY0\tEQUATION")
			for _, name := range problem.Names() {
				p, err := problem.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%s\n",
					p.Name, p.Order, p.Terminal, p.Step, p.Initial, p.Description)
			}
			return w.Flush()
		},
	}
}
