package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [machine...]",
	Short: "Check machine definitions",
	Long:  `Loads and compiles the named machines (all of them by default) and reports shape errors and nondeterministic transitions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx *cli.SignalContext, app *cli.App) error {
			return app.Validate(ctx, args...)
		})
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
