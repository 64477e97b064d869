package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <machine>",
	Short: "Export the transition graph",
	Long:  `Outputs a Mermaid diagram (graph TD) of the machine's states and transitions.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx *cli.SignalContext, app *cli.App) error {
			return app.Graph(ctx, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
