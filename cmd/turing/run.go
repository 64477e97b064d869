package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <machine>",
	Short: "Run a machine on one or more inputs",
	Long: `Runs the named machine on every --input (and on every line of stdin with --stdin).
Each run is recorded in the configured store. Without inputs the empty word is run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, _ := cmd.Flags().GetStringArray("input")
		maxSteps, _ := cmd.Flags().GetInt("steps")
		format, _ := cmd.Flags().GetString("output")
		verbose, _ := cmd.Flags().GetBool("verbose")
		stdin, _ := cmd.Flags().GetBool("stdin")

		return withApp(cmd, func(ctx *cli.SignalContext, app *cli.App) error {
			_, err := app.Run(ctx, cli.RunOptions{
				Machine:  args[0],
				Inputs:   inputs,
				MaxSteps: maxSteps,
				Format:   format,
				Verbose:  verbose,
				Stdin:    stdin,
				In:       cmd.InOrStdin(),
			})
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayP("input", "i", nil, "Input word (repeatable)")
	runCmd.Flags().Int("steps", 0, "Step bound for these runs (overrides --max-steps)")
	runCmd.Flags().StringP("output", "o", cli.FormatText, "Output format: text, json or report")
	runCmd.Flags().BoolP("verbose", "v", false, "Print the final tapes")
	runCmd.Flags().Bool("stdin", false, "Read one input per line from stdin")
}
