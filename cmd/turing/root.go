package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing is a deterministic multi-tape Turing machine simulator",
	Long: `Turing loads machine definitions (YAML, TOML, JSON or Markdown front matter),
runs them on input words and records every run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Configuration file (default "+config.DefaultFile+" when present)")
	flags.String("dir", "", "Directory or file holding the machine definitions")
	flags.String("store", "", "Run store backend: memory, file, redis or sqlite")
	flags.Int("max-steps", 0, "Default step bound of every run")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Also write JSON logs to this file")
}

// loadConfig reads the configuration file and applies the persistent flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if flags.Changed("dir") {
		cfg.Machines, _ = flags.GetString("dir")
	}
	if flags.Changed("store") {
		cfg.Store.Backend, _ = flags.GetString("store")
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps, _ = flags.GetInt("max-steps")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-file") {
		cfg.Log.File, _ = flags.GetString("log-file")
	}
	return cfg, cfg.Validate()
}

// withApp builds the App for cmd, hands it to fn and releases it afterwards.
func withApp(cmd *cobra.Command, fn func(*cli.SignalContext, *cli.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sigCtx := cli.NewSignalContext(cmd.Context())
	defer sigCtx.Cancel()

	app, err := cli.Setup(sigCtx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	app.Out = cmd.OutOrStdout()

	return fn(sigCtx, app)
}
