// Command pimatch drives the higher-order/AC pattern matching engine from
// the command line: a handful of worked examples (run) and a crude
// timing benchmark (bench), built on cobra subcommands with a
// config-loading persistent pre-run hook.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lambdapi-match/pimatch/internal/config"
	"github.com/lambdapi-match/pimatch/internal/trace"
)

var (
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pimatch",
	Short: "Higher-order and AC pattern matching engine",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("pimatch: loading config: %w", err)
		}
		if verbose {
			cfg.Logging.Verbose = true
		}
		return trace.SetVerbose(cfg.Logging.Verbose)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "pimatch.yaml", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level trace logging")
	rootCmd.AddCommand(runCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
