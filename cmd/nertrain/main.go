// Package main provides the nertrain CLI, which teaches an entity recognizer
// the EDUCATION and STUDIEDAT labels.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/born-ml/nertrain/internal/config"
)

const version = "v0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	flags := config.Default()

	cmd := &cobra.Command{
		Use:   "nertrain",
		Short: "Train an entity recognizer on EDUCATION and STUDIEDAT examples",
		Long: `nertrain loads a saved pipeline (or creates a blank English one), adds the
EDUCATION and STUDIEDAT entity labels, trains the entity recognizer on the
built-in examples, and prints the entities found in a test sentence.

With --output-dir the trained pipeline is saved, reloaded and tested again.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			applyFlags(cmd, &cfg, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML file with training settings")
	f.StringVarP(&flags.Model, "model", "m", "", "pipeline directory to load (default: blank 'en' pipeline)")
	f.StringVar(&flags.NewModelName, "new-model-name", flags.NewModelName, "model name recorded when saving")
	f.StringVarP(&flags.OutputDir, "output-dir", "o", "", "directory to save the trained pipeline to")
	f.IntVarP(&flags.Iterations, "n-iter", "n", flags.Iterations, "number of training iterations")
	f.Float32Var(&flags.Dropout, "dropout", flags.Dropout, "feature dropout rate")
	f.Int64Var(&flags.Seed, "seed", 0, "random seed (0 seeds from the clock)")

	return cmd
}

// applyFlags copies the flags set on the command line over cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags config.Config) {
	changed := cmd.Flags().Changed
	if changed("model") {
		cfg.Model = flags.Model
	}
	if changed("new-model-name") {
		cfg.NewModelName = flags.NewModelName
	}
	if changed("output-dir") {
		cfg.OutputDir = flags.OutputDir
	}
	if changed("n-iter") {
		cfg.Iterations = flags.Iterations
	}
	if changed("dropout") {
		cfg.Dropout = flags.Dropout
	}
	if changed("seed") {
		cfg.Seed = flags.Seed
	}
}
