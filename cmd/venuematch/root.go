package main

import (
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/venuematch/internal/app"
	"github.com/okian/venuematch/internal/config"
	"github.com/okian/venuematch/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "venuematch",
		Short: "Reconcile informal venue names against the campus room registry",
		Long: `venuematch resolves informal venue names such as LT14 or SDE-SR2 to
canonical rooms, either with local matching rules against the room registry
or with the campus geocoding service. Results are kept between runs so that
only unmatched venues are retried.`,
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

type runFlags struct {
	config     string
	envFile    string
	engine     string
	rematchAll bool
	includeNew bool
}

func newRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Match venues and update the reconciliation state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// Load configuration (defaults -> optional file -> env)
			cfg, err := config.Load(ctx, config.WithFile(f.config), config.WithEnvFile(f.envFile))
			if err != nil {
				return err
			}

			// Explicit flags win over file and env.
			flags := cmd.Flags()
			if flags.Changed("engine") {
				cfg.Engine = f.engine
			}
			if flags.Changed("rematch-all") {
				cfg.RematchAll = f.rematchAll
			}
			if flags.Changed("include-new") {
				cfg.IncludeNewVenues = f.includeNew
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}
			defer func() { _ = logger.Sync() }()
			log := logger.Get()

			// Apply configured log level (fallback to info on invalid input)
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
				_ = logger.SetLevelString("info")
			}

			sum, err := service.New(service.WithConfig(cfg), service.WithLogger(log)).Run(ctx)
			if err != nil {
				log.Error(ctx, "run failed", logger.String("run_id", sum.RunID), logger.Error(err))
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "found %d of %d venues (%d new this run, %d unmatched)\n",
				sum.Matched, sum.Total, sum.Resolved, sum.Unmatched)
			if sum.PersistFailures > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "warning: %d result documents could not be written\n", sum.PersistFailures)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.config, "config", "", "YAML config file (default $"+config.EnvConfigFile+")")
	cmd.Flags().StringVar(&f.envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")
	cmd.Flags().StringVar(&f.engine, "engine", config.EngineLocal, "matching engine: local or remote")
	cmd.Flags().BoolVar(&f.rematchAll, "rematch-all", false, "ignore saved state and match every venue again")
	cmd.Flags().BoolVar(&f.includeNew, "include-new", false, "also try source venues missing from saved state")

	return cmd
}
