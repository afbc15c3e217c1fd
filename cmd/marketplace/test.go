package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gear-dapps/nft-marketplace/artifact"
	"github.com/gear-dapps/nft-marketplace/e2e"
	"github.com/gear-dapps/nft-marketplace/scenario"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Provision the fixtures and run the integration tests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return scenario.NewRunner(cfg, logger).Run(cmd.Context(), e2e.Marketplace)
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the prebuilt contract fixtures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return artifact.NewFetcher(logger).EnsureAll(cmd.Context(), cfg.Fixtures)
	},
}

var preCommitCmd = &cobra.Command{
	Use:   "pre-commit",
	Short: "Run the formatting check, the linter and the integration tests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		b := newBuilder(cfg, logger)
		steps := []struct {
			name string
			run  func() error
		}{
			{"fmt", func() error { return b.Fmt(cmd.Context(), true) }},
			{"lint", func() error { return b.Lint(cmd.Context()) }},
		}
		for _, step := range steps {
			logger.Info("running pre-commit step", zap.String("step", step.name))
			if err = step.run(); err != nil {
				return err
			}
		}

		return scenario.NewRunner(cfg, logger).Run(cmd.Context(), e2e.Marketplace)
	},
}

func init() {
	testCmd.Flags().String("endpoint", "", "node gRPC endpoint")
	_ = viper.BindPFlag("endpoint", testCmd.Flags().Lookup("endpoint"))

	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(preCommitCmd)
}
