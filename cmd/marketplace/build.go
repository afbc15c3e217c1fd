package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fmtCheck bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the release WASM artifacts",
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

		artifacts, err := newBuilder(cfg, logger).Build(cmd.Context())
		if err != nil {
			return err
		}
		for _, a := range artifacts {
			logger.Info("built artifact", zap.String("path", a))
		}
		return nil
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Install the WASM build target and build the release artifacts",
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
		if err = b.Init(cmd.Context()); err != nil {
			return err
		}
		_, err = b.Build(cmd.Context())
		return err
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Install the WASM build target",
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

		return newBuilder(cfg, logger).Init(cmd.Context())
	},
}

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Format the contract sources",
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

		return newBuilder(cfg, logger).Fmt(cmd.Context(), fmtCheck)
	},
}

var lintCmd = &cobra.Command{
	Use:     "lint",
	Aliases: []string{"linter"},
	Short:   "Lint the contract sources",
	Args:    cobra.NoArgs,
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

		return newBuilder(cfg, logger).Lint(cmd.Context())
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the build output",
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

		return newBuilder(cfg, logger).Clean()
	},
}

func init() {
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "fail on formatting differences instead of rewriting")

	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(cleanCmd)
}
