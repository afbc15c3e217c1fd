package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gear-dapps/nft-marketplace/builder"
	"github.com/gear-dapps/nft-marketplace/config"
)

const envPrefix = "MARKETPLACE"

var (
	cfgFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:          "marketplace",
		Short:        "NFT marketplace contract workspace tool",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
}

// newLogger builds the command logger. Verbose mode switches to the
// development encoder with debug levels enabled.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	logCfg := zap.NewProductionConfig()
	logCfg.Encoding = "console"
	logCfg.DisableStacktrace = true
	return logCfg.Build()
}

// loadConfig loads the configuration file named by --config (or the
// MARKETPLACE_CONFIG environment variable), falling back to defaults, and
// applies environment overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := viper.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if endpoint := viper.GetString("endpoint"); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	return cfg, cfg.Validate()
}

func newBuilder(cfg *config.Config, logger *zap.Logger) *builder.Builder {
	return builder.New(".", logger, builder.WithTargetDir(cfg.TargetDir))
}
