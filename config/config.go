// Package config contains the integration harness configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gear-dapps/nft-marketplace/artifact"
	"github.com/gear-dapps/nft-marketplace/market"
)

// Config is the harness configuration.
type Config struct {
	// Endpoint is the node gRPC endpoint.
	Endpoint string `yaml:"endpoint"`
	// TargetDir is the directory holding build output and fixtures.
	TargetDir string `yaml:"target_dir"`
	// Fixtures are the prebuilt contract binaries the tests deploy.
	Fixtures []artifact.Artifact `yaml:"fixtures,omitempty"`
	// Market configures the marketplace deployment.
	Market MarketConfig `yaml:"market"`
	// GasLimit is the default message gas limit.
	GasLimit uint64 `yaml:"gas_limit"`
	// Timeout bounds every scenario test function.
	Timeout time.Duration `yaml:"timeout"`
}

// MarketConfig configures the marketplace deployment.
type MarketConfig struct {
	// TreasuryFee is the treasury fee in percent (0..=100).
	TreasuryFee uint8 `yaml:"treasury_fee"`
}

// Default returns the default configuration.
func Default() *Config {
	targetDir := "target"
	return &Config{
		Endpoint:  "127.0.0.1:9944",
		TargetDir: targetDir,
		Fixtures:  artifact.DefaultFixtures(targetDir),
		Market: MarketConfig{
			TreasuryFee: 3,
		},
		GasLimit: 100_000_000_000,
		Timeout:  2 * time.Minute,
	}
}

// Load reads the configuration from the given file, filling unset fields
// with defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	cfg := Default()
	if err = yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if len(cfg.Fixtures) == 0 {
		cfg.Fixtures = artifact.DefaultFixtures(cfg.TargetDir)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate performs config validation.
func (cfg *Config) Validate() error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("config: endpoint must be set")
	}
	if cfg.TargetDir == "" {
		return fmt.Errorf("config: target_dir must be set")
	}
	if cfg.Market.TreasuryFee > market.MaxTreasuryFee {
		return fmt.Errorf("config: treasury fee out of range: %d", cfg.Market.TreasuryFee)
	}
	if cfg.GasLimit == 0 {
		return fmt.Errorf("config: gas_limit must be set")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive")
	}
	for i, f := range cfg.Fixtures {
		if f.Name == "" || f.URL == "" || f.Path == "" {
			return fmt.Errorf("config: fixture %d is missing a name, url or path", i)
		}
	}
	return nil
}

// FixturePath returns the provisioning path of the named fixture.
func (cfg *Config) FixturePath(name string) (string, error) {
	for _, f := range cfg.Fixtures {
		if f.Name == name {
			return f.Path, nil
		}
	}
	return "", fmt.Errorf("config: unknown fixture: %s", name)
}
