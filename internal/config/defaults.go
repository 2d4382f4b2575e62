package config

import "github.com/tlsguqwn-ship-it/rising-report/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 4311,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/rising-report",
			},
		},
		Logging: common.LoggingConfig{
			Level:   "info",
			Outputs: []string{"console", "file"},
		},
		Export: ExportConfig{
			OutputDir:   "./exports",
			PageWidth:   860,
			PageHeight:  1216,
			TimeoutSecs: 60,
		},
		MarketData: MarketDataConfig{
			Enabled:     true,
			Sources:     []string{},
			TimeoutSecs: 15,
		},
	}
}
