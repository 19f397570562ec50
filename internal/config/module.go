package config

import "go.uber.org/fx"

// Module exposes an already loaded configuration to fx graphs.
func Module(cfg *Config) fx.Option {
	return fx.Supply(cfg)
}
