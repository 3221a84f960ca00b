package config

import (
	_ "embed"
)

//go:embed defaults/pairs.yaml
var defaultPairsYAML []byte

// DefaultPairsConfig returns the default pairs configuration.
func DefaultPairsConfig() PairsConfig {
	return PairsConfig{
		Symbols: "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		Delays: DelayConfig{
			MatchMs:    400,
			MismatchMs: 900,
		},
		Difficulties: []Difficulty{
			{ID: "easy", Cols: 4, Rows: 4},
			{ID: "medium", Cols: 6, Rows: 4},
			{ID: "hard", Cols: 6, Rows: 6},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML configuration.
func GetDefaultYAML() []byte {
	return defaultPairsYAML
}
