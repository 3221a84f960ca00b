// Package config provides YAML-based game configuration loading and
// difficulty management for the pairs platform.
package config

import (
	"fmt"
	"time"
)

// PairsConfig contains all configuration for the pairs game.
type PairsConfig struct {
	Symbols      string       `yaml:"symbols"`
	Delays       DelayConfig  `yaml:"delays"`
	Difficulties []Difficulty `yaml:"difficulties"`
}

// DelayConfig defines the flip resolution delays in milliseconds.
// A matching pair commits after the (shorter) match delay; a mismatching
// pair stays face-up for the (longer) mismatch delay before de-revealing.
type DelayConfig struct {
	MatchMs    int `yaml:"match_ms"`
	MismatchMs int `yaml:"mismatch_ms"`
}

// MatchDelay returns the resolution delay for a matching pair.
func (d DelayConfig) MatchDelay() time.Duration {
	return time.Duration(d.MatchMs) * time.Millisecond
}

// MismatchDelay returns the resolution delay for a mismatching pair.
func (d DelayConfig) MismatchDelay() time.Duration {
	return time.Duration(d.MismatchMs) * time.Millisecond
}

// Alphabet returns the symbol alphabet as runes.
func (c PairsConfig) Alphabet() []rune {
	return []rune(c.Symbols)
}

// Validate checks the configuration for playability.
func (c PairsConfig) Validate() error {
	alphabet := c.Alphabet()
	if len(alphabet) == 0 {
		return fmt.Errorf("config: symbol alphabet must not be empty")
	}
	seen := make(map[rune]bool, len(alphabet))
	for _, r := range alphabet {
		if seen[r] {
			return fmt.Errorf("config: duplicate symbol %q in alphabet", r)
		}
		seen[r] = true
	}
	if c.Delays.MatchMs < 0 || c.Delays.MismatchMs < 0 {
		return fmt.Errorf("config: resolution delays must not be negative")
	}
	if len(c.Difficulties) == 0 {
		return fmt.Errorf("config: at least one difficulty is required")
	}
	ids := make(map[string]bool, len(c.Difficulties))
	for _, d := range c.Difficulties {
		if err := d.Validate(len(alphabet)); err != nil {
			return err
		}
		if ids[d.ID] {
			return fmt.Errorf("config: duplicate difficulty id %q", d.ID)
		}
		ids[d.ID] = true
	}
	return nil
}

// Difficulty returns the configured difficulty with the given identifier.
func (c PairsConfig) Difficulty(id string) (Difficulty, error) {
	return Find(c.Difficulties, id)
}
