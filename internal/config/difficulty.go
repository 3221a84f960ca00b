package config

import (
	"errors"
	"fmt"
)

// ErrUnknownDifficulty is returned when a difficulty identifier does not
// match any configured difficulty.
var ErrUnknownDifficulty = errors.New("config: unknown difficulty")

// Difficulty describes one board layout. Selecting a difficulty deals a
// fresh deck of Cols*Rows tiles.
type Difficulty struct {
	ID   string `yaml:"id"`
	Cols int    `yaml:"cols"`
	Rows int    `yaml:"rows"`
}

// Pairs returns the number of symbol pairs on this board.
func (d Difficulty) Pairs() int {
	return d.Cols * d.Rows / 2
}

// Size returns the total number of tiles on this board.
func (d Difficulty) Size() int {
	return d.Cols * d.Rows
}

// Key returns the persistence key for this difficulty, derived from the
// board dimensions (e.g. "4x4"). Best scores are stored under this key.
func (d Difficulty) Key() string {
	return fmt.Sprintf("%dx%d", d.Cols, d.Rows)
}

// Validate checks that the difficulty describes a playable board for the
// given symbol alphabet size.
func (d Difficulty) Validate(alphabetSize int) error {
	if d.ID == "" {
		return errors.New("config: difficulty id must not be empty")
	}
	if d.Cols <= 0 || d.Rows <= 0 {
		return fmt.Errorf("config: difficulty %q has non-positive dimensions %dx%d", d.ID, d.Cols, d.Rows)
	}
	if d.Size()%2 != 0 {
		return fmt.Errorf("config: difficulty %q has odd tile count %d", d.ID, d.Size())
	}
	if d.Pairs() > alphabetSize {
		return fmt.Errorf("config: difficulty %q needs %d pairs but alphabet has only %d symbols",
			d.ID, d.Pairs(), alphabetSize)
	}
	return nil
}

// Find returns the difficulty with the given identifier.
func Find(difficulties []Difficulty, id string) (Difficulty, error) {
	for _, d := range difficulties {
		if d.ID == id {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, id)
}
