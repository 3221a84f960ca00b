// Package pairs implements the memory-match engine: deck generation,
// flip/match/turn resolution, win detection, and best-score bookkeeping.
// It contains pure logic with no external dependencies; the platform
// layer drives it with user events, a one-second clock, and deferred
// resolution callbacks.
package pairs

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-pairs/internal/config"
)

var (
	// ErrEmptyDeck is returned when the difficulty describes an empty or
	// odd-sized board.
	ErrEmptyDeck = errors.New("pairs: board size must be positive and even")

	// ErrTooManyPairs is returned when the board needs more symbol pairs
	// than the alphabet can supply.
	ErrTooManyPairs = errors.New("pairs: not enough symbols for requested pairs")

	// ErrInvalidPosition is returned for a flip outside the deck bounds.
	ErrInvalidPosition = errors.New("pairs: position out of range")
)

// Tile is one face-down card on the board. Immutable once dealt.
type Tile struct {
	Pos    int
	Symbol rune
}

// Deck is an ordered sequence of tiles, each symbol appearing exactly twice.
type Deck []Tile

// NewDeck builds a shuffled deck for the given difficulty.
// It draws Pairs() distinct symbols without replacement from the alphabet,
// duplicates each, and applies a Fisher-Yates shuffle with the given RNG.
func NewDeck(diff config.Difficulty, alphabet []rune, rng *rand.Rand) (Deck, error) {
	n := diff.Size()
	if n <= 0 || n%2 != 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrEmptyDeck, diff.Cols, diff.Rows)
	}

	numPairs := n / 2
	if numPairs > len(alphabet) {
		return nil, fmt.Errorf("%w: need %d, alphabet has %d", ErrTooManyPairs, numPairs, len(alphabet))
	}

	// Draw symbols without replacement
	drawn := make([]rune, len(alphabet))
	copy(drawn, alphabet)
	rng.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})
	drawn = drawn[:numPairs]

	// Two tiles per symbol
	deck := make(Deck, 0, n)
	for _, sym := range drawn {
		deck = append(deck, Tile{Symbol: sym}, Tile{Symbol: sym})
	}

	// Fisher-Yates
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}

	// Assign positions after shuffle
	for i := range deck {
		deck[i].Pos = i
	}

	return deck, nil
}
