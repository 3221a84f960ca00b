package pairs

import (
	"math/rand"

	"github.com/vovakirdan/tui-pairs/internal/config"
)

// Phase is the session lifecycle state. Exactly one phase is active at a
// time; transitions happen only through NewGame, TogglePause, and the win
// check inside Resolve.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhasePaused
	PhaseWon
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// FlipOutcome reports what a flip request did.
type FlipOutcome int

const (
	// FlipIgnored means the request was a no-op (wrong phase, tile already
	// matched or pending, or a pair is still unresolved).
	FlipIgnored FlipOutcome = iota
	// FlipRevealed means a first tile went face-up; no move charged yet.
	FlipRevealed
	// FlipMatch means the second tile completed a matching pair. The move
	// is charged now; the pair locks in when the resolution fires.
	FlipMatch
	// FlipMismatch means the second tile completed a mismatching pair. The
	// move is charged now; both tiles flip back when the resolution fires.
	FlipMismatch
)

// Resolution is the deferred commit token for a completed pair. The
// platform schedules it after the configured delay and hands it back via
// Resolve. Deal pins it to the session it was created in, so a resolution
// racing a restart is discarded instead of mutating the new deal.
type Resolution struct {
	Deal      uint64
	Positions [2]int
	Match     bool
}

// BestStore is the injected persistence collaborator. Keys are derived
// from board dimensions (config.Difficulty.Key). An absent entry means no
// record exists yet.
type BestStore interface {
	// GetBest returns the lowest recorded move count for the key.
	// ok is false when no record exists.
	GetBest(key string) (moves int, ok bool, err error)

	// SetBest records a new best move count for the key.
	SetBest(key string, moves int) error
}

// Engine holds one memory-match session and its state transitions.
// It is single-writer: the platform's event dispatcher is the only caller.
type Engine struct {
	rng      *rand.Rand
	best     BestStore
	alphabet []rune

	diff    config.Difficulty
	deck    Deck
	pending []int
	matched []bool
	done    int // tiles matched so far
	moves   int
	elapsed int
	phase   Phase

	// deal increments on every NewGame; stale resolutions carry an old
	// value and are ignored.
	deal uint64

	bestMoves int
	hasBest   bool
	newBest   bool
}

// NewEngine creates an engine with the given best-score collaborator,
// symbol alphabet, and RNG seed. A nil store disables best-score
// bookkeeping; the game itself still works.
func NewEngine(best BestStore, alphabet []rune, seed int64) *Engine {
	return &Engine{
		rng:      rand.New(rand.NewSource(seed)),
		best:     best,
		alphabet: alphabet,
		phase:    PhaseIdle,
	}
}

// NewGame deals a fresh deck for the difficulty and resets the session.
// Any in-flight resolution from the previous deal is invalidated by the
// deal counter bump. Fails with an invalid-argument error when the board
// is unplayable (odd size, too many pairs for the alphabet).
func (e *Engine) NewGame(diff config.Difficulty) error {
	deck, err := NewDeck(diff, e.alphabet, e.rng)
	if err != nil {
		return err
	}

	e.deal++
	e.diff = diff
	e.deck = deck
	e.pending = e.pending[:0]
	e.matched = make([]bool, len(deck))
	e.done = 0
	e.moves = 0
	e.elapsed = 0
	e.phase = PhasePlaying
	e.newBest = false
	e.loadBest()
	return nil
}

// loadBest reads the stored best for the active difficulty, best-effort.
func (e *Engine) loadBest() {
	e.bestMoves = 0
	e.hasBest = false
	if e.best == nil {
		return
	}
	if moves, ok, err := e.best.GetBest(e.diff.Key()); err == nil && ok {
		e.bestMoves = moves
		e.hasBest = true
	}
}

// RequestFlip turns the tile at pos face-up. Disallowed flips (wrong
// phase, matched tile, already-pending tile, two tiles still unresolved)
// are silent no-ops. An out-of-range position is an invalid argument.
//
// The second flip of a pair charges the move count immediately and
// returns a Resolution for the platform to schedule; the match/no-match
// commit itself is deferred until Resolve. This ordering keeps the move
// count correct under rapid input.
func (e *Engine) RequestFlip(pos int) (FlipOutcome, *Resolution, error) {
	if e.phase != PhasePlaying {
		return FlipIgnored, nil, nil
	}
	if pos < 0 || pos >= len(e.deck) {
		return FlipIgnored, nil, ErrInvalidPosition
	}
	if e.matched[pos] || e.isPending(pos) || len(e.pending) >= 2 {
		return FlipIgnored, nil, nil
	}

	e.pending = append(e.pending, pos)
	if len(e.pending) < 2 {
		return FlipRevealed, nil, nil
	}

	a, b := e.pending[0], e.pending[1]
	if a == b {
		// Structurally impossible given the pending guard; discard
		// without charging a move.
		e.pending = e.pending[:0]
		return FlipIgnored, nil, nil
	}

	e.moves++
	res := &Resolution{
		Deal:      e.deal,
		Positions: [2]int{a, b},
		Match:     e.deck[a].Symbol == e.deck[b].Symbol,
	}
	if res.Match {
		return FlipMatch, res, nil
	}
	return FlipMismatch, res, nil
}

// Resolve commits a pair outcome after the presentation delay. A token
// from a previous deal, or one whose pair is no longer the current
// pending pair, is a no-op.
func (e *Engine) Resolve(res Resolution) {
	if res.Deal != e.deal {
		return
	}
	if len(e.pending) != 2 {
		return
	}
	if e.pending[0] != res.Positions[0] || e.pending[1] != res.Positions[1] {
		return
	}

	e.pending = e.pending[:0]
	if !res.Match {
		return
	}

	for _, pos := range res.Positions {
		if !e.matched[pos] {
			e.matched[pos] = true
			e.done++
		}
	}
	e.checkWin()
}

// checkWin transitions to Won when every tile is matched and records the
// best score through the persistence collaborator.
func (e *Engine) checkWin() bool {
	if e.phase != PhasePlaying || len(e.deck) == 0 || e.done != len(e.deck) {
		return false
	}
	e.phase = PhaseWon
	e.recordBest()
	return true
}

// recordBest writes the move count iff it beats the stored best or no
// record exists. Store failures are swallowed; a best score is not worth
// interrupting a won game over.
func (e *Engine) recordBest() {
	if e.best == nil {
		return
	}
	key := e.diff.Key()
	cur, ok, err := e.best.GetBest(key)
	if err != nil {
		return
	}
	if ok && e.moves >= cur {
		e.bestMoves = cur
		e.hasBest = true
		return
	}
	if err := e.best.SetBest(key, e.moves); err != nil {
		return
	}
	e.bestMoves = e.moves
	e.hasBest = true
	e.newBest = true
}

// Tick advances the elapsed clock by one second. Ticks delivered while
// paused, idle, or won are ignored, so missed or duplicate ticks are
// harmless.
func (e *Engine) Tick() {
	if e.phase == PhasePlaying {
		e.elapsed++
	}
}

// TogglePause switches between Playing and Paused. Any other phase is
// unaffected. While paused, the clock does not advance and flips are
// rejected. A resolution can commit the final pair while paused, so the
// win check re-runs on resume.
func (e *Engine) TogglePause() {
	switch e.phase {
	case PhasePlaying:
		e.phase = PhasePaused
	case PhasePaused:
		e.phase = PhasePlaying
		e.checkWin()
	}
}

// isPending reports whether pos is currently face-up and unresolved.
func (e *Engine) isPending(pos int) bool {
	for _, p := range e.pending {
		if p == pos {
			return true
		}
	}
	return false
}

// Phase returns the active session phase.
func (e *Engine) Phase() Phase { return e.phase }

// Moves returns the number of completed two-flip attempts.
func (e *Engine) Moves() int { return e.moves }

// Elapsed returns the elapsed play time in seconds.
func (e *Engine) Elapsed() int { return e.elapsed }

// Size returns the number of tiles in the current deck.
func (e *Engine) Size() int { return len(e.deck) }

// Difficulty returns the active difficulty.
func (e *Engine) Difficulty() config.Difficulty { return e.diff }

// Deal returns the current deal generation.
func (e *Engine) Deal() uint64 { return e.deal }

// Symbol returns the symbol at pos.
func (e *Engine) Symbol(pos int) (rune, error) {
	if pos < 0 || pos >= len(e.deck) {
		return 0, ErrInvalidPosition
	}
	return e.deck[pos].Symbol, nil
}

// IsMatched reports whether the tile at pos is permanently face-up.
func (e *Engine) IsMatched(pos int) bool {
	return pos >= 0 && pos < len(e.matched) && e.matched[pos]
}

// IsFaceUp reports whether the tile at pos is currently visible, either
// matched or pending resolution.
func (e *Engine) IsFaceUp(pos int) bool {
	return e.IsMatched(pos) || e.isPending(pos)
}

// Pending returns the face-up, unresolved positions (at most two).
func (e *Engine) Pending() []int {
	out := make([]int, len(e.pending))
	copy(out, e.pending)
	return out
}

// MatchedPairs returns the number of resolved pairs.
func (e *Engine) MatchedPairs() int { return e.done / 2 }

// Best returns the best move count on record for the active difficulty.
// ok is false when no record exists.
func (e *Engine) Best() (moves int, ok bool) {
	return e.bestMoves, e.hasBest
}

// NewBest reports whether the current session set a new best score.
func (e *Engine) NewBest() bool { return e.newBest }
