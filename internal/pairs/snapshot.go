package pairs

// Snapshot captures the complete session state for determinism testing.
type Snapshot struct {
	Deal         uint64
	Phase        Phase
	Layout       string // deck symbols in position order
	Pending      []int
	MatchedPairs int
	Moves        int
	Elapsed      int
}

// Snapshot returns the current session snapshot.
func (e *Engine) Snapshot() Snapshot {
	layout := make([]rune, len(e.deck))
	for i, t := range e.deck {
		layout[i] = t.Symbol
	}
	return Snapshot{
		Deal:         e.deal,
		Phase:        e.phase,
		Layout:       string(layout),
		Pending:      e.Pending(),
		MatchedPairs: e.MatchedPairs(),
		Moves:        e.moves,
		Elapsed:      e.elapsed,
	}
}
