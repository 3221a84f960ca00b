package pairs

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-pairs/internal/config"
)

// fakeBestStore is an in-memory BestStore that records writes.
type fakeBestStore struct {
	bests    map[string]int
	setCalls int
	getErr   error
	setErr   error
}

func newFakeBestStore() *fakeBestStore {
	return &fakeBestStore{bests: make(map[string]int)}
}

func (s *fakeBestStore) GetBest(key string) (int, bool, error) {
	if s.getErr != nil {
		return 0, false, s.getErr
	}
	moves, ok := s.bests[key]
	return moves, ok, nil
}

func (s *fakeBestStore) SetBest(key string, moves int) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.setCalls++
	s.bests[key] = moves
	return nil
}

var (
	easyDiff = config.Difficulty{ID: "easy", Cols: 4, Rows: 4}
	tinyDiff = config.Difficulty{ID: "tiny", Cols: 2, Rows: 2}
)

func newTestEngine(t *testing.T, store BestStore, diff config.Difficulty) *Engine {
	t.Helper()
	e := NewEngine(store, []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ"), 12345)
	if err := e.NewGame(diff); err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}
	return e
}

// findPair returns two unmatched positions sharing a symbol.
func findPair(t *testing.T, e *Engine) (int, int) {
	t.Helper()
	for a := 0; a < e.Size(); a++ {
		if e.IsFaceUp(a) {
			continue
		}
		sa, _ := e.Symbol(a)
		for b := a + 1; b < e.Size(); b++ {
			if e.IsFaceUp(b) {
				continue
			}
			if sb, _ := e.Symbol(b); sa == sb {
				return a, b
			}
		}
	}
	t.Fatal("no unmatched pair left on the board")
	return 0, 0
}

// findMismatch returns two unmatched positions with different symbols.
func findMismatch(t *testing.T, e *Engine) (int, int) {
	t.Helper()
	for a := 0; a < e.Size(); a++ {
		if e.IsFaceUp(a) {
			continue
		}
		sa, _ := e.Symbol(a)
		for b := a + 1; b < e.Size(); b++ {
			if e.IsFaceUp(b) {
				continue
			}
			if sb, _ := e.Symbol(b); sa != sb {
				return a, b
			}
		}
	}
	t.Fatal("no mismatching positions left on the board")
	return 0, 0
}

// flipPair flips both positions and returns the resolution.
func flipPair(t *testing.T, e *Engine, a, b int) *Resolution {
	t.Helper()
	if _, _, err := e.RequestFlip(a); err != nil {
		t.Fatalf("flip %d failed: %v", a, err)
	}
	_, res, err := e.RequestFlip(b)
	if err != nil {
		t.Fatalf("flip %d failed: %v", b, err)
	}
	if res == nil {
		t.Fatalf("second flip of (%d,%d) produced no resolution", a, b)
	}
	return res
}

func TestNewGameResetsSession(t *testing.T) {
	e := newTestEngine(t, newFakeBestStore(), easyDiff)

	if e.Phase() != PhasePlaying {
		t.Errorf("phase = %v, expected playing", e.Phase())
	}
	if e.Size() != 16 {
		t.Errorf("size = %d, expected 16", e.Size())
	}
	if e.Moves() != 0 || e.Elapsed() != 0 || e.MatchedPairs() != 0 {
		t.Errorf("counters not reset: moves=%d elapsed=%d matched=%d",
			e.Moves(), e.Elapsed(), e.MatchedPairs())
	}
	if len(e.Pending()) != 0 {
		t.Errorf("pending should be empty, got %v", e.Pending())
	}
}

func TestNewGameUnplayableDifficulty(t *testing.T) {
	e := NewEngine(newFakeBestStore(), []rune("AB"), 1)

	err := e.NewGame(config.Difficulty{ID: "big", Cols: 4, Rows: 4})
	if !errors.Is(err, ErrTooManyPairs) {
		t.Errorf("expected ErrTooManyPairs, got %v", err)
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("failed NewGame must not change phase, got %v", e.Phase())
	}
}

func TestFirstFlipDoesNotChargeMove(t *testing.T) {
	e := newTestEngine(t, newFakeBestStore(), easyDiff)

	outcome, res, err := e.RequestFlip(0)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != FlipRevealed {
		t.Errorf("outcome = %v, expected FlipRevealed", outcome)
	}
	if res != nil {
		t.Error("first flip should not produce a resolution")
	}
	if e.Moves() != 0 {
		t.Errorf("moves = %d, expected 0 after a single flip", e.Moves())
	}
	if !e.IsFaceUp(0) {
		t.Error("flipped tile should be face-up")
	}
}

func TestMoveChargedOnSecondFlipBeforeResolve(t *testing.T) {
	e := newTestEngine(t, newFakeBestStore(), easyDiff)

	a, b := findMismatch(t, e)
	res := flipPair(t, e, a, b)

	// Move is committed synchronously at the second flip, before the
	// resolution delay fires.
	if e.Moves() != 1 {
		t.Errorf("moves = %d, expected 1 immediately after second flip", e.Moves())
	}
	if res.Match {
		t.Error("mismatching pair reported as match")
	}

	e.Resolve(*res)
	if e.Moves() != 1 {
		t.Errorf("moves = %d, resolve must not charge again", e.Moves())
	}
	if len(e.Pending()) != 0 {
		t.Errorf("pending should clear after resolve, got %v", e.Pending())
	}
	if e.IsMatched(a) || e.IsMatched(b) {
		t.Error("mismatching pair must not join the matched set")
	}
}

func TestMatchCommitsOnResolve(t *testing.T) {
	e := newTestEngine(t, newFakeBestStore(), easyDiff)

	a, b := findPair(t, e)
	res := flipPair(t, e, a, b)

	if !res.Match {
		t.Fatal("matching pair reported as mismatch")
	}
	// Not matched until the resolution fires
	if e.IsMatched(a) || e.IsMatched(b) {
		t.Error("pair must not be matched before resolve")
	}

	e.Resolve(*res)

	if !e.IsMatched(a) || !e.IsMatched(b) {
		t.Error("both positions should be matched after resolve")
	}
	if e.MatchedPairs() != 1 {
		t.Errorf("matched pairs = %d, expected 1", e.MatchedPairs())
	}
	if e.Moves() != 1 {
		t.Errorf("moves = %d, expected 1", e.Moves())
	}
}

func TestFlipRejections(t *testing.T) {
	e := newTestEngine(t, newFakeBestStore(), easyDiff)

	// Out of range is an invalid argument
	if _, _, err := e.RequestFlip(-1); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("flip -1: expected ErrInvalidPosition, got %v", err)
	}
	if _, _, err := e.RequestFlip(16); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("flip 16: expected ErrInvalidPosition, got %v", err)
	}

	// Flipping the pending tile again is a silent no-op
	e.RequestFlip(0)
	outcome, _, err := e.RequestFlip(0)
	if err != nil || outcome != FlipIgnored {
		t.Errorf("re-flip of pending tile: outcome=%v err=%v, expected silent ignore", outcome, err)
	}
	if e.Moves() != 0 {
		t.Errorf("moves = %d, re-flip must not charge", e.Moves())
	}

	// Third flip while a pair is unresolved is ignored
	_, res, _ := e.RequestFlip(1)
	outcome, _, err = e.RequestFlip(2)
	if err != nil || outcome != FlipIgnored {
		t.Errorf("third flip: outcome=%v err=%v, expected silent ignore", outcome, err)
	}
	e.Resolve(*res)

	// Matched tiles reject flips
	a, b := findPair(t, e)
	mres := flipPair(t, e, a, b)
	e.Resolve(*mres)
	outcome, _, err = e.RequestFlip(a)
	if err != nil || outcome != FlipIgnored {
		t.Errorf("flip of matched tile: outcome=%v err=%v, expected silent ignore", outcome, err)
	}

	// Paused phase rejects flips
	e.TogglePause()
	outcome, _, err = e.RequestFlip(b)
	if err != nil || outcome != FlipIgnored {
		t.Errorf("flip while paused: outcome=%v err=%v, expected silent ignore", outcome, err)
	}
}

func TestStaleResolutionIsNoOp(t *testing.T) {
	e := newTestEngine(t, newFakeBestStore(), easyDiff)

	a, b := findPair(t, e)
	res := flipPair(t, e, a, b)

	// Rapid restart races the scheduled resolution
	if err := e.NewGame(easyDiff); err != nil {
		t.Fatal(err)
	}
	e.Resolve(*res)

	if e.MatchedPairs() != 0 {
		t.Error("stale resolution mutated the new deal")
	}
	if e.Moves() != 0 {
		t.Errorf("moves = %d after restart, expected 0", e.Moves())
	}
}

func TestResolutionForDifferentPendingPairIsNoOp(t *testing.T) {
	e := newTestEngine(t, newFakeBestStore(), easyDiff)

	a, b := findPair(t, e)
	res := flipPair(t, e, a, b)

	// Token no longer describes the current pending pair
	tampered := *res
	tampered.Positions = [2]int{b, a}
	e.Resolve(tampered)

	if len(e.Pending()) != 2 {
		t.Error("tampered resolution must not clear the pending pair")
	}

	e.Resolve(*res)
	if !e.IsMatched(a) || !e.IsMatched(b) {
		t.Error("genuine resolution should still commit")
	}
}

func TestTickOnlyWhilePlaying(t *testing.T) {
	e := NewEngine(newFakeBestStore(), []rune("ABCDEFGH"), 7)

	// Idle ticks are ignored
	e.Tick()
	if e.Elapsed() != 0 {
		t.Errorf("idle tick advanced clock to %d", e.Elapsed())
	}

	if err := e.NewGame(easyDiff); err != nil {
		t.Fatal(err)
	}

	e.Tick()
	e.Tick()
	if e.Elapsed() != 2 {
		t.Errorf("elapsed = %d, expected 2", e.Elapsed())
	}

	e.TogglePause()
	e.Tick()
	e.Tick()
	if e.Elapsed() != 2 {
		t.Errorf("paused ticks advanced clock to %d", e.Elapsed())
	}

	e.TogglePause()
	e.Tick()
	if e.Elapsed() != 3 {
		t.Errorf("elapsed = %d after resume, expected 3", e.Elapsed())
	}
}

func TestTogglePauseTransitions(t *testing.T) {
	e := newTestEngine(t, newFakeBestStore(), easyDiff)

	e.TogglePause()
	if e.Phase() != PhasePaused {
		t.Errorf("phase = %v, expected paused", e.Phase())
	}
	e.TogglePause()
	if e.Phase() != PhasePlaying {
		t.Errorf("phase = %v, expected playing", e.Phase())
	}

	// Won and Idle are unaffected by pause
	winGame(t, e)
	e.TogglePause()
	if e.Phase() != PhaseWon {
		t.Errorf("pause in won phase changed it to %v", e.Phase())
	}

	idle := NewEngine(nil, []rune("AB"), 1)
	idle.TogglePause()
	if idle.Phase() != PhaseIdle {
		t.Errorf("pause in idle phase changed it to %v", idle.Phase())
	}
}

func TestPauseDuringFinalResolution(t *testing.T) {
	store := newFakeBestStore()
	e := newTestEngine(t, store, tinyDiff)

	// Match the first pair, then flip the last pair and pause before its
	// resolution fires.
	a, b := findPair(t, e)
	e.Resolve(*flipPair(t, e, a, b))

	a, b = findPair(t, e)
	res := flipPair(t, e, a, b)
	e.TogglePause()

	// The resolution timer fires while paused: the pair commits, but the
	// win must not be lost.
	e.Resolve(*res)
	if e.MatchedPairs() != 2 {
		t.Fatalf("matched pairs = %d, expected 2", e.MatchedPairs())
	}
	if e.Phase() != PhasePaused {
		t.Fatalf("phase = %v, expected paused until resume", e.Phase())
	}

	e.TogglePause()
	if e.Phase() != PhaseWon {
		t.Errorf("phase after resume = %v, expected won", e.Phase())
	}
	if _, ok := store.bests["2x2"]; !ok {
		t.Error("win after paused resolution should still record a best")
	}
}

// winGame matches every remaining pair until the session is won.
func winGame(t *testing.T, e *Engine) {
	t.Helper()
	for e.Phase() == PhasePlaying {
		a, b := findPair(t, e)
		res := flipPair(t, e, a, b)
		e.Resolve(*res)
	}
	if e.Phase() != PhaseWon {
		t.Fatalf("expected won phase, got %v", e.Phase())
	}
}

func TestWinRecordsFirstBest(t *testing.T) {
	store := newFakeBestStore()
	e := newTestEngine(t, store, tinyDiff)

	winGame(t, e)

	best, ok := store.bests["2x2"]
	if !ok {
		t.Fatal("win with no prior record should write a best")
	}
	if best != e.Moves() {
		t.Errorf("stored best = %d, expected %d", best, e.Moves())
	}
	if !e.NewBest() {
		t.Error("engine should flag a new best")
	}
}

func TestWinImprovesBest(t *testing.T) {
	store := newFakeBestStore()
	store.bests["4x4"] = 12

	e := newTestEngine(t, store, easyDiff)
	winGame(t, e) // perfect play: 8 moves

	if store.bests["4x4"] != e.Moves() {
		t.Errorf("stored best = %d, expected %d", store.bests["4x4"], e.Moves())
	}
	if store.setCalls != 1 {
		t.Errorf("SetBest called %d times, expected 1", store.setCalls)
	}
}

func TestWinDoesNotRegressBest(t *testing.T) {
	store := newFakeBestStore()
	store.bests["4x4"] = 5 // better than any honest playthrough

	e := newTestEngine(t, store, easyDiff)
	winGame(t, e)

	if store.setCalls != 0 {
		t.Errorf("SetBest called %d times for a worse score, expected 0", store.setCalls)
	}
	if store.bests["4x4"] != 5 {
		t.Errorf("best regressed to %d", store.bests["4x4"])
	}
	if e.NewBest() {
		t.Error("engine must not flag a new best")
	}
}

func TestWinEqualMovesDoesNotRewrite(t *testing.T) {
	store := newFakeBestStore()
	store.bests["2x2"] = 3

	e := newTestEngine(t, store, tinyDiff)

	// Force exactly 3 moves: one mismatch, then both pairs.
	a, b := findMismatch(t, e)
	res := flipPair(t, e, a, b)
	e.Resolve(*res)
	winGame(t, e)

	if e.Moves() != 3 {
		t.Fatalf("expected 3 moves on a 2x2 board with one miss, got %d", e.Moves())
	}
	if store.setCalls != 0 {
		t.Error("equal move count must not rewrite the best")
	}
}

func TestWinSurvivesStoreErrors(t *testing.T) {
	store := newFakeBestStore()
	store.getErr = errors.New("database locked")

	e := newTestEngine(t, store, tinyDiff)
	winGame(t, e)

	if e.Phase() != PhaseWon {
		t.Errorf("store failure must not block the win, phase = %v", e.Phase())
	}
}

func TestNilStoreDisablesBookkeeping(t *testing.T) {
	e := NewEngine(nil, []rune("ABCDEFGH"), 3)
	if err := e.NewGame(tinyDiff); err != nil {
		t.Fatal(err)
	}
	winGame(t, e)

	if _, ok := e.Best(); ok {
		t.Error("nil store should report no best on record")
	}
}

func TestDeterministicDeal(t *testing.T) {
	e1 := NewEngine(nil, []rune("ABCDEFGHIJKLMNOP"), 999)
	e2 := NewEngine(nil, []rune("ABCDEFGHIJKLMNOP"), 999)
	e1.NewGame(easyDiff)
	e2.NewGame(easyDiff)

	if e1.Snapshot().Layout != e2.Snapshot().Layout {
		t.Error("same seed should produce the same deal")
	}
}

// Full scenario from the easy 4x4 board: a mismatch charges a move and
// de-reveals, matches accumulate, finishing the board wins and improves
// the stored best.
func TestFullEasyScenario(t *testing.T) {
	store := newFakeBestStore()
	store.bests["4x4"] = 12

	e := newTestEngine(t, store, easyDiff)

	// One deliberate mismatch
	a, b := findMismatch(t, e)
	res := flipPair(t, e, a, b)
	if e.Moves() != 1 {
		t.Fatalf("moves = %d after mismatch flip, expected 1", e.Moves())
	}
	e.Resolve(*res)
	if e.IsFaceUp(a) || e.IsFaceUp(b) {
		t.Error("mismatched tiles should be face-down after resolution")
	}

	// Perfect play for the rest
	winGame(t, e)

	if e.Moves() != 9 {
		t.Errorf("moves = %d, expected 9 (1 miss + 8 matches)", e.Moves())
	}
	if e.MatchedPairs() != 8 {
		t.Errorf("matched pairs = %d, expected 8", e.MatchedPairs())
	}
	if store.bests["4x4"] != 9 {
		t.Errorf("stored best = %d, expected 9", store.bests["4x4"])
	}
	if best, ok := e.Best(); !ok || best != 9 {
		t.Errorf("engine best = %d/%v, expected 9/true", best, ok)
	}
}
