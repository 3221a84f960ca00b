package tui

import (
	"fmt"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/pairs"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

// Board layout constants (screen cells per tile).
const (
	tileW = 4
	tileH = 2
)

// GameModel is the Bubble Tea model for one play session.
type GameModel struct {
	engine      *pairs.Engine
	cfg         config.PairsConfig
	diff        config.Difficulty
	store       *storage.Store
	screen      *core.Screen
	runtime     core.RuntimeConfig
	keyMapper   *KeyMapper
	cursorX     int
	cursorY     int
	quitting    bool
	backToMenu  bool
	resultSaved bool // Whether the finished game has been written to history
}

// NewGameModel creates a game model and deals the first board.
func NewGameModel(cfg config.PairsConfig, diff config.Difficulty, store *storage.Store, runtime core.RuntimeConfig) (GameModel, error) {
	// Use time-based seed if not specified
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}

	// The sqlite store doubles as the engine's best-score collaborator.
	// A nil store just disables bookkeeping.
	var best pairs.BestStore
	if store != nil {
		best = store
	}

	engine := pairs.NewEngine(best, cfg.Alphabet(), runtime.Seed)
	if err := engine.NewGame(diff); err != nil {
		return GameModel{}, err
	}

	return GameModel{
		engine:    engine,
		cfg:       cfg,
		diff:      diff,
		store:     store,
		screen:    core.NewScreen(runtime.ScreenW, runtime.ScreenH),
		runtime:   runtime,
		keyMapper: NewKeyMapper(),
	}, nil
}

// Init starts the one-second play clock.
func (m GameModel) Init() tea.Cmd {
	return clockCmd()
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case ClockMsg:
		m.engine.Tick()
		return m, clockCmd()

	case ResolveMsg:
		// Stale resolutions from a previous deal are no-ops in the engine.
		m.engine.Resolve(msg.Resolution)
		m.maybeSaveResult()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionUp:
		m.cursorY = core.Clamp(m.cursorY-1, 0, m.diff.Rows-1)
	case core.ActionDown:
		m.cursorY = core.Clamp(m.cursorY+1, 0, m.diff.Rows-1)
	case core.ActionLeft:
		m.cursorX = core.Clamp(m.cursorX-1, 0, m.diff.Cols-1)
	case core.ActionRight:
		m.cursorX = core.Clamp(m.cursorX+1, 0, m.diff.Cols-1)

	case core.ActionFlip:
		return m.handleFlip()

	case core.ActionPause:
		m.engine.TogglePause()

	case core.ActionRestart:
		return m.restart()

	case core.ActionBack:
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleFlip forwards the flip under the cursor to the engine and, when a
// pair completes, schedules its deferred resolution.
func (m GameModel) handleFlip() (tea.Model, tea.Cmd) {
	pos := m.cursorY*m.diff.Cols + m.cursorX

	_, res, err := m.engine.RequestFlip(pos)
	if err != nil || res == nil {
		// Disallowed flips are silent no-ops; the cursor cannot go out
		// of range, so err only guards programming mistakes.
		return m, nil
	}

	delay := m.cfg.Delays.MismatchDelay()
	if res.Match {
		delay = m.cfg.Delays.MatchDelay()
	}
	return m, resolveCmd(*res, delay)
}

// restart deals a fresh board. The deal bump inside NewGame invalidates
// any resolution timer still in flight.
func (m GameModel) restart() (tea.Model, tea.Cmd) {
	if err := m.engine.NewGame(m.diff); err != nil {
		// The difficulty was playable a moment ago; nothing to do.
		return m, nil
	}
	m.resultSaved = false
	m.cursorX = 0
	m.cursorY = 0
	return m, nil
}

// maybeSaveResult writes the finished game to history once.
func (m *GameModel) maybeSaveResult() {
	if m.engine.Phase() != pairs.PhaseWon || m.resultSaved {
		return
	}
	m.resultSaved = true

	if m.store == nil {
		return
	}
	key := m.diff.Key()
	//nolint:errcheck // Best-effort save, the won game stands regardless
	m.store.SaveResult(key, m.engine.Moves(), m.engine.Elapsed())
	if m.engine.NewBest() {
		//nolint:errcheck // Best-effort save
		m.store.SetBestTime(key, m.engine.Elapsed())
	}
}

// BackToMenu returns true if the user wants to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.render(m.screen)
	return RenderScreen(m.screen)
}

// render draws the HUD, board, and overlays into the screen buffer.
func (m GameModel) render(s *core.Screen) {
	boardW := m.diff.Cols * tileW
	boardH := m.diff.Rows * tileH
	minW := core.Max(boardW+2, 40)
	minH := boardH + 9 // HUD above, win banner and controls below

	if s.Width() < minW || s.Height() < minH {
		s.DrawTextCentered(s.Height()/2, "Terminal too small")
		s.DrawTextCentered(s.Height()/2+1, fmt.Sprintf("need at least %dx%d", minW, minH))
		return
	}

	m.renderHUD(s)
	m.renderBoard(s)

	switch m.engine.Phase() {
	case pairs.PhasePaused:
		m.renderPauseOverlay(s)
	case pairs.PhaseWon:
		m.renderWinOverlay(s)
	}

	controls := "arrows/hjkl move · space flip · p pause · r restart · b menu · q quit"
	s.DrawTextColored((s.Width()-utf8.RuneCountInString(controls))/2, s.Height()-1, controls, core.ColorGray)
}

// renderHUD draws the status line above the board.
func (m GameModel) renderHUD(s *core.Screen) {
	s.DrawTextCentered(0, "P A I R S")

	best := "best --"
	if moves, ok := m.engine.Best(); ok {
		best = fmt.Sprintf("best %d", moves)
	}
	hud := fmt.Sprintf("%s (%s)   moves %d   time %s   %s",
		m.diff.ID, m.diff.Key(), m.engine.Moves(), fmtClock(m.engine.Elapsed()), best)
	s.DrawTextCentered(2, hud)
}

// renderBoard draws the tile grid centered below the HUD.
func (m GameModel) renderBoard(s *core.Screen) {
	boardW := m.diff.Cols * tileW
	offX := (s.Width() - boardW) / 2
	offY := 4

	hideFaces := m.engine.Phase() == pairs.PhasePaused

	for y := 0; y < m.diff.Rows; y++ {
		for x := 0; x < m.diff.Cols; x++ {
			pos := y*m.diff.Cols + x
			sx := offX + x*tileW
			sy := offY + y*tileH

			face := '·'
			color := core.ColorGray
			switch {
			case hideFaces:
				// Paused games hide the board so the clock can't be
				// gamed by studying tiles for free.
			case m.engine.IsMatched(pos):
				face, _ = m.engine.Symbol(pos)
				color = core.ColorGreen
			case m.engine.IsFaceUp(pos):
				face, _ = m.engine.Symbol(pos)
				color = core.ColorBrightYellow
			}

			bracket := core.ColorGray
			if x == m.cursorX && y == m.cursorY {
				bracket = core.ColorBrightCyan
			}

			s.SetCell(sx, sy, '[', bracket)
			s.SetCell(sx+1, sy, face, color)
			s.SetCell(sx+2, sy, ']', bracket)
		}
	}
}

// renderPauseOverlay draws the paused banner boxed over the board area.
func (m GameModel) renderPauseOverlay(s *core.Screen) {
	const boxW, boxH = 25, 5
	box := core.NewRect((s.Width()-boxW)/2, 4+(m.diff.Rows*tileH-boxH)/2, boxW, boxH)

	s.DrawRect(box, ' ', core.ColorDefault)
	s.DrawBoxColored(box, core.ColorBrightCyan)
	s.DrawTextCentered(box.Y+1, "P A U S E D")
	s.DrawTextCentered(box.Y+3, "press p to resume")
}

// renderWinOverlay draws the end-of-game banner below the board.
func (m GameModel) renderWinOverlay(s *core.Screen) {
	y := 4 + m.diff.Rows*tileH + 1
	won := "All pairs matched - you won!"
	s.DrawTextColored((s.Width()-utf8.RuneCountInString(won))/2, y, won, core.ColorGreen)
	summary := fmt.Sprintf("moves %d · time %s", m.engine.Moves(), fmtClock(m.engine.Elapsed()))
	s.DrawTextCentered(y+1, summary)
	if m.engine.NewBest() {
		best := "NEW BEST!"
		s.DrawTextColored((s.Width()-utf8.RuneCountInString(best))/2, y+2, best, core.ColorBrightYellow)
	}
}

// fmtClock formats seconds as mm:ss.
func fmtClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// RunGame starts the Bubble Tea program for one play session.
// Returns true when the user asked to return to the menu.
func RunGame(cfg config.PairsConfig, diff config.Difficulty, store *storage.Store, runtime core.RuntimeConfig) (bool, error) {
	model, err := NewGameModel(cfg, diff, store, runtime)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	if gm, ok := finalModel.(GameModel); ok {
		return gm.BackToMenu(), nil
	}
	return false, nil
}
