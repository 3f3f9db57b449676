package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

// stubGame ends after endAt ticks with a fixed score.
type stubGame struct {
	endAt    int
	score    int
	ticks    int
	resets   int
	jumps    int
	high     int
	resetErr error
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) error {
	g.resets++
	g.ticks = 0
	return g.resetErr
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if g.ticks >= g.endAt {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionJump) {
		g.jumps++
	}
	g.ticks++
	return core.StepResult{State: g.State(), Ended: g.ticks == g.endAt}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub", core.ColorDefault)
}

func (g *stubGame) State() core.GameState {
	over := g.ticks >= g.endAt
	gs := core.GameState{GameOver: over, Frames: g.ticks}
	if over {
		gs.Score = g.score
		gs.Reason = "test"
	}
	return gs
}

func (g *stubGame) SetHighScore(score int) { g.high = score }

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{endAt: 3, score: 4} })
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newStubModel(t *testing.T, g *stubGame, store *storage.Store, opts ...ModelOption) Model {
	t.Helper()
	m, err := NewModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, opts...)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for i := 0; i < n; i++ {
		m, _ = send(t, m, TickMsg{})
	}
	return m
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openStore(t)
	g := &stubGame{endAt: 3, score: 7}
	m := newStubModel(t, g, store, WithPlayer("ana"))

	m = tick(t, m, 10)
	if !m.GameState().GameOver {
		t.Fatal("Expected game over")
	}

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected exactly one saved score, got %d", len(scores))
	}
	s := scores[0]
	if s.Player != "ana" || s.Score != 7 || s.Frames != 3 {
		t.Errorf("Unexpected saved score: %+v", s)
	}
	if _, err := uuid.Parse(s.RunID); err != nil {
		t.Errorf("Saved run id %q is not a uuid", s.RunID)
	}
}

func TestModelSkipsZeroScore(t *testing.T) {
	store := openStore(t)
	m := newStubModel(t, &stubGame{endAt: 2, score: 0}, store)

	tick(t, m, 5)

	if high, _ := store.HighScore("stub"); high != 0 {
		t.Errorf("Zero score should not be saved, high score is %d", high)
	}
}

func TestModelRestartLoadsBest(t *testing.T) {
	store := openStore(t)
	g := &stubGame{endAt: 2, score: 9}
	m := newStubModel(t, g, store, WithPlayer("bo"))
	if g.high != 0 {
		t.Errorf("Expected no best score before playing, got %d", g.high)
	}

	m = tick(t, m, 3)
	m, _ = send(t, m, runeKey('r'))
	m = tick(t, m, 1)

	if g.resets != 2 {
		t.Errorf("Expected restart to reset the game, resets=%d", g.resets)
	}
	if g.high != 9 {
		t.Errorf("Expected best score 9 after restart, got %d", g.high)
	}
	if m.GameState().GameOver {
		t.Error("Expected a running game after restart")
	}

	// The restarted run saves under a new run id.
	tick(t, m, 3)
	if scores, _ := store.TopScores("stub", 10); len(scores) != 2 {
		t.Errorf("Expected two saved runs, got %d", len(scores))
	}
}

func TestModelRestartIgnoredWhilePlaying(t *testing.T) {
	g := &stubGame{endAt: 50}
	m := newStubModel(t, g, nil)

	m, _ = send(t, m, runeKey('r'))
	tick(t, m, 1)

	if g.resets != 1 {
		t.Errorf("Restart before game over should be ignored, resets=%d", g.resets)
	}
}

func TestModelForwardsInput(t *testing.T) {
	g := &stubGame{endAt: 50}
	m := newStubModel(t, g, nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m, 1)
	tick(t, m, 1)

	if g.jumps != 1 {
		t.Errorf("Expected one jump, got %d (input must clear after each tick)", g.jumps)
	}
}

func TestModelQuit(t *testing.T) {
	m := newStubModel(t, &stubGame{endAt: 50}, nil)

	m, cmd := send(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("Expected model to be quitting")
	}
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("Expected empty view after quit")
	}
}

func TestModelBackToMenu(t *testing.T) {
	m := newStubModel(t, &stubGame{endAt: 1}, nil)
	m = tick(t, m, 2)
	m, _ = send(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("Back should be disabled without WithBackToMenu")
	}

	m = newStubModel(t, &stubGame{endAt: 5}, nil, WithBackToMenu())
	m, _ = send(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("Back should be ignored while playing")
	}
	m = tick(t, m, 5)
	m, _ = send(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("Expected back to menu after game over")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &stubGame{endAt: 50}
	m := newStubModel(t, g, nil)
	m = tick(t, m, 3)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 1 || g.ticks != 3 {
		t.Errorf("Resize should not reset the run (resets=%d ticks=%d)", g.resets, g.ticks)
	}
	if !strings.Contains(m.View(), "stub") {
		t.Error("Expected game output in view")
	}
}

func TestNewModelResetError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewModel(&stubGame{resetErr: boom}, nil, core.RuntimeConfig{})
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped reset error, got %v", err)
	}
}
