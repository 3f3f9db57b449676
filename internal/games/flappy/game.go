// Package flappy implements a Flappy Bird-style simulation.
//
// The core is Engine.Step, a deterministic transition from one immutable
// State to the next. Game wraps the engine for the terminal platform: it maps
// input frames to commands and renders the state onto a core.Screen.
package flappy

import (
	"fmt"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

// Registered game IDs.
const (
	GameID        = "flappy"
	LenientGameID = "flappy_lenient"
)

// configPath and difficultyPreset are set via CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown values keep the config's curve.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// LoadConfig loads the configuration the registered games use, with the CLI
// preset applied.
func LoadConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		return cfg, err
	}
	if difficultyPreset != "" {
		config.ApplyFlappyPreset(&cfg, difficultyPreset)
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("flappy: %s preset: %w", difficultyPreset, err)
		}
	}
	return cfg, nil
}

// Game adapts the engine to registry.Game.
type Game struct {
	id        string
	title     string
	hitbox    config.Hitbox // overrides the configured hitbox when set
	engine    *Engine
	state     State
	hit       CollisionDetails
	highScore int
}

// New creates the standard game with the box hitbox.
func New() *Game {
	return &Game{id: GameID, title: "Flappy Bird", hitbox: config.HitboxBox}
}

// NewLenient creates the variant that uses a circular bird hitbox against pipes.
func NewLenient() *Game {
	return &Game{id: LenientGameID, title: "Flappy Bird (lenient)", hitbox: config.HitboxCircle}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads configuration and starts a fresh run seeded from rt.Seed.
func (g *Game) Reset(rt core.RuntimeConfig) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	return g.ResetWith(cfg, NewRand(rt.Seed))
}

// ResetWith starts a fresh run with an explicit configuration and random source.
func (g *Game) ResetWith(cfg config.FlappyConfig, rng RandSource) error {
	if g.hitbox != "" {
		cfg.Collision.Hitbox = g.hitbox
	}
	engine, err := NewEngine(cfg, rng)
	if err != nil {
		return err
	}
	g.engine = engine
	g.state = engine.Reset()
	g.hit = CollisionDetails{Kind: CollisionNone, PipeIndex: -1}
	return nil
}

// SetHighScore sets the best score shown on the HUD.
func (g *Game) SetHighScore(score int) {
	g.highScore = score
}

// Snapshot returns the current simulation state.
func (g *Game) Snapshot() State {
	return g.state.Clone()
}

// Engine returns the engine driving the current run, or nil before Reset.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Collision returns what ended the run, if it has ended.
func (g *Game) Collision() CollisionDetails {
	return g.hit
}

// Step maps the input frame to a command and advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		return core.StepResult{State: g.State()}
	}

	prev := g.state
	g.state = g.engine.Step(prev, CommandFor(in, prev))

	ended := !prev.IsGameOver && g.state.IsGameOver
	if ended {
		g.hit = g.engine.Collision(g.state)
		g.highScore = max(g.highScore, g.state.Score)
	}
	return core.StepResult{State: g.State(), Ended: ended}
}

// CommandFor folds an input frame into at most one command.
// While paused only the pause key matters and it resumes; otherwise a jump
// takes precedence over a pause in the same frame.
func CommandFor(in core.InputFrame, s State) Command {
	if s.IsPaused {
		if in.Has(core.ActionPause) {
			return CommandResume
		}
		return CommandNone
	}
	switch {
	case in.Has(core.ActionJump):
		return CommandJump
	case in.Has(core.ActionPause):
		return CommandPause
	default:
		return CommandNone
	}
}

// State returns the summary read by the platform.
func (g *Game) State() core.GameState {
	gs := core.GameState{
		Score:    g.state.Score,
		GameOver: g.state.IsGameOver,
		Paused:   g.state.IsPaused,
		Frames:   g.state.Frame,
	}
	if g.state.IsGameOver {
		gs.Reason = g.hit.Kind.String()
	}
	return gs
}

// Summary returns the final-score figures shown after a run.
func (g *Game) Summary() (reward float64, nftEligible bool) {
	if g.engine == nil {
		return 0, false
	}
	rw := g.engine.Config().Rewards
	return Reward(rw, g.state.Score), CanMintNFT(rw, g.state.Score)
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(LenientGameID, func() registry.Game {
		return NewLenient()
	})
}
