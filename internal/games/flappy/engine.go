package flappy

import (
	"fmt"

	"github.com/vovakirdan/flappy-arcade/internal/config"
)

// CollisionFunc is a collision policy over the post-move bird and pipes.
type CollisionFunc func(b Bird, pipes []Pipe, areaHeight float64) bool

// Engine owns the state transition function. It holds only configuration and
// the random source used for gap placement; the state itself is passed in and
// returned by value.
type Engine struct {
	cfg     config.FlappyConfig
	rng     RandSource
	collide CollisionFunc
}

// NewEngine validates cfg and binds it to a new engine.
// A nil rng is replaced with a source seeded with 1.
func NewEngine(cfg config.FlappyConfig, rng RandSource) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	if rng == nil {
		rng = NewRand(1)
	}

	collide := IsCollision
	if cfg.Collision.Hitbox == config.HitboxCircle {
		collide = IsCollisionCircular
	}

	return &Engine{cfg: cfg, rng: rng, collide: collide}, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.FlappyConfig {
	return e.cfg
}

// Reset returns the canonical first state of a fresh run.
func (e *Engine) Reset() State {
	return State{
		Bird: Bird{
			X:    e.cfg.Bird.X,
			Y:    e.cfg.Area.Height / 2,
			Size: e.cfg.Bird.Size,
		},
		Pipes:     initialPipes(e.cfg, e.rng),
		IsRunning: true,
	}
}

// Speed returns the scroll speed for a score under this engine's curve.
func (e *Engine) Speed(score int) float64 {
	return CurrentSpeed(e.cfg.Scroll, score)
}

// Collision describes what the bird in s is touching, if anything.
func (e *Engine) Collision(s State) CollisionDetails {
	return DetectCollision(s.Bird, s.Pipes, e.cfg.Area.Height)
}

// Step advances s by one tick. It never mutates s; the returned state owns
// its own pipe slice. A game-over state is a fixed point for every command.
func (e *Engine) Step(s State, cmd Command) State {
	cmd = cmd.normalize()

	if s.IsGameOver {
		return s
	}

	if s.IsPaused {
		if cmd == CommandResume {
			s.IsPaused = false
		}
		return s
	}

	if cmd == CommandPause {
		s.IsPaused = true
		return s
	}

	if !s.IsRunning {
		return s
	}

	bird := s.Bird
	if cmd == CommandJump {
		bird = jump(bird, e.cfg.Physics)
	}
	bird = applyGravity(bird, e.cfg.Physics)

	// Speed is taken from the score before this tick's scoring.
	pipes := movePipes(s.Pipes, e.Speed(s.Score))
	pipes = removeOffscreen(pipes, e.cfg.Obstacles.DespawnMargin)
	if shouldSpawn(pipes, e.cfg) {
		pipes = append(pipes, newPipe(e.cfg.Area.Width, e.cfg, e.rng))
	}

	score := s.Score + scorePipes(bird, pipes)
	hit := e.collide(bird, pipes, e.cfg.Area.Height)

	return State{
		Bird:       bird,
		Pipes:      pipes,
		Score:      score,
		IsRunning:  !hit,
		IsPaused:   false,
		IsGameOver: hit,
		Frame:      s.Frame + 1,
	}
}
