package flappy

import "github.com/vovakirdan/flappy-arcade/internal/config"

// autopilotMargin keeps the bird's bottom edge this far above the bottom pipe.
const autopilotMargin = 8

// Autopilot is a simple bot that flaps whenever the bird would otherwise sink
// too close to the bottom of the next gap. It is used for headless balancing
// runs and to drive tests into deep states.
type Autopilot struct {
	cfg config.FlappyConfig
}

// NewAutopilot creates an autopilot tuned to cfg's physics.
func NewAutopilot(cfg config.FlappyConfig) *Autopilot {
	return &Autopilot{cfg: cfg}
}

// Decide returns the command to apply on the next tick.
func (a *Autopilot) Decide(s State) Command {
	if !s.Playing() {
		return CommandNone
	}

	floor := a.cfg.Area.Height - autopilotMargin
	if p, ok := a.target(s); ok {
		floor = p.BottomY - autopilotMargin
	}

	// Predict next tick without a jump.
	next := applyGravity(s.Bird, a.cfg.Physics)
	if next.Bottom() > floor {
		return CommandJump
	}
	return CommandNone
}

// target returns the first pipe that still overlaps or lies ahead of the bird.
func (a *Autopilot) target(s State) (Pipe, bool) {
	for _, p := range s.Pipes {
		if p.Right() > s.Bird.X {
			return p, true
		}
	}
	return Pipe{}, false
}

// RunResult summarizes one headless autopilot run.
type RunResult struct {
	Seed        int64
	Score       int
	Frames      int
	GameOver    bool
	Collision   CollisionDetails
	Reward      float64
	NFTEligible bool
}

// RunAutopilot plays one seeded run with the autopilot for at most maxTicks
// ticks, stopping early at game over.
func RunAutopilot(cfg config.FlappyConfig, seed int64, maxTicks int) (RunResult, error) {
	e, err := NewEngine(cfg, NewRand(seed))
	if err != nil {
		return RunResult{}, err
	}
	pilot := NewAutopilot(cfg)

	s := e.Reset()
	for i := 0; i < maxTicks && !s.IsGameOver; i++ {
		s = e.Step(s, pilot.Decide(s))
	}

	res := RunResult{
		Seed:        seed,
		Score:       s.Score,
		Frames:      s.Frame,
		GameOver:    s.IsGameOver,
		Collision:   CollisionDetails{Kind: CollisionNone, PipeIndex: -1},
		Reward:      Reward(cfg.Rewards, s.Score),
		NFTEligible: CanMintNFT(cfg.Rewards, s.Score),
	}
	if s.IsGameOver {
		res.Collision = e.Collision(s)
	}
	return res, nil
}
