package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/flappy-arcade/internal/config"
)

// RandSource supplies uniform values in [0, 1) for gap placement.
// *rand.Rand satisfies it; tests can supply a fixed sequence.
type RandSource interface {
	Float64() float64
}

// NewRand returns a seeded source for deterministic runs.
func NewRand(seed int64) RandSource {
	return rand.New(rand.NewSource(seed))
}

// SequenceRand replays a fixed list of values, cycling when exhausted.
type SequenceRand struct {
	values []float64
	next   int
}

// NewSequenceRand creates a source that returns values in order.
func NewSequenceRand(values ...float64) *SequenceRand {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &SequenceRand{values: values}
}

// Float64 returns the next value in the sequence.
func (s *SequenceRand) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// newPipe creates a pipe at x with a random gap that leaves both segments
// at least MinSegment tall.
func newPipe(x float64, cfg config.FlappyConfig, rng RandSource) Pipe {
	lo := cfg.Obstacles.MinSegment
	hi := cfg.MaxTopHeight()

	// rng values outside [0, 1) would break the segment bounds.
	r := rng.Float64()
	if r < 0 || r >= 1 || math.IsNaN(r) {
		r = 0
	}
	top := math.Floor(r*(hi-lo)) + lo

	return Pipe{
		X:         x,
		TopHeight: top,
		BottomY:   top + cfg.Obstacles.Gap,
		Width:     cfg.Obstacles.Width,
	}
}

// initialPipes places the opening pipes at fixed offsets past the right boundary.
func initialPipes(cfg config.FlappyConfig, rng RandSource) []Pipe {
	pipes := make([]Pipe, 0, len(cfg.Obstacles.InitialOffsets)+2)
	for _, off := range cfg.Obstacles.InitialOffsets {
		pipes = append(pipes, newPipe(cfg.Area.Width+off, cfg, rng))
	}
	return pipes
}

// movePipes returns a new slice with every pipe shifted left by speed.
func movePipes(pipes []Pipe, speed float64) []Pipe {
	moved := make([]Pipe, len(pipes), len(pipes)+1)
	for i, p := range pipes {
		p.X -= speed
		moved[i] = p
	}
	return moved
}

// removeOffscreen drops pipes whose right edge has scrolled past -margin.
// It filters in place; callers pass a slice they own.
func removeOffscreen(pipes []Pipe, margin float64) []Pipe {
	kept := pipes[:0]
	for _, p := range pipes {
		if p.Right() > -margin {
			kept = append(kept, p)
		}
	}
	return kept
}

// shouldSpawn reports whether the newest pipe has moved far enough from the
// right boundary to make room for another.
func shouldSpawn(pipes []Pipe, cfg config.FlappyConfig) bool {
	if len(pipes) == 0 {
		return true
	}
	last := pipes[len(pipes)-1]
	return last.X < cfg.Area.Width-cfg.Obstacles.SpawnDistance
}

// scorePipes marks every pipe whose trailing edge the bird's leading edge has
// passed and returns how many were newly passed. A pipe is only ever counted once.
func scorePipes(b Bird, pipes []Pipe) int {
	passed := 0
	for i := range pipes {
		if !pipes[i].Passed && b.Right() > pipes[i].Right() {
			pipes[i].Passed = true
			passed++
		}
	}
	return passed
}
