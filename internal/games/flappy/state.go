package flappy

import "slices"

// Bird is the player-controlled entity. X never changes during a run.
type Bird struct {
	X        float64
	Y        float64 // top edge
	Velocity float64 // positive = falling
	Rotation float64 // degrees
	Size     float64
}

// Right returns the x-coordinate of the bird's leading edge.
func (b Bird) Right() float64 {
	return b.X + b.Size
}

// Bottom returns the y-coordinate of the bird's bottom edge.
func (b Bird) Bottom() float64 {
	return b.Y + b.Size
}

// Pipe is a vertical obstacle pair with a passable gap between TopHeight and BottomY.
type Pipe struct {
	X         float64 // left edge
	TopHeight float64 // bottom edge of the top segment
	BottomY   float64 // top edge of the bottom segment
	Width     float64
	Passed    bool // already counted towards the score
}

// Right returns the x-coordinate of the pipe's trailing edge.
func (p Pipe) Right() float64 {
	return p.X + p.Width
}

// GapCenter returns the vertical center of the passable gap.
func (p Pipe) GapCenter() float64 {
	return (p.TopHeight + p.BottomY) / 2
}

// State is an immutable snapshot of a run.
// Pipes are ordered oldest to newest, which is also left to right.
type State struct {
	Bird       Bird
	Pipes      []Pipe
	Score      int
	IsRunning  bool
	IsPaused   bool
	IsGameOver bool
	Frame      int
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	s.Pipes = slices.Clone(s.Pipes)
	return s
}

// Equal reports whether two states are identical, pipe by pipe.
func (s State) Equal(o State) bool {
	return s.Bird == o.Bird &&
		s.Score == o.Score &&
		s.IsRunning == o.IsRunning &&
		s.IsPaused == o.IsPaused &&
		s.IsGameOver == o.IsGameOver &&
		s.Frame == o.Frame &&
		slices.Equal(s.Pipes, o.Pipes)
}

// Playing reports whether the simulation advances on the next tick.
func (s State) Playing() bool {
	return s.IsRunning && !s.IsPaused && !s.IsGameOver
}

// NextPipe returns the first pipe the bird has not yet passed.
func (s State) NextPipe() (Pipe, bool) {
	for _, p := range s.Pipes {
		if !p.Passed {
			return p, true
		}
	}
	return Pipe{}, false
}

// Command is an input applied at the start of a tick.
type Command int

const (
	CommandNone Command = iota
	CommandJump
	CommandPause
	CommandResume
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandJump:
		return "jump"
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	default:
		return "unknown"
	}
}

// normalize maps unknown command values to CommandNone.
func (c Command) normalize() Command {
	switch c {
	case CommandJump, CommandPause, CommandResume:
		return c
	default:
		return CommandNone
	}
}
