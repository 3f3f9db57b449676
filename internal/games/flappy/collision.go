package flappy

import (
	"math"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// bottomPipeDepth is how far the bottom segment extends for circle tests;
// anything past the ground is already a boundary hit.
const bottomPipeDepth = 1000

// BoundaryCollision reports whether the bird is above the ceiling or below the ground.
func BoundaryCollision(b Bird, areaHeight float64) bool {
	return b.Y < 0 || b.Bottom() > areaHeight
}

// PipeCollision reports whether the bird's box hits either segment of p.
// Segments are only tested while the bird overlaps the pipe horizontally.
func PipeCollision(b Bird, p Pipe) bool {
	if !(b.Right() > p.X && b.X < p.Right()) {
		return false
	}
	return b.Y < p.TopHeight || b.Bottom() > p.BottomY
}

// IsCollision is the primary collision policy: an axis-aligned box against the
// play-area boundaries and every active pipe.
func IsCollision(b Bird, pipes []Pipe, areaHeight float64) bool {
	if BoundaryCollision(b, areaHeight) {
		return true
	}
	for _, p := range pipes {
		if PipeCollision(b, p) {
			return true
		}
	}
	return false
}

// CircleRectCollision reports whether a circle intersects an axis-aligned rectangle.
func CircleRectCollision(cx, cy, radius float64, r core.Box) bool {
	halfW, halfH := r.W/2, r.H/2
	distX := math.Abs(cx - r.X - halfW)
	distY := math.Abs(cy - r.Y - halfH)

	if distX > halfW+radius || distY > halfH+radius {
		return false
	}
	if distX <= halfW || distY <= halfH {
		return true
	}

	dx := distX - halfW
	dy := distY - halfH
	return dx*dx+dy*dy <= radius*radius
}

// PipeCollisionCircular treats the bird as the circle inscribed in its box.
// Corners of the box that clip a pipe edge do not count as hits.
func PipeCollisionCircular(b Bird, p Pipe) bool {
	radius := b.Size / 2
	cx, cy := b.X+radius, b.Y+radius

	top := core.NewBox(p.X, 0, p.Width, p.TopHeight)
	bottom := core.NewBox(p.X, p.BottomY, p.Width, bottomPipeDepth)
	return CircleRectCollision(cx, cy, radius, top) || CircleRectCollision(cx, cy, radius, bottom)
}

// IsCollisionCircular is the lenient policy. Boundaries are checked exactly as
// in IsCollision; only pipe hits use the circular hitbox.
func IsCollisionCircular(b Bird, pipes []Pipe, areaHeight float64) bool {
	if BoundaryCollision(b, areaHeight) {
		return true
	}
	for _, p := range pipes {
		if PipeCollisionCircular(b, p) {
			return true
		}
	}
	return false
}

// CollisionKind names what the bird ran into.
type CollisionKind int

const (
	CollisionNone CollisionKind = iota
	CollisionCeiling
	CollisionGround
	CollisionPipe
)

// String returns a human-readable name for the collision kind.
func (k CollisionKind) String() string {
	switch k {
	case CollisionNone:
		return "none"
	case CollisionCeiling:
		return "ceiling"
	case CollisionGround:
		return "ground"
	case CollisionPipe:
		return "pipe"
	default:
		return "unknown"
	}
}

// CollisionDetails describes the first collision found, if any.
type CollisionDetails struct {
	Kind      CollisionKind
	PipeIndex int // index into the pipes slice, -1 unless Kind is CollisionPipe
	X, Y      float64
}

// DetectCollision returns details about the first collision in the same order
// IsCollision checks them: ceiling, ground, then pipes left to right.
func DetectCollision(b Bird, pipes []Pipe, areaHeight float64) CollisionDetails {
	if b.Y < 0 {
		return CollisionDetails{Kind: CollisionCeiling, PipeIndex: -1, X: b.X, Y: b.Y}
	}
	if b.Bottom() > areaHeight {
		return CollisionDetails{Kind: CollisionGround, PipeIndex: -1, X: b.X, Y: b.Bottom()}
	}
	for i, p := range pipes {
		if PipeCollision(b, p) {
			return CollisionDetails{Kind: CollisionPipe, PipeIndex: i, X: p.X, Y: b.Y}
		}
	}
	return CollisionDetails{Kind: CollisionNone, PipeIndex: -1}
}
