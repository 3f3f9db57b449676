package flappy

import (
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// jump replaces any current velocity with the jump impulse.
func jump(b Bird, p config.Physics) Bird {
	b.Velocity = p.JumpVelocity
	b.Rotation = p.JumpRotation
	return b
}

// applyGravity accelerates the bird downwards, clamps to terminal velocity,
// integrates position and derives the visual rotation from the new velocity.
func applyGravity(b Bird, p config.Physics) Bird {
	b.Velocity = min(b.Velocity+p.Gravity, p.MaxFallSpeed)
	b.Y += b.Velocity
	b.Rotation = core.ClampF(b.Velocity*p.RotationFactor, p.MinRotation, p.MaxRotation)
	return b
}
