// Package config provides YAML-based configuration loading, validation and
// difficulty presets for the flappy simulation.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned (wrapped) when a configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// FlappyConfig contains every tunable consumed by the simulation.
type FlappyConfig struct {
	Physics   Physics   `yaml:"physics"`
	Scroll    Scroll    `yaml:"scroll"`
	Obstacles Obstacles `yaml:"obstacles"`
	Bird      Bird      `yaml:"bird"`
	Area      Area      `yaml:"area"`
	Rewards   Rewards   `yaml:"rewards"`
	Collision Collision `yaml:"collision"`
}

// Physics defines the vertical motion of the bird. Units are per tick.
type Physics struct {
	Gravity        float64 `yaml:"gravity"`
	JumpVelocity   float64 `yaml:"jump_velocity"` // negative = up
	MaxFallSpeed   float64 `yaml:"max_fall_speed"`
	JumpRotation   float64 `yaml:"jump_rotation"`   // degrees, set on jump
	RotationFactor float64 `yaml:"rotation_factor"` // degrees per unit of velocity
	MinRotation    float64 `yaml:"min_rotation"`
	MaxRotation    float64 `yaml:"max_rotation"`
}

// Scroll defines the horizontal pipe speed and how it grows with score.
type Scroll struct {
	BaseSpeed      float64 `yaml:"base_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"`
	ScoreStep      int     `yaml:"score_step"` // points per increment
	MaxSpeed       float64 `yaml:"max_speed"`
}

// Obstacles defines pipe geometry and lifecycle distances.
type Obstacles struct {
	Gap            float64   `yaml:"gap"`
	Width          float64   `yaml:"width"`
	MinSegment     float64   `yaml:"min_segment"`
	SpawnDistance  float64   `yaml:"spawn_distance"`
	DespawnMargin  float64   `yaml:"despawn_margin"`
	InitialOffsets []float64 `yaml:"initial_offsets"` // relative to the right boundary
}

// Bird defines the player entity.
type Bird struct {
	X    float64 `yaml:"x"`
	Size float64 `yaml:"size"`
}

// Area is the play area in world units.
type Area struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Rewards configures off-chain accounting derived from the final score.
type Rewards struct {
	Rate           float64 `yaml:"rate"`
	MinScoreForNFT int     `yaml:"min_score_for_nft"`
	MintingEnabled bool    `yaml:"minting_enabled"`
}

// Hitbox selects the collision policy used against pipes.
type Hitbox string

const (
	HitboxBox    Hitbox = "box"
	HitboxCircle Hitbox = "circle"
)

// Collision selects the collision policy.
type Collision struct {
	Hitbox Hitbox `yaml:"hitbox"`
}

// MaxTopHeight returns the exclusive upper bound for a pipe's top height.
func (c FlappyConfig) MaxTopHeight() float64 {
	return c.Area.Height - c.Obstacles.Gap - c.Obstacles.MinSegment
}

func isWhole(v float64) bool {
	return v == math.Trunc(v)
}

// Validate checks the invariants the simulation relies on.
// It is meant to run once after loading, never per tick.
func (c FlappyConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Area.Width > 0 && c.Area.Height > 0, "area must be positive, got %vx%v", c.Area.Width, c.Area.Height)
	check(c.Bird.Size > 0, "bird size must be positive, got %v", c.Bird.Size)
	check(c.Bird.X >= 0 && c.Bird.X+c.Bird.Size <= c.Area.Width, "bird x %v out of area", c.Bird.X)
	check(c.Bird.Size < c.Obstacles.Gap, "bird size %v must fit the gap %v", c.Bird.Size, c.Obstacles.Gap)
	check(c.Physics.MaxFallSpeed > 0, "max_fall_speed must be positive, got %v", c.Physics.MaxFallSpeed)
	check(c.Physics.MinRotation <= c.Physics.MaxRotation, "min_rotation %v > max_rotation %v", c.Physics.MinRotation, c.Physics.MaxRotation)
	check(c.Scroll.BaseSpeed > 0, "base_speed must be positive, got %v", c.Scroll.BaseSpeed)
	check(c.Scroll.SpeedIncrement >= 0, "speed_increment must not be negative, got %v", c.Scroll.SpeedIncrement)
	check(c.Scroll.ScoreStep > 0, "score_step must be positive, got %d", c.Scroll.ScoreStep)
	check(c.Scroll.MaxSpeed >= c.Scroll.BaseSpeed, "max_speed %v below base_speed %v", c.Scroll.MaxSpeed, c.Scroll.BaseSpeed)
	check(c.Obstacles.Gap > 0, "gap must be positive, got %v", c.Obstacles.Gap)
	check(c.Obstacles.Width > 0, "pipe width must be positive, got %v", c.Obstacles.Width)
	check(c.Obstacles.MinSegment > 0, "min_segment must be positive, got %v", c.Obstacles.MinSegment)
	check(c.Obstacles.MinSegment < c.MaxTopHeight(),
		"min_segment %v leaves no room for the gap (max top height %v)", c.Obstacles.MinSegment, c.MaxTopHeight())
	check(isWhole(c.Obstacles.Gap), "gap must be a whole number of pixels, got %v", c.Obstacles.Gap)
	check(isWhole(c.Obstacles.MinSegment), "min_segment must be a whole number of pixels, got %v", c.Obstacles.MinSegment)
	check(c.Obstacles.SpawnDistance > 0, "spawn_distance must be positive, got %v", c.Obstacles.SpawnDistance)
	// The newest pipe must still reach past the bird when the next one spawns.
	check(c.Obstacles.SpawnDistance < c.Area.Width-c.Bird.X+c.Obstacles.Width,
		"spawn_distance %v leaves no pipe ahead of the bird (must be below %v)",
		c.Obstacles.SpawnDistance, c.Area.Width-c.Bird.X+c.Obstacles.Width)
	check(c.Obstacles.DespawnMargin >= 0, "despawn_margin must not be negative, got %v", c.Obstacles.DespawnMargin)
	check(c.Rewards.Rate >= 0, "reward rate must not be negative, got %v", c.Rewards.Rate)
	check(c.Collision.Hitbox == HitboxBox || c.Collision.Hitbox == HitboxCircle, "unknown hitbox %q", c.Collision.Hitbox)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
