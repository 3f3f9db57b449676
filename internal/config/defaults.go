package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded YAML cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: Physics{
			Gravity:        0.6,
			JumpVelocity:   -10,
			MaxFallSpeed:   15,
			JumpRotation:   -45,
			RotationFactor: 3,
			MinRotation:    -45,
			MaxRotation:    90,
		},
		Scroll: Scroll{
			BaseSpeed:      3,
			SpeedIncrement: 0.5,
			ScoreStep:      5,
			MaxSpeed:       8,
		},
		Obstacles: Obstacles{
			Gap:            150,
			Width:          80,
			MinSegment:     50,
			SpawnDistance:  300,
			DespawnMargin:  50,
			InitialOffsets: []float64{100, 400, 700},
		},
		Bird: Bird{
			X:    100,
			Size: 40,
		},
		Area: Area{
			Width:  400,
			Height: 600,
		},
		Rewards: Rewards{
			Rate:           0.01,
			MinScoreForNFT: 100,
			MintingEnabled: false,
		},
		Collision: Collision{
			Hitbox: HitboxBox,
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
