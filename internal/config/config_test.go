package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := ParseFlappy(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultFlappyConfig(), cfg)
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultFlappyConfig().Validate())
	assert.Equal(t, 400.0, DefaultFlappyConfig().MaxTopHeight())
}

func TestParseFlappyKeepsUnsetDefaults(t *testing.T) {
	cfg, err := ParseFlappy([]byte("scroll:\n  max_speed: 12\ncollision:\n  hitbox: circle\n"))
	require.NoError(t, err)

	assert.Equal(t, 12.0, cfg.Scroll.MaxSpeed)
	assert.Equal(t, HitboxCircle, cfg.Collision.Hitbox)
	assert.Equal(t, 3.0, cfg.Scroll.BaseSpeed)
	assert.Equal(t, 0.6, cfg.Physics.Gravity)
	assert.Equal(t, []float64{100, 400, 700}, cfg.Obstacles.InitialOffsets)
}

func TestParseFlappyRejectsBadYAML(t *testing.T) {
	_, err := ParseFlappy([]byte("physics: [not, a, map"))
	assert.Error(t, err)
}

func TestLoadFlappyCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("obstacles:\n  gap: 180\n"), 0o644))

	cfg, err := LoadFlappy(path)
	require.NoError(t, err)
	assert.Equal(t, 180.0, cfg.Obstacles.Gap)
}

func TestLoadFlappyErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFlappy(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("scroll:\n  score_step: 0\n"), 0o644))
	_, err = LoadFlappy(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
		want   string
	}{
		{"no room for gap", func(c *FlappyConfig) { c.Obstacles.MinSegment = 225 }, "min_segment"},
		{"zero fall speed", func(c *FlappyConfig) { c.Physics.MaxFallSpeed = 0 }, "max_fall_speed"},
		{"zero score step", func(c *FlappyConfig) { c.Scroll.ScoreStep = 0 }, "score_step"},
		{"max below base", func(c *FlappyConfig) { c.Scroll.MaxSpeed = 2 }, "max_speed"},
		{"bird wider than gap", func(c *FlappyConfig) { c.Bird.Size = 150 }, "must fit the gap"},
		{"bird outside area", func(c *FlappyConfig) { c.Bird.X = 390 }, "out of area"},
		{"unknown hitbox", func(c *FlappyConfig) { c.Collision.Hitbox = "hexagon" }, "unknown hitbox"},
		{"negative area", func(c *FlappyConfig) { c.Area.Height = -1 }, "area must be positive"},
		{"spawn distance leaves bird uncovered", func(c *FlappyConfig) { c.Obstacles.SpawnDistance = 1000 }, "spawn_distance"},
		{"spawn distance at bound", func(c *FlappyConfig) { c.Obstacles.SpawnDistance = 380 }, "spawn_distance"},
		{"fractional gap", func(c *FlappyConfig) { c.Obstacles.Gap = 150.3 }, "gap must be a whole number"},
		{"fractional min segment", func(c *FlappyConfig) { c.Obstacles.MinSegment = 50.1 }, "min_segment must be a whole number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateAcceptsSpawnDistanceJustInside(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.Obstacles.SpawnDistance = 379
	assert.NoError(t, cfg.Validate())
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.Physics.MaxFallSpeed = 0
	cfg.Scroll.ScoreStep = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_fall_speed")
	assert.Contains(t, err.Error(), "score_step")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvRewardRate, "0.5")
	t.Setenv(EnvMinScoreForNFT, "20")
	t.Setenv(EnvMintingEnabled, "true")

	cfg := DefaultFlappyConfig()
	require.NoError(t, ApplyEnv(&cfg))
	assert.Equal(t, 0.5, cfg.Rewards.Rate)
	assert.Equal(t, 20, cfg.Rewards.MinScoreForNFT)
	assert.True(t, cfg.Rewards.MintingEnabled)

	t.Setenv(EnvMintingEnabled, "yes")
	require.NoError(t, ApplyEnv(&cfg))
	assert.False(t, cfg.Rewards.MintingEnabled, "only the literal true enables minting")
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	t.Setenv(EnvMinScoreForNFT, "lots")

	cfg := DefaultFlappyConfig()
	err := ApplyEnv(&cfg)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), EnvMinScoreForNFT))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("FLAPPY_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("FLAPPY_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("FLAPPY_TEST_UNSET_VALUE", "fallback"))
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.Scroll.MaxSpeed = 9.5

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_speed: 9.5")

	back, err := ParseFlappy(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
