package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables that override reward settings after loading.
const (
	EnvRewardRate     = "FLAPPY_REWARD_RATE"
	EnvMinScoreForNFT = "FLAPPY_MIN_SCORE_FOR_NFT"
	EnvMintingEnabled = "FLAPPY_NFT_MINTING_ENABLED"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ApplyEnv overrides reward settings from the environment.
// Unset variables leave the loaded values untouched.
func ApplyEnv(cfg *FlappyConfig) error {
	if v := GetEnv(EnvRewardRate, ""); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: bad %s %q: %w", EnvRewardRate, v, err)
		}
		cfg.Rewards.Rate = rate
	}
	if v := GetEnv(EnvMinScoreForNFT, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: bad %s %q: %w", EnvMinScoreForNFT, v, err)
		}
		cfg.Rewards.MinScoreForNFT = n
	}
	if v := GetEnv(EnvMintingEnabled, ""); v != "" {
		// Only the literal "true" enables minting.
		cfg.Rewards.MintingEnabled = v == "true"
	}
	return nil
}
