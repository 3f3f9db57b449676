package flappy

import "github.com/vovakirdan/flappy-arcade/internal/config"

// CurrentSpeed maps a score to the horizontal scroll speed. The speed grows by
// SpeedIncrement every ScoreStep points and never exceeds MaxSpeed.
func CurrentSpeed(s config.Scroll, score int) float64 {
	if score < 0 {
		score = 0
	}
	step := s.ScoreStep
	if step <= 0 {
		step = 1
	}
	speed := s.BaseSpeed + float64(score/step)*s.SpeedIncrement
	return min(speed, s.MaxSpeed)
}

// Reward converts a final score into display-only reward units.
func Reward(r config.Rewards, score int) float64 {
	return float64(score) * r.Rate
}

// CanMintNFT reports whether a final score qualifies for a score NFT.
func CanMintNFT(r config.Rewards, score int) bool {
	return score >= r.MinScoreForNFT && r.MintingEnabled
}
