package config

import "testing"

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", "", false},
		{"easy", DifficultyEasy, false},
		{"normal", DifficultyNormal, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyFlappyPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		want   Scroll
	}{
		{DifficultyNormal, Scroll{BaseSpeed: 3, SpeedIncrement: 0.5, ScoreStep: 5, MaxSpeed: 8}},
		{DifficultyEasy, Scroll{BaseSpeed: 2.25, SpeedIncrement: 0.25, ScoreStep: 10, MaxSpeed: 8}},
		{DifficultyHard, Scroll{BaseSpeed: 4.5, SpeedIncrement: 0.75, ScoreStep: 5, MaxSpeed: 8}},
		{DifficultyFixed, Scroll{BaseSpeed: 3, SpeedIncrement: 0, ScoreStep: 5, MaxSpeed: 8}},
	}

	for _, tt := range tests {
		cfg := DefaultFlappyConfig()
		ApplyFlappyPreset(&cfg, tt.preset)
		if cfg.Scroll != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.preset, cfg.Scroll, tt.want)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: preset produced invalid config: %v", tt.preset, err)
		}
	}
}

func TestApplyFlappyPresetRaisesMaxSpeed(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.Scroll.MaxSpeed = 3.5
	ApplyFlappyPreset(&cfg, DifficultyHard)

	if cfg.Scroll.MaxSpeed != cfg.Scroll.BaseSpeed {
		t.Errorf("MaxSpeed = %v, want it raised to base %v", cfg.Scroll.MaxSpeed, cfg.Scroll.BaseSpeed)
	}
	if !IsFixedPreset(DifficultyFixed) || IsFixedPreset(DifficultyHard) {
		t.Error("IsFixedPreset mismatch")
	}
}
