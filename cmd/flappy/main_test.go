package main

import (
	"path/filepath"
	"testing"
)

func resetFlags() {
	flagFPS = 60
	flagLogLevel = "info"
	flagDifficulty = ""
	flagConfig = ""
	flagLogFile = ""
	logFile = nil
}

func TestSetupRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name   string
		mutate func()
	}{
		{"log level", func() { flagLogLevel = "chatty" }},
		{"fps", func() { flagFPS = 0 }},
		{"difficulty", func() { flagDifficulty = "brutal" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			tt.mutate()
			if err := setup(rootCmd, nil); err == nil {
				t.Error("expected error")
			}
		})
	}
	resetFlags()
}

func TestSetupLogFile(t *testing.T) {
	resetFlags()
	flagLogFile = filepath.Join(t.TempDir(), "flappy.log")
	flagLogLevel = "debug"

	if err := setup(rootCmd, nil); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if logFile == nil {
		t.Fatal("log file not opened")
	}
	if tuiLogger() != logger {
		t.Error("tui logger should write to the log file")
	}
	logFile.Close()
	resetFlags()
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"[::1]:22":       "22",
		"no-port-at-all": "no-port-at-all",
	}
	for in, want := range tests {
		if got := portOf(in); got != want {
			t.Errorf("portOf(%q) = %q, want %q", in, got, want)
		}
	}
}
