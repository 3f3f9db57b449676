package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
)

var (
	flagTicks int
	flagRuns  int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless autopilot games",
	Long: `Play seeded games with the built-in autopilot and report how far it got.
Useful for checking a config or difficulty preset before playing it.

With --seed set, run i uses seed+i so results are reproducible.

Examples:
  flappy simulate
  flappy simulate --runs 50 --ticks 20000
  flappy simulate --difficulty hard --seed 7`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 10000, "Maximum ticks per run")
	simulateCmd.Flags().IntVar(&flagRuns, "runs", 10, "Number of runs")
}

func runSimulate(_ *cobra.Command, _ []string) {
	if flagRuns <= 0 || flagTicks <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --runs and --ticks must be positive")
		os.Exit(1)
	}

	cfg, err := flappy.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	base := flagSeed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	var total, best, crashed int
	for i := 0; i < flagRuns; i++ {
		res, err := flappy.RunAutopilot(cfg, base+int64(i), flagTicks)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		total += res.Score
		best = max(best, res.Score)
		if res.GameOver {
			crashed++
			logger.Info("run ended",
				"seed", res.Seed, "score", res.Score, "frames", res.Frames,
				"reason", res.Collision.Kind, "reward", res.Reward)
		} else {
			logger.Info("run survived",
				"seed", res.Seed, "score", res.Score, "frames", res.Frames, "reward", res.Reward)
		}
		if res.NFTEligible {
			logger.Debug("run reached NFT threshold", "seed", res.Seed)
		}
	}

	logger.Info("simulation done",
		"runs", flagRuns,
		"crashed", crashed,
		"best", best,
		"avg", fmt.Sprintf("%.1f", float64(total)/float64(flagRuns)),
		"max_speed", flappy.CurrentSpeed(cfg.Scroll, best))
}
