package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

var (
	flagHitbox string
	flagName   string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing in this terminal. The game defaults to flappy.

Controls:
  Space/Up/W - Flap
  P/Esc      - Pause / resume
  R          - Restart (after game over)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower start, gentler speed-up
  normal - Configured curve
  hard   - Faster start, steeper speed-up
  fixed  - No progression, speed stays at the base speed

Examples:
  flappy play
  flappy play --hitbox circle
  flappy play --difficulty hard --name kiwi
  flappy play --config ./my-flappy.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagHitbox, "hitbox", "", "Hitbox policy: box or circle (overrides the game id)")
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name for the leaderboard (default: saved name)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := flappy.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	switch flagHitbox {
	case "":
	case "box":
		gameID = flappy.GameID
	case "circle":
		gameID = flappy.LenientGameID
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown hitbox %q (want box or circle)\n", flagHitbox)
		os.Exit(1)
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'flappy list' to see available games.")
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		store = nil
	}

	player := flagName
	if player == "" && store != nil {
		if saved, nameErr := store.PlayerName(); nameErr == nil {
			player = saved
		}
	}

	runErr := tui.Run(game, store, cfg, tui.WithPlayer(player), tui.WithLogger(tuiLogger()))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
