package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

var (
	flagLimit       int
	flagScoresTUI   bool
	flagScorePlayer string
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top scores for a game variant (default: flappy).

Examples:
  flappy scores
  flappy scores flappy_lenient --limit 20
  flappy scores --player kiwi
  flappy scores --tui
  flappy scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the leaderboard interactively")
	scoresCmd.Flags().StringVar(&flagScorePlayer, "player", "", "Show best score and rank for this player")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the game")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := flappy.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'flappy list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		player, _ := store.PlayerName()
		if _, err := tui.RunScoreboard(store, width, height, player); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		return
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		logger.Info("scores cleared", "game", gameID)
		return
	}

	if err := printScores(store, gameID, title); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'flappy play %s' to set the first high score!\n", gameID)
		return nil
	}

	cfg, cfgErr := flappy.LoadConfig()

	// Print header
	fmt.Printf("  %-4s  %-24s  %-8s  %-8s  %s\n", "Rank", "Player", "Score", "Reward", "Date")
	fmt.Printf("  %-4s  %-24s  %-8s  %-8s  %s\n", "----", "------", "-----", "------", "----")

	for i, entry := range scores {
		reward := "-"
		if cfgErr == nil {
			reward = fmt.Sprintf("%.2f", flappy.Reward(cfg.Rewards, entry.Score))
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-24s  %-8d  %-8s  %s\n", i+1, entry.Player, entry.Score, reward, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d   Games: %d   Players: %d   Average: %.1f\n",
			stats.HighScore, stats.GamesCount, stats.Players, stats.AvgScore)
		if cfgErr == nil && cfg.Rewards.MintingEnabled {
			fmt.Printf("NFT eligible at %d points\n", cfg.Rewards.MinScoreForNFT)
		}
	}

	if flagScorePlayer != "" {
		name := storage.NormalizePlayerName(flagScorePlayer)
		best, err := store.PlayerBest(gameID, name)
		if err != nil {
			return err
		}
		rank, err := store.PlayerRank(gameID, name)
		if err != nil {
			return err
		}
		if rank == 0 {
			fmt.Printf("%s has no scores yet.\n", name)
		} else {
			fmt.Printf("%s: best %d, rank #%d\n", name, best, rank)
		}
	}
	return nil
}
