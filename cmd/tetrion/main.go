// tetrion is a terminal Tetris engine with a look-ahead autoplay planner.
//
// Usage:
//
//	tetrion list               - List available game variants
//	tetrion play [variant]     - Play (or watch the AI play)
//	tetrion replay <file>      - Verify or inspect a recorded game
//	tetrion serve              - Start SSH server for remote play
//	tetrion scores [variant]   - Show high scores
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.tetrion/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game package to register its variants
	_ "github.com/ddanilov/tetrion/internal/game"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetrion",
	Short: "Tetrion - Tetris in your terminal, with an AI that plays it",
	Long: `Tetrion is a terminal Tetris engine: guideline-style rotation and
scoring, a seedable 7-bag randomizer, deterministic replays, and a
look-ahead planner that can play instead of you (or take over mid-game).

Available commands:
  list     - Show available variants
  play     - Play a game (or watch the AI)
  replay   - Verify or inspect a recorded game
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  tetrion play
  tetrion play tetris_ai --depth 2 --preset highscore
  tetrion play --seed 42 --record run.json
  tetrion replay run.json --verify
  tetrion serve --ssh :2222
  tetrion scores tetris`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetrion/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
