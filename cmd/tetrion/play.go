package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ddanilov/tetrion/internal/core"
	"github.com/ddanilov/tetrion/internal/game"
	"github.com/ddanilov/tetrion/internal/platform/tui"
	"github.com/ddanilov/tetrion/internal/registry"
	"github.com/ddanilov/tetrion/internal/replay"
	"github.com/ddanilov/tetrion/internal/storage"
)

var (
	flagConfig string
	flagPreset string
	flagDepth  int
	flagRecord string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game",
	Long: `Start playing. With no argument the player-driven variant starts;
pass "tetris_ai" (or press A in game) to let the planner drive.

Controls:
  Left/Right/h/l - Move
  Up/x, z        - Rotate CW / CCW
  Down/j         - Soft drop
  Space          - Hard drop
  C              - Hold
  A              - Toggle AI takeover
  P/Esc          - Pause
  R              - Restart (after game over)
  Q/Ctrl+C       - Quit

Examples:
  tetrion play
  tetrion play tetris_ai
  tetrion play tetris_ai --depth 1 --preset show
  tetrion play --seed 42 --record run.json
  tetrion play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "AI weight preset: stable, highscore, show")
	playCmd.Flags().IntVar(&flagDepth, "depth", 0, "AI look-ahead depth (1 or 2, 0 = from config)")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record the game to a replay file")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "tetris"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetrion list' to see available variants.")
		os.Exit(1)
	}

	// Get terminal size
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

	// Configure the variant before the registry instantiates it
	game.SetConfigPath(flagConfig)
	game.SetAIPreset(flagPreset)
	game.SetAIDepth(flagDepth)

	g, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	var observer tui.Observer
	var recorder *replay.Recorder
	if flagRecord != "" {
		recorder = setupRecorder(gameID, &cfg)
		observer = func(rg registry.Game) {
			if tg, ok := rg.(*game.Game); ok {
				recorder.Observe(tg.Session())
			}
		}
	}

	runErr := tui.Run(g, store, cfg, observer)

	if recorder != nil {
		finishRecording(recorder, g)
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// setupRecorder wires the replay recorder into the action stream. The
// seed must be pinned before the session starts so the log can reproduce
// it.
func setupRecorder(gameID string, cfg *core.RuntimeConfig) *replay.Recorder {
	if cfg.Seed == 0 {
		cfg.Seed = randomSeed()
	}

	loaded, err := game.LoadTuning(flagConfig)
	if err != nil {
		loaded = game.DefaultTuning()
	}

	recorder := replay.NewRecorder(gameID, cfg.Seed, loaded, 0)
	game.SetActionTap(recorder.RecordAction)
	return recorder
}

// finishRecording closes the log against the final session state and
// writes it out.
func finishRecording(recorder *replay.Recorder, rg registry.Game) {
	game.SetActionTap(nil)

	if tg, ok := rg.(*game.Game); ok && tg.Session() != nil {
		recorder.Finish(tg.Session())
	}

	if err := replay.Save(flagRecord, recorder.Log()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save replay: %v\n", err)
		return
	}
	fmt.Printf("Replay saved to %s\n", flagRecord)
}

func randomSeed() int64 {
	return time.Now().UnixNano()
}
