package game

import (
	"math/rand"

	"github.com/ddanilov/tetrion/internal/ai"
	"github.com/ddanilov/tetrion/internal/config"
	"github.com/ddanilov/tetrion/internal/core"
	"github.com/ddanilov/tetrion/internal/registry"
)

// Mode selects who drives the session.
type Mode string

const (
	ModePlay     Mode = "play"
	ModeAutoplay Mode = "autoplay"
)

// Game adapts a Session to the platform's registry.Game interface:
// it maps input frames to queued actions, drives the AI planner in
// autoplay mode, and renders the session to a screen buffer.
type Game struct {
	mode Mode
	rng  *rand.Rand

	cfg     config.TetrisConfig
	session *Session
	planner *ai.Planner

	aiOn      bool
	aiPlanned bool // a plan was issued for the current piece

	screenW int
	screenH int
	paused  bool

	lastEvents []Event
}

// Package-level knobs set by the CLI before the registry instantiates
// the variant.
var (
	configPath string
	aiPreset   string
	aiDepth    int
	actionTap  func(tick uint64, a core.Action)
)

// SetConfigPath sets the gameplay config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetAIPreset overrides the configured planner preset.
func SetAIPreset(preset string) {
	aiPreset = preset
}

// SetAIDepth overrides the configured planner look-ahead depth.
func SetAIDepth(depth int) {
	aiDepth = depth
}

// SetActionTap installs a callback invoked for every action the session
// accepts, with the tick it was enqueued on. The replay recorder taps
// the stream here without the session knowing.
func SetActionTap(fn func(tick uint64, a core.Action)) {
	actionTap = fn
}

// New creates a player-driven game.
func New() *Game {
	return &Game{mode: ModePlay}
}

// NewAutoplay creates a game driven by the AI planner.
func NewAutoplay() *Game {
	return &Game{mode: ModeAutoplay}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
	registry.Register("tetris_ai", func() registry.Game {
		return NewAutoplay()
	})
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	if g.mode == ModeAutoplay {
		return "tetris_ai"
	}
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeAutoplay {
		return "Tetris (Autoplay)"
	}
	return "Tetris"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.aiOn = g.mode == ModeAutoplay
	g.aiPlanned = false
	g.lastEvents = nil

	loaded, err := config.LoadTetris(configPath)
	if err != nil {
		loaded = config.DefaultTetrisConfig()
	}
	g.cfg = loaded

	if g.session == nil {
		g.session = NewSession(tuningFromConfig(loaded), cfg.Seed)
	} else {
		g.session.tuning = tuningFromConfig(loaded)
		g.session.Reset(cfg.Seed)
	}

	g.planner = buildPlanner(loaded.AI)
}

// buildPlanner resolves preset/weight/depth config plus CLI overrides
// into a planner instance.
func buildPlanner(cfg config.AIConfig) *ai.Planner {
	preset := cfg.Preset
	if aiPreset != "" {
		preset = aiPreset
	}
	weights, err := ai.WeightsForPreset(preset)
	if err != nil {
		weights = ai.BaselineWeights()
	}
	if !cfg.Weights.IsZero() {
		weights = ai.Weights{
			AggregateHeight: cfg.Weights.AggregateHeight,
			Lines:           cfg.Weights.Lines,
			Holes:           cfg.Weights.Holes,
			Bumpiness:       cfg.Weights.Bumpiness,
		}
	}
	depth := cfg.Depth
	if aiDepth != 0 {
		depth = aiDepth
	}
	return ai.New(weights, depth)
}

// LoadTuning resolves the gameplay config (explicit path or the usual
// search order) into session tuning. Replay recording uses it to pin
// the exact constants a log was made with.
func LoadTuning(path string) (Tuning, error) {
	c, err := config.LoadTetris(path)
	if err != nil {
		return DefaultTuning(), err
	}
	return tuningFromConfig(c), nil
}

// tuningFromConfig maps the YAML config onto the session constants.
func tuningFromConfig(c config.TetrisConfig) Tuning {
	t := DefaultTuning()
	if c.Board.Width > 3 {
		t.BoardWidth = c.Board.Width
	}
	if c.Board.Height >= 4 {
		t.BoardHeight = c.Board.Height
	}
	if c.Board.Hidden > 0 {
		t.HiddenRows = c.Board.Hidden
	}
	if c.Board.Preview > 0 {
		t.Preview = c.Board.Preview
	}
	if c.Gravity.BaseTicks > 0 {
		t.GravityBaseTicks = c.Gravity.BaseTicks
	}
	if c.Gravity.Factor > 0 && c.Gravity.Factor <= 1 {
		t.GravityFactor = c.Gravity.Factor
	}
	if c.Gravity.MinTicks > 0 {
		t.GravityMinTicks = c.Gravity.MinTicks
	}
	if c.Lock.DelayTicks > 0 {
		t.LockDelayTicks = c.Lock.DelayTicks
	}
	if c.Lock.MaxResets > 0 {
		t.MaxLockResets = c.Lock.MaxResets
	}
	if c.Scoring.Single > 0 {
		t.ClearScores = [5]int{0, c.Scoring.Single, c.Scoring.Double, c.Scoring.Triple, c.Scoring.Tetris}
	}
	if c.Scoring.TSpinSingle > 0 {
		t.TSpinScores = [4]int{0, c.Scoring.TSpinSingle, c.Scoring.TSpinDouble, c.Scoring.TSpinTriple}
	}
	if c.Scoring.SoftDropPerCell > 0 {
		t.SoftDropPerCell = c.Scoring.SoftDropPerCell
	}
	if c.Scoring.HardDropPerCell > 0 {
		t.HardDropPerCell = c.Scoring.HardDropPerCell
	}
	if c.Scoring.ComboBonus > 0 {
		t.ComboBonus = c.Scoring.ComboBonus
	}
	if c.Scoring.BackToBack > 1 {
		t.BackToBack = c.Scoring.BackToBack
	}
	if c.Scoring.LinesPerLevel > 0 {
		t.LinesPerLevel = c.Scoring.LinesPerLevel
	}
	return t
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	// Handle restart
	if input.Has(core.ActionRestart) && g.session.Over() {
		g.session.Reset(g.rng.Int63())
		g.aiPlanned = false
		g.paused = false
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	// Runtime AI on/off switch; the session behaves identically either
	// way, only the action source changes.
	if input.Has(core.ActionToggleAI) {
		g.aiOn = !g.aiOn
		g.aiPlanned = false
	}

	if g.paused || g.session.Over() {
		return core.StepResult{State: g.State()}
	}

	if g.aiOn {
		g.driveAI()
	} else {
		g.enqueueInput(input)
	}

	g.lastEvents = g.session.Step()
	for _, ev := range g.lastEvents {
		if _, ok := ev.(Spawned); ok {
			g.aiPlanned = false
		}
	}

	return core.StepResult{State: g.State()}
}

// enqueueInput forwards pressed gameplay actions to the session queue in
// a fixed order, so simultaneous presses replay deterministically.
func (g *Game) enqueueInput(input core.InputFrame) {
	for _, a := range [...]core.Action{
		core.ActionHold,
		core.ActionRotateCCW,
		core.ActionRotateCW,
		core.ActionLeft,
		core.ActionRight,
		core.ActionSoftDrop,
		core.ActionHardDrop,
	} {
		if input.Has(a) {
			g.enqueue(a)
		}
	}
}

func (g *Game) enqueue(a core.Action) {
	if g.session.Enqueue(a) && actionTap != nil {
		actionTap(g.session.Tick(), a)
	}
}

// driveAI plans once per piece and pushes the whole action sequence into
// the same queue a player would use.
func (g *Game) driveAI() {
	if g.aiPlanned || g.session.QueuedActions() > 0 {
		return
	}
	phase := g.session.Phase()
	if phase != PhaseFalling && phase != PhaseLockPending {
		return
	}

	piece := g.session.Piece()
	preview := g.session.Preview()
	var next = piece.Kind
	hasNext := false
	if len(preview) > 0 {
		next = preview[0]
		hasNext = true
	}

	placement, err := g.planner.Plan(g.session.Board().Clone(), piece.Kind, next, hasNext)
	if err != nil {
		// No legal landing exists; equivalent to a top-out.
		g.session.ForceGameOver()
		return
	}

	for _, a := range ai.Actions(piece.Rot, piece.X, placement) {
		g.enqueue(a)
	}
	g.aiPlanned = true
}

// State returns the current platform-level game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		Lines:    g.session.Lines(),
		Level:    g.session.Level(),
		GameOver: g.session.Over(),
		Paused:   g.paused,
	}
}

// Session exposes the underlying engine for tooling (replay drivers,
// tests). Renderers must treat it as read-only.
func (g *Game) Session() *Session {
	return g.session
}

// AIOn reports whether the planner is currently driving.
func (g *Game) AIOn() bool {
	return g.aiOn
}
