// Package game implements the Tetris session engine: the active-piece
// state machine, gravity and lock delay, scoring, the level curve, and
// the per-tick event feed. The engine is pure logic with no external
// dependencies (especially no Bubble Tea); the platform handles input
// mapping, timing, and rendering.
package game

import (
	"errors"
	"math"

	"github.com/ddanilov/tetrion/internal/board"
	"github.com/ddanilov/tetrion/internal/core"
	"github.com/ddanilov/tetrion/internal/tetromino"
)

// Phase is the piece controller state.
type Phase int

const (
	// PhaseSpawning means the next piece enters the board on the next tick.
	PhaseSpawning Phase = iota
	// PhaseFalling means the active piece is descending under gravity.
	PhaseFalling
	// PhaseLockPending means the piece is grounded and the lock-delay
	// timer is running.
	PhaseLockPending
	// PhaseGameOver is terminal; the session is frozen until Reset.
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseLockPending:
		return "lock-pending"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// ActivePiece is the pose of the piece currently under player control.
type ActivePiece struct {
	Kind tetromino.Kind
	Rot  int
	X, Y int
}

// Tuning holds the gameplay constants. The exact numbers are tuning
// parameters, not rules: they load from the config file and only their
// shape (monotonic gravity, positive clear scores) is relied on.
type Tuning struct {
	BoardWidth  int
	BoardHeight int
	HiddenRows  int
	Preview     int

	GravityBaseTicks int
	GravityFactor    float64
	GravityMinTicks  int

	LockDelayTicks int
	MaxLockResets  int

	LinesPerLevel int

	SoftDropPerCell int
	HardDropPerCell int
	ClearScores     [5]int // indexed by lines cleared, [0] unused
	TSpinScores     [4]int // indexed by lines cleared, [0] unused
	ComboBonus      int
	BackToBack      float64
}

// DefaultTuning returns the stock guideline-flavored constants used when
// no config file overrides them.
func DefaultTuning() Tuning {
	return Tuning{
		BoardWidth:       10,
		BoardHeight:      20,
		HiddenRows:       2,
		Preview:          5,
		GravityBaseTicks: 36,
		GravityFactor:    0.85,
		GravityMinTicks:  3,
		LockDelayTicks:   30,
		MaxLockResets:    15,
		LinesPerLevel:    10,
		SoftDropPerCell:  1,
		HardDropPerCell:  2,
		ClearScores:      [5]int{0, 100, 300, 500, 800},
		TSpinScores:      [4]int{0, 800, 1200, 1600},
		ComboBonus:       50,
		BackToBack:       1.5,
	}
}

// maxQueuedActions bounds the pending-input queue; inputs past the cap
// are dropped rather than played back seconds later.
const maxQueuedActions = 32

// Session is the authoritative game state. It advances only through
// Step, one fixed tick at a time, consuming at most one queued action
// per tick; identical (seed, action stream) pairs therefore reproduce
// identical trajectories.
type Session struct {
	tuning Tuning
	board  *board.Board
	bag    *tetromino.Bag
	seed   int64

	tick  uint64
	phase Phase
	piece ActivePiece

	holdKind tetromino.Kind
	hasHold  bool
	holdUsed bool

	queue []core.Action

	score int
	lines int
	level int
	combo int
	b2b   bool

	gravityTicker int
	lockTicker    int
	lockResets    int
	lowestY       int
	lastWasRotate bool

	events []Event
	err    error
}

// NewSession creates a session with the given tuning and RNG seed.
func NewSession(t Tuning, seed int64) *Session {
	s := &Session{tuning: t}
	s.Reset(seed)
	return s
}

// Reset wipes all state and reseeds the randomizer.
func (s *Session) Reset(seed int64) {
	s.seed = seed
	s.board = board.New(s.tuning.BoardWidth, s.tuning.BoardHeight, s.tuning.HiddenRows)
	s.bag = tetromino.NewBag(seed, s.tuning.Preview)
	s.tick = 0
	s.phase = PhaseSpawning
	s.piece = ActivePiece{}
	s.hasHold = false
	s.holdUsed = false
	s.queue = s.queue[:0]
	s.score = 0
	s.lines = 0
	s.level = 1
	s.combo = -1
	s.b2b = false
	s.gravityTicker = 0
	s.lockTicker = 0
	s.lockResets = 0
	s.lowestY = 0
	s.lastWasRotate = false
	s.events = nil
	s.err = nil
}

// Enqueue appends a gameplay action to the pending-input queue and
// reports whether it was accepted. The session consumes one queued
// action per tick, in FIFO order; it does not care whether the producer
// is a human input adapter or the AI planner. Non-gameplay actions and
// overflow are dropped.
func (s *Session) Enqueue(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight,
		core.ActionRotateCW, core.ActionRotateCCW,
		core.ActionSoftDrop, core.ActionHardDrop,
		core.ActionHold:
	default:
		return false
	}
	if s.phase == PhaseGameOver || len(s.queue) >= maxQueuedActions {
		return false
	}
	s.queue = append(s.queue, a)
	return true
}

// ForceGameOver ends the session from outside the state machine. The
// autoplay driver uses it when the planner reports no legal placement.
func (s *Session) ForceGameOver() {
	if s.phase != PhaseGameOver {
		s.gameOver()
	}
}

// Step advances the session by one fixed tick: spawn if due, apply at
// most one queued action, then run gravity or the lock-delay timer.
// It returns the events produced by this tick.
func (s *Session) Step() []Event {
	if s.phase == PhaseGameOver {
		return nil
	}
	s.events = s.events[:0]
	s.tick++

	if s.phase == PhaseSpawning {
		s.spawnNext()
		if s.phase == PhaseGameOver {
			return s.events
		}
	}

	if len(s.queue) > 0 {
		a := s.queue[0]
		s.queue = s.queue[1:]
		s.apply(a)
		if s.phase == PhaseGameOver || s.phase == PhaseSpawning {
			return s.events
		}
	}

	switch s.phase {
	case PhaseFalling, PhaseLockPending:
		if s.board.CanPlace(s.piece.Kind, s.piece.Rot, s.piece.X, s.piece.Y+1) {
			s.phase = PhaseFalling
			s.gravityTicker++
			if s.gravityTicker >= s.GravityInterval() {
				s.gravityTicker = 0
				s.shift(0, 1)
			}
		} else {
			// A re-grounded piece keeps its elapsed timer; only
			// resetLockDelay clears it, so cycling on and off a ledge
			// cannot mint fresh lock-delay windows.
			s.phase = PhaseLockPending
			s.lockTicker++
			if s.lockTicker >= s.tuning.LockDelayTicks {
				s.lockPiece(false)
			}
		}
	}

	return s.events
}

// apply executes one action against the active piece. Illegal moves are
// rejected silently: no state change, no event.
func (s *Session) apply(a core.Action) {
	switch a {
	case core.ActionLeft:
		s.shift(-1, 0)
	case core.ActionRight:
		s.shift(1, 0)
	case core.ActionRotateCW:
		s.rotate(1)
	case core.ActionRotateCCW:
		s.rotate(-1)
	case core.ActionSoftDrop:
		if s.shift(0, 1) {
			s.score += s.tuning.SoftDropPerCell
			s.gravityTicker = 0
		}
	case core.ActionHardDrop:
		s.hardDrop()
	case core.ActionHold:
		s.hold()
	}
}

// shift attempts to translate the active piece. A successful move
// settles the lock-delay budget per resetLockDelay.
func (s *Session) shift(dx, dy int) bool {
	p := s.piece
	if !s.board.CanPlace(p.Kind, p.Rot, p.X+dx, p.Y+dy) {
		return false
	}
	s.piece.X += dx
	s.piece.Y += dy
	s.lastWasRotate = false
	s.emit(Moved{DX: dx, DY: dy})
	s.resetLockDelay()
	return true
}

// rotate attempts a rotation in direction dir (+1 CW, -1 CCW), trying
// the kick offsets in table order and taking the first legal pose.
func (s *Session) rotate(dir int) bool {
	p := s.piece
	to := ((p.Rot+dir)%4 + 4) % 4
	for i, off := range tetromino.Kicks(p.Kind, p.Rot, to) {
		if s.board.CanPlace(p.Kind, to, p.X+off.X, p.Y+off.Y) {
			s.piece.Rot = to
			s.piece.X += off.X
			s.piece.Y += off.Y
			s.lastWasRotate = true
			s.emit(Rotated{To: to, KickIndex: i})
			s.resetLockDelay()
			return true
		}
	}
	return false
}

// resetLockDelay settles the lock-delay budget after a successful move or
// rotation. Descending to a new lowest row restores the full budget; any
// other move while grounded is a capped reset.
func (s *Session) resetLockDelay() {
	if s.piece.Y > s.lowestY {
		s.lowestY = s.piece.Y
		s.lockTicker = 0
		s.lockResets = 0
		return
	}
	if s.phase == PhaseLockPending && s.lockResets < s.tuning.MaxLockResets {
		s.lockTicker = 0
		s.lockResets++
	}
}

// hardDrop sends the piece straight down and locks it immediately,
// bypassing lock delay. Dropping a piece that is already grounded is
// the zero-distance case of the same path.
func (s *Session) hardDrop() {
	p := s.piece
	y, ok := s.board.DropY(p.Kind, p.Rot, p.X, p.Y)
	if !ok {
		return
	}
	if dist := y - p.Y; dist > 0 {
		s.score += s.tuning.HardDropPerCell * dist
		s.piece.Y = y
		s.lastWasRotate = false
		s.emit(Moved{DY: dist})
	}
	s.lockPiece(true)
}

// hold swaps the active piece with the hold slot (pulling from the queue
// if the slot is empty) and respawns. At most once per piece lifetime.
func (s *Session) hold() bool {
	if s.holdUsed {
		return false
	}
	prev := s.piece.Kind

	var next tetromino.Kind
	if s.hasHold {
		next = s.holdKind
	} else {
		k, err := s.nextKind()
		if err != nil {
			s.fail(err)
			return false
		}
		next = k
	}

	s.holdKind = prev
	s.hasHold = true
	s.holdUsed = true
	s.emit(Held{Stored: prev})
	s.spawnPiece(next)
	return true
}

// lockPiece fixes the active piece into the stack, resolves clears and
// scoring, and hands control back for the next spawn.
func (s *Session) lockPiece(hard bool) {
	p := s.piece
	tspin := p.Kind == tetromino.KindT && s.lastWasRotate && s.tSpinCorners() >= 3

	if err := s.board.Lock(p.Kind, p.Rot, p.X, p.Y); err != nil {
		if errors.Is(err, board.ErrToppedOut) {
			s.gameOver()
			return
		}
		s.fail(err)
		return
	}
	s.emit(Locked{Kind: p.Kind, Rotation: p.Rot, X: p.X, Y: p.Y, HardDrop: hard})

	rows := s.board.FullLines()
	n := s.board.ClearLines(rows)
	if n > 0 {
		s.scoreClear(rows, n, tspin)
	} else {
		s.combo = -1
	}

	s.phase = PhaseSpawning
}

// scoreClear applies the line-clear score table with the level
// multiplier, plus combo and back-to-back bonuses, and advances the
// level from cumulative lines.
func (s *Session) scoreClear(rows []int, n int, tspin bool) {
	var base int
	if tspin && n < len(s.tuning.TSpinScores) {
		base = s.tuning.TSpinScores[n]
	} else if n < len(s.tuning.ClearScores) {
		base = s.tuning.ClearScores[n]
	}

	pts := base * s.level
	difficult := n >= 4 || tspin
	b2b := difficult && s.b2b
	if b2b {
		pts = int(math.Round(float64(pts) * s.tuning.BackToBack))
	}
	s.b2b = difficult

	s.combo++
	if s.combo > 0 {
		pts += s.tuning.ComboBonus * s.combo * s.level
	}

	s.score += pts
	s.lines += n

	s.emit(LinesCleared{
		Rows:       rows,
		Count:      n,
		TSpin:      tspin,
		BackToBack: b2b,
		Combo:      s.combo,
		Points:     pts,
	})

	if lvl := 1 + s.lines/s.tuning.LinesPerLevel; lvl > s.level {
		s.level = lvl
		s.emit(LevelUp{Level: lvl})
	}
}

// tSpinCorners counts blocked diagonal corners around the T center.
// Walls and the floor count as blocked; open air above the grid does not.
func (s *Session) tSpinCorners() int {
	cx, cy := s.piece.X+1, s.piece.Y+1
	blocked := 0
	for _, d := range [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		x, y := cx+d[0], cy+d[1]
		if x < 0 || x >= s.board.Width() || y >= s.board.Rows() {
			blocked++
			continue
		}
		if y >= 0 && !s.board.At(x, y).Empty() {
			blocked++
		}
	}
	return blocked
}

// spawnNext pulls the next kind from the bag and spawns it, clearing the
// per-piece hold and lock-reset budgets.
func (s *Session) spawnNext() {
	k, err := s.nextKind()
	if err != nil {
		s.fail(err)
		return
	}
	s.holdUsed = false
	s.spawnPiece(k)
}

// spawnPiece places kind k at the spawn position: box horizontally
// centered, top row inside the hidden buffer. If the spawn cells are
// taken, one row higher is tried as top-out grace; failing that too is
// game over.
func (s *Session) spawnPiece(k tetromino.Kind) {
	x := (s.board.Width() - tetromino.BoxSize(k)) / 2
	y := 0
	if !s.board.CanPlace(k, 0, x, y) {
		y = -1
		if !s.board.CanPlace(k, 0, x, y) {
			s.gameOver()
			return
		}
	}

	s.piece = ActivePiece{Kind: k, Rot: 0, X: x, Y: y}
	s.phase = PhaseFalling
	s.gravityTicker = 0
	s.lockTicker = 0
	s.lockResets = 0
	s.lowestY = y
	s.lastWasRotate = false
	s.emit(Spawned{Kind: k})
}

func (s *Session) nextKind() (tetromino.Kind, error) {
	if len(s.bag.Peek(1)) == 0 {
		return 0, ErrQueueUnderrun
	}
	return s.bag.Next(), nil
}

func (s *Session) gameOver() {
	s.phase = PhaseGameOver
	s.queue = s.queue[:0]
	s.emit(GameOver{Score: s.score, Lines: s.lines, Level: s.level})
}

// fail records a fatal engine error and freezes the session. Per the
// error model there is no recovery short of a Reset.
func (s *Session) fail(err error) {
	s.err = err
	s.gameOver()
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// GravityInterval returns the current ticks-per-row drop rate, derived
// from the level: base * factor^(level-1), floored at the minimum.
func (s *Session) GravityInterval() int {
	iv := float64(s.tuning.GravityBaseTicks) *
		math.Pow(s.tuning.GravityFactor, float64(s.level-1))
	return core.Max(s.tuning.GravityMinTicks, int(math.Round(iv)))
}

// GhostY returns the row the active piece would rest on if hard-dropped
// now, and whether there is an active piece to project.
func (s *Session) GhostY() (int, bool) {
	if s.phase != PhaseFalling && s.phase != PhaseLockPending {
		return 0, false
	}
	p := s.piece
	return s.board.DropY(p.Kind, p.Rot, p.X, p.Y)
}

// Accessors. The board pointer is the live grid; AI and rendering must
// treat it as read-only and clone before simulating.

func (s *Session) Board() *board.Board       { return s.board }
func (s *Session) Piece() ActivePiece        { return s.piece }
func (s *Session) Phase() Phase              { return s.phase }
func (s *Session) Tick() uint64              { return s.tick }
func (s *Session) Seed() int64               { return s.seed }
func (s *Session) Score() int                { return s.score }
func (s *Session) Lines() int                { return s.lines }
func (s *Session) Level() int                { return s.level }
func (s *Session) Combo() int                { return s.combo }
func (s *Session) Over() bool                { return s.phase == PhaseGameOver }
func (s *Session) Err() error                { return s.err }
func (s *Session) Tuning() Tuning            { return s.tuning }
func (s *Session) QueuedActions() int        { return len(s.queue) }
func (s *Session) Preview() []tetromino.Kind { return s.bag.Peek(s.tuning.Preview) }

// Hold returns the held kind and whether the slot is occupied.
func (s *Session) Hold() (tetromino.Kind, bool) {
	return s.holdKind, s.hasHold
}

// HoldUsed reports whether hold has already been spent on this piece.
func (s *Session) HoldUsed() bool { return s.holdUsed }
