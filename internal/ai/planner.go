// Package ai implements the look-ahead placement planner. It enumerates
// every rotation/column landing for the active piece (optionally chaining
// the next queued piece for a second ply), scores the resulting boards
// with a weighted surface heuristic, and emits the action sequence that
// realizes the best placement. The search only ever works on board
// clones; the live board is never written.
package ai

import (
	"errors"

	"github.com/ddanilov/tetrion/internal/board"
	"github.com/ddanilov/tetrion/internal/core"
	"github.com/ddanilov/tetrion/internal/tetromino"
)

// ErrNoValidPlacement reports that no legal landing exists for the piece.
// It only occurs on a nearly topped-out board; callers treat it as a
// game-over signal rather than a crash.
var ErrNoValidPlacement = errors.New("ai: no valid placement")

// Placement is one candidate landing: rotation state, bounding-box
// origin column, and the resting row from a straight-down drop.
type Placement struct {
	Rot, X, Y int
	Cleared   int
	Value     float64
}

// node is one entry in the search arena. The two-ply tree is small and
// bounded (≤ 4 rotations × board width per ply), so it is built as a
// flat slice with parent indices instead of recursion.
type node struct {
	parent int // index of the first-ply node, -1 at the first ply
	place  Placement
	after  *board.Board
	value  float64
}

// Planner picks placements for a session. Depth 1 scores each landing on
// its own; depth 2 scores it by the best follow-up with the next piece.
type Planner struct {
	weights Weights
	depth   int
}

// New creates a planner. Depth is clamped to {1, 2}.
func New(w Weights, depth int) *Planner {
	p := &Planner{weights: w}
	p.SetDepth(depth)
	return p
}

// SetDepth switches the look-ahead depth (1 or 2).
func (p *Planner) SetDepth(depth int) {
	p.depth = core.Clamp(depth, 1, 2)
}

// Depth returns the current look-ahead depth.
func (p *Planner) Depth() int { return p.depth }

// Weights returns the evaluation weights in use.
func (p *Planner) Weights() Weights { return p.weights }

// evaluate scores a board that already had the candidate lock and clear
// applied. cleared is the number of rows the lock removed.
func (p *Planner) evaluate(b *board.Board, cleared int) float64 {
	return p.weights.AggregateHeight*float64(b.AggregateHeight()) +
		p.weights.Lines*float64(cleared) +
		p.weights.Holes*float64(b.Holes()) +
		p.weights.Bumpiness*float64(b.Bumpiness())
}

// enumerate lists every landing reachable by rotate-then-shift-then-drop
// for kind k on b, in rotation-then-column order, paired with the board
// that results from locking and clearing it. Landings whose cells would
// end above the grid are skipped; they are top-outs, not placements.
func (p *Planner) enumerate(b *board.Board, k tetromino.Kind) []node {
	var out []node
	start := -tetromino.BoxSize(k) // drop from fully above the grid

	for rot := 0; rot < 4; rot++ {
		minX, _, maxX, _ := tetromino.Bounds(k, rot)
		for x := -minX; x+maxX < b.Width(); x++ {
			y, ok := b.DropY(k, rot, x, start)
			if !ok {
				continue
			}

			after := b.Clone()
			if err := after.Lock(k, rot, x, y); err != nil {
				continue
			}
			cleared := after.ClearLines(after.FullLines())

			pl := Placement{Rot: rot, X: x, Y: y, Cleared: cleared}
			pl.Value = p.evaluate(after, cleared)
			out = append(out, node{parent: -1, place: pl, after: after, value: pl.Value})
		}
	}
	return out
}

// Plan returns the best placement for the current piece on b. When the
// planner runs at depth 2 and hasNext is true, each candidate is scored
// by the best outcome over {stopping here} ∪ {every follow-up landing of
// next}, so adding the second ply can only improve a candidate's score.
// Ties break toward the lower resulting stack, then enumeration order.
func (p *Planner) Plan(b *board.Board, current, next tetromino.Kind, hasNext bool) (Placement, error) {
	arena := p.enumerate(b, current)
	if len(arena) == 0 {
		return Placement{}, ErrNoValidPlacement
	}

	roots := len(arena)
	best := make([]float64, roots)
	for i := range best {
		best[i] = arena[i].value
	}

	if p.depth >= 2 && hasNext {
		for i := 0; i < roots; i++ {
			for _, child := range p.enumerate(arena[i].after, next) {
				child.parent = i
				arena = append(arena, child)
				if child.value > best[i] {
					best[i] = child.value
				}
			}
		}
	}

	pick := 0
	for i := 1; i < roots; i++ {
		switch {
		case best[i] > best[pick]:
			pick = i
		case best[i] == best[pick] &&
			arena[i].after.AggregateHeight() < arena[pick].after.AggregateHeight():
			pick = i
		}
	}

	chosen := arena[pick].place
	chosen.Value = best[pick]
	return chosen, nil
}

// Actions converts a chosen placement into the key sequence a player
// would press: rotations (shortest direction, CW on a tie), lateral
// shifts to the target column, then a hard drop.
func Actions(fromRot, fromX int, target Placement) []core.Action {
	var out []core.Action

	delta := ((target.Rot-fromRot)%4 + 4) % 4
	switch delta {
	case 1, 2:
		for i := 0; i < delta; i++ {
			out = append(out, core.ActionRotateCW)
		}
	case 3:
		out = append(out, core.ActionRotateCCW)
	}

	dx := target.X - fromX
	step := core.ActionRight
	if dx < 0 {
		step = core.ActionLeft
		dx = -dx
	}
	for i := 0; i < dx; i++ {
		out = append(out, step)
	}

	out = append(out, core.ActionHardDrop)
	return out
}
