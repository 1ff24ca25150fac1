package ai

import (
	"errors"
	"testing"

	"github.com/ddanilov/tetrion/internal/board"
	"github.com/ddanilov/tetrion/internal/core"
	"github.com/ddanilov/tetrion/internal/tetromino"
)

func mustLock(t *testing.T, b *board.Board, k tetromino.Kind, rot, x, y int) {
	t.Helper()
	if err := b.Lock(k, rot, x, y); err != nil {
		t.Fatalf("fixture lock %v rot %d at (%d,%d): %v", k, rot, x, y, err)
	}
}

func TestPlanPrefersLineClear(t *testing.T) {
	b := board.New(10, 20, 2)
	// Bottom row filled except columns 8 and 9; an O at x=7 completes it.
	mustLock(t, b, tetromino.KindI, 0, 0, 20)
	mustLock(t, b, tetromino.KindI, 0, 4, 20)

	p := New(BaselineWeights(), 1)
	pl, err := p.Plan(b, tetromino.KindO, tetromino.KindO, false)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	if pl.Cleared != 1 {
		t.Errorf("chosen placement clears %d lines, want 1", pl.Cleared)
	}
	if pl.X != 7 {
		t.Errorf("chosen column = %d, want 7 (the gap)", pl.X)
	}
}

func TestPlanDoesNotMutateBoard(t *testing.T) {
	b := board.New(10, 20, 2)
	mustLock(t, b, tetromino.KindI, 0, 0, 20)
	before := b.Hash()

	p := New(BaselineWeights(), 2)
	if _, err := p.Plan(b, tetromino.KindT, tetromino.KindS, true); err != nil {
		t.Fatalf("Plan: %v", err)
	}

	if b.Hash() != before {
		t.Error("Plan mutated the input board")
	}
}

func TestTwoPlyNeverWorseThanOnePly(t *testing.T) {
	boards := []*board.Board{
		board.New(10, 20, 2),
	}
	uneven := board.New(10, 20, 2)
	mustLock(t, uneven, tetromino.KindI, 1, 0, 18)
	mustLock(t, uneven, tetromino.KindO, 0, 3, 19)
	boards = append(boards, uneven)

	pairs := [][2]tetromino.Kind{
		{tetromino.KindT, tetromino.KindI},
		{tetromino.KindS, tetromino.KindZ},
		{tetromino.KindL, tetromino.KindJ},
	}

	one := New(BaselineWeights(), 1)
	two := New(BaselineWeights(), 2)

	for bi, b := range boards {
		for _, pair := range pairs {
			p1, err := one.Plan(b.Clone(), pair[0], pair[1], true)
			if err != nil {
				t.Fatalf("board %d %v/%v: 1-ply: %v", bi, pair[0], pair[1], err)
			}
			p2, err := two.Plan(b.Clone(), pair[0], pair[1], true)
			if err != nil {
				t.Fatalf("board %d %v/%v: 2-ply: %v", bi, pair[0], pair[1], err)
			}
			if p2.Value < p1.Value {
				t.Errorf("board %d %v/%v: 2-ply value %v below 1-ply value %v",
					bi, pair[0], pair[1], p2.Value, p1.Value)
			}
		}
	}
}

func TestPlanFullBoard(t *testing.T) {
	// A 4-wide board filled to the top has no legal landing left.
	b := board.New(4, 2, 2)
	for y := -1; y <= 2; y++ {
		mustLock(t, b, tetromino.KindI, 0, 0, y)
	}

	p := New(BaselineWeights(), 1)
	_, err := p.Plan(b, tetromino.KindO, tetromino.KindO, false)
	if !errors.Is(err, ErrNoValidPlacement) {
		t.Errorf("Plan on full board: err = %v, want ErrNoValidPlacement", err)
	}
}

func TestActions(t *testing.T) {
	cases := []struct {
		name    string
		fromRot int
		fromX   int
		target  Placement
		want    []core.Action
	}{
		{
			name:   "drop in place",
			fromX:  3,
			target: Placement{Rot: 0, X: 3},
			want:   []core.Action{core.ActionHardDrop},
		},
		{
			name:   "double rotate and shift right",
			fromX:  3,
			target: Placement{Rot: 2, X: 5},
			want: []core.Action{
				core.ActionRotateCW, core.ActionRotateCW,
				core.ActionRight, core.ActionRight,
				core.ActionHardDrop,
			},
		},
		{
			name:   "ccw beats three cw",
			fromX:  4,
			target: Placement{Rot: 3, X: 4},
			want:   []core.Action{core.ActionRotateCCW, core.ActionHardDrop},
		},
		{
			name:    "shift left from rotated state",
			fromRot: 1,
			fromX:   5,
			target:  Placement{Rot: 2, X: 2},
			want: []core.Action{
				core.ActionRotateCW,
				core.ActionLeft, core.ActionLeft, core.ActionLeft,
				core.ActionHardDrop,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Actions(tc.fromRot, tc.fromX, tc.target)
			if len(got) != len(tc.want) {
				t.Fatalf("Actions = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("Actions = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestWeightsForPreset(t *testing.T) {
	w, err := WeightsForPreset("")
	if err != nil {
		t.Fatalf("empty preset: %v", err)
	}
	if w != BaselineWeights() {
		t.Errorf("empty preset = %+v, want baseline", w)
	}

	if _, err := WeightsForPreset(PresetHighscore); err != nil {
		t.Errorf("highscore preset: %v", err)
	}
	if _, err := WeightsForPreset(PresetShow); err != nil {
		t.Errorf("show preset: %v", err)
	}
	if _, err := WeightsForPreset("nope"); err == nil {
		t.Error("unknown preset accepted")
	}
}

func TestSetDepthClamps(t *testing.T) {
	if got := New(BaselineWeights(), 0).Depth(); got != 1 {
		t.Errorf("depth 0 clamped to %d, want 1", got)
	}
	if got := New(BaselineWeights(), 7).Depth(); got != 2 {
		t.Errorf("depth 7 clamped to %d, want 2", got)
	}
}
