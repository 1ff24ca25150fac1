package tetromino

import "testing"

func TestCellsSpawnState(t *testing.T) {
	// Spot-check spawn geometry: I is a horizontal bar in row 1 of its
	// 4x4 box, O is the center 2x2 square.
	wantI := Shape{{0, 1}, {1, 1}, {2, 1}, {3, 1}}
	if Cells(KindI, 0) != wantI {
		t.Errorf("I spawn = %v, want %v", Cells(KindI, 0), wantI)
	}
	wantO := Shape{{1, 1}, {2, 1}, {1, 2}, {2, 2}}
	if Cells(KindO, 0) != wantO {
		t.Errorf("O spawn = %v, want %v", Cells(KindO, 0), wantO)
	}
}

func TestCellsWithinBox(t *testing.T) {
	for _, k := range Kinds {
		box := BoxSize(k)
		for rot := 0; rot < 4; rot++ {
			seen := map[Offset]bool{}
			for _, c := range Cells(k, rot) {
				if c.X < 0 || c.Y < 0 || c.X >= box || c.Y >= box {
					t.Errorf("%v rot %d: cell %v outside %dx%d box", k, rot, c, box, box)
				}
				if seen[c] {
					t.Errorf("%v rot %d: duplicate cell %v", k, rot, c)
				}
				seen[c] = true
			}
		}
	}
}

func TestCellsRotationWraps(t *testing.T) {
	for _, k := range Kinds {
		if Cells(k, 4) != Cells(k, 0) {
			t.Errorf("%v: rot 4 != rot 0", k)
		}
		if Cells(k, -1) != Cells(k, 3) {
			t.Errorf("%v: rot -1 != rot 3", k)
		}
	}
}

func TestOAllRotationsIdentical(t *testing.T) {
	for rot := 1; rot < 4; rot++ {
		if Cells(KindO, rot) != Cells(KindO, 0) {
			t.Errorf("O rot %d = %v, want spawn shape", rot, Cells(KindO, rot))
		}
	}
}

func TestIRotationVertical(t *testing.T) {
	// One CW from spawn puts I into column 2 of its box.
	want := Shape{{2, 0}, {2, 1}, {2, 2}, {2, 3}}
	if Cells(KindI, 1) != want {
		t.Errorf("I rot 1 = %v, want %v", Cells(KindI, 1), want)
	}
}

func TestBounds(t *testing.T) {
	minX, minY, maxX, maxY := Bounds(KindI, 0)
	if minX != 0 || minY != 1 || maxX != 3 || maxY != 1 {
		t.Errorf("I spawn bounds = (%d,%d,%d,%d), want (0,1,3,1)", minX, minY, maxX, maxY)
	}
	minX, minY, maxX, maxY = Bounds(KindT, 0)
	if minX != 0 || minY != 0 || maxX != 2 || maxY != 1 {
		t.Errorf("T spawn bounds = (%d,%d,%d,%d), want (0,0,2,1)", minX, minY, maxX, maxY)
	}
}

func TestKicksIdentityFirst(t *testing.T) {
	for _, k := range Kinds {
		for from := 0; from < 4; from++ {
			for _, to := range []int{(from + 1) % 4, (from + 3) % 4} {
				offs := Kicks(k, from, to)
				if len(offs) == 0 {
					t.Fatalf("%v %d->%d: empty kick list", k, from, to)
				}
				if offs[0] != (Offset{0, 0}) {
					t.Errorf("%v %d->%d: first kick = %v, want identity", k, from, to, offs[0])
				}
			}
		}
	}
}

func TestKicksONeverKicks(t *testing.T) {
	for from := 0; from < 4; from++ {
		offs := Kicks(KindO, from, (from+1)%4)
		if len(offs) != 1 || offs[0] != (Offset{0, 0}) {
			t.Errorf("O %d->%d: kicks = %v, want identity only", from, (from+1)%4, offs)
		}
	}
}

func TestKicksReverseNegated(t *testing.T) {
	// SRS tables are antisymmetric: the kicks for to->from are the
	// negations of the kicks for from->to.
	for _, k := range []Kind{KindT, KindI} {
		for from := 0; from < 4; from++ {
			to := (from + 1) % 4
			fwd := Kicks(k, from, to)
			rev := Kicks(k, to, from)
			if len(fwd) != len(rev) {
				t.Fatalf("%v %d<->%d: length mismatch %d vs %d", k, from, to, len(fwd), len(rev))
			}
			for i := range fwd {
				if fwd[i].X != -rev[i].X || fwd[i].Y != -rev[i].Y {
					t.Errorf("%v %d->%d kick %d: %v is not the negation of %v",
						k, from, to, i, fwd[i], rev[i])
				}
			}
		}
	}
}
