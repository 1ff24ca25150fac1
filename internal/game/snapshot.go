package game

import (
	"hash/fnv"

	"github.com/ddanilov/tetrion/internal/tetromino"
)

// Snapshot is a read-only copy of the session state published once per
// tick for presentation and replay verification. It carries everything
// a renderer needs and everything the state hash covers; the live board
// is not referenced.
type Snapshot struct {
	Tick  uint64
	Phase Phase

	BoardHash uint64
	Piece     ActivePiece
	GhostY    int
	HasGhost  bool

	Hold     tetromino.Kind
	HasHold  bool
	HoldUsed bool
	Preview  []tetromino.Kind

	Score int
	Lines int
	Level int
	Combo int
	Over  bool
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	gy, ok := s.GhostY()
	snap := Snapshot{
		Tick:      s.tick,
		Phase:     s.phase,
		BoardHash: s.board.Hash(),
		Piece:     s.piece,
		GhostY:    gy,
		HasGhost:  ok,
		Hold:      s.holdKind,
		HasHold:   s.hasHold,
		HoldUsed:  s.holdUsed,
		Preview:   s.Preview(),
		Score:     s.score,
		Lines:     s.lines,
		Level:     s.level,
		Combo:     s.combo,
		Over:      s.phase == PhaseGameOver,
	}
	return snap
}

// Hash digests the snapshot into a single value. Two sessions fed the
// same seed and action stream must produce equal hashes at equal ticks;
// replay checkpoints compare exactly this.
func (sn Snapshot) Hash() uint64 {
	h := fnv.New64a()
	put := func(v uint64) {
		var b [8]byte
		for i := 0; i < 8; i++ {
			b[i] = byte(v >> (8 * i))
		}
		h.Write(b[:])
	}

	put(sn.Tick)
	put(uint64(sn.Phase))
	put(sn.BoardHash)
	put(uint64(sn.Piece.Kind))
	put(uint64(sn.Piece.Rot))
	put(uint64(int64(sn.Piece.X)))
	put(uint64(int64(sn.Piece.Y)))
	if sn.HasHold {
		put(uint64(sn.Hold) + 1)
	} else {
		put(0)
	}
	for _, k := range sn.Preview {
		put(uint64(k))
	}
	put(uint64(sn.Score))
	put(uint64(sn.Lines))
	put(uint64(sn.Level))
	return h.Sum64()
}

// StateHash is a convenience for recording a checkpoint without keeping
// the snapshot around.
func (s *Session) StateHash() uint64 {
	return s.Snapshot().Hash()
}
