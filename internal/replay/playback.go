package replay

import (
	"errors"
	"fmt"

	"github.com/ddanilov/tetrion/internal/game"
)

// ErrSummaryMismatch reports that playback reached the end of the log
// with every checkpoint intact, but the final totals differ from the
// recorded summary.
var ErrSummaryMismatch = errors.New("replay: final summary mismatch")

// MalformedReplayError reports that re-simulation diverged from a
// recorded checkpoint. Playback aborts at the divergence tick.
type MalformedReplayError struct {
	Tick uint64
	Want uint64
	Got  uint64
}

func (e *MalformedReplayError) Error() string {
	return fmt.Sprintf("replay: state hash mismatch at tick %d: recorded %016x, replayed %016x",
		e.Tick, e.Want, e.Got)
}

// Play re-simulates the log on a fresh session. observe, if non-nil, is
// called after every tick (the TUI playback viewer renders from it).
// Checkpoints are verified as they are passed; on divergence the session
// is returned as it stood together with a *MalformedReplayError.
func Play(l *Log, observe func(*game.Session)) (*game.Session, error) {
	s := game.NewSession(l.Tuning, l.Seed)

	ei, ci := 0, 0
	for s.Tick() < l.EndTick && !s.Over() {
		for ei < len(l.Entries) && l.Entries[ei].Tick == s.Tick() {
			s.Enqueue(l.Entries[ei].Action)
			ei++
		}
		s.Step()

		for ci < len(l.Checkpoints) && l.Checkpoints[ci].Tick == s.Tick() {
			if got := s.StateHash(); got != l.Checkpoints[ci].Hash {
				return s, &MalformedReplayError{
					Tick: s.Tick(),
					Want: l.Checkpoints[ci].Hash,
					Got:  got,
				}
			}
			ci++
		}

		if observe != nil {
			observe(s)
		}
	}

	return s, nil
}

// Verify re-simulates the log without an observer and checks that the
// final state matches what was recorded.
func Verify(l *Log) error {
	s, err := Play(l, nil)
	if err != nil {
		return err
	}
	if s.Score() != l.FinalScore || s.Lines() != l.FinalLines || s.Level() != l.FinalLevel {
		return fmt.Errorf("%w at tick %d: recorded score/lines/level %d/%d/%d, replayed %d/%d/%d",
			ErrSummaryMismatch, s.Tick(),
			l.FinalScore, l.FinalLines, l.FinalLevel,
			s.Score(), s.Lines(), s.Level())
	}
	return nil
}
