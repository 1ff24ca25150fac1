// Package replay records the action stream of a session for later
// deterministic playback. A log carries the seed, the tuning the session
// ran with, every accepted action with the tick it was enqueued on, and
// periodic state-hash checkpoints; re-feeding the same seed and stream
// through a fresh session reproduces the identical trajectory, which the
// checkpoints verify.
package replay

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/ddanilov/tetrion/internal/core"
	"github.com/ddanilov/tetrion/internal/game"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FormatVersion guards against loading logs written by an incompatible
// build.
const FormatVersion = 1

// DefaultCheckpointEvery is the default tick interval between state-hash
// checkpoints.
const DefaultCheckpointEvery = 60

// Entry is one recorded action. Tick is the session tick at enqueue
// time; during playback the action is re-enqueued before the step that
// advances past that tick.
type Entry struct {
	Tick   uint64      `json:"tick"`
	Action core.Action `json:"action"`
}

// Checkpoint is a state hash observed after the given tick completed.
type Checkpoint struct {
	Tick uint64 `json:"tick"`
	Hash uint64 `json:"hash"`
}

// Log is a complete recorded session.
type Log struct {
	Version     int          `json:"version"`
	GameID      string       `json:"game_id"`
	Seed        int64        `json:"seed"`
	Tuning      game.Tuning  `json:"tuning"`
	EndTick     uint64       `json:"end_tick"`
	FinalScore  int          `json:"final_score"`
	FinalLines  int          `json:"final_lines"`
	FinalLevel  int          `json:"final_level"`
	Entries     []Entry      `json:"entries"`
	Checkpoints []Checkpoint `json:"checkpoints"`
}

// Recorder taps a live session's action stream. It is append-only: the
// session never reads it back.
type Recorder struct {
	log   Log
	every uint64
	done  bool
}

// NewRecorder starts a recording for a session created with the given
// seed and tuning. every is the checkpoint interval in ticks; 0 uses
// the default.
func NewRecorder(gameID string, seed int64, tuning game.Tuning, every uint64) *Recorder {
	if every == 0 {
		every = DefaultCheckpointEvery
	}
	return &Recorder{
		log: Log{
			Version: FormatVersion,
			GameID:  gameID,
			Seed:    seed,
			Tuning:  tuning,
		},
		every: every,
	}
}

// RecordAction appends one accepted action. Wire this to the session's
// action tap.
func (r *Recorder) RecordAction(tick uint64, a core.Action) {
	if r.done {
		return
	}
	r.log.Entries = append(r.log.Entries, Entry{Tick: tick, Action: a})
}

// Observe is called after every session step; it takes a checkpoint on
// the configured interval and finalizes the log once the session ends.
func (r *Recorder) Observe(s *game.Session) {
	if r.done {
		return
	}
	tick := s.Tick()
	if tick > 0 && tick%r.every == 0 {
		r.log.Checkpoints = append(r.log.Checkpoints, Checkpoint{Tick: tick, Hash: s.StateHash()})
	}
	if s.Over() {
		r.finish(s)
	}
}

// Finish closes the recording against the session's current state, for
// sessions abandoned before game over.
func (r *Recorder) Finish(s *game.Session) {
	if !r.done {
		r.finish(s)
	}
}

func (r *Recorder) finish(s *game.Session) {
	r.log.EndTick = s.Tick()
	r.log.FinalScore = s.Score()
	r.log.FinalLines = s.Lines()
	r.log.FinalLevel = s.Level()
	r.log.Checkpoints = append(r.log.Checkpoints, Checkpoint{Tick: s.Tick(), Hash: s.StateHash()})
	r.done = true
}

// Log returns the recorded log.
func (r *Recorder) Log() *Log {
	return &r.log
}

// Save writes the log as JSON.
func Save(path string, l *Log) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("replay: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: write %s: %w", path, err)
	}
	return nil
}

// Load reads a log written by Save.
func Load(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read %s: %w", path, err)
	}
	var l Log
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("replay: decode %s: %w", path, err)
	}
	if l.Version != FormatVersion {
		return nil, fmt.Errorf("replay: %s has format version %d, want %d", path, l.Version, FormatVersion)
	}
	return &l, nil
}
