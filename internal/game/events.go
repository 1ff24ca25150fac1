package game

import "github.com/ddanilov/tetrion/internal/tetromino"

// Event is a discrete gameplay occurrence published by the session once
// per tick alongside the state snapshot. Consumers (TUI effects, replay
// tooling, logging) switch on the concrete type.
type Event interface {
	isEvent()
}

// Spawned fires when a new active piece enters the board.
type Spawned struct {
	Kind tetromino.Kind
}

// Moved fires on a successful lateral or downward shift of the active piece.
type Moved struct {
	DX, DY int
}

// Rotated fires on a successful rotation. KickIndex is the index into the
// kick table of the offset that succeeded; 0 means no kick was needed.
type Rotated struct {
	To        int
	KickIndex int
}

// Held fires when the hold slot swap is performed.
type Held struct {
	Stored tetromino.Kind
}

// Locked fires when the active piece becomes part of the stack.
type Locked struct {
	Kind     tetromino.Kind
	Rotation int
	X, Y     int
	HardDrop bool
}

// LinesCleared fires after a lock that completed one or more rows.
type LinesCleared struct {
	Rows       []int
	Count      int
	TSpin      bool
	BackToBack bool
	Combo      int
	Points     int
}

// LevelUp fires when cumulative cleared lines push the level up.
type LevelUp struct {
	Level int
}

// GameOver fires once, when the session freezes.
type GameOver struct {
	Score int
	Lines int
	Level int
}

func (Spawned) isEvent()      {}
func (Moved) isEvent()        {}
func (Rotated) isEvent()      {}
func (Held) isEvent()         {}
func (Locked) isEvent()       {}
func (LinesCleared) isEvent() {}
func (LevelUp) isEvent()      {}
func (GameOver) isEvent()     {}
