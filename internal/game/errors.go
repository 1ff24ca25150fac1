package game

import "errors"

var (
	// ErrQueueUnderrun reports that the randomizer failed to produce a
	// piece on request. The bag refill rule makes this unreachable in
	// normal operation; seeing it means a programming error, so callers
	// treat it as fatal to the session.
	ErrQueueUnderrun = errors.New("game: piece queue underrun")

	// ErrSessionOver reports an operation on a session that has already
	// reached game over and needs a Reset.
	ErrSessionOver = errors.New("game: session is over")
)
