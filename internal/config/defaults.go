package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default gameplay configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:   10,
			Height:  20,
			Hidden:  2,
			Preview: 5,
		},
		Gravity: GravityConfig{
			BaseTicks: 36,
			Factor:    0.85,
			MinTicks:  3,
		},
		Lock: LockConfig{
			DelayTicks: 30,
			MaxResets:  15,
		},
		Scoring: ScoringConfig{
			Single:          100,
			Double:          300,
			Triple:          500,
			Tetris:          800,
			TSpinSingle:     800,
			TSpinDouble:     1200,
			TSpinTriple:     1600,
			SoftDropPerCell: 1,
			HardDropPerCell: 2,
			ComboBonus:      50,
			BackToBack:      1.5,
			LinesPerLevel:   10,
		},
		AI: AIConfig{
			Preset: "stable",
			Depth:  2,
		},
	}
}
