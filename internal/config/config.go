// Package config provides YAML-based configuration loading for the
// tetrion engine: board geometry, gravity and lock-delay timing, the
// scoring table, and AI planner tuning.
package config

// TetrisConfig contains all gameplay configuration.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Gravity GravityConfig `yaml:"gravity"`
	Lock    LockConfig    `yaml:"lock"`
	Scoring ScoringConfig `yaml:"scoring"`
	AI      AIConfig      `yaml:"ai"`
}

// BoardConfig defines the playfield geometry and preview length.
type BoardConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Hidden  int `yaml:"hidden"`
	Preview int `yaml:"preview"`
}

// GravityConfig defines the fall-speed curve. The interval in ticks at
// level L is base_ticks * factor^(L-1), floored at min_ticks.
type GravityConfig struct {
	BaseTicks int     `yaml:"base_ticks"`
	Factor    float64 `yaml:"factor"`
	MinTicks  int     `yaml:"min_ticks"`
}

// LockConfig defines lock-delay timing.
type LockConfig struct {
	DelayTicks int `yaml:"delay_ticks"`
	MaxResets  int `yaml:"max_resets"`
}

// ScoringConfig defines the point tables and the level-up threshold.
type ScoringConfig struct {
	Single          int     `yaml:"single"`
	Double          int     `yaml:"double"`
	Triple          int     `yaml:"triple"`
	Tetris          int     `yaml:"tetris"`
	TSpinSingle     int     `yaml:"tspin_single"`
	TSpinDouble     int     `yaml:"tspin_double"`
	TSpinTriple     int     `yaml:"tspin_triple"`
	SoftDropPerCell int     `yaml:"soft_drop_per_cell"`
	HardDropPerCell int     `yaml:"hard_drop_per_cell"`
	ComboBonus      int     `yaml:"combo_bonus"`
	BackToBack      float64 `yaml:"back_to_back"`
	LinesPerLevel   int     `yaml:"lines_per_level"`
}

// AIConfig defines planner behavior. Preset selects a named weight set;
// explicit weights override the preset when any of them is non-zero.
type AIConfig struct {
	Preset  string          `yaml:"preset"`
	Depth   int             `yaml:"depth"`
	Weights AIWeightsConfig `yaml:"weights"`
}

// AIWeightsConfig holds explicit evaluation weights.
type AIWeightsConfig struct {
	AggregateHeight float64 `yaml:"aggregate_height"`
	Lines           float64 `yaml:"lines"`
	Holes           float64 `yaml:"holes"`
	Bumpiness       float64 `yaml:"bumpiness"`
}

// IsZero reports whether no explicit weight was set.
func (w AIWeightsConfig) IsZero() bool {
	return w == AIWeightsConfig{}
}
