package ai

import "fmt"

// Weights parameterize the board evaluation. Lines is a reward (positive);
// the rest are penalties (negative). The numbers are tunable and load from
// config; only the signs are load-bearing.
type Weights struct {
	AggregateHeight float64 `yaml:"aggregate_height"`
	Lines           float64 `yaml:"lines"`
	Holes           float64 `yaml:"holes"`
	Bumpiness       float64 `yaml:"bumpiness"`
}

// BaselineWeights returns the classic four-feature weights. They play a
// conservative, survival-first game and are the "stable" preset.
func BaselineWeights() Weights {
	return Weights{
		AggregateHeight: -0.510066,
		Lines:           0.760666,
		Holes:           -0.35663,
		Bumpiness:       -0.184483,
	}
}

// Preset names accepted by WeightsForPreset.
const (
	PresetStable    = "stable"
	PresetHighscore = "highscore"
	PresetShow      = "show"
)

// WeightsForPreset maps a named play style to a weight set.
//
//	stable:    survival first, clears lines as soon as possible
//	highscore: tolerates a taller stack to set up multi-line clears
//	show:      chases clears aggressively, careless about holes
func WeightsForPreset(name string) (Weights, error) {
	switch name {
	case PresetStable, "":
		return BaselineWeights(), nil
	case PresetHighscore:
		return Weights{
			AggregateHeight: -0.35,
			Lines:           1.10,
			Holes:           -0.55,
			Bumpiness:       -0.15,
		}, nil
	case PresetShow:
		return Weights{
			AggregateHeight: -0.30,
			Lines:           1.50,
			Holes:           -0.20,
			Bumpiness:       -0.10,
		}, nil
	default:
		return Weights{}, fmt.Errorf("ai: unknown preset %q", name)
	}
}

// Presets lists the known preset names.
func Presets() []string {
	return []string{PresetStable, PresetHighscore, PresetShow}
}
