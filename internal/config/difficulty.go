package config

import (
	"fmt"
	"strings"
)

// presetTuning is what a difficulty preset changes.
type presetTuning struct {
	handicap   int
	speedBonus int
	livesBonus int
}

var presetTunings = map[DifficultyPreset]presetTuning{
	DifficultyEasy:   {handicap: 6, speedBonus: 0, livesBonus: 4},
	DifficultyNormal: {handicap: 4, speedBonus: 0, livesBonus: 2},
	DifficultyHard:   {handicap: 1, speedBonus: 2, livesBonus: 1},
}

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return DifficultyNormal, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyPongPreset modifies the config based on a difficulty preset.
// The fixed preset keeps the loaded values.
func ApplyPongPreset(cfg *PongConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		return
	}
	t, ok := presetTunings[preset]
	if !ok {
		return
	}
	cfg.Paddle.Handicap = t.handicap
	cfg.Ball.SpeedBonus = t.speedBonus
	cfg.Gameplay.LivesBonus = t.livesBonus
}
