// Package config provides YAML-based game configuration loading and
// difficulty presets for pong.
package config

// PongConfig contains all configuration for a pong match.
type PongConfig struct {
	Field    FieldConfig    `yaml:"field"`
	Ball     BallConfig     `yaml:"ball"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	AI       AIConfig       `yaml:"ai"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Players  PlayersConfig  `yaml:"players"`
	Input    InputConfig    `yaml:"input"`
	Audio    AudioConfig    `yaml:"audio"`
}

// FieldConfig defines the logical playing field and tick rate.
// The field is independent of the terminal size; the renderer scales it.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	FPS    int     `yaml:"fps"`
}

// BallConfig defines ball parameters.
type BallConfig struct {
	SpeedBonus int  `yaml:"speed_bonus"` // Added to the base serve speed
	Salt       bool `yaml:"salt"`        // Perturb paddle bounces by contact offset
}

// PaddleConfig defines paddle parameters.
type PaddleConfig struct {
	Handicap int `yaml:"handicap"` // Computer speed reduction
}

// AIConfig selects the computer strategy.
type AIConfig struct {
	Strategy string `yaml:"strategy"` // "predictive", "exact" or "follow"
}

// GameplayConfig defines match rules.
type GameplayConfig struct {
	LivesBonus int  `yaml:"lives_bonus"`
	Attract    bool `yaml:"attract"` // Restart zero-player matches
}

// PlayersConfig marks which paddles are human-controlled.
type PlayersConfig struct {
	Red  bool `yaml:"red"`
	Blue bool `yaml:"blue"`
}

// InputConfig defines input routing.
type InputConfig struct {
	MultiTouch      bool    `yaml:"multi_touch"`
	AxisSensitivity float64 `yaml:"axis_sensitivity"`
}

// AudioConfig defines sound settings.
type AudioConfig struct {
	Muted bool `yaml:"muted"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IsFixedPreset returns true if the preset leaves the loaded config untouched.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
