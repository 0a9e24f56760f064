package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultPongConfig returns the default pong configuration: one human on
// blue against the predictive computer.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Field: FieldConfig{
			Width:  300,
			Height: 500,
			FPS:    30,
		},
		Ball: BallConfig{
			SpeedBonus: 0,
			Salt:       true,
		},
		Paddle: PaddleConfig{
			Handicap: 4,
		},
		AI: AIConfig{
			Strategy: "predictive",
		},
		Gameplay: GameplayConfig{
			LivesBonus: 2,
			Attract:    true,
		},
		Players: PlayersConfig{
			Red:  false,
			Blue: true,
		},
		Input: InputConfig{
			MultiTouch:      true,
			AxisSensitivity: 80,
		},
		Audio: AudioConfig{
			Muted: false,
		},
	}
}

// DefaultYAML returns the embedded default pong.yaml.
func DefaultYAML() []byte {
	return defaultPongYAML
}
