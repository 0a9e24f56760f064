package pong

import "github.com/vovakirdan/tui-pong/internal/config"

// OptionsFromConfig builds match options from a loaded config. The seed is
// left for the caller.
func OptionsFromConfig(cfg config.PongConfig) (Options, error) {
	strategy, err := ParseStrategy(cfg.AI.Strategy)
	if err != nil {
		return Options{}, err
	}

	o := Options{
		BallSpeedBonus:  cfg.Ball.SpeedBonus,
		LivesBonus:      cfg.Gameplay.LivesBonus,
		Strategy:        strategy,
		Handicap:        cfg.Paddle.Handicap,
		RedIsPlayer:     cfg.Players.Red,
		BlueIsPlayer:    cfg.Players.Blue,
		Salt:            cfg.Ball.Salt,
		MultiTouch:      cfg.Input.MultiTouch,
		Attract:         cfg.Gameplay.Attract,
		FPS:             cfg.Field.FPS,
		AxisSensitivity: cfg.Input.AxisSensitivity,
	}
	return o.Normalize(), nil
}
