package pong

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Strategy selects how a computer paddle chooses its destination.
type Strategy int

const (
	StrategyPredictive Strategy = iota
	StrategyExact
	StrategyFollow
)

// noiseBucket is how long (simulated ms) one AI aiming error persists.
const noiseBucket = 10000

// String returns the config name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyPredictive:
		return "predictive"
	case StrategyExact:
		return "exact"
	case StrategyFollow:
		return "follow"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a config name to a Strategy. An empty name selects
// the predictive default.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "predictive", "predict":
		return StrategyPredictive, nil
	case "exact":
		return StrategyExact, nil
	case "follow":
		return StrategyFollow, nil
	default:
		return StrategyPredictive, fmt.Errorf("pong: unknown AI strategy %q", name)
	}
}

// Field is the playing area seen by the AI.
type Field struct {
	Width, Height float64
}

// AI steers computer paddles. It reads the ball and writes only paddle
// destinations and positions.
type AI struct {
	Strategy Strategy
	Field    Field
	Seed     int64
}

// Steer updates cpu for one tick. elapsedMS is simulated time and only
// feeds the aiming noise.
func (ai *AI) Steer(cpu, opponent *Paddle, ball *Ball, elapsedMS int64) {
	switch ai.Strategy {
	case StrategyFollow:
		cpu.Destination = ball.X
		cpu.Move()
	case StrategyExact:
		cpu.Destination = ball.X
		cpu.SetPosition(cpu.Destination)
	default:
		ai.predict(cpu, opponent, ball, elapsedMS)
	}
}

// predict aims for where the ball will cross the paddle's line.
func (ai *AI) predict(cpu, opponent *Paddle, ball *Ball, elapsedMS int64) {
	center := ai.Field.Width / 2

	if ball.IsServing() {
		cpu.Destination = center
		cpu.Move()
		return
	}

	// Wait until the ball moves vertically again
	if ball.VY() == 0 {
		return
	}

	x, ok := PredictX(ball, cpu, opponent, ai.Field)
	if !ok {
		x = center
	}

	x += ai.noise(cpu, ball, elapsedMS)
	cpu.Destination = core.ClampF(x, 0, ai.Field.Width)
	cpu.Move()
}

// noise returns a small aiming error that changes roughly every ten seconds.
func (ai *AI) noise(cpu *Paddle, ball *Ball, elapsedMS int64) float64 {
	hw := int(cpu.Width() / 2)
	if hw <= 0 {
		return 0
	}

	sum := cpu.CenterY() + ball.VX() + ball.VY() + float64(elapsedMS/noiseBucket)
	seed := int64(math.Floor(sum)) ^ ai.Seed
	r := rand.New(rand.NewSource(seed))

	span := 2*hw - hw/5
	return float64(r.Intn(span) - hw + hw/10)
}

// PredictX estimates the ball's x when it next reaches cpu's line. An
// outgoing ball is followed to the opponent and back. The second result is
// false when the geometry is degenerate.
func PredictX(ball *Ball, cpu, opponent *Paddle, field Field) (float64, bool) {
	vx, vy := ball.VX(), ball.VY()
	if vy == 0 {
		return 0, false
	}

	cpuDist := math.Abs(ball.Y - cpu.CenterY())
	oppDist := math.Abs(ball.Y - opponent.CenterY())
	paddleDist := math.Abs(cpu.CenterY() - opponent.CenterY())

	coming := (cpu.CenterY() < ball.Y && vy < 0) || (cpu.CenterY() > ball.Y && vy > 0)

	vertical := cpuDist
	if !coming {
		vertical = oppDist + paddleDist
	}

	total := vertical / math.Abs(vy) * math.Abs(vx)
	playWidth := field.Width - 2*BallRadius
	if playWidth <= 0 || !finite(total) {
		return 0, false
	}

	left := vx < 0
	var wallDist float64
	if left {
		wallDist = ball.X - BallRadius
	} else {
		wallDist = playWidth - (ball.X - BallRadius)
	}

	if total <= wallDist {
		x := ball.X + math.Copysign(total, vx)
		return x, finite(x)
	}

	// First bounce at the wall ahead, then full traversals
	rest := total - wallDist
	bounces := 1 + int(rest/playWidth)
	leftover := math.Mod(rest, playWidth)

	// After an odd number of bounces the ball travels opposite its start
	reversed := bounces%2 == 1
	fromLeft := left == reversed

	var x float64
	if fromLeft {
		x = BallRadius + leftover
	} else {
		x = BallRadius + playWidth - leftover
	}
	return x, finite(x)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
