package pong

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Ball tuning
const (
	BallRadius  = 4.0
	BallSpeed   = 4.0
	ServeDelay  = 60          // Ticks the ball rests (and blinks) before a round starts
	Bound       = math.Pi / 9 // Minimum angular distance from horizontal
	Salt        = 4 * math.Pi / 9
	blinkPeriod = 10
)

// Ball is the game ball. Its velocity is derived from speed and angle, and
// every angle change goes through SetAngle so the bound invariant holds.
type Ball struct {
	X, Y  float64
	Speed float64

	angle   float64
	vx, vy  float64
	counter int
}

// NewBall creates a ball at (x, y) moving at speed along angle.
func NewBall(x, y, speed, angle float64) *Ball {
	b := &Ball{X: x, Y: y, Speed: speed}
	b.SetAngle(angle)
	return b
}

// Angle returns the current direction in [0, 2π).
func (b *Ball) Angle() float64 {
	return b.angle
}

// VX returns the horizontal velocity per tick.
func (b *Ball) VX() float64 {
	return b.vx
}

// VY returns the vertical velocity per tick. Positive is toward blue.
func (b *Ball) VY() float64 {
	return b.vy
}

// SetSpeed changes the speed and recomputes the velocity.
func (b *Ball) SetSpeed(speed float64) {
	b.Speed = speed
	b.findVector()
}

// findVector recomputes the velocity from speed and angle.
func (b *Ball) findVector() {
	v := core.FromPolar(b.Speed, b.angle)
	b.vx, b.vy = v.X, v.Y
}

// GoingUp reports whether the ball is moving toward red (negative y).
func (b *Ball) GoingUp() bool {
	return core.InUpperHalf(b.angle)
}

// GoingDown reports whether the ball is moving toward blue.
func (b *Ball) GoingDown() bool {
	return !b.GoingUp()
}

// GoingLeft reports whether the ball is moving toward x = 0.
func (b *Ball) GoingLeft() bool {
	return b.angle <= 3*math.Pi/2 && b.angle > math.Pi/2
}

// IsServing reports whether the ball is still resting before a round.
func (b *Ball) IsServing() bool {
	return b.counter > 0
}

// Serve freezes the ball for ServeDelay ticks.
func (b *Ball) Serve() {
	b.counter = ServeDelay
}

// Visible returns the blink phase. The ball is hidden on alternating
// ten-tick windows while serving.
func (b *Ball) Visible() bool {
	return b.counter == 0 || (b.counter/blinkPeriod)%2 == 1
}

// Advance moves the ball one tick, or counts down the serve delay.
func (b *Ball) Advance(fieldW float64) {
	if b.counter > 0 {
		b.counter--
		return
	}
	b.X = core.ClampF(b.X+b.vx, BallRadius, fieldW-BallRadius)
	b.Y += b.vy
}

// SetAngle normalizes angle and bounds it away from horizontal.
func (b *Ball) SetAngle(angle float64) {
	a := core.NormalizeAngle(angle)
	b.angle = core.BoundAngle(a, core.InUpperHalf(a), Bound)
	b.findVector()
}

// RandomizeAngle picks a serve-biased random direction: mostly vertical,
// toward either paddle with equal probability.
func (b *Ball) RandomizeAngle(rng *rand.Rand) {
	b.SetAngle(math.Pi/2 + float64(rng.Intn(2))*math.Pi + math.Pi/2*rng.NormFloat64())
}

// BounceOffWall reverses the horizontal direction.
func (b *Ball) BounceOffWall() {
	b.SetAngle(3*math.Pi - b.angle)
}

// BounceOffPaddle reverses the vertical direction. When salted, the new
// angle leans toward the side of the paddle the ball struck.
func (b *Ball) BounceOffPaddle(p *Paddle, salted bool) {
	var angle float64
	if b.angle >= math.Pi {
		angle = 4*math.Pi - b.angle
	} else {
		angle = 2*math.Pi - b.angle
	}
	angle = math.Mod(angle, core.TwoPi)

	if salted {
		angle = b.salt(angle, p)
	}
	b.SetAngle(angle)
}

// salt perturbs angle by how far from the paddle centre the ball landed.
// A hit a quarter paddle width off centre turns the angle by a full Salt.
func (b *Ball) salt(angle float64, p *Paddle) float64 {
	reach := p.Width() / 4
	if reach <= 0 {
		return angle
	}

	var change float64
	if b.GoingUp() {
		change = Salt * ((p.CenterX() - b.X) / reach)
	} else {
		change = Salt * ((b.X - p.CenterX()) / reach)
	}
	return core.BoundAngleAround(angle, change, Bound)
}
