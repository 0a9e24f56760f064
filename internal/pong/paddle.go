package pong

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Paddle tuning
const (
	PaddleWidth      = 80.0
	PaddleThickness  = 10.0
	PaddleSpeed      = 10.0
	HumanSpeedFactor = 2.0 // Human paddles move this many times faster than the base speed
	StartingLives    = 1
)

// Side identifies one of the two paddles.
type Side int

const (
	SideNone Side = iota
	SideRed       // Top paddle
	SideBlue      // Bottom paddle
)

// String returns the paddle colour name.
func (s Side) String() string {
	switch s {
	case SideRed:
		return "red"
	case SideBlue:
		return "blue"
	default:
		return "none"
	}
}

// Paddle is a horizontal paddle that steers toward a destination x.
type Paddle struct {
	Side        Side
	Player      bool    // Human-controlled
	Destination float64 // x the paddle steers toward; may lie outside the field

	rect     core.RectF
	touch    core.RectF
	speed    float64
	handicap float64
	lives    int
}

// NewPaddle creates a paddle centred at centerX with its top edge at top.
func NewPaddle(side Side, centerX, top float64) *Paddle {
	return &Paddle{
		Side:        side,
		Destination: centerX,
		rect:        core.NewRectF(centerX-PaddleWidth/2, top, PaddleWidth, PaddleThickness),
		speed:       PaddleSpeed,
		lives:       StartingLives,
	}
}

// MoveToward steps the paddle centre toward dest by at most maxStep.
// It never overshoots.
func (p *Paddle) MoveToward(dest, maxStep float64) {
	dx := dest - p.rect.CenterX()
	step := math.Min(math.Abs(dx), math.Max(0, maxStep))
	if dx < 0 {
		step = -step
	}
	p.rect = p.rect.Offset(step, 0)
}

// Move steers toward Destination at the paddle's effective speed.
func (p *Paddle) Move() {
	p.MoveToward(p.Destination, p.EffectiveSpeed())
}

// EffectiveSpeed is speed minus handicap for the computer and a multiple of
// speed for a human.
func (p *Paddle) EffectiveSpeed() float64 {
	if p.Player {
		return p.speed * HumanSpeedFactor
	}
	return p.speed - p.handicap
}

// SetDestination sets the x the paddle steers toward.
func (p *Paddle) SetDestination(x float64) {
	p.Destination = x
}

// SetPosition centres the paddle on x immediately.
func (p *Paddle) SetPosition(x float64) {
	p.rect.X = x - p.rect.W/2
}

// SetSpeed changes the base step; non-positive values are ignored.
func (p *Paddle) SetSpeed(s float64) {
	if s > 0 {
		p.speed = s
	}
}

// SetHandicap sets the computer slowdown, clamped to [0, speed-1].
func (p *Paddle) SetHandicap(h float64) {
	p.handicap = core.ClampF(h, 0, math.Max(0, p.speed-1))
}

// Handicap returns the computer slowdown.
func (p *Paddle) Handicap() float64 {
	return p.handicap
}

// SetTouchZone sets the input area that controls this paddle.
func (p *Paddle) SetTouchZone(r core.RectF) {
	p.touch = r
}

// TouchZone returns the input area.
func (p *Paddle) TouchZone() core.RectF {
	return p.touch
}

// InTouchZone reports whether a pointer at (x, y) controls this paddle.
func (p *Paddle) InTouchZone(x, y float64) bool {
	return p.touch.Contains(x, y)
}

// SetLives sets the life counter, floored at 0.
func (p *Paddle) SetLives(n int) {
	p.lives = max(0, n)
}

// LoseLife removes one life, floored at 0.
func (p *Paddle) LoseLife() {
	p.lives = max(0, p.lives-1)
}

// Lives returns the remaining lives.
func (p *Paddle) Lives() int {
	return p.lives
}

// Alive reports whether the paddle has lives left.
func (p *Paddle) Alive() bool {
	return p.lives > 0
}

// Rect returns the paddle bounds.
func (p *Paddle) Rect() core.RectF { return p.rect }

func (p *Paddle) Left() float64      { return p.rect.X }
func (p *Paddle) Right() float64     { return p.rect.Right() }
func (p *Paddle) Top() float64       { return p.rect.Y }
func (p *Paddle) Bottom() float64    { return p.rect.Bottom() }
func (p *Paddle) CenterX() float64   { return p.rect.CenterX() }
func (p *Paddle) CenterY() float64   { return p.rect.CenterY() }
func (p *Paddle) Width() float64     { return p.rect.W }
func (p *Paddle) Thickness() float64 { return p.rect.H }
