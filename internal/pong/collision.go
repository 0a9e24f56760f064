package pong

// SpeedIncrement is added to the ball speed on every paddle hit.
const SpeedIncrement = 1.0

// Collision summarizes what the resolver did during one tick.
type Collision struct {
	Wall   bool
	Paddle Side // Paddle that returned the ball, if any
	Missed Side // Paddle that lost a life, if any
}

// Resolver detects and resolves ball contacts against the walls, both
// paddles and the two goal lines.
type Resolver struct {
	Width, Height float64
	Salted        bool
	Cues          CueSink
}

// Resolve runs once per tick after ball and paddles stepped. px, py is the
// ball position before it moved this tick.
func (r *Resolver) Resolve(ball *Ball, red, blue *Paddle, px, py float64) Collision {
	var c Collision

	if r.wall(ball) {
		c.Wall = true
	}
	if r.topSwept(ball, red, px, py) {
		c.Paddle = SideRed
	}
	if r.bottomSwept(ball, blue, px, py) {
		c.Paddle = SideBlue
	}

	switch {
	case ball.Y >= r.Height:
		c.Missed = SideBlue
		r.miss(blue)
	case ball.Y <= 0:
		c.Missed = SideRed
		r.miss(red)
	}
	return c
}

// wall bounces the ball off a side wall and nudges it back inside so the
// same wall does not trigger again next tick.
func (r *Resolver) wall(ball *Ball) bool {
	if ball.X > BallRadius && ball.X < r.Width-BallRadius {
		return false
	}
	ball.BounceOffWall()
	r.play(CueWallHit)
	if ball.X <= BallRadius {
		ball.X++
	} else {
		ball.X--
	}
	return true
}

// topSwept checks whether the ball's leading edge crossed the red paddle's
// bottom edge between the previous and current position.
func (r *Resolver) topSwept(ball *Ball, p *Paddle, px, py float64) bool {
	if !ball.GoingUp() {
		return false
	}

	edge := p.Bottom()
	lead := ball.Y - BallRadius
	prevLead := py - BallRadius
	if !(lead < edge && prevLead >= edge) {
		return false
	}

	xc := crossingX(px, prevLead, ball.X, lead, edge)
	if xc <= p.Left() || xc >= p.Right() {
		return false
	}

	ball.X = xc
	ball.Y = edge + BallRadius
	r.hit(ball, p)
	return true
}

// bottomSwept is topSwept mirrored for the blue paddle's top edge.
func (r *Resolver) bottomSwept(ball *Ball, p *Paddle, px, py float64) bool {
	if !ball.GoingDown() {
		return false
	}

	edge := p.Top()
	lead := ball.Y + BallRadius
	prevLead := py + BallRadius
	if !(lead > edge && prevLead <= edge) {
		return false
	}

	xc := crossingX(px, prevLead, ball.X, lead, edge)
	if xc <= p.Left() || xc >= p.Right() {
		return false
	}

	ball.X = xc
	ball.Y = edge - BallRadius
	r.hit(ball, p)
	return true
}

// hit bounces the ball off a paddle and ratchets the difficulty.
func (r *Resolver) hit(ball *Ball, p *Paddle) {
	ball.BounceOffPaddle(p, r.Salted)
	ball.SetSpeed(ball.Speed + SpeedIncrement)
	r.play(CuePaddleHit)
}

func (r *Resolver) miss(p *Paddle) {
	p.LoseLife()
	if p.Alive() {
		r.play(CueMiss)
	} else {
		r.play(CueWin)
	}
}

func (r *Resolver) play(c Cue) {
	if r.Cues != nil {
		r.Cues.Play(c)
	}
}

// crossingX interpolates the x where the segment (x0,y0)-(x1,y1) meets y.
// Callers guarantee y0 != y1.
func crossingX(x0, y0, x1, y1, y float64) float64 {
	return x0 + (x1-x0)*(y-y0)/(y1-y0)
}
