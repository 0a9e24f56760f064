package pong

import (
	"math"
	"testing"
)

const (
	testWidth  = 300.0
	testHeight = 500.0
)

// testField returns a resolver and two centred paddles laid out like a
// 300x500 match.
func testField(cues *[]Cue) (*Resolver, *Paddle, *Paddle) {
	r := &Resolver{Width: testWidth, Height: testHeight}
	if cues != nil {
		r.Cues = CueFunc(func(c Cue) { *cues = append(*cues, c) })
	}
	red := NewPaddle(SideRed, testWidth/2, testHeight/8+paddlePadding)
	blue := NewPaddle(SideBlue, testWidth/2, 7*testHeight/8-paddlePadding-PaddleThickness)
	red.SetLives(3)
	blue.SetLives(3)
	return r, red, blue
}

func TestResolveWall(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		angle float64
		wantX float64
	}{
		{"left", BallRadius, math.Pi/2 + 0.5, BallRadius + 1},
		{"right", testWidth - BallRadius, math.Pi/2 - 0.5, testWidth - BallRadius - 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cues []Cue
			r, red, blue := testField(&cues)
			b := NewBall(tc.x, 250, BallSpeed, tc.angle)
			wasLeft := b.GoingLeft()

			c := r.Resolve(b, red, blue, tc.x, 250)

			if !c.Wall {
				t.Fatal("Resolve() did not report a wall hit")
			}
			if b.X != tc.wantX {
				t.Errorf("x = %f after nudge, expected %f", b.X, tc.wantX)
			}
			if b.GoingLeft() == wasLeft {
				t.Error("wall bounce did not reverse horizontal direction")
			}
			if len(cues) != 1 || cues[0] != CueWallHit {
				t.Errorf("cues = %v, expected [wall]", cues)
			}
		})
	}
}

func TestResolveTopPaddle(t *testing.T) {
	var cues []Cue
	r, red, blue := testField(&cues)

	// Moving straight up fast enough to pass the paddle in one tick
	b := NewBall(150, 40, 60, 3*math.Pi/2)
	c := r.Resolve(b, red, blue, 150, 100)

	if c.Paddle != SideRed {
		t.Fatalf("Paddle = %v, expected red", c.Paddle)
	}
	if b.Y != red.Bottom()+BallRadius {
		t.Errorf("y = %f, expected snapped to %f", b.Y, red.Bottom()+BallRadius)
	}
	if math.Abs(b.X-150) > 1e-9 {
		t.Errorf("x = %f, expected 150", b.X)
	}
	if b.GoingUp() {
		t.Error("ball still going up after red bounce")
	}
	if b.Speed != 61 {
		t.Errorf("Speed = %f, expected ratchet to 61", b.Speed)
	}
	if len(cues) != 1 || cues[0] != CuePaddleHit {
		t.Errorf("cues = %v, expected [paddle]", cues)
	}
}

func TestResolveBottomPaddle(t *testing.T) {
	r, red, blue := testField(nil)

	b := NewBall(150, 430, BallSpeed, math.Pi/2)
	c := r.Resolve(b, red, blue, 150, 410)

	if c.Paddle != SideBlue {
		t.Fatalf("Paddle = %v, expected blue", c.Paddle)
	}
	if b.Y != blue.Top()-BallRadius {
		t.Errorf("y = %f, expected snapped to %f", b.Y, blue.Top()-BallRadius)
	}
	if !b.GoingUp() {
		t.Error("ball not going up after blue bounce")
	}
	if b.Speed != BallSpeed+SpeedIncrement {
		t.Errorf("Speed = %f, expected %f", b.Speed, BallSpeed+SpeedIncrement)
	}
}

func TestResolveLeadLandsOnEdge(t *testing.T) {
	tests := []struct {
		name  string
		side  Side
		angle float64
		edge  func(red, blue *Paddle) float64
		// dir is the ball's vertical travel per tick
		dir float64
	}{
		{"red", SideRed, 3 * math.Pi / 2, func(red, _ *Paddle) float64 { return red.Bottom() + BallRadius }, -BallSpeed},
		{"blue", SideBlue, math.Pi / 2, func(_, blue *Paddle) float64 { return blue.Top() - BallRadius }, BallSpeed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, red, blue := testField(nil)
			contact := tc.edge(red, blue)

			// First tick ends with the leading edge exactly on the paddle.
			b := NewBall(150, contact, BallSpeed, tc.angle)
			if c := r.Resolve(b, red, blue, 150, contact-tc.dir); c.Paddle != SideNone {
				t.Fatalf("Paddle = %v on touching, expected none", c.Paddle)
			}

			// The next tick starts on the edge and must still count.
			b.X, b.Y = 150, contact+tc.dir
			c := r.Resolve(b, red, blue, 150, contact)
			if c.Paddle != tc.side {
				t.Fatalf("Paddle = %v, expected %v", c.Paddle, tc.side)
			}
			if b.Y != contact {
				t.Errorf("y = %f, expected snapped to %f", b.Y, contact)
			}
		})
	}
}

func TestResolveSweptCrossingX(t *testing.T) {
	r, red, blue := testField(nil)

	// Diagonal path crossing the blue edge between x=130 and x=170
	edge := blue.Top()
	py := edge - BallRadius - 10
	y := edge - BallRadius + 10
	b := NewBall(170, y, BallSpeed, math.Pi/4)
	r.Resolve(b, red, blue, 130, py)

	if math.Abs(b.X-150) > 1e-9 {
		t.Errorf("x = %f, expected interpolated 150", b.X)
	}
}

func TestResolvePaddleMisses(t *testing.T) {
	tests := []struct {
		name   string
		x, px  float64
		y, py  float64
		angle  float64
		reason string
	}{
		{"outside span", 20, 20, 430, 410, math.Pi / 2, "ball passes left of blue"},
		{"wrong direction", 150, 150, 70, 90, math.Pi / 2, "ball going down near red"},
		{"not crossing", 150, 150, 300, 290, math.Pi / 2, "ball far from both paddles"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, red, blue := testField(nil)
			b := NewBall(tc.x, tc.y, BallSpeed, tc.angle)
			c := r.Resolve(b, red, blue, tc.px, tc.py)
			if c.Paddle != SideNone {
				t.Errorf("Paddle = %v, expected none: %s", c.Paddle, tc.reason)
			}
		})
	}
}

func TestResolveWallAndPaddleSameTick(t *testing.T) {
	r, red, blue := testField(nil)
	red.SetPosition(40)

	b := NewBall(BallRadius, 70, BallSpeed, 3*math.Pi/2-0.2)
	c := r.Resolve(b, red, blue, 8, 90)

	if !c.Wall {
		t.Error("expected a wall hit")
	}
	if c.Paddle != SideRed {
		t.Errorf("Paddle = %v, expected red", c.Paddle)
	}
	if b.GoingUp() || b.GoingLeft() {
		t.Error("ball should leave going down and right")
	}
}

func TestResolveMiss(t *testing.T) {
	tests := []struct {
		name     string
		y        float64
		lives    int
		wantSide Side
		wantCue  Cue
	}{
		{"past blue", testHeight, 3, SideBlue, CueMiss},
		{"past red", 0, 3, SideRed, CueMiss},
		{"blue final life", testHeight + 5, 1, SideBlue, CueWin},
		{"red final life", -5, 1, SideRed, CueWin},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cues []Cue
			r, red, blue := testField(&cues)
			red.SetLives(tc.lives)
			blue.SetLives(tc.lives)

			b := NewBall(150, tc.y, BallSpeed, math.Pi/2)
			c := r.Resolve(b, red, blue, 150, tc.y)

			if c.Missed != tc.wantSide {
				t.Fatalf("Missed = %v, expected %v", c.Missed, tc.wantSide)
			}
			loser, other := blue, red
			if tc.wantSide == SideRed {
				loser, other = red, blue
			}
			if loser.Lives() != tc.lives-1 {
				t.Errorf("loser lives = %d, expected %d", loser.Lives(), tc.lives-1)
			}
			if other.Lives() != tc.lives {
				t.Errorf("other lives = %d, expected %d", other.Lives(), tc.lives)
			}
			if len(cues) != 1 || cues[0] != tc.wantCue {
				t.Errorf("cues = %v, expected [%v]", cues, tc.wantCue)
			}
		})
	}
}
