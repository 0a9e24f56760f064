package pong

import (
	"math"
	"math/rand"
	"testing"
)

func inBounds(angle float64) bool {
	const eps = 1e-9
	lower := angle >= Bound-eps && angle <= math.Pi-Bound+eps
	upper := angle >= math.Pi+Bound-eps && angle <= 2*math.Pi-Bound+eps
	return lower || upper
}

func TestSetAngleStaysBounded(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
	}{
		{"zero", 0},
		{"pi", math.Pi},
		{"just below 2pi", 2*math.Pi - 1e-6},
		{"just above pi", math.Pi + 1e-6},
		{"negative", -0.1},
		{"large", 100},
		{"straight down", math.Pi / 2},
		{"straight up", 3 * math.Pi / 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBall(0, 0, BallSpeed, tc.angle)
			if !inBounds(b.Angle()) {
				t.Errorf("SetAngle(%f) = %f, expected within bound of vertical", tc.angle, b.Angle())
			}
		})
	}

	rng := rand.New(rand.NewSource(7))
	b := NewBall(0, 0, BallSpeed, 0)
	for i := 0; i < 1000; i++ {
		a := (rng.Float64() - 0.5) * 40
		b.SetAngle(a)
		if !inBounds(b.Angle()) {
			t.Fatalf("SetAngle(%f) = %f, expected within bound of vertical", a, b.Angle())
		}
	}
}

func TestSetAnglePanicsOnNaN(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("SetAngle(NaN) should panic")
		}
	}()
	b := NewBall(0, 0, BallSpeed, math.Pi/2)
	b.SetAngle(math.NaN())
}

func TestRandomizeAngleBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := NewBall(0, 0, BallSpeed, math.Pi/2)

	up, down := 0, 0
	for i := 0; i < 500; i++ {
		b.RandomizeAngle(rng)
		if !inBounds(b.Angle()) {
			t.Fatalf("RandomizeAngle produced %f", b.Angle())
		}
		if b.GoingUp() {
			up++
		} else {
			down++
		}
	}
	if up == 0 || down == 0 {
		t.Errorf("RandomizeAngle served only one way: up=%d down=%d", up, down)
	}
}

func TestBounceOffWallInvolution(t *testing.T) {
	for a := 0.0; a < 2*math.Pi; a += 0.05 {
		b := NewBall(0, 0, BallSpeed, a)
		start := b.Angle()

		b.BounceOffWall()
		b.BounceOffWall()

		if math.Abs(b.Angle()-start) > 1e-9 {
			t.Errorf("two wall bounces from %f gave %f", start, b.Angle())
		}
	}
}

func TestTwoWallBouncesAlternateHorizontal(t *testing.T) {
	angles := []float64{math.Pi/2 + 0.4, math.Pi/2 - 0.4, 3*math.Pi/2 + 0.4, 3*math.Pi/2 - 0.4}

	for _, a := range angles {
		b := NewBall(0, 0, BallSpeed, a)
		left := b.GoingLeft()
		up := b.GoingUp()
		vySign := math.Signbit(b.VY())

		for i := 1; i <= 2; i++ {
			b.BounceOffWall()
			wantLeft := left
			if i%2 == 1 {
				wantLeft = !left
			}
			if b.GoingLeft() != wantLeft {
				t.Errorf("angle %f bounce %d: GoingLeft() = %v, expected %v", a, i, b.GoingLeft(), wantLeft)
			}
			if b.GoingUp() != up || math.Signbit(b.VY()) != vySign {
				t.Errorf("angle %f bounce %d: vertical direction changed", a, i)
			}
		}
	}
}

func TestAdvanceClampsX(t *testing.T) {
	const width = 300.0

	tests := []struct {
		name  string
		x     float64
		angle float64
	}{
		{"left wall", BallRadius + 1, math.Pi/2 + 1.2},
		{"right wall", width - BallRadius - 1, math.Pi/2 - 1.2},
		{"middle", width / 2, math.Pi / 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBall(tc.x, 250, 12, tc.angle)
			for i := 0; i < 5; i++ {
				b.Advance(width)
				if b.X < BallRadius || b.X > width-BallRadius {
					t.Fatalf("Advance() x = %f, expected within [%f, %f]", b.X, BallRadius, width-BallRadius)
				}
			}
		})
	}
}

func TestServeScenario(t *testing.T) {
	const width = 300.0

	b := NewBall(150, 250, 4, math.Pi/2+Bound)
	b.Serve()

	for i := 0; i < ServeDelay; i++ {
		if !b.IsServing() {
			t.Fatalf("IsServing() = false after %d ticks, expected true", i)
		}
		b.Advance(width)
		if b.X != 150 || b.Y != 250 {
			t.Fatalf("ball moved while serving: (%f, %f)", b.X, b.Y)
		}
	}

	if b.IsServing() {
		t.Fatal("IsServing() = true after the serve delay")
	}

	b.Advance(width)
	if b.VY() <= 0 || b.Y <= 250 {
		t.Errorf("VY() = %f, expected ball moving toward blue", b.VY())
	}
	if b.VX() == 0 || math.Abs(b.VX()) >= math.Abs(b.VY()) {
		t.Errorf("VX() = %f, expected small but nonzero", b.VX())
	}
}

func TestBallBlink(t *testing.T) {
	b := NewBall(0, 0, BallSpeed, math.Pi/2)
	if !b.Visible() {
		t.Error("Visible() = false for a ball in play")
	}

	b.Serve()
	if b.Visible() {
		t.Error("Visible() = true on the first serve tick, expected hidden")
	}

	b.Advance(100)
	if !b.Visible() {
		t.Error("Visible() = false one tick into the serve, expected shown")
	}
}

func TestBounceOffPaddle(t *testing.T) {
	p := NewPaddle(SideBlue, 150, 400)

	t.Run("unsalted reverses vertical", func(t *testing.T) {
		b := NewBall(150, 400, BallSpeed, math.Pi/2+0.3)
		vx := b.VX()
		b.BounceOffPaddle(p, false)

		want := 3*math.Pi/2 - 0.3
		if math.Abs(b.Angle()-want) > 1e-9 {
			t.Errorf("Angle() = %f, expected %f", b.Angle(), want)
		}
		if !b.GoingUp() {
			t.Error("ball should be going up after a blue paddle bounce")
		}
		if math.Signbit(b.VX()) != math.Signbit(vx) {
			t.Error("paddle bounce changed horizontal direction")
		}
	})

	t.Run("salted centre hit unchanged", func(t *testing.T) {
		salted := NewBall(150, 400, BallSpeed, math.Pi/2+0.3)
		plain := NewBall(150, 400, BallSpeed, math.Pi/2+0.3)
		salted.BounceOffPaddle(p, true)
		plain.BounceOffPaddle(p, false)
		if math.Abs(salted.Angle()-plain.Angle()) > 1e-9 {
			t.Errorf("centre hit salted to %f, expected %f", salted.Angle(), plain.Angle())
		}
	})

	t.Run("salted quarter hit turns by a full salt", func(t *testing.T) {
		b := NewBall(p.CenterX()+p.Width()/4, 400, BallSpeed, math.Pi/2+0.3)
		b.BounceOffPaddle(p, true)

		want := 3*math.Pi/2 - 0.3 + Salt
		if math.Abs(b.Angle()-want) > 1e-9 {
			t.Errorf("Angle() = %f, expected %f", b.Angle(), want)
		}
	})

	t.Run("salted edge hit leans outward", func(t *testing.T) {
		b := NewBall(p.Right(), 400, BallSpeed, math.Pi/2+0.3)
		b.BounceOffPaddle(p, true)

		want := 2*math.Pi - Bound
		if math.Abs(b.Angle()-want) > 1e-9 {
			t.Errorf("Angle() = %f, expected %f", b.Angle(), want)
		}
		if b.VX() <= 0 {
			t.Errorf("VX() = %f, expected the ball sent right", b.VX())
		}
		if !inBounds(b.Angle()) {
			t.Errorf("Angle() = %f out of bounds", b.Angle())
		}
	})

	t.Run("salted red edge clamps to bound", func(t *testing.T) {
		red := NewPaddle(SideRed, 150, 60)
		b := NewBall(red.Right(), 70, BallSpeed, 3*math.Pi/2+0.3)
		b.BounceOffPaddle(red, true)

		if math.Abs(b.Angle()-Bound) > 1e-9 {
			t.Errorf("Angle() = %f, expected %f", b.Angle(), Bound)
		}
		if b.GoingUp() || b.VX() <= 0 {
			t.Error("ball should leave a red right-edge hit going down and right")
		}
	})
}

func TestSetSpeedKeepsDirection(t *testing.T) {
	b := NewBall(0, 0, BallSpeed, math.Pi/3)
	b.SetSpeed(8)

	if math.Abs(math.Hypot(b.VX(), b.VY())-8) > 1e-9 {
		t.Errorf("|v| = %f, expected 8", math.Hypot(b.VX(), b.VY()))
	}
	if math.Abs(b.Angle()-math.Pi/3) > 1e-9 {
		t.Errorf("Angle() = %f, expected %f", b.Angle(), math.Pi/3)
	}
}
