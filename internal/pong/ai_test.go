package pong

import (
	"math"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyPredictive, false},
		{"predictive", StrategyPredictive, false},
		{"Exact", StrategyExact, false},
		{" follow ", StrategyFollow, false},
		{"psychic", StrategyPredictive, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseStrategy(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseStrategy(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseStrategy(%q) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}

func testAI(s Strategy) *AI {
	return &AI{Strategy: s, Field: Field{Width: testWidth, Height: testHeight}, Seed: 1}
}

func TestFollowStrategy(t *testing.T) {
	_, red, blue := testField(nil)
	red.SetHandicap(4)
	b := NewBall(250, 200, BallSpeed, 3*math.Pi/2)

	testAI(StrategyFollow).Steer(red, blue, b, 0)

	if red.Destination != 250 {
		t.Errorf("Destination = %f, expected 250", red.Destination)
	}
	if red.CenterX() != 150+PaddleSpeed-4 {
		t.Errorf("CenterX() = %f, expected a bounded step to %f", red.CenterX(), 150+PaddleSpeed-4)
	}
}

func TestExactStrategy(t *testing.T) {
	_, red, blue := testField(nil)
	b := NewBall(250, 200, BallSpeed, 3*math.Pi/2)

	testAI(StrategyExact).Steer(red, blue, b, 0)

	if red.CenterX() != 250 {
		t.Errorf("CenterX() = %f, expected 250", red.CenterX())
	}
}

func TestPredictiveZeroVerticalVelocity(t *testing.T) {
	_, red, blue := testField(nil)
	red.SetDestination(123)
	b := NewBall(250, 200, 0, 3*math.Pi/2)

	testAI(StrategyPredictive).Steer(red, blue, b, 0)

	if red.Destination != 123 {
		t.Errorf("Destination = %f, expected unchanged 123", red.Destination)
	}
	if red.CenterX() != 150 {
		t.Errorf("CenterX() = %f, expected no movement", red.CenterX())
	}
}

func TestPredictiveServingTargetsCentre(t *testing.T) {
	_, red, blue := testField(nil)
	red.SetPosition(40)
	red.SetDestination(40)
	b := NewBall(250, 250, BallSpeed, 3*math.Pi/2)
	b.Serve()

	testAI(StrategyPredictive).Steer(red, blue, b, 0)

	if red.Destination != testWidth/2 {
		t.Errorf("Destination = %f, expected centre %f", red.Destination, testWidth/2)
	}
}

func TestPredictiveStaysFinite(t *testing.T) {
	ai := testAI(StrategyPredictive)
	for a := 0.0; a < 2*math.Pi; a += 0.1 {
		for _, x := range []float64{BallRadius, 150, testWidth - BallRadius} {
			_, red, blue := testField(nil)
			b := NewBall(x, 250, BallSpeed, a)

			ai.Steer(red, blue, b, 123456)
			ai.Steer(blue, red, b, 123456)

			for _, p := range []*Paddle{red, blue} {
				if !finite(p.Destination) || p.Destination < 0 || p.Destination > testWidth {
					t.Fatalf("angle %f x %f: destination %f outside field", a, x, p.Destination)
				}
			}
		}
	}
}

func TestNoiseDeterministicAndBounded(t *testing.T) {
	ai := testAI(StrategyPredictive)
	_, red, _ := testField(nil)
	hw := red.Width() / 2

	for a := 0.5; a < 6; a += 0.25 {
		b := NewBall(150, 250, BallSpeed, a)
		for _, ms := range []int64{0, 9999, 10000, 55000} {
			n1 := ai.noise(red, b, ms)
			n2 := ai.noise(red, b, ms)
			if n1 != n2 {
				t.Fatalf("noise not deterministic: %f vs %f", n1, n2)
			}
			if n1 < -hw+hw/10 || n1 >= hw-hw/10 {
				t.Fatalf("noise %f outside [%f, %f)", n1, -hw+hw/10, hw-hw/10)
			}
		}
	}

	b := NewBall(150, 250, BallSpeed, 1)
	if ai.noise(red, b, 0) != ai.noise(red, b, noiseBucket-1) {
		t.Error("noise changed within one time bucket")
	}
}

func TestPredictXDirect(t *testing.T) {
	_, red, blue := testField(nil)
	b := NewBall(150, 250, BallSpeed, math.Pi/2+0.2)

	x, ok := PredictX(b, blue, red, Field{Width: testWidth, Height: testHeight})
	if !ok {
		t.Fatal("PredictX() not ok")
	}

	want := 150 + (blue.CenterY()-250)/b.VY()*b.VX()
	if math.Abs(x-want) > 1e-9 {
		t.Errorf("PredictX() = %f, expected %f", x, want)
	}
}

func TestPredictXZeroVertical(t *testing.T) {
	_, red, blue := testField(nil)
	b := NewBall(150, 250, 0, math.Pi/2)

	if _, ok := PredictX(b, blue, red, Field{Width: testWidth, Height: testHeight}); ok {
		t.Error("PredictX() ok with vy == 0, expected degenerate")
	}
}

// crossLine advances b through the resolver until it crosses lineY and
// returns the interpolated crossing x. track, if set, is centred under the
// ball every tick so it returns the ball.
func crossLine(t *testing.T, b *Ball, r *Resolver, red, blue, track *Paddle, lineY float64) float64 {
	t.Helper()
	for i := 0; i < 10000; i++ {
		if track != nil {
			track.SetPosition(b.X)
		}
		px, py := b.X, b.Y
		b.Advance(r.Width)
		r.Resolve(b, red, blue, px, py)
		if (py < lineY) != (b.Y < lineY) {
			return crossingX(px, py, b.X, b.Y, lineY)
		}
	}
	t.Fatal("ball never reached the paddle line")
	return 0
}

func TestPredictXMatchesSimulationIncoming(t *testing.T) {
	field := Field{Width: testWidth, Height: testHeight}

	for a := Bound + 0.01; a < math.Pi-Bound; a += 0.1 {
		for _, x := range []float64{40, 150, 260} {
			r, red, blue := testField(nil)
			// Paddles out of the way so only walls act on the ball
			red.SetPosition(-1000)
			blue.SetPosition(-1000)

			b := NewBall(x, 250, BallSpeed, a)
			predicted, ok := PredictX(b, blue, red, field)
			if !ok {
				t.Fatalf("angle %f x %f: PredictX() not ok", a, x)
			}

			actual := crossLine(t, b, r, red, blue, nil, blue.CenterY())
			if math.Abs(predicted-actual) > 16 {
				t.Errorf("angle %f x %f: predicted %f, simulated %f", a, x, predicted, actual)
			}
		}
	}
}

func TestPredictXMatchesSimulationOutgoing(t *testing.T) {
	field := Field{Width: testWidth, Height: testHeight}

	for a := 3*math.Pi/2 - 0.5; a <= 3*math.Pi/2+0.5; a += 0.1 {
		for _, x := range []float64{60, 150, 240} {
			r, red, blue := testField(nil)
			blue.SetPosition(-1000)

			b := NewBall(x, 250, BallSpeed, a)
			predicted, ok := PredictX(b, blue, red, field)
			if !ok {
				t.Fatalf("angle %f x %f: PredictX() not ok", a, x)
			}

			// Red tracks and returns the ball
			actual := crossLine(t, b, r, red, blue, red, blue.CenterY())
			if math.Abs(predicted-actual) > 30 {
				t.Errorf("angle %f x %f: predicted %f, simulated %f", a, x, predicted, actual)
			}
		}
	}
}
