package pong

import (
	"math"
	"testing"
)

func TestMoveTowardScenario(t *testing.T) {
	p := NewPaddle(SideBlue, 100, 400)

	p.MoveToward(200, 10)
	if p.CenterX() != 110 {
		t.Fatalf("CenterX() = %f after one step, expected 110", p.CenterX())
	}

	for i := 0; i < 9; i++ {
		p.MoveToward(200, 10)
	}
	if p.CenterX() != 200 {
		t.Fatalf("CenterX() = %f after ten steps, expected 200", p.CenterX())
	}

	for i := 0; i < 5; i++ {
		p.MoveToward(200, 10)
		if p.CenterX() != 200 {
			t.Fatalf("CenterX() = %f after reaching destination, expected 200", p.CenterX())
		}
	}
}

func TestMoveTowardNeverOvershoots(t *testing.T) {
	tests := []struct {
		name          string
		start, dest   float64
		step, wantPos float64
	}{
		{"right partial", 100, 150, 10, 110},
		{"left partial", 100, 50, 10, 90},
		{"right arrives", 100, 104, 10, 104},
		{"left arrives", 100, 97, 10, 97},
		{"zero step", 100, 200, 0, 100},
		{"negative step", 100, 200, -5, 100},
		{"beyond field", 100, -500, 10, 90},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPaddle(SideRed, tc.start, 50)
			before := math.Abs(p.CenterX() - tc.dest)
			p.MoveToward(tc.dest, tc.step)
			after := math.Abs(p.CenterX() - tc.dest)

			if p.CenterX() != tc.wantPos {
				t.Errorf("CenterX() = %f, expected %f", p.CenterX(), tc.wantPos)
			}
			if after > before {
				t.Errorf("distance grew from %f to %f", before, after)
			}
		})
	}
}

func TestPaddleGeometryConstant(t *testing.T) {
	p := NewPaddle(SideBlue, 150, 400)
	for _, dest := range []float64{0, 300, -100, 1000, 150} {
		p.MoveToward(dest, 37)
		if p.Width() != PaddleWidth || p.Rect().H != PaddleThickness {
			t.Fatalf("paddle size changed to %fx%f", p.Width(), p.Rect().H)
		}
	}
	if p.Top() != 400 || p.Bottom() != 400+PaddleThickness {
		t.Errorf("Top()/Bottom() = %f/%f, expected 400/%f", p.Top(), p.Bottom(), 400+PaddleThickness)
	}
}

func TestEffectiveSpeed(t *testing.T) {
	p := NewPaddle(SideRed, 150, 50)
	p.SetHandicap(4)

	if got := p.EffectiveSpeed(); got != PaddleSpeed-4 {
		t.Errorf("EffectiveSpeed() = %f for computer, expected %f", got, PaddleSpeed-4)
	}

	p.Player = true
	if got := p.EffectiveSpeed(); got != PaddleSpeed*HumanSpeedFactor {
		t.Errorf("EffectiveSpeed() = %f for human, expected %f", got, PaddleSpeed*HumanSpeedFactor)
	}
}

func TestSetHandicapClamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-3, 0},
		{0, 0},
		{4, 4},
		{20, PaddleSpeed - 1},
	}

	for _, tc := range tests {
		p := NewPaddle(SideRed, 150, 50)
		p.SetHandicap(tc.in)
		if p.Handicap() != tc.want {
			t.Errorf("SetHandicap(%f) -> %f, expected %f", tc.in, p.Handicap(), tc.want)
		}
	}
}

func TestLivesFloorAtZero(t *testing.T) {
	p := NewPaddle(SideBlue, 150, 400)
	p.SetLives(2)

	p.LoseLife()
	if !p.Alive() || p.Lives() != 1 {
		t.Fatalf("Lives() = %d after one miss, expected 1", p.Lives())
	}

	p.LoseLife()
	p.LoseLife()
	if p.Alive() || p.Lives() != 0 {
		t.Errorf("Lives() = %d, expected 0", p.Lives())
	}

	p.SetLives(-4)
	if p.Lives() != 0 {
		t.Errorf("SetLives(-4) -> %d, expected 0", p.Lives())
	}
}

func TestSideString(t *testing.T) {
	tests := []struct {
		side Side
		want string
	}{
		{SideRed, "red"},
		{SideBlue, "blue"},
		{SideNone, "none"},
	}
	for _, tc := range tests {
		if got := tc.side.String(); got != tc.want {
			t.Errorf("Side(%d).String() = %q, expected %q", tc.side, got, tc.want)
		}
	}
}
