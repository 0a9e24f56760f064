package pong

// BallSnapshot is the render view of the ball.
type BallSnapshot struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Radius  float64 `json:"radius"`
	Visible bool    `json:"visible"`
	Serving bool    `json:"serving"`
}

// PaddleSnapshot is the render view of one paddle.
type PaddleSnapshot struct {
	Side   string  `json:"side"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Lives  int     `json:"lives"`
	Player bool    `json:"player"`
}

// Snapshot is a read-only copy of a match for renderers and spectators.
// Values carry no references back into the match.
type Snapshot struct {
	Tick    int64          `json:"tick"`
	Width   float64        `json:"width"`
	Height  float64        `json:"height"`
	Ball    BallSnapshot   `json:"ball"`
	Red     PaddleSnapshot `json:"red"`
	Blue    PaddleSnapshot `json:"blue"`
	State   string         `json:"state"`
	Running bool           `json:"running"`
	Winner  string         `json:"winner,omitempty"`

	PauseLeft float64 `json:"pause_left"`
	PauseTop  float64 `json:"pause_top"`
	PauseSize float64 `json:"pause_size"`
}

// Snapshot captures the current match state.
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		Tick:   m.ticks,
		Width:  m.width,
		Height: m.height,
		Ball: BallSnapshot{
			X:       m.ball.X,
			Y:       m.ball.Y,
			Radius:  BallRadius,
			Visible: m.ball.Visible(),
			Serving: m.ball.IsServing(),
		},
		Red:       paddleSnapshot(m.red),
		Blue:      paddleSnapshot(m.blue),
		State:     m.state.String(),
		Running:   m.GameRunning(),
		PauseLeft: m.pauseZone.X,
		PauseTop:  m.pauseZone.Y,
		PauseSize: m.pauseZone.W,
	}
	if w := m.Winner(); w != SideNone {
		s.Winner = w.String()
	}
	return s
}

func paddleSnapshot(p *Paddle) PaddleSnapshot {
	r := p.Rect()
	return PaddleSnapshot{
		Side:   p.Side.String(),
		Left:   r.X,
		Top:    r.Y,
		Width:  r.W,
		Height: r.H,
		Lives:  p.Lives(),
		Player: p.Player,
	}
}
