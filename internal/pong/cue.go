package pong

// Cue is a discrete sound event emitted by the simulation.
type Cue int

const (
	CueWallHit Cue = iota
	CuePaddleHit
	CueMiss
	CueWin
)

// String returns a short name for the cue.
func (c Cue) String() string {
	switch c {
	case CueWallHit:
		return "wall"
	case CuePaddleHit:
		return "paddle"
	case CueMiss:
		return "miss"
	case CueWin:
		return "win"
	default:
		return "unknown"
	}
}

// CueSink receives cues. Implementations must not block the tick.
type CueSink interface {
	Play(c Cue)
}

// CueFunc adapts a function to CueSink.
type CueFunc func(Cue)

// Play calls f(c).
func (f CueFunc) Play(c Cue) {
	f(c)
}

type discardSink struct{}

func (discardSink) Play(Cue) {}
