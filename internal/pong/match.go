// Package pong implements the two-paddle simulation: ball kinematics, paddle
// motion, swept collision resolution, computer strategies and the
// round/game state machine. It has no terminal or I/O dependencies; the
// platform layer drives it through Tick and feeds it pointer and axis input.
package pong

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Match defaults
const (
	DefaultFPS        = 30
	DefaultLivesBonus = 2
	DefaultHandicap   = 4
	paddlePadding     = 3.0
)

// State is the simulation mode of a match.
type State int

const (
	StateRunning State = iota
	StateStopped       // Paused
	StateTitle         // Idle behind a menu; no simulation
)

// String returns a short name for the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateTitle:
		return "title"
	default:
		return "unknown"
	}
}

// Options configures a match at construction and on every NewGame.
type Options struct {
	BallSpeedBonus  int      // Added to BallSpeed on every serve
	LivesBonus      int      // Lives per paddle beyond StartingLives
	Strategy        Strategy // Computer paddle strategy
	Handicap        int      // Computer speed reduction
	RedIsPlayer     bool
	BlueIsPlayer    bool
	Salt            bool    // Perturb paddle bounces by contact offset
	MultiTouch      bool    // Route every pointer of an event, not just the first
	Attract         bool    // Restart zero-player matches after game over
	FPS             int     // Fixed tick rate
	Seed            int64   // Seeds the serve angles and AI noise
	AxisSensitivity float64 // Destination change per unit of axis input
}

// DefaultOptions returns the classic one-player setup: the human plays blue.
func DefaultOptions() Options {
	return Options{
		LivesBonus:      DefaultLivesBonus,
		Strategy:        StrategyPredictive,
		Handicap:        DefaultHandicap,
		BlueIsPlayer:    true,
		Salt:            true,
		FPS:             DefaultFPS,
		AxisSensitivity: AxisSensitivity,
	}
}

// Normalize clamps out-of-range values to the nearest valid one.
func (o Options) Normalize() Options {
	o.BallSpeedBonus = max(0, o.BallSpeedBonus)
	o.LivesBonus = max(0, o.LivesBonus)
	o.Handicap = core.Clamp(o.Handicap, 0, int(PaddleSpeed)-1)
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.AxisSensitivity <= 0 {
		o.AxisSensitivity = AxisSensitivity
	}
	switch o.Strategy {
	case StrategyPredictive, StrategyExact, StrategyFollow:
	default:
		o.Strategy = StrategyPredictive
	}
	return o
}

// Players returns how many paddles are human-controlled.
func (o Options) Players() int {
	n := 0
	if o.RedIsPlayer {
		n++
	}
	if o.BlueIsPlayer {
		n++
	}
	return n
}

// Match owns one ball and two paddles and runs the round/game state machine.
// It is not safe for concurrent use; the caller serializes ticks and input.
type Match struct {
	width, height float64
	opts          Options

	ball      *Ball
	red, blue *Paddle
	resolver  Resolver
	ai        AI
	points    PointSource
	pauseZone core.RectF

	state     State
	lastState State
	newRound  bool

	frame    time.Duration
	lastTick time.Time
	ticks    int64

	rng   *rand.Rand
	cues  CueSink
	muted bool
}

// NewMatch creates a match on a width×height field and starts a new game.
// cues may be nil.
func NewMatch(width, height float64, opts Options, cues CueSink) (*Match, error) {
	if !(width > 2*BallRadius) || !(height > 4*PaddleThickness) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("pong: invalid field size %vx%v", width, height)
	}
	opts = opts.Normalize()
	if cues == nil {
		cues = discardSink{}
	}

	m := &Match{
		width:     width,
		height:    height,
		opts:      opts,
		state:     StateRunning,
		lastState: StateRunning,
		frame:     time.Second / time.Duration(opts.FPS),
		rng:       rand.New(rand.NewSource(opts.Seed)),
		cues:      cues,
		points:    NewPointSource(opts.MultiTouch),
	}

	m.red = NewPaddle(SideRed, width/2, height/8+paddlePadding)
	m.red.SetTouchZone(core.NewRectF(0, 0, width, height/8))
	m.blue = NewPaddle(SideBlue, width/2, 7*height/8-paddlePadding-PaddleThickness)
	m.blue.SetTouchZone(core.NewRectF(0, 7*height/8, width, height/8))

	half := math.Min(width/4, height/4)
	m.pauseZone = core.NewRectF(width/2-half, height/2-half, 2*half, 2*half)

	m.ball = NewBall(width/2, height/2, BallSpeed, math.Pi/2)
	m.resolver = Resolver{Width: width, Height: height, Salted: opts.Salt, Cues: CueFunc(m.play)}
	m.ai = AI{Strategy: opts.Strategy, Field: Field{Width: width, Height: height}, Seed: opts.Seed}

	m.NewGame()
	return m, nil
}

// Tick runs one simulation step if the match is running and at least one
// frame has passed since the last executed tick. It reports whether a step
// ran.
func (m *Match) Tick(now time.Time) bool {
	if m.opts.Attract && !m.GameRunning() && m.opts.Players() == 0 {
		m.NewGame()
	}
	if !m.GameRunning() || m.state != StateRunning {
		return false
	}
	if !m.lastTick.IsZero() && now.Sub(m.lastTick) < m.frame {
		return false
	}
	m.lastTick = now
	m.Step()
	return true
}

// Step runs one simulation step regardless of state and timing.
func (m *Match) Step() {
	if m.newRound {
		m.serveBall()
		m.newRound = false
	}

	m.movePaddle(m.red, m.blue)
	m.movePaddle(m.blue, m.red)

	px, py := m.ball.X, m.ball.Y
	serving := m.ball.IsServing()
	m.ball.Advance(m.width)

	// Shake loose a ball that stopped making vertical progress
	if !serving && m.ball.Y == py {
		m.ball.RandomizeAngle(m.rng)
	}

	if c := m.resolver.Resolve(m.ball, m.red, m.blue, px, py); c.Missed != SideNone {
		m.newRound = true
	}
	m.ticks++
}

func (m *Match) movePaddle(p, opponent *Paddle) {
	if p.Player {
		p.Move()
		return
	}
	m.ai.Steer(p, opponent, m.ball, m.Elapsed().Milliseconds())
}

// serveBall re-centres the ball at base speed with a fresh angle.
func (m *Match) serveBall() {
	m.ball.X = m.width / 2
	m.ball.Y = m.height / 2
	m.ball.SetSpeed(BallSpeed + float64(m.opts.BallSpeedBonus))
	m.ball.RandomizeAngle(m.rng)
	m.ball.Serve()
}

func (m *Match) resetPaddles() {
	lives := StartingLives + m.opts.LivesBonus
	for _, p := range []*Paddle{m.red, m.blue} {
		p.SetPosition(m.width / 2)
		p.SetDestination(m.width / 2)
		p.SetLives(lives)
		p.SetHandicap(float64(m.opts.Handicap))
	}
	m.red.Player = m.opts.RedIsPlayer
	m.blue.Player = m.opts.BlueIsPlayer
}

// NewGame resets both paddles' lives, serves a fresh ball and resumes.
func (m *Match) NewGame() {
	m.resetPaddles()
	m.serveBall()
	m.newRound = false
	m.Resume()
}

// Pause stops the simulation, remembering the current state.
func (m *Match) Pause() {
	m.lastState = m.state
	m.state = StateStopped
}

// Resume restores the state that preceded Pause. A match paused twice
// resumes to Running.
func (m *Match) Resume() {
	switch {
	case m.state != StateStopped:
	case m.lastState == StateStopped:
		m.state = StateRunning
	default:
		m.state = m.lastState
		m.lastState = StateStopped
	}
}

// TogglePause pauses a running match and resumes a stopped one.
func (m *Match) TogglePause() {
	if m.state == StateStopped {
		m.Resume()
		return
	}
	m.Pause()
}

// SetMode switches to s, remembering the previous state.
func (m *Match) SetMode(s State) {
	m.lastState = m.state
	m.state = s
}

// State returns the current mode.
func (m *Match) State() State {
	return m.state
}

// GameRunning reports whether both paddles still have lives.
func (m *Match) GameRunning() bool {
	return m.red.Alive() && m.blue.Alive()
}

// Winner returns the surviving side once the game is over.
func (m *Match) Winner() Side {
	switch {
	case m.GameRunning():
		return SideNone
	case m.red.Alive():
		return SideRed
	case m.blue.Alive():
		return SideBlue
	default:
		return SideNone
	}
}

// NewRoundPending reports whether the next step will re-serve.
func (m *Match) NewRoundPending() bool {
	return m.newRound
}

// SetMuted suppresses cue emission.
func (m *Match) SetMuted(muted bool) {
	m.muted = muted
}

// Muted reports whether cues are suppressed.
func (m *Match) Muted() bool {
	return m.muted
}

func (m *Match) play(c Cue) {
	if !m.muted {
		m.cues.Play(c)
	}
}

// FrameDelay returns how long to sleep after a tick that took spent.
func (m *Match) FrameDelay(spent time.Duration) time.Duration {
	return max(0, m.frame-spent)
}

// Frame returns the fixed tick interval.
func (m *Match) Frame() time.Duration {
	return m.frame
}

// Elapsed returns simulated time: executed steps times the frame interval.
func (m *Match) Elapsed() time.Duration {
	return time.Duration(m.ticks) * m.frame
}

// Ticks returns the number of executed steps.
func (m *Match) Ticks() int64 {
	return m.ticks
}

// Options returns the normalized options.
func (m *Match) Options() Options {
	return m.opts
}

func (m *Match) Ball() *Ball     { return m.ball }
func (m *Match) Red() *Paddle    { return m.red }
func (m *Match) Blue() *Paddle   { return m.blue }
func (m *Match) Width() float64  { return m.width }
func (m *Match) Height() float64 { return m.height }

// Paddle returns the paddle for side, or nil.
func (m *Match) Paddle(side Side) *Paddle {
	switch side {
	case SideRed:
		return m.red
	case SideBlue:
		return m.blue
	default:
		return nil
	}
}

// PauseZone returns the area whose press toggles pause.
func (m *Match) PauseZone() core.RectF {
	return m.pauseZone
}
