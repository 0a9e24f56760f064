package pong

import "github.com/vovakirdan/tui-pong/internal/core"

// AxisSensitivity is the destination change per unit of axis (trackball)
// movement.
const AxisSensitivity = 80.0

// PointerKind distinguishes a fresh press from a drag.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
)

// Point is a pointer position in field units.
type Point struct {
	X, Y float64
}

// PointerEvent is one pointer update carrying every active point.
type PointerEvent struct {
	Kind   PointerKind
	Points []Point
}

// PointSource yields the points of an event the match should act on. It is
// chosen once from the host's capabilities.
type PointSource interface {
	ActivePoints(ev PointerEvent) []Point
}

// MultiTouch routes every active point.
type MultiTouch struct{}

// ActivePoints returns all points of ev.
func (MultiTouch) ActivePoints(ev PointerEvent) []Point {
	return ev.Points
}

// SingleTouch routes only the primary point.
type SingleTouch struct{}

// ActivePoints returns the first point of ev, if any.
func (SingleTouch) ActivePoints(ev PointerEvent) []Point {
	if len(ev.Points) == 0 {
		return nil
	}
	return ev.Points[:1]
}

// NewPointSource picks the source for the host.
func NewPointSource(multiTouch bool) PointSource {
	if multiTouch {
		return MultiTouch{}
	}
	return SingleTouch{}
}

// HandlePointer routes a pointer event. A point in a human paddle's zone
// sets its destination, a press in the pause zone toggles pause and a press
// in a computer paddle's zone hands that paddle to a human.
func (m *Match) HandlePointer(ev PointerEvent) {
	if !m.GameRunning() || m.state == StateTitle {
		return
	}

	for _, pt := range m.points.ActivePoints(ev) {
		if ev.Kind == PointerDown && m.pauseZone.Contains(pt.X, pt.Y) {
			m.TogglePause()
			continue
		}
		for _, p := range []*Paddle{m.red, m.blue} {
			if !p.InTouchZone(pt.X, pt.Y) {
				continue
			}
			if p.Player {
				p.SetDestination(pt.X)
			} else if ev.Kind == PointerDown {
				p.Player = true
			}
		}
	}
}

// HandleAxis nudges side's destination by dx axis units. The paddle becomes
// human-controlled on first use.
func (m *Match) HandleAxis(side Side, dx float64) {
	p := m.Paddle(side)
	if p == nil || !m.GameRunning() || m.state == StateTitle {
		return
	}
	if !p.Player {
		p.Player = true
		p.SetDestination(p.CenterX())
	}
	p.SetDestination(core.ClampF(p.Destination+m.opts.AxisSensitivity*dx, 0, m.width))
}
