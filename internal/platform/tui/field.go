package tui

import (
	"math"
	"strings"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
)

// Field drawing characters
const (
	PaddleChar = '█'
	BallChar   = '●'
	WallChar   = '│'
	NetChar    = '╌'
	LifeChar   = '●'

	// cellAspect is how many columns make up the height of one row.
	cellAspect = 2.0
	hudRows    = 1
	blinkTicks = 10
)

// viewport maps field coordinates onto a rectangle of screen cells,
// preserving the field's aspect ratio.
type viewport struct {
	x, y, w, h int
	fw, fh     float64
}

// newViewport fits a fw×fh field below the HUD row of a screen, leaving a
// column on each side for the walls.
func newViewport(screenW, screenH int, fw, fh float64) viewport {
	availW := core.Max(1, screenW-2)
	availH := core.Max(1, screenH-hudRows)

	h := availH
	w := int(math.Round(float64(h) * fw / fh * cellAspect))
	if w > availW {
		w = availW
		h = core.Max(1, int(math.Round(float64(w)*fh/fw/cellAspect)))
	}
	w = core.Max(1, w)

	return viewport{
		x:  (screenW - w) / 2,
		y:  hudRows,
		w:  w,
		h:  h,
		fw: fw,
		fh: fh,
	}
}

// toCell returns the cell containing field point (fx, fy).
func (v viewport) toCell(fx, fy float64) (int, int) {
	col := int(math.Floor(fx / v.fw * float64(v.w)))
	row := int(math.Floor(fy / v.fh * float64(v.h)))
	return v.x + core.Clamp(col, 0, v.w-1), v.y + core.Clamp(row, 0, v.h-1)
}

// toField returns the field point at the centre of cell (col, row).
func (v viewport) toField(col, row int) (float64, float64) {
	fx := (float64(col-v.x) + 0.5) / float64(v.w) * v.fw
	fy := (float64(row-v.y) + 0.5) / float64(v.h) * v.fh
	return core.ClampF(fx, 0, v.fw), core.ClampF(fy, 0, v.fh)
}

// contains reports whether (col, row) is inside the field area.
func (v viewport) contains(col, row int) bool {
	return core.NewRect(v.x, v.y, v.w, v.h).Contains(col, row)
}

// cellRect covers r with at least one cell.
func (v viewport) cellRect(r core.RectF) core.Rect {
	c0, r0 := v.toCell(r.X, r.Y)
	c1 := v.x + int(math.Ceil(r.Right()/v.fw*float64(v.w)))
	r1 := v.y + int(math.Ceil(r.Bottom()/v.fh*float64(v.h)))
	return core.NewRect(c0, r0, core.Max(1, c1-c0), core.Max(1, r1-r0))
}

// fieldView is what the renderer needs besides the snapshot.
type fieldView struct {
	frame int64
	muted bool
	hints bool
	you   pong.Side // Set in online play; the caller draws the result
}

// drawMatch renders a snapshot into dst.
func drawMatch(dst *core.Screen, s pong.Snapshot, vp viewport, fv fieldView) {
	dst.Clear()

	dst.DrawVLine(vp.x-1, vp.y, vp.h, WallChar, core.ColorGray)
	dst.DrawVLine(vp.x+vp.w, vp.y, vp.h, WallChar, core.ColorGray)

	_, netRow := vp.toCell(0, s.Height/2)
	for x := vp.x; x < vp.x+vp.w; x += 2 {
		dst.SetColor(x, netRow, NetChar, core.ColorGray)
	}

	blinkOn := (fv.frame/blinkTicks)%2 == 0

	if s.Ball.Serving && s.Running && s.State == pong.StateRunning.String() {
		pause := core.NewRectF(s.PauseLeft, s.PauseTop, s.PauseSize, s.PauseSize)
		dst.DrawBox(vp.cellRect(pause), core.ColorGray)
	}

	drawPaddle(dst, vp, s.Red, core.ColorRed)
	drawPaddle(dst, vp, s.Blue, core.ColorBlue)

	if s.Ball.Visible {
		bx, by := vp.toCell(s.Ball.X, s.Ball.Y)
		dst.SetColor(bx, by, BallChar, core.ColorBrightWhite)
	}

	if fv.hints && s.Ball.Serving && s.Running && blinkOn {
		if !s.Red.Player {
			_, row := vp.toCell(0, s.Height/16)
			drawCentered(dst, vp, row, "j/l to join", core.ColorRed)
		}
		if !s.Blue.Player {
			_, row := vp.toCell(0, s.Height*15/16)
			drawCentered(dst, vp, row, "←/→ to join", core.ColorBlue)
		}
	}

	drawHUD(dst, s, fv)

	switch {
	case !s.Running && fv.you == pong.SideNone:
		title := strings.ToUpper(s.Winner) + " WINS"
		c := core.ColorRed
		if s.Winner == pong.SideBlue.String() {
			c = core.ColorBlue
		}
		drawCenteredMessage(dst, title, "r new game  ·  esc menu", c)
	case s.State == pong.StateStopped.String():
		drawCenteredMessage(dst, "PAUSED", "p to resume", core.ColorYellow)
	}
}

func drawPaddle(dst *core.Screen, vp viewport, p pong.PaddleSnapshot, c core.Color) {
	r := vp.cellRect(core.NewRectF(p.Left, p.Top, p.Width, p.Height))
	// Paddles always draw one row tall.
	r.H = 1
	dst.DrawRect(r, PaddleChar, c)
}

// drawCentered writes text centred over the field on row.
func drawCentered(dst *core.Screen, vp viewport, row int, text string, c core.Color) {
	n := len([]rune(text))
	dst.DrawText(vp.x+(vp.w-n)/2, row, text, c)
}

// drawHUD fills the top row with lives and controller labels.
func drawHUD(dst *core.Screen, s pong.Snapshot, fv fieldView) {
	red := "RED " + strings.Repeat(string(LifeChar), core.Max(0, s.Red.Lives)) + " " + controller(s.Red, pong.SideRed, fv.you)
	dst.DrawText(1, 0, red, core.ColorRed)

	blue := controller(s.Blue, pong.SideBlue, fv.you) + " " + strings.Repeat(string(LifeChar), core.Max(0, s.Blue.Lives)) + " BLUE"
	dst.DrawText(dst.Width()-1-len([]rune(blue)), 0, blue, core.ColorBlue)

	if fv.muted {
		dst.DrawTextCentered(0, "muted", core.ColorGray)
	}
}

func controller(p pong.PaddleSnapshot, side, you pong.Side) string {
	if you != pong.SideNone {
		if side == you {
			return "YOU"
		}
		return "OPP"
	}
	if p.Player {
		return "YOU"
	}
	return "CPU"
}
