package core

// Color is the foreground of a screen cell. The renderer maps each value
// to an ANSI 256-colour code.
type Color uint8

// Field colours: one per paddle, the ball, and text accents.
const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorYellow
	ColorGray
	ColorBrightWhite
)
