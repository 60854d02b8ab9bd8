package core

// Color represents a foreground color for a screen cell.
// Hosts map these to terminal colors.
type Color uint8

// Predefined colors for playfield elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
	ColorPink
	ColorPurple
	ColorLime
)
