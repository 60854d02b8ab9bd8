package candles

import (
	"fmt"
	"math"

	"github.com/vovakirdan/candle-rush/internal/core"
)

// Layout of the terminal view: one HUD row on top, one indicator row at
// the bottom and the playfield in between.
const (
	hudRows       = 1
	indicatorRows = 1
	spriteWidth   = 3
)

// Viewport maps playfield coordinates to terminal cells and back.
type Viewport struct {
	FieldW, FieldH float64
	Cols, Rows     int // Size of the playfield area in cells
	Top            int // Screen row of the first playfield row
}

// ViewportFor returns the viewport of a screen of the given size.
func ViewportFor(cfg PlayfieldSize, screenW, screenH int) Viewport {
	return Viewport{
		FieldW: cfg.Width,
		FieldH: cfg.Height,
		Cols:   core.Max(screenW, 1),
		Rows:   core.Max(screenH-hudRows-indicatorRows, 1),
		Top:    hudRows,
	}
}

// PlayfieldSize is the part of the playfield config a viewport needs.
type PlayfieldSize struct {
	Width, Height float64
}

// ToCell returns the cell showing playfield point p.
func (v Viewport) ToCell(p core.Vec2) (col, row int) {
	col = int(math.Floor(p.X / v.FieldW * float64(v.Cols)))
	row = v.Top + int(math.Floor(p.Y/v.FieldH*float64(v.Rows)))
	return col, row
}

// ToField returns the playfield point at the centre of a cell.
func (v Viewport) ToField(col, row int) core.Vec2 {
	return core.Vec2{
		X: (float64(col) + 0.5) / float64(v.Cols) * v.FieldW,
		Y: (float64(row-v.Top) + 0.5) / float64(v.Rows) * v.FieldH,
	}
}

// InField reports whether a screen cell lies inside the playfield area.
func (v Viewport) InField(col, row int) bool {
	return col >= 0 && col < v.Cols && row >= v.Top && row < v.Top+v.Rows
}

var styleColors = map[CandleStyle]core.Color{
	StyleStrawberry: core.ColorPink,
	StyleOrange:     core.ColorOrange,
	StylePear:       core.ColorLime,
	StyleBunny:      core.ColorWhite,
	StyleCat:        core.ColorYellow,
	StyleCube:       core.ColorCyan,
	StylePyramid:    core.ColorPurple,
	StyleLayered:    core.ColorMagenta,
}

// Viewport returns the viewport the session renders into for a screen of
// the given size.
func (s *Session) Viewport(screenW, screenH int) Viewport {
	pf := s.cfg.Playfield
	return ViewportFor(PlayfieldSize{Width: pf.Width, Height: pf.Height}, screenW, screenH)
}

// Render draws the HUD, falling objects, lingering objects and the
// matchstick into dst.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	vp := s.Viewport(dst.Width(), dst.Height())

	for _, obj := range s.registry.Live() {
		s.drawObject(dst, vp, obj)
	}
	for _, obj := range s.registry.Retiring() {
		s.drawObject(dst, vp, obj)
	}

	s.drawIndicator(dst, vp)
	s.drawHUD(dst)

	switch s.phase {
	case PhaseIdle:
		drawCenteredMessage(dst, "CANDLE RUSH", "Press Enter to start")
	case PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case PhaseEnded:
		if sum, ok := s.Summary(); ok {
			drawCenteredMessage(dst, fmt.Sprintf("TIME UP  Score: %d  Best: %d", sum.FinalScore, sum.BestScore),
				sum.Voucher+"  |  R to play again")
		}
	}
}

// Sprite returns the glyphs and color used for an object.
func Sprite(obj FallingObject) (string, core.Color) {
	switch obj.Kind {
	case KindBomb:
		if !obj.Alive {
			return "*X*", core.ColorBrightRed
		}
		return "(●)", core.ColorRed
	case KindGift:
		if !obj.Alive {
			return fmt.Sprintf("+%ds", obj.Bonus), core.ColorBrightCyan
		}
		return "[" + fmt.Sprint(obj.Bonus) + "]", core.ColorBrightCyan
	default:
		if obj.Lit {
			return "\\¡/", core.ColorBrightYellow
		}
		c, ok := styleColors[obj.Style]
		if !ok {
			c = core.ColorWhite
		}
		return "‖i‖", c
	}
}

func (s *Session) drawObject(dst *core.Screen, vp Viewport, obj *FallingObject) {
	col, row := vp.ToCell(obj.Pos)
	if !vp.InField(col, row) {
		return
	}
	glyphs, c := Sprite(*obj)
	dst.DrawTextColored(col-spriteWidth/2, row, glyphs, c)
}

func (s *Session) drawIndicator(dst *core.Screen, vp Viewport) {
	row := vp.Top + vp.Rows
	x, lean := s.Indicator()
	col, _ := vp.ToCell(core.Vec2{X: x})

	flame := '^'
	switch {
	case lean > 0.15:
		flame = '<'
	case lean < -0.15:
		flame = '>'
	}
	dst.SetColored(col, row, flame, core.ColorOrange)
	dst.SetColored(col-1, row, '─', core.ColorGray)
	dst.SetColored(col+1, row, '─', core.ColorGray)
}

func (s *Session) drawHUD(dst *core.Screen) {
	secs := int(math.Ceil(math.Max(0, s.timeRemaining)))
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", s.score), core.ColorBrightGreen)

	timeColor := core.ColorWhite
	if secs <= 10 {
		timeColor = core.ColorBrightRed
	}
	timeText := fmt.Sprintf("Time: %ds", secs)
	dst.DrawTextColored((dst.Width()-len(timeText))/2, 0, timeText, timeColor)

	bestText := fmt.Sprintf("Best: %d", s.best)
	dst.DrawTextColored(dst.Width()-len(bestText)-1, 0, bestText, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	tw, sw := len([]rune(title)), len([]rune(subtitle))
	boxW := core.Min(core.Max(tw, sw)+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-tw)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-sw)/2, boxY+3, subtitle)
}
