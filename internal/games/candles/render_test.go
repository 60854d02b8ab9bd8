package candles

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/candle-rush/internal/core"
)

func TestViewportRoundTrip(t *testing.T) {
	vp := ViewportFor(PlayfieldSize{Width: 480, Height: 800}, 80, 24)
	assert.Equal(t, 22, vp.Rows)
	assert.Equal(t, 1, vp.Top)

	tests := []struct {
		col, row int
	}{
		{0, 1},
		{79, 22},
		{40, 10},
	}
	for _, tt := range tests {
		p := vp.ToField(tt.col, tt.row)
		col, row := vp.ToCell(p)
		assert.Equal(t, tt.col, col)
		assert.Equal(t, tt.row, row)
		assert.True(t, vp.InField(col, row))
	}

	assert.False(t, vp.InField(0, 0), "HUD row is not playfield")
	assert.False(t, vp.InField(0, 23), "indicator row is not playfield")
}

func TestRenderHUDAndObjects(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Start()
	bomb := place(s, KindBomb, core.Vec2{X: 240, Y: 400}, 0)

	screen := core.NewScreen(80, 24)
	s.Render(screen)

	assert.Contains(t, screen.Row(0), "Score: 0")
	assert.Contains(t, screen.Row(0), "Time: 60s")
	assert.Contains(t, screen.Row(0), "Best: 0")

	col, row := s.Viewport(80, 24).ToCell(bomb.Pos)
	assert.Equal(t, '●', screen.Get(col, row))
	assert.Equal(t, core.ColorRed, screen.GetCell(col, row).Color)
	assert.Contains(t, screen.Row(23), "^")
}

func TestRenderEndScreen(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Start()
	s.End()

	screen := core.NewScreen(80, 24)
	s.Render(screen)
	assert.True(t, strings.Contains(screen.String(), "TIME UP"))
	assert.True(t, strings.Contains(screen.String(), "AYA10-260314-0-"))
}

func TestSprites(t *testing.T) {
	lit, _ := Sprite(FallingObject{Kind: KindCandle, Lit: true})
	unlit, c := Sprite(FallingObject{Kind: KindCandle, Alive: true, Style: StylePear})
	assert.NotEqual(t, lit, unlit)
	assert.Equal(t, core.ColorLime, c)

	gift, _ := Sprite(FallingObject{Kind: KindGift, Bonus: 2})
	assert.Equal(t, "+2s", gift)
}

func TestFormatVoucher(t *testing.T) {
	s, _, _ := newTestSession(t)
	at := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
	v := FormatVoucher("AYA10", 17, at, s.rng)
	assert.Regexp(t, `^AYA10-251231-17-[0-9A-Z]{6}$`, v)
}
