package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/cupid-arrow/internal/core"
	"github.com/vovakirdan/cupid-arrow/internal/game"
)

// Visual characters for rendering
const (
	PlayerChar    = '♥'
	PlayerBody    = '='
	ArrowChar     = '↓'
	ConfusionChar = '?'
	SlowChar      = '~'
	TrailChar     = '·'
	LifeChar      = "♥"
)

// hudRows is the number of rows above the field box.
const hudRows = 2

// fieldViewport fits the play field into a width x height terminal below the
// HUD. Terminal cells are about twice as tall as wide, so the field gets two
// columns per row of aspect.
func fieldViewport(width, height int, fieldW, fieldH float64) core.Viewport {
	innerH := core.Max(height-hudRows-2, 1)
	innerW := int(float64(innerH) * fieldW / fieldH * 2)
	innerW = core.Clamp(innerW, 1, core.Max(width-2, 1))
	x := (width - innerW - 2) / 2
	return core.NewViewport(fieldW, fieldH, x+1, hudRows+1, innerW, innerH)
}

// DrawSnapshot renders a playing session into dst.
func DrawSnapshot(dst *core.Screen, snap game.Snapshot) {
	dst.Clear()
	drawHUD(dst, snap)

	vp := fieldViewport(dst.Width(), dst.Height(), snap.FieldW, snap.FieldH)
	dst.DrawBox(vp.X-1, vp.Y-1, vp.W+2, vp.H+2, core.ColorGray)

	for _, t := range snap.Trails {
		x, y := vp.ToCell(t.Pos)
		dst.SetCell(x, y, TrailChar, core.ColorCyan)
	}
	for _, p := range snap.Pickups {
		x, y := vp.ToCell(p.Pos)
		switch p.Kind {
		case game.KindConfusion:
			dst.SetCell(x, y, ConfusionChar, core.ColorYellow)
		case game.KindSlow:
			dst.SetCell(x, y, SlowChar, core.ColorBlue)
		}
	}
	for _, a := range snap.Arrows {
		x, y := vp.ToCell(a.Pos)
		dst.SetCell(x, y, ArrowChar, core.ColorRed)
	}

	drawPlayer(dst, vp, snap)
}

func drawPlayer(dst *core.Screen, vp core.Viewport, snap game.Snapshot) {
	// Blink while invincible.
	if snap.Status.Invincible.Active && snap.Tick%8 < 4 {
		return
	}

	color := core.ColorPink
	switch {
	case snap.Items.Shield.Active:
		color = core.ColorCyan
	case snap.Status.Confused.Active:
		color = core.ColorYellow
	case snap.Status.Slowed.Active:
		color = core.ColorBlue
	}

	p := snap.Player
	half := p.Size / 2
	left, y := vp.ToCell(core.Vec2{X: p.Pos.X - half, Y: p.Pos.Y})
	right, _ := vp.ToCell(core.Vec2{X: p.Pos.X + half, Y: p.Pos.Y})
	for x := left; x <= right; x++ {
		dst.SetCell(x, y, PlayerBody, color)
	}
	cx, _ := vp.ToCell(p.Pos)
	dst.SetCell(cx, y, PlayerChar, color)
}

func drawHUD(dst *core.Screen, snap game.Snapshot) {
	lives := strings.TrimSpace(strings.Repeat(LifeChar+" ", snap.Lives))
	dst.DrawText(1, 0, lives, core.ColorPink)
	dst.DrawTextCentered(0, fmt.Sprintf("Score %d", snap.Score), core.ColorWhite)
	level := fmt.Sprintf("Lv %d", snap.Level)
	dst.DrawText(dst.Width()-len(level)-1, 0, level, core.ColorYellow)

	x := 1
	x = drawSlot(dst, x, "[1] Shield", snap.Items.Shield)
	x = drawSlot(dst, x, "[2] Speed", snap.Items.Speed)
	if snap.Status.Confused.Active {
		x = drawTimed(dst, x, "CONFUSED", snap.Status.Confused.Remaining, core.ColorYellow)
	}
	if snap.Status.Slowed.Active {
		drawTimed(dst, x, "SLOWED", snap.Status.Slowed.Remaining, core.ColorBlue)
	}
}

func drawSlot(dst *core.Screen, x int, label string, slot game.ItemSlot) int {
	if slot.Active {
		return drawTimed(dst, x, label, slot.Remaining, core.ColorGreen)
	}
	color := core.ColorWhite
	if slot.Count == 0 {
		color = core.ColorGray
	}
	text := fmt.Sprintf("%s x%d", label, slot.Count)
	dst.DrawText(x, 1, text, color)
	return x + len([]rune(text)) + 2
}

func drawTimed(dst *core.Screen, x int, label string, remaining int, c core.Color) int {
	text := fmt.Sprintf("%s %.1fs", label, float64(remaining)/1000)
	dst.DrawText(x, 1, text, c)
	return x + len([]rune(text)) + 2
}
