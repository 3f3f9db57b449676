package flappy

import (
	"fmt"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Visual characters for rendering
const (
	BirdUp        = '▲'
	BirdLevel     = '▶'
	BirdDown      = '▼'
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
	GroundChar    = '═'
)

// Rotation thresholds (degrees) for picking the bird glyph.
const (
	climbAngle = -15
	diveAngle  = 30
)

// Render draws the current state. Row 0 is the HUD, the last row is the
// ground and the play area is scaled onto the rows in between.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil || dst.Height() < 3 || dst.Width() < 1 {
		return
	}

	cfg := g.engine.Config()
	playRows := dst.Height() - 2
	vp := core.NewViewport(cfg.Area.Width, cfg.Area.Height, dst.Width(), playRows)

	for _, p := range g.state.Pipes {
		g.drawPipe(dst, vp, p, cfg.Area.Height)
	}
	g.drawBird(dst, vp)

	groundY := dst.Height() - 1
	dst.DrawHLine(0, groundY, dst.Width(), GroundChar, core.ColorGray)

	hud := fmt.Sprintf(" Score: %d  Best: %d  Speed: %.1f ",
		g.state.Score, max(g.highScore, g.state.Score), g.engine.Speed(g.state.Score))
	dst.DrawText(1, 0, hud, core.ColorBrightWhite)

	switch {
	case g.state.IsGameOver:
		reward, eligible := g.Summary()
		nft := fmt.Sprintf("NFT: needs %d", cfg.Rewards.MinScoreForNFT)
		if eligible {
			nft = "NFT: eligible!"
		}
		drawPanel(dst, core.ColorRed,
			"GAME OVER",
			fmt.Sprintf("Score: %d   Best: %d", g.state.Score, max(g.highScore, g.state.Score)),
			fmt.Sprintf("Hit: %s", g.hit.Kind),
			fmt.Sprintf("Reward: %.2f   %s", reward, nft),
			"R restart  |  Q quit",
		)
	case g.state.IsPaused:
		drawPanel(dst, core.ColorYellow, "PAUSED", "Press P to resume")
	}
}

// drawPipe renders both segments of p, shifted one row down for the HUD.
func (g *Game) drawPipe(dst *core.Screen, vp core.Viewport, p Pipe, areaH float64) {
	top := vp.Span(core.NewBox(p.X, 0, p.Width, p.TopHeight))
	bottom := vp.Span(core.NewBox(p.X, p.BottomY, p.Width, areaH-p.BottomY))
	top.Y++
	bottom.Y++

	dst.FillRect(top, PipeChar, core.ColorGreen)
	dst.DrawHLine(top.X, top.Bottom()-1, top.W, PipeCapTop, core.ColorBrightGreen)

	dst.FillRect(bottom, PipeChar, core.ColorGreen)
	dst.DrawHLine(bottom.X, bottom.Y, bottom.W, PipeCapBottom, core.ColorBrightGreen)
}

// drawBird renders the bird with a glyph picked from its rotation.
func (g *Game) drawBird(dst *core.Screen, vp core.Viewport) {
	b := g.state.Bird
	r := vp.Span(core.NewBox(b.X, b.Y, b.Size, b.Size))
	r.Y++

	glyph := BirdLevel
	switch {
	case b.Rotation <= climbAngle:
		glyph = BirdUp
	case b.Rotation >= diveAngle:
		glyph = BirdDown
	}

	color := core.ColorBrightYellow
	if g.state.IsGameOver {
		color = core.ColorOrange
	}
	dst.FillRect(r, '●', color)
	dst.SetColor(r.Right()-1, r.Y, glyph, color)
}

// drawPanel draws a bordered message box in the center of the screen.
func drawPanel(dst *core.Screen, border core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}

	boxW := width + 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, border)

	for i, l := range lines {
		x := box.X + (boxW-len([]rune(l)))/2
		c := core.ColorDefault
		if i == 0 {
			c = core.ColorBrightWhite
		}
		dst.DrawText(x, box.Y+1+i, l, c)
	}
}
