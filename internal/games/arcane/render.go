package arcane

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/arcane-flight/internal/core"
)

// Glyphs for terminal rendering.
const (
	SpireChar     = '█'
	SpireTipDown  = '▼'
	SpireTipUp    = '▲'
	RuneChar      = '◆'
	WallOnChar    = '━'
	WallOffChar   = '┄'
	ChainChar     = '·'
	OrbChar       = '●'
	GateChar      = '▓'
	WheelRuneChar = '✦'
	GroundTopChar = '▀'
	GroundChar    = '░'
	MoonChar      = '◐'
	PlayerLevel   = '▶'
	PlayerUp      = '▲'
	PlayerDown    = '▼'
	PlayerCrashed = '✕'
	BroomChar     = '═'
)

// Select screen card size in cells.
const (
	cardW   = 26
	cardH   = 7
	cardGap = 4
)

// viewport maps playfield pixels to screen cells.
type viewport struct {
	sx, sy float64
}

func newViewport(s Snapshot, w, h int) viewport {
	return viewport{
		sx: float64(w) / s.Playfield.Width,
		sy: float64(h) / s.Playfield.Height,
	}
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v viewport) row(y float64) int { return int(math.Floor(y * v.sy)) }

// rect returns the cells covered by b. Every non-empty box covers at least one cell.
func (v viewport) rect(b core.Box) core.Rect {
	x0, y0 := v.col(b.Left), v.row(b.Top)
	x1 := int(math.Ceil(b.Right * v.sx))
	y1 := int(math.Ceil(b.Bottom * v.sy))
	return core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

// draw renders a snapshot into dst.
// Order: sky, hazards, ground, particles, player, HUD and overlays.
func draw(dst *core.Screen, s Snapshot, paused bool) {
	dst.Clear()
	v := newViewport(s, dst.Width(), dst.Height())

	drawSky(dst, v, s)
	for _, h := range s.Hazards {
		drawHazard(dst, v, h)
	}
	drawGround(dst, v, s)
	drawParticles(dst, v, s.Particles)

	if s.Phase == PhaseSelect {
		drawSelect(dst, s)
		return
	}

	drawPlayer(dst, v, s)
	drawHUD(dst, s)

	switch {
	case paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case s.Phase == PhaseReady:
		hint := "Space or click to fly"
		if s.CanSelect {
			hint += "  |  Q: witches"
		}
		drawCenteredMessage(dst, s.Character.Name, hint)
	case s.Phase == PhaseDead:
		hint := "Space: retry  |  R: ready"
		if s.CanSelect {
			hint += "  |  Q: witches"
		}
		drawCenteredMessage(dst, fmt.Sprintf("CRASHED  Score %d  Best %d", s.Score, s.Best), hint)
	}
}

func drawSky(dst *core.Screen, v viewport, s Snapshot) {
	groundRow := v.row(s.GroundY())
	for _, st := range s.Stars {
		x, y := v.col(st.X), v.row(st.Y)
		if y >= groundRow {
			continue
		}
		ch := '.'
		if st.Size > 1 {
			ch = '*'
		}
		color := core.ColorGray
		if math.Sin(st.Twinkle) > 0.35 {
			color = core.ColorBrightWhite
		}
		dst.SetColored(x, y, ch, color)
	}
	dst.SetColored(v.col(s.Playfield.Width-110), v.row(78), MoonChar, core.ColorLavender)
}

func drawHazard(dst *core.Screen, v viewport, h HazardView) {
	switch h.Kind {
	case KindTopSpire:
		r := v.rect(h.Bounds)
		dst.DrawRectColored(r, SpireChar, core.ColorSteel)
		dst.DrawHLineColored(r.X, r.Bottom()-1, r.W, SpireTipDown, core.ColorLavender)
	case KindBottomSpire:
		r := v.rect(h.Bounds)
		dst.DrawRectColored(r, SpireChar, core.ColorSteel)
		dst.DrawHLineColored(r.X, r.Y, r.W, SpireTipUp, core.ColorLavender)
	case KindFloatingRune:
		for _, b := range h.Boxes {
			dst.DrawRectColored(v.rect(b), RuneChar, core.ColorViolet)
		}
	case KindPulseWall:
		r := v.rect(h.Bounds)
		if h.Active {
			dst.DrawRectColored(r, WallOnChar, core.ColorPink)
		} else {
			dst.DrawRectColored(r, WallOffChar, core.ColorGray)
		}
	case KindSwingingOrb:
		if len(h.Boxes) == 0 {
			return
		}
		orb := h.Boxes[0]
		cx, cy := (orb.Left+orb.Right)/2, (orb.Top+orb.Bottom)/2
		drawChain(dst, v, h.Pivot[0], h.Pivot[1], cx, cy)
		dst.DrawRectColored(v.rect(orb), OrbChar, core.ColorOrange)
	case KindGate:
		for _, b := range h.Boxes {
			dst.DrawRectColored(v.rect(b), GateChar, core.ColorIndigo)
		}
	case KindRuneWheel:
		for _, b := range h.Boxes {
			dst.DrawRectColored(v.rect(b), WheelRuneChar, core.ColorLavender)
		}
	}
}

// drawChain draws a dotted line between two playfield points.
func drawChain(dst *core.Screen, v viewport, x0, y0, x1, y1 float64) {
	const steps = 12
	for i := 0; i < steps; i++ {
		t := float64(i) / steps
		dst.SetColored(v.col(x0+(x1-x0)*t), v.row(y0+(y1-y0)*t), ChainChar, core.ColorGray)
	}
}

func drawGround(dst *core.Screen, v viewport, s Snapshot) {
	top := v.row(s.GroundY())
	dst.DrawHLineColored(0, top, dst.Width(), GroundTopChar, core.ColorMint)
	for y := top + 1; y < dst.Height(); y++ {
		dst.DrawHLineColored(0, y, dst.Width(), GroundChar, core.ColorIndigo)
	}
}

func drawParticles(dst *core.Screen, v viewport, particles []Particle) {
	for _, p := range particles {
		ch := '·'
		if p.Size > 1 {
			ch = '•'
		}
		dst.SetColored(v.col(p.X), v.row(p.Y), ch, particleColor(p.Kind))
	}
}

func particleColor(k ParticleKind) core.Color {
	switch k {
	case ParticleScore:
		return core.ColorGold
	case ParticleCrash:
		return core.ColorPink
	default:
		return core.ColorCyan
	}
}

// CharacterColor returns the accent color of a character.
func CharacterColor(id string) core.Color {
	switch id {
	case "violet":
		return core.ColorViolet
	case "gold":
		return core.ColorGold
	default:
		return core.ColorLavender
	}
}

// Bob returns the renderer's vertical idle offset in pixels.
// The simulation position is not affected.
func Bob(s Snapshot) float64 {
	amp := 6.0
	if s.Phase == PhaseRunning {
		amp = 2.0
	}
	return math.Sin(float64(s.Tick)*0.24) * amp
}

func drawPlayer(dst *core.Screen, v viewport, s Snapshot) {
	p := s.Player
	x, y := v.col(p.X), v.row(p.Y+Bob(s))

	glyph := PlayerLevel
	switch {
	case s.Phase == PhaseDead:
		glyph = PlayerCrashed
	case p.Tilt < -0.2:
		glyph = PlayerUp
	case p.Tilt > 0.4:
		glyph = PlayerDown
	}

	dst.SetColored(x-1, y, BroomChar, core.ColorOrange)
	dst.SetColored(x, y, glyph, CharacterColor(s.Character.ID))
}

func drawHUD(dst *core.Screen, s Snapshot) {
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", s.Score), core.ColorBrightWhite)
	best := fmt.Sprintf(" Best: %d ", s.Best)
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(best)-2, 0, best, core.ColorGold)
	if s.Chosen {
		dst.DrawTextCenteredColored(0, " "+s.Character.Name+" ", CharacterColor(s.Character.ID))
	}
}

// SelectCards returns the clickable card areas of the select screen for n
// characters. At most two cards are shown.
func SelectCards(screenW, screenH, n int) []core.Rect {
	n = min(n, 2)
	if n <= 0 {
		return nil
	}
	total := n*cardW + (n-1)*cardGap
	x := (screenW - total) / 2
	y := (screenH-cardH)/2 + 1
	cards := make([]core.Rect, n)
	for i := range cards {
		cards[i] = core.NewRect(x+i*(cardW+cardGap), y, cardW, cardH)
	}
	return cards
}

func drawSelect(dst *core.Screen, s Snapshot) {
	cards := SelectCards(dst.Width(), dst.Height(), len(s.Characters))
	if len(cards) > 0 {
		dst.DrawTextCenteredColored(cards[0].Y-3, "ARCANE FLIGHT", core.ColorLavender)
		dst.DrawTextCenteredColored(cards[0].Y-2, "Choose your witch", core.ColorGray)
	}

	for i, r := range cards {
		ch := s.Characters[i]
		color := CharacterColor(ch.ID)
		dst.DrawRect(r, ' ')
		dst.DrawBox(r)
		centerIn(dst, r, 1, ch.Name, color)
		centerIn(dst, r, 2, truncate(ch.Blurb, r.W-2), core.ColorGray)
		centerIn(dst, r, 4, fmt.Sprintf("flap %.1f  grav %.2f", -ch.Flap, ch.Gravity), core.ColorDefault)
		centerIn(dst, r, 5, fmt.Sprintf("[%d]", i+1), color)
	}
}

// centerIn draws text centered on row dy of r.
func centerIn(dst *core.Screen, r core.Rect, dy int, text string, c core.Color) {
	x := r.X + (r.W-utf8.RuneCountInString(text))/2
	dst.DrawTextColored(x, r.Y+dy, text, c)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	centerIn(dst, box, 1, title, core.ColorBrightWhite)
	centerIn(dst, box, 3, subtitle, core.ColorDefault)
}
