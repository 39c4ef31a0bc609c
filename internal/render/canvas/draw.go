package canvas

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/arcane-flight/internal/core"
	"github.com/vovakirdan/arcane-flight/internal/games/arcane"
)

func withAlpha(c color.RGBA, a float64) color.RGBA {
	a = core.ClampF(a, 0, 1)
	// RGBA is alpha-premultiplied.
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

func fillBox(dc *gg.Context, b core.Box, c color.Color) {
	dc.SetColor(c)
	dc.DrawRectangle(b.Left, b.Top, b.Width(), b.Height())
	dc.Fill()
}

func drawSky(dc *gg.Context, s arcane.Snapshot) {
	pf := s.Playfield
	grad := gg.NewLinearGradient(0, 0, 0, s.GroundY())
	grad.AddColorStop(0, SkyTop)
	grad.AddColorStop(1, SkyBottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, pf.Width, s.GroundY())
	dc.Fill()

	for _, st := range s.Stars {
		a := 0.35 + 0.65*(math.Sin(st.Twinkle)+1)/2
		dc.SetColor(withAlpha(TextColor, a))
		dc.DrawRectangle(st.X, st.Y, float64(st.Size), float64(st.Size))
		dc.Fill()
	}

	// Crescent moon: a lit disc with a sky-colored bite.
	mx, my := pf.Width-110, 78.0
	dc.SetColor(MoonColor)
	dc.DrawCircle(mx, my, 34)
	dc.Fill()
	dc.SetColor(SkyTop)
	dc.DrawCircle(mx+14, my-8, 30)
	dc.Fill()
}

func drawHazard(dc *gg.Context, h arcane.HazardView) {
	switch h.Kind {
	case arcane.KindTopSpire:
		drawSpire(dc, h.Bounds, true)
	case arcane.KindBottomSpire:
		drawSpire(dc, h.Bounds, false)
	case arcane.KindFloatingRune:
		for _, b := range h.Boxes {
			drawRune(dc, b, RuneFill)
		}
	case arcane.KindPulseWall:
		b := h.Bounds
		if h.Active {
			dc.SetColor(withAlpha(WallOn, 0.35))
			dc.DrawRoundedRectangle(b.Left-4, b.Top-4, b.Width()+8, b.Height()+8, 6)
			dc.Fill()
			fillBox(dc, b, WallOn)
			return
		}
		dc.SetColor(withAlpha(WallOff, 0.4))
		dc.SetLineWidth(2)
		dc.SetDash(8, 6)
		dc.DrawLine(b.Left, (b.Top+b.Bottom)/2, b.Right, (b.Top+b.Bottom)/2)
		dc.Stroke()
		dc.SetDash()
	case arcane.KindSwingingOrb:
		if len(h.Boxes) == 0 {
			return
		}
		orb := h.Boxes[0]
		cx, cy := (orb.Left+orb.Right)/2, (orb.Top+orb.Bottom)/2
		dc.SetColor(ChainColor)
		dc.SetLineWidth(2)
		dc.DrawLine(h.Pivot[0], h.Pivot[1], cx, cy)
		dc.Stroke()
		dc.SetColor(withAlpha(OrbFill, 0.3))
		dc.DrawCircle(cx, cy, orb.Width()/2+6)
		dc.Fill()
		dc.SetColor(OrbFill)
		dc.DrawCircle(cx, cy, orb.Width()/2)
		dc.Fill()
	case arcane.KindGate:
		for _, b := range h.Boxes {
			fillBox(dc, b, GateFill)
		}
		if len(h.Boxes) == 2 {
			dc.SetColor(GroundEdge)
			dc.SetLineWidth(3)
			dc.DrawLine(h.Bounds.Left, h.Boxes[0].Bottom, h.Bounds.Right, h.Boxes[0].Bottom)
			dc.DrawLine(h.Bounds.Left, h.Boxes[1].Top, h.Bounds.Right, h.Boxes[1].Top)
			dc.Stroke()
		}
	case arcane.KindRuneWheel:
		b := h.Bounds
		cx, cy := (b.Left+b.Right)/2, (b.Top+b.Bottom)/2
		if len(h.Boxes) > 0 {
			r0 := h.Boxes[0]
			radius := math.Hypot((r0.Left+r0.Right)/2-cx, (r0.Top+r0.Bottom)/2-cy)
			dc.SetColor(withAlpha(WheelRune, 0.25))
			dc.SetLineWidth(2)
			dc.DrawCircle(cx, cy, radius)
			dc.Stroke()
		}
		for _, rb := range h.Boxes {
			drawRune(dc, rb, WheelRune)
		}
	}
}

// drawSpire draws a pillar whose last stretch tapers to a point.
func drawSpire(dc *gg.Context, b core.Box, fromTop bool) {
	const tip = 22
	tipLen := math.Min(tip, b.Height())
	if fromTop {
		dc.MoveTo(b.Left, b.Top)
		dc.LineTo(b.Right, b.Top)
		dc.LineTo(b.Right, b.Bottom-tipLen)
		dc.LineTo((b.Left+b.Right)/2, b.Bottom)
		dc.LineTo(b.Left, b.Bottom-tipLen)
	} else {
		dc.MoveTo(b.Left, b.Bottom)
		dc.LineTo(b.Right, b.Bottom)
		dc.LineTo(b.Right, b.Top+tipLen)
		dc.LineTo((b.Left+b.Right)/2, b.Top)
		dc.LineTo(b.Left, b.Top+tipLen)
	}
	dc.ClosePath()
	dc.SetColor(SpireFill)
	dc.FillPreserve()
	dc.SetColor(SpireEdge)
	dc.SetLineWidth(2)
	dc.Stroke()
}

func drawRune(dc *gg.Context, b core.Box, c color.RGBA) {
	cx, cy := (b.Left+b.Right)/2, (b.Top+b.Bottom)/2
	r := b.Width() / 2
	dc.SetColor(withAlpha(c, 0.3))
	dc.DrawCircle(cx, cy, r+5)
	dc.Fill()
	dc.SetColor(c)
	dc.DrawRegularPolygon(4, cx, cy, r, 0)
	dc.Fill()
}

func drawGround(dc *gg.Context, s arcane.Snapshot) {
	pf := s.Playfield
	gy := s.GroundY()
	dc.SetColor(GroundFill)
	dc.DrawRectangle(0, gy, pf.Width, pf.Height-gy)
	dc.Fill()

	dc.SetColor(GroundEdge)
	dc.SetLineWidth(3)
	dc.DrawLine(0, gy, pf.Width, gy)
	dc.Stroke()

	// Tufts scroll with the hazards.
	dc.SetLineWidth(2)
	offset := math.Mod(float64(s.Tick)*2.2, 24)
	for x := -offset; x < pf.Width; x += 24 {
		sway := math.Sin(float64(s.Tick)*0.05+x*0.1) * 2
		dc.DrawLine(x, gy, x+sway, gy-7)
		dc.Stroke()
	}
}

func drawParticles(dc *gg.Context, particles []arcane.Particle) {
	for _, p := range particles {
		c := particleColors[p.Kind]
		dc.SetColor(withAlpha(c, p.Life/34))
		dc.DrawCircle(p.X, p.Y, float64(p.Size))
		dc.Fill()
	}
}

func drawPlayer(dc *gg.Context, s arcane.Snapshot) {
	p := s.Player
	x, y := p.X, p.Y+arcane.Bob(s)
	body, ok := CharacterColors[s.Character.ID]
	if !ok {
		body = WheelRune
	}

	dc.Push()
	dc.RotateAbout(p.Tilt, x, y)

	// Broom.
	dc.SetColor(OrbFill)
	dc.SetLineWidth(4)
	dc.DrawLine(x-24, y+6, x+18, y+6)
	dc.Stroke()

	// Cloak and hat.
	dc.SetColor(body)
	dc.DrawCircle(x, y, s.Character.Hitbox*0.8)
	dc.Fill()
	dc.MoveTo(x-10, y-6)
	dc.LineTo(x+10, y-6)
	dc.LineTo(x-2, y-28)
	dc.ClosePath()
	dc.Fill()

	if s.Phase == arcane.PhaseDead {
		dc.SetColor(WallOn)
		dc.SetLineWidth(3)
		dc.DrawLine(x-8, y-8, x+8, y+8)
		dc.DrawLine(x+8, y-8, x-8, y+8)
		dc.Stroke()
	}
	dc.Pop()
}

func (r *Renderer) useFont(dc *gg.Context, large bool) {
	switch {
	case large && r.fontLarge != nil:
		dc.SetFontFace(r.fontLarge)
	case !large && r.fontSmall != nil:
		dc.SetFontFace(r.fontSmall)
	}
}

func (r *Renderer) drawHUD(dc *gg.Context, s arcane.Snapshot) {
	r.useFont(dc, false)
	dc.SetColor(TextColor)
	dc.DrawStringAnchored(fmt.Sprintf("Score %d", s.Score), 24, 28, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("Best %d", s.Best), s.Playfield.Width-24, 28, 1, 0.5)
	if c, ok := CharacterColors[s.Character.ID]; ok {
		dc.SetColor(c)
	}
	dc.DrawStringAnchored(s.Character.Name, s.Playfield.Width/2, 28, 0.5, 0.5)
}

func (r *Renderer) drawBanner(dc *gg.Context, s arcane.Snapshot, title, subtitle string) {
	cx, cy := s.Playfield.Width/2, s.GroundY()/2
	dc.SetColor(BannerShade)
	dc.DrawRoundedRectangle(cx-220, cy-60, 440, 120, 14)
	dc.Fill()

	r.useFont(dc, true)
	dc.SetColor(TextColor)
	dc.DrawStringAnchored(title, cx, cy-18, 0.5, 0.5)
	r.useFont(dc, false)
	dc.DrawStringAnchored(subtitle, cx, cy+26, 0.5, 0.5)
}

func (r *Renderer) drawSelect(dc *gg.Context, s arcane.Snapshot) {
	cx := s.Playfield.Width / 2
	r.useFont(dc, true)
	dc.SetColor(TextColor)
	dc.DrawStringAnchored("ARCANE FLIGHT", cx, 110, 0.5, 0.5)

	n := min(len(s.Characters), 2)
	const cardW, cardH, gap = 260.0, 180.0, 40.0
	total := float64(n)*cardW + float64(max(n-1, 0))*gap
	left := cx - total/2
	for i := 0; i < n; i++ {
		ch := s.Characters[i]
		x := left + float64(i)*(cardW+gap)
		y := 180.0
		dc.SetColor(BannerShade)
		dc.DrawRoundedRectangle(x, y, cardW, cardH, 12)
		dc.Fill()

		c, ok := CharacterColors[ch.ID]
		if !ok {
			c = WheelRune
		}
		dc.SetColor(c)
		dc.SetLineWidth(2)
		dc.DrawRoundedRectangle(x, y, cardW, cardH, 12)
		dc.Stroke()

		r.useFont(dc, false)
		dc.DrawStringAnchored(ch.Name, x+cardW/2, y+40, 0.5, 0.5)
		dc.SetColor(TextColor)
		dc.DrawStringAnchored(ch.Blurb, x+cardW/2, y+80, 0.5, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf("press %d", i+1), x+cardW/2, y+140, 0.5, 0.5)
	}
}
