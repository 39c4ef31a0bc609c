// Package canvas renders Arcane Flight snapshots to raster images with gg.
// It draws in playfield pixels, so a scale of 1 gives a 960x540 frame.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/vovakirdan/arcane-flight/internal/games/arcane"
)

// Palette used by the raster renderer.
var (
	SkyTop      = color.RGBA{11, 8, 32, 255}
	SkyBottom   = color.RGBA{42, 31, 79, 255}
	GroundFill  = color.RGBA{27, 20, 54, 255}
	GroundEdge  = color.RGBA{94, 230, 180, 255}
	SpireFill   = color.RGBA{59, 63, 99, 255}
	SpireEdge   = color.RGBA{169, 156, 240, 255}
	RuneFill    = color.RGBA{157, 107, 255, 255}
	WallOn      = color.RGBA{255, 95, 180, 255}
	WallOff     = color.RGBA{120, 110, 150, 255}
	OrbFill     = color.RGBA{255, 160, 60, 255}
	ChainColor  = color.RGBA{150, 150, 170, 255}
	GateFill    = color.RGBA{64, 52, 140, 255}
	WheelRune   = color.RGBA{205, 185, 255, 255}
	MoonColor   = color.RGBA{244, 233, 200, 255}
	TextColor   = color.RGBA{240, 240, 255, 255}
	BannerShade = color.RGBA{0, 0, 0, 150}
)

// CharacterColors maps character IDs to body colors.
var CharacterColors = map[string]color.RGBA{
	"violet": {170, 110, 255, 255},
	"gold":   {255, 205, 80, 255},
}

var particleColors = [...]color.RGBA{
	arcane.ParticleFlap:  {90, 230, 255, 255},
	arcane.ParticleScore: {255, 205, 80, 255},
	arcane.ParticleCrash: {255, 95, 180, 255},
}

// Renderer draws snapshots into fresh gg contexts.
type Renderer struct {
	scale     float64
	fontSmall font.Face
	fontLarge font.Face
}

// Option configures a Renderer.
type Option func(*Renderer) error

// WithScale sets the output scale relative to playfield pixels.
func WithScale(scale float64) Option {
	return func(r *Renderer) error {
		if scale <= 0 {
			return fmt.Errorf("canvas: scale must be positive, got %v", scale)
		}
		r.scale = scale
		return nil
	}
}

// WithFontFile uses a TrueType/OpenType font for text instead of the built-in bitmap face.
func WithFontFile(path string) Option {
	return func(r *Renderer) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("canvas: cannot read font: %w", err)
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			return fmt.Errorf("canvas: cannot parse font %s: %w", path, err)
		}
		r.fontSmall, err = opentype.NewFace(parsed, &opentype.FaceOptions{Size: 20, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return fmt.Errorf("canvas: cannot create font face: %w", err)
		}
		r.fontLarge, err = opentype.NewFace(parsed, &opentype.FaceOptions{Size: 40, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return fmt.Errorf("canvas: cannot create font face: %w", err)
		}
		return nil
	}
}

// New creates a renderer.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{scale: 1}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Size returns the output image size for a snapshot.
func (r *Renderer) Size(s arcane.Snapshot) (int, int) {
	w := int(math.Round(s.Playfield.Width * r.scale))
	h := int(math.Round(s.Playfield.Height * r.scale))
	return max(1, w), max(1, h)
}

// Render draws the snapshot and returns the frame.
func (r *Renderer) Render(s arcane.Snapshot) image.Image {
	return r.draw(s).Image()
}

// EncodePNG writes the frame as PNG.
func (r *Renderer) EncodePNG(w io.Writer, s arcane.Snapshot) error {
	if err := r.draw(s).EncodePNG(w); err != nil {
		return fmt.Errorf("canvas: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the frame to a PNG file.
func (r *Renderer) SavePNG(path string, s arcane.Snapshot) error {
	if err := r.draw(s).SavePNG(path); err != nil {
		return fmt.Errorf("canvas: save %s: %w", path, err)
	}
	return nil
}

func (r *Renderer) draw(s arcane.Snapshot) *gg.Context {
	w, h := r.Size(s)
	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)

	drawSky(dc, s)
	for _, hz := range s.Hazards {
		drawHazard(dc, hz)
	}
	drawGround(dc, s)
	drawParticles(dc, s.Particles)

	if s.Phase == arcane.PhaseSelect {
		r.drawSelect(dc, s)
		return dc
	}
	drawPlayer(dc, s)
	r.drawHUD(dc, s)

	switch s.Phase {
	case arcane.PhaseReady:
		r.drawBanner(dc, s, s.Character.Name, "Flap to fly")
	case arcane.PhaseDead:
		r.drawBanner(dc, s, "CRASHED", fmt.Sprintf("Score %d   Best %d", s.Score, s.Best))
	}
	return dc
}
