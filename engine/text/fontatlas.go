package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/emberengine/ember/engine/core"
)

// Glyph holds the atlas placement and metrics for one rune.
type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // top bearing in pixels (baseline to glyph top)
	W, H     int     // glyph bitmap size
	X, Y     int     // pixel position in the atlas
}

// Font is a rasterized glyph atlas. It implements the layout collaborator
// the sprite batch consumes (spritebatch.Font).
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	AtlasW, AtlasH           int

	tex       core.Texture
	face      font.Face
	closeFace func()
}

// Close releases the underlying face. The atlas texture is owned by the
// device and outlives the face.
func (f *Font) Close() {
	if f != nil && f.closeFace != nil {
		f.closeFace()
		f.closeFace = nil
	}
}

// LoadTTF builds a monochrome (white) glyph atlas with alpha coverage and
// uploads it as an RGBA texture.
func LoadTTF(dev core.Device, ttfRelPath string, sizePx float32) (*Font, error) {
	path := filepath.Join("assets", "fonts", ttfRelPath)
	ttfData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}

	ft, err := opentype.Parse(ttfData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	// Metrics in pixels
	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	// Target rune set (ASCII 32..255). Expand later as needed.
	var runes []rune
	for r := rune(32); r <= rune(255); r++ {
		runes = append(runes, r)
	}

	// Measure all glyph bounds/advances to pack a simple shelf atlas
	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	measure := make([]meas, 0, len(runes))
	for _, rr := range runes {
		br, adv, ok := face.GlyphBounds(rr)
		if !ok {
			continue
		}
		measure = append(measure, meas{
			r:   rr,
			w:   (br.Max.X - br.Min.X).Round(),
			h:   (br.Max.Y - br.Min.Y).Round(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Round()),
			by:  float32(-br.Min.Y.Round()), // distance from baseline to top
		})
	}

	// Very simple shelf packer (rows). Start with 512^2 and grow until
	// everything fits.
	const padding = 2
	atlasSize := 512
	var pos map[rune]image.Point
	for {
		x, y, rowH := padding, padding, 0
		fits := true
		pos = make(map[rune]image.Point, len(measure))

		for _, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if g.w+padding*2 > atlasSize || g.h+padding*2 > atlasSize {
				fits = false
				break
			}
			if x+g.w+padding > atlasSize {
				x = padding
				y += rowH + padding
				rowH = 0
			}
			if y+g.h+padding > atlasSize {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + padding
			if g.h > rowH {
				rowH = g.h
			}
		}

		if fits {
			break
		}
		atlasSize *= 2
		if atlasSize > 4096 {
			return nil, fmt.Errorf("font atlas too large (>%d)", 4096)
		}
	}

	// Build atlas RGBA: white glyphs with alpha coverage
	dst := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
	}

	glyphs := make(map[rune]Glyph, len(measure))
	for _, g := range measure {
		p := pos[g.r]
		gl := Glyph{
			Rune: g.r, Advance: g.adv,
			BearingX: g.bx, BearingY: g.by,
			W: g.w, H: g.h,
			X: p.X, Y: p.Y,
		}
		if g.w > 0 && g.h > 0 {
			// The drawer expects a dot on the baseline; shift left by the
			// bearing so the ink lands at the packed position.
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
		}
		glyphs[g.r] = gl
	}

	tex, err := dev.CreateTexture(core.TextureDesc{
		Width: atlasSize, Height: atlasSize,
		Format: core.TextureRGBA8,
		Pixels: dst.Pix,
	})
	if err != nil {
		return nil, err
	}

	return &Font{
		SizePx: sizePx,
		Ascent: ascent, Descent: descent, LineGap: lineGap,
		Glyphs:    glyphs,
		AtlasW:    atlasSize,
		AtlasH:    atlasSize,
		tex:       tex,
		face:      face,
		closeFace: func() { _ = face.Close() },
	}, nil
}
