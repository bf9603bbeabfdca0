package poster

import (
	"image"
	"image/color"
	"image/draw"
)

const (
	glyphSpacing = 1
	glyphPadding = 2
	unknownWidth = 3
)

func glyphWidth(r rune) int {
	if g, ok := glyphs[r]; ok {
		return len(g[0])
	}
	return unknownWidth
}

// TextSize returns the pixel size RenderText would produce.
func TextSize(text string, scale int) (width, height int) {
	runes := []rune(text)
	total := 0
	for i, r := range runes {
		total += glyphWidth(r)
		if i < len(runes)-1 {
			total += glyphSpacing
		}
	}
	return (total + glyphPadding*2) * scale, (glyphHeight + glyphPadding*2) * scale
}

// RenderText rasterizes text with the bitmap font. Each lit glyph cell becomes
// a scale×scale block of fg over a bg-filled canvas. The output is fully
// determined by its inputs.
func RenderText(text string, scale int, fg, bg color.NRGBA) *image.NRGBA {
	if scale < 1 {
		scale = 1
	}
	w, h := TextSize(text, scale)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	cursor := glyphPadding
	for _, r := range text {
		g, ok := glyphs[r]
		if ok {
			for row := 0; row < glyphHeight; row++ {
				for col, bit := range g[row] {
					if bit != '1' {
						continue
					}
					x0 := (cursor + col) * scale
					y0 := (glyphPadding + row) * scale
					block := image.Rect(x0, y0, x0+scale, y0+scale)
					draw.Draw(img, block, &image.Uniform{C: fg}, image.Point{}, draw.Src)
				}
			}
		}
		cursor += glyphWidth(r) + glyphSpacing
	}
	return img
}
