package poster

import (
	"image"
	"image/color"
	"testing"
)

func TestTextSize(t *testing.T) {
	tests := []struct {
		text  string
		scale int
		w, h  int
	}{
		// 5 + 3 + 5 glyph columns, 2 gaps, 2×2 padding.
		{"7.5", 5, 95, 55},
		{"", 1, 4, 11},
		{"KIDSFLIX", 3, 153, 33},
		// 'h' is not in the font and takes the unknown width.
		{"1h", 1, 5 + 1 + 3 + 4, 11},
		{"93%", 5, (5 + 1 + 5 + 1 + 5 + 4) * 5, 55},
	}
	for _, tt := range tests {
		w, h := TextSize(tt.text, tt.scale)
		if w != tt.w || h != tt.h {
			t.Fatalf("TextSize(%q, %d) = %dx%d, want %dx%d", tt.text, tt.scale, w, h, tt.w, tt.h)
		}
	}
}

func TestRenderTextPixels(t *testing.T) {
	fg := color.NRGBA{0, 0, 0, 255}
	bg := color.NRGBA{245, 197, 24, 255}
	img := RenderText("1", 2, fg, bg)

	if got := img.Bounds(); got != image.Rect(0, 0, (5+4)*2, (7+4)*2) {
		t.Fatalf("bounds = %v", got)
	}
	// Padding corner keeps the background.
	if got := img.NRGBAAt(0, 0); got != bg {
		t.Fatalf("corner = %v, want bg", got)
	}
	// Row 0 of '1' is "00100": column 2 is lit, filling a 2×2 block.
	x, y := (2+2)*2, 2*2
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			if got := img.NRGBAAt(x+dx, y+dy); got != fg {
				t.Fatalf("pixel (%d,%d) = %v, want fg", x+dx, y+dy, got)
			}
		}
	}
	// Column 0 of row 0 is unlit.
	if got := img.NRGBAAt(2*2, 2*2); got != bg {
		t.Fatalf("unlit pixel = %v, want bg", got)
	}
}

func TestRenderTextDeterministic(t *testing.T) {
	fg := color.NRGBA{255, 255, 255, 255}
	bg := color.NRGBA{220, 30, 10, 255}
	a := RenderText("88%", 3, fg, bg)
	b := RenderText("88%", 3, fg, bg)
	if string(a.Pix) != string(b.Pix) {
		t.Fatal("RenderText is not deterministic")
	}
}

func TestRenderTextUnknownRuneIsBlank(t *testing.T) {
	fg := color.NRGBA{255, 0, 0, 255}
	img := RenderText("?", 1, fg, transparent)
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatal("unknown rune drew pixels")
		}
	}
}

func TestGlyphRowsConsistent(t *testing.T) {
	for r, g := range glyphs {
		for row := 1; row < glyphHeight; row++ {
			if len(g[row]) != len(g[0]) {
				t.Fatalf("glyph %q row %d has width %d, want %d", r, row, len(g[row]), len(g[0]))
			}
		}
	}
	if _, ok := glyphs['Q']; !ok {
		t.Fatal("missing Q glyph")
	}
}
