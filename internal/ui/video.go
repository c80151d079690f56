package ui

import (
	"image"
	"image/color"

	"jr100/internal/font"
)

// Character-cell geometry: the JR-100's display is a fixed 32x24 grid of
// 8x8 glyphs, giving a 256x192 pixel frame. There is no scrolling, window
// layer or sprite compositing: every cell's glyph is fetched directly from
// the font cache keyed by the byte sitting in video RAM.
const (
	cellCols   = 32
	cellRows   = 24
	cellWidth  = 8
	cellHeight = 8
	ScreenW    = cellCols * cellWidth
	ScreenH    = cellRows * cellHeight
)

var (
	paperColor = color.RGBA{0x10, 0x20, 0x10, 0xFF}
	inkColor   = color.RGBA{0x40, 0xF0, 0x40, 0xFF}
)

// RenderFrame draws the 32x24 character grid into dst. videoRAM must hold
// at least cellCols*cellRows bytes (the character-code grid read directly
// off the bus's video-RAM region); cache and userPlane select the glyph
// bitmap per spec's CMODE line (VIA ORB bit 5, see internal/via).
func RenderFrame(dst *image.RGBA, videoRAM []byte, cache *font.Cache, userPlane bool) {
	for row := 0; row < cellRows; row++ {
		for col := 0; col < cellCols; col++ {
			idx := row*cellCols + col
			var code byte
			if idx < len(videoRAM) {
				code = videoRAM[idx]
			}
			glyph := cache.GlyphForPlane(code, userPlane)
			drawGlyph(dst, col*cellWidth, row*cellHeight, glyph)
		}
	}
}

func drawGlyph(dst *image.RGBA, x0, y0 int, glyph [8]byte) {
	for line := 0; line < cellHeight; line++ {
		bits := glyph[line]
		for bit := 0; bit < cellWidth; bit++ {
			// Bit 7 is the glyph's leftmost pixel.
			on := bits&(0x80>>uint(bit)) != 0
			c := paperColor
			if on {
				c = inkColor
			}
			dst.SetRGBA(x0+bit, y0+line, c)
		}
	}
}

// NewFrameBuffer allocates a fresh RGBA image sized to the JR-100 screen.
func NewFrameBuffer() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, ScreenW, ScreenH))
}
