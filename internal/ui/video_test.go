package ui

import (
	"testing"

	"jr100/internal/font"
)

func TestRenderFrame_DrawsGlyphFromVideoRAM(t *testing.T) {
	rom := make([]byte, 0x80*8)
	// code 0x41's glyph: top-left pixel set, rest clear.
	rom[0x41*8] = 0x80
	cache := font.NewFromROM(rom)

	grid := make([]byte, cellCols*cellRows)
	grid[0] = 0x41 // row 0, col 0

	dst := NewFrameBuffer()
	RenderFrame(dst, grid, cache, false)

	if dst.RGBAAt(0, 0) != inkColor {
		t.Fatalf("expected ink pixel at (0,0)")
	}
	if dst.RGBAAt(1, 0) != paperColor {
		t.Fatalf("expected paper pixel at (1,0)")
	}
	if dst.RGBAAt(0, 1) != paperColor {
		t.Fatalf("expected paper pixel at (0,1), glyph line 1 is all clear")
	}
}

func TestRenderFrame_PlaneSelectChangesGlyph(t *testing.T) {
	rom := make([]byte, 0x80*8)
	cache := font.NewFromROM(rom) // all-zero ROM glyph for code 0x20
	cache.UpdateVideo(0, 0x80)    // code 0xA0 line 0: top-left pixel set

	grid := make([]byte, cellCols*cellRows)
	grid[0] = 0xA0

	dst := NewFrameBuffer()

	RenderFrame(dst, grid, cache, false) // plane 0: masks to 0x20, all-zero ROM glyph
	if dst.RGBAAt(0, 0) != paperColor {
		t.Fatalf("plane 0 should ignore the video-derived overlay")
	}

	RenderFrame(dst, grid, cache, true) // plane 1: uses the derived overlay
	if dst.RGBAAt(0, 0) != inkColor {
		t.Fatalf("plane 1 should draw the video-derived overlay")
	}
}

func TestRenderFrame_OutOfRangeCellsReadZero(t *testing.T) {
	rom := make([]byte, 0x80*8)
	cache := font.NewFromROM(rom)
	dst := NewFrameBuffer()
	RenderFrame(dst, nil, cache, false) // empty grid: every cell falls back to code 0
	if dst.RGBAAt(0, 0) != paperColor {
		t.Fatalf("expected paper for an empty video-RAM grid")
	}
}
