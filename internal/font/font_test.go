package font

import "testing"

func TestCache_ROMSeed(t *testing.T) {
	rom := make([]byte, 0x80*8)
	for i := range rom {
		rom[i] = byte(i)
	}
	c := NewFromROM(rom)
	g := c.Glyph(0x41)
	for line := 0; line < 8; line++ {
		want := byte(0x41*8 + line)
		if g[line] != want {
			t.Fatalf("glyph 0x41 line %d = %#02x, want %#02x", line, g[line], want)
		}
	}
}

func TestCache_UDCDerivation(t *testing.T) {
	c := &Cache{}
	c.UpdateUDC(9, 0x7E) // code 0x80 + 9/8 = 0x81, line 1
	g := c.Glyph(0x81)
	if g[1] != 0x7E {
		t.Fatalf("glyph 0x81 line 1 = %#02x, want 7E", g[1])
	}
}

func TestCache_VideoDerivation(t *testing.T) {
	c := &Cache{}
	before := c.Revision()
	c.UpdateVideo(0, 0x01)
	if c.Revision() != before+1 {
		t.Fatalf("revision did not increment")
	}
	g := c.Glyph(0xA0)
	if g[0] != 0x01 {
		t.Fatalf("glyph 0xA0 line 0 = %#02x, want 01", g[0])
	}
}

func TestCache_VideoDerivationIgnoresBeyond96Glyphs(t *testing.T) {
	c := &Cache{}
	before := c.Revision()
	c.UpdateVideo(96*8, 0xFF) // offset/8 == 96, out of range per spec
	if c.Revision() != before {
		t.Fatalf("revision incremented for out-of-range video offset")
	}
}

func TestCache_GlyphForPlane_Plane0IgnoresOverlays(t *testing.T) {
	rom := make([]byte, 0x80*8)
	for i := range rom {
		rom[i] = byte(i)
	}
	c := NewFromROM(rom)
	c.UpdateUDC(9, 0x7E) // would change code 0x81's glyph under plane 1

	g := c.GlyphForPlane(0x81, false)
	want := byte(0x01*8 + 1) // code 0x81&0x7F == 0x01, line 1
	if g[1] != want {
		t.Fatalf("plane0 glyph 0x81 line 1 = %#02x, want %#02x", g[1], want)
	}
}

func TestCache_GlyphForPlane_Plane1PrefersOverlay(t *testing.T) {
	c := &Cache{}
	c.UpdateUDC(9, 0x7E)
	g := c.GlyphForPlane(0x81, true)
	if g[1] != 0x7E {
		t.Fatalf("plane1 glyph 0x81 line 1 = %#02x, want 7E", g[1])
	}
}

func TestCache_GlyphForPlane_Plane1FallsBackWhenUndefined(t *testing.T) {
	rom := make([]byte, 0x80*8)
	for i := range rom {
		rom[i] = byte(i)
	}
	c := NewFromROM(rom)
	// code 0xA5 never written: plane1 bytes are all zero, so plane 1 must
	// fall back to the ROM bank at 0xA5&0x7F == 0x25.
	g := c.GlyphForPlane(0xA5, true)
	want := byte((0x25*8 + 3) & 0xFF) // rom[i] holds byte(i)
	if g[3] != want {
		t.Fatalf("plane1 fallback glyph 0xA5 line 3 = %#02x, want %#02x", g[3], want)
	}
}

func TestCache_GlyphForPlane_LowCodesAlwaysDefinedUnderPlane1(t *testing.T) {
	rom := make([]byte, 0x80*8)
	c := NewFromROM(rom) // all-zero ROM: code 0x10 is all zero but < 0x80
	g := c.GlyphForPlane(0x10, true)
	if g != c.Glyph(0x10) {
		t.Fatalf("plane1 should return the (all-zero) plane1 bytes directly for codes < 0x80")
	}
}

func TestCache_Snapshot(t *testing.T) {
	c := &Cache{}
	c.UpdateUDC(0, 0x11)
	plane, rev := c.Snapshot()
	if rev != 1 {
		t.Fatalf("rev = %d, want 1", rev)
	}
	if plane[0x80*8] != 0x11 {
		t.Fatalf("snapshot plane byte wrong")
	}
}
