package bus

// FontNotifier receives byte-level updates from VideoRAM/UDC-RAM stores so
// a font cache can stay in sync. offset is the address offset from the
// block's start address.
type FontNotifier func(offset int, value byte)

// VideoRAM is RAM that also publishes font-cache updates on every store.
// Glyph code = 0xA0 + offset/8, line = offset%8, for offset/8 < 96 (the
// first 0x300 bytes / 96 eight-byte glyphs).
type VideoRAM struct {
	mem    *Memory
	notify FontNotifier
}

// NewVideoRAM allocates length bytes of video RAM at start, notifying fn on
// every store.
func NewVideoRAM(start uint16, length int, fn FontNotifier) *VideoRAM {
	return &VideoRAM{mem: NewMemory(start, length), notify: fn}
}

func (v *VideoRAM) Start() uint16 { return v.mem.Start() }
func (v *VideoRAM) End() uint16   { return v.mem.End() }
func (v *VideoRAM) Load8(addr uint16) byte { return v.mem.Load8(addr) }

func (v *VideoRAM) Store8(addr uint16, value byte) {
	v.mem.Store8(addr, value)
	offset := int(addr - v.mem.Start())
	if offset/8 < 96 && v.notify != nil {
		v.notify(offset, value)
	}
}

// Bytes exposes the raw backing array.
func (v *VideoRAM) Bytes() []byte { return v.mem.Bytes() }

// UDCRAM is RAM backing the 32 user-defined character glyphs, notifying a
// font cache on every store. Glyph code = 0x80 + offset/8, line = offset%8,
// for the full 0x100-byte region.
type UDCRAM struct {
	mem    *Memory
	notify FontNotifier
}

// NewUDCRAM allocates length bytes of UDC RAM at start, notifying fn on
// every store.
func NewUDCRAM(start uint16, length int, fn FontNotifier) *UDCRAM {
	return &UDCRAM{mem: NewMemory(start, length), notify: fn}
}

func (u *UDCRAM) Start() uint16 { return u.mem.Start() }
func (u *UDCRAM) End() uint16   { return u.mem.End() }
func (u *UDCRAM) Load8(addr uint16) byte { return u.mem.Load8(addr) }

func (u *UDCRAM) Store8(addr uint16, value byte) {
	u.mem.Store8(addr, value)
	if u.notify != nil {
		u.notify(int(addr-u.mem.Start()), value)
	}
}

// Bytes exposes the raw backing array.
func (u *UDCRAM) Bytes() []byte { return u.mem.Bytes() }
