// Package loader implements the PROG container format (versions 1 and 2)
// and the plain-text BASIC listing format used to seed JR-100 memory
// images before the cycle coupler starts running the CPU.
package loader

// AddressRegion is a contiguous range of loaded bytes, reported so a front
// end can show the user what was placed where.
type AddressRegion struct {
	Start, End uint16
	Comment    string
}

// Length returns the number of bytes spanned by the region.
func (r AddressRegion) Length() int { return int(r.End) - int(r.Start) + 1 }

// ProgramImage is the metadata a loader extracts alongside its memory
// writes.
type ProgramImage struct {
	Name      string
	Comment   string
	BasicArea bool
	Regions   []AddressRegion
}

func (p *ProgramImage) addRegion(start, end uint16, comment string) {
	p.Regions = append(p.Regions, AddressRegion{Start: start, End: end, Comment: comment})
}

// MemoryWriter is the narrow interface loaders need from the bus: a plain
// byte-addressed store, matching internal/bus.Bus.Store8.
type MemoryWriter interface {
	Store8(addr uint16, value byte)
}

// FormatError reports a malformed PROG or BASIC-text input (spec §7).
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return "loader: " + e.Reason }

const (
	addressStartOfBasicProgram = 0x0246
	sentinelValue              = 0xDF
)

func writeBlock(mem MemoryWriter, start uint16, payload []byte) {
	for i, b := range payload {
		mem.Store8(start+uint16(i), b)
	}
}

// writeBasicTrailer places the three sentinel bytes after a BASIC payload
// ending at endAddr and rewrites the BASIC pointer table at 0x0006-0x000D.
// It does not write the start-address words at 0x0002/0x0004, and neither
// do its PROG-loader callers; only the BASIC-text loader writes those, via
// writeBasicPointerTable.
func writeBasicTrailer(mem MemoryWriter, endAddr int) {
	base := endAddr + 1
	for i := 0; i < 3; i++ {
		mem.Store8(uint16(base+i), sentinelValue)
	}
	addresses := [4]int{0x0006, 0x0008, 0x000A, 0x000C}
	values := [4]int{endAddr, endAddr + 1, endAddr + 2, endAddr + 3}
	for i, addr := range addresses {
		v := values[i]
		mem.Store8(uint16(addr), byte(v>>8))
		mem.Store8(uint16(addr+1), byte(v))
	}
}

func writeBasicStartVector(mem MemoryWriter, start int) {
	for _, addr := range [2]int{0x0002, 0x0004} {
		mem.Store8(uint16(addr), byte(start>>8))
		mem.Store8(uint16(addr+1), byte(start))
	}
}

// writeBasicPointerTable mirrors the text loader's vector layout: start is
// duplicated at 0x0002/0x0004, and end seeds 0x0006/0x0008/0x000A/0x000C as
// end, end+1, end+2, end+3 — distinct from writeBasicTrailer's convention
// because the text loader's end pointer already accounts for the sentinel
// run it wrote inline, one slot differently than a raw PROG payload's last
// byte.
func writeBasicPointerTable(mem MemoryWriter, start, end int) {
	writeBasicStartVector(mem, start)
	addresses := [4]int{0x0006, 0x0008, 0x000A, 0x000C}
	values := [4]int{end, end + 1, end + 2, end + 3}
	for i, addr := range addresses {
		v := values[i]
		mem.Store8(uint16(addr), byte(v>>8))
		mem.Store8(uint16(addr+1), byte(v))
	}
}
