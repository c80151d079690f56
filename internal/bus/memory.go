package bus

// Memory is a byte-array-backed Addressable. ReadOnly true makes Store8 a
// no-op, matching ROM semantics; RAM leaves it false.
type Memory struct {
	start    uint16
	data     []byte
	readOnly bool
}

// NewMemory allocates a RAM block of length bytes starting at start.
func NewMemory(start uint16, length int) *Memory {
	return &Memory{start: start, data: make([]byte, length)}
}

// NewROM allocates a read-only block; Load8 returns data, Store8 is ignored.
func NewROM(start uint16, length int) *Memory {
	return &Memory{start: start, data: make([]byte, length), readOnly: true}
}

func (m *Memory) Start() uint16 { return m.start }
func (m *Memory) End() uint16   { return m.start + uint16(len(m.data)) - 1 }

func (m *Memory) Load8(addr uint16) byte {
	return m.data[addr-m.start]
}

func (m *Memory) Store8(addr uint16, value byte) {
	if m.readOnly {
		return
	}
	m.data[addr-m.start] = value
}

// LoadImage copies data into the block from offset 0, truncating to the
// block's length. Used to install a ROM image at machine construction.
func (m *Memory) LoadImage(data []byte) {
	n := len(data)
	if n > len(m.data) {
		n = len(m.data)
	}
	copy(m.data[:n], data[:n])
}

// Bytes exposes the raw backing array, read-only use expected (tests,
// snapshotting).
func (m *Memory) Bytes() []byte { return m.data }

// UnmappedMemory answers for addresses with no installed device. Stateless:
// load8(addr) is 0xAA at 0xD000, else 0x00; writes are ignored.
type UnmappedMemory struct {
	start uint16
	end   uint16
}

// NewUnmappedMemory covers [start, start+length-1].
func NewUnmappedMemory(start uint16, length int) *UnmappedMemory {
	return &UnmappedMemory{start: start, end: start + uint16(length) - 1}
}

func (u *UnmappedMemory) Start() uint16 { return u.start }
func (u *UnmappedMemory) End() uint16   { return u.end }

func (u *UnmappedMemory) Load8(addr uint16) byte {
	if addr == 0xD000 {
		return 0xAA
	}
	return 0x00
}

func (u *UnmappedMemory) Store8(addr uint16, value byte) {}
