// Package cpu implements the MB8861, the JR-100's main processor: a
// Motorola 6800-compatible superset with a dense 256-entry opcode table,
// the addressing modes and flag-arithmetic rules of §4.3, and WAI/SWI/
// interrupt dispatch.
package cpu

import "fmt"

// Condition code bits.
const (
	FlagH = 0x20
	FlagI = 0x10
	FlagN = 0x08
	FlagZ = 0x04
	FlagV = 0x02
	FlagC = 0x01
)

const (
	ResetVector = 0xFFFE
	NmiVector   = 0xFFFC
	IrqVector   = 0xFFF8
	SwiVector   = 0xFFFA
)

// Bus is the subset of internal/bus.Bus the CPU needs.
type Bus interface {
	Load8(addr uint16) byte
	Store8(addr uint16, value byte)
	Load16(addr uint16) uint16
	Store16(addr uint16, value uint16)
}

// IllegalOpcodeError is returned when Step decodes a byte with no table
// entry. It is fatal to the current run per spec §7.
type IllegalOpcodeError struct {
	Opcode byte
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode %#02x at pc=%#04x", e.Opcode, e.PC)
}

// CPU is the MB8861 register file plus execution engine.
type CPU struct {
	A, B byte
	X    uint16
	SP   uint16
	PC   uint16
	cc   byte

	CycleCount int64
	Halted     bool
	WaiLatch   bool
	IrqPending bool
	NmiPending bool

	// StrictIllegalOpcode, when false, treats an unregistered opcode as a
	// 2-cycle NOP instead of returning IllegalOpcodeError. Spec default is
	// strict (true).
	StrictIllegalOpcode bool

	Bus Bus
}

// New constructs a CPU wired to bus; call Reset before stepping.
func New(b Bus) *CPU {
	return &CPU{Bus: b, StrictIllegalOpcode: true}
}

// CC returns the condition code register; bits 0x80/0x40 always read 1.
func (c *CPU) CC() byte { return c.cc | 0xC0 }

// SetCC installs value, forcing bits 0x80/0x40 to 1.
func (c *CPU) SetCC(value byte) { c.cc = value | 0xC0 }

func (c *CPU) flag(mask byte) bool { return c.cc&mask != 0 }

func (c *CPU) setFlag(mask byte, on bool) {
	if on {
		c.cc |= mask
	} else {
		c.cc &^= mask
	}
	c.cc |= 0xC0
}

// Reset clears the register file and loads PC from the restart vector.
func (c *CPU) Reset() {
	c.A, c.B, c.X, c.PC = 0, 0, 0, 0
	c.SP = 0x01FF
	c.cc = 0xC0
	c.CycleCount = 0
	c.Halted = false
	c.WaiLatch = false
	c.IrqPending = false
	c.NmiPending = false
	c.PC = c.Bus.Load16(ResetVector)
}

// RequestIRQ latches a maskable interrupt for service on the next Step.
func (c *CPU) RequestIRQ() { c.IrqPending = true }

// ClearIRQ clears a pending maskable interrupt request.
func (c *CPU) ClearIRQ() { c.IrqPending = false }

// RequestNMI latches a non-maskable interrupt.
func (c *CPU) RequestNMI() { c.NmiPending = true }

// Step services one pending interrupt (NMI before IRQ) and returns its
// cycles, or otherwise executes at most one instruction, returning the
// number of cycles consumed. An interrupt left pending behind an NMI is
// serviced on a later Step.
func (c *CPU) Step() (int, error) {
	if c.Halted {
		return 0, nil
	}

	interruptCycles := 0
	if c.NmiPending {
		interruptCycles += c.serviceNMI()
		c.NmiPending = false
	} else if c.IrqPending && !c.flag(FlagI) {
		interruptCycles += c.serviceIRQ()
		c.IrqPending = false
	}

	if interruptCycles > 0 {
		c.CycleCount += int64(interruptCycles)
		return interruptCycles, nil
	}
	if c.WaiLatch {
		return 0, nil
	}

	opcode := c.fetchByte()
	inst := opcodeTable[opcode]
	if inst == nil {
		if c.StrictIllegalOpcode {
			return 0, &IllegalOpcodeError{Opcode: opcode, PC: c.PC - 1}
		}
		total := interruptCycles + 2
		c.CycleCount += int64(total)
		return total, nil
	}

	extra := inst.Handler(c, inst)
	total := interruptCycles + inst.Cycles + extra
	c.CycleCount += int64(total)
	return total, nil
}

// serviceNMI vectors to the NMI handler. If the CPU is already WAI-latched,
// the register frame was pushed by WAI itself and is not pushed again.
func (c *CPU) serviceNMI() int {
	if !c.WaiLatch {
		c.pushAllRegisters()
	}
	c.PC = c.Bus.Load16(NmiVector)
	c.WaiLatch = false
	return 12
}

func (c *CPU) serviceIRQ() int {
	if !c.WaiLatch {
		c.pushAllRegisters()
	}
	c.setFlag(FlagI, true)
	c.PC = c.Bus.Load16(IrqVector)
	c.WaiLatch = false
	return 12
}

// ------------------------------------------------------------------
// Fetch helpers

func (c *CPU) fetchByte() byte {
	v := c.Bus.Load8(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetchWord() uint16 {
	hi := c.fetchByte()
	lo := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) fetchRelative() int {
	d := c.fetchByte()
	if d&0x80 != 0 {
		return int(d) - 0x100
	}
	return int(d)
}

// fetchOperand returns the operand value for modes that carry one (LD, ADD,
// CMP, ...). INHERENT and addressing modes with no operand return 0.
func (c *CPU) fetchOperand(mode Mode) uint16 {
	switch mode {
	case Inherent:
		return 0
	case Immediate:
		return uint16(c.fetchByte())
	case Immediate16:
		return c.fetchWord()
	case Direct:
		return uint16(c.Bus.Load8(uint16(c.fetchByte())))
	case Direct16:
		return c.Bus.Load16(uint16(c.fetchByte()))
	case Extended:
		return uint16(c.Bus.Load8(c.fetchWord()))
	case Extended16:
		return c.Bus.Load16(c.fetchWord())
	case Indexed:
		addr := c.X + uint16(c.fetchByte())
		return uint16(c.Bus.Load8(addr))
	case Indexed16:
		addr := c.X + uint16(c.fetchByte())
		return c.Bus.Load16(addr)
	default:
		panic(fmt.Sprintf("cpu: unsupported addressing mode for operand fetch: %v", mode))
	}
}

// resolveAddress computes an 8-bit-target address for DIRECT/INDEXED/EXTENDED.
func (c *CPU) resolveAddress(mode Mode) uint16 {
	switch mode {
	case Direct:
		return uint16(c.fetchByte())
	case Indexed:
		return c.X + uint16(c.fetchByte())
	case Extended:
		return c.fetchWord()
	default:
		panic(fmt.Sprintf("cpu: addressing mode %v cannot resolve to an address", mode))
	}
}

// resolveAddress16 computes a 16-bit-target address for DIRECT16/INDEXED16/EXTENDED16.
func (c *CPU) resolveAddress16(mode Mode) uint16 {
	switch mode {
	case Direct16:
		return uint16(c.fetchByte())
	case Indexed16:
		return c.X + uint16(c.fetchByte())
	case Extended16:
		return c.fetchWord()
	default:
		panic(fmt.Sprintf("cpu: addressing mode %v cannot resolve to a 16-bit address", mode))
	}
}

// ------------------------------------------------------------------
// Register access

func (c *CPU) getAccum(which byte) byte {
	if which == 'A' {
		return c.A
	}
	return c.B
}

func (c *CPU) setAccum(which byte, value byte) {
	if which == 'A' {
		c.A = value
	} else {
		c.B = value
	}
}

// ------------------------------------------------------------------
// Stack helpers (6800 convention: push writes then decrements; pull
// increments then reads)

func (c *CPU) pushByte(value byte) {
	c.Bus.Store8(c.SP, value)
	c.SP--
}

func (c *CPU) pullByte() byte {
	c.SP++
	return c.Bus.Load8(c.SP)
}

func (c *CPU) pushWord(value uint16) {
	c.pushByte(byte(value))
	c.pushByte(byte(value >> 8))
}

func (c *CPU) pullWord() uint16 {
	hi := c.pullByte()
	lo := c.pullByte()
	return uint16(hi)<<8 | uint16(lo)
}

// pushAllRegisters saves CC, B, A, X, PC per §4.3's push-all layout.
func (c *CPU) pushAllRegisters() {
	c.pushByte(byte(c.PC))
	c.pushByte(byte(c.PC >> 8))
	c.pushByte(byte(c.X))
	c.pushByte(byte(c.X >> 8))
	c.pushByte(c.A)
	c.pushByte(c.B)
	c.pushByte(c.CC())
}

// pullAllRegisters restores CC, B, A, X, PC (RTI/interrupt-return order).
func (c *CPU) pullAllRegisters() {
	c.SetCC(c.pullByte())
	c.B = c.pullByte()
	c.A = c.pullByte()
	xHi := c.pullByte()
	xLo := c.pullByte()
	c.X = uint16(xHi)<<8 | uint16(xLo)
	pcHi := c.pullByte()
	pcLo := c.pullByte()
	c.PC = uint16(pcHi)<<8 | uint16(pcLo)
}

func (c *CPU) branch(displacement int) {
	c.PC = uint16(int(c.PC) + displacement)
}
