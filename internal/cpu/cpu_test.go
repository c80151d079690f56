package cpu

import "testing"

// stubBus is a flat 64KiB RAM used to isolate CPU behaviour from the bus
// package's dispatch and ROM semantics.
type stubBus struct {
	mem [0x10000]byte
}

func (b *stubBus) Load8(addr uint16) byte  { return b.mem[addr] }
func (b *stubBus) Store8(addr uint16, v byte) { b.mem[addr] = v }
func (b *stubBus) Load16(addr uint16) uint16 {
	hi := b.mem[addr]
	lo := b.mem[addr+1]
	return uint16(hi)<<8 | uint16(lo)
}
func (b *stubBus) Store16(addr uint16, v uint16) {
	b.mem[addr] = byte(v >> 8)
	b.mem[addr+1] = byte(v)
}

func newTestCPU() (*CPU, *stubBus) {
	b := &stubBus{}
	c := New(b)
	return c, b
}

func TestCPU_ResetDeterminism(t *testing.T) {
	c, b := newTestCPU()
	b.Store16(ResetVector, 0x1234)
	c.A, c.B, c.X, c.PC = 0x11, 0x22, 0x3344, 0x5566
	c.Reset()
	if c.PC != 0x1234 {
		t.Fatalf("PC = %#04x, want 1234", c.PC)
	}
	if c.SP != 0x01FF {
		t.Fatalf("SP = %#04x, want 01FF", c.SP)
	}
	if c.A != 0 || c.B != 0 || c.X != 0 {
		t.Fatalf("registers not cleared: A=%#02x B=%#02x X=%#04x", c.A, c.B, c.X)
	}
	if c.CC()&0x3F != 0 {
		t.Fatalf("CC low 6 bits not clear: %#02x", c.CC())
	}
}

func TestCPU_Scenario1_LDAAImmediateSetsN(t *testing.T) {
	c, b := newTestCPU()
	c.Reset()
	c.PC = 0x0000
	b.mem[0x0000] = 0x86
	b.mem[0x0001] = 0x80
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x80 {
		t.Fatalf("A = %#02x, want 80", c.A)
	}
	if c.PC != 0x0002 {
		t.Fatalf("PC = %#04x, want 0002", c.PC)
	}
	if !c.flag(FlagN) || c.flag(FlagZ) || c.flag(FlagV) {
		t.Fatalf("flags N=%v Z=%v V=%v, want N=1 Z=0 V=0", c.flag(FlagN), c.flag(FlagZ), c.flag(FlagV))
	}
	if cycles != 2 {
		t.Fatalf("cycles = %d, want 2", cycles)
	}
}

func TestCPU_Scenario2_STAADirect(t *testing.T) {
	c, b := newTestCPU()
	c.Reset()
	c.PC = 0x0000
	c.A = 0x99
	b.mem[0x0000] = 0x97
	b.mem[0x0001] = 0x10
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if b.mem[0x0010] != 0x99 {
		t.Fatalf("mem[0x10] = %#02x, want 99", b.mem[0x0010])
	}
	if !c.flag(FlagN) || c.flag(FlagZ) || c.flag(FlagV) {
		t.Fatalf("flags wrong")
	}
	if cycles != 4 {
		t.Fatalf("cycles = %d, want 4", cycles)
	}
}

func TestCPU_Scenario3_BNETakenSelfLoop(t *testing.T) {
	c, _ := newTestCPU()
	c.Reset()
	c.PC = 0x0100
	c.Bus.Store8(0x0100, 0x26)
	c.Bus.Store8(0x0101, 0xFE)
	c.setFlag(FlagZ, false)
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x0100 {
		t.Fatalf("PC = %#04x, want 0100", c.PC)
	}
	if cycles != 4 {
		t.Fatalf("cycles = %d, want 4", cycles)
	}
}

func TestCPU_Scenario4_WAIThenNMI(t *testing.T) {
	c, b := newTestCPU()
	c.Reset()
	c.PC = 0x0000
	b.mem[0x0000] = 0x3E
	b.Store16(NmiVector, 0x5678)
	c.SP = 0x1FFF

	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step 1: %v", err)
	}
	if !c.WaiLatch {
		t.Fatalf("WaiLatch not set after WAI")
	}
	if cycles != 9 {
		t.Fatalf("step 1 cycles = %d, want 9", cycles)
	}

	c.RequestNMI()
	cycles, err = c.Step()
	if err != nil {
		t.Fatalf("Step 2: %v", err)
	}
	if cycles != 12 {
		t.Fatalf("step 2 cycles = %d, want 12", cycles)
	}
	if c.PC != 0x5678 {
		t.Fatalf("PC = %#04x, want 5678", c.PC)
	}
	if c.SP != 0x1FF8 {
		t.Fatalf("SP = %#04x, want 1FF8", c.SP)
	}
	if c.WaiLatch {
		t.Fatalf("WaiLatch still set after NMI service")
	}
}

func TestCPU_Scenario5_JSRExtRTSRoundTrip(t *testing.T) {
	c, b := newTestCPU()
	c.Reset()
	c.PC = 0x0000
	c.SP = 0x1FF0
	b.mem[0x0000] = 0xBD
	b.mem[0x0001] = 0x80
	b.mem[0x0002] = 0x20
	b.mem[0x8020] = 0x39

	_, err := c.Step()
	if err != nil {
		t.Fatalf("Step 1: %v", err)
	}
	if c.PC != 0x8020 {
		t.Fatalf("PC = %#04x, want 8020", c.PC)
	}
	if c.SP != 0x1FEE {
		t.Fatalf("SP = %#04x, want 1FEE", c.SP)
	}
	if b.mem[0x1FEF] != 0x00 || b.mem[0x1FF0] != 0x03 {
		t.Fatalf("return address on stack wrong: %#02x %#02x", b.mem[0x1FEF], b.mem[0x1FF0])
	}

	_, err = c.Step()
	if err != nil {
		t.Fatalf("Step 2: %v", err)
	}
	if c.PC != 0x0003 {
		t.Fatalf("PC = %#04x, want 0003", c.PC)
	}
	if c.SP != 0x1FF0 {
		t.Fatalf("SP = %#04x, want 1FF0", c.SP)
	}
}

func TestCPU_InterruptPriority_NMIBeforeIRQ(t *testing.T) {
	c, b := newTestCPU()
	c.Reset()
	b.Store16(NmiVector, 0x1000)
	b.Store16(IrqVector, 0x2000)
	b.mem[0x0000] = 0x01 // NOP, in case neither fires
	c.RequestIRQ()
	c.RequestNMI()
	_, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x1000 {
		t.Fatalf("PC = %#04x, want 1000 (NMI serviced first)", c.PC)
	}
	if !c.IrqPending {
		t.Fatalf("IRQ should remain pending after NMI service")
	}
}

func TestCPU_IllegalOpcode(t *testing.T) {
	c, b := newTestCPU()
	c.Reset()
	c.PC = 0x0000
	b.mem[0x0000] = 0x02 // unregistered in the MB8861 table
	_, err := c.Step()
	if err == nil {
		t.Fatalf("expected IllegalOpcodeError")
	}
	if _, ok := err.(*IllegalOpcodeError); !ok {
		t.Fatalf("err = %T, want *IllegalOpcodeError", err)
	}
}

func TestCPU_FlagAlgebra_AddExhaustiveSample(t *testing.T) {
	c, _ := newTestCPU()
	c.Reset()
	cases := []struct{ x, y byte }{
		{0x00, 0x00}, {0x7F, 0x01}, {0xFF, 0x01}, {0x80, 0x80}, {0x0F, 0x01}, {0x50, 0x50},
	}
	for _, tc := range cases {
		c.setFlag(FlagC, false)
		result := c.add8(tc.x, tc.y, false)
		want := tc.x + tc.y
		if result != want {
			t.Fatalf("add8(%#02x,%#02x) = %#02x, want %#02x", tc.x, tc.y, result, want)
		}
		wantC := int(tc.x)+int(tc.y) > 0xFF
		if c.flag(FlagC) != wantC {
			t.Fatalf("add8(%#02x,%#02x) C=%v, want %v", tc.x, tc.y, c.flag(FlagC), wantC)
		}
		wantZ := result == 0
		if c.flag(FlagZ) != wantZ {
			t.Fatalf("add8(%#02x,%#02x) Z=%v, want %v", tc.x, tc.y, c.flag(FlagZ), wantZ)
		}
	}
}

func TestCPU_CCHighBitsForced(t *testing.T) {
	c, _ := newTestCPU()
	c.Reset()
	c.SetCC(0x00)
	if c.CC()&0xC0 != 0xC0 {
		t.Fatalf("CC high bits not forced: %#02x", c.CC())
	}
}

func TestCPU_MemoryRoundTrip(t *testing.T) {
	c, b := newTestCPU()
	c.Reset()
	c.Bus.Store8(0x0042, 0x7E)
	if got := b.mem[0x0042]; got != 0x7E {
		t.Fatalf("got %#02x, want 7E", got)
	}
	if got := c.Bus.Load8(0x0042); got != 0x7E {
		t.Fatalf("Load8 got %#02x, want 7E", got)
	}
}
