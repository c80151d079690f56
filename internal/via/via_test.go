package via

import "testing"

type fakeKeyboard struct {
	rows [16]byte
}

func newFakeKeyboard() *fakeKeyboard {
	k := &fakeKeyboard{}
	for i := range k.rows {
		k.rows[i] = 0x1F
	}
	return k
}

func (k *fakeKeyboard) RowMask(row int) byte { return k.rows[row] }

type fakeIRQ struct {
	requested, cleared int
}

func (f *fakeIRQ) RequestIRQ() { f.requested++ }
func (f *fakeIRQ) ClearIRQ()   { f.cleared++ }

type fakeBuzzer struct {
	enabled bool
	freq    float64
	calls   int
}

func (b *fakeBuzzer) SetState(enabled bool, freq float64) {
	b.enabled, b.freq = enabled, freq
	b.calls++
}

type fakeFont struct {
	userPlane bool
}

func (f *fakeFont) SelectPlane(userPlane bool) { f.userPlane = userPlane }

func newTestVIA() (*VIA, *fakeKeyboard, *fakeIRQ, *fakeBuzzer, *fakeFont) {
	kb := newFakeKeyboard()
	irq := &fakeIRQ{}
	buzzer := &fakeBuzzer{}
	font := &fakeFont{}
	v := New(0xC800, 500000, irq, kb, buzzer, font)
	return v, kb, irq, buzzer, font
}

func TestVIA_Scenario6_Timer1SquareWave(t *testing.T) {
	v, _, _, _, _ := newTestVIA()
	v.Store8(0xC80B, 0xC0) // ACR
	v.Store8(0xC806, 0x10) // T1LL
	v.Store8(0xC807, 0x00) // T1LH
	v.Store8(0xC805, 0x00) // T1CH

	v.Tick(0x14)
	if v.IFR&IFRT1 == 0 {
		t.Fatalf("IFR.T1 not set after first tick burst")
	}
	if v.portBCache&0x80 == 0 {
		t.Fatalf("PB7 not high after first toggle")
	}
	if v.portBCache&0x40 == 0 {
		t.Fatalf("PB6 does not mirror PB7")
	}

	v.Tick(0x14)
	if v.portBCache&0x80 != 0 {
		t.Fatalf("PB7 not low after second toggle")
	}
	if v.portBCache&0x40 != 0 {
		t.Fatalf("PB6 does not mirror PB7 after second toggle")
	}
}

func TestVIA_Scenario7_Timer2OneShot(t *testing.T) {
	v, _, _, _, _ := newTestVIA()
	v.Store8(0xC808, 0x10) // T2CL
	v.Store8(0xC809, 0x00) // T2CH

	v.Tick(0x11)
	if v.IFR&IFRT2 == 0 {
		t.Fatalf("IFR.T2 not set after 0x11 ticks")
	}

	v.Load8(0xC808) // read T2CL clears IFR.T2
	if v.IFR&IFRT2 != 0 {
		t.Fatalf("IFR.T2 not cleared by T2CL read")
	}

	v.Tick(0x10)
	if v.IFR&IFRT2 != 0 {
		t.Fatalf("IFR.T2 re-armed without T2CH rewrite")
	}
}

func TestVIA_Scenario8_KeyboardRaisesCA1(t *testing.T) {
	v, kb, _, _, _ := newTestVIA()
	v.Store8(0xC801, 0x01) // ORA selects row 1

	kb.rows[1] = 0x1E // bit0 pressed (active low)
	v.NotifyKeyChange()
	if v.IFR&IFRCA1 == 0 {
		t.Fatalf("IFR.CA1 not set on key press")
	}
	if v.composePortB()&0x01 != 0 {
		t.Fatalf("port_b[0] not low while key 0 pressed")
	}

	v.Load8(0xC801) // read IORA clears IFR.CA1
	if v.IFR&IFRCA1 != 0 {
		t.Fatalf("IFR.CA1 not cleared by IORA read")
	}

	kb.rows[1] = 0x1F // release
	v.NotifyKeyChange()
	if v.composePortB()&0x01 == 0 {
		t.Fatalf("port_b[0] not high after release")
	}
	if v.IFR&IFRCA1 != 0 {
		t.Fatalf("release must not raise IFR.CA1 (no new falling edge)")
	}
}

func TestVIA_IFRIERInvariant(t *testing.T) {
	v, _, _, _, _ := newTestVIA()
	v.Store8(0xC80E, 0x80|IFRT1) // enable T1 interrupt
	v.setIFR(IFRT1)
	if (v.IFR&0x80 != 0) != (v.IFR&v.IER&0x7F != 0) {
		t.Fatalf("IFR/IER invariant violated: IFR=%#02x IER=%#02x", v.IFR, v.IER)
	}
	v.Store8(0xC80D, IFRT1) // clear T1 flag
	if (v.IFR&0x80 != 0) != (v.IFR&v.IER&0x7F != 0) {
		t.Fatalf("IFR/IER invariant violated after clear: IFR=%#02x IER=%#02x", v.IFR, v.IER)
	}
}

func TestVIA_IRQCoupling(t *testing.T) {
	v, _, irq, _, _ := newTestVIA()
	v.Store8(0xC80E, 0x80|IFRCA1)
	v.setIFR(IFRCA1)
	if irq.requested != 1 {
		t.Fatalf("RequestIRQ calls = %d, want 1", irq.requested)
	}
	v.clearIFR(IFRCA1)
	if irq.cleared != 1 {
		t.Fatalf("ClearIRQ calls = %d, want 1", irq.cleared)
	}
}

func TestVIA_FontPlaneSelect(t *testing.T) {
	v, _, _, _, font := newTestVIA()
	v.Store8(0xC800, 0x20) // IORB bit 5 set -> user plane
	if !font.userPlane {
		t.Fatalf("font plane not switched to user plane")
	}
	v.Store8(0xC800, 0x00)
	if font.userPlane {
		t.Fatalf("font plane not switched back to ROM plane")
	}
}

func TestVIA_GamepadLikeIERReadForcesBit7(t *testing.T) {
	v, _, _, _, _ := newTestVIA()
	v.Store8(0xC80E, 0x00) // clear all, bit7=0 means disable mask bits
	if got := v.Load8(0xC80E); got&0x80 == 0 {
		t.Fatalf("IER read must force bit 7 to 1, got %#02x", got)
	}
}
