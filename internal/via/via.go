// Package via implements the 6522 VIA peripheral that drives the JR-100's
// keyboard matrix, one-bit buzzer and display font-plane selector. The VIA
// is stepped in lockstep with retired CPU cycles by the cycle coupler in
// internal/machine.
package via

// IFR bit layout (fixed by the 6522).
const (
	IFRCA2 = 0x01
	IFRCA1 = 0x02
	IFRSR  = 0x04
	IFRCB2 = 0x08
	IFRCB1 = 0x10
	IFRT2  = 0x20
	IFRT1  = 0x40
	IFRIRQ = 0x80
)

// Register offsets within the 16-byte VIA window (0xC800-0xC80F).
const (
	regIORB = 0x00
	regIORA = 0x01
	regDDRB = 0x02
	regDDRA = 0x03
	regT1CL = 0x04
	regT1CH = 0x05
	regT1LL = 0x06
	regT1LH = 0x07
	regT2CL = 0x08
	regT2CH = 0x09
	regSR   = 0x0A
	regACR  = 0x0B
	regPCR  = 0x0C
	regIFR  = 0x0D
	regIER  = 0x0E
	regIORA2 = 0x0F
)

// InterruptLine is the CPU-side latch set the VIA drives on IFR.IRQ edges.
// *cpu.CPU satisfies this directly.
type InterruptLine interface {
	RequestIRQ()
	ClearIRQ()
}

// KeyboardMatrix supplies the active-low pressed-key mask for a selected
// row (bits 0-4 of port B); bit set = not pressed.
type KeyboardMatrix interface {
	RowMask(row int) byte
}

// BuzzerSink receives timer-1 square-wave state transitions.
type BuzzerSink interface {
	SetState(enabled bool, frequencyHz float64)
}

// FontPlaneSink receives ORB/DDRB-driven font-plane selection changes.
type FontPlaneSink interface {
	SelectPlane(userPlane bool)
}

// VIA is the 6522 peripheral register file plus its two timers and port-B
// composition logic.
type VIA struct {
	ORA, ORB, DDRA, DDRB byte
	ACR, PCR             byte
	IFR, IER             byte
	SR                   byte
	IRA, IRB             byte

	T1, T1Latch int32
	T2, T2Latch int32

	CA1, CA2, CB1, CB2 bool
	ca2Timer           int

	timer1Initialized bool
	timer1Enable      bool
	timer2Initialized bool
	timer2Enable      bool
	ca2Latched        bool
	previousPB6       bool
	portBCache        byte

	clockHz float64

	irq      InterruptLine
	keyboard KeyboardMatrix
	buzzer   BuzzerSink
	font     FontPlaneSink

	buzzerOn   bool
	buzzerFreq float64

	start uint16
}

// New constructs a VIA mapped at start (normally 0xC800), wired to the
// embedder-supplied collaborators described in spec §6.
func New(start uint16, clockHz float64, irq InterruptLine, keyboard KeyboardMatrix, buzzer BuzzerSink, font FontPlaneSink) *VIA {
	return &VIA{
		start:    start,
		clockHz:  clockHz,
		irq:      irq,
		keyboard: keyboard,
		buzzer:   buzzer,
		font:     font,
		ca2Timer: -1,
	}
}

func (v *VIA) Start() uint16 { return v.start }
func (v *VIA) End() uint16   { return v.start + 0x0F }

// ------------------------------------------------------------------
// Register access (bus.Addressable)

func (v *VIA) Load8(addr uint16) byte {
	switch addr - v.start {
	case regIORB:
		v.clearIFR(IFRCB1)
		if v.PCR&0x20 != 0x20 || true {
			v.clearIFR(IFRCB2)
		}
		return v.composePortB()
	case regIORA, regIORA2:
		v.clearIFR(IFRCA1 | IFRCA2)
		v.handleCA2ReadHandshake()
		return v.composePortA()
	case regDDRB:
		return v.DDRB
	case regDDRA:
		return v.DDRA
	case regT1CL:
		v.clearIFR(IFRT1)
		return byte(v.T1)
	case regT1CH:
		return byte(v.T1 >> 8)
	case regT1LL:
		return byte(v.T1Latch)
	case regT1LH:
		return byte(v.T1Latch >> 8)
	case regT2CL:
		v.clearIFR(IFRT2)
		return byte(v.T2)
	case regT2CH:
		return byte(v.T2 >> 8)
	case regSR:
		return v.SR
	case regACR:
		return v.ACR
	case regPCR:
		return v.PCR
	case regIFR:
		return v.IFR
	case regIER:
		return v.IER | 0x80
	default:
		return 0
	}
}

func (v *VIA) Store8(addr uint16, value byte) {
	switch addr - v.start {
	case regIORB:
		v.ORB = value
		v.clearIFR(IFRCB1 | IFRCB2)
		v.composePortB()
		v.notifyFontPlane()
	case regIORA:
		v.ORA = value
		v.clearIFR(IFRCA1 | IFRCA2)
		v.refreshKeyboardRow()
		v.handleCA2WriteHandshake()
	case regDDRB:
		v.DDRB = value
		v.notifyFontPlane()
	case regDDRA:
		v.DDRA = value
	case regT1CL:
		v.T1Latch = (v.T1Latch & 0xFF00) | int32(value)
	case regT1CH:
		v.T1Latch = (v.T1Latch & 0x00FF) | int32(value)<<8
		v.T1 = v.T1Latch
		v.timer1Initialized = true
		v.timer1Enable = true
		v.clearIFR(IFRT1)
		v.setPB7(false)
		v.updateBuzzer()
	case regT1LL:
		v.T1Latch = (v.T1Latch & 0xFF00) | int32(value)
	case regT1LH:
		v.T1Latch = (v.T1Latch & 0x00FF) | int32(value)<<8
	case regT2CL:
		v.T2Latch = (v.T2Latch & 0xFF00) | int32(value)
	case regT2CH:
		v.T2Latch = (v.T2Latch & 0x00FF) | int32(value)<<8
		v.T2 = v.T2Latch
		v.timer2Initialized = true
		v.timer2Enable = true
		v.clearIFR(IFRT2)
	case regSR:
		v.SR = value
	case regACR:
		v.ACR = value
		v.composePortB()
		v.updateBuzzer()
	case regPCR:
		v.PCR = value
		v.refreshCA1Level()
	case regIFR:
		if value&0x80 != 0 {
			v.IFR = 0
		} else {
			v.IFR &^= value
		}
		v.recomputeIRQ()
	case regIER:
		if value&0x80 != 0 {
			v.IER |= value & 0x7F
		} else {
			v.IER &^= value & 0x7F
		}
		v.recomputeIRQ()
	}
}

// ------------------------------------------------------------------
// Port composition

// composePortB applies §4.4's three-step port-B rule and returns the
// synthesized byte; it also updates IRB per ACR[1] latching.
func (v *VIA) composePortB() byte {
	port := v.portBCache
	if v.DDRB&0x20 != 0 {
		if v.ORB&0x20 != 0 {
			port |= 0x20
		} else {
			port &^= 0x20
		}
	}
	input := v.synthesizedKeyboardInput()
	port = (input & ^v.DDRB) | (v.ORB & v.DDRB)
	if port&0x80 != 0 {
		port |= 0x40
	} else {
		port &^= 0x40
	}
	v.portBCache = port
	if v.ACR&0x02 == 0 {
		v.IRB = port
	}
	return port
}

func (v *VIA) composePortA() byte {
	return (0xFF & ^v.DDRA) | (v.ORA & v.DDRA)
}

func (v *VIA) synthesizedKeyboardInput() byte {
	if v.keyboard == nil {
		return 0xFF
	}
	row := int(v.ORA & 0x0F)
	return v.keyboard.RowMask(row) | 0xE0
}

func (v *VIA) refreshKeyboardRow() {
	v.composePortB()
	v.refreshCA1Level()
}

// NotifyKeyChange re-synthesizes port B and CA1 for the currently selected
// row; the external keyboard layer calls this whenever a key transitions,
// independent of any ORA write.
func (v *VIA) NotifyKeyChange() {
	v.refreshKeyboardRow()
}

func (v *VIA) refreshCA1Level() {
	row := int(v.ORA & 0x0F)
	pressed := v.keyboard != nil && v.keyboard.RowMask(row)&0x1F != 0x1F
	edgeLowActive := v.PCR&0x01 == 0
	wasCA1 := v.CA1
	v.CA1 = !pressed
	if edgeLowActive {
		if wasCA1 && !v.CA1 {
			v.setIFR(IFRCA1)
		}
	} else {
		if !wasCA1 && v.CA1 {
			v.setIFR(IFRCA1)
		}
	}
}

// setPB7 drives the timer-1 output bit; the JR-100 jumper mirrors it onto
// PB6.
func (v *VIA) setPB7(high bool) {
	if high {
		v.portBCache |= 0xC0
	} else {
		v.portBCache &^= 0xC0
	}
}

func (v *VIA) togglePB7() {
	v.setPB7(v.portBCache&0x80 == 0)
}

// ------------------------------------------------------------------
// IFR/IER

func (v *VIA) setIFR(bit byte) {
	v.IFR |= bit
	v.recomputeIRQ()
}

func (v *VIA) clearIFR(bit byte) {
	v.IFR &^= bit
	v.recomputeIRQ()
}

func (v *VIA) recomputeIRQ() {
	active := v.IFR&v.IER&0x7F != 0
	wasActive := v.IFR&IFRIRQ != 0
	if active {
		v.IFR |= IFRIRQ
	} else {
		v.IFR &^= IFRIRQ
	}
	if v.irq == nil {
		return
	}
	if active && !wasActive {
		v.irq.RequestIRQ()
	} else if !active && wasActive {
		v.irq.ClearIRQ()
	}
}

// ------------------------------------------------------------------
// CA2 handshake (minimal: pulse-mode countdown only, per spec's no-op
// allowance for shift-register/CB modes the JR-100 ROM does not exercise)

func (v *VIA) handleCA2ReadHandshake() {
	if v.PCR&0x0E == 0x08 { // pulse mode
		v.ca2Timer = 1
		v.CA2 = false
	}
}

func (v *VIA) handleCA2WriteHandshake() {
	if v.PCR&0x0E == 0x08 {
		v.ca2Timer = 1
		v.CA2 = false
	}
}

func (v *VIA) notifyFontPlane() {
	if v.font != nil {
		v.font.SelectPlane(v.ORB&0x20 != 0)
	}
}

func (v *VIA) updateBuzzer() {
	squareWave := v.ACR&0xC0 == 0xC0
	if !squareWave || !v.timer1Initialized {
		if v.buzzerOn {
			v.buzzerOn = false
			if v.buzzer != nil {
				v.buzzer.SetState(false, 0.0)
			}
		}
		return
	}
	freq := v.clockHz / (2 * (float64(v.T1Latch) + 2))
	if !v.buzzerOn || freq != v.buzzerFreq {
		v.buzzerOn = true
		v.buzzerFreq = freq
		if v.buzzer != nil {
			v.buzzer.SetState(true, freq)
		}
	}
}

// ------------------------------------------------------------------
// Cycle-driven timers

// Tick advances the VIA's internal clock by exactly cycles ticks, matching
// the cycle coupler's coupling invariant in spec §4.5/§5.
func (v *VIA) Tick(cycles int) {
	for i := 0; i < cycles; i++ {
		v.tickOne()
	}
}

func (v *VIA) tickOne() {
	v.tickCA2Timer()
	v.tickTimer1()
	v.tickTimer2()
}

func (v *VIA) tickCA2Timer() {
	if v.ca2Timer < 0 {
		return
	}
	v.ca2Timer--
	if v.ca2Timer < 0 {
		v.CA2 = true
		v.setIFR(IFRCA2)
	}
}

func (v *VIA) tickTimer1() {
	if v.timer1Initialized {
		v.timer1Initialized = false
		return
	}
	if v.T1 >= 0 {
		v.T1--
		return
	}
	if v.timer1Enable {
		v.setIFR(IFRT1)
		switch (v.ACR >> 6) & 0x03 {
		case 0b00:
			v.timer1Enable = false
		case 0b01:
			v.togglePB7()
			v.updateBuzzer()
		case 0b10:
			v.timer1Enable = false
			v.setPB7(true)
		case 0b11:
			v.togglePB7()
			v.updateBuzzer()
		}
	}
	v.T1 = v.T1Latch
	v.timer1Initialized = true
}

func (v *VIA) tickTimer2() {
	pulseMode := v.ACR&0x20 != 0
	if pulseMode {
		pb6 := v.portBCache&0x40 != 0
		edge := v.previousPB6 && !pb6
		v.previousPB6 = pb6
		if !edge {
			return
		}
	}
	v.T2--
	if v.T2 < 0 {
		if v.timer2Enable {
			v.setIFR(IFRT2)
			v.timer2Enable = false
		}
		v.T2 = v.T2Latch
	}
}
