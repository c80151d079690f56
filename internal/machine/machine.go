// Package machine assembles the bus, CPU, VIA and font cache into a
// runnable JR-100 and drives them with the per-frame cycle coupler
// described in spec §4.5.
package machine

import (
	"fmt"

	"jr100/internal/bus"
	"jr100/internal/cpu"
	"jr100/internal/font"
	"jr100/internal/io"
	"jr100/internal/trace"
	"jr100/internal/via"
)

// RunningStatus mirrors the computer's lifecycle states.
type RunningStatus int

const (
	StatusRunning RunningStatus = iota
	StatusPaused
	StatusStopped
)

const (
	mainRAMStart    = 0x0000
	mainRAMSize16K  = 0x4000
	mainRAMSize32K  = 0x8000
	udcRAMStart     = 0xC000
	udcRAMSize      = 0x0100
	videoRAMStart   = 0xC100
	videoRAMSize    = 0x0300
	viaStart        = 0xC800
	extIOStart      = 0xCC00
	extIOSize       = 0x0400
	basicROMStart   = 0xE000
	basicROMSize    = 0x2000
)

// Machine is the fully wired JR-100: bus, CPU, VIA, font cache, keyboard
// and gamepad.
type Machine struct {
	cfg Config

	Bus      *bus.Bus
	CPU      *cpu.CPU
	VIA      *via.VIA
	Font     *font.Cache
	Keyboard *io.Keyboard
	Gamepad  *io.Gamepad

	events *EventQueue
	clock  int64
	status RunningStatus

	buzzer via.BuzzerSink
	plane  fontPlaneTracker

	// Trace records a snapshot after every executed instruction when
	// cfg.Trace is set; nil otherwise.
	Trace *trace.Recorder
}

const traceCapacity = 256

type fontPlaneTracker struct{ userPlane bool }

func (f *fontPlaneTracker) SelectPlane(userPlane bool) { f.userPlane = userPlane }

// New assembles a Machine. basicROM must be exactly 0x2000 bytes (mapped
// at 0xE000); fontROM must supply at least 0x400 bytes (128 glyphs x 8
// lines) for plane-1 codes 0x00-0x7F.
func New(cfg Config, basicROM, fontROM []byte, buzzer via.BuzzerSink) (*Machine, error) {
	if len(basicROM) != basicROMSize {
		return nil, fmt.Errorf("machine: BASIC ROM must be %#x bytes, got %#x", basicROMSize, len(basicROM))
	}

	m := &Machine{cfg: cfg, events: NewEventQueue(), buzzer: buzzer}

	m.Bus = bus.New()
	if err := m.Bus.Allocate(0x10000, bus.NewUnmappedMemory(0, 0x10000)); err != nil {
		return nil, err
	}

	ramSize := mainRAMSize16K
	if cfg.ExtendedRAM {
		ramSize = mainRAMSize32K
	}
	ram := bus.NewMemory(mainRAMStart, ramSize)
	if err := m.Bus.Register(ram); err != nil {
		return nil, err
	}

	m.Font = font.NewFromROM(fontROM)
	udc := bus.NewUDCRAM(udcRAMStart, udcRAMSize, m.Font.UpdateUDC)
	if err := m.Bus.Register(udc); err != nil {
		return nil, err
	}
	video := bus.NewVideoRAM(videoRAMStart, videoRAMSize, m.Font.UpdateVideo)
	if err := m.Bus.Register(video); err != nil {
		return nil, err
	}

	m.Keyboard = io.NewKeyboard()
	m.Gamepad = io.NewGamepad()
	extIO := bus.NewExtendedIO(extIOStart, extIOSize, m.Gamepad)
	if err := m.Bus.Register(extIO); err != nil {
		return nil, err
	}

	romDevice := bus.NewROM(basicROMStart, basicROMSize)
	romDevice.LoadImage(basicROM)
	if err := m.Bus.Register(romDevice); err != nil {
		return nil, err
	}

	m.CPU = cpu.New(m.Bus)
	m.CPU.StrictIllegalOpcode = cfg.StrictIllegalOpcode

	m.VIA = via.New(viaStart, cfg.ClockHz, m.CPU, m.Keyboard, buzzer, &m.plane)
	if err := m.Bus.Register(m.VIA); err != nil {
		return nil, err
	}

	if cfg.Trace {
		m.Trace = trace.NewRecorder(traceCapacity)
	}

	m.CPU.Reset()
	return m, nil
}

// Reset reinitializes the CPU; devices with no reset-worthy state (the
// bus, font cache) are left as-is, matching the original event's
// best-effort "reset every device that supports it" policy.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.Keyboard.Reset()
}

// ScheduleReset / SchedulePause / ScheduleResume / SchedulePowerOff queue a
// lifecycle event that StepFrame dispatches before the first CPU step at
// which the machine clock has reached clock.
func (m *Machine) ScheduleReset(clock int64)     { m.events.Add(NewResetEvent(clock)) }
func (m *Machine) SchedulePause(clock int64)     { m.events.Add(NewPauseEvent(clock)) }
func (m *Machine) ScheduleResume(clock int64)    { m.events.Add(NewResumeEvent(clock)) }
func (m *Machine) SchedulePowerOff(clock int64)  { m.events.Add(NewPowerOffEvent(clock)) }

// Status reports the current lifecycle state.
func (m *Machine) Status() RunningStatus { return m.status }

// Clock returns the machine's monotonic cycle counter.
func (m *Machine) Clock() int64 { return m.clock }

// VideoRAM returns a fresh copy of the 32x24 character-code grid at
// 0xC100-0xC3FF, for a renderer to walk one frame at a time.
func (m *Machine) VideoRAM() [videoRAMSize]byte {
	var grid [videoRAMSize]byte
	for i := range grid {
		grid[i] = m.Bus.Load8(uint16(videoRAMStart + i))
	}
	return grid
}

// FontPlane reports the VIA's current CMODE font-plane selection (ORB bit
// 5): false selects the ROM bank (plane 0), true the user/video-derived
// bank (plane 1).
func (m *Machine) FontPlane() bool { return m.plane.userPlane }

// recordTrace captures one CPU/VIA snapshot. opcode is the byte at pc
// before Step() ran, recorded with its mnemonic even when Step decoded no
// instruction (a WAI-idle or interrupt-service step); only a byte with no
// opcode-table entry is recorded as Opcode -1 with an empty mnemonic.
func (m *Machine) recordTrace(pc uint16, opcode byte, cycles int) {
	mnemonic, ok := cpu.Mnemonic(opcode)
	entry := trace.Entry{
		PC:       pc,
		Opcode:   int(opcode),
		Mnemonic: mnemonic,
		Cycles:   cycles,
		A:        m.CPU.A,
		B:        m.CPU.B,
		X:        m.CPU.X,
		SP:       m.CPU.SP,
		CC:       m.CPU.CC(),
		VIAIFR:   m.VIA.IFR,
		VIAIER:   m.VIA.IER,
		VIAORB:   m.VIA.ORB,
		VIADDRB:  m.VIA.DDRB,
		VIAT1:    uint16(m.VIA.T1),
		VIAT2:    uint16(m.VIA.T2),
		Wai:      m.CPU.WaiLatch,
		Halt:     m.CPU.Halted,
	}
	if !ok {
		entry.Opcode = -1
	}
	m.Trace.Record(entry)
}

// idleChunkCap bounds how many cycles the VIA advances in one idle
// (WAI-latched) chunk, so a pending timer interrupt cannot be starved for
// more than this many cycles (spec §4.5).
const idleChunkCap = 32

// StepFrame drives one frame's worth of cycles: cpu_hz / frame_rate,
// dispatching due lifecycle events before each step and keeping the VIA's
// clock coupled to exactly the cycles the CPU retires.
func (m *Machine) StepFrame() error {
	if m.status != StatusRunning {
		m.events.DrainDue(m.clock, m)
		return nil
	}

	budget := int64(m.cfg.ClockHz / m.cfg.FrameRate)
	for budget > 0 {
		m.events.DrainDue(m.clock, m)
		if m.status != StatusRunning {
			return nil
		}

		pc := m.CPU.PC
		opcode := m.Bus.Load8(pc)
		executed, err := m.CPU.Step()
		if m.Trace != nil {
			m.recordTrace(pc, opcode, executed)
		}
		if err != nil {
			m.status = StatusStopped
			return err
		}

		if executed == 0 {
			chunk := budget
			if chunk > idleChunkCap {
				chunk = idleChunkCap
			}
			m.VIA.Tick(int(chunk))
			m.tickBuzzer(int(chunk))
			m.clock += chunk
			budget -= chunk
			continue
		}

		m.VIA.Tick(executed)
		m.tickBuzzer(executed)
		m.clock += int64(executed)
		budget -= int64(executed)
	}
	return nil
}

// cycleTicker is satisfied by buzzer implementations that want sample
// generation locked to the same cycle count the VIA advances by each
// step, instead of a wall-clock timer (an optional capability, following
// the same pattern as bus.Load16able).
type cycleTicker interface {
	Tick(cycles int)
}

func (m *Machine) tickBuzzer(cycles int) {
	if ticker, ok := m.buzzer.(cycleTicker); ok {
		ticker.Tick(cycles)
	}
}
