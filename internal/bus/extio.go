package bus

// ExtendedIO covers 0xCC00-0xCFFF. The only live register is the gamepad
// byte at 0xCC02; everything else in the range reads back 0x00 and ignores
// writes, matching the JR-100's sparsely populated extended I/O page.
type ExtendedIO struct {
	start       uint16
	end         uint16
	gamepadRead func() byte
	gamepadSet  func(byte)
}

// GamepadSource supplies the extended I/O port's gamepad register. Read
// composes the current directional/button state; SetBaseline records a
// write to 0xCC02 (used as the idle baseline when no input is active).
type GamepadSource interface {
	Read() byte
	SetBaseline(value byte)
}

// NewExtendedIO covers [start, start+length-1]; gamepad is consulted for
// the register at start+0x02.
func NewExtendedIO(start uint16, length int, gamepad GamepadSource) *ExtendedIO {
	return &ExtendedIO{
		start:       start,
		end:         start + uint16(length) - 1,
		gamepadRead: gamepad.Read,
		gamepadSet:  gamepad.SetBaseline,
	}
}

func (e *ExtendedIO) Start() uint16 { return e.start }
func (e *ExtendedIO) End() uint16   { return e.end }

func (e *ExtendedIO) Load8(addr uint16) byte {
	if addr == e.start+0x02 {
		return e.gamepadRead()
	}
	return 0x00
}

func (e *ExtendedIO) Store8(addr uint16, value byte) {
	if addr == e.start+0x02 {
		e.gamepadSet(value)
	}
}
