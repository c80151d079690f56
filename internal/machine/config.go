package machine

// Config contains the settings that determine how a Machine is assembled
// and how fast its cycle coupler drives the CPU/VIA pair.
type Config struct {
	ClockHz             float64 // MB8861 clock rate in Hz
	FrameRate           float64 // target frames per second for StepFrame's budget
	ExtendedRAM         bool    // false: 16 KiB main RAM; true: 32 KiB
	StrictIllegalOpcode bool    // false treats unregistered opcodes as NOP
	Trace               bool    // enable the debug trace ring buffer
}

// Defaults returns the JR-100's nominal configuration: an 894.886 kHz
// clock, 60 Hz frame cadence, 16 KiB main RAM, strict illegal-opcode
// handling.
func Defaults() Config {
	return Config{
		ClockHz:             894886,
		FrameRate:           60,
		ExtendedRAM:         false,
		StrictIllegalOpcode: true,
		Trace:               false,
	}
}
