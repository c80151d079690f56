package io

// Gamepad composes the active-low directional/button byte read at 0xCC02.
// Bit layout: 0=right, 1=left, 2=up, 3=down, 4=button; bit 5 wired low;
// bits 6-7 undefined (read as 1).
type Gamepad struct {
	baseline byte
	right, left, up, down, button bool
}

// NewGamepad returns a gamepad at its idle value, 0xDF.
func NewGamepad() *Gamepad {
	return &Gamepad{baseline: 0xDF}
}

// SetBaseline records a write to 0xCC02, used as the idle value when no
// directional input is currently active (bus.GamepadSource contract).
func (g *Gamepad) SetBaseline(value byte) { g.baseline = value }

// SetDirection sets all five directional/button lines at once.
func (g *Gamepad) SetDirection(right, left, up, down, button bool) {
	g.right, g.left, g.up, g.down, g.button = right, left, up, down, button
}

// Read composes the current byte (bus.GamepadSource contract). Active
// direction/button lines always clear their bit; an idle line falls back
// to the baseline recorded by the last write to 0xCC02.
func (g *Gamepad) Read() byte {
	v := g.baseline
	setOrClear := func(mask byte, active bool) {
		if active {
			v &^= mask
		}
	}
	setOrClear(0x01, g.right)
	setOrClear(0x02, g.left)
	setOrClear(0x04, g.up)
	setOrClear(0x08, g.down)
	setOrClear(0x10, g.button)
	v &^= 0x20
	v |= 0xC0
	return v
}
