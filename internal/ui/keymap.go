package ui

import "github.com/hajimehoshi/ebiten/v2"

// keyCell is one entry of the JR-100's 9-row keyboard matrix, grounded on
// the physical key layout: row index plus the bit position within that
// row's 5-bit active-low mask.
type keyCell struct {
	row, bit int
}

// keymap translates host keys to JR-100 matrix cells. Row numbering and
// bit positions follow the machine's original key-matrix wiring.
var keymap = map[ebiten.Key]keyCell{
	ebiten.KeyC: {0, 4}, ebiten.KeyX: {0, 3}, ebiten.KeyZ: {0, 2},
	ebiten.KeyShiftLeft: {0, 1}, ebiten.KeyShiftRight: {0, 1},
	ebiten.KeyControlLeft: {0, 0}, ebiten.KeyControlRight: {0, 0},

	ebiten.KeyG: {1, 4}, ebiten.KeyF: {1, 3}, ebiten.KeyD: {1, 2}, ebiten.KeyS: {1, 1}, ebiten.KeyA: {1, 0},

	ebiten.KeyT: {2, 4}, ebiten.KeyR: {2, 3}, ebiten.KeyE: {2, 2}, ebiten.KeyW: {2, 1}, ebiten.KeyQ: {2, 0},

	ebiten.Key5: {3, 4}, ebiten.Key4: {3, 3}, ebiten.Key3: {3, 2}, ebiten.Key2: {3, 1}, ebiten.Key1: {3, 0},

	ebiten.Key0: {4, 4}, ebiten.Key9: {4, 3}, ebiten.Key8: {4, 2}, ebiten.Key7: {4, 1}, ebiten.Key6: {4, 0},

	ebiten.KeyP: {5, 4}, ebiten.KeyO: {5, 3}, ebiten.KeyI: {5, 2}, ebiten.KeyU: {5, 1}, ebiten.KeyY: {5, 0},

	ebiten.KeySemicolon: {6, 4}, ebiten.KeyL: {6, 3}, ebiten.KeyK: {6, 2}, ebiten.KeyJ: {6, 1}, ebiten.KeyH: {6, 0},

	ebiten.KeyComma: {7, 4}, ebiten.KeyM: {7, 3}, ebiten.KeyN: {7, 2}, ebiten.KeyB: {7, 1}, ebiten.KeyV: {7, 0},

	ebiten.KeyMinus: {8, 4}, ebiten.KeyEnter: {8, 3}, ebiten.KeyApostrophe: {8, 2},
	ebiten.KeySpace: {8, 1}, ebiten.KeyPeriod: {8, 0},
}

// applyKeyboard reads every mapped host key's pressed state into km.
func applyKeyboard(km keyboardSetter) {
	for key, cell := range keymap {
		km.SetKey(cell.row, cell.bit, ebiten.IsKeyPressed(key))
	}
}

// keyboardSetter is the narrow slice of internal/io.Keyboard the input
// layer needs.
type keyboardSetter interface {
	SetKey(row, bit int, pressed bool)
}
