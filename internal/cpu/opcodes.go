package cpu

// Mode is an MB8861 addressing mode.
type Mode int

const (
	Inherent Mode = iota
	Immediate
	Immediate16
	Direct
	Direct16
	Extended
	Extended16
	Indexed
	Indexed16
	Relative
	Special
)

// Handler executes the semantics of one instruction; Step adds the
// instruction's base cycle count from the table, and the handler returns
// any extra cycles to add on top of it.
type Handler func(c *CPU, inst *Instruction) int

// Instruction is one entry of the dense 256-slot opcode table.
type Instruction struct {
	Opcode   byte
	Mnemonic string
	Mode     Mode
	Cycles   int
	Handler  Handler
	Accum    byte // 'A', 'B', or 0 when the instruction has no accumulator operand
}

var opcodeTable [256]*Instruction

func register(op byte, mnemonic string, mode Mode, cycles int, h Handler, accum byte) {
	if opcodeTable[op] != nil {
		panic("opcode already registered: " + mnemonic)
	}
	opcodeTable[op] = &Instruction{Opcode: op, Mnemonic: mnemonic, Mode: mode, Cycles: cycles, Handler: h, Accum: accum}
}

// Mnemonic returns the registered instruction's mnemonic for opcode, for
// use by trace tooling; ok is false for unregistered opcodes.
func Mnemonic(opcode byte) (mnemonic string, ok bool) {
	inst := opcodeTable[opcode]
	if inst == nil {
		return "", false
	}
	return inst.Mnemonic, true
}

func init() {
	register(0x01, "NOP", Inherent, 2, opNop, 0)

	register(0x86, "LDAA", Immediate, 2, opLdAccumulator, 'A')
	register(0x96, "LDAA", Direct, 3, opLdAccumulator, 'A')
	register(0xA6, "LDAA", Indexed, 5, opLdAccumulator, 'A')
	register(0xB6, "LDAA", Extended, 4, opLdAccumulator, 'A')
	register(0xC6, "LDAB", Immediate, 2, opLdAccumulator, 'B')
	register(0xD6, "LDAB", Direct, 3, opLdAccumulator, 'B')
	register(0xE6, "LDAB", Indexed, 5, opLdAccumulator, 'B')
	register(0xF6, "LDAB", Extended, 4, opLdAccumulator, 'B')

	register(0x97, "STAA", Direct, 4, opStAccumulator, 'A')
	register(0xA7, "STAA", Indexed, 6, opStAccumulator, 'A')
	register(0xB7, "STAA", Extended, 5, opStAccumulator, 'A')
	register(0xD7, "STAB", Direct, 4, opStAccumulator, 'B')
	register(0xE7, "STAB", Indexed, 6, opStAccumulator, 'B')
	register(0xF7, "STAB", Extended, 5, opStAccumulator, 'B')

	register(0x4C, "INCA", Inherent, 2, opIncAccumulator, 'A')
	register(0x5C, "INCB", Inherent, 2, opIncAccumulator, 'B')
	register(0x4A, "DECA", Inherent, 2, opDecAccumulator, 'A')
	register(0x5A, "DECB", Inherent, 2, opDecAccumulator, 'B')

	register(0x16, "TAB", Inherent, 2, opTab, 0)
	register(0x17, "TBA", Inherent, 2, opTba, 0)

	register(0x8B, "ADDA", Immediate, 2, opAddAccumulator, 'A')
	register(0x9B, "ADDA", Direct, 3, opAddAccumulator, 'A')
	register(0xAB, "ADDA", Indexed, 5, opAddAccumulator, 'A')
	register(0xBB, "ADDA", Extended, 4, opAddAccumulator, 'A')
	register(0xCB, "ADDB", Immediate, 2, opAddAccumulator, 'B')
	register(0xDB, "ADDB", Direct, 3, opAddAccumulator, 'B')
	register(0xEB, "ADDB", Indexed, 5, opAddAccumulator, 'B')
	register(0xFB, "ADDB", Extended, 4, opAddAccumulator, 'B')

	register(0x89, "ADCA", Immediate, 2, opAdcAccumulator, 'A')
	register(0x99, "ADCA", Direct, 3, opAdcAccumulator, 'A')
	register(0xA9, "ADCA", Indexed, 5, opAdcAccumulator, 'A')
	register(0xB9, "ADCA", Extended, 4, opAdcAccumulator, 'A')
	register(0xC9, "ADCB", Immediate, 2, opAdcAccumulator, 'B')
	register(0xD9, "ADCB", Direct, 3, opAdcAccumulator, 'B')
	register(0xE9, "ADCB", Indexed, 5, opAdcAccumulator, 'B')
	register(0xF9, "ADCB", Extended, 4, opAdcAccumulator, 'B')

	register(0x80, "SUBA", Immediate, 2, opSubAccumulator, 'A')
	register(0x90, "SUBA", Direct, 3, opSubAccumulator, 'A')
	register(0xA0, "SUBA", Indexed, 5, opSubAccumulator, 'A')
	register(0xB0, "SUBA", Extended, 4, opSubAccumulator, 'A')
	register(0xC0, "SUBB", Immediate, 2, opSubAccumulator, 'B')
	register(0xD0, "SUBB", Direct, 3, opSubAccumulator, 'B')
	register(0xE0, "SUBB", Indexed, 5, opSubAccumulator, 'B')
	register(0xF0, "SUBB", Extended, 4, opSubAccumulator, 'B')

	register(0x82, "SBCA", Immediate, 2, opSbcAccumulator, 'A')
	register(0x92, "SBCA", Direct, 3, opSbcAccumulator, 'A')
	register(0xA2, "SBCA", Indexed, 5, opSbcAccumulator, 'A')
	register(0xB2, "SBCA", Extended, 4, opSbcAccumulator, 'A')
	register(0xC2, "SBCB", Immediate, 2, opSbcAccumulator, 'B')
	register(0xD2, "SBCB", Direct, 3, opSbcAccumulator, 'B')
	register(0xE2, "SBCB", Indexed, 5, opSbcAccumulator, 'B')
	register(0xF2, "SBCB", Extended, 4, opSbcAccumulator, 'B')

	register(0x84, "ANDA", Immediate, 2, opAndAccumulator, 'A')
	register(0x94, "ANDA", Direct, 3, opAndAccumulator, 'A')
	register(0xA4, "ANDA", Indexed, 5, opAndAccumulator, 'A')
	register(0xB4, "ANDA", Extended, 4, opAndAccumulator, 'A')
	register(0xC4, "ANDB", Immediate, 2, opAndAccumulator, 'B')
	register(0xD4, "ANDB", Direct, 3, opAndAccumulator, 'B')
	register(0xE4, "ANDB", Indexed, 5, opAndAccumulator, 'B')
	register(0xF4, "ANDB", Extended, 4, opAndAccumulator, 'B')

	register(0x8A, "ORAA", Immediate, 2, opOraAccumulator, 'A')
	register(0x9A, "ORAA", Direct, 3, opOraAccumulator, 'A')
	register(0xAA, "ORAA", Indexed, 5, opOraAccumulator, 'A')
	register(0xBA, "ORAA", Extended, 4, opOraAccumulator, 'A')
	register(0xCA, "ORAB", Immediate, 2, opOraAccumulator, 'B')
	register(0xDA, "ORAB", Direct, 3, opOraAccumulator, 'B')
	register(0xEA, "ORAB", Indexed, 5, opOraAccumulator, 'B')
	register(0xFA, "ORAB", Extended, 4, opOraAccumulator, 'B')

	register(0x88, "EORA", Immediate, 2, opEorAccumulator, 'A')
	register(0x98, "EORA", Direct, 3, opEorAccumulator, 'A')
	register(0xA8, "EORA", Indexed, 5, opEorAccumulator, 'A')
	register(0xB8, "EORA", Extended, 4, opEorAccumulator, 'A')
	register(0xC8, "EORB", Immediate, 2, opEorAccumulator, 'B')
	register(0xD8, "EORB", Direct, 3, opEorAccumulator, 'B')
	register(0xE8, "EORB", Indexed, 5, opEorAccumulator, 'B')
	register(0xF8, "EORB", Extended, 4, opEorAccumulator, 'B')

	register(0x26, "BNE", Relative, 4, opBranchNE, 0)
	register(0x27, "BEQ", Relative, 4, opBranchEQ, 0)
	register(0x24, "BCC", Relative, 4, opBranchCC, 0)
	register(0x25, "BCS", Relative, 4, opBranchCS, 0)
	register(0x2A, "BPL", Relative, 4, opBranchPL, 0)
	register(0x2B, "BMI", Relative, 4, opBranchMI, 0)
	register(0x20, "BRA", Relative, 4, opBranchRA, 0)
	register(0x21, "BRN", Relative, 4, opBranchRN, 0)
	register(0x22, "BHI", Relative, 4, opBranchHI, 0)
	register(0x23, "BLS", Relative, 4, opBranchLS, 0)
	register(0x28, "BVC", Relative, 4, opBranchVC, 0)
	register(0x29, "BVS", Relative, 4, opBranchVS, 0)
	register(0x2C, "BGE", Relative, 4, opBranchGE, 0)
	register(0x2D, "BLT", Relative, 4, opBranchLT, 0)
	register(0x2E, "BGT", Relative, 4, opBranchGT, 0)
	register(0x2F, "BLE", Relative, 4, opBranchLE, 0)

	register(0x06, "TAP", Inherent, 2, opTap, 0)
	register(0x07, "TPA", Inherent, 2, opTpa, 0)
	register(0x0A, "CLV", Inherent, 2, opClv, 0)
	register(0x0B, "SEV", Inherent, 2, opSev, 0)
	register(0x0C, "CLC", Inherent, 2, opClc, 0)
	register(0x0D, "SEC", Inherent, 2, opSec, 0)
	register(0x0E, "CLI", Inherent, 2, opCli, 0)
	register(0x0F, "SEI", Inherent, 2, opSei, 0)

	register(0x10, "SBA", Inherent, 2, opSba, 0)
	register(0x11, "CBA", Inherent, 2, opCba, 0)
	register(0x19, "DAA", Inherent, 2, opDaa, 0)
	register(0x1B, "ABA", Inherent, 2, opAba, 0)

	register(0x4F, "CLRA", Inherent, 2, opClrAccumulator, 'A')
	register(0x5F, "CLRB", Inherent, 2, opClrAccumulator, 'B')
	register(0x43, "COMA", Inherent, 2, opComAccumulator, 'A')
	register(0x53, "COMB", Inherent, 2, opComAccumulator, 'B')
	register(0x40, "NEGA", Inherent, 2, opNegAccumulator, 'A')
	register(0x50, "NEGB", Inherent, 2, opNegAccumulator, 'B')

	register(0x44, "LSRA", Inherent, 2, opLsrAccumulator, 'A')
	register(0x54, "LSRB", Inherent, 2, opLsrAccumulator, 'B')
	register(0x47, "ASRA", Inherent, 2, opAsrAccumulator, 'A')
	register(0x57, "ASRB", Inherent, 2, opAsrAccumulator, 'B')
	register(0x48, "ASLA", Inherent, 2, opAslAccumulator, 'A')
	register(0x58, "ASLB", Inherent, 2, opAslAccumulator, 'B')
	register(0x49, "ROLA", Inherent, 2, opRolAccumulator, 'A')
	register(0x59, "ROLB", Inherent, 2, opRolAccumulator, 'B')
	register(0x46, "RORA", Inherent, 2, opRorAccumulator, 'A')
	register(0x56, "RORB", Inherent, 2, opRorAccumulator, 'B')

	register(0x4D, "TSTA", Inherent, 2, opTstAccumulator, 'A')
	register(0x5D, "TSTB", Inherent, 2, opTstAccumulator, 'B')

	register(0x6F, "CLR", Indexed, 7, opClrMemory, 0)
	register(0x7F, "CLR", Extended, 6, opClrMemory, 0)
	register(0x63, "COM", Indexed, 7, opComMemory, 0)
	register(0x73, "COM", Extended, 6, opComMemory, 0)
	register(0x60, "NEG", Indexed, 7, opNegMemory, 0)
	register(0x70, "NEG", Extended, 6, opNegMemory, 0)

	register(0x64, "LSR", Indexed, 7, opLsrMemory, 0)
	register(0x74, "LSR", Extended, 6, opLsrMemory, 0)
	register(0x67, "ASR", Indexed, 7, opAsrMemory, 0)
	register(0x77, "ASR", Extended, 6, opAsrMemory, 0)
	register(0x68, "ASL", Indexed, 7, opAslMemory, 0)
	register(0x78, "ASL", Extended, 6, opAslMemory, 0)
	register(0x69, "ROL", Indexed, 7, opRolMemory, 0)
	register(0x79, "ROL", Extended, 6, opRolMemory, 0)
	register(0x66, "ROR", Indexed, 7, opRorMemory, 0)
	register(0x76, "ROR", Extended, 6, opRorMemory, 0)

	register(0x6C, "INC", Indexed, 7, opIncMemory, 0)
	register(0x7C, "INC", Extended, 6, opIncMemory, 0)
	register(0x6A, "DEC", Indexed, 7, opDecMemory, 0)
	register(0x7A, "DEC", Extended, 6, opDecMemory, 0)

	register(0x6D, "TST", Indexed, 7, opTstMemory, 0)
	register(0x7D, "TST", Extended, 6, opTstMemory, 0)

	register(0x71, "NIM", Special, 8, opNim, 0)
	register(0x72, "OIM", Special, 8, opOim, 0)
	register(0x75, "XIM", Special, 8, opXim, 0)
	register(0x7B, "TMM", Special, 7, opTmm, 0)

	register(0x36, "PSHA", Inherent, 4, opPshAccumulator, 'A')
	register(0x37, "PSHB", Inherent, 4, opPshAccumulator, 'B')
	register(0x32, "PULA", Inherent, 5, opPulAccumulator, 'A')
	register(0x33, "PULB", Inherent, 5, opPulAccumulator, 'B')
	register(0x3E, "WAI", Inherent, 9, opWai, 0)
	register(0x3F, "SWI", Inherent, 12, opSwi, 0)
	register(0x39, "RTS", Inherent, 5, opRts, 0)
	register(0x3B, "RTI", Inherent, 10, opRti, 0)

	register(0x81, "CMPA", Immediate, 2, opCmpAccumulator, 'A')
	register(0x91, "CMPA", Direct, 3, opCmpAccumulator, 'A')
	register(0xA1, "CMPA", Indexed, 5, opCmpAccumulator, 'A')
	register(0xB1, "CMPA", Extended, 4, opCmpAccumulator, 'A')
	register(0xC1, "CMPB", Immediate, 2, opCmpAccumulator, 'B')
	register(0xD1, "CMPB", Direct, 3, opCmpAccumulator, 'B')
	register(0xE1, "CMPB", Indexed, 5, opCmpAccumulator, 'B')
	register(0xF1, "CMPB", Extended, 4, opCmpAccumulator, 'B')

	register(0x85, "BITA", Immediate, 2, opBitAccumulator, 'A')
	register(0x95, "BITA", Direct, 3, opBitAccumulator, 'A')
	register(0xA5, "BITA", Indexed, 5, opBitAccumulator, 'A')
	register(0xB5, "BITA", Extended, 4, opBitAccumulator, 'A')
	register(0xC5, "BITB", Immediate, 2, opBitAccumulator, 'B')
	register(0xD5, "BITB", Direct, 3, opBitAccumulator, 'B')
	register(0xE5, "BITB", Indexed, 5, opBitAccumulator, 'B')
	register(0xF5, "BITB", Extended, 4, opBitAccumulator, 'B')

	register(0xCE, "LDX", Immediate16, 3, opLdIndex, 0)
	register(0xDE, "LDX", Direct16, 4, opLdIndex, 0)
	register(0xEE, "LDX", Indexed16, 6, opLdIndex, 0)
	register(0xFE, "LDX", Extended16, 5, opLdIndex, 0)
	register(0x8E, "LDS", Immediate16, 3, opLdStack, 0)
	register(0x9E, "LDS", Direct16, 4, opLdStack, 0)
	register(0xAE, "LDS", Indexed16, 6, opLdStack, 0)
	register(0xBE, "LDS", Extended16, 5, opLdStack, 0)
	register(0xDF, "STX", Direct16, 5, opStIndex, 0)
	register(0xEF, "STX", Indexed16, 7, opStIndex, 0)
	register(0xFF, "STX", Extended16, 6, opStIndex, 0)
	register(0x9F, "STS", Direct16, 5, opStStack, 0)
	register(0xAF, "STS", Indexed16, 7, opStStack, 0)
	register(0xBF, "STS", Extended16, 6, opStStack, 0)

	register(0x08, "INX", Inherent, 4, opInx, 0)
	register(0x09, "DEX", Inherent, 4, opDex, 0)
	register(0x31, "INS", Inherent, 4, opIns, 0)
	register(0x34, "DES", Inherent, 4, opDes, 0)
	register(0x8C, "CPX", Immediate16, 3, opCpx, 0)
	register(0x9C, "CPX", Direct16, 4, opCpx, 0)
	register(0xAC, "CPX", Indexed16, 6, opCpx, 0)
	register(0xBC, "CPX", Extended16, 5, opCpx, 0)

	register(0x35, "TXS", Inherent, 4, opTxs, 0)
	register(0x30, "TSX", Inherent, 4, opTsx, 0)

	register(0x8D, "BSR", Relative, 8, opBsr, 0)
	register(0xAD, "JSR", Indexed, 8, opJsr, 0)
	register(0xBD, "JSR", Extended, 9, opJsr, 0)
	register(0x6E, "JMP", Indexed, 4, opJmp, 0)
	register(0x7E, "JMP", Extended, 3, opJmp, 0)

	register(0xEC, "ADX", Immediate, 3, opAdxImmediate, 0)
	register(0xFC, "ADX", Extended16, 7, opAdxExtended, 0)
}
