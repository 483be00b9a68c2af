package insts

// Instruction represents a decoded µRISC instruction.
type Instruction struct {
	Op     Op     // Operation
	Format Format // Encoding format

	// Raw fields
	Opcode uint32
	Funct3 uint32
	Funct7 uint32
	Rd     uint8 // Destination register
	Rs1    uint8 // First source / base register
	Rs2    uint8 // Second source / store data register

	// Imm is the sign-extended immediate for the opcode class.
	// For branches it is a byte offset from the branch's own address.
	Imm int32
}

// Decoder decodes µRISC machine words into instructions.
type Decoder struct{}

// NewDecoder creates a new instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit instruction word.
// Words that match no table entry decode with Op == OpUnknown but keep
// their raw fields.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{
		Opcode: Opcode(word),
		Funct3: Funct3(word),
		Funct7: Funct7(word),
		Rd:     Rd(word),
		Rs1:    Rs1(word),
		Rs2:    Rs2(word),
		Imm:    Immediate(word),
	}

	for _, def := range defs {
		if def.Opcode != inst.Opcode || def.Funct3 != inst.Funct3 {
			continue
		}
		if def.Format == FormatR && def.Funct7 != inst.Funct7 {
			continue
		}
		inst.Op = def.Op
		inst.Format = def.Format
		break
	}

	return inst
}

// Opcode extracts bits [6:0].
func Opcode(word uint32) uint32 { return word & 0x7F }

// Rd extracts bits [11:7].
func Rd(word uint32) uint8 { return uint8((word >> 7) & 0x1F) }

// Funct3 extracts bits [14:12].
func Funct3(word uint32) uint32 { return (word >> 12) & 0x7 }

// Rs1 extracts bits [19:15].
func Rs1(word uint32) uint8 { return uint8((word >> 15) & 0x1F) }

// Rs2 extracts bits [24:20].
func Rs2(word uint32) uint8 { return uint8((word >> 20) & 0x1F) }

// Funct7 extracts bits [31:25].
func Funct7(word uint32) uint32 { return (word >> 25) & 0x7F }

// SignExtend interprets the low bits of value as a two's-complement number.
func SignExtend(value uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(value<<shift) >> shift
}

// ImmI returns the I-type immediate: bits [31:20].
func ImmI(word uint32) int32 {
	return SignExtend(word>>20, 12)
}

// ImmS returns the S-type immediate: bits [31:25] concatenated with [11:7].
func ImmS(word uint32) int32 {
	return SignExtend((word>>25)<<5|(word>>7)&0x1F, 12)
}

// ImmB returns the B-type immediate {31, 7, 30:25, 11:8, 0}.
func ImmB(word uint32) int32 {
	imm := (word>>31&0x1)<<12 |
		(word>>7&0x1)<<11 |
		(word>>25&0x3F)<<5 |
		(word>>8&0xF)<<1
	return SignExtend(imm, 13)
}

// Immediate generates the immediate for the word's opcode class.
// Opcodes without an immediate yield 0.
func Immediate(word uint32) int32 {
	switch Opcode(word) {
	case OpcodeOpImm, OpcodeLoad:
		return ImmI(word)
	case OpcodeStore:
		return ImmS(word)
	case OpcodeBranch:
		return ImmB(word)
	default:
		return 0
	}
}

// WritesRegister reports whether an instruction with this opcode writes rd.
func WritesRegister(word uint32) bool {
	switch Opcode(word) {
	case OpcodeOp, OpcodeOpImm, OpcodeLoad:
		return true
	default:
		return false
	}
}

// ReadsRs2 reports whether an instruction with this opcode reads rs2.
func ReadsRs2(word uint32) bool {
	switch Opcode(word) {
	case OpcodeOp, OpcodeStore, OpcodeBranch:
		return true
	default:
		return false
	}
}
