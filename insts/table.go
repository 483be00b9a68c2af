package insts

// Op represents a µRISC operation.
type Op uint8

// Operations.
const (
	OpUnknown Op = iota
	OpADD
	OpSUB
	OpADDI
	OpLW
	OpSW
	OpBEQ
	OpBNE
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR               // rd, rs1, rs2
	FormatI               // rd, rs1, imm
	FormatLoad            // rd, imm(rs1)
	FormatS               // rs2, imm(rs1)
	FormatB               // rs1, rs2, label
)

// Major opcodes (bits [6:0]).
const (
	OpcodeOp     uint32 = 0b0110011
	OpcodeOpImm  uint32 = 0b0010011
	OpcodeLoad   uint32 = 0b0000011
	OpcodeStore  uint32 = 0b0100011
	OpcodeBranch uint32 = 0b1100011
)

// Def holds the encoding parameters of one operation.
type Def struct {
	Op       Op
	Mnemonic string
	Format   Format
	Opcode   uint32
	Funct3   uint32
	Funct7   uint32 // only meaningful for FormatR
}

var defs = [...]Def{
	{Op: OpADD, Mnemonic: "add", Format: FormatR, Opcode: OpcodeOp, Funct3: 0b000, Funct7: 0b0000000},
	{Op: OpSUB, Mnemonic: "sub", Format: FormatR, Opcode: OpcodeOp, Funct3: 0b000, Funct7: 0b0100000},
	{Op: OpADDI, Mnemonic: "addi", Format: FormatI, Opcode: OpcodeOpImm, Funct3: 0b000},
	{Op: OpLW, Mnemonic: "lw", Format: FormatLoad, Opcode: OpcodeLoad, Funct3: 0b010},
	{Op: OpSW, Mnemonic: "sw", Format: FormatS, Opcode: OpcodeStore, Funct3: 0b010},
	{Op: OpBEQ, Mnemonic: "beq", Format: FormatB, Opcode: OpcodeBranch, Funct3: 0b000},
	{Op: OpBNE, Mnemonic: "bne", Format: FormatB, Opcode: OpcodeBranch, Funct3: 0b001},
}

var byMnemonic = func() map[string]Def {
	m := make(map[string]Def, len(defs))
	for _, d := range defs {
		m[d.Mnemonic] = d
	}
	return m
}()

// Lookup returns the definition for a lowercase mnemonic.
func Lookup(mnemonic string) (Def, bool) {
	d, ok := byMnemonic[mnemonic]
	return d, ok
}

// Defs returns a copy of the instruction table in declaration order.
func Defs() []Def {
	out := make([]Def, len(defs))
	copy(out, defs[:])
	return out
}

// Def returns the table entry for op. OpUnknown yields the zero Def.
func (op Op) Def() Def {
	if op == OpUnknown || int(op) > len(defs) {
		return Def{}
	}
	return defs[op-1]
}

// String returns the mnemonic of op.
func (op Op) String() string {
	if d := op.Def(); d.Op != OpUnknown {
		return d.Mnemonic
	}
	return "unknown"
}

// String returns a short name for the format.
func (f Format) String() string {
	switch f {
	case FormatR:
		return "R"
	case FormatI:
		return "I"
	case FormatLoad:
		return "L"
	case FormatS:
		return "S"
	case FormatB:
		return "B"
	default:
		return "?"
	}
}
