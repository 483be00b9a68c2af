package insts

import "fmt"

// Disassemble renders a machine word in assembler syntax.
// The all-zero word (a pipeline bubble) renders as "nop"; words that match
// no table entry render as a .word directive. Branch targets are shown as
// signed byte offsets.
func Disassemble(word uint32) string {
	if word == 0 {
		return "nop"
	}

	inst := NewDecoder().Decode(word)
	name := inst.Op.String()

	switch inst.Format {
	case FormatR:
		return fmt.Sprintf("%s %s, %s, %s", name,
			RegName(inst.Rd), RegName(inst.Rs1), RegName(inst.Rs2))
	case FormatI:
		return fmt.Sprintf("%s %s, %s, %d", name,
			RegName(inst.Rd), RegName(inst.Rs1), inst.Imm)
	case FormatLoad:
		return fmt.Sprintf("%s %s, %d(%s)", name,
			RegName(inst.Rd), inst.Imm, RegName(inst.Rs1))
	case FormatS:
		return fmt.Sprintf("%s %s, %d(%s)", name,
			RegName(inst.Rs2), inst.Imm, RegName(inst.Rs1))
	case FormatB:
		return fmt.Sprintf("%s %s, %s, %+d", name,
			RegName(inst.Rs1), RegName(inst.Rs2), inst.Imm)
	default:
		return fmt.Sprintf(".word 0x%08X", word)
	}
}
