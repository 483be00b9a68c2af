// Package pipeline provides the five-stage µRISC pipeline.
package pipeline

// IFIDRegister holds state between Fetch and Decode stages.
type IFIDRegister struct {
	// IR is the fetched instruction word. Zero is a no-op.
	IR uint32

	// NPC is the sequential next PC.
	NPC uint32

	// PC is the fetch address of IR.
	PC uint32
}

// Clear resets the IF/ID register to empty state.
func (r *IFIDRegister) Clear() {
	*r = IFIDRegister{}
}

// IDEXRegister holds state between Decode and Execute stages.
type IDEXRegister struct {
	// A and B are the rs1 and rs2 values read in ID.
	A uint32
	B uint32

	// Imm is the sign-extended immediate.
	Imm int32

	IR  uint32
	NPC uint32

	// Rd is the destination register, or 0 for instructions that do not
	// write back.
	Rd  uint8
	Rs1 uint8
	Rs2 uint8
}

// Clear resets the ID/EX register to empty state.
func (r *IDEXRegister) Clear() {
	*r = IDEXRegister{}
}

// EXMEMRegister holds state between Execute and Memory stages.
type EXMEMRegister struct {
	// ALUOutput is the ALU result or the effective address.
	ALUOutput uint32

	// B is the store value.
	B uint32

	IR uint32
	Rd uint8
}

// Clear resets the EX/MEM register to empty state.
func (r *EXMEMRegister) Clear() {
	*r = EXMEMRegister{}
}

// MEMWBRegister holds state between Memory and Writeback stages.
type MEMWBRegister struct {
	// LMD is the loaded memory data.
	LMD uint32

	ALUOutput uint32
	IR        uint32
	Rd        uint8
}

// Clear resets the MEM/WB register to empty state.
func (r *MEMWBRegister) Clear() {
	*r = MEMWBRegister{}
}

// Snapshot is a value copy of the four pipeline latches.
type Snapshot struct {
	IFID  IFIDRegister
	IDEX  IDEXRegister
	EXMEM EXMEMRegister
	MEMWB MEMWBRegister
}
