package pipeline

import (
	"github.com/sarchlab/urisc/emu"
	"github.com/sarchlab/urisc/insts"
)

// FetchStage handles instruction fetch from the program segment.
type FetchStage struct {
	memory *emu.Memory
}

// NewFetchStage creates a new fetch stage.
func NewFetchStage(memory *emu.Memory) *FetchStage {
	return &FetchStage{memory: memory}
}

// Fetch reads the instruction at pc. Fetch and data memory are disjoint,
// so outside the program segment, or at an address a word cannot start
// at, it yields a zero word.
func (s *FetchStage) Fetch(pc uint32) IFIDRegister {
	result := IFIDRegister{NPC: pc + 4, PC: pc}

	if !emu.InProgram(pc) {
		return result
	}

	word, err := s.memory.LoadWord(pc)
	if err != nil {
		return result
	}

	result.IR = word
	return result
}

// DecodeStage handles instruction decode, register read and branch
// resolution.
type DecodeStage struct {
	regFile *emu.RegFile
}

// NewDecodeStage creates a new decode stage.
func NewDecodeStage(regFile *emu.RegFile) *DecodeStage {
	return &DecodeStage{regFile: regFile}
}

// DecodeResult holds the result of the decode stage.
type DecodeResult struct {
	IDEX IDEXRegister

	// For branches.
	BranchTaken  bool
	BranchTarget uint32
}

// Decode decodes the word in IF/ID and reads its operands.
func (s *DecodeStage) Decode(ifid *IFIDRegister) DecodeResult {
	word := ifid.IR
	if word == 0 {
		return DecodeResult{IDEX: IDEXRegister{NPC: ifid.NPC}}
	}

	rs1 := insts.Rs1(word)
	rs2 := insts.Rs2(word)

	idex := IDEXRegister{
		A:   s.regFile.ReadReg(rs1),
		B:   s.regFile.ReadReg(rs2),
		Imm: insts.Immediate(word),
		IR:  word,
		NPC: ifid.NPC,
		Rs1: rs1,
		Rs2: rs2,
	}
	if insts.WritesRegister(word) {
		idex.Rd = insts.Rd(word)
	}

	result := DecodeResult{IDEX: idex}

	if insts.Opcode(word) == insts.OpcodeBranch && branchCondition(word, idex.A, idex.B) {
		result.BranchTaken = true
		result.BranchTarget = ifid.PC + uint32(idex.Imm)
	}

	return result
}

// branchCondition evaluates beq (funct3 0) and bne (funct3 1). Other
// funct3 values are never taken.
func branchCondition(word, a, b uint32) bool {
	switch insts.Funct3(word) {
	case 0b000:
		return a == b
	case 0b001:
		return a != b
	default:
		return false
	}
}

// ExecuteStage handles ALU operations and address calculation.
type ExecuteStage struct{}

// NewExecuteStage creates a new execute stage.
func NewExecuteStage() *ExecuteStage {
	return &ExecuteStage{}
}

// Execute computes the ALU result. Arithmetic wraps at 32 bits; branches
// were resolved in ID and do nothing here.
func (s *ExecuteStage) Execute(idex *IDEXRegister) EXMEMRegister {
	if idex.IR == 0 {
		return EXMEMRegister{}
	}

	result := EXMEMRegister{
		B:  idex.B,
		IR: idex.IR,
		Rd: idex.Rd,
	}

	switch insts.Opcode(idex.IR) {
	case insts.OpcodeOp:
		if insts.Funct7(idex.IR) == 0b0100000 {
			result.ALUOutput = idex.A - idex.B
		} else {
			result.ALUOutput = idex.A + idex.B
		}
	case insts.OpcodeOpImm, insts.OpcodeLoad, insts.OpcodeStore:
		result.ALUOutput = idex.A + uint32(idex.Imm)
	}

	return result
}

// MemoryStage handles data memory access.
type MemoryStage struct {
	memory *emu.Memory
}

// NewMemoryStage creates a new memory stage.
func NewMemoryStage(memory *emu.Memory) *MemoryStage {
	return &MemoryStage{memory: memory}
}

// Access performs the load or store for the instruction in EX/MEM. Only
// the data segment is reachable: outside it a load yields 0 and a store
// is dropped.
func (s *MemoryStage) Access(exmem *EXMEMRegister) (MEMWBRegister, error) {
	if exmem.IR == 0 {
		return MEMWBRegister{}, nil
	}

	result := MEMWBRegister{
		ALUOutput: exmem.ALUOutput,
		IR:        exmem.IR,
		Rd:        exmem.Rd,
	}

	addr := exmem.ALUOutput
	if !emu.InData(addr) {
		return result, nil
	}

	switch insts.Opcode(exmem.IR) {
	case insts.OpcodeLoad:
		lmd, err := s.memory.LoadWord(addr)
		if err != nil {
			return result, err
		}
		result.LMD = lmd
	case insts.OpcodeStore:
		if err := s.memory.StoreWord(addr, exmem.B); err != nil {
			return result, err
		}
	}

	return result, nil
}

// WritebackStage handles register file writes.
type WritebackStage struct {
	regFile *emu.RegFile
}

// NewWritebackStage creates a new writeback stage.
func NewWritebackStage(regFile *emu.RegFile) *WritebackStage {
	return &WritebackStage{regFile: regFile}
}

// Writeback commits the result in MEM/WB. It reports whether an
// instruction retired.
func (s *WritebackStage) Writeback(memwb *MEMWBRegister) bool {
	if memwb.IR == 0 {
		return false
	}

	if memwb.Rd != 0 {
		switch insts.Opcode(memwb.IR) {
		case insts.OpcodeLoad:
			s.regFile.WriteReg(memwb.Rd, memwb.LMD)
		case insts.OpcodeOp, insts.OpcodeOpImm:
			s.regFile.WriteReg(memwb.Rd, memwb.ALUOutput)
		}
	}

	return true
}
