package pipeline

import "github.com/sarchlab/urisc/insts"

// HazardUnit detects read-after-write hazards for the instruction waiting
// in ID. The pipeline does not forward, so any dependency on an
// instruction still in EX or MEM stalls.
type HazardUnit struct{}

// NewHazardUnit creates a new hazard detection unit.
func NewHazardUnit() *HazardUnit {
	return &HazardUnit{}
}

// StallResult contains the stall decision for one cycle.
type StallResult struct {
	// Stall indicates ID and IF hold and a bubble enters EX.
	Stall bool

	// Reg is the register that caused the stall.
	Reg uint8
}

// DetectStall checks candidate, the word in IF/ID, against the destination
// registers the EX and MEM stages just produced. rs1 is always checked;
// rs2 only for opcodes that read it.
func (h *HazardUnit) DetectStall(
	candidate uint32,
	nextEXMEM *EXMEMRegister,
	nextMEMWB *MEMWBRegister,
) StallResult {
	rs1 := insts.Rs1(candidate)
	rs2 := insts.Rs2(candidate)
	usesRs2 := insts.ReadsRs2(candidate)

	for _, rd := range [2]uint8{nextEXMEM.Rd, nextMEMWB.Rd} {
		if rd == 0 {
			continue
		}
		if rd == rs1 || (usesRs2 && rd == rs2) {
			return StallResult{Stall: true, Reg: rd}
		}
	}

	return StallResult{}
}
