package pipeline

import (
	"github.com/sarchlab/urisc/emu"
)

// ResetPC is the PC after Reset.
const ResetPC = emu.ProgramStart

// Statistics holds pipeline performance statistics.
type Statistics struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of non-bubble words retired in WB.
	Instructions uint64
	// Stalls is the number of stall cycles.
	Stalls uint64
	// BranchesTaken is the number of branches taken in ID.
	BranchesTaken uint64
}

// CPI returns the cycles per instruction.
func (s Statistics) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// CycleInfo describes one committed cycle.
type CycleInfo struct {
	Cycle       uint64
	PC          uint32 // PC after commit
	Stalled     bool
	StallReg    uint8
	BranchTaken bool
	Latches     Snapshot
}

// PipelineOption is a functional option for configuring the Pipeline.
type PipelineOption func(*Pipeline)

// WithCycleHook sets a function called after every committed cycle. The
// hook must not call Step.
func WithCycleHook(hook func(CycleInfo)) PipelineOption {
	return func(p *Pipeline) {
		p.cycleHook = hook
	}
}

// Pipeline implements the five-stage µRISC pipeline.
// Stages: Fetch (IF) -> Decode (ID) -> Execute (EX) -> Memory (MEM) -> Writeback (WB)
type Pipeline struct {
	// Pipeline registers
	ifid  IFIDRegister
	idex  IDEXRegister
	exmem EXMEMRegister
	memwb MEMWBRegister

	// Pipeline stages
	fetchStage     *FetchStage
	decodeStage    *DecodeStage
	executeStage   *ExecuteStage
	memoryStage    *MemoryStage
	writebackStage *WritebackStage

	// Hazard detection
	hazardUnit *HazardUnit

	// Shared resources
	regFile *emu.RegFile
	memory  *emu.Memory

	// Program counter
	pc uint32

	stats     Statistics
	running   bool
	cycleHook func(CycleInfo)
}

// NewPipeline creates a new pipeline in the reset state.
func NewPipeline(regFile *emu.RegFile, memory *emu.Memory, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		fetchStage:     NewFetchStage(memory),
		decodeStage:    NewDecodeStage(regFile),
		executeStage:   NewExecuteStage(),
		memoryStage:    NewMemoryStage(memory),
		writebackStage: NewWritebackStage(regFile),
		hazardUnit:     NewHazardUnit(),
		regFile:        regFile,
		memory:         memory,
		pc:             ResetPC,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// PC returns the current program counter.
func (p *Pipeline) PC() uint32 {
	return p.pc
}

// SetPC sets the program counter.
func (p *Pipeline) SetPC(pc uint32) {
	p.pc = pc
}

// IsRunning reports whether Run is executing.
func (p *Pipeline) IsRunning() bool {
	return p.running
}

// Registers returns a copy of the four pipeline latches.
func (p *Pipeline) Registers() Snapshot {
	return Snapshot{
		IFID:  p.ifid,
		IDEX:  p.idex,
		EXMEM: p.exmem,
		MEMWB: p.memwb,
	}
}

// Stats returns pipeline statistics.
func (p *Pipeline) Stats() Statistics {
	return p.stats
}

// Reset sets PC to the program start, clears every latch and the
// statistics. The register file and memory are untouched.
func (p *Pipeline) Reset() {
	p.ifid.Clear()
	p.idex.Clear()
	p.exmem.Clear()
	p.memwb.Clear()
	p.pc = ResetPC
	p.stats = Statistics{}
}

// Step executes one pipeline cycle and returns the new PC.
//
// WB runs first, so a value written back this cycle is visible to the
// register read in ID. MEM and EX then produce their next latches. The
// hazard unit compares the word in IF/ID with the destinations those two
// stages just produced; on a hazard a bubble enters EX while IF/ID and PC
// hold. Otherwise ID decodes and resolves branches, and IF fetches at the
// possibly redirected PC and advances it by 4.
//
// The only error is a *FaultError, which matches ErrInternalFault.
func (p *Pipeline) Step() (uint32, error) {
	// Stage 5: Writeback
	if p.writebackStage.Writeback(&p.memwb) {
		p.stats.Instructions++
	}

	// Stage 4: Memory
	nextMEMWB, err := p.memoryStage.Access(&p.exmem)
	if err != nil {
		return p.pc, &FaultError{PC: p.pc, Cycle: p.stats.Cycles, Err: err}
	}

	// Stage 3: Execute
	nextEXMEM := p.executeStage.Execute(&p.idex)

	stall := p.hazardUnit.DetectStall(p.ifid.IR, &nextEXMEM, &nextMEMWB)

	var nextIDEX IDEXRegister
	nextIFID := p.ifid
	nextPC := p.pc
	branchTaken := false

	if !stall.Stall {
		// Stage 2: Decode
		decoded := p.decodeStage.Decode(&p.ifid)
		nextIDEX = decoded.IDEX
		if decoded.BranchTaken {
			branchTaken = true
			nextPC = decoded.BranchTarget
		}

		// Stage 1: Fetch. A taken branch redirects this fetch to its
		// target, which then advances like any other.
		nextIFID = p.fetchStage.Fetch(nextPC)
		nextPC = nextIFID.NPC
	}

	// Clock edge
	p.idex = nextIDEX
	p.exmem = nextEXMEM
	p.memwb = nextMEMWB
	if !stall.Stall {
		p.ifid = nextIFID
		p.pc = nextPC
	}

	p.stats.Cycles++
	if stall.Stall {
		p.stats.Stalls++
	}
	if branchTaken {
		p.stats.BranchesTaken++
	}

	if p.cycleHook != nil {
		p.cycleHook(CycleInfo{
			Cycle:       p.stats.Cycles,
			PC:          p.pc,
			Stalled:     stall.Stall,
			StallReg:    stall.Reg,
			BranchTaken: branchTaken,
			Latches:     p.Registers(),
		})
	}

	return p.pc, nil
}

// Run steps while PC is inside the program segment, for at most maxCycles
// cycles. It returns the number of cycles executed.
func (p *Pipeline) Run(maxCycles int) (int, error) {
	p.running = true
	defer func() { p.running = false }()

	cycles := 0
	for cycles < maxCycles && emu.InProgram(p.pc) {
		if _, err := p.Step(); err != nil {
			return cycles, err
		}
		cycles++
	}

	return cycles, nil
}
