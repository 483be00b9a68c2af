// Package core provides the µRISC simulator facade.
// It owns one register file, one memory and the pipeline that drives them.
package core

import (
	"github.com/sarchlab/urisc/emu"
	"github.com/sarchlab/urisc/timing/pipeline"
)

// Stats holds performance statistics for the core.
type Stats struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
	// Stalls is the number of stall cycles.
	Stalls uint64
	// BranchesTaken is the number of taken branches.
	BranchesTaken uint64
}

// CPI returns the cycles per instruction.
func (s Stats) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// Option is a functional option for configuring the Core.
type Option func(*Core)

// WithConfig sets the simulator configuration.
func WithConfig(config *Config) Option {
	return func(c *Core) {
		c.config = config.Clone()
	}
}

// WithPipelineOptions passes options through to the pipeline.
func WithPipelineOptions(opts ...pipeline.PipelineOption) Option {
	return func(c *Core) {
		c.pipelineOpts = append(c.pipelineOpts, opts...)
	}
}

// Core represents a µRISC CPU with its register file and memory.
type Core struct {
	// Pipeline is the underlying 5-stage pipeline.
	Pipeline *pipeline.Pipeline

	// Shared resources
	regFile *emu.RegFile
	memory  *emu.Memory

	config       *Config
	pipelineOpts []pipeline.PipelineOption
	clocked      bool
}

// NewCore creates a new Core with zeroed registers and memory.
func NewCore(opts ...Option) *Core {
	c := &Core{
		regFile: &emu.RegFile{},
		memory:  emu.NewMemory(),
		config:  DefaultConfig(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Pipeline = pipeline.NewPipeline(c.regFile, c.memory, c.pipelineOpts...)

	return c
}

// Config returns a copy of the core configuration.
func (c *Core) Config() *Config {
	return c.config.Clone()
}

// GetRegister reads a register.
func (c *Core) GetRegister(reg uint8) uint32 {
	return c.regFile.ReadReg(reg)
}

// SetRegister writes a register. Writes to x0 are ignored.
func (c *Core) SetRegister(reg uint8, value uint32) {
	c.regFile.WriteReg(reg, value)
}

// ResetRegisters zeroes every register.
func (c *Core) ResetRegisters() {
	c.regFile.Reset()
}

// Registers returns a copy of the register file.
func (c *Core) Registers() [emu.NumRegs]uint32 {
	return c.regFile.Snapshot()
}

// LoadByte reads a byte of memory.
func (c *Core) LoadByte(addr uint32) (uint8, error) {
	return c.memory.LoadByte(addr)
}

// StoreByte writes a byte of memory.
func (c *Core) StoreByte(addr uint32, value uint8) error {
	return c.memory.StoreByte(addr, value)
}

// LoadWord reads a little-endian word of memory.
func (c *Core) LoadWord(addr uint32) (uint32, error) {
	return c.memory.LoadWord(addr)
}

// StoreWord writes a little-endian word of memory.
func (c *Core) StoreWord(addr uint32, value uint32) error {
	return c.memory.StoreWord(addr, value)
}

// ResetMemory zeroes both memory segments.
func (c *Core) ResetMemory() {
	c.memory.Reset()
}

// LoadProgram replaces the program segment with a machine-image listing.
func (c *Core) LoadProgram(listing string) error {
	return c.memory.LoadProgram(listing)
}

// Memory returns a copy of all of memory.
func (c *Core) Memory() [emu.MemSize]byte {
	return c.memory.Snapshot()
}

// PC returns the current program counter.
func (c *Core) PC() uint32 {
	return c.Pipeline.PC()
}

// SetPC sets the program counter.
func (c *Core) SetPC(pc uint32) {
	c.Pipeline.SetPC(pc)
}

// Step executes one pipeline cycle.
func (c *Core) Step() (uint32, error) {
	return c.Pipeline.Step()
}

// Run executes the pipeline while PC is in the program segment. A
// non-positive maxCycles uses the configured budget.
func (c *Core) Run(maxCycles int) (int, error) {
	if maxCycles <= 0 {
		maxCycles = c.config.MaxCycles
	}
	return c.Pipeline.Run(maxCycles)
}

// IsRunning reports whether Run or RunClocked is executing.
func (c *Core) IsRunning() bool {
	return c.clocked || c.Pipeline.IsRunning()
}

// PipelineRegisters returns a copy of the pipeline latches.
func (c *Core) PipelineRegisters() pipeline.Snapshot {
	return c.Pipeline.Registers()
}

// Stats returns performance statistics for the core.
func (c *Core) Stats() Stats {
	pipeStats := c.Pipeline.Stats()
	return Stats{
		Cycles:        pipeStats.Cycles,
		Instructions:  pipeStats.Instructions,
		Stalls:        pipeStats.Stalls,
		BranchesTaken: pipeStats.BranchesTaken,
	}
}

// Reset returns the pipeline to its initial state. Registers and memory
// are kept.
func (c *Core) Reset() {
	c.Pipeline.Reset()
}
