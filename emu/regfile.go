// Package emu provides the µRISC register file and memory.
package emu

// NumRegs is the number of general-purpose registers.
const NumRegs = 32

// RegFile represents the µRISC register file.
// X[0] is hardwired to zero: writes to it are ignored.
type RegFile struct {
	// X holds general-purpose registers x0-x31.
	X [NumRegs]uint32
}

// ReadReg reads a register value. Register 0 and out-of-range indices
// return 0.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	if reg == 0 || reg >= NumRegs {
		return 0
	}
	return r.X[reg]
}

// WriteReg writes a value to a register. Writes to register 0 and
// out-of-range indices are ignored.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	if reg == 0 || reg >= NumRegs {
		return
	}
	r.X[reg] = value
}

// Reset zeroes all registers.
func (r *RegFile) Reset() {
	r.X = [NumRegs]uint32{}
}

// Snapshot returns a copy of all registers.
func (r *RegFile) Snapshot() [NumRegs]uint32 {
	return r.X
}
