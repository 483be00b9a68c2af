package emu

// Memory geometry.
const (
	MemSize = 256

	DataStart    uint32 = 0x00
	DataEnd      uint32 = 0x7F
	ProgramStart uint32 = 0x80
	ProgramEnd   uint32 = 0xFF

	// MaxWordAddr is the highest address a 4-byte access may start at.
	MaxWordAddr uint32 = MemSize - 4
)

// InData reports whether addr lies in the data segment.
func InData(addr uint32) bool {
	return addr <= DataEnd
}

// InProgram reports whether addr lies in the program segment.
func InProgram(addr uint32) bool {
	return addr >= ProgramStart && addr <= ProgramEnd
}

// Memory is a 256-byte little-endian store split into a data segment
// [0x00,0x7F] and a program segment [0x80,0xFF].
type Memory struct {
	data [MemSize]byte
}

// NewMemory creates a zeroed memory.
func NewMemory() *Memory {
	return &Memory{}
}

// LoadByte reads a single byte.
func (m *Memory) LoadByte(addr uint32) (uint8, error) {
	if addr >= MemSize {
		return 0, &ErrAccess{Addr: addr, Width: 1}
	}
	return m.data[addr], nil
}

// StoreByte writes a single byte.
func (m *Memory) StoreByte(addr uint32, value uint8) error {
	if addr >= MemSize {
		return &ErrAccess{Addr: addr, Width: 1}
	}
	m.data[addr] = value
	return nil
}

// LoadWord reads a little-endian 32-bit word. addr must be in [0,252].
func (m *Memory) LoadWord(addr uint32) (uint32, error) {
	if addr > MaxWordAddr {
		return 0, &ErrAccess{Addr: addr, Width: 4}
	}
	return uint32(m.data[addr]) |
		uint32(m.data[addr+1])<<8 |
		uint32(m.data[addr+2])<<16 |
		uint32(m.data[addr+3])<<24, nil
}

// StoreWord writes a little-endian 32-bit word. addr must be in [0,252].
func (m *Memory) StoreWord(addr uint32, value uint32) error {
	if addr > MaxWordAddr {
		return &ErrAccess{Addr: addr, Width: 4}
	}
	m.data[addr] = byte(value)
	m.data[addr+1] = byte(value >> 8)
	m.data[addr+2] = byte(value >> 16)
	m.data[addr+3] = byte(value >> 24)
	return nil
}

// Reset zeroes the entire store, both segments.
func (m *Memory) Reset() {
	m.data = [MemSize]byte{}
}

// ClearProgram zeroes the program segment only.
func (m *Memory) ClearProgram() {
	clear(m.data[ProgramStart : ProgramEnd+1])
}

// LoadProgram clears the program segment and stores every word of a
// machine-image listing. The data segment is preserved. A malformed line
// fails the load before any word is stored; a rejected store stops the load
// at that word.
func (m *Memory) LoadProgram(listing string) error {
	m.ClearProgram()

	words, err := ParseImage(listing)
	if err != nil {
		return err
	}

	for _, w := range words {
		if err := m.StoreWord(w.Addr, w.Value); err != nil {
			return err
		}
	}

	return nil
}

// Snapshot returns a copy of all 256 bytes.
func (m *Memory) Snapshot() [MemSize]byte {
	return m.data
}

// DataSegment returns a copy of [0x00,0x7F].
func (m *Memory) DataSegment() []byte {
	out := make([]byte, DataEnd+1)
	copy(out, m.data[:DataEnd+1])
	return out
}

// ProgramSegment returns a copy of [0x80,0xFF].
func (m *Memory) ProgramSegment() []byte {
	out := make([]byte, ProgramEnd-ProgramStart+1)
	copy(out, m.data[ProgramStart:])
	return out
}
