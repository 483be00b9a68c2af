package insts

// EncodeR packs funct7·rs2·rs1·funct3·rd·opcode.
func EncodeR(def Def, rd, rs1, rs2 uint8) uint32 {
	return def.Funct7<<25 |
		uint32(rs2&0x1F)<<20 |
		uint32(rs1&0x1F)<<15 |
		def.Funct3<<12 |
		uint32(rd&0x1F)<<7 |
		def.Opcode
}

// EncodeI packs imm[11:0]·rs1·funct3·rd·opcode. Used for ADDI and LW.
// Only the low 12 bits of imm are kept.
func EncodeI(def Def, rd, rs1 uint8, imm int32) uint32 {
	return (uint32(imm)&0xFFF)<<20 |
		uint32(rs1&0x1F)<<15 |
		def.Funct3<<12 |
		uint32(rd&0x1F)<<7 |
		def.Opcode
}

// EncodeS packs imm[11:5]·rs2·rs1·funct3·imm[4:0]·opcode.
func EncodeS(def Def, rs2, rs1 uint8, imm int32) uint32 {
	u := uint32(imm) & 0xFFF
	return (u>>5)<<25 |
		uint32(rs2&0x1F)<<20 |
		uint32(rs1&0x1F)<<15 |
		def.Funct3<<12 |
		(u&0x1F)<<7 |
		def.Opcode
}

// EncodeB packs imm[12]·imm[10:5]·rs2·rs1·funct3·imm[4:1]·imm[11]·opcode.
// offset is a byte offset; bit 0 is dropped.
func EncodeB(def Def, rs1, rs2 uint8, offset int32) uint32 {
	u := uint32(offset) & 0x1FFF
	return (u>>12&0x1)<<31 |
		(u>>5&0x3F)<<25 |
		uint32(rs2&0x1F)<<20 |
		uint32(rs1&0x1F)<<15 |
		def.Funct3<<12 |
		(u>>1&0xF)<<8 |
		(u>>11&0x1)<<7 |
		def.Opcode
}

// MustDef returns the table entry for op and panics on OpUnknown.
// Intended for building fixed programs in code.
func MustDef(op Op) Def {
	d := op.Def()
	if d.Op == OpUnknown {
		panic("insts: no definition for " + op.String())
	}
	return d
}
