// Package insts provides the µRISC instruction table, decoding and encoding.
//
// The supported subset is a slice of RV32I:
//   - R-type: ADD, SUB
//   - I-type: ADDI
//   - Loads: LW
//   - Stores: SW
//   - Branches: BEQ, BNE
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x00130093) // ADDI X1, X6, 1
//	fmt.Printf("Op: %v, Rd: %d, Rs1: %d, Imm: %d\n", inst.Op, inst.Rd, inst.Rs1, inst.Imm)
package insts
