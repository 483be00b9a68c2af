package asm

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/sarchlab/urisc/insts"
)

const (
	immMin    = -2048
	immMax    = 2047
	branchMin = -4096
	branchMax = 4094
	wordMin   = -(1 << 31)
	wordMax   = 1<<32 - 1
)

var memOperand = regexp.MustCompile(`^([-+]?[0-9A-Za-z]+)\(([A-Za-z0-9]+)\)$`)

// wantOperands fails unless exactly n operands are present.
func wantOperands(operands []string, n int) error {
	if len(operands) != n {
		return &ErrOperand{
			Position: f("operand count"),
			Operand:  f("got %v, want %v", len(operands), n),
			Err:      ErrInvalidOperand,
		}
	}
	return nil
}

func register(operand, position string) (uint8, error) {
	reg, ok := insts.ParseRegister(operand)
	if !ok {
		return 0, &ErrOperand{Position: position, Operand: operand, Err: ErrInvalidOperand}
	}
	return reg, nil
}

// parseInt parses a decimal or 0x-prefixed hex literal with an optional
// sign.
func parseInt(s string) (int64, error) {
	neg := false
	digits := s
	switch {
	case strings.HasPrefix(digits, "-"):
		neg = true
		digits = digits[1:]
	case strings.HasPrefix(digits, "+"):
		digits = digits[1:]
	}

	base := 10
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		base = 16
		digits = digits[2:]
	}

	if digits == "" || strings.ContainsAny(digits, "+-_") {
		return 0, &ErrOperand{Position: f("immediate"), Operand: s, Err: ErrInvalidOperand}
	}

	u, err := strconv.ParseUint(digits, base, 63)
	if errors.Is(err, strconv.ErrRange) {
		return 0, &ErrOperand{Position: f("immediate"), Operand: s, Err: ErrImmediateRange}
	}
	if err != nil {
		return 0, &ErrOperand{Position: f("immediate"), Operand: s, Err: ErrInvalidOperand}
	}

	v := int64(u)
	if neg {
		v = -v
	}
	return v, nil
}

func immediate(s string, lo, hi int64) (int32, error) {
	v, err := parseInt(s)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, &ErrOperand{Position: f("immediate"), Operand: s, Err: ErrImmediateRange}
	}
	return int32(v), nil
}

// memory splits an "imm(base)" operand.
func memory(operand string) (int32, uint8, error) {
	m := memOperand.FindStringSubmatch(operand)
	if m == nil {
		return 0, 0, &ErrOperand{Position: f("memory operand"), Operand: operand, Err: ErrInvalidOperand}
	}

	imm, err := immediate(m[1], immMin, immMax)
	if err != nil {
		return 0, 0, err
	}

	base, err := register(m[2], f("base register"))
	if err != nil {
		return 0, 0, err
	}

	return imm, base, nil
}

func encodeWord(operands []string) (uint32, error) {
	if err := wantOperands(operands, 1); err != nil {
		return 0, err
	}

	v, err := parseInt(operands[0])
	if err != nil {
		return 0, err
	}
	if v < wordMin || v > wordMax {
		return 0, &ErrOperand{Position: f("immediate"), Operand: operands[0], Err: ErrImmediateRange}
	}

	return uint32(v), nil
}

func encodeR(def insts.Def, operands []string) (uint32, error) {
	if err := wantOperands(operands, 3); err != nil {
		return 0, err
	}

	rd, err := register(operands[0], f("destination register"))
	if err != nil {
		return 0, err
	}
	rs1, err := register(operands[1], f("source register 1"))
	if err != nil {
		return 0, err
	}
	rs2, err := register(operands[2], f("source register 2"))
	if err != nil {
		return 0, err
	}

	return insts.EncodeR(def, rd, rs1, rs2), nil
}

func encodeI(def insts.Def, operands []string) (uint32, error) {
	if err := wantOperands(operands, 3); err != nil {
		return 0, err
	}

	rd, err := register(operands[0], f("destination register"))
	if err != nil {
		return 0, err
	}
	rs1, err := register(operands[1], f("source register 1"))
	if err != nil {
		return 0, err
	}
	imm, err := immediate(operands[2], immMin, immMax)
	if err != nil {
		return 0, err
	}

	return insts.EncodeI(def, rd, rs1, imm), nil
}

func encodeLoad(def insts.Def, operands []string) (uint32, error) {
	if err := wantOperands(operands, 2); err != nil {
		return 0, err
	}

	rd, err := register(operands[0], f("destination register"))
	if err != nil {
		return 0, err
	}
	imm, base, err := memory(operands[1])
	if err != nil {
		return 0, err
	}

	return insts.EncodeI(def, rd, base, imm), nil
}

func encodeS(def insts.Def, operands []string) (uint32, error) {
	if err := wantOperands(operands, 2); err != nil {
		return 0, err
	}

	rs2, err := register(operands[0], f("source register"))
	if err != nil {
		return 0, err
	}
	imm, base, err := memory(operands[1])
	if err != nil {
		return 0, err
	}

	return insts.EncodeS(def, rs2, base, imm), nil
}

func encodeB(def insts.Def, operands []string, labels map[string]uint32, addr uint32) (uint32, error) {
	if err := wantOperands(operands, 3); err != nil {
		return 0, err
	}

	rs1, err := register(operands[0], f("source register 1"))
	if err != nil {
		return 0, err
	}
	rs2, err := register(operands[1], f("source register 2"))
	if err != nil {
		return 0, err
	}

	target, ok := labels[operands[2]]
	if !ok {
		return 0, &ErrName{Name: operands[2], Err: ErrUndefinedLabel}
	}

	offset := int64(target) - int64(addr)
	if offset%2 != 0 || offset < branchMin || offset > branchMax {
		return 0, &ErrOperand{Position: f("branch offset"),
			Operand: strconv.FormatInt(offset, 10), Err: ErrImmediateRange}
	}

	return insts.EncodeB(def, rs1, rs2, int32(offset)), nil
}
