package insts

import (
	"strconv"
	"strings"
)

// NumRegs is the number of general-purpose registers.
const NumRegs = 32

// RegNames holds the ABI name of each register, indexed by number.
var RegNames = [NumRegs]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0/fp", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// abiAlias maps ABI names onto register numbers.
var abiAlias = map[string]uint8{
	"zero": 0, "ra": 1, "sp": 2, "gp": 3, "tp": 4,
	"t0": 5, "t1": 6, "t2": 7,
	"s0": 8, "fp": 8, "s1": 9,
	"a0": 10, "a1": 11, "a2": 12, "a3": 13,
	"a4": 14, "a5": 15, "a6": 16, "a7": 17,
	"s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22,
	"s7": 23, "s8": 24, "s9": 25, "s10": 26, "s11": 27,
	"t3": 28, "t4": 29, "t5": 30, "t6": 31,
}

// ParseRegister resolves a numeric (x0-x31) or ABI register name.
func ParseRegister(name string) (uint8, bool) {
	name = strings.ToLower(strings.TrimSpace(name))

	if reg, ok := abiAlias[name]; ok {
		return reg, true
	}

	if len(name) < 2 || name[0] != 'x' {
		return 0, false
	}

	digits := name[1:]
	// Reject "x01" and "x+1": only canonical numbering is accepted.
	if (len(digits) > 1 && digits[0] == '0') || digits[0] < '0' || digits[0] > '9' {
		return 0, false
	}

	n, err := strconv.ParseUint(digits, 10, 8)
	if err != nil || n >= NumRegs {
		return 0, false
	}

	return uint8(n), true
}

// RegName returns "xN" for a register number.
func RegName(reg uint8) string {
	return "x" + strconv.Itoa(int(reg))
}
