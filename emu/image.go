package emu

import (
	"strconv"
	"strings"
)

// ImageWord is one entry of a machine image.
type ImageWord struct {
	Addr  uint32
	Value uint32
}

// ParseImage parses a machine-image listing of "0xAAAA: 0xWWWWWWWW" lines.
// Blank lines are skipped; the 0x prefixes are optional. Addresses are not
// range-checked here.
func ParseImage(listing string) ([]ImageWord, error) {
	var words []ImageWord

	for lineNo, line := range strings.Split(listing, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		addrStr, valStr, ok := strings.Cut(line, ":")
		if !ok || strings.Contains(valStr, ":") {
			return nil, &ErrImageLine{LineNo: lineNo, Line: line, Err: ErrImageSyntax}
		}

		addr, err := parseHex(addrStr)
		if err != nil {
			return nil, &ErrImageLine{LineNo: lineNo, Line: line, Err: err}
		}
		val, err := parseHex(valStr)
		if err != nil {
			return nil, &ErrImageLine{LineNo: lineNo, Line: line, Err: err}
		}

		words = append(words, ImageWord{Addr: addr, Value: val})
	}

	return words, nil
}

func parseHex(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return 0, ErrImageSyntax
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, ErrImageSyntax
	}

	return uint32(v), nil
}
