// Package asm implements the two-pass µRISC assembler.
//
// Pass 1 maps labels to addresses and collects program lines; pass 2
// encodes each line into a 32-bit word. The first error aborts assembly
// and no partial image is returned.
package asm

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/sarchlab/urisc/insts"
)

// Origin is the address of the first assembled word.
const Origin uint32 = 0x80

var labelPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Line is a program line recorded by pass 1.
type Line struct {
	Text   string // label and comment stripped
	Addr   uint32
	LineNo int // 0-based source line
}

// Word is one assembled machine word.
type Word struct {
	Addr  uint32
	Value uint32
}

// Program is the result of a successful assembly.
type Program struct {
	Labels map[string]uint32
	Lines  []Line
	Words  []Word // ascending by address
}

// Listing renders the machine image as "0xAAAA: 0xWWWWWWWW" lines.
func (p *Program) Listing() string {
	var sb strings.Builder
	for i, w := range p.Words {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "0x%04X: 0x%08X", w.Addr, w.Value)
	}
	return sb.String()
}

// Assembler turns µRISC source text into machine words.
type Assembler struct {
	Verbose bool // If set, logs labels and encoded words.
}

// Assemble assembles source with a default Assembler.
func Assemble(source string) (*Program, error) {
	return (&Assembler{}).Assemble(source)
}

// Assemble runs both passes over source.
func (a *Assembler) Assemble(source string) (*Program, error) {
	prog, err := a.mapLabels(source)
	if err != nil {
		return nil, err
	}

	prog.Words = make([]Word, 0, len(prog.Lines))
	for _, line := range prog.Lines {
		value, err := a.encodeLine(line, prog.Labels)
		if err != nil {
			return nil, &Error{Line: line.LineNo, Text: line.Text, Err: err}
		}

		if a.Verbose {
			log.Printf("asm: 0x%04X: 0x%08X  %s", line.Addr, value, line.Text)
		}

		prog.Words = append(prog.Words, Word{Addr: line.Addr, Value: value})
	}

	return prog, nil
}

// mapLabels is pass 1.
func (a *Assembler) mapLabels(source string) (*Program, error) {
	prog := &Program{Labels: map[string]uint32{}}
	addr := Origin

	for lineNo, raw := range strings.Split(source, "\n") {
		text := raw
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if label, rest, ok := strings.Cut(text, ":"); ok {
			label = strings.TrimSpace(label)
			if _, dup := prog.Labels[label]; dup {
				return nil, &Error{Line: lineNo, Text: text,
					Err: &ErrName{Name: label, Err: ErrDuplicateLabel}}
			}
			if !labelPattern.MatchString(label) {
				return nil, &Error{Line: lineNo, Text: text,
					Err: &ErrName{Name: label, Err: ErrInvalidLabel}}
			}

			if a.Verbose {
				log.Printf("asm: label %s = 0x%04X", label, addr)
			}

			prog.Labels[label] = addr
			text = strings.TrimSpace(rest)
		}

		if text != "" {
			prog.Lines = append(prog.Lines, Line{Text: text, Addr: addr, LineNo: lineNo})
			addr += 4
		}
	}

	return prog, nil
}

// encodeLine is pass 2 for a single line.
func (a *Assembler) encodeLine(line Line, labels map[string]uint32) (uint32, error) {
	text := line.Text
	if strings.Contains(text, "$(") {
		var err error
		text, err = expandExprs(text, line.Addr, labels)
		if err != nil {
			return 0, err
		}
	}

	mnemonic, operands := tokenize(text)

	if mnemonic == ".word" {
		return encodeWord(operands)
	}

	def, ok := insts.Lookup(mnemonic)
	if !ok {
		return 0, &ErrName{Name: mnemonic, Err: ErrUnknownInstruction}
	}

	switch def.Format {
	case insts.FormatR:
		return encodeR(def, operands)
	case insts.FormatI:
		return encodeI(def, operands)
	case insts.FormatLoad:
		return encodeLoad(def, operands)
	case insts.FormatS:
		return encodeS(def, operands)
	case insts.FormatB:
		return encodeB(def, operands, labels, line.Addr)
	}

	return 0, &ErrName{Name: mnemonic, Err: ErrUnknownInstruction}
}

var (
	openParen  = regexp.MustCompile(`\s*\(\s*`)
	closeParen = regexp.MustCompile(`\s*\)`)
)

// tokenize splits a line into a lowercased mnemonic and its operands.
// Operands are separated by commas or whitespace; "imm(base)" stays one
// operand.
func tokenize(text string) (string, []string) {
	text = openParen.ReplaceAllString(text, "(")
	text = closeParen.ReplaceAllString(text, ")")

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return "", nil
	}

	return strings.ToLower(fields[0]), fields[1:]
}
