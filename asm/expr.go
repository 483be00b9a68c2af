package asm

import (
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// expandExprs replaces every $(expr) in text with its decimal value.
// Parentheses inside an expression nest.
func expandExprs(text string, pc uint32, labels map[string]uint32) (string, error) {
	var sb strings.Builder

	for {
		start := strings.Index(text, "$(")
		if start < 0 {
			sb.WriteString(text)
			return sb.String(), nil
		}

		end := matchParen(text, start+1)
		if end < 0 {
			return "", &ErrOperand{Position: f("expression"), Operand: text[start:], Err: ErrInvalidOperand}
		}

		value, err := parenEval(text[start+2:end], pc, labels)
		if err != nil {
			return "", err
		}

		sb.WriteString(text[:start])
		sb.WriteString(strconv.FormatInt(value, 10))
		text = text[end+1:]
	}
}

// matchParen returns the index of the parenthesis closing the one at open,
// or -1.
func matchParen(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parenEval evaluates a compile-time expression with the labels and PC
// predeclared.
func parenEval(expr string, pc uint32, labels map[string]uint32) (int64, error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}

	pred := starlark.StringDict{}
	for label, addr := range labels {
		pred[label] = starlark.MakeUint64(uint64(addr))
	}
	pred["PC"] = starlark.MakeUint64(uint64(pc))

	prog := "rc = " + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return 0, &ErrOperand{Position: f("expression"), Operand: expr, Err: ErrInvalidOperand}
	}

	rc, ok := dict["rc"].(starlark.Int)
	if !ok {
		return 0, &ErrOperand{Position: f("expression"), Operand: expr, Err: ErrInvalidOperand}
	}
	value, ok := rc.Int64()
	if !ok {
		return 0, &ErrOperand{Position: f("expression"), Operand: expr, Err: ErrImmediateRange}
	}

	return value, nil
}
