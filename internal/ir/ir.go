// Package ir defines the intermediate code produced by the second pass.
package ir

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/tpasm/internal/opcode"
)

// Kind is the kind of a resolved reference.
type Kind uint8

// reference kinds.
const (
	Symbol Kind = iota + 1
	Literal
	Constant
	Register
	Opcode
)

// Ref is a resolved operand or mnemonic.
type Ref struct {
	Kind  Kind
	Class opcode.Class // only set for Opcode
	Value int          // symbol id, literal id, constant value or opcode
}

// String returns the tuple form, e.g. (S, 1), (C, 100), (1) or (IS, 4).
func (r Ref) String() string {
	switch r.Kind {
	case Symbol:
		return fmt.Sprintf("(S, %d)", r.Value)
	case Literal:
		return fmt.Sprintf("(L, %d)", r.Value)
	case Constant:
		return fmt.Sprintf("(C, %d)", r.Value)
	case Register:
		return fmt.Sprintf("(%d)", r.Value)
	default:
		return fmt.Sprintf("(%s, %d)", r.Class, r.Value)
	}
}

// Line holds the references of one source line.
type Line struct {
	Number int // 1-based source line
	Refs   []Ref
}

func (l Line) String() string {
	parts := make([]string, len(l.Refs))
	for i, ref := range l.Refs {
		parts[i] = ref.String()
	}
	return strings.Join(parts, " ")
}

// Program is the intermediate code of a source, one line per source line
// that contains tokens.
type Program struct {
	Lines []Line
}

// Append adds a reference to the last line.
func (p *Program) Append(ref Ref) {
	last := &p.Lines[len(p.Lines)-1]
	last.Refs = append(last.Refs, ref)
}

// NewLine starts a new line.
func (p *Program) NewLine(number int) {
	p.Lines = append(p.Lines, Line{Number: number})
}

// WriteTo writes the program, every line terminated by a newline.
func (p Program) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, line := range p.Lines {
		n, err := fmt.Fprintln(w, line.String())
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("writing line %d: %w", line.Number, err)
		}
	}
	return written, nil
}

func (p Program) String() string {
	var sb strings.Builder
	_, _ = p.WriteTo(&sb)
	return sb.String()
}
