// Package pass2 emits the intermediate code of a source using the tables
// of the first pass.
package pass2

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/tpasm/internal/asmerr"
	"github.com/retroenv/tpasm/internal/ir"
	"github.com/retroenv/tpasm/internal/opcode"
	"github.com/retroenv/tpasm/internal/source"
	"github.com/retroenv/tpasm/internal/tables"
)

// Emitter runs the second pass.
type Emitter struct {
	logger *log.Logger
	tables *tables.Set

	currentPool int // 1-based number of the pool that literals resolve in
}

// New returns a new emitter that resolves references using the given tables.
func New(logger *log.Logger, set *tables.Set) *Emitter {
	return &Emitter{
		logger: logger,
		tables: set,
	}
}

// Emit scans the stream and returns the intermediate code.
func (e *Emitter) Emit(ctx context.Context, s *source.Stream) (ir.Program, error) {
	e.currentPool = 1
	var prog ir.Program

	for {
		tok, ok, err := s.Next()
		if err != nil {
			return ir.Program{}, fmt.Errorf("reading source: %w", err)
		}
		if !ok {
			break
		}

		if s.FirstOnLine() {
			if err := ctx.Err(); err != nil {
				return ir.Program{}, err
			}
			prog.NewLine(tok.Line)
		}

		op, found := opcode.Lookup(tok.Text)
		if !found {
			ref, emit, err := e.resolve(s, tok)
			if err != nil {
				return ir.Program{}, err
			}
			if emit {
				prog.Append(ref)
			}
			continue
		}

		if op.Class == opcode.Register {
			prog.Append(ir.Ref{Kind: ir.Register, Value: op.Code})
			continue
		}
		prog.Append(ir.Ref{Kind: ir.Opcode, Class: op.Class, Value: op.Code})

		switch op.Kind {
		case opcode.Ltorg:
			e.currentPool++
			if err := s.SkipLiterals(); err != nil {
				return ir.Program{}, fmt.Errorf("reading source: %w", err)
			}
		case opcode.Origin:
			if _, err := s.Operand(tok); err != nil {
				return ir.Program{}, err
			}
		case opcode.Equ:
			refs, err := e.equOperand(s, tok)
			if err != nil {
				return ir.Program{}, err
			}
			for _, ref := range refs {
				prog.Append(ref)
			}
		case opcode.End:
			e.logger.Debug("Pass 2 finished", log.Int("lines", len(prog.Lines)))
			return prog, nil
		}
	}

	e.logger.Debug("Pass 2 finished", log.Int("lines", len(prog.Lines)))
	return prog, nil
}

// resolve returns the reference of a token that is not a mnemonic. Labels
// produce no reference.
func (e *Emitter) resolve(s *source.Stream, tok source.Token) (ir.Ref, bool, error) {
	switch tok.Kind() {
	case source.Symbol:
		if s.FirstOnLine() {
			return ir.Ref{}, false, nil
		}
		sym, ok := e.tables.Symbol(tok.Text)
		if !ok {
			return ir.Ref{}, false, asmerr.New(asmerr.ErrUnknownSymbolReference, tok.Text, tok.Line)
		}
		return ir.Ref{Kind: ir.Symbol, Value: sym.ID}, true, nil

	case source.Literal:
		lit, ok := e.tables.LiteralInPool(tok.Text, e.currentPool)
		if !ok {
			err := asmerr.New(asmerr.ErrUnknownSymbolReference, tok.Text, tok.Line).
				Wrap(fmt.Errorf("literal not in pool %d", e.currentPool))
			return ir.Ref{}, false, err
		}
		return ir.Ref{Kind: ir.Literal, Value: lit.ID}, true, nil

	case source.Constant:
		value, err := strconv.Atoi(tok.Text)
		if err != nil {
			return ir.Ref{}, false, asmerr.New(asmerr.ErrMalformedOperand, tok.Text, tok.Line).Wrap(err)
		}
		return ir.Ref{Kind: ir.Constant, Value: value}, true, nil

	case source.MalformedLiteral:
		return ir.Ref{}, false, asmerr.New(asmerr.ErrMalformedLiteral, tok.Text, tok.Line)

	default:
		return ir.Ref{}, false, asmerr.New(asmerr.ErrMalformedOperand, tok.Text, tok.Line)
	}
}

// equOperand returns the references of an EQU operand, a constant or a
// symbol with an optional +offset constant.
func (e *Emitter) equOperand(s *source.Stream, directive source.Token) ([]ir.Ref, error) {
	operand, err := s.Operand(directive)
	if err != nil {
		return nil, err
	}

	name, offsetText, hasOffset := strings.Cut(operand.Text, "+")
	if !hasOffset {
		ref, emit, err := e.resolve(s, operand)
		if err != nil || !emit {
			return nil, err
		}
		return []ir.Ref{ref}, nil
	}

	sym, ok := e.tables.Symbol(name)
	if !ok {
		return nil, asmerr.New(asmerr.ErrUnknownSymbolReference, operand.Text, operand.Line).WithDirective(directive.Text)
	}
	offset, err := strconv.Atoi(offsetText)
	if err != nil || !source.IsConstant(offsetText) {
		return nil, asmerr.New(asmerr.ErrMalformedDirectiveOperand, operand.Text, operand.Line).
			WithDirective(directive.Text).Wrap(err)
	}
	return []ir.Ref{
		{Kind: ir.Symbol, Value: sym.ID},
		{Kind: ir.Constant, Value: offset},
	}, nil
}
