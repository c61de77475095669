// Package pass1 builds the symbol, literal and pool tables of a source.
package pass1

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/tpasm/internal/asmerr"
	"github.com/retroenv/tpasm/internal/opcode"
	"github.com/retroenv/tpasm/internal/source"
	"github.com/retroenv/tpasm/internal/tables"
)

// Builder runs the first pass. It owns the location counter and the tables
// until the pass completes.
type Builder struct {
	logger *log.Logger

	symbols  *tables.SymbolTable
	literals *tables.LiteralTable
	pools    *tables.PoolTable

	counter   int  // address of the last placed word
	startSeen bool // the next placement lands on the START address

	lastLabel        source.Token
	lastLabelCharged bool // whether the last label advanced the counter

	done bool
}

// New returns a new first pass builder.
func New(logger *log.Logger) *Builder {
	return &Builder{
		logger: logger,
	}
}

// Counter returns the location counter.
func (b *Builder) Counter() int {
	return b.counter
}

// Build scans the stream once and returns the frozen tables.
func (b *Builder) Build(ctx context.Context, s *source.Stream) (*tables.Set, error) {
	b.reset()

	for !b.done {
		tok, ok, err := s.Next()
		if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}
		if !ok {
			break
		}
		if s.FirstOnLine() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if err := b.process(s, tok); err != nil {
			return nil, err
		}
	}

	if !b.done && b.literals.OpenLen() > 0 {
		b.logger.Warn("Source has no END, closing open literal pool",
			log.Int("literals", b.literals.OpenLen()))
		b.closePool()
	}

	b.logger.Debug("Pass 1 finished",
		log.Int("symbols", b.symbols.Len()),
		log.Int("literals", b.literals.Len()),
		log.Int("pools", b.pools.Len()),
		log.Int("counter", b.counter),
	)

	return tables.Freeze(b.symbols, b.literals, b.pools), nil
}

func (b *Builder) reset() {
	b.symbols = tables.NewSymbolTable()
	b.literals = tables.NewLiteralTable()
	b.pools = tables.NewPoolTable()
	b.counter = 0
	b.startSeen = false
	b.lastLabel = source.Token{}
	b.lastLabelCharged = false
	b.done = false
}

func (b *Builder) process(s *source.Stream, tok source.Token) error {
	op, ok := opcode.Lookup(tok.Text)
	if !ok {
		return b.processOperand(s, tok)
	}

	switch op.Kind {
	case opcode.Start:
		return b.start(s, tok)
	case opcode.Origin:
		return b.origin(s, tok)
	case opcode.Equ:
		return b.equ(s, tok)
	case opcode.DefineStorage:
		return b.defineStorage(s, tok)
	case opcode.Ltorg:
		b.closePool()
		return s.SkipLiterals()
	case opcode.End:
		if b.literals.OpenLen() > 0 {
			b.closePool()
		}
		b.done = true
		return nil
	default:
		b.place(s, op)
		return nil
	}
}

func (b *Builder) processOperand(s *source.Stream, tok source.Token) error {
	switch tok.Kind() {
	case source.Symbol:
		if s.FirstOnLine() {
			b.label(tok)
			return nil
		}
		if sym, added := b.symbols.Reference(tok.Text, b.counter); added {
			b.logger.Debug("Forward reference",
				log.String("symbol", sym.Name),
				log.Int("address", sym.Address),
				log.Int("line", tok.Line),
			)
		}

	case source.Literal:
		b.literals.AddToOpenPool(tok.Text)

	case source.MalformedLiteral:
		return asmerr.New(asmerr.ErrMalformedLiteral, tok.Text, tok.Line)
	}
	return nil
}

// label defines a symbol that starts a line at the next address.
func (b *Builder) label(tok source.Token) {
	if b.startSeen {
		b.startSeen = false
		b.lastLabelCharged = false
	} else {
		b.counter++
		b.lastLabelCharged = true
	}
	b.lastLabel = tok
	b.symbols.Define(tok.Text, b.counter)
}

// place handles all statements that are dispatched by class only.
func (b *Builder) place(s *source.Stream, op opcode.Opcode) {
	if b.startSeen {
		b.counter--
		b.startSeen = false
	}
	if s.FirstOnLine() && op.Class.Reserves() {
		b.counter++
		b.logger.Debug("Placed",
			log.String("mnemonic", op.Mnemonic),
			log.Int("address", b.counter),
		)
	}
}

func (b *Builder) start(s *source.Stream, directive source.Token) error {
	operand, err := s.Operand(directive)
	if err != nil {
		return err
	}
	address, err := strconv.Atoi(operand.Text)
	if err != nil || !source.IsConstant(operand.Text) {
		return directiveError(asmerr.ErrMalformedDirectiveOperand, operand, directive).Wrap(err)
	}

	b.counter = address
	b.startSeen = true
	b.logger.Debug("Start", log.Int("address", address))
	return nil
}

func (b *Builder) origin(s *source.Stream, directive source.Token) error {
	operand, err := s.Operand(directive)
	if err != nil {
		return err
	}
	address, err := b.resolveAddress(operand, directive)
	if err != nil {
		return err
	}

	b.counter = address - 1
	b.startSeen = false
	b.logger.Debug("Origin", log.Int("address", address), log.Int("line", directive.Line))
	return nil
}

func (b *Builder) equ(s *source.Stream, directive source.Token) error {
	alias, err := b.precedingSymbol(s, directive)
	if err != nil {
		return err
	}

	// the aliased label does not occupy a word
	if alias == b.lastLabel {
		if b.lastLabelCharged {
			b.counter--
		} else {
			b.startSeen = true
		}
	}

	operand, err := s.Operand(directive)
	if err != nil {
		return err
	}
	address, err := b.resolveAddress(operand, directive)
	if err != nil {
		return err
	}

	b.symbols.SetAddress(alias.Text, address)
	b.logger.Debug("Equ",
		log.String("symbol", alias.Text),
		log.String("target", operand.Text),
		log.Int("address", address),
	)
	return nil
}

func (b *Builder) defineStorage(s *source.Stream, directive source.Token) error {
	label, err := b.precedingSymbol(s, directive)
	if err != nil {
		return err
	}

	b.counter++
	b.symbols.SetAddress(label.Text, b.counter)

	operand, err := s.Operand(directive)
	if err != nil {
		return err
	}
	if !source.IsConstant(operand.Text) {
		return directiveError(asmerr.ErrMalformedDirectiveOperand, operand, directive)
	}
	return nil
}

// closePool resolves the addresses of the open literal pool.
func (b *Builder) closePool() {
	pool := b.literals.ClosePool(func() int {
		b.counter++
		return b.counter
	})
	number := b.pools.Add(pool)

	b.logger.Debug("Literal pool closed",
		log.Int("pool", number),
		log.Int("first", pool.FirstLiteralID),
		log.Int("length", pool.Length),
		log.Int("counter", b.counter),
	)
}

// precedingSymbol returns the known symbol that precedes the directive on
// its line.
func (b *Builder) precedingSymbol(s *source.Stream, directive source.Token) (source.Token, error) {
	prev, ok := s.Previous()
	if !ok || prev.Kind() != source.Symbol {
		return source.Token{}, directiveError(asmerr.ErrMalformedDirectiveOperand, directive, directive)
	}
	if !b.symbols.Has(prev.Text) {
		return source.Token{}, directiveError(asmerr.ErrUnknownSymbolReference, prev, directive)
	}
	return prev, nil
}

// resolveAddress evaluates an integer or a symbol[+offset] expression. The
// symbol must already have a defined address.
func (b *Builder) resolveAddress(operand, directive source.Token) (int, error) {
	if source.IsConstant(operand.Text) {
		address, err := strconv.Atoi(operand.Text)
		if err != nil {
			return 0, directiveError(asmerr.ErrMalformedDirectiveOperand, operand, directive).Wrap(err)
		}
		return address, nil
	}

	if operand.Kind() != source.Symbol {
		return 0, directiveError(asmerr.ErrMalformedDirectiveOperand, operand, directive)
	}

	name, offsetText, hasOffset := strings.Cut(operand.Text, "+")
	sym, ok := b.symbols.Get(name)
	if !ok || !sym.Defined {
		return 0, directiveError(asmerr.ErrUnknownSymbolReference, operand, directive)
	}
	if !hasOffset {
		return sym.Address, nil
	}

	if !source.IsConstant(offsetText) {
		return 0, directiveError(asmerr.ErrMalformedDirectiveOperand, operand, directive)
	}
	offset, err := strconv.Atoi(offsetText)
	if err != nil {
		return 0, directiveError(asmerr.ErrMalformedDirectiveOperand, operand, directive).Wrap(err)
	}
	return sym.Address + offset, nil
}

func directiveError(kind error, tok, directive source.Token) *asmerr.Error {
	return asmerr.New(kind, tok.Text, tok.Line).WithDirective(directive.Text)
}
