// Package writer renders the assembler tables and intermediate code as text.
package writer

import (
	"fmt"
	"io"

	"github.com/retroenv/tpasm/internal/ir"
	"github.com/retroenv/tpasm/internal/tables"
)

// Writer renders tables to an output.
type Writer struct {
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	Headers bool // print the table title and column names
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// WriteSymbolTable writes the symbols sorted by id.
func (w Writer) WriteSymbolTable(symbols []tables.Symbol) error {
	if err := w.writeHeader("Symbol Table:", "%-4s %-10s %-7s\n", "ID", "Symbol", "Address"); err != nil {
		return err
	}
	for _, sym := range symbols {
		if _, err := fmt.Fprintf(w.writer, "%-4d %-10s %-7d\n", sym.ID, sym.Name, sym.Address); err != nil {
			return fmt.Errorf("writing symbol %s: %w", sym.Name, err)
		}
	}
	return nil
}

// WriteLiteralTable writes the literals in insertion order.
func (w Writer) WriteLiteralTable(literals []tables.Literal) error {
	if err := w.writeHeader("Literal Table:", "%-4s %-10s %-7s\n", "ID", "Literal", "Address"); err != nil {
		return err
	}
	for _, lit := range literals {
		if _, err := fmt.Fprintf(w.writer, "%-4d %-10s %-7d\n", lit.ID, lit.Text, lit.Address); err != nil {
			return fmt.Errorf("writing literal %d: %w", lit.ID, err)
		}
	}
	return nil
}

// WritePoolTable writes the pools with their 1-based number.
func (w Writer) WritePoolTable(pools []tables.Pool) error {
	if err := w.writeHeader("Pool Table:", "%-4s %-8s %-11s\n", "ID", "Lit. ID", "Pool Length"); err != nil {
		return err
	}
	for i, pool := range pools {
		if _, err := fmt.Fprintf(w.writer, "%-4d %-8d %-11d\n", i+1, pool.FirstLiteralID, pool.Length); err != nil {
			return fmt.Errorf("writing pool %d: %w", i+1, err)
		}
	}
	return nil
}

// WriteIntermediateCode writes one line of tuples per source line.
func (w Writer) WriteIntermediateCode(prog ir.Program) error {
	if _, err := prog.WriteTo(w.writer); err != nil {
		return fmt.Errorf("writing intermediate code: %w", err)
	}
	return nil
}

func (w Writer) writeHeader(title, format string, columns ...any) error {
	if !w.options.Headers {
		return nil
	}
	if _, err := fmt.Fprintln(w.writer, title); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, format, columns...); err != nil {
		return fmt.Errorf("writing column names: %w", err)
	}
	return nil
}
