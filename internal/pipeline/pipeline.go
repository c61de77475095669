// Package pipeline orchestrates the assembler passes.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/tpasm/internal/asmerr"
	"github.com/retroenv/tpasm/internal/ir"
	"github.com/retroenv/tpasm/internal/options"
	"github.com/retroenv/tpasm/internal/pass1"
	"github.com/retroenv/tpasm/internal/pass2"
	"github.com/retroenv/tpasm/internal/source"
	"github.com/retroenv/tpasm/internal/tables"
)

// Opener returns a fresh reader of the source for every pass.
type Opener func() (io.ReadCloser, error)

// Result contains the output of both passes.
type Result struct {
	Tables  *tables.Set
	Program ir.Program
}

// Pipeline orchestrates the complete assembly workflow.
type Pipeline struct {
	logger *log.Logger
}

// New creates a new assembly pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
	}
}

// Execute runs both passes over the input file of the options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) (*Result, error) {
	return p.ExecuteWithOpener(ctx, FileOpener(opts.Input), opts)
}

// FileOpener returns an opener that opens the named file.
func FileOpener(name string) Opener {
	return func() (io.ReadCloser, error) {
		file, err := os.Open(name)
		if err != nil {
			return nil, asmerr.New(asmerr.ErrIOFailure, name, 0).Wrap(err)
		}
		return file, nil
	}
}

// ExecuteWithOpener runs both passes over sources returned by open.
// This is useful for testing and programmatic usage where the source is
// already in memory.
func (p *Pipeline) ExecuteWithOpener(ctx context.Context, open Opener, opts options.Program) (*Result, error) {
	set, err := p.runPass1(ctx, open)
	if err != nil {
		return nil, fmt.Errorf("pass 1: %w", err)
	}

	prog, err := p.runPass2(ctx, open, set)
	if err != nil {
		return nil, fmt.Errorf("pass 2: %w", err)
	}

	result := &Result{
		Tables:  set,
		Program: prog,
	}
	if opts.Dump {
		p.dump(result)
	}
	return result, nil
}

func (p *Pipeline) runPass1(ctx context.Context, open Opener) (*tables.Set, error) {
	reader, err := open()
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	builder := pass1.New(p.logger)
	set, err := builder.Build(ctx, source.New(reader))
	if err != nil {
		return nil, err
	}
	return set, nil
}

func (p *Pipeline) runPass2(ctx context.Context, open Opener, set *tables.Set) (ir.Program, error) {
	reader, err := open()
	if err != nil {
		return ir.Program{}, fmt.Errorf("opening source: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	emitter := pass2.New(p.logger, set)
	prog, err := emitter.Emit(ctx, source.New(reader))
	if err != nil {
		return ir.Program{}, err
	}
	return prog, nil
}

func (p *Pipeline) dump(result *Result) {
	printer := pp.New()
	printer.SetColoringEnabled(false)

	p.logger.Info("Symbols", log.String("table", printer.Sprint(result.Tables.Symbols())))
	p.logger.Info("Literals", log.String("table", printer.Sprint(result.Tables.Literals())))
	p.logger.Info("Pools", log.String("table", printer.Sprint(result.Tables.Pools())))
	p.logger.Info("Intermediate code", log.String("program", printer.Sprint(result.Program.Lines)))
}
