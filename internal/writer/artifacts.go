package writer

import (
	"bytes"

	"github.com/retroenv/tpasm/internal/ir"
	opts "github.com/retroenv/tpasm/internal/options"
	"github.com/retroenv/tpasm/internal/tables"
)

// Artifact is a rendered output file.
type Artifact struct {
	Name string
	Data []byte
}

// RenderArtifacts renders the tables and intermediate code into the
// artifacts in the order they are written to disk.
func RenderArtifacts(set *tables.Set, prog ir.Program, options Options) ([]Artifact, error) {
	renderers := []struct {
		name   string
		render func(w *Writer) error
	}{
		{opts.SymbolTableFile, func(w *Writer) error { return w.WriteSymbolTable(set.Symbols()) }},
		{opts.LiteralTableFile, func(w *Writer) error { return w.WriteLiteralTable(set.Literals()) }},
		{opts.PoolTableFile, func(w *Writer) error { return w.WritePoolTable(set.Pools()) }},
		{opts.IntermediateCodeFile, func(w *Writer) error { return w.WriteIntermediateCode(prog) }},
	}

	artifacts := make([]Artifact, 0, len(renderers))
	for _, r := range renderers {
		var buf bytes.Buffer
		if err := r.render(New(&buf, options)); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{Name: r.name, Data: buf.Bytes()})
	}
	return artifacts, nil
}
