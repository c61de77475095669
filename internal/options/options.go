// Package options contains the program options.
package options

// DefaultOutput is the directory that receives the artifacts when no output is given.
const DefaultOutput = "output"

// Artifact file names written to the output directory.
const (
	SymbolTableFile      = "symbol_table.txt"
	LiteralTableFile     = "literal_table.txt"
	PoolTableFile        = "pool_table.txt"
	IntermediateCodeFile = "intermediate_code.txt"
)

// Program options of the assembler.
type Program struct {
	Input  string // source file to assemble
	Output string // directory to write the artifacts to
	Batch  string // glob pattern of source files to assemble

	Debug     bool
	Quiet     bool
	Verify    bool // run both passes twice and compare the results
	Dump      bool // pretty print the tables and intermediate code
	NoHeaders bool // omit table titles and column names
}

// New returns program options with default values.
func New() Program {
	return Program{
		Output: DefaultOutput,
	}
}
