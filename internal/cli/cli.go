// Package cli handles command line interface logic
package cli

import (
	"fmt"
	"io"

	"github.com/retroenv/tpasm/internal/options"
	"github.com/spf13/cobra"
)

// ParseFlags parses command line arguments, without the program name, and
// returns the program options.
func ParseFlags(args []string) (options.Program, error) {
	opts := options.New()
	var parsed bool

	cmd := &cobra.Command{
		Use:   "tpasm [options] <source file>",
		Short: "Two pass assembler producing symbol, literal and pool tables and intermediate code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed = true
			if len(args) == 1 {
				opts.Input = args[0]
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	if args == nil {
		args = []string{} // cobra falls back to os.Args for nil
	}
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	readOptionFlags(cmd, &opts)

	if err := cmd.Execute(); err != nil {
		return opts, &UsageError{cmd: cmd, msg: err.Error()}
	}
	if !parsed {
		// help was requested
		return opts, &UsageError{cmd: cmd}
	}
	if opts.Input == "" && opts.Batch == "" {
		return opts, &UsageError{cmd: cmd, msg: "no source file given"}
	}
	if opts.Output == "" {
		return opts, &UsageError{cmd: cmd, msg: "output directory can not be empty"}
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	cmd *cobra.Command
	msg string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the error message, if any, followed by the usage.
func (e *UsageError) ShowUsage(w io.Writer) {
	if e.msg != "" {
		_, _ = fmt.Fprintf(w, "error: %s\n\n", e.msg)
	}
	_, _ = fmt.Fprintf(w, "usage: %s\n\n", e.cmd.UseLine())
	_, _ = fmt.Fprintln(w, e.cmd.LocalFlags().FlagUsages())
}

func readOptionFlags(cmd *cobra.Command, opts *options.Program) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.Output, "output", "o", options.DefaultOutput, "directory to write the table and intermediate code files to")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask, writing each result to a sub directory of the output, for example *.asm")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the generated output by assembling the source a second time and comparing the results")
	flags.BoolVar(&opts.Dump, "dump", false, "pretty print the tables and intermediate code to the log")
	flags.BoolVar(&opts.NoHeaders, "noheaders", false, "do not output table titles and column names")
}
