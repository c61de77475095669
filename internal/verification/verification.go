// Package verification verifies that assembling a source is deterministic.
package verification

import (
	"bytes"
	"context"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/tpasm/internal/options"
	"github.com/retroenv/tpasm/internal/pipeline"
	"github.com/retroenv/tpasm/internal/writer"
)

// VerifyOutput assembles the source a second time and verifies that the
// rendered artifacts are byte identical to the given ones.
func VerifyOutput(ctx context.Context, logger *log.Logger, open pipeline.Opener,
	opts options.Program, artifacts []writer.Artifact) error {

	opts.Dump = false
	result, err := pipeline.New(logger).ExecuteWithOpener(ctx, open, opts)
	if err != nil {
		return fmt.Errorf("reassembling source: %w", err)
	}

	second, err := writer.RenderArtifacts(result.Tables, result.Program, writer.Options{Headers: !opts.NoHeaders})
	if err != nil {
		return fmt.Errorf("rendering artifacts: %w", err)
	}

	return compareArtifacts(logger, artifacts, second)
}

func compareArtifacts(logger *log.Logger, expected, got []writer.Artifact) error {
	if len(expected) != len(got) {
		return fmt.Errorf("mismatched artifact count, %d != %d", len(expected), len(got))
	}

	for i := range expected {
		if expected[i].Name != got[i].Name {
			return fmt.Errorf("artifact name mismatch, expected %s but got %s", expected[i].Name, got[i].Name)
		}
		if err := checkBufferEqual(logger, expected[i].Name, expected[i].Data, got[i].Data); err != nil {
			return fmt.Errorf("artifact %s mismatch: %w", expected[i].Name, err)
		}
	}
	return nil
}

func checkBufferEqual(logger *log.Logger, name string, input, output []byte) error {
	inputLines := bytes.Split(input, []byte("\n"))
	outputLines := bytes.Split(output, []byte("\n"))
	if len(inputLines) != len(outputLines) {
		return fmt.Errorf("mismatched line counts, %d != %d", len(inputLines), len(outputLines))
	}

	var diffs int
	for i := range inputLines {
		if bytes.Equal(inputLines[i], outputLines[i]) {
			continue
		}

		diffs++
		if diffs < 10 {
			logger.Error("Line mismatch",
				log.String("artifact", name),
				log.Int("line", i+1),
				log.String("expected", string(inputLines[i])),
				log.String("got", string(outputLines[i])))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d line mismatches", diffs)
}
