// Package fileprocessor handles file loading and artifact writing
package fileprocessor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/tpasm/internal/options"
	"github.com/retroenv/tpasm/internal/pipeline"
	"github.com/retroenv/tpasm/internal/verification"
	"github.com/retroenv/tpasm/internal/writer"
)

// ProcessFile assembles the input file and writes the artifacts to the
// output directory. Artifacts are only replaced after both passes succeeded.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	p := pipeline.New(logger)
	result, err := p.Execute(ctx, opts)
	if err != nil {
		return fmt.Errorf("assembling %s: %w", opts.Input, err)
	}

	artifacts, err := writer.RenderArtifacts(result.Tables, result.Program, writer.Options{Headers: !opts.NoHeaders})
	if err != nil {
		return fmt.Errorf("rendering artifacts: %w", err)
	}

	if opts.Verify {
		open := pipeline.FileOpener(opts.Input)
		if err := verification.VerifyOutput(ctx, logger, open, opts, artifacts); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("Verification successful")
	}

	if err := writeArtifacts(opts.Output, artifacts); err != nil {
		return err
	}

	logger.Info("Assembled",
		log.String("input", opts.Input),
		log.String("output", opts.Output),
		log.Int("symbols", len(result.Tables.Symbols())),
		log.Int("literals", len(result.Tables.Literals())),
		log.Int("pools", len(result.Tables.Pools())),
	)
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputDirectory returns the artifact directory of an input file
// in batch mode, a sub directory of the output named after the input.
func GenerateOutputDirectory(output, inputFile string) string {
	base := filepath.Base(inputFile)
	ext := filepath.Ext(base)
	return filepath.Join(output, base[:len(base)-len(ext)])
}

// writeArtifacts writes all artifacts to temp files first and renames them
// once all of them have been written.
func writeArtifacts(dir string, artifacts []writer.Artifact) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	temps := make([]string, 0, len(artifacts))
	defer func() {
		for _, name := range temps {
			_ = os.Remove(name)
		}
	}()

	for _, artifact := range artifacts {
		name, err := writeTemp(dir, artifact)
		if err != nil {
			return err
		}
		temps = append(temps, name)
	}

	for i, artifact := range artifacts {
		target := filepath.Join(dir, artifact.Name)
		if err := os.Rename(temps[i], target); err != nil {
			return fmt.Errorf("renaming output file %s: %w", target, err)
		}
	}
	temps = temps[:0]
	return nil
}

func writeTemp(dir string, artifact writer.Artifact) (string, error) {
	file, err := os.CreateTemp(dir, artifact.Name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := file.Write(artifact.Data); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("writing output file %s: %w", artifact.Name, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("closing output file %s: %w", artifact.Name, err)
	}
	return file.Name(), nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	if len(commit) > 7 {
		commit = commit[:7]
	}
	if strings.Contains(date, "unknown") {
		date = ""
	}

	logger.Info("tpasm", log.String("version", buildinfo.Version(version, commit, date)))
}
