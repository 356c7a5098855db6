package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	md2adf "github.com/alnah/go-md2adf"
	"github.com/alnah/go-md2adf/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrCreateOutputDir  = errors.New("failed to create output directory")
	ErrConversionFailed = errors.New("conversion failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Converter is the interface for the conversion service.
type Converter interface {
	TransformFile(ctx context.Context, path string) (*md2adf.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*md2adf.Transformer)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Bytes      int
	Duration   time.Duration
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, inputs []string, flags *cliFlags, registry *md2adf.Registry, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	configPath := flags.config
	if configPath != "" {
		if !filepath.IsAbs(configPath) && env.WorkDir != "" {
			configPath = filepath.Join(env.WorkDir, configPath)
		}
		if !fileutil.FileExists(configPath) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, flags.config)
		}
	}

	opts := []md2adf.Option{
		md2adf.WithRegistry(registry),
		md2adf.WithLogger(newLogger(env.Stderr, flags)),
		md2adf.WithConfigPath(configPath),
	}
	if env.WorkDir != "" {
		opts = append(opts, md2adf.WithConfigDir(env.WorkDir))
	}
	if flags.codeLanguage != "" {
		opts = append(opts, md2adf.WithCodeLanguage(flags.codeLanguage))
	}

	transformer := md2adf.NewTransformer(opts...)
	if err := transformer.Initialize(ctx); err != nil {
		return fmt.Errorf("loading plugins: %w", err)
	}

	if flags.plugins {
		return writeJSON(env.Stdout, transformer.PluginConfiguration())
	}

	if len(inputs) == 0 {
		return ErrNoInput
	}

	files, err := discoverFiles(inputs, flags.output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %v", ErrNoInput, inputs)
	}

	if flags.output == "" && isSingleFile(inputs) {
		result, err := transformer.TransformFile(ctx, files[0].InputPath)
		if err != nil {
			return err
		}
		return writeJSON(env.Stdout, result.Document)
	}

	results := convertBatch(ctx, transformer, files, resolveWorkers(flags.workers))

	failedCount := printResults(results, flags.quiet, flags.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrConversionFailed, failedCount)
	}

	return nil
}

// newLogger builds the library logger from the output control flags.
func newLogger(w io.Writer, flags *cliFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case flags.verbose:
		level = slog.LevelDebug
	case flags.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// convertBatch processes files concurrently with a shared transformer.
func convertBatch(ctx context.Context, svc Converter, files []FileToConvert, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(workers, MinWorkers), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, svc, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, svc Converter, f FileToConvert) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	res, err := svc.TransformFile(ctx, f.InputPath)
	if err != nil {
		return finish(err)
	}

	data, err := json.MarshalIndent(res.Document, "", "  ")
	if err != nil {
		return finish(fmt.Errorf("encoding document: %w", err))
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrCreateOutputDir, err))
	}

	// #nosec G306 -- ADF documents are meant to be readable
	if err := fileutil.WriteFileAtomic(f.OutputPath, data, filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	result.Bytes = len(data)
	return finish(nil)
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %v)\n",
				r.InputPath, r.OutputPath, humanize.Bytes(uint64(r.Bytes)), r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
