package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2adf/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrOutputConflict   = errors.New("several inputs map to the same output")
)

// outputExt is the extension of generated ADF files.
const outputExt = ".json"

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all markdown files to convert across inputs.
func discoverFiles(inputs []string, outputDir string) ([]FileToConvert, error) {
	var files []FileToConvert
	for _, input := range inputs {
		found, err := discoverInput(input, outputDir)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	if strings.HasSuffix(outputDir, outputExt) && len(files) > 1 {
		return nil, fmt.Errorf("%w: --output %s names a file but %d inputs were found",
			ErrOutputConflict, outputDir, len(files))
	}
	if err := checkOutputConflicts(files); err != nil {
		return nil, err
	}
	return files, nil
}

// checkOutputConflicts rejects two inputs writing the same output file,
// e.g. guide.md and guide.markdown in one directory.
func checkOutputConflicts(files []FileToConvert) error {
	seen := make(map[string]string, len(files))
	for _, f := range files {
		key := filepath.Clean(f.OutputPath)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", ErrOutputConflict, prev, f.InputPath, f.OutputPath)
		}
		seen[key] = f.InputPath
	}
	return nil
}

// discoverInput finds the markdown files under one input file or directory.
func discoverInput(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsMarkdown(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the JSON output path for a markdown file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	if outputDir == "" {
		return fileutil.ReplaceExt(inputPath, outputExt)
	}

	if strings.HasSuffix(outputDir, outputExt) {
		return outputDir
	}

	base := fileutil.ReplaceExt(filepath.Base(inputPath), outputExt)
	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(outputDir, base)
}

// isSingleFile reports whether inputs name exactly one regular file.
func isSingleFile(inputs []string) bool {
	if len(inputs) != 1 {
		return false
	}
	info, err := os.Stat(inputs[0])
	return err == nil && !info.IsDir()
}
