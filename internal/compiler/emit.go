package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoweredExt is the extension of files written by Emit
const LoweredExt = ".lowered.kt"

// OutputPath returns the file Emit writes for the source at path: the
// source name with LoweredExt in outDir, or next to the source when outDir
// is empty.
func OutputPath(path, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(path), SourceExt) + LoweredExt
	if outDir == "" {
		outDir = filepath.Dir(path)
	}
	return filepath.Join(outDir, base)
}

// Emit compiles the source file at path and writes the printed IR to
// OutputPath(path, outDir). It returns the written path.
func Emit(ctx context.Context, path, outDir string, opts Options) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	text, diag, err := Lower(ctx, string(source), opts)
	if err != nil {
		return "", err
	}
	if diag.HasErrors() {
		return "", fmt.Errorf("compilation errors:\n%s", diag.Format(Display(path)))
	}

	outPath := OutputPath(path, outDir)
	if dir := filepath.Dir(outPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	return outPath, nil
}
