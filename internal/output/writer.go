package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sgmodkit/sgmerge/internal/domain"
)

// Writer persists the rendered merged module. Writes go to a temp file in
// the target directory and are renamed into place, so a crash mid-write
// never leaves a truncated artifact.
type Writer struct {
	path   string
	dryRun bool
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	Path   string
	DryRun bool
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.Path == "" {
		opts.Path = "merged.sgmodule"
	}
	return &Writer{
		path:   opts.Path,
		dryRun: opts.DryRun,
	}
}

// Path returns the target output path.
func (w *Writer) Path() string {
	return w.path
}

// Write stores the rendered content at the target path, creating parent
// directories as needed. Failures are fatal to the run and wrap
// domain.ErrWriteFailed.
func (w *Writer) Write(content string) error {
	if w.dryRun {
		return nil
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}

	tmp, err := os.CreateTemp(dir, ".sgmerge-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}

	if err := os.Rename(tmpPath, w.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}

	return nil
}
