package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer outputs a rendered report.
type Writer interface {
	Write(lines []string) error
	Close() error
	Validate() error
}

// FileWriter writes the report to a file, fully overwriting it each run. The
// file is created on the first Write, not at construction, so a run that
// fails before producing a report leaves the previous report intact.
type FileWriter struct {
	path   string
	file   *os.File
	writer *bufio.Writer
}

// NewFileWriter prepares a writer for the given path without touching the
// filesystem yet.
func NewFileWriter(filename string) *FileWriter {
	return &FileWriter{path: filename}
}

// Write appends report lines to the file, creating it (and any parent
// directories) on first use.
func (fw *FileWriter) Write(lines []string) error {
	if fw.file == nil {
		if err := ensureDir(fw.path); err != nil {
			return err
		}
		f, err := os.Create(fw.path)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		fw.file = f
		fw.writer = bufio.NewWriter(f)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(fw.writer, line); err != nil {
			return fmt.Errorf("write report line: %w", err)
		}
	}
	if err := fw.writer.Flush(); err != nil {
		return fmt.Errorf("flush report writer: %w", err)
	}
	return nil
}

// Close flushes and closes the file handle if one was opened.
func (fw *FileWriter) Close() error {
	if fw.file == nil {
		return nil
	}
	if err := fw.writer.Flush(); err != nil {
		return fmt.Errorf("flush report writer: %w", err)
	}
	return fw.file.Close()
}

// Validate ensures the report file was written and has content.
func (fw *FileWriter) Validate() error {
	if fw.file == nil {
		return fmt.Errorf("report file %s was never written", fw.path)
	}
	info, err := fw.file.Stat()
	if err != nil {
		return fmt.Errorf("stat report file: %w", err)
	}
	if info.Size() <= 0 {
		return fmt.Errorf("report file is empty")
	}
	return nil
}

// ConsoleWriter prints report lines to an io.Writer, stdout in practice.
type ConsoleWriter struct {
	out io.Writer
}

// NewConsoleWriter wraps an output stream as a report Writer.
func NewConsoleWriter(out io.Writer) *ConsoleWriter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleWriter{out: out}
}

// Write prints the lines as one block.
func (cw *ConsoleWriter) Write(lines []string) error {
	if _, err := io.WriteString(cw.out, Join(lines)); err != nil {
		return fmt.Errorf("write console report: %w", err)
	}
	return nil
}

// Close is a no-op; the console stream is not owned by the writer.
func (cw *ConsoleWriter) Close() error { return nil }

// Validate is a no-op for console output.
func (cw *ConsoleWriter) Validate() error { return nil }

// MultiWriter fans one report out to several destinations, typically console
// plus file. A failing destination does not stop the others; all errors are
// reported together.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter builds a writer over every non-nil destination.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	mw := &MultiWriter{}
	for _, w := range writers {
		if w != nil {
			mw.writers = append(mw.writers, w)
		}
	}
	return mw
}

// Write sends the lines to every destination.
func (mw *MultiWriter) Write(lines []string) error {
	var errs []error
	for _, w := range mw.writers {
		if err := w.Write(lines); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("report write failed: %v", errs)
	}
	return nil
}

// Close closes every destination.
func (mw *MultiWriter) Close() error {
	var errs []error
	for _, w := range mw.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("report close failed: %v", errs)
	}
	return nil
}

// Validate validates every destination.
func (mw *MultiWriter) Validate() error {
	var errs []error
	for _, w := range mw.writers {
		if err := w.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("report validation failed: %v", errs)
	}
	return nil
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
