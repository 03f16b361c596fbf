package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// CSVWriter writes a header and rows to a temporary file next to the target
// path. Commit renames it into place, so an aborted run leaves no output.
type CSVWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
	rows   int
	closed bool
	done   bool
}

// NewCSVWriter creates the temporary file for path and writes the header row.
// Intermediate directories are created automatically.
func NewCSVWriter(path string, header []string) (*CSVWriter, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("csv: create temp file for %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("csv: write header: %w", err)
	}

	return &CSVWriter{path: path, file: f, writer: w}, nil
}

// Write appends one row.
func (c *CSVWriter) Write(row []string) error {
	if err := c.writer.Write(row); err != nil {
		return fmt.Errorf("csv: write row %d: %w", c.rows+1, err)
	}
	c.rows++
	return nil
}

// Rows returns the number of data rows written so far.
func (c *CSVWriter) Rows() int {
	return c.rows
}

// Finish flushes and closes the temporary file without moving it. Commit
// calls it implicitly; calling it first lets several files be completed
// before any of them is moved into place.
func (c *CSVWriter) Finish() error {
	if c.closed {
		return nil
	}
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		c.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	c.closed = true
	if err := c.file.Close(); err != nil {
		_ = os.Remove(c.file.Name())
		c.done = true
		return fmt.Errorf("csv: close: %w", err)
	}
	return nil
}

// Commit finishes the file and moves it to its final path.
func (c *CSVWriter) Commit() error {
	if c.done {
		return fmt.Errorf("csv: %q already committed or discarded", c.path)
	}
	if err := c.Finish(); err != nil {
		return err
	}
	c.done = true
	if err := os.Rename(c.file.Name(), c.path); err != nil {
		_ = os.Remove(c.file.Name())
		return fmt.Errorf("csv: move into %q: %w", c.path, err)
	}
	return nil
}

// Close discards the output unless Commit already succeeded. It is safe to
// defer after a successful Commit.
func (c *CSVWriter) Close() error {
	if c.done {
		return nil
	}
	c.done = true
	if !c.closed {
		c.closed = true
		_ = c.file.Close()
	}
	return os.Remove(c.file.Name())
}

// WriteCSV writes header and rows to path in one go.
func WriteCSV(path string, header []string, rows [][]string) error {
	w, err := NewCSVWriter(path, header)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Commit()
}
