package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpgo/zcbond/internal/domain"
)

// PathWriter is a domain.RowSink that must be flushed once the path is written.
type PathWriter interface {
	domain.RowSink
	Flush() error
}

// TextRowWriter writes one "<time> <rate>" line per row.
type TextRowWriter struct {
	w *bufio.Writer
}

// NewTextRowWriter wraps w in a buffered row writer.
func NewTextRowWriter(w io.Writer) *TextRowWriter {
	return &TextRowWriter{w: bufio.NewWriter(w)}
}

func (t *TextRowWriter) WriteRow(time, rate float64) error {
	_, err := fmt.Fprintf(t.w, "%s %s\n", floatToString(time), floatToString(rate))
	return err
}

func (t *TextRowWriter) Flush() error { return t.w.Flush() }

// CSVRowWriter writes the path as CSV with a time,rate header.
type CSVRowWriter struct {
	w      *csv.Writer
	header bool
}

// NewCSVRowWriter creates a CSV row writer on w.
func NewCSVRowWriter(w io.Writer) *CSVRowWriter {
	return &CSVRowWriter{w: csv.NewWriter(w)}
}

func (c *CSVRowWriter) WriteRow(time, rate float64) error {
	if !c.header {
		if err := c.w.Write([]string{"time", "rate"}); err != nil {
			return err
		}
		c.header = true
	}
	return c.w.Write([]string{floatToString(time), floatToString(rate)})
}

func (c *CSVRowWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

// NewPathWriter picks the row format from the file extension: ".csv" gives
// CSV, anything else the plain text format.
func NewPathWriter(filename string, w io.Writer) PathWriter {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return NewCSVRowWriter(w)
	}
	return NewTextRowWriter(w)
}

// PathFile is an open diagnostic path file.
type PathFile struct {
	PathWriter
	file *os.File
}

// CreatePathFile creates (or truncates) filename and returns a sink for it.
func CreatePathFile(filename string) (*PathFile, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create path file: %w", err)
	}
	return &PathFile{PathWriter: NewPathWriter(filename, f), file: f}, nil
}

// Close flushes buffered rows and closes the file.
func (pf *PathFile) Close() error {
	flushErr := pf.Flush()
	closeErr := pf.file.Close()
	if flushErr != nil {
		return fmt.Errorf("failed to write path file: %w", flushErr)
	}
	return closeErr
}

// Discard closes and removes the file; used when the run fails so no partial
// artifact is left behind.
func (pf *PathFile) Discard() error {
	_ = pf.file.Close()
	return os.Remove(pf.file.Name())
}
