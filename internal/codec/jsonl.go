package codec

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mesh-intelligence/hgraph/pkg/types"
)

// maxLineSize bounds a single JSONL record.
const maxLineSize = 4 << 20

// JSONLReader reads one JSON object per line. Blank lines are skipped.
type JSONLReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewJSONLReader returns a reader over r.
func NewJSONLReader(r io.Reader) *JSONLReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &JSONLReader{scanner: s}
}

// Position returns the line number of the most recently read line.
func (r *JSONLReader) Position() int {
	return r.line
}

// Read returns the next record. A malformed line yields a *RecordError
// carrying its line number; the following call continues with the next
// line.
func (r *JSONLReader) Read() (types.Record, error) {
	for r.scanner.Scan() {
		r.line++
		line := bytes.TrimSpace(r.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec types.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, &RecordError{Position: r.line, Err: err}
		}
		if rec == nil {
			return nil, &RecordError{Position: r.line, Err: errors.New("not a JSON object")}
		}
		return rec, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning line %d: %w", r.line+1, err)
	}
	return nil, io.EOF
}

// JSONLWriter writes one JSON object per line.
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter returns a buffered writer over w.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{w: bufio.NewWriter(w)}
}

// Write encodes rec on its own line. Map keys are written in sorted order.
func (w *JSONLWriter) Write(rec types.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if _, err := w.w.Write(data); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Close flushes buffered output.
func (w *JSONLWriter) Close() error {
	return w.w.Flush()
}
