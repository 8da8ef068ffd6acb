// Package codec reads and writes streams of entity records. Two formats are
// supported: JSONL (one JSON object per line) and MessagePack (a sequence of
// encoded maps).
package codec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/hgraph/pkg/types"
)

// Format names a record stream encoding.
type Format string

// Supported formats.
const (
	FormatJSONL   Format = "jsonl"
	FormatMsgpack Format = "msgpack"
)

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("unknown record format")

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSONL, FormatMsgpack:
		return f, nil
	case "json", "ndjson":
		return FormatJSONL, nil
	case "mpk", "msgp":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath guesses the format from a file extension, falling back to
// def when the extension is not recognized.
func FormatFromPath(path string, def Format) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f, err := ParseFormat(ext); err == nil {
		return f
	}
	return def
}

// Reader yields records one at a time. Read returns io.EOF after the last
// record. A *RecordError means one record was unusable and reading may
// continue; any other error ends the stream.
type Reader interface {
	Read() (types.Record, error)

	// Position locates the most recently read record in the stream, in the
	// same terms as RecordError.Position.
	Position() int
}

// Writer writes records in order.
type Writer interface {
	Write(rec types.Record) error
	Close() error
}

// RecordError reports a single record that could not be decoded. Position is
// the 1-based line number for JSONL and the 1-based record index for
// MessagePack.
type RecordError struct {
	Position int
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Position, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewReader returns a reader for the given format.
func NewReader(r io.Reader, f Format) (Reader, error) {
	switch f {
	case FormatJSONL:
		return NewJSONLReader(r), nil
	case FormatMsgpack:
		return NewMsgpackReader(r), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// NewWriter returns a writer for the given format. Close flushes buffered
// output but does not close w.
func NewWriter(w io.Writer, f Format) (Writer, error) {
	switch f {
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatMsgpack:
		return NewMsgpackWriter(w), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// ReadAll drains r. It stops at the first error, including a *RecordError.
func ReadAll(r Reader) ([]types.Record, error) {
	var out []types.Record
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// WriteFile writes records to path atomically: they go to a temporary file
// in the same directory, which is synced and then renamed over path. On
// failure path is left untouched.
func WriteFile(path string, f Format, records []types.Record) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".hgraph-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w, err := NewWriter(tmp, f)
	if err != nil {
		return fail(err)
	}
	for i, rec := range records {
		if err := w.Write(rec); err != nil {
			return fail(fmt.Errorf("writing record %d: %w", i+1, err))
		}
	}
	if err := w.Close(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
