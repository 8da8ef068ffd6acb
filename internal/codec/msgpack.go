package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/mesh-intelligence/hgraph/pkg/types"
)

// MsgpackReader reads a stream of MessagePack maps.
type MsgpackReader struct {
	dec   *msgpack.Decoder
	index int
	err   error
}

// NewMsgpackReader returns a reader over r.
func NewMsgpackReader(r io.Reader) *MsgpackReader {
	return &MsgpackReader{dec: msgpack.NewDecoder(bufio.NewReader(r))}
}

// Read returns the next record. A value that is not a map is reported as a
// *RecordError. A corrupt stream cannot be resynchronized, so a decode
// failure ends it and is returned on every later call.
func (r *MsgpackReader) Read() (types.Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	v, err := r.dec.DecodeInterface()
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.err = io.EOF
		} else {
			r.err = fmt.Errorf("decoding record %d: %w", r.index+1, err)
		}
		return nil, r.err
	}
	r.index++
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &RecordError{Position: r.index, Err: fmt.Errorf("want a map, got %T", v)}
	}
	return types.Record(m), nil
}

// Position returns the 1-based index of the most recently read record.
func (r *MsgpackReader) Position() int {
	return r.index
}

// MsgpackWriter writes records as a stream of MessagePack maps.
type MsgpackWriter struct {
	buf *bufio.Writer
	enc *msgpack.Encoder
}

// NewMsgpackWriter returns a buffered writer over w.
func NewMsgpackWriter(w io.Writer) *MsgpackWriter {
	buf := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(buf)
	enc.SetSortMapKeys(true)
	return &MsgpackWriter{buf: buf, enc: enc}
}

// Write encodes rec as one map.
func (w *MsgpackWriter) Write(rec types.Record) error {
	if err := w.enc.Encode(map[string]any(rec)); err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return nil
}

// Close flushes buffered output.
func (w *MsgpackWriter) Close() error {
	return w.buf.Flush()
}
