package dbf

import (
	"encoding/binary"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/axgle/mahonia"
)

// now is swapped out by tests that check exact header bytes.
var now = time.Now

// Writer encodes records to a DBF stream. NewWriter writes the header
// immediately, Write appends one record per call, and Close writes the
// end-of-file terminator. The record count declared in the header is fixed
// at construction and nothing written is ever revisited, so any io.Writer
// works, seekable or not.
type Writer struct {
	w       io.Writer
	fields  []Field
	encoder mahonia.Encoder
	count   uint32
	written uint32
	closed  bool

	models map[reflect.Type][]int
}

// NewWriter validates fields and writes the 32-byte header, one 32-byte
// descriptor per field, and the CR terminator. count is the record total
// the header declares; Write and Close hold the caller to it. encoding
// names the character set for text cells and field names, resolved by the
// mahonia registry; the empty string leaves bytes unconverted.
func NewWriter(w io.Writer, fields []Field, count uint32, encoding string) (*Writer, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("dbf: no fields: %w", ErrInvalidField)
	}
	var encoder mahonia.Encoder
	if encoding != "" {
		encoder = mahonia.NewEncoder(encoding)
		if encoder == nil {
			return nil, fmt.Errorf("dbf: %q: %w", encoding, ErrUnknownEncoding)
		}
	}

	descriptors := make([]fieldDescriptor, len(fields))
	for i, f := range fields {
		name := f.Name
		if encoder != nil {
			name = encoder.ConvertString(name)
		}
		d, err := descriptor(f, name)
		if err != nil {
			return nil, err
		}
		descriptors[i] = d
	}

	hdrLen := headerLength(len(fields))
	recLen := recordLength(fields)
	if hdrLen > 0xFFFF || recLen > 0xFFFF {
		return nil, fmt.Errorf("dbf: %d fields spanning %d record bytes exceed the format limits: %w", len(fields), recLen, ErrInvalidField)
	}

	year, month, day := now().Date()
	header := fileHeader{
		Version:         3,
		LastUpdateYear:  byte(year - 1900),
		LastUpdateMonth: byte(month),
		LastUpdateDay:   byte(day),
		RecordCount:     count,
		HeaderLength:    uint16(hdrLen),
		RecordLength:    uint16(recLen),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("dbf: writing header: %w", err)
	}
	for i := range descriptors {
		if err := binary.Write(w, binary.LittleEndian, &descriptors[i]); err != nil {
			return nil, fmt.Errorf("dbf: writing field descriptor %d: %w", i, err)
		}
	}
	if _, err := w.Write([]byte{CR}); err != nil {
		return nil, fmt.Errorf("dbf: writing descriptor terminator: %w", err)
	}

	out := make([]Field, len(fields))
	copy(out, fields)
	return &Writer{w: w, fields: out, encoder: encoder, count: count}, nil
}

// Write appends one record: the SPACE deletion flag, then every cell
// rendered at its declared width. The record must carry exactly one value
// per field.
func (w *Writer) Write(record []any) error {
	if w.closed {
		return fmt.Errorf("dbf: %w", ErrClosed)
	}
	if w.written == w.count {
		return fmt.Errorf("dbf: header declares %d records: %w", w.count, ErrRecordCount)
	}
	if len(record) != len(w.fields) {
		return fmt.Errorf("dbf: record has %d values, file has %d fields: %w", len(record), len(w.fields), ErrFieldCount)
	}
	buf := make([]byte, 1, recordLength(w.fields))
	buf[0] = SPACE
	for i, f := range w.fields {
		cell, err := encodeValue(f, record[i], w.encoder)
		if err != nil {
			return err
		}
		buf = append(buf, cell...)
	}
	if _, err := w.w.Write(buf); err != nil {
		return fmt.Errorf("dbf: writing record %d: %w", w.written+1, err)
	}
	w.written++
	return nil
}

// Close writes the end-of-file terminator. It fails without closing if the
// records written fall short of the declared count, so the caller can write
// the rest and try again. Close is idempotent; Write after a successful
// Close fails with ErrClosed.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	if w.written != w.count {
		return fmt.Errorf("dbf: wrote %d records, header declares %d: %w", w.written, w.count, ErrRecordCount)
	}
	w.closed = true
	if _, err := w.w.Write([]byte{EOF}); err != nil {
		return fmt.Errorf("dbf: writing end-of-file marker: %w", err)
	}
	return nil
}

// WriteAll writes a complete file in one call: a header declaring
// len(records), every record, and the terminator.
func WriteAll(w io.Writer, fields []Field, records [][]any, encoding string) error {
	dw, err := NewWriter(w, fields, uint32(len(records)), encoding)
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := dw.Write(record); err != nil {
			return err
		}
	}
	return dw.Close()
}
