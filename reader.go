package dbf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/axgle/mahonia"
)

// Reader decodes records from a DBF stream. The header and field descriptors
// are read eagerly on construction; records are read lazily, one per Read
// call, in storage order. The underlying stream is consumed as records are
// decoded, so a Reader cannot be rewound.
type Reader struct {
	r       io.Reader
	header  fileHeader
	fields  []Field
	names   []string
	decoder mahonia.Decoder
	recbuf  []byte
	read    uint32

	models map[reflect.Type][]int
}

// NewReader reads and validates the header and field descriptors from r.
// encoding names the character set of text cells and field names and is
// resolved by the mahonia registry; the empty string leaves bytes unconverted.
func NewReader(r io.Reader, encoding string) (*Reader, error) {
	var decoder mahonia.Decoder
	if encoding != "" {
		decoder = mahonia.NewDecoder(encoding)
		if decoder == nil {
			return nil, fmt.Errorf("dbf: %q: %w", encoding, ErrUnknownEncoding)
		}
	}

	dbf := &Reader{r: r, decoder: decoder}
	if err := binary.Read(r, binary.LittleEndian, &dbf.header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("dbf: header cut short: %w", ErrMalformedHeader)
		}
		return nil, fmt.Errorf("dbf: reading header: %w", err)
	}

	n, err := fieldCount(dbf.header.HeaderLength)
	if err != nil {
		return nil, err
	}

	dbf.fields = make([]Field, 0, n)
	dbf.names = make([]string, 0, n)
	for i := 0; i < n; i++ {
		var d fieldDescriptor
		if err := binary.Read(r, binary.LittleEndian, &d); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("dbf: field descriptor %d cut short: %w", i, ErrMalformedHeader)
			}
			return nil, fmt.Errorf("dbf: reading field descriptor %d: %w", i, err)
		}
		f, err := d.field(dbf.decoder)
		if err != nil {
			return nil, err
		}
		dbf.fields = append(dbf.fields, f)
		dbf.names = append(dbf.names, f.Name)
	}

	var term [1]byte
	if _, err := io.ReadFull(r, term[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("dbf: descriptor terminator cut short: %w", ErrMalformedHeader)
		}
		return nil, fmt.Errorf("dbf: reading descriptor terminator: %w", err)
	}
	if term[0] != CR {
		return nil, fmt.Errorf("dbf: descriptor terminator 0x%02X, want 0x%02X: %w", term[0], CR, ErrMalformedHeader)
	}

	dbf.recbuf = make([]byte, recordLength(dbf.fields))
	return dbf, nil
}

// Fields returns a copy of the column definitions in file order.
func (r *Reader) Fields() []Field {
	fields := make([]Field, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Names returns a copy of the column names in file order.
func (r *Reader) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// RecordCount returns the record total declared by the header, deleted
// records included.
func (r *Reader) RecordCount() uint32 { return r.header.RecordCount }

// Read returns the next live record as one typed cell per column: string for
// Character and Memo, int64 or decimal.Decimal for Numeric, time.Time for
// Date, Logical for Logical. Records whose deletion flag is not SPACE are
// skipped. Once the declared record count is exhausted Read returns io.EOF.
func (r *Reader) Read() ([]any, error) {
	for r.read < r.header.RecordCount {
		if _, err := io.ReadFull(r.r, r.recbuf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("dbf: record %d of %d: %w", r.read+1, r.header.RecordCount, ErrTruncatedRecord)
			}
			return nil, fmt.Errorf("dbf: record %d: %w", r.read+1, err)
		}
		r.read++
		if r.recbuf[0] != SPACE {
			continue
		}
		return r.decode(r.recbuf[1:])
	}
	return nil, io.EOF
}

func (r *Reader) decode(data []byte) ([]any, error) {
	record := make([]any, len(r.fields))
	pos := 0
	for i, f := range r.fields {
		v, err := decodeValue(f, data[pos:pos+int(f.Size)], r.decoder)
		if err != nil {
			return nil, err
		}
		record[i] = v
		pos += int(f.Size)
	}
	return record, nil
}

// ReadAll drains the remaining live records.
func (r *Reader) ReadAll() ([][]any, error) {
	var records [][]any
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
}

// ReadMap returns the next live record keyed by column name.
func (r *Reader) ReadMap() (map[string]any, error) {
	record, err := r.Read()
	if err != nil {
		return nil, err
	}
	m := make(map[string]any, len(record))
	for i, v := range record {
		m[r.names[i]] = v
	}
	return m, nil
}
