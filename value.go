package dbf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/axgle/mahonia"
	"github.com/shopspring/decimal"
)

// Logical is the tri-state value of a Logical column. The raw flag byte
// decodes to True for Y/y/T/t and False for N/n/F/f; every other byte is
// Unknown, which is data, not an error.
type Logical byte

const (
	True    Logical = 'T'
	False   Logical = 'F'
	Unknown Logical = '?'
)

func (l Logical) String() string { return string(l) }

// Bool reports the boolean value and whether it is known.
func (l Logical) Bool() (value, known bool) {
	switch l {
	case True:
		return true, true
	case False:
		return false, true
	}
	return false, false
}

// MarshalJSON renders true, false, or null for Unknown.
func (l Logical) MarshalJSON() ([]byte, error) {
	switch l {
	case True:
		return []byte("true"), nil
	case False:
		return []byte("false"), nil
	}
	return []byte("null"), nil
}

// dateLayout is the fixed 8-digit on-disk form of a Date cell.
const dateLayout = "20060102"

// decodeValue coerces one raw fixed-width slice into its typed cell value,
// dispatched by the column's declared type. Character and Memo slices keep
// their padding: the fixed width is part of the value.
func decodeValue(f Field, raw []byte, conv mahonia.Decoder) (any, error) {
	switch f.Type {
	case TypeNumeric:
		return decodeNumeric(f, raw)
	case TypeDate:
		t, err := time.Parse(dateLayout, string(raw))
		if err != nil {
			return nil, fmt.Errorf("dbf: field %q: %q: %w", f.Name, raw, ErrInvalidDate)
		}
		return t, nil
	case TypeLogical:
		return decodeLogical(raw), nil
	}
	s := string(raw)
	if conv != nil {
		s = conv.ConvertString(s)
	}
	return s, nil
}

// decodeNumeric strips NULs and surrounding whitespace, then parses. An
// empty cell is integer zero regardless of the declared decimal places.
func decodeNumeric(f Field, raw []byte) (any, error) {
	trimmed := strings.TrimSpace(string(bytes.ReplaceAll(raw, []byte{NUL}, nil)))
	if trimmed == "" {
		return int64(0), nil
	}
	if f.Decimals > 0 {
		d, err := decimal.NewFromString(trimmed)
		if err != nil {
			return nil, fmt.Errorf("dbf: field %q: %q: %w", f.Name, trimmed, ErrInvalidNumber)
		}
		return d, nil
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("dbf: field %q: %q: %w", f.Name, trimmed, ErrInvalidNumber)
	}
	return n, nil
}

func decodeLogical(raw []byte) Logical {
	if len(raw) == 0 {
		return Unknown
	}
	switch raw[0] {
	case 'Y', 'y', 'T', 't':
		return True
	case 'N', 'n', 'F', 'f':
		return False
	}
	return Unknown
}

// encodeValue renders v into the fixed-width slice declared by f. Character
// and Memo text is truncated to the declared size and space-padded; every
// other type must render to exactly the declared size or the call fails with
// ErrFieldWidth.
func encodeValue(f Field, v any, conv mahonia.Encoder) ([]byte, error) {
	size := int(f.Size)
	switch f.Type {
	case TypeNumeric:
		s, err := numericString(f, v)
		if err != nil {
			return nil, err
		}
		if len(s) > size {
			return nil, fmt.Errorf("dbf: field %q: rendered %d bytes, declared size %d: %w", f.Name, len(s), size, ErrFieldWidth)
		}
		return justifyRight(s, size), nil
	case TypeDate:
		t, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("dbf: field %q: cannot encode %T as Date: %w", f.Name, v, ErrValueType)
		}
		s := t.Format(dateLayout)
		if len(s) != size {
			return nil, fmt.Errorf("dbf: field %q: rendered %d bytes, declared size %d: %w", f.Name, len(s), size, ErrFieldWidth)
		}
		return []byte(s), nil
	case TypeLogical:
		b, err := logicalByte(f, v)
		if err != nil {
			return nil, err
		}
		if size != 1 {
			return nil, fmt.Errorf("dbf: field %q: rendered 1 byte, declared size %d: %w", f.Name, size, ErrFieldWidth)
		}
		return []byte{b}, nil
	case TypeCharacter, TypeMemo:
		s := textString(v)
		if conv != nil {
			s = conv.ConvertString(s)
		}
		if len(s) > size {
			s = s[:size]
		}
		return justifyLeft(s, size), nil
	}
	return nil, fmt.Errorf("dbf: field %q has type %q: %w", f.Name, byte(f.Type), ErrUnsupportedType)
}

// numericString renders the accepted numeric kinds as decimal text. Floats
// render with the column's declared decimal places; integers and
// decimal.Decimal keep their own digits.
func numericString(f Field, v any) (string, error) {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), nil
	case int8:
		return strconv.FormatInt(int64(n), 10), nil
	case int16:
		return strconv.FormatInt(int64(n), 10), nil
	case int32:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case float32:
		return strconv.FormatFloat(float64(n), 'f', int(f.Decimals), 32), nil
	case float64:
		return strconv.FormatFloat(n, 'f', int(f.Decimals), 64), nil
	case decimal.Decimal:
		return n.String(), nil
	}
	return "", fmt.Errorf("dbf: field %q: cannot encode %T as Numeric: %w", f.Name, v, ErrValueType)
}

// logicalByte renders the conventional single-letter form: the first byte of
// the value's string form, uppercased. nil and the empty string are Unknown.
func logicalByte(f Field, v any) (byte, error) {
	switch l := v.(type) {
	case nil:
		return byte(Unknown), nil
	case Logical:
		return upperByte(byte(l)), nil
	case bool:
		if l {
			return byte(True), nil
		}
		return byte(False), nil
	case string:
		if l == "" {
			return byte(Unknown), nil
		}
		return upperByte(l[0]), nil
	}
	return 0, fmt.Errorf("dbf: field %q: cannot encode %T as Logical: %w", f.Name, v, ErrValueType)
}

func textString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	return fmt.Sprint(v)
}

func upperByte(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func justifyLeft(s string, size int) []byte {
	buf := bytes.Repeat([]byte{SPACE}, size)
	copy(buf, s)
	return buf
}

func justifyRight(s string, size int) []byte {
	buf := bytes.Repeat([]byte{SPACE}, size)
	copy(buf[size-len(s):], s)
	return buf
}
