package dbf

import "errors"

// Sentinel errors for programmatic handling. Callers can use errors.Is to
// distinguish structural corruption (ErrMalformedHeader, ErrTruncatedRecord)
// from bad cell contents (ErrInvalidDate, ErrInvalidNumber) and from contract
// violations on the encoding side (ErrFieldWidth, ErrFieldCount, ErrValueType).
var (
	ErrMalformedHeader = errors.New("malformed header")
	ErrTruncatedRecord = errors.New("truncated record")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrFieldWidth      = errors.New("field width mismatch")
	ErrFieldCount      = errors.New("field count mismatch")
	ErrRecordCount     = errors.New("record count mismatch")
	ErrUnsupportedType = errors.New("unsupported field type")
	ErrValueType       = errors.New("value type mismatch")
	ErrInvalidField    = errors.New("invalid field definition")
	ErrUnknownEncoding = errors.New("unknown character encoding")
	ErrClosed          = errors.New("writer is closed")
)
