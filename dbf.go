// Package dbf reads and writes Xbase DBF table files.
//
// The package is a codec, not a file manager: both halves operate on an
// already-open byte stream supplied by the caller. Reader decodes the
// 32-byte file header and the field descriptors up front, then yields one
// typed record at a time; Writer emits a complete, conformant file from a
// field list and a sequence of records. Soft-deleted records are skipped
// on read and never written.
//
// Cell values are dynamically typed by column: Character and Memo fields
// decode to string, Numeric fields to int64 or decimal.Decimal depending on
// the declared decimal places, Date fields to time.Time, and Logical fields
// to the tri-state Logical. Records can also be bound to tagged structs or
// viewed as maps keyed by column name.
//
// Text in legacy code pages is converted through a mahonia charset named at
// construction; an empty charset name passes bytes through untouched.
package dbf

// Byte markers fixed by the DBF format.
const (
	SPACE = 0x20 // deletion flag of a live record, also the padding byte
	EOF   = 0x1A // end-of-file terminator after the last record
	NUL   = 0x00 // field name padding
	CR    = 0x0D // header terminator after the last field descriptor
)
