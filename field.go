package dbf

import "fmt"

// FieldType is the single-letter type code of a column.
type FieldType byte

const (
	TypeCharacter FieldType = 'C'
	TypeMemo      FieldType = 'M' // structurally a Character field; memo content is not resolved
	TypeDate      FieldType = 'D'
	TypeNumeric   FieldType = 'N'
	TypeLogical   FieldType = 'L'
)

func (t FieldType) String() string {
	switch t {
	case TypeCharacter:
		return "Character"
	case TypeMemo:
		return "Memo"
	case TypeDate:
		return "Date"
	case TypeNumeric:
		return "Numeric"
	case TypeLogical:
		return "Logical"
	}
	return fmt.Sprintf("FieldType(%q)", byte(t))
}

func (t FieldType) valid() bool {
	switch t {
	case TypeCharacter, TypeMemo, TypeDate, TypeNumeric, TypeLogical:
		return true
	}
	return false
}

// Field describes one column: its name, type code, on-disk width in bytes,
// and, for Numeric columns, the number of decimal places. Column order in a
// Field slice is the on-disk order.
type Field struct {
	Name     string
	Type     FieldType
	Size     uint8
	Decimals uint8
}

// maxFieldName is the significant width of a descriptor name; the on-disk
// slot is 11 bytes, NUL-terminated.
const maxFieldName = 10

// deletionFlagName is the reserved name of the synthetic one-byte column
// prepended to every record's layout. It is never exposed as a data column
// and never accepted as a field name.
const deletionFlagName = "DeletionFlag"
