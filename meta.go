package dbf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/axgle/mahonia"
)

// fileHeader is the 32-byte file prologue, read and written whole with
// encoding/binary in little-endian order.
//
//	ver(1) | yy mm dd(3) | record count(u32) | header len(u16) | record len(u16) | reserved(20)
//
// Decoding uses RecordCount and HeaderLength only; everything else is either
// write-side (version, update date, RecordLength) or reserved.
type fileHeader struct {
	Version          byte
	LastUpdateYear   byte // years since 1900
	LastUpdateMonth  byte
	LastUpdateDay    byte
	RecordCount      uint32
	HeaderLength     uint16
	RecordLength     uint16
	Reserved         [2]byte
	Flag             byte
	EncryptFlag      byte
	Reserved2        [12]byte
	MDXFlag          byte
	LanguageDriverID byte
	Reserved3        [2]byte
}

// fieldDescriptor is one 32-byte column descriptor.
//
//	name(11, NUL padded) | type(1) | reserved(4) | size(1) | decimals(1) | reserved(14)
type fieldDescriptor struct {
	Name       [11]byte
	Type       byte
	Reserved1  [4]byte
	Length     byte
	Decimal    byte
	Reserved2  [2]byte
	WorkAreaID byte
	Reserved3  [10]byte
	Flag       byte
}

// fieldCount derives the number of descriptors from the declared header
// length. A header length below 33 or one that does not land on a 32-byte
// descriptor boundary cannot describe a valid file.
func fieldCount(headerLength uint16) (int, error) {
	l := int(headerLength)
	if l < 33 || (l-33)%32 != 0 {
		return 0, fmt.Errorf("dbf: header length %d: %w", l, ErrMalformedHeader)
	}
	return (l - 33) / 32, nil
}

// headerLength is the inverse derivation: prologue + descriptors + terminator.
func headerLength(numFields int) int {
	return 33 + 32*numFields
}

// recordLength is the fixed byte width of one record: the deletion flag plus
// every field's declared size.
func recordLength(fields []Field) int {
	n := 1
	for _, f := range fields {
		n += int(f.Size)
	}
	return n
}

// field converts an on-disk descriptor to its public form. The name is cut at
// the first NUL, space-trimmed, and charset-converted when a decoder is set.
func (d *fieldDescriptor) field(conv mahonia.Decoder) (Field, error) {
	end := bytes.IndexByte(d.Name[:], NUL)
	if end == -1 {
		end = len(d.Name)
	}
	name := string(d.Name[:end])
	if conv != nil {
		name = conv.ConvertString(name)
	}
	f := Field{
		Name:     strings.TrimSpace(name),
		Type:     FieldType(d.Type),
		Size:     d.Length,
		Decimals: d.Decimal,
	}
	if !f.Type.valid() {
		return Field{}, fmt.Errorf("dbf: field %q has type code %q: %w", f.Name, d.Type, ErrUnsupportedType)
	}
	return f, nil
}

// descriptor builds the on-disk form of f. The name must already be
// charset-converted; its byte length is what the 11-byte slot constrains.
func descriptor(f Field, name string) (fieldDescriptor, error) {
	var d fieldDescriptor
	if !f.Type.valid() {
		return d, fmt.Errorf("dbf: field %q has type %q: %w", f.Name, byte(f.Type), ErrUnsupportedType)
	}
	if f.Name == deletionFlagName {
		return d, fmt.Errorf("dbf: field name %q is reserved: %w", f.Name, ErrInvalidField)
	}
	if len(name) > maxFieldName {
		return d, fmt.Errorf("dbf: field name %q longer than %d bytes: %w", f.Name, maxFieldName, ErrInvalidField)
	}
	if strings.IndexByte(name, NUL) != -1 {
		return d, fmt.Errorf("dbf: field name %q contains NUL: %w", f.Name, ErrInvalidField)
	}
	copy(d.Name[:], name)
	d.Type = byte(f.Type)
	d.Length = f.Size
	d.Decimal = f.Decimals
	return d, nil
}
