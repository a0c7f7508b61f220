package dbf

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDecodeLogical(t *testing.T) {
	tests := []struct {
		raw  byte
		want Logical
	}{
		{'Y', True},
		{'y', True},
		{'T', True},
		{'t', True},
		{'N', False},
		{'n', False},
		{'F', False},
		{'f', False},
		{'?', Unknown},
		{' ', Unknown},
		{'0', Unknown},
		{'1', Unknown},
	}
	for _, tt := range tests {
		if got := decodeLogical([]byte{tt.raw}); got != tt.want {
			t.Errorf("decodeLogical(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestDecodeLogicalNeverFails(t *testing.T) {
	f := Field{Name: "OK", Type: TypeLogical, Size: 1}
	for b := 0; b < 256; b++ {
		v, err := decodeValue(f, []byte{byte(b)}, nil)
		if err != nil {
			t.Fatalf("decodeValue(0x%02X): %v", b, err)
		}
		if _, ok := v.(Logical); !ok {
			t.Fatalf("decodeValue(0x%02X) = %T, want Logical", b, v)
		}
	}
}

func TestLogicalBool(t *testing.T) {
	tests := []struct {
		l     Logical
		value bool
		known bool
	}{
		{True, true, true},
		{False, false, true},
		{Unknown, false, false},
	}
	for _, tt := range tests {
		value, known := tt.l.Bool()
		if value != tt.value || known != tt.known {
			t.Errorf("%v.Bool() = %v, %v, want %v, %v", tt.l, value, known, tt.value, tt.known)
		}
	}
}

func TestLogicalJSON(t *testing.T) {
	tests := []struct {
		l    Logical
		want string
	}{
		{True, "true"},
		{False, "false"},
		{Unknown, "null"},
	}
	for _, tt := range tests {
		got, err := tt.l.MarshalJSON()
		if err != nil {
			t.Fatalf("%v.MarshalJSON(): %v", tt.l, err)
		}
		if string(got) != tt.want {
			t.Errorf("%v.MarshalJSON() = %s, want %s", tt.l, got, tt.want)
		}
	}
}

func TestDecodeNumericInteger(t *testing.T) {
	f := Field{Name: "QTY", Type: TypeNumeric, Size: 8}
	tests := []struct {
		raw  string
		want int64
	}{
		{"      30", 30},
		{"30      ", 30},
		{"     -42", -42},
		{"\x00\x00   512", 512},
		{"        ", 0},
		{"\x00\x00\x00\x00\x00\x00\x00\x00", 0},
	}
	for _, tt := range tests {
		got, err := decodeValue(f, []byte(tt.raw), nil)
		if err != nil {
			t.Errorf("decodeValue(%q): %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("decodeValue(%q) = %v (%T), want %d", tt.raw, got, got, tt.want)
		}
	}
}

func TestDecodeNumericDecimal(t *testing.T) {
	f := Field{Name: "PRICE", Type: TypeNumeric, Size: 10, Decimals: 2}
	tests := []struct {
		raw  string
		want string
	}{
		{"     12.50", "12.5"},
		{"     -0.25", "-0.25"},
		{"1234567.89", "1234567.89"},
	}
	for _, tt := range tests {
		got, err := decodeValue(f, []byte(tt.raw), nil)
		if err != nil {
			t.Errorf("decodeValue(%q): %v", tt.raw, err)
			continue
		}
		d, ok := got.(decimal.Decimal)
		if !ok {
			t.Errorf("decodeValue(%q) = %T, want decimal.Decimal", tt.raw, got)
			continue
		}
		if d.String() != tt.want {
			t.Errorf("decodeValue(%q) = %s, want %s", tt.raw, d, tt.want)
		}
	}
}

func TestDecodeNumericEmptyIsIntegerZero(t *testing.T) {
	// An all-blank cell decodes to integer zero even when the column
	// declares decimal places.
	f := Field{Name: "PRICE", Type: TypeNumeric, Size: 6, Decimals: 2}
	got, err := decodeValue(f, []byte("      "), nil)
	if err != nil {
		t.Fatalf("decodeValue: %v", err)
	}
	if got != int64(0) {
		t.Errorf("decodeValue(blank) = %v (%T), want int64(0)", got, got)
	}
}

func TestDecodeNumericGarbage(t *testing.T) {
	tests := []struct {
		name string
		f    Field
		raw  string
	}{
		{"letters", Field{Name: "QTY", Type: TypeNumeric, Size: 4}, "abcd"},
		{"fraction in integer column", Field{Name: "QTY", Type: TypeNumeric, Size: 4}, "12.5"},
		{"double dot", Field{Name: "PRICE", Type: TypeNumeric, Size: 6, Decimals: 2}, "1.2.3 "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeValue(tt.f, []byte(tt.raw), nil)
			if !errors.Is(err, ErrInvalidNumber) {
				t.Errorf("decodeValue(%q) error = %v, want ErrInvalidNumber", tt.raw, err)
			}
		})
	}
}

func TestDecodeNumericArbitraryPrecision(t *testing.T) {
	// Digits well past float64 precision survive exactly.
	f := Field{Name: "BIG", Type: TypeNumeric, Size: 25, Decimals: 5}
	raw := "12345678901234567.8901234"
	got, err := decodeValue(f, []byte(raw), nil)
	if err != nil {
		t.Fatalf("decodeValue: %v", err)
	}
	if d := got.(decimal.Decimal); d.String() != "12345678901234567.8901234" {
		t.Errorf("decodeValue = %s, want %s", d, raw)
	}
}

func TestDecodeDate(t *testing.T) {
	f := Field{Name: "DOB", Type: TypeDate, Size: 8}
	got, err := decodeValue(f, []byte("20230615"), nil)
	if err != nil {
		t.Fatalf("decodeValue: %v", err)
	}
	want := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)
	if !got.(time.Time).Equal(want) {
		t.Errorf("decodeValue = %v, want %v", got, want)
	}
}

func TestDecodeDateInvalid(t *testing.T) {
	f := Field{Name: "DOB", Type: TypeDate, Size: 8}
	tests := []struct {
		name string
		raw  string
	}{
		{"blank", "        "},
		{"letters", "2023061A"},
		{"month 13", "20231315"},
		{"day zero", "20230600"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeValue(f, []byte(tt.raw), nil)
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("decodeValue(%q) error = %v, want ErrInvalidDate", tt.raw, err)
			}
		})
	}
}

func TestDecodeCharacterKeepsPadding(t *testing.T) {
	f := Field{Name: "NAME", Type: TypeCharacter, Size: 10}
	got, err := decodeValue(f, []byte("Alice     "), nil)
	if err != nil {
		t.Fatalf("decodeValue: %v", err)
	}
	if got != "Alice     " {
		t.Errorf("decodeValue = %q, want %q", got, "Alice     ")
	}
}

func TestEncodeCharacter(t *testing.T) {
	f := Field{Name: "NAME", Type: TypeCharacter, Size: 10}
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"padded", "Alice", "Alice     "},
		{"exact", "HelloWorld", "HelloWorld"},
		{"truncated", "HelloWorldAgain", "HelloWorld"},
		{"empty", "", "          "},
		{"bytes", []byte("Bob"), "Bob       "},
		{"stringed", 42, "42        "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeValue(f, tt.v, nil)
			if err != nil {
				t.Fatalf("encodeValue: %v", err)
			}
			if !bytes.Equal(got, []byte(tt.want)) {
				t.Errorf("encodeValue = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeNumeric(t *testing.T) {
	tests := []struct {
		name string
		f    Field
		v    any
		want string
	}{
		{"int right-justified", Field{Name: "AGE", Type: TypeNumeric, Size: 3}, 30, " 30"},
		{"int64", Field{Name: "AGE", Type: TypeNumeric, Size: 5}, int64(-42), "  -42"},
		{"uint", Field{Name: "QTY", Type: TypeNumeric, Size: 4}, uint16(512), " 512"},
		{"exact width", Field{Name: "AGE", Type: TypeNumeric, Size: 3}, 123, "123"},
		{"decimal", Field{Name: "PRICE", Type: TypeNumeric, Size: 7, Decimals: 2}, decimal.RequireFromString("12.5"), "   12.5"},
		{"float64", Field{Name: "PRICE", Type: TypeNumeric, Size: 6, Decimals: 2}, 2.35, "  2.35"},
		{"float32", Field{Name: "PRICE", Type: TypeNumeric, Size: 6, Decimals: 2}, float32(2.35), "  2.35"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeValue(tt.f, tt.v, nil)
			if err != nil {
				t.Fatalf("encodeValue: %v", err)
			}
			if !bytes.Equal(got, []byte(tt.want)) {
				t.Errorf("encodeValue = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeNumericOverflowsWidth(t *testing.T) {
	f := Field{Name: "AGE", Type: TypeNumeric, Size: 3}
	_, err := encodeValue(f, 1234, nil)
	if !errors.Is(err, ErrFieldWidth) {
		t.Errorf("encodeValue(1234) error = %v, want ErrFieldWidth", err)
	}
}

func TestEncodeNumericRejectsStrings(t *testing.T) {
	f := Field{Name: "AGE", Type: TypeNumeric, Size: 3}
	_, err := encodeValue(f, "30", nil)
	if !errors.Is(err, ErrValueType) {
		t.Errorf("encodeValue(\"30\") error = %v, want ErrValueType", err)
	}
}

func TestEncodeDate(t *testing.T) {
	f := Field{Name: "DOB", Type: TypeDate, Size: 8}
	got, err := encodeValue(f, time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC), nil)
	if err != nil {
		t.Fatalf("encodeValue: %v", err)
	}
	if !bytes.Equal(got, []byte("20230615")) {
		t.Errorf("encodeValue = %q, want %q", got, "20230615")
	}
}

func TestEncodeDateWrongSize(t *testing.T) {
	f := Field{Name: "DOB", Type: TypeDate, Size: 10}
	_, err := encodeValue(f, time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC), nil)
	if !errors.Is(err, ErrFieldWidth) {
		t.Errorf("encodeValue error = %v, want ErrFieldWidth", err)
	}
}

func TestEncodeDateRejectsOtherTypes(t *testing.T) {
	f := Field{Name: "DOB", Type: TypeDate, Size: 8}
	_, err := encodeValue(f, "20230615", nil)
	if !errors.Is(err, ErrValueType) {
		t.Errorf("encodeValue(string) error = %v, want ErrValueType", err)
	}
}

func TestEncodeLogical(t *testing.T) {
	f := Field{Name: "OK", Type: TypeLogical, Size: 1}
	tests := []struct {
		name string
		v    any
		want byte
	}{
		{"true", true, 'T'},
		{"false", false, 'F'},
		{"logical true", True, 'T'},
		{"logical unknown", Unknown, '?'},
		{"nil", nil, '?'},
		{"yes string", "yes", 'Y'},
		{"maybe string", "maybe", 'M'},
		{"empty string", "", '?'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeValue(f, tt.v, nil)
			if err != nil {
				t.Fatalf("encodeValue: %v", err)
			}
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("encodeValue = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeLogicalRejects(t *testing.T) {
	f := Field{Name: "OK", Type: TypeLogical, Size: 1}
	if _, err := encodeValue(f, 1, nil); !errors.Is(err, ErrValueType) {
		t.Errorf("encodeValue(int) error = %v, want ErrValueType", err)
	}

	wide := Field{Name: "OK", Type: TypeLogical, Size: 2}
	if _, err := encodeValue(wide, true, nil); !errors.Is(err, ErrFieldWidth) {
		t.Errorf("encodeValue(size 2) error = %v, want ErrFieldWidth", err)
	}
}
