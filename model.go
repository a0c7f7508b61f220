package dbf

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

// ReadStruct decodes the next live record into dest, a non-nil pointer to a
// struct. Columns bind to struct fields through the `dbf:"column"` tag;
// columns without a tagged field are dropped, and Character text is
// space-trimmed on assignment. The column-to-field index is built once per
// struct type and cached on the Reader.
func (r *Reader) ReadStruct(dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("dbf: ReadStruct requires a non-nil pointer to a struct, not a %T", dest)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("dbf: ReadStruct requires a pointer to a struct, not a %s", rv.Kind())
	}

	index := r.model(rv.Type())
	record, err := r.Read()
	if err != nil {
		return err
	}
	for i, v := range record {
		fi := index[i]
		if fi < 0 {
			continue
		}
		if err := assign(rv.Field(fi), r.names[i], v); err != nil {
			return err
		}
	}
	return nil
}

// model maps column positions to struct field indexes, -1 for columns the
// struct does not carry.
func (r *Reader) model(rt reflect.Type) []int {
	if index, ok := r.models[rt]; ok {
		return index
	}
	byTag := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if tag := rt.Field(i).Tag.Get("dbf"); tag != "" {
			byTag[tag] = i
		}
	}
	index := make([]int, len(r.names))
	for i, name := range r.names {
		fi, ok := byTag[name]
		if !ok {
			fi = -1
		}
		index[i] = fi
	}
	if r.models == nil {
		r.models = make(map[reflect.Type][]int)
	}
	r.models[rt] = index
	return index
}

// assign stores one decoded cell into a struct field, converting between the
// cell types and the Go kinds a model is likely to declare. Character text
// is space-trimmed on assignment; the raw Read path keeps the padding.
func assign(fv reflect.Value, column string, v any) error {
	switch cell := v.(type) {
	case string:
		if fv.Kind() == reflect.String {
			fv.SetString(strings.TrimSpace(cell))
			return nil
		}
	case int64:
		switch fv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if fv.OverflowInt(cell) {
				return fmt.Errorf("dbf: column %q: %d overflows %s: %w", column, cell, fv.Type(), ErrValueType)
			}
			fv.SetInt(cell)
			return nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if cell < 0 || fv.OverflowUint(uint64(cell)) {
				return fmt.Errorf("dbf: column %q: %d overflows %s: %w", column, cell, fv.Type(), ErrValueType)
			}
			fv.SetUint(uint64(cell))
			return nil
		case reflect.Float32, reflect.Float64:
			fv.SetFloat(float64(cell))
			return nil
		}
	case decimal.Decimal:
		switch fv.Kind() {
		case reflect.Float32, reflect.Float64:
			fv.SetFloat(cell.InexactFloat64())
			return nil
		}
	case Logical:
		if fv.Kind() == reflect.Bool {
			b, _ := cell.Bool()
			fv.SetBool(b)
			return nil
		}
	}
	if av := reflect.ValueOf(v); av.Type().AssignableTo(fv.Type()) {
		fv.Set(av)
		return nil
	}
	return fmt.Errorf("dbf: column %q: cannot assign %T to %s: %w", column, v, fv.Type(), ErrValueType)
}

// WriteStruct appends one record drawn from model, a struct or a non-nil
// pointer to one, taking each column's value from the field tagged
// `dbf:"column"`. Unlike ReadStruct, every column must have a tagged field.
func (w *Writer) WriteStruct(model any) error {
	rv := reflect.ValueOf(model)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return fmt.Errorf("dbf: WriteStruct requires a non-nil pointer to a struct")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("dbf: WriteStruct requires a struct, not a %s", rv.Kind())
	}

	index, err := w.model(rv.Type())
	if err != nil {
		return err
	}
	record := make([]any, len(w.fields))
	for i, fi := range index {
		record[i] = rv.Field(fi).Interface()
	}
	return w.Write(record)
}

func (w *Writer) model(rt reflect.Type) ([]int, error) {
	if index, ok := w.models[rt]; ok {
		return index, nil
	}
	byTag := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if tag := rt.Field(i).Tag.Get("dbf"); tag != "" {
			byTag[tag] = i
		}
	}
	index := make([]int, len(w.fields))
	for i, f := range w.fields {
		fi, ok := byTag[f.Name]
		if !ok {
			return nil, fmt.Errorf("dbf: column %q not found in %s", f.Name, rt)
		}
		index[i] = fi
	}
	if w.models == nil {
		w.models = make(map[reflect.Type][]int)
	}
	w.models[rt] = index
	return index, nil
}
