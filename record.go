package sqlite

import (
	"fmt"
	"reflect"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// Record builds a value of struct type T from the leading columns of the
// current row: field 0 from column 0, field 1 from column 1, and so on
// through all of T's fields. Both preconditions are checked once, up front,
// before any cell is read: the statement must have a current row and T must
// not have more fields than the row has columns.
//
// Fields are filled by kind: integers of any width, floats, bool, string,
// []byte, time.Time, and pointers to any of these. A NULL cell leaves a
// pointer field nil; a non-pointer field takes the converted zero: 0,
// false, "", nil bytes, the Unix epoch for time.Time.
func Record[T any](s *Stmt) (T, error) {
	var record T

	rv := reflect.ValueOf(&record).Elem()
	rt := rv.Type()
	if rt.Kind() != reflect.Struct {
		return record, Error{Code: codeMisuse, Message: fmt.Sprintf("record type %s is not a struct", rt)}
	}

	h := s.h
	if !h.hasRow {
		return record, ErrNoCurrentRow
	}
	n := rt.NumField()
	if n > h.count {
		return record, RangeError{Index: n - 1, Count: h.count}
	}

	for i := 0; i < n; i++ {
		field := rv.Field(i)
		if !field.CanSet() {
			return record, Error{Code: codeMisuse, Message: fmt.Sprintf("cannot set record field %s (index: %d)", rt.Field(i).Name, i)}
		}
		if err := recordField(field, Column{h: h, index: i}); err != nil {
			return record, err
		}
	}
	return record, nil
}

func recordField(field reflect.Value, col Column) error {
	if field.Kind() == reflect.Pointer {
		if col.IsNull() {
			return nil
		}
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		field = field.Elem()
	}

	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		field.SetInt(col.Int64())
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		field.SetUint(uint64(col.Int64()))
		return nil
	case reflect.Float32, reflect.Float64:
		field.SetFloat(col.Double())
		return nil
	case reflect.Bool:
		field.SetBool(col.Bool())
		return nil
	case reflect.String:
		field.SetString(col.String())
		return nil
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.Uint8 {
			field.SetBytes(col.Bytes())
			return nil
		}
	case reflect.Struct:
		if field.Type() == timeType {
			field.Set(reflect.ValueOf(time.Unix(col.Int64(), 0)))
			return nil
		}
	}
	return Error{Code: codeMisuse, Message: fmt.Sprintf("cannot fill record field of type %s (index: %d)", field.Type(), col.index)}
}
