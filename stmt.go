package sqlite

import (
	"fmt"
	"time"
	"unsafe"
)

// When reading values into a RawBytes, the slice is owned by sqlite and will
// only be valid until the next call on the statement is made.
type RawBytes []byte

type Option[T any] struct {
	Value T
	Valid bool
}

// Stmt is a prepared statement. It holds one owning reference to the
// underlying native statement; the first Close releases it and further
// Closes are no-ops. Iterators from Rows hold their own reference, so the
// native statement lives until the last owner is closed.
type Stmt struct {
	h      *handle
	closed bool
}

func (s *Stmt) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.h.release()
}

// Rows returns an iterator over the statement's remaining rows. The
// iterator co-owns the statement: closing it releases only its share, the
// statement stays valid for the caller to reset and run again.
func (s *Stmt) Rows() Rows {
	return Rows{Stmt: &Stmt{h: s.h.retain()}}
}

func (s *Stmt) ColumnCount() int {
	return s.h.count
}

// ColumnName returns the name of a single column. Names are fixed at
// prepare time and readable before the first step.
func (s *Stmt) ColumnName(i int) string {
	return s.h.columnName(i)
}

func (s *Stmt) ColumnNames() []string {
	h := s.h
	if names := h.names; names != nil {
		return names
	}

	count := h.count
	names := make([]string, count)
	for i := 0; i < count; i++ {
		names[i] = h.columnName(i)
	}
	h.names = names
	return names
}

// ColumnTypes returns the storage class of every cell in the current row.
// Classes are queried live, see Column.Type.
func (s *Stmt) ColumnTypes() []Type {
	h := s.h
	types := make([]Type, h.count)
	for i := range types {
		types[i] = h.columnType(i)
	}
	return types
}

func (s *Stmt) Exec(args ...interface{}) error {
	if err := s.Bind(args...); err != nil {
		s.Reset()
		return err
	}

	if err := s.StepToCompletion(); err != nil {
		s.Reset()
		return err
	}

	if err := s.Reset(); err != nil {
		return err
	}

	return nil
}

func (s *Stmt) Bind(args ...interface{}) error {
	stmt := s.h.stmt
	for i, v := range args {
		var rc int32
		bindIndex := int32(i + 1)

		switch v := v.(type) {
		case nil:
			rc = sqlite3_bind_null(stmt, bindIndex)
		case int:
			rc = sqlite3_bind_int64(stmt, bindIndex, int64(v))
		case *int:
			if v == nil {
				rc = sqlite3_bind_null(stmt, bindIndex)
			} else {
				rc = sqlite3_bind_int64(stmt, bindIndex, int64(*v))
			}
		case string:
			rc = sqlite3_bind_text(stmt, bindIndex, v, int32(len(v)), transient)
		case *string:
			if v == nil {
				rc = sqlite3_bind_null(stmt, bindIndex)
			} else {
				rc = sqlite3_bind_text(stmt, bindIndex, *v, int32(len(*v)), transient)
			}
		case uint16:
			rc = sqlite3_bind_int64(stmt, bindIndex, int64(v))
		case *uint16:
			if v == nil {
				rc = sqlite3_bind_null(stmt, bindIndex)
			} else {
				rc = sqlite3_bind_int64(stmt, bindIndex, int64(*v))
			}
		case uint32:
			rc = sqlite3_bind_int64(stmt, bindIndex, int64(v))
		case *uint32:
			if v == nil {
				rc = sqlite3_bind_null(stmt, bindIndex)
			} else {
				rc = sqlite3_bind_int64(stmt, bindIndex, int64(*v))
			}
		case uint64:
			// OMG!!
			rc = sqlite3_bind_int64(stmt, bindIndex, int64(v))
		case *uint64:
			if v == nil {
				rc = sqlite3_bind_null(stmt, bindIndex)
			} else {
				rc = sqlite3_bind_int64(stmt, bindIndex, int64(*v))
			}
		case int64:
			rc = sqlite3_bind_int64(stmt, bindIndex, v)
		case *int64:
			if v == nil {
				rc = sqlite3_bind_null(stmt, bindIndex)
			} else {
				rc = sqlite3_bind_int64(stmt, bindIndex, *v)
			}
		case float64:
			rc = sqlite3_bind_double(stmt, bindIndex, v)
		case *float64:
			if v == nil {
				rc = sqlite3_bind_null(stmt, bindIndex)
			} else {
				rc = sqlite3_bind_double(stmt, bindIndex, *v)
			}
		case bool:
			var sqliteBool int64
			if v {
				sqliteBool = 1
			}
			rc = sqlite3_bind_int64(stmt, bindIndex, sqliteBool)
		case *bool:
			if v == nil {
				rc = sqlite3_bind_null(stmt, bindIndex)
			} else {
				var sqliteBool int64
				if *v {
					sqliteBool = 1
				}
				rc = sqlite3_bind_int64(stmt, bindIndex, sqliteBool)
			}
		case []byte:
			if len(v) == 0 {
				rc = sqlite3_bind_zeroblob(stmt, bindIndex, 0)
			} else {
				rc = sqlite3_bind_blob(stmt, bindIndex, unsafe.Pointer(&v[0]), int32(len(v)), transient)
			}
		case *[]byte:
			if v == nil {
				rc = sqlite3_bind_null(stmt, bindIndex)
			} else {
				vv := *v
				if len(vv) == 0 {
					rc = sqlite3_bind_zeroblob(stmt, bindIndex, 0)
				} else {
					rc = sqlite3_bind_blob(stmt, bindIndex, unsafe.Pointer(&vv[0]), int32(len(vv)), transient)
				}
			}
		case time.Time:
			rc = sqlite3_bind_int64(stmt, bindIndex, v.Unix())
		case *time.Time:
			if v == nil {
				rc = sqlite3_bind_null(stmt, bindIndex)
			} else {
				rc = sqlite3_bind_int64(stmt, bindIndex, (*v).Unix())
			}
		default:
			return Error{Code: codeMisuse, Message: fmt.Sprintf("unsupported type %T (index: %d)", v, i)}
		}
		if rc != codeOK {
			return errorFromCode(s.h.db, rc)
		}
	}
	return nil
}

func (s *Stmt) Map() (map[string]any, error) {
	m := make(map[string]any, s.h.count)
	err := s.MapInto(m)
	return m, err
}

func (s *Stmt) MapInto(m map[string]any) error {
	names := s.ColumnNames()
	for i, name := range names {
		col := s.column(i)
		switch col.Type() {
		case TypeNull:
			m[name] = nil
		case TypeInteger:
			m[name] = col.Int()
		case TypeText:
			m[name] = col.String()
		case TypeFloat:
			m[name] = col.Double()
		case TypeBlob:
			// erase the type
			if value := col.Bytes(); value == nil {
				m[name] = nil
			} else {
				m[name] = value
			}
		}
	}
	return nil
}

func (s *Stmt) Scan(dst ...interface{}) error {
	for i, v := range dst {
		if err := s.scan(i, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stmt) Row(dst ...interface{}) (bool, error) {
	hasRow, err := s.Step()
	if err != nil {
		return false, err
	}
	if !hasRow {
		return false, nil
	}
	for i, v := range dst {
		if err := s.scan(i, v); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (s *Stmt) Reset() error {
	h := s.h
	h.hasRow = false
	if rc := sqlite3_reset(h.stmt); rc != codeOK {
		return errorFromCode(h.db, rc)
	}
	return nil
}

func (s *Stmt) ClearBindings() error {
	if rc := sqlite3_clear_bindings(s.h.stmt); rc != codeOK {
		return errorFromCode(s.h.db, rc)
	}
	return nil
}

// Step advances the statement. It returns true when a row is available for
// reading, false once the statement is done.
func (s *Stmt) Step() (bool, error) {
	h := s.h
	rc := sqlite3_step(h.stmt)
	if rc == codeRow {
		h.hasRow = true
		return true, nil
	}

	h.hasRow = false
	if rc == codeDone {
		return false, nil
	}

	return false, errorFromCode(h.db, rc)
}

func (s *Stmt) StepToCompletion() error {
	h := s.h
	h.hasRow = false
	for {
		rc := sqlite3_step(h.stmt)
		if rc == codeRow {
			continue
		}
		if rc == codeDone {
			break
		}
		return errorFromCode(h.db, rc)

	}
	return nil
}

// column returns an unchecked view. Scan paths run right after a successful
// step and only use indexes the caller paired with destinations, so the
// checks in Stmt.Column would be redundant here.
func (s *Stmt) column(i int) Column {
	return Column{h: s.h, index: i}
}

func (s *Stmt) scan(i int, v interface{}) error {
	col := s.column(i)
	switch v := v.(type) {
	case *string:
		*v = col.String()
	case **string:
		if !col.IsNull() {
			n := col.String()
			*v = &n
		}
	case *int:
		*v = col.Int()
	case **int:
		if !col.IsNull() {
			n := col.Int()
			*v = &n
		}
	case *int64:
		*v = col.Int64()
	case **int64:
		if !col.IsNull() {
			n := col.Int64()
			*v = &n
		}
	case *float64:
		*v = col.Double()
	case **float64:
		if !col.IsNull() {
			n := col.Double()
			*v = &n
		}
	case *bool:
		*v = col.Bool()
	case **bool:
		if !col.IsNull() {
			n := col.Bool()
			*v = &n
		}
	case *[]byte:
		*v = col.Bytes()
	case **[]byte:
		if !col.IsNull() {
			n := col.Bytes()
			*v = &n
		}
	case *RawBytes:
		*v = col.Blob()
	case *time.Time:
		*v = time.Unix(col.Int64(), 0)
	case **time.Time:
		if !col.IsNull() {
			n := time.Unix(col.Int64(), 0)
			*v = &n
		}
	case *uint16:
		*v = uint16(col.Int64())
	case **uint16:
		if !col.IsNull() {
			n := uint16(col.Int64())
			*v = &n
		}
	case *uint32:
		*v = col.Uint32()
	case **uint32:
		if !col.IsNull() {
			n := col.Uint32()
			*v = &n
		}
	case *uint64:
		*v = uint64(col.Int64())
	case **uint64:
		if !col.IsNull() {
			n := uint64(col.Int64())
			*v = &n
		}
	default:
		return Error{Code: codeMisuse, Message: fmt.Sprintf("cannot scan into %T (index: %d)", v, i)}
	}
	return nil
}
