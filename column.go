package sqlite

import "io"

// Column is a view over one cell of the current row: the statement it came
// from plus an index. Views are cheap and carry no teardown logic, so they
// can be created freely and passed by value. A view is only meaningful while
// its row is current; reading one after the next step, a reset or a close
// returns garbage, not a crash, and is out of contract.
type Column struct {
	h     *handle
	index int
}

// Column returns a view of the cell at index in the current row. It fails
// when the statement has no current row or when index is out of range. The
// returned view does not revalidate on reads.
func (s *Stmt) Column(index int) (Column, error) {
	h := s.h
	if !h.hasRow {
		return Column{}, ErrNoCurrentRow
	}
	if index < 0 || index >= h.count {
		return Column{}, RangeError{Index: index, Count: h.count}
	}
	return Column{h: h, index: index}, nil
}

// Name returns the column's name in the result set, which is the alias when
// the query used one.
func (c Column) Name() string {
	return c.h.columnName(c.index)
}

// Type returns the storage class of the cell. It is queried from the engine
// on every call, never cached: it reports the original class only until a
// getter of another class runs against the same cell, since the engine
// converts values in place.
func (c Column) Type() Type {
	return c.h.columnType(c.index)
}

func (c Column) IsInteger() bool {
	return c.Type() == TypeInteger
}

func (c Column) IsFloat() bool {
	return c.Type() == TypeFloat
}

func (c Column) IsText() bool {
	return c.Type() == TypeText
}

func (c Column) IsBlob() bool {
	return c.Type() == TypeBlob
}

func (c Column) IsNull() bool {
	return c.Type() == TypeNull
}

// Int64 returns the cell as a 64 bit integer. Cells of another class are
// converted by the engine, NULL becomes 0.
func (c Column) Int64() int64 {
	return c.h.columnInt64(c.index)
}

// Int32 returns the cell truncated to 32 bits.
func (c Column) Int32() int32 {
	return int32(c.h.columnInt64(c.index))
}

// Uint32 returns the low 32 bits of the cell reinterpreted as unsigned.
func (c Column) Uint32() uint32 {
	return uint32(c.h.columnInt64(c.index))
}

// Double returns the cell as a 64 bit float. Cells of another class are
// converted by the engine, NULL becomes 0.0.
func (c Column) Double() float64 {
	return c.h.columnDouble(c.index)
}

// Bool returns false for 0 and NULL, true for everything else.
func (c Column) Bool() bool {
	return c.h.columnInt64(c.index) != 0
}

// Text returns the cell's text with C string semantics: the copy stops at
// the first NUL byte of the text representation. A NULL cell returns def.
// Use String when embedded NUL bytes matter.
func (c Column) Text(def string) string {
	p := c.h.columnText(c.index)
	if p == 0 {
		return def
	}
	return goString(p)
}

// String returns an owned copy of the cell's full text representation,
// embedded NUL bytes included. A NULL cell returns "". It also makes a
// Column print as its text with package fmt.
func (c Column) String() string {
	n := c.h.columnBytes(c.index)
	if n == 0 {
		return ""
	}
	p := c.h.columnBlob(c.index)
	if p == 0 {
		return ""
	}
	return string(goBytes(p, n))
}

// Bytes returns an owned copy of the cell's bytes, nil when the cell is
// NULL or empty.
func (c Column) Bytes() []byte {
	n := c.h.columnBytes(c.index)
	if n == 0 {
		return nil
	}
	p := c.h.columnBlob(c.index)
	if p == 0 {
		return nil
	}
	b := make([]byte, n)
	copy(b, goBytes(p, n))
	return b
}

// Blob returns the cell's bytes without copying. The slice aliases memory
// owned by the engine and is only valid until the next call on the
// statement. nil when the cell is NULL or empty.
func (c Column) Blob() RawBytes {
	n := c.h.columnBytes(c.index)
	if n == 0 {
		return nil
	}
	p := c.h.columnBlob(c.index)
	if p == 0 {
		return nil
	}
	return RawBytes(goBytes(p, n))
}

// Len returns the byte length of the cell's text or blob representation,
// terminator not included. A NULL cell has length 0; for text this is the
// full length, even past an embedded NUL byte.
func (c Column) Len() int {
	return c.h.columnBytes(c.index)
}

// WriteTo writes the cell's bytes to w without keeping a copy around.
func (c Column) WriteTo(w io.Writer) (int64, error) {
	b := c.Blob()
	if len(b) == 0 {
		return 0, nil
	}
	n, err := w.Write(b)
	return int64(n), err
}

// Nullable reads a cell through get and reports NULL as an empty Option
// instead of letting it convert to the type's zero value.
func Nullable[T any](c Column, get func(Column) T) Option[T] {
	if c.IsNull() {
		return Option[T]{}
	}
	return Option[T]{Value: get(c), Valid: true}
}
