package sqlite

import "runtime"

// handle owns a native prepared statement. It is shared, never copied: the
// Stmt that prepared it, iterators handed out by Stmt.Rows and every Column
// view all point at the same handle. refs counts the owners with teardown
// duties (Stmt and shared iterators); views read through the handle without
// counting. The native statement is finalized exactly once, when the last
// owner releases.
//
// Handles are single-threaded, like everything else in this package. There
// is no locking around refs or hasRow.
type handle struct {
	db     uintptr
	stmt   uintptr
	refs   int
	count  int
	names  []string
	hasRow bool
}

func newHandle(db uintptr, stmt uintptr) *handle {
	h := &handle{
		db:    db,
		stmt:  stmt,
		refs:  1,
		count: int(sqlite3_column_count(stmt)),
	}
	// safety net for handles dropped without Close
	runtime.SetFinalizer(h, (*handle).finalize)
	return h
}

// retain adds an owner. The new owner must eventually release.
func (h *handle) retain() *handle {
	h.refs++
	return h
}

// release drops one owner and finalizes the native statement when the last
// one is gone. Owners call it once; Stmt.Close tracks that per holder.
func (h *handle) release() error {
	if h.stmt == 0 {
		return nil
	}
	if h.refs--; h.refs > 0 {
		return nil
	}
	runtime.SetFinalizer(h, nil)
	if rc := h.finalize(); rc != codeOK {
		return errorFromCode(h.db, rc)
	}
	return nil
}

func (h *handle) finalize() int32 {
	stmt := h.stmt
	if stmt == 0 {
		return codeOK
	}
	h.stmt = 0
	h.hasRow = false
	return sqlite3_finalize(stmt)
}

// Raw column reads. No validation here: callers either checked the row and
// index themselves or got them from a checked Column view.

func (h *handle) columnType(index int) Type {
	return Type(sqlite3_column_type(h.stmt, int32(index)))
}

func (h *handle) columnInt64(index int) int64 {
	return sqlite3_column_int64(h.stmt, int32(index))
}

func (h *handle) columnDouble(index int) float64 {
	return sqlite3_column_double(h.stmt, int32(index))
}

func (h *handle) columnText(index int) uintptr {
	return sqlite3_column_text(h.stmt, int32(index))
}

func (h *handle) columnBlob(index int) uintptr {
	return sqlite3_column_blob(h.stmt, int32(index))
}

func (h *handle) columnBytes(index int) int {
	return int(sqlite3_column_bytes(h.stmt, int32(index)))
}

func (h *handle) columnName(index int) string {
	return goString(sqlite3_column_name(h.stmt, int32(index)))
}

// only callable when ColumnMetadata() is true
func (h *handle) columnOriginName(index int) string {
	return goString(sqlite3_column_origin_name(h.stmt, int32(index)))
}
