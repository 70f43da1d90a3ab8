// Package sqlite is a thin, no-cgo wrapper around the system's SQLite
// library, centered on prepared statements and typed access to their
// result columns. The library is loaded with dlopen at package init; init
// panics when no usable libsqlite3 is found.
//
// # Ownership
//
// A *Stmt owns the native prepared statement it wraps. Stmt.Rows hands out
// iterators that co-own it: the native statement is finalized exactly once,
// when the last owner is closed. Column views do not own anything; they
// read through whatever statement they were taken from.
//
// # Validity
//
// A Column view, and any RawBytes obtained from one, is valid only while
// the row it was taken from is current. Stepping, resetting or closing the
// statement invalidates it. Reading an invalidated view is out of
// contract: it returns meaningless values rather than crashing, except
// after a close, where the native statement is gone and nothing is
// promised.
//
// # Conversions
//
// Value getters never fail. When a cell's storage class does not match the
// getter, the engine converts (text to number, number to text, NULL to
// zero values) and the conversion may rewrite the cell in place, which is
// then visible through Type. Wrong-index and no-row mistakes, by contrast,
// fail eagerly: Stmt.Column and Record report ErrNoCurrentRow or a
// RangeError before any cell is touched.
//
// # Threading
//
// Connections, statements and views confine to one goroutine at a time.
// Nothing in this package locks.
package sqlite
