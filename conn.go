package sqlite

import (
	"os"
	"time"
	"unsafe"
)

type Scanner interface {
	Scan(dest ...any) error
}

// Conn is a connection to a database. Connections and everything prepared
// from them are meant for use by one goroutine at a time; nothing in this
// package synchronizes.
type Conn struct {
	db uintptr
}

func Memory() (Conn, error) {
	return Open(":memory:", false)
}

func Open(name string, create bool) (Conn, error) {
	flags := int32(openReadWrite | openExResCode)
	if create {
		flags |= openCreate
	}

	var db uintptr
	rc := sqlite3_open_v2(name, &db, flags, 0)

	if rc != codeOK {
		sqlite3_close_v2(db)
		if !create && rc == codeCantOpen {
			return Conn{}, os.ErrNotExist
		}
		return Conn{}, errorFromCode(0, rc)
	}

	return Conn{db: db}, nil
}

func (c Conn) Close() error {
	if rc := sqlite3_close_v2(c.db); rc != codeOK {
		return errorFromCode(c.db, rc)
	}
	return nil
}

func (c Conn) Prepare(sql []byte, args ...any) (*Stmt, error) {
	db := c.db
	var stmt uintptr
	rc := sqlite3_prepare_v2(db, b2s(sql), int32(len(sql)), &stmt, 0)
	if rc != codeOK {
		return nil, prepareError(db, rc, string(sql), args)
	}

	// comments and empty input prepare fine but produce no statement
	if stmt == 0 {
		return nil, nil
	}

	s := &Stmt{h: newHandle(db, stmt)}

	if len(args) > 0 {
		if err := s.Bind(args...); err != nil {
			s.Close()
			return nil, err
		}
	}

	return s, nil
}

func (c Conn) RowB(sql []byte, args ...any) Row {
	stmt, err := c.Prepare(sql, args...)
	return Row{Stmt: stmt, err: err}
}

func (c Conn) Row(sql string, args ...any) Row {
	return c.RowB(s2b(sql), args...)
}

func (c Conn) RowsB(sql []byte, args ...any) Rows {
	stmt, err := c.Prepare(sql, args...)
	return Rows{Stmt: stmt, err: err}
}

func (c Conn) Rows(sql string, args ...any) Rows {
	return c.RowsB(s2b(sql), args...)
}

func (c Conn) ExecB(sql []byte, args ...any) error {
	if len(args) == 0 {
		return c.exec(b2s(sql))
	}
	return c.execArgs(sql, args...)
}

func (c Conn) Exec(sql string, args ...any) error {
	if len(args) == 0 {
		return c.exec(sql)
	}
	return c.execArgs(s2b(sql), args...)
}

func (c Conn) MustExec(sql string, args ...any) {
	if err := c.Exec(sql, args...); err != nil {
		panic(err)
	}
}

func (c Conn) exec(sql string) error {
	if rc := sqlite3_exec(c.db, sql, 0, 0, 0); rc != codeOK {
		return errorFromCode(c.db, rc)
	}
	return nil
}

func (c Conn) execArgs(sql []byte, args ...any) error {
	s, err := c.Prepare(sql)
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	defer s.Close()

	if err = s.Bind(args...); err != nil {
		return err
	}

	if err = s.StepToCompletion(); err != nil {
		return err
	}

	return nil
}

func (c Conn) LastInsertRowID() int {
	return int(sqlite3_last_insert_rowid(c.db))
}

func (c Conn) Changes() int {
	return int(sqlite3_changes(c.db))
}

func (c Conn) BusyTimeout(d time.Duration) {
	sqlite3_busy_timeout(c.db, int32(d.Milliseconds()))
}

func s2b(s string) []byte {
	/* #nosec G103 */
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func b2s(b []byte) string {
	/* #nosec G103 */
	return unsafe.String(unsafe.SliceData(b), len(b))
}
