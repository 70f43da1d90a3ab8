package sqlite

import (
	"errors"
	"fmt"
)

var (
	ErrNoRows = errors.New("no rows in result set")

	// ErrNoCurrentRow is returned when a column is asked for while the
	// statement has no current row: before the first step, after the last
	// one, or after a reset.
	ErrNoCurrentRow = errors.New("sqlite: no current row")
)

type Error struct {
	Code    int
	Message string
}

func errorFromCode(db uintptr, rc int32) error {
	var message string
	if db == 0 {
		message = goString(sqlite3_errstr(rc))
	} else {
		message = goString(sqlite3_errmsg(db))
	}
	return Error{
		Code:    int(rc),
		Message: message,
	}
}

func (err Error) Error() string {
	return fmt.Sprintf("sqlite: %s (code: %d)", err.Message, err.Code)
}

// RangeError is returned when a column index, or the field count of a
// record, does not fit the statement's column count.
type RangeError struct {
	Index int
	Count int
}

func (err RangeError) Error() string {
	return fmt.Sprintf("sqlite: column index %d out of range [0, %d)", err.Index, err.Count)
}

type PrepareError struct {
	sql   string
	args  []any
	error error
}

func prepareError(db uintptr, rc int32, sql string, args []any) PrepareError {
	return PrepareError{
		sql:   sql,
		args:  args,
		error: errorFromCode(db, rc),
	}
}

func (e PrepareError) Unwrap() error {
	return e.error
}

func (err PrepareError) Error() string {
	// not using the args for now
	// not sure we should...performance, privacy, ...
	return fmt.Sprintf("%s - %s", err.error.Error(), err.sql)
}
