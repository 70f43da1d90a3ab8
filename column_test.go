package sqlite_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gshadows/sqlite"
	"src.sqlkite.com/tests/assert"
)

func Test_Column_Types(t *testing.T) {
	db := testDB()
	defer db.Close()

	mustExec(db, `
		insert into test (cint, creal, ctext, cblob)
		values (?1, ?2, ?3, ?4)
	`, 42, 3.5, "abc", []byte{1, 2})

	stmt, err := db.Prepare([]byte("select cint, creal, ctext, cblob, cintn from test where id = ?"), db.LastInsertRowID())
	assert.Nil(t, err)
	defer stmt.Close()

	hasRow, err := stmt.Step()
	assert.Nil(t, err)
	assert.True(t, hasRow)

	types := stmt.ColumnTypes()
	assert.Equal(t, len(types), 5)
	assert.Equal(t, types[0], sqlite.TypeInteger)
	assert.Equal(t, types[1], sqlite.TypeFloat)
	assert.Equal(t, types[2], sqlite.TypeText)
	assert.Equal(t, types[3], sqlite.TypeBlob)
	assert.Equal(t, types[4], sqlite.TypeNull)

	col := mustColumn(t, stmt, 0)
	assert.True(t, col.IsInteger())
	assert.Equal(t, col.Type().String(), "integer")

	col = mustColumn(t, stmt, 1)
	assert.True(t, col.IsFloat())

	col = mustColumn(t, stmt, 2)
	assert.True(t, col.IsText())

	col = mustColumn(t, stmt, 3)
	assert.True(t, col.IsBlob())

	col = mustColumn(t, stmt, 4)
	assert.True(t, col.IsNull())
}

func Test_Column_Ints(t *testing.T) {
	db := testDB()
	defer db.Close()

	// 2^32 + 1 to catch the 32 bit truncations
	mustExec(db, `
		insert into test (cint, cintn)
		values (?1, ?2)
	`, 4294967297, -1)

	stmt, err := db.Prepare([]byte("select cint, cintn from test where id = ?"), db.LastInsertRowID())
	assert.Nil(t, err)
	defer stmt.Close()

	hasRow, err := stmt.Step()
	assert.Nil(t, err)
	assert.True(t, hasRow)

	col := mustColumn(t, stmt, 0)
	assert.Equal(t, col.Int64(), 4294967297)
	assert.Equal(t, col.Int32(), 1)
	assert.Equal(t, col.Uint32(), 1)
	assert.Equal(t, col.Int(), int(col.Int64()))
	assert.Equal(t, col.Double(), 4294967297.0)
	assert.Equal(t, col.Bool(), true)

	col = mustColumn(t, stmt, 1)
	assert.Equal(t, col.Int64(), -1)
	assert.Equal(t, col.Int32(), -1)
	assert.Equal(t, col.Uint32(), 4294967295)
}

func Test_Column_Conversions(t *testing.T) {
	db := testDB()
	defer db.Close()

	mustExec(db, `
		insert into test (cint, ctext)
		values (?1, ?2)
	`, 42, "15")

	stmt, err := db.Prepare([]byte("select cint, ctext from test where id = ?"), db.LastInsertRowID())
	assert.Nil(t, err)
	defer stmt.Close()

	hasRow, err := stmt.Step()
	assert.Nil(t, err)
	assert.True(t, hasRow)

	// classes as stored, before any getter converts in place
	col0 := mustColumn(t, stmt, 0)
	col1 := mustColumn(t, stmt, 1)
	assert.True(t, col0.IsInteger())
	assert.True(t, col1.IsText())

	// the engine converts across classes instead of failing
	assert.Equal(t, col1.Int64(), 15)
	assert.Equal(t, col1.Double(), 15.0)
	assert.Equal(t, col0.Text("x"), "42")
	assert.Equal(t, col0.Len(), 2)
}

func Test_Column_EmbeddedNul(t *testing.T) {
	db := testDB()
	defer db.Close()

	mustExec(db, `
		insert into test (ctext)
		values (?1)
	`, "hi\x00bye")

	stmt, err := db.Prepare([]byte("select ctext, ctextn from test where id = ?"), db.LastInsertRowID())
	assert.Nil(t, err)
	defer stmt.Close()

	hasRow, err := stmt.Step()
	assert.Nil(t, err)
	assert.True(t, hasRow)

	col := mustColumn(t, stmt, 0)
	assert.Equal(t, col.Len(), 6)
	assert.Equal(t, col.String(), "hi\x00bye")
	// Text stops at the embedded NUL, like any C string read
	assert.Equal(t, col.Text("fallback"), "hi")
	assert.Equal(t, len(col.Blob()), 6)
	assert.Equal(t, len(col.Bytes()), 6)

	null := mustColumn(t, stmt, 1)
	assert.Equal(t, null.Len(), 0)
	assert.Equal(t, null.String(), "")
	assert.Equal(t, null.Text("fallback"), "fallback")
	assert.True(t, null.Blob() == nil)
	assert.True(t, null.Bytes() == nil)
	assert.Equal(t, null.Int64(), 0)
	assert.Equal(t, null.Double(), 0.0)
	assert.Equal(t, null.Bool(), false)
}

func Test_Column_FanOut(t *testing.T) {
	db := testDB()
	defer db.Close()

	mustExec(db, `
		insert into test (cint, ctext)
		values (?1, ?2)
	`, 7, "seven")

	stmt, err := db.Prepare([]byte("select cint, ctext from test where id = ?"), db.LastInsertRowID())
	assert.Nil(t, err)
	defer stmt.Close()

	hasRow, err := stmt.Step()
	assert.Nil(t, err)
	assert.True(t, hasRow)

	// views over the same row don't interfere, in any read order
	a := mustColumn(t, stmt, 0)
	b := mustColumn(t, stmt, 1)
	assert.Equal(t, b.String(), "seven")
	assert.Equal(t, a.Int64(), 7)
	assert.Equal(t, b.String(), "seven")
	assert.Equal(t, a.Int64(), 7)
}

func Test_Column_Name(t *testing.T) {
	db := testDB()
	defer db.Close()

	mustExec(db, `
		insert into test (ctext)
		values (?1)
	`, "x")

	stmt, err := db.Prepare([]byte("select ctext as renamed from test where id = ?"), db.LastInsertRowID())
	assert.Nil(t, err)
	defer stmt.Close()

	// names are prepare time properties, no row needed
	assert.Equal(t, stmt.ColumnName(0), "renamed")

	hasRow, err := stmt.Step()
	assert.Nil(t, err)
	assert.True(t, hasRow)

	col := mustColumn(t, stmt, 0)
	assert.Equal(t, col.Name(), "renamed")

	if sqlite.ColumnMetadata() {
		assert.Equal(t, col.OriginName(), "ctext")
	} else {
		assert.Equal(t, col.OriginName(), "")
	}
}

func Test_Column_WriteTo(t *testing.T) {
	db := testDB()
	defer db.Close()

	mustExec(db, `
		insert into test (ctext)
		values (?1)
	`, "stream me")

	stmt, err := db.Prepare([]byte("select ctext, ctextn from test where id = ?"), db.LastInsertRowID())
	assert.Nil(t, err)
	defer stmt.Close()

	hasRow, err := stmt.Step()
	assert.Nil(t, err)
	assert.True(t, hasRow)

	col := mustColumn(t, stmt, 0)
	var sb strings.Builder
	n, err := col.WriteTo(&sb)
	assert.Nil(t, err)
	assert.Equal(t, n, 9)
	assert.Equal(t, sb.String(), "stream me")
	assert.Equal(t, fmt.Sprintf("%s", col), "stream me")

	null := mustColumn(t, stmt, 1)
	sb.Reset()
	n, err = null.WriteTo(&sb)
	assert.Nil(t, err)
	assert.Equal(t, n, 0)
	assert.Equal(t, sb.String(), "")
}

func Test_Column_Nullable(t *testing.T) {
	db := testDB()
	defer db.Close()

	mustExec(db, `
		insert into test (cint, cintn)
		values (?1, ?2)
	`, 12, nil)

	stmt, err := db.Prepare([]byte("select cint, cintn from test where id = ?"), db.LastInsertRowID())
	assert.Nil(t, err)
	defer stmt.Close()

	hasRow, err := stmt.Step()
	assert.Nil(t, err)
	assert.True(t, hasRow)

	set := sqlite.Nullable(mustColumn(t, stmt, 0), sqlite.Column.Int64)
	assert.True(t, set.Valid)
	assert.Equal(t, set.Value, 12)

	unset := sqlite.Nullable(mustColumn(t, stmt, 1), sqlite.Column.Int64)
	assert.Equal(t, unset.Valid, false)
	assert.Equal(t, unset.Value, 0)
}

func Test_Column_NoCurrentRow(t *testing.T) {
	db := testDB()
	defer db.Close()

	mustExec(db, `
		insert into test (cint)
		values (?1)
	`, 1)

	stmt, err := db.Prepare([]byte("select cint from test where id = ?"), db.LastInsertRowID())
	assert.Nil(t, err)
	defer stmt.Close()

	// before the first step
	_, err = stmt.Column(0)
	assert.True(t, errors.Is(err, sqlite.ErrNoCurrentRow))

	hasRow, err := stmt.Step()
	assert.Nil(t, err)
	assert.True(t, hasRow)
	_, err = stmt.Column(0)
	assert.Nil(t, err)

	// after the last row
	hasRow, err = stmt.Step()
	assert.Nil(t, err)
	assert.Equal(t, hasRow, false)
	_, err = stmt.Column(0)
	assert.True(t, errors.Is(err, sqlite.ErrNoCurrentRow))

	// after a reset
	assert.Nil(t, stmt.Reset())
	_, err = stmt.Column(0)
	assert.True(t, errors.Is(err, sqlite.ErrNoCurrentRow))
}

func Test_Column_IndexOutOfRange(t *testing.T) {
	db := testDB()
	defer db.Close()

	mustExec(db, `
		insert into test (cint)
		values (?1)
	`, 1)

	stmt, err := db.Prepare([]byte("select cint from test where id = ?"), db.LastInsertRowID())
	assert.Nil(t, err)
	defer stmt.Close()

	hasRow, err := stmt.Step()
	assert.Nil(t, err)
	assert.True(t, hasRow)

	_, err = stmt.Column(1)
	var re sqlite.RangeError
	assert.True(t, errors.As(err, &re))
	assert.Equal(t, re.Index, 1)
	assert.Equal(t, re.Count, 1)
	assert.Equal(t, err.Error(), "sqlite: column index 1 out of range [0, 1)")

	_, err = stmt.Column(-1)
	assert.True(t, errors.As(err, &re))
	assert.Equal(t, re.Index, -1)
}

func Test_Stmt_SharedIterator(t *testing.T) {
	db := testDB()
	defer db.Close()

	mustExec(db, "delete from test")
	mustExec(db, `
		insert into test (cint)
		values (?1), (?2)
	`, 10, 20)

	stmt, err := db.Prepare([]byte("select cint from test order by cint"))
	assert.Nil(t, err)

	rows := stmt.Rows()
	var values []int64
	for rows.Next() {
		col, err := rows.Column(0)
		assert.Nil(t, err)
		values = append(values, col.Int64())
	}
	assert.Nil(t, rows.Error())
	rows.Close()

	assert.Equal(t, len(values), 2)
	assert.Equal(t, values[0], 10)
	assert.Equal(t, values[1], 20)

	// closing the iterator released its share only, the statement still runs
	assert.Nil(t, stmt.Reset())
	hasRow, err := stmt.Step()
	assert.Nil(t, err)
	assert.True(t, hasRow)
	col := mustColumn(t, stmt, 0)
	assert.Equal(t, col.Int64(), 10)

	assert.Nil(t, stmt.Close())
	assert.Nil(t, stmt.Close())
}

func Test_Stmt_DoubleClose(t *testing.T) {
	db := testDB()
	defer db.Close()

	mustExec(db, "delete from test")
	mustExec(db, `
		insert into test (cint)
		values (?1), (?2)
	`, 10, 20)

	stmt, err := db.Prepare([]byte("select cint from test order by cint"))
	assert.Nil(t, err)

	rows := stmt.Rows()

	// closing the same holder twice releases its share once, the iterator
	// keeps the statement alive
	assert.Nil(t, stmt.Close())
	assert.Nil(t, stmt.Close())

	var n int64
	assert.Equal(t, rows.Next(), true)
	assert.Nil(t, rows.Scan(&n))
	assert.Equal(t, n, 10)

	assert.Equal(t, rows.Next(), true)
	assert.Nil(t, rows.Scan(&n))
	assert.Equal(t, n, 20)

	assert.Equal(t, rows.Next(), false)
	assert.Nil(t, rows.Error())
	rows.Close()
}

func mustColumn(t *testing.T, stmt *sqlite.Stmt, index int) sqlite.Column {
	t.Helper()
	col, err := stmt.Column(index)
	if err != nil {
		panic(err)
	}
	return col
}
