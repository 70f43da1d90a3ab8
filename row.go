package sqlite

// Row reads a single row and closes its statement when done.
type Row struct {
	Stmt *Stmt
	err  error
}

func (r Row) Map() (map[string]any, error) {
	if err := r.err; err != nil {
		return nil, err
	}
	m := make(map[string]any, r.Stmt.ColumnCount())
	err := r.MapInto(m)
	return m, err
}

func (r Row) MapInto(m map[string]any) error {
	if err := r.err; err != nil {
		return err
	}
	stmt := r.Stmt
	defer stmt.Close()

	hasRow, err := stmt.Step()
	if err != nil {
		return err
	}

	if !hasRow {
		return ErrNoRows
	}

	return stmt.MapInto(m)
}

func (r Row) Scan(dst ...interface{}) error {
	if err := r.err; err != nil {
		return err
	}
	stmt := r.Stmt
	defer stmt.Close()

	hasRow, err := stmt.Step()
	if err != nil {
		return err
	}

	if !hasRow {
		return ErrNoRows
	}

	for i, v := range dst {
		if err := stmt.scan(i, v); err != nil {
			return err
		}
	}
	return nil
}

// RowRecord steps r, builds a T from its leading columns and closes the
// statement. It returns ErrNoRows when the query produced nothing.
func RowRecord[T any](r Row) (T, error) {
	var record T
	if err := r.err; err != nil {
		return record, err
	}
	stmt := r.Stmt
	defer stmt.Close()

	hasRow, err := stmt.Step()
	if err != nil {
		return record, err
	}

	if !hasRow {
		return record, ErrNoRows
	}

	return Record[T](stmt)
}
