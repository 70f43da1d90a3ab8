package sqlite

// ColumnMetadata reports whether the loaded engine was compiled with the
// column metadata extension. OriginName only returns real names when it is
// true.
func ColumnMetadata() bool {
	return columnMetadata
}

// OriginName returns the unaliased name of the table column this result
// column was taken from, "" for expressions and subqueries. It also
// returns "" when the engine lacks the column metadata extension, see
// ColumnMetadata.
func (c Column) OriginName() string {
	if !columnMetadata {
		return ""
	}
	return c.h.columnOriginName(c.index)
}
