//go:build !386 && !arm && !mips && !mipsle

package sqlite

// Int returns the cell at the platform's native int width, 64 bits here.
func (c Column) Int() int {
	return int(c.Int64())
}
