package sqlite

var libNames = []string{"libsqlite3.so", "libsqlite3.so.0"}
