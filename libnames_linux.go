package sqlite

var libNames = []string{"libsqlite3.so.0", "libsqlite3.so"}
