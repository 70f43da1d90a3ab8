package sqlite

var libNames = []string{"/usr/lib/libsqlite3.dylib", "libsqlite3.dylib", "libsqlite3.0.dylib"}
