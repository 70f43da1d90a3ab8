package sqlite

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// result codes
const (
	codeOK       = 0
	codeMisuse   = 21
	codeCantOpen = 14
	codeRow      = 100
	codeDone     = 101
)

// sqlite3_open_v2 flags
const (
	openReadWrite = 0x00000002
	openCreate    = 0x00000004
	openExResCode = 0x02000000
)

// tells sqlite to make its own copy of bound text and blob data
// (the SQLITE_TRANSIENT destructor, (sqlite3_destructor_type)-1)
var transient = ^uintptr(0)

// columnMetadata is set during load when the library exports the column
// metadata API (it is a compile-time option of the engine).
var columnMetadata bool

// The loaded sqlite3 C API. Pointer-sized handles (sqlite3*, sqlite3_stmt*,
// const char*) travel as uintptr; purego copies string arguments into
// NUL-terminated C buffers that stay valid for the duration of the call.
var (
	sqlite3_initialize func() int32

	sqlite3_open_v2 func(
		name string, // const char*
		db *uintptr, // sqlite3**
		flags int32,
		vfs uintptr, // const char* | NULL
	) int32

	sqlite3_close_v2 func(db uintptr) int32

	sqlite3_errmsg func(db uintptr) uintptr // const char*
	sqlite3_errstr func(rc int32) uintptr   // const char*

	sqlite3_exec func(
		db uintptr,
		sql string, // const char*
		callback uintptr, // int (*)(void*, int, char**, char**) | NULL
		arg uintptr, // void*
		errmsg uintptr, // char** | NULL
	) int32

	sqlite3_prepare_v2 func(
		db uintptr,
		sql string, // const char*
		nbyte int32,
		stmt *uintptr, // sqlite3_stmt**
		tail uintptr, // const char** | NULL
	) int32

	sqlite3_finalize       func(stmt uintptr) int32
	sqlite3_step           func(stmt uintptr) int32
	sqlite3_reset          func(stmt uintptr) int32
	sqlite3_clear_bindings func(stmt uintptr) int32

	sqlite3_column_count  func(stmt uintptr) int32
	sqlite3_column_name   func(stmt uintptr, index int32) uintptr // const char*
	sqlite3_column_type   func(stmt uintptr, index int32) int32
	sqlite3_column_int64  func(stmt uintptr, index int32) int64
	sqlite3_column_double func(stmt uintptr, index int32) float64
	sqlite3_column_text   func(stmt uintptr, index int32) uintptr // const unsigned char*
	sqlite3_column_blob   func(stmt uintptr, index int32) uintptr // const void*
	sqlite3_column_bytes  func(stmt uintptr, index int32) int32

	// only present when the engine was built with SQLITE_ENABLE_COLUMN_METADATA
	sqlite3_column_origin_name func(stmt uintptr, index int32) uintptr // const char*

	sqlite3_bind_null   func(stmt uintptr, index int32) int32
	sqlite3_bind_int64  func(stmt uintptr, index int32, value int64) int32
	sqlite3_bind_double func(stmt uintptr, index int32, value float64) int32

	sqlite3_bind_text func(
		stmt uintptr,
		index int32,
		value string, // const char*
		nbyte int32,
		destructor uintptr,
	) int32

	sqlite3_bind_blob func(
		stmt uintptr,
		index int32,
		value unsafe.Pointer, // const void*
		nbyte int32,
		destructor uintptr,
	) int32

	sqlite3_bind_zeroblob func(stmt uintptr, index int32, nbyte int32) int32

	sqlite3_last_insert_rowid func(db uintptr) int64
	sqlite3_changes           func(db uintptr) int32
	sqlite3_busy_timeout      func(db uintptr, ms int32) int32

	sqlite3_libversion_number func() int32
)

func init() {
	lib, err := loadLibrary()
	if err != nil {
		panic(err)
	}
	register(lib)
	if rc := sqlite3_initialize(); rc != codeOK {
		panic(errorFromCode(0, rc))
	}
}

// loadLibrary dlopens the system sqlite3, trying the platform's usual
// names in order.
func loadLibrary() (uintptr, error) {
	var err error
	for _, name := range libNames {
		var lib uintptr
		if lib, err = purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL); err == nil {
			return lib, nil
		}
	}
	return 0, fmt.Errorf("sqlite: load %v: %w", libNames, err)
}

func register(lib uintptr) {
	purego.RegisterLibFunc(&sqlite3_initialize, lib, "sqlite3_initialize")
	purego.RegisterLibFunc(&sqlite3_open_v2, lib, "sqlite3_open_v2")
	purego.RegisterLibFunc(&sqlite3_close_v2, lib, "sqlite3_close_v2")
	purego.RegisterLibFunc(&sqlite3_errmsg, lib, "sqlite3_errmsg")
	purego.RegisterLibFunc(&sqlite3_errstr, lib, "sqlite3_errstr")
	purego.RegisterLibFunc(&sqlite3_exec, lib, "sqlite3_exec")
	purego.RegisterLibFunc(&sqlite3_prepare_v2, lib, "sqlite3_prepare_v2")
	purego.RegisterLibFunc(&sqlite3_finalize, lib, "sqlite3_finalize")
	purego.RegisterLibFunc(&sqlite3_step, lib, "sqlite3_step")
	purego.RegisterLibFunc(&sqlite3_reset, lib, "sqlite3_reset")
	purego.RegisterLibFunc(&sqlite3_clear_bindings, lib, "sqlite3_clear_bindings")
	purego.RegisterLibFunc(&sqlite3_column_count, lib, "sqlite3_column_count")
	purego.RegisterLibFunc(&sqlite3_column_name, lib, "sqlite3_column_name")
	purego.RegisterLibFunc(&sqlite3_column_type, lib, "sqlite3_column_type")
	purego.RegisterLibFunc(&sqlite3_column_int64, lib, "sqlite3_column_int64")
	purego.RegisterLibFunc(&sqlite3_column_double, lib, "sqlite3_column_double")
	purego.RegisterLibFunc(&sqlite3_column_text, lib, "sqlite3_column_text")
	purego.RegisterLibFunc(&sqlite3_column_blob, lib, "sqlite3_column_blob")
	purego.RegisterLibFunc(&sqlite3_column_bytes, lib, "sqlite3_column_bytes")
	purego.RegisterLibFunc(&sqlite3_bind_null, lib, "sqlite3_bind_null")
	purego.RegisterLibFunc(&sqlite3_bind_int64, lib, "sqlite3_bind_int64")
	purego.RegisterLibFunc(&sqlite3_bind_double, lib, "sqlite3_bind_double")
	purego.RegisterLibFunc(&sqlite3_bind_text, lib, "sqlite3_bind_text")
	purego.RegisterLibFunc(&sqlite3_bind_blob, lib, "sqlite3_bind_blob")
	purego.RegisterLibFunc(&sqlite3_bind_zeroblob, lib, "sqlite3_bind_zeroblob")
	purego.RegisterLibFunc(&sqlite3_last_insert_rowid, lib, "sqlite3_last_insert_rowid")
	purego.RegisterLibFunc(&sqlite3_changes, lib, "sqlite3_changes")
	purego.RegisterLibFunc(&sqlite3_busy_timeout, lib, "sqlite3_busy_timeout")
	purego.RegisterLibFunc(&sqlite3_libversion_number, lib, "sqlite3_libversion_number")

	if _, err := purego.Dlsym(lib, "sqlite3_column_origin_name"); err == nil {
		purego.RegisterLibFunc(&sqlite3_column_origin_name, lib, "sqlite3_column_origin_name")
		columnMetadata = true
	}
}

// Version returns the version number of the loaded library,
// such as 3045002 for 3.45.2.
func Version() int {
	return int(sqlite3_libversion_number())
}

// goString copies a NUL-terminated C string. Like any C string read, it
// stops at the first NUL byte.
func goString(p uintptr) string {
	if p == 0 {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Pointer(p + uintptr(n))) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	/* #nosec G103 */
	return string(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}

// goBytes aliases n bytes of C memory. The slice is only valid while the
// memory it points into is.
func goBytes(p uintptr, n int) []byte {
	if p == 0 || n <= 0 {
		return nil
	}
	/* #nosec G103 */
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), n)
}
