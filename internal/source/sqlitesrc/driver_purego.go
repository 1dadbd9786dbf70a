//go:build !cgo_sqlite

package sqlitesrc

import (
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

const (
	driverName = "sqlite"
	driverType = "purego"
)
