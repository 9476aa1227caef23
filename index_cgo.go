//go:build cgo

package plink

// If cgo is enabled, we will use the mattn cgo sqlite3 driver. It is faster
// than the modernc sqlite driver.

import (
	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3"
)

const whichSQLiteDriver = "sqlite3"

func connectIndex(uri string) (*sqlx.DB, error) {
	return sqlx.Connect(whichSQLiteDriver, uri)
}
