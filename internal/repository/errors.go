// Package repository contains data access logic for the podcast catalog.
// This file defines sentinel errors shared across repositories so handlers
// can map storage outcomes onto HTTP status codes without inspecting raw
// driver errors.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup, update or delete matches no row.
// Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert violates a uniqueness or
// referential constraint, such as associating the same show/partner pair
// twice. Handlers translate it into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when creating a user with an email that is
// already registered.
var ErrEmailExists = errors.New("email already exists")

// ErrNoUpdateData is returned by sparse updates invoked with no fields set.
// The check happens before any statement is executed.
var ErrNoUpdateData = errors.New("no update data provided")

// MySQL server error numbers used to classify constraint violations.
const (
	mysqlErrDupEntry = 1062 // ER_DUP_ENTRY
	mysqlErrNoRefRow = 1452 // ER_NO_REFERENCED_ROW_2
	mysqlErrRowRefd  = 1451 // ER_ROW_IS_REFERENCED_2
)

func isDupEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDupEntry
}

func isFKViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && (me.Number == mysqlErrNoRefRow || me.Number == mysqlErrRowRefd)
}
