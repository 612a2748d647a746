// Package repository holds the raw-SQL data access layer. Sentinel
// errors defined here let handlers distinguish failure scenarios
// without inspecting driver errors themselves.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrConflict is returned when a delete cannot be performed because of
// dependent records, such as removing a hall that still hosts
// performances. Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// Not-found sentinels, one per catalog entity.
var (
	ErrActorNotFound       = errors.New("actor not found")
	ErrGenreNotFound       = errors.New("genre not found")
	ErrPlayNotFound        = errors.New("play not found")
	ErrHallNotFound        = errors.New("theatre hall not found")
	ErrPerformanceNotFound = errors.New("performance not found")
)

// ErrEmailExists is returned when registering an already used email.
var ErrEmailExists = errors.New("email already exists")

// mysql server error numbers this layer cares about.
const (
	mysqlErrDupEntry      = 1062 // unique key violation
	mysqlErrRowReferenced = 1451 // delete blocked by child rows
	mysqlErrNoReferenced  = 1452 // insert references a missing parent row
)

// isDuplicateEntry reports whether err is a unique-key violation.
func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDupEntry
}

// isRowReferenced reports whether err is a delete blocked by a foreign
// key on child rows.
func isRowReferenced(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrRowReferenced
}

// isMissingParent reports whether err is an insert or update whose
// foreign key points at a row that does not exist.
func isMissingParent(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrNoReferenced
}
