package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func mysqlErr(number uint16) error {
	return &mysql.MySQLError{Number: number, Message: "simulated"}
}

func TestIsDuplicateEntry(t *testing.T) {
	assert.True(t, isDuplicateEntry(mysqlErr(1062)))
	assert.True(t, isDuplicateEntry(fmt.Errorf("exec: %w", mysqlErr(1062))))
	assert.False(t, isDuplicateEntry(mysqlErr(1451)))
	assert.False(t, isDuplicateEntry(errors.New("duplicate entry")))
	assert.False(t, isDuplicateEntry(nil))
}

func TestIsRowReferenced(t *testing.T) {
	assert.True(t, isRowReferenced(mysqlErr(1451)))
	assert.True(t, isRowReferenced(fmt.Errorf("delete: %w", mysqlErr(1451))))
	assert.False(t, isRowReferenced(mysqlErr(1062)))
	assert.False(t, isRowReferenced(nil))
}

func TestIsMissingParent(t *testing.T) {
	assert.True(t, isMissingParent(mysqlErr(1452)))
	assert.True(t, isMissingParent(fmt.Errorf("insert: %w", mysqlErr(1452))))
	assert.False(t, isMissingParent(mysqlErr(1451)))
	assert.False(t, isMissingParent(nil))
}
