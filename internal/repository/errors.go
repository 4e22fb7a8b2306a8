// Package repository defines error values shared by the user lifecycle
// store.  These let the service layer tell expected conditions (missing
// user, wrong lifecycle state, duplicate email) apart from real failures
// without inspecting driver errors itself.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrUserNotFound is returned when no profile exists for the id.
var ErrUserNotFound = errors.New("user not found")

// ErrUserInactive is returned when an update targets a soft-deleted user.
var ErrUserInactive = errors.New("user is inactive")

// ErrUserActive is returned when reactivating a user that is already active.
var ErrUserActive = errors.New("user is already active")

// EmailTakenError reports a unique-index violation on email.
type EmailTakenError struct {
	Email string
}

func (e *EmailTakenError) Error() string {
	return fmt.Sprintf("email %s already exists", e.Email)
}

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
