package repository

import (
	"errors"  // Plain error values
	"fmt"     // Wrapped errors
	"testing" // Testing framework

	"github.com/go-sql-driver/mysql"     // MySQL driver errors
	"github.com/stretchr/testify/assert" // Assertion library
)

func TestTranslateDuplicate_EmailIndex(t *testing.T) {
	err := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.com' for key 'users.idx_users_email'"}
	assert.ErrorIs(t, translateDuplicate(err), ErrDuplicateEmail)
}

func TestTranslateDuplicate_UsernameIndex(t *testing.T) {
	err := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'users.idx_users_username'"}
	assert.ErrorIs(t, translateDuplicate(err), ErrDuplicateUsername)
}

func TestTranslateDuplicate_UnnamedKeyFallsBackToEmail(t *testing.T) {
	// When the violated index cannot be identified, report the email
	// conflict, matching the registration check order
	err := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'PRIMARY'"}
	assert.ErrorIs(t, translateDuplicate(err), ErrDuplicateEmail)
}

func TestTranslateDuplicate_WrappedError(t *testing.T) {
	// errors.As must see through wrapping applied by the driver or GORM
	inner := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'users.idx_users_username'"}
	wrapped := fmt.Errorf("create user: %w", inner)
	assert.ErrorIs(t, translateDuplicate(wrapped), ErrDuplicateUsername)
}

func TestTranslateDuplicate_OtherErrorsPassThrough(t *testing.T) {
	// A non-duplicate MySQL error is not a conflict
	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}
	assert.Equal(t, error(deadlock), translateDuplicate(deadlock))
	// Neither is an arbitrary error
	plain := errors.New("connection refused")
	assert.Equal(t, plain, translateDuplicate(plain))
}
