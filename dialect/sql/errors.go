package sql

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/syssam/orm"
)

// PostgreSQL SQLSTATE class for data exceptions (invalid text representation,
// numeric value out of range, datetime field overflow, ...).
const pgDataException = "22"

// MySQL error numbers for values that do not fit the column type.
const (
	mysqlOutOfRange        = 1264 // Out of range value for column
	mysqlTruncatedWrong    = 1292 // Truncated incorrect value
	mysqlIncorrectValue    = 1366 // Incorrect value for column
	mysqlDataTooLong       = 1406 // Data too long for column
	mysqlWarnDataTruncated = 1265 // Data truncated for column
)

// sqlStateError is an interface for errors that provide SQLSTATE codes.
type sqlStateError interface {
	SQLState() string
}

// IsTypeMismatchError reports whether a driver error was caused by a value
// that cannot be represented by the SQL type it was converted to.
func IsTypeMismatchError(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code.Class()) == pgDataException
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlOutOfRange, mysqlTruncatedWrong, mysqlIncorrectValue, mysqlDataTooLong, mysqlWarnDataTruncated:
			return true
		}
		return false
	}
	if e, ok := asError[sqlStateError](err); ok {
		return strings.HasPrefix(e.SQLState(), pgDataException)
	}
	// Fallback to string matching for database/sql conversions and drivers
	// that don't expose codes.
	return containsAny(err.Error(),
		"converting driver.Value type", // database/sql
		"unsupported Scan",             // database/sql
		"invalid input syntax",         // Postgres (string fallback)
		"datatype mismatch",            // SQLite
	)
}

// translateError wraps driver errors caused by type mismatches with
// orm.TypeMismatchError. Other errors are returned unchanged.
func translateError(err error) error {
	if err == nil || orm.IsTypeMismatch(err) || !IsTypeMismatchError(err) {
		return err
	}
	return orm.NewTypeMismatchError("", "", nil, err)
}

// asError attempts to extract an error implementing interface T from the error chain.
func asError[T any](err error) (T, bool) {
	var target T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return target, false
}

// containsAny returns true if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
