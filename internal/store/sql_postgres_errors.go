package store

import (
	"github.com/jackc/pgerrcode"
)

// ErrorClassification is the result type returned by [ErrorClassificator.Classify].
// It tells the repository which domain error a driver error stands for.
type ErrorClassification int

const (
	// Unclassified errors are returned to the caller wrapped as is.
	Unclassified ErrorClassification = iota

	// UniqueViolation means the write collided with a unique index,
	// which for the users table is the mobile number.
	UniqueViolation

	// ConnectionFailure means the database could not be reached.
	ConnectionFailure
)

// String implements [fmt.Stringer] for log fields.
func (c ErrorClassification) String() string {
	switch c {
	case UniqueViolation:
		return "unique_violation"
	case ConnectionFailure:
		return "connection_failure"
	default:
		return "unclassified"
	}
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
// See https://www.postgresql.org/docs/current/errcodes-appendix.html for the
// full list of PostgreSQL error codes.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return Unclassified
	}

	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return UniqueViolation
	// Class 08: connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.CannotConnectNow:
		return ConnectionFailure
	}

	return Unclassified
}
