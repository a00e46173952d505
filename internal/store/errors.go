package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrMobileNumberAlreadyExists is returned when an INSERT or UPDATE
	// violates the uniqueness of users.mobile_number.
	ErrMobileNumberAlreadyExists = errors.New("mobile number already exists")

	// ErrNoUserWasFound is returned when a query or a write targets a user
	// that does not exist.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrUnsupportedDriver is returned by NewDB for a driver other than
	// pgx or sqlite3.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query or a DML
	// statement against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan user row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan user rows")
)

// Picture storage errors.
var (
	// ErrUploadingPicture is returned when the blob store rejects a write.
	ErrUploadingPicture = errors.New("error uploading picture")

	// ErrPictureNotFound is returned when no object exists under the key.
	ErrPictureNotFound = errors.New("picture not found")

	// ErrReadingPicture is returned when an existing object cannot be read.
	ErrReadingPicture = errors.New("error reading picture")
)
