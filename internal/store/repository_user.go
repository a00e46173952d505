package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/mattn/go-sqlite3"
)

// userRepository is the database/sql implementation of [UserRepository].
// It works with both supported drivers; the differences live in [DB].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Str("driver", db.driver).Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it as stored, with the
// server-assigned ID and timestamps.
//
// Error handling:
//   - unique violation on mobile_number → [ErrMobileNumberAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
//   - scan failure → wrapped [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateUserQuery(r.db.builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, err
	}

	// drivers report constraint violations of INSERT ... RETURNING on Scan
	row := r.db.QueryRowContext(ctx, query, args...)
	created, err := scanUser(row)
	if err != nil {
		if r.db.classify(err) == UniqueViolation {
			log.Warn().Str("func", "*userRepository.CreateUser").Str("mobile_number", user.MobileNumber).Msg("mobile number already exists")
			return models.User{}, ErrMobileNumberAlreadyExists
		}
		if row.Err() != nil {
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// FindUserByMobileNumber retrieves the user whose mobile_number matches.
func (r *userRepository) FindUserByMobileNumber(ctx context.Context, mobileNumber string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByMobileNumber", sq.Eq{columnMobileNumber: mobileNumber})
}

// FindUserByID retrieves the user with the given id.
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", sq.Eq{columnID: id})
}

func (r *userRepository) findUser(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(r.db.builder, where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return models.User{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// ListUsers returns all users ordered by id. An empty table yields an empty,
// non-nil slice.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(r.db.builder)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error building query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error selecting users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error scanning users")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error iterating users")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// UpdateUser applies a partial update. Zero affected rows means the user
// does not exist.
func (r *userRepository) UpdateUser(ctx context.Context, update models.UserUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(r.db.builder, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error building query")
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if r.db.classify(err) == UniqueViolation {
			log.Warn().Str("func", "*userRepository.UpdateUser").Int64("id", update.ID).Msg("mobile number already exists")
			return ErrMobileNumberAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("id", update.ID).Msg("error updating user")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r.requireAffected(result, "*userRepository.UpdateUser", update.ID, log)
}

// DeleteUser removes the user with the given id.
func (r *userRepository) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteUserQuery(r.db.builder, id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error building query")
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("id", id).Msg("error deleting user")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r.requireAffected(result, "*userRepository.DeleteUser", id, log)
}

func (r *userRepository) requireAffected(result sql.Result, funcName string, id int64, log *logger.Logger) error {
	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("id", id).Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// rowScanner is implemented by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one row in [userColumns] order.
func scanUser(row rowScanner) (models.User, error) {
	var (
		user                 models.User
		profilePicture       sql.NullString
		createdAt, updatedAt timestamp
	)

	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.MobileNumber,
		&user.PasswordHash,
		&profilePicture,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	user.ProfilePicture = profilePicture.String
	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return user, nil
}

// timestamp scans both native time values and the text SQLite produces for
// CURRENT_TIMESTAMP when the column type is not known to the driver.
type timestamp struct {
	time.Time
}

// Scan implements [sql.Scanner].
func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case nil:
		t.Time = time.Time{}
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("unsupported timestamp value of type %T", src)
	}
}

func (t *timestamp) parse(value string) error {
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", value)
}
