package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-account-keeper/models"
)

// Column names of the users table.
const (
	columnID             = "id"
	columnFirstName      = "first_name"
	columnLastName       = "last_name"
	columnMobileNumber   = "mobile_number"
	columnPasswordHash   = "password_hash"
	columnProfilePicture = "profile_picture"
	columnCreatedAt      = "created_at"
	columnUpdatedAt      = "updated_at"
)

// userColumns is the column order every user SELECT and RETURNING uses;
// scanUser reads in the same order.
var userColumns = []string{
	columnID,
	columnFirstName,
	columnLastName,
	columnMobileNumber,
	columnPasswordHash,
	columnProfilePicture,
	columnCreatedAt,
	columnUpdatedAt,
}

var usersTable = models.User{}.TableName()

// buildCreateUserQuery builds an INSERT returning the full stored row.
func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	query, args, err := b.Insert(usersTable).
		Columns(columnFirstName, columnLastName, columnMobileNumber, columnPasswordHash, columnProfilePicture).
		Values(user.FirstName, user.LastName, user.MobileNumber, user.PasswordHash, user.ProfilePicture).
		Suffix(returningUserColumns()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildFindUserQuery builds a SELECT of a single user filtered by where.
func buildFindUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListUsersQuery builds a SELECT of every user ordered by id.
func buildListUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From(usersTable).
		OrderBy(columnID).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateUserQuery builds an UPDATE that sets only the non-nil fields of
// update and always refreshes updated_at. The plaintext Password and the
// not yet uploaded ProfilePicture are never written.
func buildUpdateUserQuery(b sq.StatementBuilderType, update models.UserUpdate) (string, []any, error) {
	setMap := make(map[string]any, 6)
	if update.FirstName != nil {
		setMap[columnFirstName] = *update.FirstName
	}
	if update.LastName != nil {
		setMap[columnLastName] = *update.LastName
	}
	if update.MobileNumber != nil {
		setMap[columnMobileNumber] = *update.MobileNumber
	}
	if update.PasswordHash != nil {
		setMap[columnPasswordHash] = *update.PasswordHash
	}
	if update.ProfilePictureURL != nil {
		setMap[columnProfilePicture] = *update.ProfilePictureURL
	}
	if len(setMap) == 0 {
		return "", nil, fmt.Errorf("%w: no columns to update", ErrBuildingSQLQuery)
	}
	setMap[columnUpdatedAt] = sq.Expr("CURRENT_TIMESTAMP")

	query, args, err := b.Update(usersTable).
		SetMap(setMap).
		Where(sq.Eq{columnID: update.ID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildDeleteUserQuery builds a DELETE by id.
func buildDeleteUserQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	query, args, err := b.Delete(usersTable).
		Where(sq.Eq{columnID: id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func returningUserColumns() string {
	suffix := "RETURNING "
	for i, c := range userColumns {
		if i > 0 {
			suffix += ", "
		}
		suffix += c
	}
	return suffix
}
