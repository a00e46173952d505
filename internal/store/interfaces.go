package store

import (
	"context"

	"github.com/MKhiriev/go-account-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts in the relational store.
//
// Lookups that match no row return ErrNoUserWasFound; writes that collide
// with an existing mobile number return ErrMobileNumberAlreadyExists.
type UserRepository interface {
	// CreateUser inserts user and returns it with the server-assigned ID and
	// timestamps.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByMobileNumber returns the user, password hash included, that
	// logs in with mobileNumber.
	FindUserByMobileNumber(ctx context.Context, mobileNumber string) (models.User, error)
	// FindUserByID returns the user with the given id.
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	// ListUsers returns every user ordered by id.
	ListUsers(ctx context.Context) ([]models.User, error)
	// UpdateUser applies the non-nil fields of update and refreshes updated_at.
	UpdateUser(ctx context.Context, update models.UserUpdate) error
	// DeleteUser removes the user with the given id.
	DeleteUser(ctx context.Context, id int64) error
}

// PictureStorage stores profile pictures as publicly readable objects.
type PictureStorage interface {
	// Put stores picture under key and returns the public URL of the object.
	Put(ctx context.Context, key string, picture models.Picture) (string, error)
	// Get returns the stored picture, or ErrPictureNotFound.
	Get(ctx context.Context, key string) (models.Picture, error)
}

// ErrorClassificator maps a driver error to an [ErrorClassification] so the
// repository stays independent from the concrete SQL driver.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
