package service

import (
	"context"

	"github.com/MKhiriev/go-account-keeper/models"
)

// AuthService registers accounts, checks credentials and manages the
// lifecycle of session tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, request models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService reads and modifies existing accounts.
type UserService interface {
	GetUser(ctx context.Context, id int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, update models.UserUpdate) error
	DeleteUser(ctx context.Context, id int64) error

	// GetProfilePicture returns the picture currently referenced by the
	// profile of the user with the given id.
	GetProfilePicture(ctx context.Context, id int64) (models.Picture, error)
	// GetPicture returns a stored picture by its object key.
	GetPicture(ctx context.Context, key string) (models.Picture, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
