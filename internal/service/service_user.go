package service

import (
	"context"
	"fmt"
	"net/url"
	"path"

	"github.com/MKhiriev/go-account-keeper/internal/crypto"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/internal/validators"
	"github.com/MKhiriev/go-account-keeper/models"
)

type userService struct {
	userRepository store.UserRepository
	pictureStorage store.PictureStorage
	passwordHasher crypto.PasswordHasher
	validator      validators.Validator

	logger *logger.Logger
}

func NewUserService(
	userRepository store.UserRepository,
	pictureStorage store.PictureStorage,
	passwordHasher crypto.PasswordHasher,
	validator validators.Validator,
	logger *logger.Logger,
) UserService {
	return &userService{
		userRepository: userRepository,
		pictureStorage: pictureStorage,
		passwordHasher: passwordHasher,
		validator:      validator,
		logger:         logger,
	}
}

func (u *userService) GetUser(ctx context.Context, id int64) (models.User, error) {
	user, err := u.userRepository.FindUserByID(ctx, id)
	if err != nil {
		logger.FromContextOr(ctx, u.logger).Err(err).Int64("id", id).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

func (u *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := u.userRepository.ListUsers(ctx)
	if err != nil {
		logger.FromContextOr(ctx, u.logger).Err(err).Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	return users, nil
}

// UpdateUser applies a partial update.
//
// A new password is replaced by its hash. A new picture is uploaded first and
// only its URL reaches the store; the upload is skipped when the user does
// not exist.
func (u *userService) UpdateUser(ctx context.Context, update models.UserUpdate) error {
	log := logger.FromContextOr(ctx, u.logger).With().Int64("id", update.ID).Logger()

	if err := u.validator.Validate(ctx, update); err != nil {
		log.Err(err).Msg("invalid update data provided")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if update.Password != nil {
		passwordHash, err := u.passwordHasher.Hash(*update.Password)
		if err != nil {
			log.Err(err).Msg("password hashing failed")
			return fmt.Errorf("password hashing failed: %w", err)
		}
		update.PasswordHash = &passwordHash
		update.Password = nil
	}

	if update.ProfilePicture != nil {
		if _, err := u.userRepository.FindUserByID(ctx, update.ID); err != nil {
			log.Err(err).Msg("user search before picture upload failed")
			return fmt.Errorf("user search by id failed: %w", err)
		}

		pictureURL, err := u.pictureStorage.Put(ctx, utils.NewObjectKey(update.ProfilePicture.FileName), *update.ProfilePicture)
		if err != nil {
			log.Err(err).Msg("profile picture upload failed")
			return fmt.Errorf("profile picture upload failed: %w", err)
		}
		update.ProfilePictureURL = &pictureURL
		update.ProfilePicture = nil
	}

	if err := u.userRepository.UpdateUser(ctx, update); err != nil {
		log.Err(err).Msg("user update failed")
		return fmt.Errorf("user update failed: %w", err)
	}

	return nil
}

func (u *userService) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided,
			&validators.ValidationError{Field: validators.FieldID, Reason: validators.ReasonInvalidID})
	}

	if err := u.userRepository.DeleteUser(ctx, id); err != nil {
		logger.FromContextOr(ctx, u.logger).Err(err).Int64("id", id).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	return nil
}

func (u *userService) GetProfilePicture(ctx context.Context, id int64) (models.Picture, error) {
	user, err := u.GetUser(ctx, id)
	if err != nil {
		return models.Picture{}, err
	}

	key, ok := pictureKey(user.ProfilePicture)
	if !ok {
		return models.Picture{}, ErrNoProfilePicture
	}

	return u.GetPicture(ctx, key)
}

func (u *userService) GetPicture(ctx context.Context, key string) (models.Picture, error) {
	picture, err := u.pictureStorage.Get(ctx, key)
	if err != nil {
		logger.FromContextOr(ctx, u.logger).Err(err).Str("key", key).Msg("picture download failed")
		return models.Picture{}, fmt.Errorf("picture download failed: %w", err)
	}

	return picture, nil
}

// pictureKey extracts the object key, the last path segment, from a stored
// picture URL.
func pictureKey(pictureURL string) (string, bool) {
	if pictureURL == "" {
		return "", false
	}

	parsed, err := url.Parse(pictureURL)
	if err != nil {
		return "", false
	}

	key := path.Base(parsed.Path)
	if key == "." || key == "/" {
		return "", false
	}

	return key, true
}
