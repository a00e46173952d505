package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/crypto"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/internal/validators"
	"github.com/MKhiriev/go-account-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// pictureStorage receives the profile picture uploaded at registration.
	pictureStorage store.PictureStorage

	// passwordHasher hashes new passwords and verifies login attempts.
	passwordHasher crypto.PasswordHasher

	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the optional "iss" claim embedded in every issued JWT.
	// When set, tokens carrying another issuer are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given stores and
// populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	pictureStorage store.PictureStorage,
	passwordHasher crypto.PasswordHasher,
	validator validators.Validator,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		pictureStorage: pictureStorage,
		passwordHasher: passwordHasher,
		validator:      validator,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// The request is validated, the password is hashed and the profile picture
// is uploaded before the user row is inserted; a failed upload aborts the
// registration.
//
// Returns the persisted user (with a server-assigned ID) or:
//   - ErrInvalidDataProvided wrapping a *validators.ValidationError.
//   - crypto.ErrHashingFailed if the password cannot be hashed.
//   - store.ErrUploadingPicture if the picture upload fails.
//   - store.ErrMobileNumberAlreadyExists if the mobile number is taken.
func (a *authService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContextOr(ctx, a.logger)

	if err := a.validator.Validate(ctx, request); err != nil {
		log.Err(err).Str("mobile_number", request.MobileNumber).Msg("invalid registration data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	passwordHash, err := a.passwordHasher.Hash(request.Password)
	if err != nil {
		log.Err(err).Str("mobile_number", request.MobileNumber).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	pictureURL, err := a.pictureStorage.Put(ctx, utils.NewObjectKey(request.ProfilePicture.FileName), *request.ProfilePicture)
	if err != nil {
		log.Err(err).Str("mobile_number", request.MobileNumber).Msg("profile picture upload failed")
		return models.User{}, fmt.Errorf("profile picture upload failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		FirstName:      request.FirstName,
		LastName:       request.LastName,
		MobileNumber:   request.MobileNumber,
		PasswordHash:   passwordHash,
		ProfilePicture: pictureURL,
	})
	if err != nil {
		log.Err(err).Str("mobile_number", request.MobileNumber).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// An unknown mobile number and a wrong password are both reported as
// ErrInvalidCredentials so callers cannot probe which numbers are
// registered. Missing fields are rejected the same way.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	log := logger.FromContextOr(ctx, a.logger)

	if err := a.validator.Validate(ctx, request); err != nil {
		log.Info().Err(err).Msg("login attempt with missing credentials")
		return models.User{}, ErrInvalidCredentials
	}

	foundUser, err := a.userRepository.FindUserByMobileNumber(ctx, request.MobileNumber)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("mobile_number", request.MobileNumber).Msg("login attempt for unknown mobile number")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("mobile_number", request.MobileNumber).Msg("user search by mobile number failed")
		return models.User{}, fmt.Errorf("user search by mobile number failed: %w", err)
	}

	if !a.passwordHasher.Verify(request.Password, foundUser.PasswordHash) {
		log.Info().Int64("id", foundUser.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the user id
// as "sub" and the mobile number as a private claim, and expires after
// tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	identity := models.Identity{UserID: user.ID, MobileNumber: user.MobileNumber}

	token, err := utils.GenerateJWTToken(identity, a.tokenSignKey, a.tokenDuration, a.tokenIssuer)
	if err != nil {
		logger.FromContextOr(ctx, a.logger).Err(err).Int64("id", user.ID).Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, wrong algorithm, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors. The cause is logged at debug level.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContextOr(ctx, a.logger).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
