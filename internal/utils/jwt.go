package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

// bearerScheme is the only authorization scheme accepted by ParseBearerToken.
const bearerScheme = "bearer"

var (
	// ErrEmptySignKey is returned when a token is generated or validated
	// without a signing secret.
	ErrEmptySignKey = errors.New("empty token sign key")
	// ErrInvalidAuthorizationHeader is returned by ParseBearerToken for any
	// header that is not exactly "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token for the given identity.
//
// The token includes the following claims:
//   - Subject   (sub): the user ID encoded as a string
//   - mobileNumber:    the login identifier of the user
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - Issuer    (iss): only when issuer is not empty
//
// A non-positive tokenDuration is not refused: the token is issued already
// expired and every validation of it fails.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken(identity, "secret", time.Hour, "accounts")
func GenerateJWTToken(identity models.Identity, signKey string, tokenDuration time.Duration, issuer string) (models.Token, error) {
	if signKey == "" {
		return models.Token{}, ErrEmptySignKey
	}

	now := time.Now()
	claims := &models.Claims{
		MobileNumber: identity.MobileNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(identity.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:        token,
		SignedString: tokenString,
		UserID:       identity.UserID,
		MobileNumber: identity.MobileNumber,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Algorithm check: only HS256 is accepted
//   - Signature verification using the provided sign key
//   - Expiration (exp) claim presence and check
//   - Issuer (iss) claim check when tokenIssuer is not empty
//   - Subject (sub) claim presence and conversion to int64 UserID
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "accounts")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	if tokenSignKey == "" {
		return models.Token{}, ErrEmptySignKey
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if tokenIssuer != "" {
		opts = append(opts, jwt.WithIssuer(tokenIssuer))
	}

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, opts...)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userID, err := claims.GetUserID()
	if err != nil {
		return models.Token{}, err
	}

	return models.Token{
		Token:        token,
		SignedString: tokenString,
		UserID:       userID,
		MobileNumber: claims.MobileNumber,
	}, nil
}

// ParseBearerToken extracts the token from an Authorization header value.
//
// The header is trimmed and must consist of exactly two space-separated
// parts: the scheme "Bearer" (matched case-insensitively) and a non-empty
// token. Anything else returns ErrInvalidAuthorizationHeader.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) || parts[1] == "" {
		return "", ErrInvalidAuthorizationHeader
	}

	return parts[1], nil
}
