package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set embedded into every session token.
//
// The user id travels in the standard "sub" claim; the mobile number is a
// private claim. Expiry ("exp") and issue time ("iat") come from
// [jwt.RegisteredClaims].
type Claims struct {
	// MobileNumber is the login identifier of the token owner.
	MobileNumber string `json:"mobileNumber"`

	jwt.RegisteredClaims
}

// GetUserID parses the "sub" claim as a base-10 int64.
//
// Returns an error if the subject claim is missing or not a number.
func (c *Claims) GetUserID() (int64, error) {
	userIDString, err := c.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}
	if userIDString == "" {
		return 0, fmt.Errorf("error extracting UserID from token: empty subject")
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// Token wraps a signed JWT together with the identity it carries.
type Token struct {
	// Token is the underlying JWT, excluded from JSON because only the
	// compact string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation
	// (base64url header.payload.signature).
	SignedString string `json:"-"`

	// UserID is the parsed "sub" claim.
	UserID int64 `json:"-"`

	// MobileNumber is the parsed private claim.
	MobileNumber string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// Identity is the authenticated principal attached to a request context
// by the auth middleware.
type Identity struct {
	UserID       int64  `json:"id"`
	MobileNumber string `json:"mobileNumber"`
}
