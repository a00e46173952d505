// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-account-keeper/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ClaimsCtxKey is the key under which the auth middleware stores the
// authenticated [models.Identity].
var ClaimsCtxKey = contextKey("claims")

// WithClaims returns a copy of ctx carrying identity.
func WithClaims(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, ClaimsCtxKey, identity)
}

// GetClaimsFromContext retrieves the identity stored by WithClaims.
//
// Returns ok == false when the value is missing or has an unexpected type.
//
// Example usage:
//
//	identity, ok := utils.GetClaimsFromContext(ctx)
//	if !ok {
//	    // handle unauthenticated request
//	}
func GetClaimsFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(ClaimsCtxKey).(models.Identity)
	return identity, ok
}

// GetUserIDFromContext is a shorthand for the UserID of GetClaimsFromContext.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	identity, ok := GetClaimsFromContext(ctx)
	return identity.UserID, ok
}
