package crypto

import "errors"

var (
	// ErrHashingFailed is returned by PasswordHasher.Hash when bcrypt rejects
	// the input.
	ErrHashingFailed = errors.New("password hashing failed")
	// ErrInvalidHashCost is returned by NewPasswordHasher for a work factor
	// outside bcrypt.MinCost..bcrypt.MaxCost.
	ErrInvalidHashCost = errors.New("invalid password hash cost")
)
