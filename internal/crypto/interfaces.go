package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plain-text passwords into salted one-way hashes and
// checks candidates against them. It knows nothing about users, storage or
// transport.
type PasswordHasher interface {
	// Hash returns a salted bcrypt hash of password. Two calls with the same
	// input produce different hashes. Returns ErrHashingFailed when the
	// password cannot be hashed (e.g. longer than 72 bytes).
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. A malformed hash is
	// treated as a mismatch, never as an error.
	Verify(password, hash string) bool
}
