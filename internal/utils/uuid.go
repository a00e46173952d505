package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// NewTraceID returns a time-ordered UUIDv7, falling back to a random UUIDv4
// if the clock source fails.
func NewTraceID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// NewObjectKey builds a collision-free storage key "<uuid>-<name>" for an
// uploaded file. Directory components and spaces of fileName are dropped so
// the key is safe both as an S3 key and as a local file name.
func NewObjectKey(fileName string) string {
	name := filepath.Base(filepath.ToSlash(fileName))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == "/" || name == "" {
		name = "picture"
	}

	return uuid.NewString() + "-" + name
}
