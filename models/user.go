// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents a registered account together with its public profile.
// It is the single entity persisted by the relational store.
type User struct {
	// ID is the server-assigned unique identifier of the user.
	ID int64 `json:"id"`

	// FirstName is the given name shown on the profile.
	FirstName string `json:"firstName"`

	// LastName is the family name shown on the profile.
	LastName string `json:"lastName"`

	// MobileNumber is the unique login identifier of the user.
	MobileNumber string `json:"mobileNumber"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// It MUST never hold the plaintext and is never serialized to JSON.
	PasswordHash string `json:"-"`

	// ProfilePicture is the public URL of the picture in the blob store.
	ProfilePicture string `json:"profilePicture"`

	// CreatedAt is set by the database when the row is inserted.
	CreatedAt time.Time `json:"createdDate"`

	// UpdatedAt is refreshed on every successful update.
	UpdatedAt time.Time `json:"updatedDate"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Picture is an uploaded profile picture waiting to be stored.
type Picture struct {
	// FileName is the client-side file name, used as the suffix of the object key.
	FileName string

	// ContentType is the MIME type reported by the client.
	ContentType string

	// Data holds the raw bytes of the picture.
	Data []byte
}

// RegisterRequest carries everything needed to create an account.
// Password is plaintext and lives only for the duration of the request.
type RegisterRequest struct {
	FirstName      string
	LastName       string
	MobileNumber   string
	Password       string
	ProfilePicture *Picture
}

// LoginRequest is the JSON body accepted by the login endpoint.
type LoginRequest struct {
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password"`
}

// UserUpdate describes a partial update of a user. Nil fields stay untouched.
type UserUpdate struct {
	// ID is the identifier of the user to update. Required.
	ID int64

	FirstName    *string
	LastName     *string
	MobileNumber *string

	// Password is the new plaintext password; the service replaces it with
	// PasswordHash before the update reaches the store.
	Password *string

	// PasswordHash is filled by the service, never by the transport layer.
	PasswordHash *string

	// ProfilePicture is a newly uploaded picture. The service uploads it and
	// stores the resulting URL in ProfilePictureURL.
	ProfilePicture *Picture

	// ProfilePictureURL is filled by the service after a successful upload.
	ProfilePictureURL *string
}

// IsEmpty reports whether the update carries no field to change.
func (u UserUpdate) IsEmpty() bool {
	return u.FirstName == nil &&
		u.LastName == nil &&
		u.MobileNumber == nil &&
		u.Password == nil &&
		u.PasswordHash == nil &&
		u.ProfilePicture == nil &&
		u.ProfilePictureURL == nil
}
