// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Client-facing messages of the HTTP API.
const (
	MsgForbidden           = "Forbidden"
	MsgInvalidJSON         = "Invalid JSON was passed"
	MsgInvalidForm         = "Invalid multipart form"
	MsgBodyTooLarge        = "Request body too large"
	MsgInvalidCredentials  = "Invalid mobile number or password"
	MsgUserNotFound        = "User not found"
	MsgPictureNotFound     = "Picture not found"
	MsgMobileNumberTaken   = "Mobile number already registered"
	MsgUserCreated         = "User created successfully"
	MsgUserLoggedIn        = "User logged in successfully"
	MsgUserUpdated         = "User updated successfully"
	MsgUserDeleted         = "User deleted successfully"
	MsgFailedToRegister    = "Failed to register user"
	MsgFailedToLogin       = "Failed to log in"
	MsgFailedToGetUser     = "Failed to get user"
	MsgFailedToListUsers   = "Failed to list users"
	MsgFailedToUpdateUser  = "Failed to update user"
	MsgFailedToDeleteUser  = "Failed to delete user"
	MsgFailedToGetPicture  = "Failed to get picture"
	MsgFailedToCreateToken = "Failed to create token"
)

// Sentinel errors used by the authentication middleware. They are logged
// only; every rejection reaches the client as 403 Forbidden.
var (
	// ErrEmptyAuthorizationHeader is returned when the incoming request does
	// not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrNoIdentity is returned when a protected handler runs without the
	// identity the auth middleware stores in the request context.
	ErrNoIdentity = errors.New("no identity in request context")
)
