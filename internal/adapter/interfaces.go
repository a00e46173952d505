// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the account server HTTP API.
//
// [ServerAdapter] hides the transport from the command-line client. The
// package ships a REST implementation built on resty ([NewHTTPServerAdapter]).
//
// Non-2xx responses are mapped by mapHTTPError to the sentinel errors in
// errors.go, so callers can use [errors.Is] (e.g. [ErrConflict] for 409,
// [ErrForbidden] for a missing or rejected token).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-account-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the account server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every authenticated
	// request. Login calls it on success.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Register creates an account. The profile picture is sent as a
	// multipart file together with the text fields.
	Register(ctx context.Context, request models.RegisterRequest) (models.User, error)

	// Login exchanges credentials for a session token, stores the token via
	// SetToken and returns the logged in user.
	Login(ctx context.Context, request models.LoginRequest) (models.User, error)

	// CurrentUser returns the user the stored token belongs to.
	CurrentUser(ctx context.Context) (models.User, error)

	// ListUsers returns every registered user.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateUser sends the non-nil fields of update.
	UpdateUser(ctx context.Context, update models.UserUpdate) error

	// DeleteUser removes the user with the given id.
	DeleteUser(ctx context.Context, id int64) error

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
