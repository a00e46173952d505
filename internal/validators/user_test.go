// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func ptr(s string) *string { return &s }

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		MobileNumber: "5551234",
		Password:     "hunter2",
		ProfilePicture: &models.Picture{
			FileName:    "ada.png",
			ContentType: "image/png",
			Data:        []byte{0x89, 0x50, 0x4e, 0x47},
		},
	}
}

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %v", err)
	return ve
}

// ---------------------------------------------------------------------------
// Validate dispatch
// ---------------------------------------------------------------------------

func TestNewUserValidator(t *testing.T) {
	v := NewUserValidator()
	require.NotNil(t, v)
	_, ok := v.(*UserValidator)
	assert.True(t, ok)
}

func TestValidate_UnsupportedType(t *testing.T) {
	v := NewUserValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), models.User{}), ErrUnsupportedType)
}

func TestValidate_PointerAndValueForms(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()
	req := validRegisterRequest()
	login := models.LoginRequest{MobileNumber: "5551234", Password: "hunter2"}
	update := models.UserUpdate{ID: 1, FirstName: ptr("Ada")}

	assert.NoError(t, v.Validate(ctx, req))
	assert.NoError(t, v.Validate(ctx, &req))
	assert.NoError(t, v.Validate(ctx, login))
	assert.NoError(t, v.Validate(ctx, &login))
	assert.NoError(t, v.Validate(ctx, update))
	assert.NoError(t, v.Validate(ctx, &update))
}

// ---------------------------------------------------------------------------
// RegisterRequest
// ---------------------------------------------------------------------------

func TestValidateRegisterRequest_MissingFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *models.RegisterRequest)
		wantField string
	}{
		{"first name", func(r *models.RegisterRequest) { r.FirstName = "" }, FieldFirstName},
		{"blank last name", func(r *models.RegisterRequest) { r.LastName = "   " }, FieldLastName},
		{"mobile number", func(r *models.RegisterRequest) { r.MobileNumber = "" }, FieldMobileNumber},
		{"password", func(r *models.RegisterRequest) { r.Password = "" }, FieldPassword},
		{"no picture", func(r *models.RegisterRequest) { r.ProfilePicture = nil }, FieldProfilePicture},
		{"empty picture", func(r *models.RegisterRequest) { r.ProfilePicture.Data = nil }, FieldProfilePicture},
		{
			"several",
			func(r *models.RegisterRequest) { r.FirstName = ""; r.Password = "" },
			FieldFirstName + "," + FieldPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			err := NewUserValidator().Validate(context.Background(), req)

			ve := requireValidationError(t, err)
			assert.Equal(t, ReasonAllFieldsRequired, ve.Reason)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestValidateRegisterRequest_Formats(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(r *models.RegisterRequest)
		wantReason string
	}{
		{"letters in mobile", func(r *models.RegisterRequest) { r.MobileNumber = "555-CALL" }, ReasonInvalidMobile},
		{"too short mobile", func(r *models.RegisterRequest) { r.MobileNumber = "12" }, ReasonInvalidMobile},
		{"too long password", func(r *models.RegisterRequest) { r.Password = strings.Repeat("p", 73) }, ReasonPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			ve := requireValidationError(t, NewUserValidator().Validate(context.Background(), req))
			assert.Equal(t, tt.wantReason, ve.Reason)
		})
	}
}

func TestValidateRegisterRequest_InternationalMobile(t *testing.T) {
	req := validRegisterRequest()
	req.MobileNumber = "+998901234567"

	assert.NoError(t, NewUserValidator().Validate(context.Background(), req))
}

func TestValidateRegisterRequest_ScopedFields(t *testing.T) {
	req := validRegisterRequest()
	req.ProfilePicture = nil

	assert.NoError(t, NewUserValidator().Validate(context.Background(), req, FieldFirstName, FieldPassword))
	assert.ErrorIs(t, NewUserValidator().Validate(context.Background(), req, "nickname"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// LoginRequest
// ---------------------------------------------------------------------------

func TestValidateLoginRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       models.LoginRequest
		wantField string
	}{
		{"valid", models.LoginRequest{MobileNumber: "5551234", Password: "hunter2"}, ""},
		{"malformed mobile is not a validation error", models.LoginRequest{MobileNumber: "abc", Password: "x"}, ""},
		{"missing mobile", models.LoginRequest{Password: "hunter2"}, FieldMobileNumber},
		{"missing password", models.LoginRequest{MobileNumber: "5551234"}, FieldPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUserValidator().Validate(context.Background(), tt.req)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			ve := requireValidationError(t, err)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, tt.wantField+" is required", ve.Reason)
		})
	}
}

// ---------------------------------------------------------------------------
// UserUpdate
// ---------------------------------------------------------------------------

func TestValidateUserUpdate(t *testing.T) {
	tests := []struct {
		name       string
		update     models.UserUpdate
		wantReason string
	}{
		{"single field", models.UserUpdate{ID: 3, LastName: ptr("Byron")}, ""},
		{
			"picture only",
			models.UserUpdate{ID: 3, ProfilePicture: &models.Picture{FileName: "a.png", Data: []byte{1}}},
			"",
		},
		{"no fields", models.UserUpdate{ID: 3}, ReasonNoFieldsToUpdate},
		{"bad id", models.UserUpdate{ID: 0, FirstName: ptr("Ada")}, ReasonInvalidID},
		{"blank first name", models.UserUpdate{ID: 3, FirstName: ptr(" ")}, "firstName is required"},
		{"bad mobile", models.UserUpdate{ID: 3, MobileNumber: ptr("phone")}, ReasonInvalidMobile},
		{"empty password", models.UserUpdate{ID: 3, Password: ptr("")}, "password is required"},
		{"long password", models.UserUpdate{ID: 3, Password: ptr(strings.Repeat("x", 100))}, ReasonPasswordTooLong},
		{"empty picture", models.UserUpdate{ID: 3, ProfilePicture: &models.Picture{}}, "profilePicture is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUserValidator().Validate(context.Background(), tt.update)

			if tt.wantReason == "" {
				assert.NoError(t, err)
				return
			}
			ve := requireValidationError(t, err)
			assert.Equal(t, tt.wantReason, ve.Reason)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "validation failed: nothing", (&ValidationError{Reason: "nothing"}).Error())
	assert.Equal(t, "validation failed on id: bad", (&ValidationError{Field: "id", Reason: "bad"}).Error())
}
