// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-account-keeper/models"
)

// Field name constants used to scope validation to a subset of fields.
// They match the JSON and form field names of the HTTP API so that a
// ValidationError can be reported to clients as is.
const (
	FieldID             = "id"
	FieldFirstName      = "firstName"
	FieldLastName       = "lastName"
	FieldMobileNumber   = "mobileNumber"
	FieldPassword       = "password"
	FieldProfilePicture = "profilePicture"
)

// maxPasswordBytes is the longest input bcrypt hashes without truncation.
const maxPasswordBytes = 72

var mobileNumberPattern = regexp.MustCompile(`^\+?[0-9]{3,15}$`)

// UserValidator implements the Validator interface for the account
// requests: RegisterRequest, LoginRequest and UserUpdate.
//
// Both value and pointer forms are accepted.
type UserValidator struct {
}

// NewUserValidator constructs a new UserValidator
// and returns it as the Validator interface.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj.
//
// Returns ErrUnsupportedType if obj does not match any known model, a
// *ValidationError on a rule violation, and ErrUnknownField when fields
// names something the model does not have.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.UserUpdate:
		return v.validateUserUpdate(ctx, value, fields...)
	case *models.UserUpdate:
		return v.validateUserUpdate(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateRegisterRequest checks that every registration field is present
// first, reporting all missing ones at once, then checks their formats.
func (v *UserValidator) validateRegisterRequest(_ context.Context, request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFirstName, FieldLastName, FieldMobileNumber, FieldPassword, FieldProfilePicture}
	}

	var missing []string
	for _, f := range fields {
		switch f {
		case FieldFirstName:
			if isBlank(request.FirstName) {
				missing = append(missing, f)
			}
		case FieldLastName:
			if isBlank(request.LastName) {
				missing = append(missing, f)
			}
		case FieldMobileNumber:
			if isBlank(request.MobileNumber) {
				missing = append(missing, f)
			}
		case FieldPassword:
			if request.Password == "" {
				missing = append(missing, f)
			}
		case FieldProfilePicture:
			if request.ProfilePicture == nil || len(request.ProfilePicture.Data) == 0 {
				missing = append(missing, f)
			}
		default:
			return ErrUnknownField
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Field: strings.Join(missing, ","), Reason: ReasonAllFieldsRequired}
	}

	for _, f := range fields {
		switch f {
		case FieldMobileNumber:
			if err := checkMobileNumber(request.MobileNumber); err != nil {
				return err
			}
		case FieldPassword:
			if err := checkPassword(request.Password); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateLoginRequest only checks presence: a malformed mobile number must
// fail the same way as an unknown one.
func (v *UserValidator) validateLoginRequest(_ context.Context, request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMobileNumber, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldMobileNumber:
			if isBlank(request.MobileNumber) {
				return requiredError(f)
			}
		case FieldPassword:
			if request.Password == "" {
				return requiredError(f)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUserUpdate checks the target id, that at least one field is
// provided and that every provided field is well-formed.
func (v *UserValidator) validateUserUpdate(_ context.Context, update models.UserUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldFirstName, FieldLastName, FieldMobileNumber, FieldPassword, FieldProfilePicture}
	}

	if update.IsEmpty() {
		return &ValidationError{Reason: ReasonNoFieldsToUpdate}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if update.ID <= 0 {
				return &ValidationError{Field: f, Reason: ReasonInvalidID}
			}
		case FieldFirstName:
			if update.FirstName != nil && isBlank(*update.FirstName) {
				return requiredError(f)
			}
		case FieldLastName:
			if update.LastName != nil && isBlank(*update.LastName) {
				return requiredError(f)
			}
		case FieldMobileNumber:
			if update.MobileNumber != nil {
				if err := checkMobileNumber(*update.MobileNumber); err != nil {
					return err
				}
			}
		case FieldPassword:
			if update.Password != nil {
				if *update.Password == "" {
					return requiredError(f)
				}
				if err := checkPassword(*update.Password); err != nil {
					return err
				}
			}
		case FieldProfilePicture:
			if update.ProfilePicture != nil && len(update.ProfilePicture.Data) == 0 {
				return requiredError(f)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func checkMobileNumber(mobileNumber string) error {
	if !mobileNumberPattern.MatchString(mobileNumber) {
		return &ValidationError{Field: FieldMobileNumber, Reason: ReasonInvalidMobile}
	}
	return nil
}

func checkPassword(password string) error {
	if len(password) > maxPasswordBytes {
		return &ValidationError{Field: FieldPassword, Reason: ReasonPasswordTooLong}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
