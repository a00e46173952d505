package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-account-keeper/internal/service"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/internal/validators"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withURLParam sets a chi URL parameter on r as the router would.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// ─────────────────────────────────────────────
// getCurrentUser
// ─────────────────────────────────────────────

func TestGetCurrentUser_Success(t *testing.T) {
	users := &mockUserService{
		getUserFn: func(_ context.Context, id int64) (models.User, error) {
			return models.User{ID: id, FirstName: "Ada", PasswordHash: "$2a$10$secret"}, nil
		},
	}
	h := newTestHandler(t, nil, users)

	rec := httptest.NewRecorder()
	h.getCurrentUser(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/api/user", nil), 9))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, int64(9), user.ID)
}

func TestGetCurrentUser_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "deleted user", err: store.ErrNoUserWasFound, wantStatus: http.StatusNotFound, wantError: MsgUserNotFound},
		{name: "store failure", err: store.ErrExecutingQuery, wantStatus: http.StatusInternalServerError, wantError: MsgFailedToGetUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mockUserService{
				getUserFn: func(context.Context, int64) (models.User, error) { return models.User{}, tt.err },
			}
			h := newTestHandler(t, nil, users)

			rec := httptest.NewRecorder()
			h.getCurrentUser(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/api/user", nil), 1))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, decodeError(t, rec))
		})
	}
}

func TestGetCurrentUser_NoIdentity(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	rec := httptest.NewRecorder()
	h.getCurrentUser(rec, httptest.NewRequest(http.MethodGet, "/api/user", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// ─────────────────────────────────────────────
// pictures
// ─────────────────────────────────────────────

func TestGetCurrentUserPicture(t *testing.T) {
	users := &mockUserService{
		getProfilePictureFn: func(_ context.Context, id int64) (models.Picture, error) {
			assert.Equal(t, int64(3), id)
			return models.Picture{ContentType: "image/png", Data: []byte("png-bytes")}, nil
		},
	}
	h := newTestHandler(t, nil, users)

	rec := httptest.NewRecorder()
	h.getCurrentUserPicture(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/api/user/picture", nil), 3))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "9", rec.Header().Get("Content-Length"))
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestGetCurrentUserPicture_NoPicture(t *testing.T) {
	users := &mockUserService{
		getProfilePictureFn: func(context.Context, int64) (models.Picture, error) {
			return models.Picture{}, service.ErrNoProfilePicture
		},
	}
	h := newTestHandler(t, nil, users)

	rec := httptest.NewRecorder()
	h.getCurrentUserPicture(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/api/user/picture", nil), 3))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, MsgPictureNotFound, decodeError(t, rec))
}

func TestGetPicture(t *testing.T) {
	users := &mockUserService{
		getPictureFn: func(_ context.Context, key string) (models.Picture, error) {
			if key != "abc-me.gif" {
				return models.Picture{}, store.ErrPictureNotFound
			}
			return models.Picture{Data: []byte("GIF89a")}, nil
		},
	}
	h := newTestHandler(t, nil, users)

	rec := httptest.NewRecorder()
	h.getPicture(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/pictures/abc-me.gif", nil), "key", "abc-me.gif"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"), "content type is sniffed when unknown")

	rec = httptest.NewRecorder()
	h.getPicture(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/pictures/other", nil), "key", "other"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// listUsers
// ─────────────────────────────────────────────

func TestListUsers(t *testing.T) {
	tests := []struct {
		name     string
		users    []models.User
		wantBody string
	}{
		{name: "empty store yields empty array", users: nil, wantBody: `[]`},
		{
			name:  "users without password hashes",
			users: []models.User{{ID: 1, FirstName: "Ada", PasswordHash: "$2a$10$secret"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mockUserService{
				listUsersFn: func(context.Context) ([]models.User, error) { return tt.users, nil },
			}
			h := newTestHandler(t, nil, users)

			rec := httptest.NewRecorder()
			h.listUsers(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.NotContains(t, rec.Body.String(), "secret")
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestListUsers_Error(t *testing.T) {
	users := &mockUserService{
		listUsersFn: func(context.Context) ([]models.User, error) { return nil, store.ErrScanningRows },
	}
	h := newTestHandler(t, nil, users)

	rec := httptest.NewRecorder()
	h.listUsers(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, MsgFailedToListUsers, decodeError(t, rec))
}

// ─────────────────────────────────────────────
// updateUser
// ─────────────────────────────────────────────

func TestUpdateUser_Multipart(t *testing.T) {
	var got models.UserUpdate
	users := &mockUserService{
		updateUserFn: func(_ context.Context, update models.UserUpdate) error {
			got = update
			return nil
		},
	}
	h := newTestHandler(t, nil, users)

	body, contentType := multipartBody(t, map[string]string{"lastName": " Hopper ", "password": "new pass"},
		formFile{field: "profilePicture", fileName: "new.jpg", contentType: "image/jpeg", data: []byte("jpg")})
	req := httptest.NewRequest(http.MethodPatch, "/api/users/5", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.updateUser(rec, withURLParam(req, "id", "5"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User updated successfully"}`, rec.Body.String())

	assert.Equal(t, int64(5), got.ID)
	assert.Nil(t, got.FirstName, "absent fields stay nil")
	assert.Nil(t, got.MobileNumber)
	require.NotNil(t, got.LastName)
	assert.Equal(t, "Hopper", *got.LastName)
	require.NotNil(t, got.Password)
	assert.Equal(t, "new pass", *got.Password)
	require.NotNil(t, got.ProfilePicture)
	assert.Equal(t, "new.jpg", got.ProfilePicture.FileName)
}

func TestUpdateUser_URLEncoded(t *testing.T) {
	var got models.UserUpdate
	users := &mockUserService{
		updateUserFn: func(_ context.Context, update models.UserUpdate) error {
			got = update
			return nil
		},
	}
	h := newTestHandler(t, nil, users)

	req := httptest.NewRequest(http.MethodPatch, "/api/users/5", strings.NewReader("mobileNumber=5559999"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.updateUser(rec, withURLParam(req, "id", "5"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.MobileNumber)
	assert.Equal(t, "5559999", *got.MobileNumber)
	assert.Nil(t, got.ProfilePicture)
}

func TestUpdateUser_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "non numeric id", id: "abc", wantStatus: http.StatusBadRequest, wantError: validators.ReasonInvalidID},
		{name: "zero id", id: "0", wantStatus: http.StatusBadRequest, wantError: validators.ReasonInvalidID},
		{
			name: "no fields",
			id:   "5",
			err: errors.Join(service.ErrInvalidDataProvided,
				&validators.ValidationError{Reason: validators.ReasonNoFieldsToUpdate}),
			wantStatus: http.StatusBadRequest,
			wantError:  validators.ReasonNoFieldsToUpdate,
		},
		{name: "unknown user", id: "404", err: store.ErrNoUserWasFound, wantStatus: http.StatusNotFound, wantError: MsgUserNotFound},
		{name: "mobile number taken", id: "5", err: store.ErrMobileNumberAlreadyExists, wantStatus: http.StatusConflict, wantError: MsgMobileNumberTaken},
		{name: "upload failure", id: "5", err: store.ErrUploadingPicture, wantStatus: http.StatusInternalServerError, wantError: MsgFailedToUpdateUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mockUserService{
				updateUserFn: func(context.Context, models.UserUpdate) error { return tt.err },
			}
			h := newTestHandler(t, nil, users)

			req := httptest.NewRequest(http.MethodPatch, "/api/users/"+tt.id, strings.NewReader("firstName=Ada"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			h.updateUser(rec, withURLParam(req, "id", tt.id))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, decodeError(t, rec))
		})
	}
}

// ─────────────────────────────────────────────
// deleteUser
// ─────────────────────────────────────────────

func TestDeleteUser(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "deleted", id: "5", wantStatus: http.StatusOK, wantBody: `{"message":"User deleted successfully"}`},
		{name: "unknown user", id: "404", err: store.ErrNoUserWasFound, wantStatus: http.StatusNotFound, wantBody: `{"error":"User not found"}`},
		{name: "invalid id", id: "-1", wantStatus: http.StatusBadRequest, wantBody: `{"error":"id must be a positive integer"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mockUserService{
				deleteUserFn: func(context.Context, int64) error { return tt.err },
			}
			h := newTestHandler(t, nil, users)

			rec := httptest.NewRecorder()
			h.deleteUser(rec, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/users/"+tt.id, nil), "id", tt.id))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
