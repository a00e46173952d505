package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/service"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Helpers ----

const validTestToken = "valid-token"

// stubTokenParser accepts validTestToken only and reports user 42.
func stubTokenParser() *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			if tokenString != validTestToken {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{UserID: 42, MobileNumber: "5551234"}, nil
		},
	}
}

func newHandlerWithAuthService(authSvc service.AuthService) *Handler {
	return &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			AuthService: authSvc,
		},
	}
}

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr
}

// ---- Table test ----

func TestAuth_Middleware_TableTest(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		wantStatus     int
		wantNextCalled bool
	}{
		{name: "valid bearer token", header: "Bearer " + validTestToken, wantStatus: http.StatusOK, wantNextCalled: true},
		{name: "lowercase scheme", header: "bearer " + validTestToken, wantStatus: http.StatusOK, wantNextCalled: true},
		{name: "surrounding whitespace", header: "  Bearer " + validTestToken + "  ", wantStatus: http.StatusOK, wantNextCalled: true},
		{name: "missing header", header: "", wantStatus: http.StatusForbidden},
		{name: "token without scheme", header: validTestToken, wantStatus: http.StatusForbidden},
		{name: "wrong scheme", header: "Basic " + validTestToken, wantStatus: http.StatusForbidden},
		{name: "scheme without token", header: "Bearer", wantStatus: http.StatusForbidden},
		{name: "extra parts", header: "Bearer " + validTestToken + " extra", wantStatus: http.StatusForbidden},
		{name: "double space", header: "Bearer  " + validTestToken, wantStatus: http.StatusForbidden},
		{name: "invalid token", header: "Bearer forged", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			rr := executeAuth(newHandlerWithAuthService(stubTokenParser()), tt.header, next)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
		})
	}
}

func TestAuth_RejectionBodyIsForbidden(t *testing.T) {
	for _, header := range []string{"", "Bearer forged", "Token " + validTestToken} {
		rr := executeAuth(newHandlerWithAuthService(stubTokenParser()), header, http.NotFoundHandler())

		require.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"error":"Forbidden"}`, rr.Body.String())
	}
}

func TestAuth_IdentityInContext(t *testing.T) {
	var identity models.Identity
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok = utils.GetClaimsFromContext(r.Context())
	})

	executeAuth(newHandlerWithAuthService(stubTokenParser()), "Bearer "+validTestToken, next)

	require.True(t, ok)
	assert.Equal(t, models.Identity{UserID: 42, MobileNumber: "5551234"}, identity)
}

func TestAuth_RejectionDoesNotLeakCause(t *testing.T) {
	rr := executeAuth(newHandlerWithAuthService(stubTokenParser()), "Bearer expired", http.NotFoundHandler())

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, MsgForbidden, body.Error)
	assert.NotContains(t, rr.Body.String(), service.ErrTokenIsExpiredOrInvalid.Error())
}

func TestAuth_ConcurrentRequests(t *testing.T) {
	h := newHandlerWithAuthService(stubTokenParser())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	const n = 50
	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			header := "Bearer " + validTestToken
			if i%2 == 1 {
				header = "Bearer forged"
			}
			codes[i] = executeAuth(h, header, next).Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if i%2 == 1 {
			assert.Equal(t, http.StatusForbidden, code)
		} else {
			assert.Equal(t, http.StatusOK, code)
		}
	}
}
