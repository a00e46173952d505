package http

import (
	"net/http"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/models"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It expects "Authorization: Bearer <token>", validates the token via
// [service.AuthService.ParseToken] and, on success, stores the token's
// identity in the request context (see [utils.WithClaims]) before
// delegating to the next handler. No database lookup is made: a token stays
// valid until it expires.
//
// Every rejection (missing or malformed header, bad signature, expired
// token, wrong issuer) answers 403 with {"error":"Forbidden"}; the cause is
// logged only.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Msg("request rejected")
			utils.WriteError(w, MsgForbidden, http.StatusForbidden)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Warn().Err(err).Msg("request rejected")
			utils.WriteError(w, MsgForbidden, http.StatusForbidden)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("request rejected")
			utils.WriteError(w, MsgForbidden, http.StatusForbidden)
			return
		}

		ctx = utils.WithClaims(ctx, models.Identity{
			UserID:       token.UserID,
			MobileNumber: token.MobileNumber,
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
