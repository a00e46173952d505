package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/service"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusForbidden,
	service.ErrNoProfilePicture:        http.StatusNotFound,

	store.ErrMobileNumberAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:            http.StatusNotFound,
	store.ErrPictureNotFound:           http.StatusNotFound,
}

var errorMessageMap = map[error]string{
	service.ErrInvalidCredentials:      MsgInvalidCredentials,
	service.ErrTokenIsExpiredOrInvalid: MsgForbidden,
	service.ErrNoProfilePicture:        MsgPictureNotFound,

	store.ErrMobileNumberAlreadyExists: MsgMobileNumberTaken,
	store.ErrNoUserWasFound:            MsgUserNotFound,
	store.ErrPictureNotFound:           MsgPictureNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the client-facing message for err. Validation
// failures report their reason; 5xx errors report fallback only.
func messageFromError(err error, fallback string) string {
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Reason
	}

	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}
	return fallback
}

// writeServiceError logs err and answers with the status and message mapped
// from it.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(fallback)
		utils.WriteError(w, fallback, status)
		return
	}

	message := messageFromError(err, fallback)
	log.Warn().Err(err).Int("status", status).Msg(message)
	utils.WriteError(w, message, status)
}
