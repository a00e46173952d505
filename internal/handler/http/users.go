package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/service"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/internal/validators"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		logger.FromRequest(r).Error().Err(ErrNoIdentity).Send()
		utils.WriteError(w, MsgForbidden, http.StatusForbidden)
		return
	}

	user, err := h.services.UserService.GetUser(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err, MsgFailedToGetUser)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) getCurrentUserPicture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		logger.FromRequest(r).Error().Err(ErrNoIdentity).Send()
		utils.WriteError(w, MsgForbidden, http.StatusForbidden)
		return
	}

	picture, err := h.services.UserService.GetProfilePicture(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err, MsgFailedToGetPicture)
		return
	}

	writePicture(w, picture)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err, MsgFailedToListUsers)
		return
	}

	if users == nil {
		users = []models.User{}
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := userIDFromPath(r)
	if err != nil {
		writeServiceError(w, r, err, MsgFailedToUpdateUser)
		return
	}

	if status, err := h.parseForm(w, r); err != nil {
		log.Err(err).Msg("invalid update form was passed")
		if status == http.StatusRequestEntityTooLarge {
			utils.WriteError(w, MsgBodyTooLarge, status)
			return
		}
		utils.WriteError(w, MsgInvalidForm, status)
		return
	}

	picture, err := readPicture(r)
	if err != nil {
		log.Err(err).Msg("invalid profile picture was passed")
		utils.WriteError(w, MsgInvalidForm, http.StatusBadRequest)
		return
	}

	update := models.UserUpdate{ID: id, ProfilePicture: picture}
	if firstName, ok := formValue(r, "firstName"); ok {
		update.FirstName = &firstName
	}
	if lastName, ok := formValue(r, "lastName"); ok {
		update.LastName = &lastName
	}
	if mobileNumber, ok := formValue(r, "mobileNumber"); ok {
		update.MobileNumber = &mobileNumber
	}
	if values, ok := r.PostForm["password"]; ok && len(values) > 0 {
		update.Password = &values[0]
	}

	if err = h.services.UserService.UpdateUser(ctx, update); err != nil {
		writeServiceError(w, r, err, MsgFailedToUpdateUser)
		return
	}

	log.Info().Int64("id", id).Msg("user updated")
	utils.WriteMessage(w, MsgUserUpdated, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := userIDFromPath(r)
	if err != nil {
		writeServiceError(w, r, err, MsgFailedToDeleteUser)
		return
	}

	if err = h.services.UserService.DeleteUser(ctx, id); err != nil {
		writeServiceError(w, r, err, MsgFailedToDeleteUser)
		return
	}

	logger.FromRequest(r).Info().Int64("id", id).Msg("user deleted")
	utils.WriteMessage(w, MsgUserDeleted, http.StatusOK)
}

func (h *Handler) getPicture(w http.ResponseWriter, r *http.Request) {
	picture, err := h.services.UserService.GetPicture(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeServiceError(w, r, err, MsgFailedToGetPicture)
		return
	}

	writePicture(w, picture)
}

// userIDFromPath parses the {id} URL parameter as a positive int64.
func userIDFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided,
			&validators.ValidationError{Field: validators.FieldID, Reason: validators.ReasonInvalidID})
	}

	return id, nil
}
