package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if status, err := h.parseForm(w, r); err != nil {
		log.Err(err).Msg("invalid registration form was passed")
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

	request := models.RegisterRequest{
		Password:       r.PostFormValue("password"),
		ProfilePicture: picture,
	}
	request.FirstName, _ = formValue(r, "firstName")
	request.LastName, _ = formValue(r, "lastName")
	request.MobileNumber, _ = formValue(r, "mobileNumber")

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, request)
	if err != nil {
		writeServiceError(w, r, err, MsgFailedToRegister)
		return
	}

	log.Info().Int64("id", registeredUser.ID).Msg("user registered")

	utils.WriteJSON(w, models.RegisterResponse{
		Message: MsgUserCreated,
		User:    registeredUser,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, request)
	if err != nil {
		writeServiceError(w, r, err, MsgFailedToLogin)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		writeServiceError(w, r, err, MsgFailedToCreateToken)
		return
	}

	log.Debug().Int64("id", foundUser.ID).Msg("user successfully logged in")

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	utils.WriteJSON(w, models.LoginResponse{
		Message: MsgUserLoggedIn,
		Token:   token.SignedString,
		User:    foundUser,
	}, http.StatusOK)
}
