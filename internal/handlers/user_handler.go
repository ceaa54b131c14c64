package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentloBack/internal/models"
	"rentloBack/internal/repositories"
	"rentloBack/internal/services"
	"rentloBack/utils"
)

type UserHandler struct {
	Service *services.UserService
	Storage *utils.S3Storage
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Handle          string `json:"handle"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
		FullName        string `json:"fullName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if errs := validateSignup(body.Handle, body.Email, body.Password, body.ConfirmPassword); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	user := models.User{
		Handle:   body.Handle,
		Email:    body.Email,
		Password: body.Password,
		FullName: body.FullName,
	}
	err := h.Service.SignUp(r.Context(), user)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully"})
	case errors.Is(err, services.ErrDuplicateHandle):
		writeJSON(w, http.StatusBadRequest, map[string]string{"handle": "this User ID has already taken"})
	case errors.Is(err, services.ErrDuplicateEmail):
		writeJSON(w, http.StatusBadRequest, map[string]string{"email": "Email is already in use"})
	default:
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if errs := validateLogin(body.Email, body.Password); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	tokens, err := h.Service.SignIn(r.Context(), body.Email, body.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, tokens)
	case errors.Is(err, services.ErrWrongPassword):
		writeJSON(w, http.StatusForbidden, map[string]string{"general": "Wrong credentials, please try again"})
	default:
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}

// GetAuthenticatedUser returns the calling user's own profile.
func (h *UserHandler) GetAuthenticatedUser(w http.ResponseWriter, r *http.Request) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.Service.GetUserByHandle(r.Context(), handle)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetUserDetails returns another user's public profile and their
// available posts.
func (h *UserHandler) GetUserDetails(w http.ResponseWriter, r *http.Request) {
	handle := r.URL.Query().Get(":handle")
	if handle == "" {
		writeError(w, http.StatusBadRequest, "Invalid handle")
		return
	}

	user, posts, err := h.Service.GetUserDetails(r.Context(), handle)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"posts": posts,
	})
}

func (h *UserHandler) UpdateUserDetails(w http.ResponseWriter, r *http.Request) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var details models.User
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if errs := validateUserDetails(&details); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	err := h.Service.UpdateDetails(r.Context(), handle, details)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Details updated successfully"})
	case errors.Is(err, services.ErrUserLocked):
		writeAction(w, "uneditable")
	default:
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}

func (h *UserHandler) UpdatePushToken(w http.ResponseWriter, r *http.Request) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.Service.UpdatePushToken(r.Context(), handle, body.Token); err != nil {
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Push token updated successfully"})
}

// UploadUserImage replaces the profile image and reports the new URL.
func (h *UserHandler) UploadUserImage(w http.ResponseWriter, r *http.Request) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	url, ok := uploadImage(w, r, h.Storage, "users")
	if !ok {
		return
	}
	if err := h.Service.UpdateProfileImage(r.Context(), handle, url); err != nil {
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
}
