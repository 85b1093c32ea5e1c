package http

import (
	"encoding/json"
	"net/http"

	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"github.com/Taraansh/e-commerce/internal/platform/logger"
	"github.com/Taraansh/e-commerce/internal/service"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	users *service.UserService
	log   logger.Logger
}

func NewUserHandler(users *service.UserService, log logger.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errBadRequest)
		return
	}
	result, err := h.users.Register(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "user created successfully", result)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errBadRequest)
		return
	}
	result, err := h.users.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "login successful", result)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if err := h.users.Logout(r.Context(), user.ID.Hex()); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "logout successful", nil)
}

func (h *UserHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Otp   string `json:"otp"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := h.users.VerifyEmail(r.Context(), input.Otp, input.Email); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "email verified successfully, you can login now", nil)
}

func (h *UserHandler) ResendOtp(w http.ResponseWriter, r *http.Request) {
	result, err := h.users.ResendOtp(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "otp sent to your registered email", result)
}

func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	result, err := h.users.ForgotPassword(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "new password sent to your registered email", result)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	caller := userFromContext(r.Context())
	if caller.Type != entity.UserTypeAdmin && caller.ID.Hex() != id {
		writeError(w, service.ErrForbidden)
		return
	}
	result, err := h.users.UpdateProfile(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "profile updated successfully", result)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	userType := entity.UserType(r.URL.Query().Get("type"))
	result, err := h.users.ListUsers(r.Context(), userType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "users fetched successfully", result)
}
