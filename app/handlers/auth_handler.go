package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mattertouch/storefront/app/middlewares"
	"github.com/mattertouch/storefront/app/services"
	"github.com/mattertouch/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	authSvc      *services.AuthService
	sessionStore sessions.SessionStore
	validator    *validator.Validate
}

func NewAuthHandler(r *render.Render, authSvc *services.AuthService, sessionStore sessions.SessionStore, validator *validator.Validate) *AuthHandler {
	return &AuthHandler{
		render:       r,
		authSvc:      authSvc,
		sessionStore: sessionStore,
		validator:    validator,
	}
}

type RegisterPayload struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     *string `json:"name"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		writeBadRequest(h.render, w, "email and password are required")
		return
	}

	user, err := h.authSvc.Register(r.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		writeServiceError(h.render, w, "AuthHandler.Register", err)
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, map[string]string{
		"message": "registration successful",
		"userId":  user.ID,
	})
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		writeBadRequest(h.render, w, "email and password are required")
		return
	}

	user, err := h.authSvc.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeServiceError(h.render, w, "AuthHandler.Login", err)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("AuthHandler.Login: error setting session for user %s: %v", user.ID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("AuthHandler.Logout: error clearing session: %v", err)
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

type VerifyPasswordPayload struct {
	Password string `json:"password" validate:"required"`
}

// VerifyPassword re-checks the current session's password before destructive
// admin actions.
func (h *AuthHandler) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.IdentityFrom(r.Context())
	if !ok {
		_ = h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var payload VerifyPasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		writeBadRequest(h.render, w, "password is required")
		return
	}

	if err := h.authSvc.VerifyPassword(r.Context(), identity.UserID, payload.Password); err != nil {
		writeServiceError(h.render, w, "AuthHandler.VerifyPassword", err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]bool{"valid": true})
}
