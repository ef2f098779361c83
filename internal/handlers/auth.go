package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"landing-api/internal/api"
	"landing-api/internal/auth"
	"landing-api/internal/validate"
)

type AuthHandler struct {
	store    Store
	sessions *auth.Sessions
	log      *zap.Logger
}

func NewAuthHandler(store Store, sessions *auth.Sessions, log *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, sessions: sessions, log: log}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Login verifies credentials and sets the session cookie. Failed
// attempts issue no cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, validate.CodeValidationError, "Username and password are required")
		return
	}
	if req.Username == "" || req.Password == "" {
		api.Error(w, http.StatusBadRequest, validate.CodeValidationError, "Username and password are required")
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		h.log.Error("login lookup failed", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, api.CodeInternalError, "Internal server error. Please try again later.")
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		api.Error(w, http.StatusUnauthorized, api.CodeInvalidCredentials, "Invalid username or password")
		return
	}

	token, err := h.sessions.Issue(user.ID, user.Username)
	if err != nil {
		h.log.Error("session issue failed", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, api.CodeInternalError, "Internal server error. Please try again later.")
		return
	}

	h.sessions.SetCookie(w, token)
	api.OK(w, map[string]sessionUser{
		"user": {ID: user.ID, Username: user.Username},
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	api.OK(w, map[string]string{"message": "Signed out successfully"})
}

// Session returns the current session user, or 401 when anonymous.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.sessions.FromRequest(r)
	if !ok {
		api.Error(w, http.StatusUnauthorized, api.CodeUnauthorized, "Authentication required")
		return
	}
	api.OK(w, map[string]sessionUser{
		"user": {ID: claims.UserID, Username: claims.Username},
	})
}
