package controllers

import (
	"encoding/json"
	"net/http"

	"tasknest/app/middleware"
	"tasknest/app/services"
	"tasknest/app/session"
)

// AuthController handles HTTP requests for registration and sessions.
type AuthController struct {
	Auth     *services.AuthService
	Sessions *session.Manager
}

// NewAuthController creates a new AuthController.
func NewAuthController(auth *services.AuthService, sessions *session.Manager) *AuthController {
	return &AuthController{Auth: auth, Sessions: sessions}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/register. A successful registration also
// logs the new user in.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := c.Auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := c.Sessions.Login(w, r, user.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Registration successful",
		"user":    user,
	})
}

// Login handles POST /api/login. Username may also be an email address.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := c.Auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := c.Sessions.Login(w, r, user.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user,
	})
}

// Logout handles POST /api/logout.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	_, loggedIn := c.Sessions.UserID(r)
	if err := c.Sessions.Logout(w, r); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear session")
		return
	}
	w.Header().Set("Clear-Site-Data", `"cookies"`)
	msg := "Logout successful"
	if !loggedIn {
		msg = "User was not logged in"
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// CheckAuth handles GET /api/check_auth; it never requires a session.
func (c *AuthController) CheckAuth(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.Sessions.UserID(r)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	user, err := c.Auth.GetUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true, "user": user})
}

// CurrentUser handles GET /api/current_user (session required).
func (c *AuthController) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	user, err := c.Auth.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
