package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"chitraboard/internal/models"
	"chitraboard/internal/security"
	"chitraboard/internal/service"
)

// AuthHandler handles authentication and account management requests
type AuthHandler struct {
	authService  *service.AuthService
	emailService *service.EmailService
	csrf         *security.CSRFGenerator
	googleOAuth  *oauth2.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService, csrf *security.CSRFGenerator, googleOAuth *oauth2.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		emailService: emailService,
		csrf:         csrf,
		googleOAuth:  googleOAuth,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Register creates a therapist or parent account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.authService.Register(req.Username, req.Password, req.Email, req.FullName, models.Role(req.Role))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if h.emailService.IsEnabled() && profile.Email != "" {
		if err := h.emailService.SendWelcomeEmail(r.Context(), profile.Email, profile.FullName); err != nil {
			// Registration already succeeded; the welcome mail is not
			// worth failing it over
			respondJSON(w, http.StatusCreated, profile)
			return
		}
	}

	respondJSON(w, http.StatusCreated, profile)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Profile   *models.Profile `json:"profile"`
	CSRFToken string          `json:"csrf_token"`
}

// Login authenticates by username or email and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, profile, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	csrfToken, err := h.csrf.GenerateToken(session.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusOK, loginResponse{Profile: profile, CSRFToken: csrfToken})
}

// Logout ends the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil && !errors.Is(err, service.ErrSessionNotFound) {
			respondServiceError(w, err)
			return
		}
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the signed-in profile with a fresh CSRF token
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		respondError(w, http.StatusUnauthorized, ErrUnauthorized)
		return
	}
	csrfToken, err := h.csrf.GenerateToken(cookie.Value)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{Profile: profile, CSRFToken: csrfToken})
}

type updateProfileRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// UpdateProfile updates the signed-in account's email and full name
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.authService.UpdateOwnProfile(GetProfileFromContext(r.Context()), req.Email, req.FullName)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

type createChildRequest struct {
	FullName string `json:"full_name"`
}

// CreateChild creates a child account with generated credentials. The
// plaintext password appears in this response and nowhere else.
func (h *AuthHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	var req createChildRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	child, err := h.authService.CreateChildAccount(GetProfileFromContext(r.Context()), req.FullName)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, child)
}

// ListProfiles lists accounts, optionally filtered by role
func (h *AuthHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	actor := GetProfileFromContext(r.Context())

	var profiles []models.Profile
	var err error
	if role := r.URL.Query().Get("role"); role != "" {
		if !models.ValidRole(role) {
			respondError(w, http.StatusBadRequest, "Unknown role")
			return
		}
		profiles, err = h.authService.ListProfilesByRole(actor, models.Role(role))
	} else {
		profiles, err = h.authService.ListProfiles(actor)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profiles)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// ChangeRole changes another account's role (admin only)
func (h *AuthHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req changeRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	targetID := r.PathValue("id")
	if err := h.authService.ChangeRole(GetProfileFromContext(r.Context()), targetID, models.Role(req.Role)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "role updated"})
}

// DeleteProfile removes an account (admin only)
func (h *AuthHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	targetID := r.PathValue("id")
	if err := h.authService.DeleteProfile(GetProfileFromContext(r.Context()), targetID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "profile deleted"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword requests a password reset email. The response never
// reveals whether the address exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), h.emailService, req.Email); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "if that address has an account, a reset link is on the way",
	})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword sets a new password using a reset token
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "password reset"})
}

// StartGoogleOAuth redirects to Google's consent screen
func (h *AuthHandler) StartGoogleOAuth(w http.ResponseWriter, r *http.Request) {
	if h.googleOAuth == nil || h.googleOAuth.ClientID == "" {
		respondError(w, http.StatusBadRequest, "Google sign-in is not configured")
		return
	}

	state := security.GenerateSessionID()
	http.SetCookie(w, security.CreateSessionCookie(r, "oauth_state", state, time.Now().Add(10*time.Minute)))

	authURL := h.googleOAuth.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// GoogleOAuthCallback finishes the Google sign-in flow
func (h *AuthHandler) GoogleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	if h.googleOAuth == nil || h.googleOAuth.ClientID == "" {
		respondError(w, http.StatusBadRequest, "Google sign-in is not configured")
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		respondError(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, "oauth_state"))
	if code == "" {
		respondError(w, http.StatusBadRequest, "Missing authorization code")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	token, err := h.googleOAuth.Exchange(ctx, code)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to exchange OAuth code")
		return
	}

	email, name, err := fetchGoogleUser(ctx, token)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, _, err := h.authService.OAuthLogin("google", email, name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func fetchGoogleUser(ctx context.Context, token *oauth2.Token) (email, name string, err error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch Google user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("failed to fetch Google user info")
	}

	var payload struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", "", fmt.Errorf("failed to parse Google user info")
	}
	if payload.Email == "" {
		return "", "", fmt.Errorf("Google account has no email")
	}
	return payload.Email, payload.Name, nil
}
