package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"chitraboard/internal/authz"
	"chitraboard/internal/credentials"
	"chitraboard/internal/models"
	"chitraboard/internal/repository"
	"chitraboard/internal/security"
	"chitraboard/internal/validation"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrForbidden          = errors.New("operation not permitted")
	ErrProfileNotFound    = errors.New("profile not found")
)

// AuthService handles authentication and account business logic
type AuthService struct {
	profileRepo     *repository.ProfileRepository
	sessionDuration time.Duration
	emailDomain     string
}

// NewAuthService creates a new auth service. emailDomain is the domain
// used for synthetic addresses when an account has no real email.
func NewAuthService(profileRepo *repository.ProfileRepository, sessionDuration time.Duration, emailDomain string) *AuthService {
	return &AuthService{
		profileRepo:     profileRepo,
		sessionDuration: sessionDuration,
		emailDomain:     emailDomain,
	}
}

// syntheticEmail builds the placeholder address for accounts registered
// with only a username.
func (s *AuthService) syntheticEmail(username string) string {
	return username + "@" + s.emailDomain
}

// Register creates a new adult account (therapist or parent). The first
// account in the system becomes admin regardless of the requested role.
func (s *AuthService) Register(username, password, email, fullName string, role models.Role) (*models.Profile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidateFullName(fullName); err != nil {
		return nil, err
	}
	if role != models.RoleTherapist && role != models.RoleParent {
		return nil, validation.Error{Field: "role", Message: "self-registration is limited to therapist and parent accounts"}
	}

	if existing, err := s.profileRepo.GetProfileByUsername(username); err != nil {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}

	if email == "" {
		email = s.syntheticEmail(username)
	} else if existing, err := s.profileRepo.GetProfileByEmail(email); err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile, err := s.profileRepo.CreateProfile(username, email, fullName, role, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// ChildAccount is a freshly created child profile together with its
// generated plaintext password, shown once to the therapist.
type ChildAccount struct {
	Profile  *models.Profile `json:"profile"`
	Password string          `json:"password"`
}

// CreateChildAccount creates a child profile with generated
// credentials. Only therapists and admins may do this.
func (s *AuthService) CreateChildAccount(actor *models.Profile, fullName string) (*ChildAccount, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionManageUsers) {
		return nil, ErrForbidden
	}
	if err := validation.ValidateFullName(fullName); err != nil {
		return nil, err
	}

	// Retry on the rare username collision
	var username string
	for attempt := 0; attempt < 5; attempt++ {
		candidate, err := credentials.GenerateChildUsername()
		if err != nil {
			return nil, fmt.Errorf("failed to generate username: %w", err)
		}
		existing, err := s.profileRepo.GetProfileByUsername(candidate)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if existing == nil {
			username = candidate
			break
		}
	}
	if username == "" {
		return nil, errors.New("could not find a free username")
	}

	password, err := credentials.GenerateChildPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile, err := s.profileRepo.CreateProfile(username, s.syntheticEmail(username), fullName, models.RoleChild, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create child profile: %w", err)
	}

	return &ChildAccount{Profile: profile, Password: password}, nil
}

// Login authenticates by username (or email) and creates a session
func (s *AuthService) Login(username, password string) (*models.Session, *models.Profile, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	profile, err := s.profileRepo.GetProfileByUsername(username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil && strings.Contains(username, "@") {
		profile, err = s.profileRepo.GetProfileByEmail(username)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get profile: %w", err)
		}
	}
	if profile == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, profile.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	return s.createSession(profile)
}

func (s *AuthService) createSession(profile *models.Profile) (*models.Session, *models.Profile, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.profileRepo.CreateSession(sessionID, profile.ID, expiresAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, profile, nil
}

// ValidateSession checks a session and returns the associated profile
func (s *AuthService) ValidateSession(sessionID string) (*models.Profile, error) {
	session, err := s.profileRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.IsExpired() {
		_ = s.profileRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	profile, err := s.profileRepo.GetProfileByID(session.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrSessionNotFound
	}
	return profile, nil
}

// Logout invalidates a session
func (s *AuthService) Logout(sessionID string) error {
	if err := s.profileRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	if err := s.profileRepo.DeleteExpiredSessions(); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return nil
}

// OAuthLogin signs in (or creates) an adult account from a verified
// OAuth identity. Accounts are matched by email; new accounts default
// to the therapist role.
func (s *AuthService) OAuthLogin(provider, email, name string) (*models.Session, *models.Profile, error) {
	if provider == "" || email == "" {
		return nil, nil, errors.New("missing oauth provider information")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	profile, err := s.profileRepo.GetProfileByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lookup oauth profile: %w", err)
	}

	if profile == nil {
		username := strings.Split(email, "@")[0]
		username = strings.ToLower(strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
				return r
			case r >= 'A' && r <= 'Z':
				return r + ('a' - 'A')
			default:
				return '-'
			}
		}, username))
		if name == "" {
			name = username
		}

		// OAuth accounts get a random local password; sign-in stays
		// with the provider
		randomHash, err := security.HashPassword(security.GenerateSessionID())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate oauth password hash: %w", err)
		}

		// Collisions on the derived username get a numeric suffix
		candidate := username
		for attempt := 2; ; attempt++ {
			existing, err := s.profileRepo.GetProfileByUsername(candidate)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to check username: %w", err)
			}
			if existing == nil {
				break
			}
			candidate = fmt.Sprintf("%s%d", username, attempt)
		}

		profile, err = s.profileRepo.CreateProfile(candidate, email, name, models.RoleTherapist, randomHash)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create oauth profile: %w", err)
		}
		log.Printf("Created %s account for oauth user %s", profile.Role, candidate)
	}

	return s.createSession(profile)
}

// ChangeRole changes another account's role. Admin only, and never on
// the admin's own account.
func (s *AuthService) ChangeRole(actor *models.Profile, targetID string, newRole models.Role) error {
	if !authz.CanChangeRole(actor, targetID) {
		return ErrForbidden
	}
	if !models.ValidRole(string(newRole)) {
		return validation.Error{Field: "role", Message: "unknown role"}
	}

	target, err := s.profileRepo.GetProfileByID(targetID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	if target == nil {
		return ErrProfileNotFound
	}

	if err := s.profileRepo.UpdateRole(targetID, newRole); err != nil {
		return fmt.Errorf("failed to change role: %w", err)
	}
	return nil
}

// ListProfiles returns every account. Admin or therapist only;
// therapists use it to pick children and parents for linking.
func (s *AuthService) ListProfiles(actor *models.Profile) ([]models.Profile, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionManageUsers) {
		return nil, ErrForbidden
	}
	profiles, err := s.profileRepo.GetAllProfiles()
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// ListProfilesByRole returns every account with the given role
func (s *AuthService) ListProfilesByRole(actor *models.Profile, role models.Role) ([]models.Profile, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionManageUsers) {
		return nil, ErrForbidden
	}
	profiles, err := s.profileRepo.GetProfilesByRole(role)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// UpdateOwnProfile updates the actor's email and full name
func (s *AuthService) UpdateOwnProfile(actor *models.Profile, email, fullName string) (*models.Profile, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidateFullName(fullName); err != nil {
		return nil, err
	}
	if email == "" {
		email = s.syntheticEmail(actor.Username)
	} else if existing, err := s.profileRepo.GetProfileByEmail(email); err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	} else if existing != nil && existing.ID != actor.ID {
		return nil, ErrEmailTaken
	}

	if err := s.profileRepo.UpdateProfile(actor.ID, email, fullName); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	updated, err := s.profileRepo.GetProfileByID(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload profile: %w", err)
	}
	return updated, nil
}

// DeleteProfile removes an account. Admin only, never their own.
func (s *AuthService) DeleteProfile(actor *models.Profile, targetID string) error {
	if actor == nil || actor.Role != models.RoleAdmin || actor.ID == targetID {
		return ErrForbidden
	}
	target, err := s.profileRepo.GetProfileByID(targetID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	if target == nil {
		return ErrProfileNotFound
	}
	if err := s.profileRepo.DeleteProfile(targetID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// RequestPasswordReset creates a reset token and emails the reset link.
// A missing account is not reported to the caller.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailService *EmailService, email string) error {
	profile, err := s.profileRepo.GetProfileByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil
	}

	// Synthetic addresses cannot receive mail
	if strings.HasSuffix(profile.Email, "@"+s.emailDomain) {
		return nil
	}

	token, err := security.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	expiresAt := time.Now().Add(1 * time.Hour)
	if err := s.profileRepo.CreateResetToken(token, profile.ID, expiresAt); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if emailService != nil && emailService.IsEnabled() {
		if err := emailService.SendPasswordResetEmail(ctx, profile.Email, profile.FullName, token); err != nil {
			return fmt.Errorf("failed to send reset email: %w", err)
		}
	}
	return nil
}

// ResetPassword resets a password using a valid token
func (s *AuthService) ResetPassword(token, newPassword string) error {
	resetToken, err := s.profileRepo.GetResetToken(token)
	if err != nil {
		return fmt.Errorf("failed to get reset token: %w", err)
	}
	if resetToken == nil {
		return errors.New("invalid or expired reset token")
	}
	if resetToken.Used {
		return errors.New("this reset link has already been used")
	}
	if resetToken.IsExpired() {
		return errors.New("this reset link has expired")
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}
	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.profileRepo.UpdatePassword(resetToken.ProfileID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.profileRepo.MarkResetTokenUsed(token); err != nil {
		return fmt.Errorf("failed to mark token as used: %w", err)
	}
	return nil
}
