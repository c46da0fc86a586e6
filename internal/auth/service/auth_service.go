package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	auditdomain "blog-platform/backend/internal/audit/domain"
	"blog-platform/backend/internal/auth/session"
	"blog-platform/backend/internal/profile"
	roledomain "blog-platform/backend/internal/role/domain"
	"blog-platform/backend/internal/security"
	userdomain "blog-platform/backend/internal/user/domain"
	userrepo "blog-platform/backend/internal/user/repository"
)

// Sentinel errors for the auth service; the boundary maps them to status codes.
// Unknown email and wrong password both collapse to ErrInvalidCredentials so
// callers cannot enumerate accounts; the same collapse applies to every
// refresh-token failure (bad signature, expired, rotated, revoked).
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserDisabled           = errors.New("user disabled")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidRefreshToken    = errors.New("invalid or expired refresh token")
	ErrDefaultRoleMissing     = errors.New("default role not found; run seeds")
	ErrConfigurationMissing   = errors.New("auth configuration missing")
)

// UserView is the sanitized identity returned by Login and Register.
// Credential material is never part of this shape.
type UserView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// AuthResult holds the outcome of Login, Register (tokens + user view), or
// Refresh (tokens only).
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *UserView
}

// LogoutResult is the idempotent logout acknowledgement.
type LogoutResult struct {
	OK bool `json:"ok"`
}

// RoleRepo is the minimal role lookup needed by the auth service.
type RoleRepo interface {
	GetByCode(ctx context.Context, code roledomain.Code) (*roledomain.Role, error)
	GetByName(ctx context.Context, name string) (*roledomain.Role, error)
}

// ProfileService resolves sanitized profile views for Me.
type ProfileService interface {
	GetSanitizedProfile(ctx context.Context, id string) (*profile.View, error)
}

// AuditLogger records auth lifecycle events, best-effort (satisfied by
// *audit.Logger). A nil logger disables auditing.
type AuditLogger interface {
	LogEvent(ctx context.Context, userID, action, metadata string)
}

// AuthService implements login, register, refresh rotation, logout, and me.
type AuthService struct {
	users   userrepo.Repository
	roles   RoleRepo
	issuer  *session.Issuer
	hasher  *security.Hasher
	tokens  *security.TokenProvider
	profile ProfileService
	auditor AuditLogger
}

// NewAuthService returns an AuthService with the given dependencies.
// The token provider is required: serving auth without signing secrets is a
// configuration defect, caught here at construction rather than per request.
// auditor may be nil (auditing disabled).
func NewAuthService(
	users userrepo.Repository,
	roles RoleRepo,
	issuer *session.Issuer,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	profileSvc ProfileService,
	auditor AuditLogger,
) (*AuthService, error) {
	if tokens == nil {
		return nil, ErrConfigurationMissing
	}
	if users == nil || roles == nil || issuer == nil || hasher == nil {
		return nil, errors.New("auth service: missing dependencies")
	}
	return &AuthService{
		users:   users,
		roles:   roles,
		issuer:  issuer,
		hasher:  hasher,
		tokens:  tokens,
		profile: profileSvc,
		auditor: auditor,
	}, nil
}

// Login authenticates with email/password and returns a token pair plus the
// sanitized user view. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	// Password hash is excluded from the default projection; request it here.
	user, err := s.users.GetByEmail(ctx, email, true)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.logEvent(ctx, "", auditdomain.ActionLoginFailure, email)
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		s.logEvent(ctx, user.ID, auditdomain.ActionLoginFailure, email)
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuer.Issue(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, user.ID, auditdomain.ActionLoginSuccess, email)
	return &AuthResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         viewOf(user),
	}, nil
}

// Register creates a user with the default role and returns a token pair plus
// the sanitized user view. The store-level unique constraint on email is the
// arbiter for concurrent registrations; its violation surfaces as
// ErrEmailAlreadyRegistered, same as the pre-check.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyRegistered
	}

	role, err := s.defaultRole(ctx)
	if err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
		Role:         *role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, ErrInvalidInput
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	pair, err := s.issuer.Issue(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, user.ID, auditdomain.ActionRegister, email)
	return &AuthResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         viewOf(user),
	}, nil
}

// Refresh validates the presented refresh token against both its signature and
// the stored server-side state, then rotates: a brand-new pair is issued and
// the old refresh token becomes unusable regardless of its remaining TTL.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if s.tokens == nil {
		return nil, ErrConfigurationMissing
	}
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}
	userID, _, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidRefreshToken
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}
	// Server-side revocation check, independent of the token's embedded expiry:
	// logout and rotation invalidate tokens that have not cryptographically expired.
	now := time.Now().UTC()
	if user.RefreshTokenExpiresAt == nil || !user.RefreshTokenExpiresAt.After(now) {
		return nil, ErrInvalidRefreshToken
	}
	if user.RefreshTokenHash == "" {
		return nil, ErrInvalidRefreshToken
	}
	// A rotated-out token fails here too: rotation overwrote the stored digest.
	if !s.hasher.CompareToken(user.RefreshTokenHash, refreshToken) {
		return nil, ErrInvalidRefreshToken
	}

	pair, err := s.issuer.Issue(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, user.ID, auditdomain.ActionRefresh, "")
	return &AuthResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout unconditionally clears the stored refresh state. Idempotent: a second
// call is not an error. Previously issued access tokens stay valid until their
// own expiry; only the refresh slot is revoked.
func (s *AuthService) Logout(ctx context.Context, userID string) (*LogoutResult, error) {
	if _, err := s.users.UpdateRefreshState(ctx, userID, nil, nil); err != nil {
		return nil, err
	}
	s.logEvent(ctx, userID, auditdomain.ActionLogout, "")
	return &LogoutResult{OK: true}, nil
}

// Me returns the sanitized profile for the user, delegating to the profile
// collaborator. Returns profile.ErrNotFound if the user no longer exists.
func (s *AuthService) Me(ctx context.Context, userID string) (*profile.View, error) {
	return s.profile.GetSanitizedProfile(ctx, userID)
}

// defaultRole resolves the registration role by stable code, falling back to a
// lookup by display name for datasets seeded before codes existed. Absence is
// a deployment defect (missing seed), not a user error.
func (s *AuthService) defaultRole(ctx context.Context) (*roledomain.Role, error) {
	role, err := s.roles.GetByCode(ctx, roledomain.DefaultCode)
	if err != nil {
		return nil, err
	}
	if role == nil {
		role, err = s.roles.GetByName(ctx, "blogger")
		if err != nil {
			return nil, err
		}
	}
	if role == nil || role.Code == "" {
		return nil, ErrDefaultRoleMissing
	}
	return role, nil
}

func (s *AuthService) logEvent(ctx context.Context, userID, action, metadata string) {
	if s.auditor == nil {
		return
	}
	s.auditor.LogEvent(ctx, userID, action, metadata)
}

func viewOf(u *userdomain.User) *UserView {
	return &UserView{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role.Code),
		IsActive: u.IsActive,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

const simpleEmail = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`

var emailRe = regexp.MustCompile(simpleEmail)

func validateEmail(email string) error {
	if email == "" || !emailRe.MatchString(email) {
		return ErrInvalidInput
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidInput
	}
	return nil
}
