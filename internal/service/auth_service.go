package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/mail"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/security"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AuthService handles registration, login and password lifecycle.
type AuthService struct {
	profiles   repository.ProfileRepository
	resets     repository.PasswordResetRepository
	tokens     *auth.TokenManager
	limiter    security.LoginLimiter
	mailer     *mail.Mailer
	audit      *AuditRecorder
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	ProfileRepo repository.ProfileRepository
	ResetRepo   repository.PasswordResetRepository
	Tokens      *auth.TokenManager
	Limiter     security.LoginLimiter
	Mailer      *mail.Mailer
	Audit       *AuditRecorder
	Logger      *zap.Logger
}

// LoginResult carries a signed session token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Profile   *domain.Profile
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	cost := cfg.BcryptCost
	if cost < 10 {
		cost = 12
	}
	resetTTL := time.Duration(cfg.PasswordResetTTLMinutes) * time.Minute
	if resetTTL <= 0 {
		resetTTL = 30 * time.Minute
	}
	return &AuthService{
		profiles:   deps.ProfileRepo,
		resets:     deps.ResetRepo,
		tokens:     deps.Tokens,
		limiter:    deps.Limiter,
		mailer:     deps.Mailer,
		audit:      deps.Audit,
		logger:     deps.Logger,
		bcryptCost: cost,
		resetTTL:   resetTTL,
	}
}

// RegisterRequester self-registers a requester account. Staff accounts are
// provisioned by administrators instead.
func (s *AuthService) RegisterRequester(ctx context.Context, name, email, password string, locationID *string) (*domain.Profile, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.NewValidationError("email is required", nil)
	}
	if len(password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	if existing, err := s.profiles.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	profile := &domain.Profile{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleRequester,
		LocationID:   locationID,
		Active:       true,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "profile", profile.ID, "registered", &profile.ID, map[string]any{
		"role": profile.Role,
	})
	return profile, nil
}

// Login verifies credentials and issues a session token. The response for a
// wrong password, an unknown email, an inactive account and a locked account
// is identical so none of those states leaks.
func (s *AuthService) Login(ctx context.Context, email, password, clientIP string) (*LoginResult, error) {
	email = normalizeEmail(email)

	allowed, err := s.limiter.Allow(ctx, "ip:"+clientIP)
	if err != nil {
		s.logger.Warn("rate limiter unavailable", zap.Error(err))
	} else if !allowed {
		return nil, apperrors.NewTooManyRequests("too many login attempts, try again later")
	}

	locked, err := s.limiter.IsLocked(ctx, "account:"+email)
	if err != nil {
		s.logger.Warn("rate limiter unavailable", zap.Error(err))
		locked = false
	}

	profile, lookupErr := s.profiles.GetByEmail(ctx, email)
	if locked || lookupErr != nil || profile == nil || !profile.Active {
		if lookupErr != nil && lookupErr != pgx.ErrNoRows {
			return nil, lookupErr
		}
		// Unknown accounts still record a failure so enumeration attempts
		// hit the lockout threshold too.
		_ = s.limiter.RecordFailure(ctx, "account:"+email)
		return nil, invalidCredentials()
	}

	if err := auth.ComparePassword(profile.PasswordHash, password); err != nil {
		_ = s.limiter.RecordFailure(ctx, "account:"+email)
		return nil, invalidCredentials()
	}

	_ = s.limiter.Reset(ctx, "account:"+email)

	token, expiresAt, err := s.tokens.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Profile: profile}, nil
}

// RequestPasswordReset issues a reset token and mails it. The call always
// succeeds from the caller's perspective so account existence is not
// disclosed; delivery problems are only logged.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if err != pgx.ErrNoRows {
			s.logger.Warn("password reset lookup failed", zap.Error(err))
		}
		return nil
	}
	if !profile.Active {
		return nil
	}

	token, err := randomToken()
	if err != nil {
		s.logger.Error("reset token generation failed", zap.Error(err))
		return nil
	}
	record := &repository.PasswordResetToken{
		ProfileID: profile.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, record); err != nil {
		s.logger.Error("reset token persist failed", zap.Error(err))
		return nil
	}

	msg := mail.PasswordReset(token)
	if err := s.mailer.Send(profile.Email, msg.Subject, msg.HTML, msg.Text); err != nil {
		s.logger.Warn("reset mail delivery failed", zap.Error(err))
	}
	return nil
}

// ConfirmPasswordReset consumes a reset token and sets a new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	record, err := s.resets.GetByToken(ctx, token)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewValidationError("invalid or expired reset token", nil)
		}
		return err
	}
	if record.UsedAt != nil || time.Now().After(record.ExpiresAt) {
		return apperrors.NewValidationError("invalid or expired reset token", nil)
	}

	profile, err := s.profiles.GetByID(ctx, record.ProfileID)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	profile.PasswordHash = hash
	if err := s.profiles.Update(ctx, profile); err != nil {
		return err
	}
	if err := s.resets.MarkUsed(ctx, record.ID); err != nil {
		s.logger.Warn("reset token mark-used failed", zap.Error(err))
	}
	_ = s.limiter.Reset(ctx, "account:"+profile.Email)

	s.audit.Record(ctx, "profile", profile.ID, "password_reset", &profile.ID, nil)
	return nil
}

// ChangePassword rotates the password for a signed-in profile.
func (s *AuthService) ChangePassword(ctx context.Context, actor *domain.Profile, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	if err := auth.ComparePassword(actor.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("current password is incorrect")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	actor.PasswordHash = hash
	if err := s.profiles.Update(ctx, actor); err != nil {
		return err
	}

	s.audit.Record(ctx, "profile", actor.ID, "password_changed", &actor.ID, nil)
	return nil
}

func invalidCredentials() error {
	return apperrors.NewUnauthorized("invalid credentials")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
