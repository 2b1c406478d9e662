package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/mail"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

type mockResetRepo struct{ mock.Mock }

func (m *mockResetRepo) Create(ctx context.Context, token *repository.PasswordResetToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockResetRepo) GetByToken(ctx context.Context, token string) (*repository.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	if t, ok := args.Get(0).(*repository.PasswordResetToken); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResetRepo) MarkUsed(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockLimiter struct{ mock.Mock }

func (m *mockLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockLimiter) RecordFailure(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockLimiter) IsLocked(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockLimiter) Reset(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newAuthServiceForTest(profiles *mockProfileRepo, resets *mockResetRepo, limiter *mockLimiter, audits *mockAuditRepo) *AuthService {
	return NewAuthService(config.AuthConfig{BcryptCost: 10, PasswordResetTTLMinutes: 30}, AuthDependencies{
		ProfileRepo: profiles,
		ResetRepo:   resets,
		Tokens:      auth.NewTokenManager("test-secret", 60),
		Limiter:     limiter,
		Mailer:      mail.NewMailer(config.SMTPConfig{}, zap.NewNop()),
		Audit:       NewAuditRecorder(audits, zap.NewNop()),
		Logger:      zap.NewNop(),
	})
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, 10)
	require.NoError(t, err)
	return hash
}

func TestLoginSuccessResetsFailures(t *testing.T) {
	profiles := new(mockProfileRepo)
	limiter := new(mockLimiter)
	svc := newAuthServiceForTest(profiles, new(mockResetRepo), limiter, new(mockAuditRepo))

	limiter.On("Allow", mock.Anything, "ip:1.2.3.4").Return(true, nil)
	limiter.On("IsLocked", mock.Anything, "account:a@example.com").Return(false, nil)
	limiter.On("Reset", mock.Anything, "account:a@example.com").Return(nil)
	profiles.On("GetByEmail", mock.Anything, "a@example.com").Return(&domain.Profile{
		ID:           "prf-1",
		Email:        "a@example.com",
		PasswordHash: hashFor(t, "correct horse"),
		Role:         domain.RoleRequester,
		Active:       true,
	}, nil)

	result, err := svc.Login(context.Background(), "A@Example.com ", "correct horse", "1.2.3.4")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "prf-1", result.Profile.ID)
	limiter.AssertCalled(t, "Reset", mock.Anything, "account:a@example.com")
}

func TestLoginUniformErrorForBadPasswordAndUnknownAccount(t *testing.T) {
	profiles := new(mockProfileRepo)
	limiter := new(mockLimiter)
	svc := newAuthServiceForTest(profiles, new(mockResetRepo), limiter, new(mockAuditRepo))

	limiter.On("Allow", mock.Anything, mock.Anything).Return(true, nil)
	limiter.On("IsLocked", mock.Anything, mock.Anything).Return(false, nil)
	limiter.On("RecordFailure", mock.Anything, mock.Anything).Return(nil)
	profiles.On("GetByEmail", mock.Anything, "known@example.com").Return(&domain.Profile{
		ID:           "prf-1",
		PasswordHash: hashFor(t, "right"),
		Active:       true,
	}, nil)
	profiles.On("GetByEmail", mock.Anything, "unknown@example.com").Return(nil, pgx.ErrNoRows)

	_, errBadPassword := svc.Login(context.Background(), "known@example.com", "wrong", "1.2.3.4")
	_, errUnknown := svc.Login(context.Background(), "unknown@example.com", "wrong", "1.2.3.4")

	require.Error(t, errBadPassword)
	require.Error(t, errUnknown)
	assert.Equal(t, errBadPassword.Error(), errUnknown.Error())
}

func TestLoginRateLimited(t *testing.T) {
	limiter := new(mockLimiter)
	svc := newAuthServiceForTest(new(mockProfileRepo), new(mockResetRepo), limiter, new(mockAuditRepo))

	limiter.On("Allow", mock.Anything, "ip:1.2.3.4").Return(false, nil)

	_, err := svc.Login(context.Background(), "a@example.com", "pw", "1.2.3.4")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "RATE_LIMITED", domainErr.Code)
}

func TestLoginLockedAccountLooksLikeBadCredentials(t *testing.T) {
	profiles := new(mockProfileRepo)
	limiter := new(mockLimiter)
	svc := newAuthServiceForTest(profiles, new(mockResetRepo), limiter, new(mockAuditRepo))

	limiter.On("Allow", mock.Anything, mock.Anything).Return(true, nil)
	limiter.On("IsLocked", mock.Anything, "account:a@example.com").Return(true, nil)
	limiter.On("RecordFailure", mock.Anything, mock.Anything).Return(nil)
	profiles.On("GetByEmail", mock.Anything, "a@example.com").Return(&domain.Profile{
		ID:           "prf-1",
		PasswordHash: hashFor(t, "right"),
		Active:       true,
	}, nil)

	_, err := svc.Login(context.Background(), "a@example.com", "right", "1.2.3.4")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	assert.Equal(t, "invalid credentials", domainErr.Message)
}

func TestRequestPasswordResetUnknownAccountStillSucceeds(t *testing.T) {
	profiles := new(mockProfileRepo)
	svc := newAuthServiceForTest(profiles, new(mockResetRepo), new(mockLimiter), new(mockAuditRepo))

	profiles.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, pgx.ErrNoRows)

	err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
}

func TestConfirmPasswordResetExpiredToken(t *testing.T) {
	resets := new(mockResetRepo)
	svc := newAuthServiceForTest(new(mockProfileRepo), resets, new(mockLimiter), new(mockAuditRepo))

	expired := time.Now().Add(-time.Hour)
	resets.On("GetByToken", mock.Anything, "tok-1").Return(&repository.PasswordResetToken{
		ID:        "rst-1",
		ProfileID: "prf-1",
		Token:     "tok-1",
		ExpiresAt: expired,
	}, nil)

	err := svc.ConfirmPasswordReset(context.Background(), "tok-1", "new password")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestConfirmPasswordResetHappyPath(t *testing.T) {
	profiles := new(mockProfileRepo)
	resets := new(mockResetRepo)
	limiter := new(mockLimiter)
	audits := new(mockAuditRepo)
	svc := newAuthServiceForTest(profiles, resets, limiter, audits)

	resets.On("GetByToken", mock.Anything, "tok-1").Return(&repository.PasswordResetToken{
		ID:        "rst-1",
		ProfileID: "prf-1",
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	profiles.On("GetByID", mock.Anything, "prf-1").Return(&domain.Profile{
		ID:    "prf-1",
		Email: "a@example.com",
	}, nil)
	profiles.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return auth.ComparePassword(p.PasswordHash, "new password") == nil
	})).Return(nil)
	resets.On("MarkUsed", mock.Anything, "rst-1").Return(nil)
	limiter.On("Reset", mock.Anything, "account:a@example.com").Return(nil)
	audits.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := svc.ConfirmPasswordReset(context.Background(), "tok-1", "new password")
	require.NoError(t, err)
	resets.AssertCalled(t, "MarkUsed", mock.Anything, "rst-1")
}

func TestRegisterRequesterDuplicateEmail(t *testing.T) {
	profiles := new(mockProfileRepo)
	svc := newAuthServiceForTest(profiles, new(mockResetRepo), new(mockLimiter), new(mockAuditRepo))

	profiles.On("GetByEmail", mock.Anything, "a@example.com").Return(&domain.Profile{ID: "prf-1"}, nil)

	_, err := svc.RegisterRequester(context.Background(), "A", "a@example.com", "password123", nil)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}
