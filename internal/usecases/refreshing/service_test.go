package refreshing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
)

type stubIntegrationRepo struct {
	integration *domain.AdIntegration
	getErr      error

	updatedAccessToken  string
	updatedRefreshToken *string
	updatedExpiresAt    *time.Time
	updateCalls         int
	updateErr           error
}

func (s *stubIntegrationRepo) GetAdIntegration(userID string, providerID domain.ProviderID, clientID *string) (*domain.AdIntegration, error) {
	return s.integration, s.getErr
}

func (s *stubIntegrationRepo) ListByUser(userID string) ([]*domain.AdIntegration, error) {
	return nil, nil
}

func (s *stubIntegrationRepo) ListAutoSyncEnabled(limit int) ([]*domain.AdIntegration, error) {
	return nil, nil
}

func (s *stubIntegrationRepo) UpdateIntegrationStatus(userID string, providerID domain.ProviderID, clientID *string, status domain.IntegrationSyncStatus, message *string) error {
	return nil
}

func (s *stubIntegrationRepo) UpdateTokens(userID string, providerID domain.ProviderID, clientID *string, accessToken string, refreshToken *string, expiresAt *time.Time) error {
	s.updateCalls++
	s.updatedAccessToken = accessToken
	s.updatedRefreshToken = refreshToken
	s.updatedExpiresAt = expiresAt
	return s.updateErr
}

func (s *stubIntegrationRepo) UpdateSyncSettings(userID string, providerID domain.ProviderID, clientID *string, autoSyncEnabled bool, frequencyMinutes, timeframeDays int) error {
	return nil
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestIsTokenExpiringSoon(t *testing.T) {
	testCases := []struct {
		name      string
		expiresAt *time.Time
		buffer    time.Duration
		expected  bool
	}{
		{
			name:      "Token expira em 30 minutos com margem de 5 minutos não renova",
			expiresAt: timePtr(time.Now().Add(30 * time.Minute)),
			buffer:    DefaultRefreshBuffer,
			expected:  false,
		},
		{
			name:      "Token do LinkedIn expira em 12 horas com margem de 24 horas renova",
			expiresAt: timePtr(time.Now().Add(12 * time.Hour)),
			buffer:    LinkedInRefreshBuffer,
			expected:  true,
		},
		{
			name:      "Token já expirado renova",
			expiresAt: timePtr(time.Now().Add(-1 * time.Hour)),
			buffer:    DefaultRefreshBuffer,
			expected:  true,
		},
		{
			name:      "Sem data de expiração não renova",
			expiresAt: nil,
			buffer:    DefaultRefreshBuffer,
			expected:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsTokenExpiringSoon(tc.expiresAt, tc.buffer))
		})
	}
}

func TestRefreshBuffer(t *testing.T) {
	assert.Equal(t, LinkedInRefreshBuffer, RefreshBuffer(domain.ProviderLinkedIn))
	assert.Equal(t, DefaultRefreshBuffer, RefreshBuffer(domain.ProviderGoogle))
	assert.Equal(t, DefaultRefreshBuffer, RefreshBuffer(domain.ProviderTikTok))
}

func TestRefreshAccessToken_Google(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.FormValue("grant_type"))
		assert.Equal(t, "rt-google", r.FormValue("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"novo-token","expires_in":3600}`))
	}))
	defer server.Close()

	repo := &stubIntegrationRepo{
		integration: &domain.AdIntegration{
			UserID:       "user-1",
			ProviderID:   domain.ProviderGoogle,
			AccessToken:  "token-antigo",
			RefreshToken: strPtr("rt-google"),
		},
	}

	cfg := &config.Config{}
	cfg.Google.OAuthURL = server.URL
	cfg.Google.ClientID = "client-id"
	cfg.Google.ClientSecret = "client-secret"

	svc := NewService(cfg, repo)

	token, err := svc.RefreshAccessToken(context.Background(), "user-1", domain.ProviderGoogle, nil)
	require.NoError(t, err)
	assert.Equal(t, "novo-token", token)

	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, "novo-token", repo.updatedAccessToken)
	// O refresh token do Google não rotaciona
	assert.Nil(t, repo.updatedRefreshToken)
	require.NotNil(t, repo.updatedExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *repo.updatedExpiresAt, time.Minute)
}

func TestRefreshAccessToken_LinkedInRotacionaRefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"novo-token","expires_in":5184000,"refresh_token":"rt-novo"}`))
	}))
	defer server.Close()

	repo := &stubIntegrationRepo{
		integration: &domain.AdIntegration{
			UserID:       "user-1",
			ProviderID:   domain.ProviderLinkedIn,
			AccessToken:  "token-antigo",
			RefreshToken: strPtr("rt-antigo"),
		},
	}

	cfg := &config.Config{}
	cfg.LinkedIn.OAuthURL = server.URL

	svc := NewService(cfg, repo)

	token, err := svc.RefreshAccessToken(context.Background(), "user-1", domain.ProviderLinkedIn, nil)
	require.NoError(t, err)
	assert.Equal(t, "novo-token", token)

	require.NotNil(t, repo.updatedRefreshToken)
	assert.Equal(t, "rt-novo", *repo.updatedRefreshToken)
}

func TestRefreshAccessToken_TikTokEnvelopeComErro(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A Business API devolve HTTP 200 mesmo em erro de negócio
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":40102,"message":"refresh_token invalid","data":{}}`))
	}))
	defer server.Close()

	repo := &stubIntegrationRepo{
		integration: &domain.AdIntegration{
			UserID:       "user-1",
			ProviderID:   domain.ProviderTikTok,
			AccessToken:  "token-antigo",
			RefreshToken: strPtr("rt-tiktok"),
		},
	}

	cfg := &config.Config{}
	cfg.TikTok.BaseURL = server.URL

	svc := NewService(cfg, repo)

	_, err := svc.RefreshAccessToken(context.Background(), "user-1", domain.ProviderTikTok, nil)
	require.Error(t, err)

	var tokenErr *IntegrationTokenError
	require.True(t, errors.As(err, &tokenErr))
	assert.Equal(t, "user-1", tokenErr.UserID)
	assert.Equal(t, domain.ProviderTikTok, tokenErr.ProviderID)
	assert.Contains(t, tokenErr.Message, "40102")

	assert.Equal(t, 0, repo.updateCalls)
}

func TestRefreshAccessToken_SemRefreshTokenFalha(t *testing.T) {
	repo := &stubIntegrationRepo{
		integration: &domain.AdIntegration{
			UserID:      "user-1",
			ProviderID:  domain.ProviderGoogle,
			AccessToken: "token-antigo",
		},
	}

	svc := NewService(&config.Config{}, repo)

	_, err := svc.RefreshAccessToken(context.Background(), "user-1", domain.ProviderGoogle, nil)
	require.Error(t, err)

	var tokenErr *IntegrationTokenError
	require.True(t, errors.As(err, &tokenErr))
	assert.Contains(t, tokenErr.Message, "reautorizar")
}

func TestRefreshAccessToken_IntegracaoNaoEncontrada(t *testing.T) {
	repo := &stubIntegrationRepo{}

	svc := NewService(&config.Config{}, repo)

	_, err := svc.RefreshAccessToken(context.Background(), "user-1", domain.ProviderFacebook, nil)
	require.Error(t, err)

	var tokenErr *IntegrationTokenError
	require.True(t, errors.As(err, &tokenErr))
	assert.Equal(t, "integração não encontrada", tokenErr.Message)
}
