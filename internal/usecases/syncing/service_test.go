package syncing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/adsync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/refreshing"
	"github.com/vfg2006/adsync-api/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

type testHarness struct {
	jobRepo         *repomocks.MockSyncJobRepository
	integrationRepo *repomocks.MockAdIntegrationRepository
	metricRepo      *repomocks.MockMetricRepository
	refresher       *mocks.MockTokenRefresher
	alerter         *mocks.MockAlertEvaluator
	googleClient    *mocks.MockProviderClient
	metaClient      *mocks.MockProviderClient
	linkedinClient  *mocks.MockProviderClient
	tiktokClient    *mocks.MockProviderClient
	service         Service
}

func newTestHarness(t *testing.T) *testHarness {
	ctrl := gomock.NewController(t)

	h := &testHarness{
		jobRepo:         repomocks.NewMockSyncJobRepository(ctrl),
		integrationRepo: repomocks.NewMockAdIntegrationRepository(ctrl),
		metricRepo:      repomocks.NewMockMetricRepository(ctrl),
		refresher:       mocks.NewMockTokenRefresher(ctrl),
		alerter:         mocks.NewMockAlertEvaluator(ctrl),
		googleClient:    mocks.NewMockProviderClient(ctrl),
		metaClient:      mocks.NewMockProviderClient(ctrl),
		linkedinClient:  mocks.NewMockProviderClient(ctrl),
		tiktokClient:    mocks.NewMockProviderClient(ctrl),
	}

	h.service = NewService(
		h.jobRepo,
		h.integrationRepo,
		h.metricRepo,
		h.refresher,
		h.alerter,
		h.googleClient,
		h.metaClient,
		h.linkedinClient,
		h.tiktokClient,
	)

	return h
}

func stringPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestProcessNextJob_FilaVazia(t *testing.T) {
	h := newTestHarness(t)

	h.jobRepo.EXPECT().ClaimNextSyncJob("user-1").Return(nil, nil)

	result, err := h.service.ProcessNextJob(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestProcessNextJob_SucessoSemRenovacaoDeToken(t *testing.T) {
	h := newTestHarness(t)

	clientID := stringPtr("ws-1")
	job := &domain.SyncJob{
		ID:            "job-1",
		UserID:        "user-1",
		ProviderID:    domain.ProviderFacebook,
		ClientID:      clientID,
		TimeframeDays: 7,
	}

	// Token expira em 30 minutos, margem padrão de 5 minutos: não renova
	integration := &domain.AdIntegration{
		UserID:               "user-1",
		ProviderID:           domain.ProviderFacebook,
		ClientID:             clientID,
		AccessToken:          "token-meta",
		AccessTokenExpiresAt: timePtr(time.Now().Add(30 * time.Minute)),
		AccountID:            stringPtr("act_123"),
	}

	metrics := []domain.NormalizedMetric{
		{ProviderID: domain.ProviderFacebook, Date: "2026-08-29", Spend: 10},
		{ProviderID: domain.ProviderFacebook, Date: "2026-08-30", Spend: 20},
	}

	h.jobRepo.EXPECT().ClaimNextSyncJob("user-1").Return(job, nil)
	h.integrationRepo.EXPECT().
		GetAdIntegration("user-1", domain.ProviderFacebook, clientID).
		Return(integration, nil)

	h.metaClient.EXPECT().
		FetchMetrics(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params domain.FetchParams) ([]domain.NormalizedMetric, error) {
			assert.Equal(t, "token-meta", params.AccessToken)
			assert.Equal(t, "act_123", params.AccountID)
			assert.Equal(t, 7, params.TimeframeDays)
			assert.NotNil(t, params.RefreshAccessToken)
			return metrics, nil
		})

	h.metricRepo.EXPECT().
		WriteMetricsBatch("user-1", clientID, domain.ProviderFacebook, metrics).
		Return(2, nil)
	h.jobRepo.EXPECT().CompleteSyncJob("user-1", "job-1").Return(nil)
	h.integrationRepo.EXPECT().
		UpdateIntegrationStatus("user-1", domain.ProviderFacebook, clientID, domain.IntegrationSyncStatusSuccess, nil).
		Return(nil)
	h.alerter.EXPECT().ProcessWorkspaceAlerts("user-1", "ws-1").Return(nil)

	result, err := h.service.ProcessNextJob(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "job-1", result.JobID)
	assert.Equal(t, domain.ProviderFacebook, result.ProviderID)
	assert.Equal(t, 2, result.MetricsCount)
	assert.False(t, result.Skipped)
}

func TestProcessNextJob_TikTokSemAccountIDRetornaSkipped(t *testing.T) {
	h := newTestHarness(t)

	job := &domain.SyncJob{
		ID:            "job-2",
		UserID:        "user-1",
		ProviderID:    domain.ProviderTikTok,
		TimeframeDays: 7,
	}

	integration := &domain.AdIntegration{
		UserID:      "user-1",
		ProviderID:  domain.ProviderTikTok,
		AccessToken: "token-tiktok",
		// Sem AccountID configurado
	}

	h.jobRepo.EXPECT().ClaimNextSyncJob("user-1").Return(job, nil)
	h.integrationRepo.EXPECT().
		GetAdIntegration("user-1", domain.ProviderTikTok, nil).
		Return(integration, nil)

	// Exatamente uma falha do job e uma escrita de status de erro;
	// CompleteSyncJob nunca é chamado
	h.jobRepo.EXPECT().
		FailSyncJob("user-1", "job-2", gomock.Any()).
		DoAndReturn(func(_, _, message string) error {
			assert.Contains(t, message, "advertiser id")
			assert.Contains(t, message, "Reconecte")
			return nil
		}).
		Times(1)
	h.integrationRepo.EXPECT().
		UpdateIntegrationStatus("user-1", domain.ProviderTikTok, nil, domain.IntegrationSyncStatusError, gomock.Any()).
		Return(nil).
		Times(1)

	result, err := h.service.ProcessNextJob(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Skipped)
	assert.Equal(t, domain.SkipReasonMissingAccountID, result.Reason)
	assert.Equal(t, 0, result.MetricsCount)
}

func TestProcessNextJob_IntegracaoInexistenteFalhaSemPropagar(t *testing.T) {
	h := newTestHarness(t)

	job := &domain.SyncJob{
		ID:         "job-3",
		UserID:     "user-1",
		ProviderID: domain.ProviderGoogle,
	}

	h.jobRepo.EXPECT().ClaimNextSyncJob("user-1").Return(job, nil)
	h.integrationRepo.EXPECT().
		GetAdIntegration("user-1", domain.ProviderGoogle, nil).
		Return(nil, nil)

	h.jobRepo.EXPECT().FailSyncJob("user-1", "job-3", gomock.Any()).Return(nil).Times(1)
	h.integrationRepo.EXPECT().
		UpdateIntegrationStatus("user-1", domain.ProviderGoogle, nil, domain.IntegrationSyncStatusError, gomock.Any()).
		Return(nil).
		Times(1)

	result, err := h.service.ProcessNextJob(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Skipped)
	assert.Equal(t, SkipReasonMissingCredentials, result.Reason)
}

func TestProcessNextJob_LinkedInRenovaTokenProativamente(t *testing.T) {
	h := newTestHarness(t)

	clientID := stringPtr("ws-1")
	job := &domain.SyncJob{
		ID:            "job-4",
		UserID:        "user-1",
		ProviderID:    domain.ProviderLinkedIn,
		ClientID:      clientID,
		TimeframeDays: 7,
	}

	// Token expira em 12 horas; a margem do LinkedIn é de 24 horas
	integration := &domain.AdIntegration{
		UserID:               "user-1",
		ProviderID:           domain.ProviderLinkedIn,
		ClientID:             clientID,
		AccessToken:          "token-velho",
		AccessTokenExpiresAt: timePtr(time.Now().Add(12 * time.Hour)),
		AccountID:            stringPtr("506"),
	}

	h.jobRepo.EXPECT().ClaimNextSyncJob("user-1").Return(job, nil)
	h.integrationRepo.EXPECT().
		GetAdIntegration("user-1", domain.ProviderLinkedIn, clientID).
		Return(integration, nil)
	h.refresher.EXPECT().
		RefreshAccessToken(gomock.Any(), "user-1", domain.ProviderLinkedIn, clientID).
		Return("token-novo", nil)

	h.linkedinClient.EXPECT().
		FetchMetrics(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params domain.FetchParams) ([]domain.NormalizedMetric, error) {
			// A chamada usa o token renovado, não o armazenado
			assert.Equal(t, "token-novo", params.AccessToken)
			return []domain.NormalizedMetric{{ProviderID: domain.ProviderLinkedIn, Date: "2026-08-30"}}, nil
		})

	h.metricRepo.EXPECT().
		WriteMetricsBatch("user-1", clientID, domain.ProviderLinkedIn, gomock.Any()).
		Return(1, nil)
	h.jobRepo.EXPECT().CompleteSyncJob("user-1", "job-4").Return(nil)
	h.integrationRepo.EXPECT().
		UpdateIntegrationStatus("user-1", domain.ProviderLinkedIn, clientID, domain.IntegrationSyncStatusSuccess, nil).
		Return(nil)
	h.alerter.EXPECT().ProcessWorkspaceAlerts("user-1", "ws-1").Return(nil)

	result, err := h.service.ProcessNextJob(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.MetricsCount)
}

func TestProcessNextJob_ErroDeTokenMantemMensagemPropria(t *testing.T) {
	h := newTestHarness(t)

	job := &domain.SyncJob{
		ID:         "job-5",
		UserID:     "user-1",
		ProviderID: domain.ProviderLinkedIn,
	}

	integration := &domain.AdIntegration{
		UserID:               "user-1",
		ProviderID:           domain.ProviderLinkedIn,
		AccessToken:          "token-velho",
		AccessTokenExpiresAt: timePtr(time.Now().Add(1 * time.Hour)),
		AccountID:            stringPtr("506"),
	}

	tokenErr := &refreshing.IntegrationTokenError{
		UserID:     "user-1",
		ProviderID: domain.ProviderLinkedIn,
		Message:    "refresh token revogado",
	}

	h.jobRepo.EXPECT().ClaimNextSyncJob("user-1").Return(job, nil)
	h.integrationRepo.EXPECT().
		GetAdIntegration("user-1", domain.ProviderLinkedIn, nil).
		Return(integration, nil)
	h.refresher.EXPECT().
		RefreshAccessToken(gomock.Any(), "user-1", domain.ProviderLinkedIn, nil).
		Return("", tokenErr)

	h.jobRepo.EXPECT().FailSyncJob("user-1", "job-5", "refresh token revogado").Return(nil).Times(1)
	h.integrationRepo.EXPECT().
		UpdateIntegrationStatus("user-1", domain.ProviderLinkedIn, nil, domain.IntegrationSyncStatusError, gomock.Any()).
		Return(nil).
		Times(1)

	_, err := h.service.ProcessNextJob(context.Background(), "user-1")
	require.Error(t, err)

	var gotTokenErr *refreshing.IntegrationTokenError
	assert.True(t, errors.As(err, &gotTokenErr))
}

func TestProcessNextJob_FalhaDoFetchFalhaJobExatamenteUmaVez(t *testing.T) {
	h := newTestHarness(t)

	job := &domain.SyncJob{
		ID:            "job-6",
		UserID:        "user-1",
		ProviderID:    domain.ProviderGoogle,
		TimeframeDays: 7,
	}

	integration := &domain.AdIntegration{
		UserID:         "user-1",
		ProviderID:     domain.ProviderGoogle,
		AccessToken:    "token-google",
		AccountID:      stringPtr("1234567890"),
		DeveloperToken: stringPtr("dev-token"),
	}

	h.jobRepo.EXPECT().ClaimNextSyncJob("user-1").Return(job, nil)
	h.integrationRepo.EXPECT().
		GetAdIntegration("user-1", domain.ProviderGoogle, nil).
		Return(integration, nil)
	h.googleClient.EXPECT().
		FetchMetrics(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("erro na resposta da API. Status: 500"))

	h.jobRepo.EXPECT().FailSyncJob("user-1", "job-6", gomock.Any()).Return(nil).Times(1)
	h.integrationRepo.EXPECT().
		UpdateIntegrationStatus("user-1", domain.ProviderGoogle, nil, domain.IntegrationSyncStatusError, gomock.Any()).
		Return(nil).
		Times(1)

	result, err := h.service.ProcessNextJob(context.Background(), "user-1")
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestProcessNextJob_FalhaDeAlertaNaoDerrubaJob(t *testing.T) {
	h := newTestHarness(t)

	clientID := stringPtr("ws-1")
	job := &domain.SyncJob{
		ID:            "job-7",
		UserID:        "user-1",
		ProviderID:    domain.ProviderFacebook,
		ClientID:      clientID,
		TimeframeDays: 7,
	}

	integration := &domain.AdIntegration{
		UserID:      "user-1",
		ProviderID:  domain.ProviderFacebook,
		ClientID:    clientID,
		AccessToken: "token-meta",
		AccountID:   stringPtr("act_123"),
	}

	h.jobRepo.EXPECT().ClaimNextSyncJob("user-1").Return(job, nil)
	h.integrationRepo.EXPECT().
		GetAdIntegration("user-1", domain.ProviderFacebook, clientID).
		Return(integration, nil)
	h.metaClient.EXPECT().
		FetchMetrics(gomock.Any(), gomock.Any()).
		Return([]domain.NormalizedMetric{{Date: "2026-08-30"}}, nil)
	h.metricRepo.EXPECT().
		WriteMetricsBatch("user-1", clientID, domain.ProviderFacebook, gomock.Any()).
		Return(1, nil)
	h.jobRepo.EXPECT().CompleteSyncJob("user-1", "job-7").Return(nil)
	h.integrationRepo.EXPECT().
		UpdateIntegrationStatus("user-1", domain.ProviderFacebook, clientID, domain.IntegrationSyncStatusSuccess, nil).
		Return(nil)
	h.alerter.EXPECT().
		ProcessWorkspaceAlerts("user-1", "ws-1").
		Return(errors.New("serviço de alertas fora do ar"))

	result, err := h.service.ProcessNextJob(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.MetricsCount)
}

func TestProcessNextJob_JobLegadoNaoAvaliaAlertas(t *testing.T) {
	h := newTestHarness(t)

	job := &domain.SyncJob{
		ID:            "job-8",
		UserID:        "user-1",
		ProviderID:    domain.ProviderFacebook,
		TimeframeDays: 7,
	}

	integration := &domain.AdIntegration{
		UserID:      "user-1",
		ProviderID:  domain.ProviderFacebook,
		AccessToken: "token-meta",
		AccountID:   stringPtr("act_123"),
	}

	h.jobRepo.EXPECT().ClaimNextSyncJob("user-1").Return(job, nil)
	h.integrationRepo.EXPECT().
		GetAdIntegration("user-1", domain.ProviderFacebook, nil).
		Return(integration, nil)
	h.metaClient.EXPECT().
		FetchMetrics(gomock.Any(), gomock.Any()).
		Return([]domain.NormalizedMetric{{Date: "2026-08-30"}}, nil)
	h.metricRepo.EXPECT().
		WriteMetricsBatch("user-1", nil, domain.ProviderFacebook, gomock.Any()).
		Return(1, nil)
	h.jobRepo.EXPECT().CompleteSyncJob("user-1", "job-8").Return(nil)
	h.integrationRepo.EXPECT().
		UpdateIntegrationStatus("user-1", domain.ProviderFacebook, nil, domain.IntegrationSyncStatusSuccess, nil).
		Return(nil)
	// Nenhuma expectativa no alerter: jobs do workspace legado não alertam

	result, err := h.service.ProcessNextJob(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.MetricsCount)
}

func TestEnqueueJob(t *testing.T) {
	h := newTestHarness(t)

	t.Run("Provedor inválido é rejeitado", func(t *testing.T) {
		_, err := h.service.EnqueueJob("user-1", "bing", nil, 7)
		require.Error(t, err)
	})

	t.Run("Janela não informada usa o padrão", func(t *testing.T) {
		h.jobRepo.EXPECT().
			Enqueue(gomock.Any()).
			DoAndReturn(func(job *domain.SyncJob) (*domain.SyncJob, error) {
				assert.Equal(t, DefaultTimeframeDays, job.TimeframeDays)
				job.ID = "job-9"
				job.Status = domain.SyncJobStatusQueued
				return job, nil
			})

		job, err := h.service.EnqueueJob("user-1", domain.ProviderGoogle, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, "job-9", job.ID)
		assert.Equal(t, domain.SyncJobStatusQueued, job.Status)
	})
}
