package syncing

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/integrator"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/refreshing"
)

// DefaultTimeframeDays é a janela usada quando o job não especifica uma
const DefaultTimeframeDays = 7

// SkipReasonMissingCredentials indica integração inexistente ou sem token de
// acesso. Assim como a falta de account id, pede reconexão do usuário.
const SkipReasonMissingCredentials = "missing_credentials"

// Service é o orquestrador de sincronização: processa um job da fila por
// invocação, de ponta a ponta, sem paralelismo entre jobs
type Service interface {
	EnqueueJob(userID string, providerID domain.ProviderID, clientID *string, timeframeDays int) (*domain.SyncJob, error)
	ProcessNextJob(ctx context.Context, userID string) (*domain.SyncResult, error)
}

type service struct {
	jobRepo         repository.SyncJobRepository
	integrationRepo repository.AdIntegrationRepository
	metricRepo      repository.MetricRepository
	refresher       TokenRefresher
	alerter         AlertEvaluator

	googleClient   ProviderClient
	metaClient     ProviderClient
	linkedinClient ProviderClient
	tiktokClient   ProviderClient
}

func NewService(
	jobRepo repository.SyncJobRepository,
	integrationRepo repository.AdIntegrationRepository,
	metricRepo repository.MetricRepository,
	refresher TokenRefresher,
	alerter AlertEvaluator,
	googleClient ProviderClient,
	metaClient ProviderClient,
	linkedinClient ProviderClient,
	tiktokClient ProviderClient,
) Service {
	return &service{
		jobRepo:         jobRepo,
		integrationRepo: integrationRepo,
		metricRepo:      metricRepo,
		refresher:       refresher,
		alerter:         alerter,
		googleClient:    googleClient,
		metaClient:      metaClient,
		linkedinClient:  linkedinClient,
		tiktokClient:    tiktokClient,
	}
}

// EnqueueJob enfileira um novo job de sincronização para o usuário
func (s *service) EnqueueJob(userID string, providerID domain.ProviderID, clientID *string, timeframeDays int) (*domain.SyncJob, error) {
	if !providerID.IsValid() {
		return nil, fmt.Errorf("provedor desconhecido: %s", providerID)
	}
	if timeframeDays <= 0 {
		timeframeDays = DefaultTimeframeDays
	}

	return s.jobRepo.Enqueue(&domain.SyncJob{
		UserID:        userID,
		ProviderID:    providerID,
		ClientID:      clientID,
		TimeframeDays: timeframeDays,
	})
}

// ProcessNextJob reivindica e processa o job mais antigo da fila do usuário.
// Retorna nil sem erro quando a fila está vazia.
func (s *service) ProcessNextJob(ctx context.Context, userID string) (*domain.SyncResult, error) {
	job, err := s.jobRepo.ClaimNextSyncJob(userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao reivindicar job da fila: %w", err)
	}
	if job == nil {
		return nil, nil
	}

	logrus.Infof("Processando job %s (%s) do usuário %s", job.ID, job.ProviderID, job.UserID)

	// Garante exatamente uma escrita de falha por job, mesmo quando mais de
	// um ramo de erro se aplica
	jobFailed := false
	fail := func(message string) {
		if jobFailed {
			return
		}
		jobFailed = true

		if err := s.jobRepo.FailSyncJob(job.UserID, job.ID, message); err != nil {
			logrus.Errorf("Erro ao marcar job %s como falho: %v", job.ID, err)
		}
		if err := s.integrationRepo.UpdateIntegrationStatus(job.UserID, job.ProviderID, job.ClientID, domain.IntegrationSyncStatusError, &message); err != nil {
			logrus.Errorf("Erro ao atualizar status da integração %s: %v", job.ProviderID, err)
		}
	}

	integration, err := s.integrationRepo.GetAdIntegration(job.UserID, job.ProviderID, job.ClientID)
	if err != nil {
		fail(fmt.Sprintf("erro ao buscar integração: %v", err))
		return nil, fmt.Errorf("erro ao buscar integração do job %s: %w", job.ID, err)
	}
	if integration == nil || integration.AccessToken == "" {
		fail(fmt.Sprintf("integração %s sem credenciais. Reconecte sua integração %s",
			job.ProviderID, job.ProviderID.DisplayName()))
		return &domain.SyncResult{
			JobID:      job.ID,
			ProviderID: job.ProviderID,
			Skipped:    true,
			Reason:     SkipReasonMissingCredentials,
		}, nil
	}

	if configErr := validateIntegration(integration); configErr != nil {
		logrus.Warnf("Job %s pulado: %v", job.ID, configErr)
		fail(configErr.Error())
		return &domain.SyncResult{
			JobID:      job.ID,
			ProviderID: job.ProviderID,
			Skipped:    true,
			Reason:     domain.SkipReasonMissingAccountID,
		}, nil
	}

	accessToken := integration.AccessToken
	if refreshing.IsTokenExpiringSoon(integration.AccessTokenExpiresAt, refreshing.RefreshBuffer(job.ProviderID)) {
		logrus.Infof("Token %s do usuário %s perto de expirar. Renovando proativamente...", job.ProviderID, job.UserID)

		refreshed, err := s.refresher.RefreshAccessToken(ctx, job.UserID, job.ProviderID, job.ClientID)
		if err != nil {
			fail(tokenErrorMessage(err))
			return nil, err
		}
		accessToken = refreshed
	}

	timeframeDays := job.TimeframeDays
	if timeframeDays <= 0 {
		timeframeDays = DefaultTimeframeDays
	}

	params := domain.FetchParams{
		AccessToken:   accessToken,
		TimeframeDays: timeframeDays,
		RefreshAccessToken: func() (string, error) {
			return s.refresher.RefreshAccessToken(ctx, job.UserID, job.ProviderID, job.ClientID)
		},
	}
	if integration.AccountID != nil {
		params.AccountID = *integration.AccountID
	}
	if integration.DeveloperToken != nil {
		params.DeveloperToken = *integration.DeveloperToken
	}
	if integration.LoginCustomerID != nil {
		params.LoginCustomerID = *integration.LoginCustomerID
	}

	client, err := s.clientFor(job.ProviderID)
	if err != nil {
		fail(err.Error())
		return nil, err
	}

	metrics, err := client.FetchMetrics(ctx, params)
	if err != nil {
		var tokenErr *refreshing.IntegrationTokenError
		if errors.As(err, &tokenErr) {
			fail(tokenErr.Message)
			return nil, err
		}

		fail(err.Error())
		return nil, fmt.Errorf("erro ao sincronizar métricas do job %s: %w", job.ID, err)
	}

	count, err := s.metricRepo.WriteMetricsBatch(job.UserID, job.ClientID, job.ProviderID, metrics)
	if err != nil {
		fail(fmt.Sprintf("erro ao persistir métricas: %v", err))
		return nil, fmt.Errorf("erro ao persistir métricas do job %s: %w", job.ID, err)
	}

	if err := s.jobRepo.CompleteSyncJob(job.UserID, job.ID); err != nil {
		fail(fmt.Sprintf("erro ao concluir job: %v", err))
		return nil, fmt.Errorf("erro ao concluir job %s: %w", job.ID, err)
	}
	if err := s.integrationRepo.UpdateIntegrationStatus(job.UserID, job.ProviderID, job.ClientID, domain.IntegrationSyncStatusSuccess, nil); err != nil {
		logrus.Errorf("Erro ao atualizar status da integração %s: %v", job.ProviderID, err)
	}

	logrus.Infof("Job %s concluído: %d métricas sincronizadas", job.ID, count)

	s.evaluateAlerts(job)

	return &domain.SyncResult{
		JobID:        job.ID,
		ProviderID:   job.ProviderID,
		MetricsCount: count,
	}, nil
}

// clientFor despacha para o integrador do provedor do job
func (s *service) clientFor(providerID domain.ProviderID) (ProviderClient, error) {
	switch providerID {
	case domain.ProviderGoogle:
		return s.googleClient, nil
	case domain.ProviderFacebook:
		return s.metaClient, nil
	case domain.ProviderLinkedIn:
		return s.linkedinClient, nil
	case domain.ProviderTikTok:
		return s.tiktokClient, nil
	default:
		return nil, fmt.Errorf("provedor desconhecido: %s", providerID)
	}
}

// validateIntegration verifica os identificadores obrigatórios do provedor
// antes de qualquer chamada à API
func validateIntegration(integration *domain.AdIntegration) *integrator.ConfigError {
	if !integration.HasAccountID() {
		return integrator.NewMissingFieldError(integration.ProviderID, requiredAccountField(integration.ProviderID))
	}

	if integration.ProviderID == domain.ProviderGoogle &&
		(integration.DeveloperToken == nil || *integration.DeveloperToken == "") {
		return integrator.NewMissingFieldError(domain.ProviderGoogle, "developer token")
	}

	return nil
}

func requiredAccountField(providerID domain.ProviderID) string {
	switch providerID {
	case domain.ProviderGoogle:
		return "customer id"
	case domain.ProviderFacebook:
		return "account id"
	case domain.ProviderLinkedIn:
		return "ad account"
	case domain.ProviderTikTok:
		return "advertiser id"
	}
	return "account id"
}

// evaluateAlerts dispara a avaliação de alertas do workspace. Jobs do
// workspace legado (clientID nulo) não têm alertas; falhas são engolidas.
func (s *service) evaluateAlerts(job *domain.SyncJob) {
	if job.ClientID == nil {
		logrus.Debugf("Job %s sem workspace. Avaliação de alertas pulada", job.ID)
		return
	}

	if err := s.alerter.ProcessWorkspaceAlerts(job.UserID, *job.ClientID); err != nil {
		logrus.Warnf("Erro ao avaliar alertas do workspace %s: %v", *job.ClientID, err)
	}
}

func tokenErrorMessage(err error) string {
	var tokenErr *refreshing.IntegrationTokenError
	if errors.As(err, &tokenErr) {
		return tokenErr.Message
	}
	return err.Error()
}
