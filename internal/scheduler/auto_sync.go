package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/syncing"
)

// AutoSyncService enfileira jobs de sincronização para as integrações com
// sincronização automática habilitada e drena a fila de cada usuário
type AutoSyncService struct {
	scheduler       *gocron.Scheduler
	config          config.AutoSync
	integrationRepo repository.AdIntegrationRepository
	syncService     syncing.Service

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewAutoSyncService cria o serviço de sincronização automática
func NewAutoSyncService(
	integrationRepo repository.AdIntegrationRepository,
	syncService syncing.Service,
	appConfig *config.Config,
) *AutoSyncService {
	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":     appConfig.AutoSync.CronSchedule,
		"sync_enabled":      appConfig.AutoSync.Enabled,
		"max_jobs_per_tick": appConfig.AutoSync.MaxJobsPerTick,
	}).Info("Configuração do agendador de sincronização automática carregada")

	return &AutoSyncService{
		scheduler:       scheduler,
		config:          appConfig.AutoSync,
		integrationRepo: integrationRepo,
		syncService:     syncService,
		syncRunning:     false,
	}
}

// Start inicia o agendador
func (s *AutoSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Sincronização automática desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização automática")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runAutoSync(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização automática: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização automática")
		s.scheduler.Stop()
	}()

	return nil
}

// runAutoSync enfileira e processa jobs para integrações com sincronização
// pendente. Nunca roda duas vezes ao mesmo tempo no mesmo processo.
func (s *AutoSyncService) runAutoSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização automática já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	enqueued := s.enqueueDueIntegrations(time.Now())
	if len(enqueued) == 0 {
		logrus.Info("Nenhuma integração pendente de sincronização automática")
		return
	}

	s.drainQueues(ctx, enqueued)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"jobs":     len(enqueued),
	}).Info("Sincronização automática concluída")

	s.lastSyncCompletedAt = time.Now()
}

// enqueueDueIntegrations enfileira um job por integração vencida e retorna os
// usuários que ganharam jobs na fila
func (s *AutoSyncService) enqueueDueIntegrations(now time.Time) []string {
	integrations, err := s.integrationRepo.ListAutoSyncEnabled(s.config.MaxJobsPerTick)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar integrações para sincronização automática")
		return nil
	}

	userIDs := make([]string, 0)
	seen := make(map[string]bool)

	for _, integration := range integrations {
		if !integration.IsDueForAutoSync(now) {
			continue
		}

		_, err := s.syncService.EnqueueJob(
			integration.UserID,
			integration.ProviderID,
			integration.ClientID,
			integration.ScheduledTimeframeDays,
		)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":  integration.UserID,
				"provider": integration.ProviderID,
				"error":    err.Error(),
			}).Error("Erro ao enfileirar job de sincronização automática")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"user_id":  integration.UserID,
			"provider": integration.ProviderID,
		}).Info("Job de sincronização automática enfileirado")

		if !seen[integration.UserID] {
			seen[integration.UserID] = true
			userIDs = append(userIDs, integration.UserID)
		}
	}

	return userIDs
}

// drainQueues processa a fila de cada usuário até esvaziar. Cada chamada do
// orquestrador processa exatamente um job; falhas de um job não interrompem
// os demais.
func (s *AutoSyncService) drainQueues(ctx context.Context, userIDs []string) {
	for _, userID := range userIDs {
		for {
			result, err := s.syncService.ProcessNextJob(ctx, userID)
			if err != nil {
				// O job com erro já foi marcado como falho; o restante da
				// fila espera o próximo ciclo
				logrus.WithFields(logrus.Fields{
					"user_id": userID,
					"error":   err.Error(),
				}).Error("Erro ao processar job de sincronização automática")
				break
			}
			if result == nil {
				break
			}

			s.logResult(userID, result)
		}
	}
}

func (s *AutoSyncService) logResult(userID string, result *domain.SyncResult) {
	if result.Skipped {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"job_id":  result.JobID,
			"reason":  result.Reason,
		}).Warn("Job de sincronização automática pulado")
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"job_id":   result.JobID,
		"provider": result.ProviderID,
		"metrics":  result.MetricsCount,
	}).Info("Job de sincronização automática concluído")
}

// TriggerManualSync inicia manualmente um ciclo de sincronização automática
func (s *AutoSyncService) TriggerManualSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização automática já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando ciclo manual de sincronização automática")
	go s.runAutoSync(ctx)
}

// GetStatus retorna o status atual do agendador
func (s *AutoSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"max_jobs_per_tick":      s.config.MaxJobsPerTick,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
