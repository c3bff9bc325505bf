package alerting

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/pkg/utils"
)

// Limite diário de investimento acima do qual um alerta é registrado para o
// workspace. Regras por workspace ficam para quando houver cadastro delas.
const defaultDailySpendThreshold = 1000.0

// Service avalia regras de alerta sobre as métricas já persistidas de um
// workspace. Chamado pelo orquestrador como efeito colateral best-effort:
// qualquer falha aqui é logada e engolida, nunca derruba a sincronização.
type Service interface {
	ProcessWorkspaceAlerts(userID, workspaceID string) error
}

type service struct {
	metricRepo repository.MetricRepository
	threshold  float64
}

func NewService(metricRepo repository.MetricRepository) Service {
	return &service{
		metricRepo: metricRepo,
		threshold:  defaultDailySpendThreshold,
	}
}

func (s *service) ProcessWorkspaceAlerts(userID, workspaceID string) error {
	today := utils.UTCDay(time.Now()).Format("2006-01-02")

	spend, err := s.metricRepo.GetDailySpend(userID, &workspaceID, today)
	if err != nil {
		return fmt.Errorf("erro ao avaliar alertas do workspace %s: %w", workspaceID, err)
	}

	if spend > s.threshold {
		logrus.Warnf("Alerta de investimento: workspace %s gastou R$ %.2f hoje (limite R$ %.2f)",
			workspaceID, spend, s.threshold)
	} else {
		logrus.Debugf("Investimento do workspace %s dentro do limite: R$ %.2f", workspaceID, spend)
	}

	return nil
}
