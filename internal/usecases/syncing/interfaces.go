package syncing

import (
	"context"

	"github.com/vfg2006/adsync-api/internal/domain"
)

// ProviderClient define o contrato comum dos quatro integradores de anúncios.
// Cada cliente busca e normaliza as métricas da sua plataforma; classificação
// de erro e retry acontecem dentro do cliente.
type ProviderClient interface {
	FetchMetrics(ctx context.Context, params domain.FetchParams) ([]domain.NormalizedMetric, error)
}

// TokenRefresher renova o token de acesso de uma integração e persiste o
// resultado. Falhas chegam como *refreshing.IntegrationTokenError.
type TokenRefresher interface {
	RefreshAccessToken(ctx context.Context, userID string, providerID domain.ProviderID, clientID *string) (string, error)
}

// AlertEvaluator avalia alertas do workspace depois de uma sincronização bem
// sucedida. Chamado em modo best-effort: o orquestrador loga e segue em caso
// de erro.
type AlertEvaluator interface {
	ProcessWorkspaceAlerts(userID, workspaceID string) error
}
