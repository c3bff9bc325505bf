package domain

import "time"

// IntegrationSyncStatus é o último estado de sincronização de uma integração
type IntegrationSyncStatus string

const (
	IntegrationSyncStatusSuccess IntegrationSyncStatus = "success"
	IntegrationSyncStatusError   IntegrationSyncStatus = "error"
	IntegrationSyncStatusPending IntegrationSyncStatus = "pending"
)

// AdIntegration guarda credenciais e configuração de sincronização de uma
// integração por (usuário, provedor, cliente)
type AdIntegration struct {
	ID                    string     `json:"id"`
	UserID                string     `json:"userId"`
	ProviderID            ProviderID `json:"providerId"`
	ClientID              *string    `json:"clientId,omitempty"`
	AccessToken           string     `json:"-"`
	RefreshToken          *string    `json:"-"`
	AccessTokenExpiresAt  *time.Time `json:"accessTokenExpiresAt,omitempty"`
	DeveloperToken        *string    `json:"-"`
	AccountID             *string    `json:"accountId,omitempty"`
	LoginCustomerID       *string    `json:"loginCustomerId,omitempty"`
	ManagerCustomerID     *string    `json:"managerCustomerId,omitempty"`
	AutoSyncEnabled       bool       `json:"autoSyncEnabled"`
	SyncFrequencyMinutes  int        `json:"syncFrequencyMinutes"`
	ScheduledTimeframeDays int       `json:"scheduledTimeframeDays"`
	LastSyncStatus        IntegrationSyncStatus `json:"lastSyncStatus"`
	LastSyncedAt          *time.Time `json:"lastSyncedAt,omitempty"`
	LastSyncMessage       *string    `json:"lastSyncMessage,omitempty"`
}

// HasAccountID verifica se a integração tem o identificador de conta exigido
// pelo provedor antes de qualquer tentativa de sincronização
func (i *AdIntegration) HasAccountID() bool {
	return i.AccountID != nil && *i.AccountID != ""
}

// IsDueForAutoSync verifica se a integração deve ser sincronizada de novo,
// de acordo com a frequência configurada
func (i *AdIntegration) IsDueForAutoSync(now time.Time) bool {
	if !i.AutoSyncEnabled || i.SyncFrequencyMinutes <= 0 {
		return false
	}

	if i.LastSyncedAt == nil {
		return true
	}

	next := i.LastSyncedAt.Add(time.Duration(i.SyncFrequencyMinutes) * time.Minute)
	return !now.Before(next)
}

// FetchParams são os parâmetros de uma chamada de busca de métricas a um
// provedor. RefreshAccessToken, quando presente, é invocado no máximo uma vez
// por chamada em caso de erro de autenticação.
type FetchParams struct {
	AccessToken        string
	AccountID          string
	DeveloperToken     string
	LoginCustomerID    string
	TimeframeDays      int
	RefreshAccessToken func() (string, error)
}
