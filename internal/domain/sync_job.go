package domain

import "time"

// SyncJobStatus representa o estado de um job de sincronização na fila
type SyncJobStatus string

const (
	SyncJobStatusQueued     SyncJobStatus = "queued"
	SyncJobStatusProcessing SyncJobStatus = "processing"
	SyncJobStatusCompleted  SyncJobStatus = "completed"
	SyncJobStatusFailed     SyncJobStatus = "failed"
)

// SyncJob é uma unidade de trabalho: buscar e persistir métricas de um
// provedor para um usuário/cliente em uma janela de dias
type SyncJob struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	ProviderID    ProviderID    `json:"providerId"`
	ClientID      *string       `json:"clientId,omitempty"` // nil = workspace legado/padrão
	TimeframeDays int           `json:"timeframeDays"`
	Status        SyncJobStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// SyncResult é o resultado de processar um job da fila
type SyncResult struct {
	JobID        string     `json:"jobId"`
	ProviderID   ProviderID `json:"providerId"`
	MetricsCount int        `json:"metricsCount"`
	Skipped      bool       `json:"skipped,omitempty"`
	Reason       string     `json:"reason,omitempty"`
}

const (
	// SkipReasonMissingAccountID indica integração sem identificador de conta
	// configurado - requer reconexão, não é um erro sistêmico
	SkipReasonMissingAccountID = "missing_account_id"
)
