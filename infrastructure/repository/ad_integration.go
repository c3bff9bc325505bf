package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/internal/domain"
)

const adIntegrationsTable = "ad_integrations"

const adIntegrationColumns = `id, user_id, provider_id, client_id, access_token, refresh_token,
	access_token_expires_at, developer_token, account_id, login_customer_id, manager_customer_id,
	auto_sync_enabled, sync_frequency_minutes, scheduled_timeframe_days,
	last_sync_status, last_synced_at, last_sync_message`

type AdIntegrationRepository interface {
	GetAdIntegration(userID string, providerID domain.ProviderID, clientID *string) (*domain.AdIntegration, error)
	ListByUser(userID string) ([]*domain.AdIntegration, error)
	ListAutoSyncEnabled(limit int) ([]*domain.AdIntegration, error)
	UpdateIntegrationStatus(userID string, providerID domain.ProviderID, clientID *string, status domain.IntegrationSyncStatus, message *string) error
	UpdateTokens(userID string, providerID domain.ProviderID, clientID *string, accessToken string, refreshToken *string, expiresAt *time.Time) error
	UpdateSyncSettings(userID string, providerID domain.ProviderID, clientID *string, autoSyncEnabled bool, frequencyMinutes, timeframeDays int) error
}

type adIntegrationRepository struct {
	conn *postgres.Connection
}

func NewAdIntegrationRepository(conn *postgres.Connection) AdIntegrationRepository {
	return &adIntegrationRepository{
		conn: conn,
	}
}

// GetAdIntegration busca a integração de (usuário, provedor, cliente).
// clientID nulo significa o workspace legado/padrão e casa com client_id IS NULL.
func (r *adIntegrationRepository) GetAdIntegration(userID string, providerID domain.ProviderID, clientID *string) (*domain.AdIntegration, error) {
	query, args, err := squirrel.
		Select(adIntegrationColumns).
		From(adIntegrationsTable).
		Where(squirrel.Eq{"user_id": userID, "provider_id": providerID, "client_id": clientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	integration, err := scanIntegrationRow(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar integração: %w", err)
	}

	return integration, nil
}

func (r *adIntegrationRepository) ListByUser(userID string) ([]*domain.AdIntegration, error) {
	query, args, err := squirrel.
		Select(adIntegrationColumns).
		From(adIntegrationsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("provider_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryIntegrations(query, args...)
}

// ListAutoSyncEnabled lista integrações com sincronização automática
// habilitada, da menos recentemente sincronizada para a mais recente
func (r *adIntegrationRepository) ListAutoSyncEnabled(limit int) ([]*domain.AdIntegration, error) {
	query, args, err := squirrel.
		Select(adIntegrationColumns).
		From(adIntegrationsTable).
		Where(squirrel.Eq{"auto_sync_enabled": true}).
		OrderBy("last_synced_at ASC NULLS FIRST").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryIntegrations(query, args...)
}

func (r *adIntegrationRepository) UpdateIntegrationStatus(userID string, providerID domain.ProviderID, clientID *string, status domain.IntegrationSyncStatus, message *string) error {
	builder := squirrel.
		Update(adIntegrationsTable).
		Set("last_sync_status", status).
		Set("last_sync_message", message).
		Where(squirrel.Eq{"user_id": userID, "provider_id": providerID, "client_id": clientID}).
		PlaceholderFormat(squirrel.Dollar)

	if status == domain.IntegrationSyncStatusSuccess {
		builder = builder.Set("last_synced_at", squirrel.Expr("NOW()"))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar status da integração: %w", err)
	}

	return nil
}

func (r *adIntegrationRepository) UpdateTokens(userID string, providerID domain.ProviderID, clientID *string, accessToken string, refreshToken *string, expiresAt *time.Time) error {
	builder := squirrel.
		Update(adIntegrationsTable).
		Set("access_token", accessToken).
		Set("access_token_expires_at", expiresAt).
		Where(squirrel.Eq{"user_id": userID, "provider_id": providerID, "client_id": clientID}).
		PlaceholderFormat(squirrel.Dollar)

	// Alguns provedores rotacionam o refresh token a cada troca
	if refreshToken != nil {
		builder = builder.Set("refresh_token", *refreshToken)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao persistir tokens da integração: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("integração não encontrada para o usuário %s", userID)
	}

	return nil
}

func (r *adIntegrationRepository) UpdateSyncSettings(userID string, providerID domain.ProviderID, clientID *string, autoSyncEnabled bool, frequencyMinutes, timeframeDays int) error {
	query, args, err := squirrel.
		Update(adIntegrationsTable).
		Set("auto_sync_enabled", autoSyncEnabled).
		Set("sync_frequency_minutes", frequencyMinutes).
		Set("scheduled_timeframe_days", timeframeDays).
		Where(squirrel.Eq{"user_id": userID, "provider_id": providerID, "client_id": clientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar configuração de sincronização: %w", err)
	}

	return nil
}

func (r *adIntegrationRepository) queryIntegrations(query string, args ...any) ([]*domain.AdIntegration, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	integrations := make([]*domain.AdIntegration, 0)
	for rows.Next() {
		integration, err := scanIntegrationRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear integração: %w", err)
		}
		integrations = append(integrations, integration)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return integrations, nil
}

func scanIntegrationRow(row *sql.Row) (*domain.AdIntegration, error) {
	integration := &domain.AdIntegration{}
	err := row.Scan(integrationScanTargets(integration)...)
	if err != nil {
		return nil, err
	}
	return integration, nil
}

func scanIntegrationRows(rows *sql.Rows) (*domain.AdIntegration, error) {
	integration := &domain.AdIntegration{}
	err := rows.Scan(integrationScanTargets(integration)...)
	if err != nil {
		return nil, err
	}
	return integration, nil
}

func integrationScanTargets(integration *domain.AdIntegration) []any {
	return []any{
		&integration.ID,
		&integration.UserID,
		&integration.ProviderID,
		&integration.ClientID,
		&integration.AccessToken,
		&integration.RefreshToken,
		&integration.AccessTokenExpiresAt,
		&integration.DeveloperToken,
		&integration.AccountID,
		&integration.LoginCustomerID,
		&integration.ManagerCustomerID,
		&integration.AutoSyncEnabled,
		&integration.SyncFrequencyMinutes,
		&integration.ScheduledTimeframeDays,
		&integration.LastSyncStatus,
		&integration.LastSyncedAt,
		&integration.LastSyncMessage,
	}
}
