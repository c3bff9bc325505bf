package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/utils"
)

const adMetricsTable = "ad_metrics"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type MetricRepository interface {
	WriteMetricsBatch(userID string, clientID *string, providerID domain.ProviderID, metrics []domain.NormalizedMetric) (int, error)
	GetDailySpend(userID string, clientID *string, date string) (float64, error)
}

type metricRepository struct {
	conn *postgres.Connection
}

func NewMetricRepository(conn *postgres.Connection) MetricRepository {
	return &metricRepository{
		conn: conn,
	}
}

// WriteMetricsBatch persiste o lote de métricas normalizadas em uma única
// transação. Linhas com a mesma chave (usuário, cliente, provedor, campanha,
// data) são sobrescritas, então re-sincronizar um período é idempotente.
func (r *metricRepository) WriteMetricsBatch(userID string, clientID *string, providerID domain.ProviderID, metrics []domain.NormalizedMetric) (int, error) {
	if len(metrics) == 0 {
		return 0, nil
	}

	err := r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		for _, metric := range metrics {
			query, args, err := buildMetricUpsert(userID, clientID, providerID, metric)
			if err != nil {
				return err
			}

			if _, err := tx.Exec(query, args...); err != nil {
				return fmt.Errorf("erro ao persistir métrica de %s: %w", metric.Date, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(metrics), nil
}

// GetDailySpend soma o investimento de todos os provedores do cliente no dia
func (r *metricRepository) GetDailySpend(userID string, clientID *string, date string) (float64, error) {
	query, args, err := squirrel.
		Select("COALESCE(SUM(spend), 0)").
		From(adMetricsTable).
		Where(squirrel.Eq{"user_id": userID, "client_id": clientID, "date": date}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var spend float64
	if err := r.conn.QueryRow(query, args...).Scan(&spend); err != nil {
		return 0, fmt.Errorf("erro ao somar investimento diário: %w", err)
	}

	return spend, nil
}

func buildMetricUpsert(userID string, clientID *string, providerID domain.ProviderID, metric domain.NormalizedMetric) (string, []any, error) {
	var creatives any
	if len(metric.Creatives) > 0 {
		encoded, err := json.Marshal(metric.Creatives)
		if err != nil {
			return "", nil, fmt.Errorf("erro ao serializar criativos: %w", err)
		}
		creatives = encoded
	}

	var rawPayload any
	if len(metric.RawPayload) > 0 {
		rawPayload = []byte(metric.RawPayload)
	}

	// campaign_id participa da chave única, então NULL vira string vazia
	campaignID := ""
	if metric.CampaignID != nil {
		campaignID = *metric.CampaignID
	}

	id, err := utils.GenerateID()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao gerar identificador: %w", err)
	}

	return squirrel.
		Insert(adMetricsTable).
		Columns(
			"id", "user_id", "client_id", "provider_id", "campaign_id", "campaign_name",
			"date", "spend", "impressions", "clicks", "conversions", "revenue",
			"creatives", "raw_payload", "synced_at",
		).
		Values(
			id,
			userID,
			clientID,
			providerID,
			campaignID,
			metric.CampaignName,
			metric.Date,
			metric.Spend,
			metric.Impressions,
			metric.Clicks,
			metric.Conversions,
			metric.Revenue,
			creatives,
			rawPayload,
			time.Now().UTC(),
		).
		Suffix(`ON CONFLICT (user_id, client_id, provider_id, campaign_id, date) DO UPDATE SET
			campaign_name = EXCLUDED.campaign_name,
			spend = EXCLUDED.spend,
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			conversions = EXCLUDED.conversions,
			revenue = EXCLUDED.revenue,
			creatives = EXCLUDED.creatives,
			raw_payload = EXCLUDED.raw_payload,
			synced_at = EXCLUDED.synced_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
