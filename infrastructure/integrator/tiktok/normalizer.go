package tiktok

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/utils"
)

// NormalizeReportRow converte uma linha do relatório integrado no formato
// comum. O TikTok agrupa dimensões e métricas em objetos separados e retorna
// os números como string.
func NormalizeReportRow(raw json.RawMessage, now time.Time) domain.NormalizedMetric {
	metric := domain.NormalizedMetric{
		ProviderID: domain.ProviderTikTok,
		Date:       utils.UTCDay(now).Format(time.DateOnly),
		RawPayload: raw,
	}

	var row map[string]any
	if err := json.Unmarshal(raw, &row); err != nil {
		return metric
	}

	if dimensions, ok := row["dimensions"].(map[string]any); ok {
		if statDay, ok := dimensions["stat_time_day"].(string); ok && statDay != "" {
			// stat_time_day vem como "2026-08-29 00:00:00"
			metric.Date = strings.SplitN(statDay, " ", 2)[0]
		}
		if id, ok := dimensions["campaign_id"].(string); ok && id != "" {
			metric.CampaignID = &id
		}
	}

	if metrics, ok := row["metrics"].(map[string]any); ok {
		metric.Spend = utils.ToFloat(metrics["spend"])
		metric.Impressions = utils.ToFloat(metrics["impressions"])
		metric.Clicks = utils.ToFloat(metrics["clicks"])
		metric.Conversions = utils.ToFloat(metrics["conversion"])
		metric.Revenue = utils.ToFloatPtr(metrics["total_complete_payment"])

		if name, ok := metrics["campaign_name"].(string); ok && name != "" {
			metric.CampaignName = &name
		}
	}

	return metric
}
