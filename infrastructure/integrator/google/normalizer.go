package google

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/utils"
)

// NormalizeSearchRow converte uma linha do googleAds:search no formato comum.
// O custo vem em micros; valores ausentes ou não-parseáveis viram 0.
func NormalizeSearchRow(raw json.RawMessage, now time.Time) domain.NormalizedMetric {
	metric := domain.NormalizedMetric{
		ProviderID: domain.ProviderGoogle,
		Date:       utils.UTCDay(now).Format(time.DateOnly),
		RawPayload: raw,
	}

	var row map[string]any
	if err := json.Unmarshal(raw, &row); err != nil {
		return metric
	}

	if segments, ok := row["segments"].(map[string]any); ok {
		if date, ok := segments["date"].(string); ok && date != "" {
			metric.Date = date
		}
	}

	if metrics, ok := row["metrics"].(map[string]any); ok {
		metric.Spend = utils.ToFloat(metrics["costMicros"]) / 1e6
		metric.Impressions = utils.ToFloat(metrics["impressions"])
		metric.Clicks = utils.ToFloat(metrics["clicks"])
		metric.Conversions = utils.ToFloat(metrics["conversions"])
		metric.Revenue = utils.ToFloatPtr(metrics["conversionsValue"])
	}

	if campaign, ok := row["campaign"].(map[string]any); ok {
		if id := stringValue(campaign["id"]); id != "" {
			metric.CampaignID = &id
		}
		if name := stringValue(campaign["name"]); name != "" {
			metric.CampaignName = &name
		}
	}

	return metric
}

// stringValue aceita ids que a API retorna ora como string, ora como número
func stringValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatInt(int64(value), 10)
	}
	return ""
}
