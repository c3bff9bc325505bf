package meta

import (
	"encoding/json"
	"time"

	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/utils"
)

// Tipos de ação do Meta contabilizados como conversão
var conversionActionTypes = map[string]bool{
	"purchase":              true,
	"lead":                  true,
	"complete_registration": true,
	"offsite_conversion.fb_pixel_purchase": true,
	"offsite_conversion.fb_pixel_lead":     true,
}

// NormalizeInsightRow converte uma linha crua de insights do Meta no formato
// comum. Valores numéricos ausentes ou não-parseáveis viram 0; a linha
// original é preservada em RawPayload.
func NormalizeInsightRow(raw json.RawMessage, now time.Time) domain.NormalizedMetric {
	metric := domain.NormalizedMetric{
		ProviderID: domain.ProviderFacebook,
		Date:       utils.UTCDay(now).Format(time.DateOnly),
		RawPayload: raw,
	}

	var row map[string]any
	if err := json.Unmarshal(raw, &row); err != nil {
		return metric
	}

	if date, ok := row["date_start"].(string); ok && date != "" {
		metric.Date = date
	}

	metric.Spend = utils.ToFloat(row["spend"])
	metric.Impressions = utils.ToFloat(row["impressions"])
	metric.Clicks = utils.ToFloat(row["clicks"])
	metric.Conversions = sumActions(row["actions"])
	metric.Revenue = revenueFromActionValues(row["action_values"])

	if id, ok := row["campaign_id"].(string); ok && id != "" {
		metric.CampaignID = &id
	}
	if name, ok := row["campaign_name"].(string); ok && name != "" {
		metric.CampaignName = &name
	}

	return metric
}

// sumActions soma os valores das ações consideradas conversão
func sumActions(v any) float64 {
	actions, ok := v.([]any)
	if !ok {
		return 0
	}

	total := 0.0
	for _, item := range actions {
		action, ok := item.(map[string]any)
		if !ok {
			continue
		}

		actionType, _ := action["action_type"].(string)
		if conversionActionTypes[actionType] {
			total += utils.ToFloat(action["value"])
		}
	}

	return total
}

// revenueFromActionValues extrai a receita de purchase; nil quando o
// provedor não retornou valores de conversão
func revenueFromActionValues(v any) *float64 {
	values, ok := v.([]any)
	if !ok {
		return nil
	}

	total := 0.0
	found := false
	for _, item := range values {
		value, ok := item.(map[string]any)
		if !ok {
			continue
		}

		actionType, _ := value["action_type"].(string)
		if actionType == "purchase" || actionType == "offsite_conversion.fb_pixel_purchase" {
			total += utils.ToFloat(value["value"])
			found = true
		}
	}

	if !found {
		return nil
	}

	return &total
}
