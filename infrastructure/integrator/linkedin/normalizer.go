package linkedin

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/utils"
)

// NormalizeAnalyticsRow converte um elemento do adAnalytics no formato comum.
// LinkedIn não tem o conceito de receita nem de criativos neste pivot;
// esses campos ficam ausentes.
func NormalizeAnalyticsRow(raw json.RawMessage, now time.Time) domain.NormalizedMetric {
	metric := domain.NormalizedMetric{
		ProviderID: domain.ProviderLinkedIn,
		Date:       utils.UTCDay(now).Format(time.DateOnly),
		RawPayload: raw,
	}

	var row map[string]any
	if err := json.Unmarshal(raw, &row); err != nil {
		return metric
	}

	if date := extractDate(row["dateRange"]); date != "" {
		metric.Date = date
	}

	metric.Spend = utils.ToFloat(row["costInLocalCurrency"])
	metric.Impressions = utils.ToFloat(row["impressions"])
	metric.Clicks = utils.ToFloat(row["clicks"])
	metric.Conversions = utils.ToFloat(row["externalWebsiteConversions"])

	if id := campaignIDFromPivot(row["pivotValues"]); id != "" {
		metric.CampaignID = &id
	}

	return metric
}

// extractDate monta YYYY-MM-DD a partir do dateRange.start do LinkedIn
func extractDate(v any) string {
	dateRange, ok := v.(map[string]any)
	if !ok {
		return ""
	}

	start, ok := dateRange["start"].(map[string]any)
	if !ok {
		return ""
	}

	year := int(utils.ToFloat(start["year"]))
	month := int(utils.ToFloat(start["month"]))
	day := int(utils.ToFloat(start["day"]))
	if year == 0 || month == 0 || day == 0 {
		return ""
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// campaignIDFromPivot extrai o id numérico do URN da campanha
// (urn:li:sponsoredCampaign:123456789)
func campaignIDFromPivot(v any) string {
	pivots, ok := v.([]any)
	if !ok || len(pivots) == 0 {
		return ""
	}

	urn, ok := pivots[0].(string)
	if !ok {
		return ""
	}

	parts := strings.Split(urn, ":")
	return parts[len(parts)-1]
}
