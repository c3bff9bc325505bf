package domain

import "encoding/json"

// Creative representa o detalhamento por anúncio/criativo de uma campanha
type Creative struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	URL         *string  `json:"url,omitempty"`
	Spend       *float64 `json:"spend,omitempty"`
	Impressions *float64 `json:"impressions,omitempty"`
	Clicks      *float64 `json:"clicks,omitempty"`
	Conversions *float64 `json:"conversions,omitempty"`
	Revenue     *float64 `json:"revenue,omitempty"`
}

// NormalizedMetric é o registro diário de performance no formato comum a
// todos os provedores. Imutável depois de produzido pelo normalizador;
// RawPayload preserva a linha original para auditoria e debug.
type NormalizedMetric struct {
	ProviderID   ProviderID      `json:"providerId"`
	Date         string          `json:"date"` // YYYY-MM-DD
	Spend        float64         `json:"spend"`
	Impressions  float64         `json:"impressions"`
	Clicks       float64         `json:"clicks"`
	Conversions  float64         `json:"conversions"`
	Revenue      *float64        `json:"revenue,omitempty"`
	CampaignID   *string         `json:"campaignId,omitempty"`
	CampaignName *string         `json:"campaignName,omitempty"`
	Creatives    []Creative      `json:"creatives,omitempty"`
	RawPayload   json.RawMessage `json:"rawPayload,omitempty"`
}
