package meta

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/adsync-api/internal/domain"
)

func TestNormalizeInsightRow(t *testing.T) {
	raw := json.RawMessage(`{
		"campaign_id": "c-1",
		"campaign_name": "Campanha de inverno",
		"date_start": "2026-08-20",
		"spend": "125.43",
		"impressions": "10450",
		"clicks": "312",
		"actions": [
			{"action_type": "purchase", "value": "8"},
			{"action_type": "lead", "value": "3"},
			{"action_type": "link_click", "value": "290"}
		],
		"action_values": [
			{"action_type": "purchase", "value": "1890.00"}
		]
	}`)

	metric := NormalizeInsightRow(raw, time.Now())

	assert.Equal(t, domain.ProviderFacebook, metric.ProviderID)
	assert.Equal(t, "2026-08-20", metric.Date)
	assert.Equal(t, 125.43, metric.Spend)
	assert.Equal(t, 10450.0, metric.Impressions)
	assert.Equal(t, 312.0, metric.Clicks)
	assert.Equal(t, 11.0, metric.Conversions, "só purchase e lead contam como conversão")
	require.NotNil(t, metric.Revenue)
	assert.Equal(t, 1890.00, *metric.Revenue)
	require.NotNil(t, metric.CampaignID)
	assert.Equal(t, "c-1", *metric.CampaignID)
	require.NotNil(t, metric.CampaignName)
	assert.Equal(t, "Campanha de inverno", *metric.CampaignName)
	assert.Equal(t, raw, metric.RawPayload)
}

func TestNormalizeInsightRow_CamposAusentesViramZero(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

	metric := NormalizeInsightRow(json.RawMessage(`{}`), now)

	assert.Equal(t, "2026-08-30", metric.Date, "sem date_start usa o dia corrente em UTC")
	assert.Zero(t, metric.Spend)
	assert.Zero(t, metric.Impressions)
	assert.Zero(t, metric.Conversions)
	assert.Nil(t, metric.Revenue, "sem action_values a receita fica ausente, não zero")
	assert.Nil(t, metric.CampaignID)
}

func TestNormalizeInsightRow_PayloadInvalidoPreservaOCru(t *testing.T) {
	raw := json.RawMessage(`nao é json`)

	metric := NormalizeInsightRow(raw, time.Now())

	assert.Equal(t, domain.ProviderFacebook, metric.ProviderID)
	assert.Equal(t, raw, metric.RawPayload)
	assert.Zero(t, metric.Spend)
}

func TestNormalizeAdRow(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "ad-9",
		"name": "Vídeo institucional",
		"creative": {"object_type": "VIDEO", "thumbnail_url": "https://cdn.example.com/thumb.jpg"},
		"insights": {"data": [{"spend": "42.10", "impressions": "900", "clicks": "33",
			"actions": [{"action_type": "purchase", "value": "2"}],
			"action_values": [{"action_type": "purchase", "value": "310.00"}]}]}
	}`)

	creative := normalizeAdRow(raw)

	assert.Equal(t, "ad-9", creative.ID)
	assert.Equal(t, "Vídeo institucional", creative.Name)
	assert.Equal(t, "VIDEO", creative.Type)
	require.NotNil(t, creative.URL)
	assert.Equal(t, "https://cdn.example.com/thumb.jpg", *creative.URL)
	require.NotNil(t, creative.Spend)
	assert.Equal(t, 42.10, *creative.Spend)
	require.NotNil(t, creative.Conversions)
	assert.Equal(t, 2.0, *creative.Conversions)
	require.NotNil(t, creative.Revenue)
	assert.Equal(t, 310.00, *creative.Revenue)
}

func TestAPIErrorClassificacao(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		body        string
		retryAfter  string
		authError   bool
		rateLimited bool
		retryable   bool
		wait        time.Duration
	}{
		{
			name:       "token expirado código 190",
			statusCode: 400,
			body:       `{"error":{"message":"expired","type":"OAuthException","code":190}}`,
			authError:  true,
		},
		{
			name:       "subcódigo de sessão invalidada",
			statusCode: 400,
			body:       `{"error":{"message":"invalidated","type":"OAuthException","code":102,"error_subcode":463}}`,
			authError:  true,
		},
		{
			name:        "limite de requisições com Retry-After",
			statusCode:  429,
			body:        `{"error":{"message":"too many calls","code":4}}`,
			retryAfter:  "30",
			rateLimited: true,
			wait:        30 * time.Second,
		},
		{
			name:       "erro temporário do Meta",
			statusCode: 500,
			body:       `{"error":{"message":"unknown","code":2}}`,
			retryable:  true,
		},
		{
			name:       "erro de validação não-retryable",
			statusCode: 400,
			body:       `{"error":{"message":"Invalid parameter","code":100}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := newAPIError(tt.statusCode, []byte(tt.body), tt.retryAfter)

			assert.Equal(t, tt.authError, apiErr.IsAuthError())
			assert.Equal(t, tt.rateLimited, apiErr.IsRateLimitError())
			assert.Equal(t, tt.retryable, apiErr.IsRetryable())
			assert.Equal(t, tt.wait, apiErr.RetryAfter())
		})
	}
}
