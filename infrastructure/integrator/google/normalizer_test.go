package google

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/adsync-api/internal/domain"
)

func TestNormalizeSearchRow(t *testing.T) {
	raw := json.RawMessage(`{
		"campaign": {"id": "2010001", "name": "Busca - Marca"},
		"segments": {"date": "2026-08-22"},
		"metrics": {
			"costMicros": "12345670",
			"impressions": "8800",
			"clicks": "410",
			"conversions": 12.5,
			"conversionsValue": 950.75
		}
	}`)

	metric := NormalizeSearchRow(raw, time.Now())

	assert.Equal(t, domain.ProviderGoogle, metric.ProviderID)
	assert.Equal(t, "2026-08-22", metric.Date)
	assert.InDelta(t, 12.34567, metric.Spend, 1e-9, "costMicros em micros vira unidade monetária")
	assert.Equal(t, 8800.0, metric.Impressions)
	assert.Equal(t, 410.0, metric.Clicks)
	assert.Equal(t, 12.5, metric.Conversions)
	require.NotNil(t, metric.Revenue)
	assert.Equal(t, 950.75, *metric.Revenue)
	require.NotNil(t, metric.CampaignID)
	assert.Equal(t, "2010001", *metric.CampaignID)
	require.NotNil(t, metric.CampaignName)
	assert.Equal(t, "Busca - Marca", *metric.CampaignName)
}

func TestNormalizeSearchRow_IDNumericoViraString(t *testing.T) {
	raw := json.RawMessage(`{"campaign": {"id": 987654, "name": "Display"}}`)

	metric := NormalizeSearchRow(raw, time.Now())

	require.NotNil(t, metric.CampaignID)
	assert.Equal(t, "987654", *metric.CampaignID)
}

func TestNormalizeSearchRow_SemMetricasUsaDiaCorrente(t *testing.T) {
	now := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)

	metric := NormalizeSearchRow(json.RawMessage(`{}`), now)

	assert.Equal(t, "2026-08-30", metric.Date)
	assert.Zero(t, metric.Spend)
	assert.Nil(t, metric.Revenue)
	assert.Nil(t, metric.CampaignID)
}

func TestAPIErrorClassificacao(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		body        string
		authError   bool
		rateLimited bool
		retryable   bool
	}{
		{
			name:       "UNAUTHENTICATED é erro de autenticação",
			statusCode: 401,
			body:       `{"error":{"code":401,"message":"Request had invalid authentication credentials.","status":"UNAUTHENTICATED"}}`,
			authError:  true,
		},
		{
			name:        "RESOURCE_EXHAUSTED é limite de requisições",
			statusCode:  429,
			body:        `{"error":{"code":429,"message":"Quota exceeded.","status":"RESOURCE_EXHAUSTED"}}`,
			rateLimited: true,
		},
		{
			name:       "UNAVAILABLE é transiente",
			statusCode: 503,
			body:       `{"error":{"code":503,"message":"The service is currently unavailable.","status":"UNAVAILABLE"}}`,
			retryable:  true,
		},
		{
			name:       "INVALID_ARGUMENT falha de vez",
			statusCode: 400,
			body:       `{"error":{"code":400,"message":"Invalid GAQL query.","status":"INVALID_ARGUMENT"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := newAPIError(tt.statusCode, []byte(tt.body), "")

			assert.Equal(t, tt.authError, apiErr.IsAuthError())
			assert.Equal(t, tt.rateLimited, apiErr.IsRateLimitError())
			assert.Equal(t, tt.retryable, apiErr.IsRetryable())
		})
	}
}
