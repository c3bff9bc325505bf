package google

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
)

func TestFetchMetrics_CredenciaisObrigatorias(t *testing.T) {
	client := NewClient(config.Google{BaseURL: "http://example.invalid", Version: "v17"})

	_, err := client.FetchMetrics(context.Background(), domain.FetchParams{DeveloperToken: "dev"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accountId")

	_, err = client.FetchMetrics(context.Background(), domain.FetchParams{AccountID: "123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "developerToken")
}

func TestFetchMetrics_MontaRequisicaoDeBusca(t *testing.T) {
	var gotPath, gotAuth, gotDevToken, gotLoginCustomer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotDevToken = r.Header.Get("developer-token")
		gotLoginCustomer = r.Header.Get("login-customer-id")
		fmt.Fprint(w, `{"results":[{"segments":{"date":"2026-08-25"},"metrics":{"costMicros":"5000000"}}]}`)
	}))
	defer server.Close()

	client := NewClient(config.Google{BaseURL: server.URL, Version: "v17"})

	metrics, err := client.FetchMetrics(context.Background(), domain.FetchParams{
		AccountID:       "123-456-7890",
		DeveloperToken:  "dev-token",
		LoginCustomerID: "999-888-7777",
		AccessToken:     "token",
		TimeframeDays:   7,
	})

	require.NoError(t, err)
	assert.Equal(t, "/v17/customers/1234567890/googleAds:search", gotPath, "traços do customer id são removidos")
	assert.Equal(t, "Bearer token", gotAuth)
	assert.Equal(t, "dev-token", gotDevToken)
	assert.Equal(t, "9998887777", gotLoginCustomer)
	require.Len(t, metrics, 1)
	assert.Equal(t, 5.0, metrics[0].Spend)
	assert.Equal(t, "2026-08-25", metrics[0].Date)
}
