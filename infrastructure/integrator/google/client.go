package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/adsync-api/infrastructure/integrator"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/retry"
	"github.com/vfg2006/adsync-api/pkg/utils"
)

// Client busca métricas de campanha na API REST do Google Ads via GAQL
type Client struct {
	Cfg        config.Google
	HTTPClient *http.Client
	Engine     *retry.Engine
}

func NewClient(cfg config.Google) *Client {
	return &Client{
		Cfg:        cfg,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Engine:     retry.New(retry.DefaultConfig()),
	}
}

type searchResponse struct {
	Results []json.RawMessage `json:"results"`
}

func (c *Client) FetchMetrics(ctx context.Context, params domain.FetchParams) ([]domain.NormalizedMetric, error) {
	if strings.TrimSpace(params.AccountID) == "" {
		return nil, integrator.NewMissingFieldError(domain.ProviderGoogle, "accountId")
	}
	if strings.TrimSpace(params.DeveloperToken) == "" {
		return nil, integrator.NewMissingFieldError(domain.ProviderGoogle, "developerToken")
	}

	now := time.Now()
	since, until := utils.TimeframeRange(now, params.TimeframeDays)
	token := params.AccessToken

	var refresh func() error
	if params.RefreshAccessToken != nil {
		refresh = func() error {
			newToken, err := params.RefreshAccessToken()
			if err != nil {
				return err
			}
			token = newToken
			return nil
		}
	}

	query := fmt.Sprintf(
		"SELECT segments.date, campaign.id, campaign.name, metrics.cost_micros, metrics.impressions, metrics.clicks, metrics.conversions, metrics.conversions_value "+
			"FROM campaign WHERE segments.date BETWEEN '%s' AND '%s' ORDER BY segments.date",
		since.Format(time.DateOnly), until.Format(time.DateOnly),
	)

	var response searchResponse
	err := c.Engine.Do(ctx, func() error {
		body, err := c.doSearch(ctx, params, token, query)
		if err != nil {
			return err
		}

		return json.Unmarshal(body, &response)
	}, refresh)
	if err != nil {
		return nil, err
	}

	metrics := make([]domain.NormalizedMetric, 0, len(response.Results))
	for _, raw := range response.Results {
		metrics = append(metrics, NormalizeSearchRow(raw, now))
	}

	logrus.WithFields(logrus.Fields{
		"customer_id": params.AccountID,
		"metrics":     len(metrics),
	}).Debug("google: métricas obtidas com sucesso")

	return metrics, nil
}

func (c *Client) doSearch(ctx context.Context, params domain.FetchParams, token, query string) ([]byte, error) {
	// Ids de cliente chegam da UI com traços (123-456-7890)
	customerID := strings.ReplaceAll(params.AccountID, "-", "")

	requestURL := fmt.Sprintf("%s/%s/customers/%s/googleAds:search", c.Cfg.BaseURL, c.Cfg.Version, customerID)

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, errors.Wrap(err, "google: erro ao montar o corpo da requisição")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "google: erro ao criar a requisição")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("developer-token", params.DeveloperToken)
	if params.LoginCustomerID != "" {
		req.Header.Set("login-customer-id", strings.ReplaceAll(params.LoginCustomerID, "-", ""))
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "google: erro ao ler resposta")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, body, resp.Header.Get("Retry-After"))
	}

	return body, nil
}
