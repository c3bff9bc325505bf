package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
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

// Client busca métricas de campanha no adAnalytics do LinkedIn
type Client struct {
	Cfg        config.LinkedIn
	HTTPClient *http.Client
	Engine     *retry.Engine
}

func NewClient(cfg config.LinkedIn) *Client {
	return &Client{
		Cfg:        cfg,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Engine:     retry.New(retry.DefaultConfig()),
	}
}

type analyticsResponse struct {
	Elements []json.RawMessage `json:"elements"`
}

func (c *Client) FetchMetrics(ctx context.Context, params domain.FetchParams) ([]domain.NormalizedMetric, error) {
	if strings.TrimSpace(params.AccountID) == "" {
		return nil, integrator.NewMissingFieldError(domain.ProviderLinkedIn, "accountId")
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

	var response analyticsResponse
	err := c.Engine.Do(ctx, func() error {
		body, err := c.doGet(ctx, c.analyticsURL(params.AccountID, since, until), token)
		if err != nil {
			return err
		}

		return json.Unmarshal(body, &response)
	}, refresh)
	if err != nil {
		return nil, err
	}

	metrics := make([]domain.NormalizedMetric, 0, len(response.Elements))
	for _, raw := range response.Elements {
		metrics = append(metrics, NormalizeAnalyticsRow(raw, now))
	}

	logrus.WithFields(logrus.Fields{
		"account_id": params.AccountID,
		"metrics":    len(metrics),
	}).Debug("linkedin: métricas obtidas com sucesso")

	return metrics, nil
}

func (c *Client) analyticsURL(accountID string, since, until time.Time) string {
	accountURN := accountID
	if !strings.HasPrefix(accountURN, "urn:") {
		accountURN = "urn:li:sponsoredAccount:" + accountURN
	}

	// A janela vai em datetime ISO; o fim cobre o dia inteiro
	query := url.Values{}
	query.Add("q", "analytics")
	query.Add("pivot", "CAMPAIGN")
	query.Add("timeGranularity", "DAILY")
	query.Add("accounts", accountURN)
	query.Add("dateRange.start", since.Format(time.RFC3339))
	query.Add("dateRange.end", until.Add(24*time.Hour-time.Second).Format(time.RFC3339))
	query.Add("fields", "dateRange,pivotValues,costInLocalCurrency,impressions,clicks,externalWebsiteConversions")

	return fmt.Sprintf("%s/v2/adAnalytics?%s", c.Cfg.BaseURL, query.Encode())
}

func (c *Client) doGet(ctx context.Context, requestURL, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "linkedin: erro ao criar a requisição")
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "linkedin: erro ao ler resposta")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, body, resp.Header.Get("Retry-After"))
	}

	return body, nil
}
