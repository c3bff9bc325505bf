package tiktok

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

// Client busca métricas de campanha no relatório integrado da Business API
// do TikTok
type Client struct {
	Cfg        config.TikTok
	HTTPClient *http.Client
	Engine     *retry.Engine
}

func NewClient(cfg config.TikTok) *Client {
	return &Client{
		Cfg:        cfg,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Engine:     retry.New(retry.DefaultConfig()),
	}
}

type reportData struct {
	List []json.RawMessage `json:"list"`
}

func (c *Client) FetchMetrics(ctx context.Context, params domain.FetchParams) ([]domain.NormalizedMetric, error) {
	if strings.TrimSpace(params.AccountID) == "" {
		return nil, integrator.NewMissingFieldError(domain.ProviderTikTok, "accountId")
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

	var data reportData
	err := c.Engine.Do(ctx, func() error {
		body, err := c.doGet(ctx, c.reportURL(params.AccountID, since, until), token)
		if err != nil {
			return err
		}

		return json.Unmarshal(body, &data)
	}, refresh)
	if err != nil {
		return nil, err
	}

	metrics := make([]domain.NormalizedMetric, 0, len(data.List))
	for _, raw := range data.List {
		metrics = append(metrics, NormalizeReportRow(raw, now))
	}

	logrus.WithFields(logrus.Fields{
		"advertiser_id": params.AccountID,
		"metrics":       len(metrics),
	}).Debug("tiktok: métricas obtidas com sucesso")

	return metrics, nil
}

func (c *Client) reportURL(advertiserID string, since, until time.Time) string {
	query := url.Values{}
	query.Add("advertiser_id", advertiserID)
	query.Add("report_type", "BASIC")
	query.Add("data_level", "AUCTION_CAMPAIGN")
	query.Add("dimensions", `["campaign_id","stat_time_day"]`)
	query.Add("metrics", `["spend","impressions","clicks","conversion","total_complete_payment","campaign_name"]`)
	query.Add("start_date", since.Format(time.DateOnly))
	query.Add("end_date", until.Format(time.DateOnly))
	query.Add("page_size", "1000")

	return fmt.Sprintf("%s/open_api/v1.3/report/integrated/get/?%s", c.Cfg.BaseURL, query.Encode())
}

// doGet executa a requisição. O TikTok responde HTTP 200 mesmo em erro,
// então o código do corpo também é classificado.
func (c *Client) doGet(ctx context.Context, requestURL, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "tiktok: erro ao criar a requisição")
	}

	req.Header.Set("Access-Token", token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "tiktok: erro ao ler resposta")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, body, resp.Header.Get("Retry-After"))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(err, "tiktok: erro ao decodificar resposta")
	}
	if env.Code != codeOK {
		return nil, newAPIError(resp.StatusCode, body, resp.Header.Get("Retry-After"))
	}

	return env.Data, nil
}
