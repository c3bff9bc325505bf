package meta

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/vfg2006/adsync-api/infrastructure/integrator"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/retry"
	"github.com/vfg2006/adsync-api/pkg/utils"
)

const (
	defaultPageLimit = 10
	insightFields    = "campaign_id,campaign_name,date_start,spend,impressions,clicks,actions,action_values"
)

// Client busca insights diários de campanhas na Graph API do Meta
type Client struct {
	Cfg        config.Meta
	HTTPClient *http.Client
	Engine     *retry.Engine
	Limiter    *rate.Limiter
}

func NewClient(cfg config.Meta) *Client {
	if cfg.InsightsPageLimit <= 0 {
		cfg.InsightsPageLimit = defaultPageLimit
	}

	return &Client{
		Cfg:        cfg,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Engine:     retry.New(retry.DefaultConfig()),
		// Limite cortês de requisições por segundo contra a plataforma
		Limiter: rate.NewLimiter(rate.Limit(10), 5),
	}
}

type insightsResponse struct {
	Data   []json.RawMessage `json:"data"`
	Paging struct {
		Cursors struct {
			After string `json:"after"`
		} `json:"cursors"`
		Next string `json:"next"`
	} `json:"paging"`
}

// FetchMetrics busca as métricas por campanha e dia da conta na janela
// solicitada, paginando via cursor "after" e enriquecendo com o detalhamento
// de criativos por campanha
func (c *Client) FetchMetrics(ctx context.Context, params domain.FetchParams) ([]domain.NormalizedMetric, error) {
	if strings.TrimSpace(params.AccountID) == "" {
		return nil, integrator.NewMissingFieldError(domain.ProviderFacebook, "accountId")
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

	metrics := make([]domain.NormalizedMetric, 0)
	after := ""

	for page := 0; page < c.Cfg.InsightsPageLimit; page++ {
		var response insightsResponse

		err := c.Engine.Do(ctx, func() error {
			body, err := c.doGet(ctx, c.insightsURL(params.AccountID, since, until, token, after))
			if err != nil {
				return err
			}

			return json.Unmarshal(body, &response)
		}, refresh)
		if err != nil {
			return nil, err
		}

		for _, raw := range response.Data {
			metrics = append(metrics, NormalizeInsightRow(raw, now))
		}

		if response.Paging.Next == "" || response.Paging.Cursors.After == "" {
			break
		}
		after = response.Paging.Cursors.After
	}

	logrus.WithFields(logrus.Fields{
		"account_id": params.AccountID,
		"metrics":    len(metrics),
	}).Debug("meta: insights obtidos, iniciando enriquecimento de criativos")

	c.enrichWithCreatives(ctx, metrics, since, until, token)

	return metrics, nil
}

// doGet executa a requisição e classifica respostas não-200 em APIError
func (c *Client) doGet(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "meta: erro ao criar a requisição")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "meta: erro ao ler resposta")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, body, resp.Header.Get("Retry-After"))
	}

	return body, nil
}

func (c *Client) insightsURL(accountID string, since, until time.Time, token, after string) string {
	baseURL := fmt.Sprintf("%s/act_%s/insights", c.Cfg.URL, accountID)

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", since.Format(time.DateOnly), until.Format(time.DateOnly))

	params := url.Values{}
	params.Add("fields", insightFields)
	params.Add("level", "campaign")
	params.Add("time_increment", "1")
	params.Add("time_range", timeRange)
	params.Add("limit", "100")
	params.Add("access_token", token)
	if after != "" {
		params.Add("after", after)
	}
	c.addProof(&params, token)

	return baseURL + "?" + params.Encode()
}

// addProof adiciona o appsecret_proof (HMAC-SHA256 do token com o app secret)
// exigido pelo Meta para chamadas servidor-a-servidor
func (c *Client) addProof(params *url.Values, token string) {
	if c.Cfg.AppSecret == "" {
		return
	}

	mac := hmac.New(sha256.New, []byte(c.Cfg.AppSecret))
	mac.Write([]byte(token))
	params.Add("appsecret_proof", hex.EncodeToString(mac.Sum(nil)))
}
