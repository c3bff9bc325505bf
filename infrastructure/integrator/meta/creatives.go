package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/utils"
)

const (
	// Fan-out limitado: lotes de 5 campanhas, no máximo 20 campanhas por
	// execução, com pausa entre lotes para respeitar o limite global
	creativeBatchSize   = 5
	creativeCampaignCap = 20
	creativeBatchPause  = 100 * time.Millisecond
)

// enrichWithCreatives busca o detalhamento por anúncio das campanhas
// presentes nas métricas. Falha de criativo é isolada: loga e segue em
// frente, nunca derruba a busca de métricas.
func (c *Client) enrichWithCreatives(ctx context.Context, metrics []domain.NormalizedMetric, since, until time.Time, token string) {
	campaignIDs := distinctCampaignIDs(metrics, creativeCampaignCap)
	if len(campaignIDs) == 0 {
		return
	}

	creativesByCampaign := make(map[string][]domain.Creative, len(campaignIDs))
	var mu sync.Mutex

	for start := 0; start < len(campaignIDs); start += creativeBatchSize {
		end := start + creativeBatchSize
		if end > len(campaignIDs) {
			end = len(campaignIDs)
		}

		var wg sync.WaitGroup
		for _, campaignID := range campaignIDs[start:end] {
			wg.Add(1)

			go func(id string) {
				defer wg.Done()

				if err := c.Limiter.Wait(ctx); err != nil {
					return
				}

				creatives, err := c.fetchCampaignCreatives(ctx, id, since, until, token)
				if err != nil {
					logrus.WithFields(logrus.Fields{
						"campaign_id": id,
						"error":       err.Error(),
					}).Warn("meta: falha ao buscar criativos da campanha, seguindo sem eles")
					return
				}

				mu.Lock()
				creativesByCampaign[id] = creatives
				mu.Unlock()
			}(campaignID)
		}
		wg.Wait()

		if end < len(campaignIDs) {
			time.Sleep(creativeBatchPause)
		}
	}

	for i := range metrics {
		if metrics[i].CampaignID == nil {
			continue
		}
		if creatives, ok := creativesByCampaign[*metrics[i].CampaignID]; ok && len(creatives) > 0 {
			metrics[i].Creatives = creatives
		}
	}
}

type adsResponse struct {
	Data []json.RawMessage `json:"data"`
}

func (c *Client) fetchCampaignCreatives(ctx context.Context, campaignID string, since, until time.Time, token string) ([]domain.Creative, error) {
	baseURL := fmt.Sprintf("%s/%s/ads", c.Cfg.URL, campaignID)

	insightsField := fmt.Sprintf(
		"insights.time_range({\"since\":\"%s\",\"until\":\"%s\"}){spend,impressions,clicks,actions,action_values}",
		since.Format(time.DateOnly), until.Format(time.DateOnly),
	)

	params := url.Values{}
	params.Add("fields", "id,name,creative{object_type,thumbnail_url},"+insightsField)
	params.Add("limit", "25")
	params.Add("access_token", token)
	c.addProof(&params, token)

	// Sem retry aqui: o enriquecimento é melhor-esforço por definição
	body, err := c.doGet(ctx, baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var response adsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}

	creatives := make([]domain.Creative, 0, len(response.Data))
	for _, raw := range response.Data {
		creatives = append(creatives, normalizeAdRow(raw))
	}

	return creatives, nil
}

// normalizeAdRow converte uma linha de anúncio em Creative
func normalizeAdRow(raw json.RawMessage) domain.Creative {
	var row map[string]any
	if err := json.Unmarshal(raw, &row); err != nil {
		return domain.Creative{}
	}

	creative := domain.Creative{Type: "ad"}

	if id, ok := row["id"].(string); ok {
		creative.ID = id
	}
	if name, ok := row["name"].(string); ok {
		creative.Name = name
	}

	if meta, ok := row["creative"].(map[string]any); ok {
		if objectType, ok := meta["object_type"].(string); ok && objectType != "" {
			creative.Type = objectType
		}
		if thumbnail, ok := meta["thumbnail_url"].(string); ok && thumbnail != "" {
			creative.URL = &thumbnail
		}
	}

	if insights, ok := row["insights"].(map[string]any); ok {
		if data, ok := insights["data"].([]any); ok && len(data) > 0 {
			if first, ok := data[0].(map[string]any); ok {
				creative.Spend = utils.ToFloatPtr(first["spend"])
				creative.Impressions = utils.ToFloatPtr(first["impressions"])
				creative.Clicks = utils.ToFloatPtr(first["clicks"])
				if conversions := sumActions(first["actions"]); conversions > 0 {
					creative.Conversions = &conversions
				}
				creative.Revenue = revenueFromActionValues(first["action_values"])
			}
		}
	}

	return creative
}

// distinctCampaignIDs coleta os ids distintos de campanha preservando a ordem
func distinctCampaignIDs(metrics []domain.NormalizedMetric, limit int) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0)

	for _, metric := range metrics {
		if metric.CampaignID == nil || *metric.CampaignID == "" {
			continue
		}
		if seen[*metric.CampaignID] {
			continue
		}

		seen[*metric.CampaignID] = true
		ids = append(ids, *metric.CampaignID)
		if len(ids) >= limit {
			break
		}
	}

	return ids
}
