package refreshing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
)

// Buffer de renovação proativa por provedor. O LinkedIn usa 24 horas porque
// seus tokens vivem ~60 dias e renovar na véspera evita falhas na hora da
// sincronização; os demais provedores usam uma margem curta.
const (
	DefaultRefreshBuffer  = 5 * time.Minute
	LinkedInRefreshBuffer = 24 * time.Hour
)

// IntegrationTokenError indica que o token da integração não pôde ser
// renovado. O orquestrador trata esse erro no nível da integração, não como
// falha genérica de sincronização.
type IntegrationTokenError struct {
	UserID     string
	ProviderID domain.ProviderID
	Message    string
}

func (e *IntegrationTokenError) Error() string {
	return fmt.Sprintf("token da integração %s inválido: %s", e.ProviderID, e.Message)
}

// Service renova tokens de acesso por provedor e persiste o resultado na
// integração correspondente
type Service interface {
	RefreshAccessToken(ctx context.Context, userID string, providerID domain.ProviderID, clientID *string) (string, error)
}

type service struct {
	cfg             *config.Config
	integrationRepo repository.AdIntegrationRepository
	httpClient      *http.Client

	// Evita renovações concorrentes do mesmo processo
	refreshMutex sync.Mutex
}

func NewService(cfg *config.Config, integrationRepo repository.AdIntegrationRepository) Service {
	return &service{
		cfg:             cfg,
		integrationRepo: integrationRepo,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RefreshBuffer retorna a margem de renovação proativa do provedor
func RefreshBuffer(providerID domain.ProviderID) time.Duration {
	if providerID == domain.ProviderLinkedIn {
		return LinkedInRefreshBuffer
	}
	return DefaultRefreshBuffer
}

// IsTokenExpiringSoon verifica se o token expira dentro da margem dada.
// Um expiresAt nulo significa que o provedor não informa expiração e o token
// é tratado como válido até prova em contrário.
func IsTokenExpiringSoon(expiresAt *time.Time, buffer time.Duration) bool {
	if expiresAt == nil {
		return false
	}
	return time.Until(*expiresAt) <= buffer
}

// tokenResult é o resultado comum das trocas de token dos quatro provedores
type tokenResult struct {
	AccessToken  string
	RefreshToken *string
	ExpiresIn    int64
}

func (s *service) RefreshAccessToken(ctx context.Context, userID string, providerID domain.ProviderID, clientID *string) (string, error) {
	s.refreshMutex.Lock()
	defer s.refreshMutex.Unlock()

	integration, err := s.integrationRepo.GetAdIntegration(userID, providerID, clientID)
	if err != nil {
		return "", fmt.Errorf("erro ao buscar integração para renovação de token: %w", err)
	}
	if integration == nil {
		return "", &IntegrationTokenError{
			UserID:     userID,
			ProviderID: providerID,
			Message:    "integração não encontrada",
		}
	}

	logrus.Infof("Iniciando renovação do token %s do usuário %s", providerID, userID)

	result, err := s.exchangeToken(ctx, integration)
	if err != nil {
		logrus.Errorf("Erro ao renovar token %s: %v", providerID, err)
		return "", &IntegrationTokenError{
			UserID:     userID,
			ProviderID: providerID,
			Message:    err.Error(),
		}
	}

	expiresAt := calculateExpiration(result.ExpiresIn)
	if err := s.integrationRepo.UpdateTokens(userID, providerID, clientID, result.AccessToken, result.RefreshToken, expiresAt); err != nil {
		return "", fmt.Errorf("erro ao persistir token renovado: %w", err)
	}

	if expiresAt != nil {
		logrus.Infof("Token %s renovado com sucesso. Expira em: %s", providerID, expiresAt.Format(time.RFC3339))
	} else {
		logrus.Infof("Token %s renovado com sucesso", providerID)
	}

	return result.AccessToken, nil
}

func (s *service) exchangeToken(ctx context.Context, integration *domain.AdIntegration) (*tokenResult, error) {
	switch integration.ProviderID {
	case domain.ProviderGoogle:
		return s.refreshGoogleToken(ctx, integration)
	case domain.ProviderFacebook:
		return s.refreshMetaToken(ctx, integration)
	case domain.ProviderLinkedIn:
		return s.refreshLinkedInToken(ctx, integration)
	case domain.ProviderTikTok:
		return s.refreshTikTokToken(ctx, integration)
	default:
		return nil, fmt.Errorf("provedor desconhecido: %s", integration.ProviderID)
	}
}

// refreshGoogleToken troca o refresh token por um access token novo no
// endpoint OAuth do Google. O refresh token do Google não rotaciona.
func (s *service) refreshGoogleToken(ctx context.Context, integration *domain.AdIntegration) (*tokenResult, error) {
	if integration.RefreshToken == nil || *integration.RefreshToken == "" {
		return nil, fmt.Errorf("integração sem refresh token. É necessário reautorizar o aplicativo")
	}

	form := url.Values{}
	form.Add("grant_type", "refresh_token")
	form.Add("client_id", s.cfg.Google.ClientID)
	form.Add("client_secret", s.cfg.Google.ClientSecret)
	form.Add("refresh_token", *integration.RefreshToken)

	body, err := s.postForm(ctx, s.cfg.Google.OAuthURL, form)
	if err != nil {
		return nil, err
	}

	var response struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}
	if response.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	return &tokenResult{AccessToken: response.AccessToken, ExpiresIn: response.ExpiresIn}, nil
}

// refreshMetaToken troca o token atual por um token de longa duração via
// fb_exchange_token. O Meta não emite refresh token separado.
func (s *service) refreshMetaToken(ctx context.Context, integration *domain.AdIntegration) (*tokenResult, error) {
	if integration.AccessToken == "" {
		return nil, fmt.Errorf("token de acesso não pode ser vazio")
	}

	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", s.cfg.Meta.AppID)
	params.Add("client_secret", s.cfg.Meta.AppSecret)
	params.Add("fb_exchange_token", integration.AccessToken)

	endpoint := fmt.Sprintf("%s/oauth/access_token?%s", s.cfg.Meta.URL, params.Encode())

	body, err := s.doRequest(ctx, http.MethodGet, endpoint, "", nil)
	if err != nil {
		if strings.Contains(err.Error(), "Error validating access token") ||
			strings.Contains(err.Error(), "Session has expired") ||
			strings.Contains(err.Error(), "The session has been invalidated") {
			return nil, fmt.Errorf("o token de acesso expirou e não pode ser renovado automaticamente. "+
				"É necessário reautorizar o aplicativo: %w", err)
		}
		return nil, err
	}

	var response struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}
	if response.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	return &tokenResult{AccessToken: response.AccessToken, ExpiresIn: response.ExpiresIn}, nil
}

// refreshLinkedInToken troca o refresh token no endpoint OAuth do LinkedIn.
// O LinkedIn rotaciona o refresh token a cada troca
func (s *service) refreshLinkedInToken(ctx context.Context, integration *domain.AdIntegration) (*tokenResult, error) {
	if integration.RefreshToken == nil || *integration.RefreshToken == "" {
		return nil, fmt.Errorf("integração sem refresh token. É necessário reautorizar o aplicativo")
	}

	form := url.Values{}
	form.Add("grant_type", "refresh_token")
	form.Add("client_id", s.cfg.LinkedIn.ClientID)
	form.Add("client_secret", s.cfg.LinkedIn.ClientSecret)
	form.Add("refresh_token", *integration.RefreshToken)

	body, err := s.postForm(ctx, s.cfg.LinkedIn.OAuthURL, form)
	if err != nil {
		return nil, err
	}

	var response struct {
		AccessToken  string `json:"access_token"`
		ExpiresIn    int64  `json:"expires_in"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}
	if response.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	result := &tokenResult{AccessToken: response.AccessToken, ExpiresIn: response.ExpiresIn}
	if response.RefreshToken != "" {
		result.RefreshToken = &response.RefreshToken
	}

	return result, nil
}

// refreshTikTokToken troca o refresh token na Business API do TikTok, que
// envelopa a resposta em {code, message, data} mesmo com HTTP 200
func (s *service) refreshTikTokToken(ctx context.Context, integration *domain.AdIntegration) (*tokenResult, error) {
	if integration.RefreshToken == nil || *integration.RefreshToken == "" {
		return nil, fmt.Errorf("integração sem refresh token. É necessário reautorizar o aplicativo")
	}

	payload, err := json.Marshal(map[string]string{
		"app_id":        s.cfg.TikTok.AppID,
		"secret":        s.cfg.TikTok.AppSecret,
		"grant_type":    "refresh_token",
		"refresh_token": *integration.RefreshToken,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar requisição: %w", err)
	}

	endpoint := fmt.Sprintf("%s/open_api/v1.3/oauth2/access_token/", s.cfg.TikTok.BaseURL)

	body, err := s.doRequest(ctx, http.MethodPost, endpoint, "application/json", payload)
	if err != nil {
		return nil, err
	}

	var response struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
			ExpiresIn    int64  `json:"expires_in"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}
	if response.Code != 0 {
		return nil, fmt.Errorf("erro na resposta da API. Código: %d, Mensagem: %s", response.Code, response.Message)
	}
	if response.Data.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	result := &tokenResult{AccessToken: response.Data.AccessToken, ExpiresIn: response.Data.ExpiresIn}
	if response.Data.RefreshToken != "" {
		result.RefreshToken = &response.Data.RefreshToken
	}

	return result, nil
}

func (s *service) postForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	return s.doRequest(ctx, http.MethodPost, endpoint, "application/x-www-form-urlencoded", []byte(form.Encode()))
}

func (s *service) doRequest(ctx context.Context, method, endpoint, contentType string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao chamar endpoint de token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("erro na resposta da API. Status: %d, Corpo: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// calculateExpiration converte expires_in em data absoluta. Zero significa
// que o provedor não informou expiração.
func calculateExpiration(expiresIn int64) *time.Time {
	if expiresIn <= 0 {
		return nil
	}
	expiresAt := time.Now().UTC().Add(time.Duration(expiresIn) * time.Second)
	return &expiresAt
}
