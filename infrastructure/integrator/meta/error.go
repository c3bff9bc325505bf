package meta

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// IsRateLimited verifica se o erro é de limite de requisições.
// Códigos 4 e 17 são limites de aplicativo/conta; 32 é de página; 613 é
// de chamadas customizadas.
func (e *ErrorResponse) IsRateLimited() bool {
	switch e.Error.Code {
	case 4, 17, 32, 613:
		return true
	}
	return false
}

// APIError é o erro classificado de uma chamada à API do Meta.
// A classificação é calculada na construção e nunca muda depois.
type APIError struct {
	StatusCode int
	Code       int
	Subcode    int
	Type       string
	Message    string
	FBTraceID  string

	authError   bool
	rateLimited bool
	retryable   bool
	retryAfter  time.Duration
}

func newAPIError(statusCode int, body []byte, retryAfterHeader string) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Code != 0 {
		apiErr.Code = errResp.Error.Code
		apiErr.Subcode = errResp.Error.ErrorSubcode
		apiErr.Type = errResp.Error.Type
		apiErr.Message = errResp.Error.Message
		apiErr.FBTraceID = errResp.Error.FBTraceID
	}

	apiErr.authError = statusCode == 401 || errResp.IsTokenExpired()
	apiErr.rateLimited = statusCode == 429 || errResp.IsRateLimited()
	// Códigos 1 e 2 são erros temporários do lado do Meta
	apiErr.retryable = statusCode >= 500 || apiErr.Code == 1 || apiErr.Code == 2

	if seconds, err := strconv.Atoi(retryAfterHeader); err == nil && seconds > 0 {
		apiErr.retryAfter = time.Duration(seconds) * time.Second
	}

	return apiErr
}

func (e *APIError) Error() string {
	return fmt.Sprintf("meta: erro na API. status=%d code=%d subcode=%d message=%s", e.StatusCode, e.Code, e.Subcode, e.Message)
}

func (e *APIError) IsAuthError() bool          { return e.authError }
func (e *APIError) IsRateLimitError() bool     { return e.rateLimited }
func (e *APIError) IsRetryable() bool          { return e.retryable }
func (e *APIError) RetryAfter() time.Duration  { return e.retryAfter }
