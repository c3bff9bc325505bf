package linkedin

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ErrorResponse representa a estrutura de erro da API do LinkedIn
type ErrorResponse struct {
	ServiceErrorCode int    `json:"serviceErrorCode"`
	Message          string `json:"message"`
	Status           int    `json:"status"`
}

// IsTokenExpired verifica se o erro é de token expirado ou revogado.
// 65600/65601 = token revogado/expirado, 65604 = token não autorizado.
func (e *ErrorResponse) IsTokenExpired() bool {
	switch e.ServiceErrorCode {
	case 65600, 65601, 65604:
		return true
	}
	return false
}

// APIError é o erro classificado de uma chamada à API do LinkedIn
type APIError struct {
	StatusCode       int
	ServiceErrorCode int
	Message          string

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
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		apiErr.ServiceErrorCode = errResp.ServiceErrorCode
		apiErr.Message = errResp.Message
	}

	apiErr.authError = statusCode == 401 || errResp.IsTokenExpired()
	apiErr.rateLimited = statusCode == 429
	apiErr.retryable = statusCode >= 500

	if seconds, err := strconv.Atoi(retryAfterHeader); err == nil && seconds > 0 {
		apiErr.retryAfter = time.Duration(seconds) * time.Second
	}

	return apiErr
}

func (e *APIError) Error() string {
	return fmt.Sprintf("linkedin: erro na API. status=%d service_error_code=%d message=%s", e.StatusCode, e.ServiceErrorCode, e.Message)
}

func (e *APIError) IsAuthError() bool          { return e.authError }
func (e *APIError) IsRateLimitError() bool     { return e.rateLimited }
func (e *APIError) IsRetryable() bool          { return e.retryable }
func (e *APIError) RetryAfter() time.Duration  { return e.retryAfter }
