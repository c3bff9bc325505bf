package google

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ErrorResponse representa a estrutura de erro da API do Google Ads
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// APIError é o erro classificado de uma chamada à API do Google Ads
type APIError struct {
	StatusCode int
	Status     string
	Message    string

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
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		apiErr.Status = errResp.Error.Status
		apiErr.Message = errResp.Error.Message
	}

	apiErr.authError = statusCode == 401 || apiErr.Status == "UNAUTHENTICATED"
	apiErr.rateLimited = statusCode == 429 || apiErr.Status == "RESOURCE_EXHAUSTED"
	apiErr.retryable = statusCode >= 500 ||
		apiErr.Status == "INTERNAL" || apiErr.Status == "UNAVAILABLE" || apiErr.Status == "DEADLINE_EXCEEDED"

	if seconds, err := strconv.Atoi(retryAfterHeader); err == nil && seconds > 0 {
		apiErr.retryAfter = time.Duration(seconds) * time.Second
	}

	return apiErr
}

func (e *APIError) Error() string {
	return fmt.Sprintf("google: erro na API. status=%d grpc_status=%s message=%s", e.StatusCode, e.Status, e.Message)
}

func (e *APIError) IsAuthError() bool          { return e.authError }
func (e *APIError) IsRateLimitError() bool     { return e.rateLimited }
func (e *APIError) IsRetryable() bool          { return e.retryable }
func (e *APIError) RetryAfter() time.Duration  { return e.retryAfter }
