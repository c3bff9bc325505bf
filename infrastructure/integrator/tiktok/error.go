package tiktok

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Códigos de negócio da Business API do TikTok. A API responde HTTP 200
// mesmo em erro; o código no corpo é quem manda.
const (
	codeOK               = 0
	codeRateLimit        = 40100
	codeTokenInvalid     = 40102
	codeTokenExpired     = 40104
	codeTokenMissing     = 40105
	codeInternalMinimum  = 50000
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// APIError é o erro classificado de uma chamada à Business API do TikTok
type APIError struct {
	StatusCode int
	Code       int
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

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Code != codeOK {
		apiErr.Code = env.Code
		apiErr.Message = env.Message
	}

	apiErr.authError = statusCode == 401 ||
		apiErr.Code == codeTokenInvalid || apiErr.Code == codeTokenExpired || apiErr.Code == codeTokenMissing
	apiErr.rateLimited = statusCode == 429 || apiErr.Code == codeRateLimit
	apiErr.retryable = statusCode >= 500 || apiErr.Code >= codeInternalMinimum

	if seconds, err := strconv.Atoi(retryAfterHeader); err == nil && seconds > 0 {
		apiErr.retryAfter = time.Duration(seconds) * time.Second
	}

	return apiErr
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tiktok: erro na API. status=%d code=%d message=%s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) IsAuthError() bool          { return e.authError }
func (e *APIError) IsRateLimitError() bool     { return e.rateLimited }
func (e *APIError) IsRetryable() bool          { return e.retryable }
func (e *APIError) RetryAfter() time.Duration  { return e.retryAfter }
