package retry

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubError struct {
	msg        string
	auth       bool
	rateLimit  bool
	retryable  bool
	retryAfter time.Duration
}

func (e *stubError) Error() string              { return e.msg }
func (e *stubError) IsAuthError() bool          { return e.auth }
func (e *stubError) IsRateLimitError() bool     { return e.rateLimit }
func (e *stubError) IsRetryable() bool          { return e.retryable }
func (e *stubError) RetryAfter() time.Duration  { return e.retryAfter }

func newTestEngine(sleeps *[]time.Duration) *Engine {
	return New(DefaultConfig()).
		WithSleeper(func(d time.Duration) {
			if sleeps != nil {
				*sleeps = append(*sleeps, d)
			}
		}).
		WithRand(func() float64 { return 0 })
}

func TestEngine_Do_SucessoNaPrimeiraTentativa(t *testing.T) {
	calls := 0
	err := newTestEngine(nil).Do(context.Background(), func() error {
		calls++
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestEngine_Do_ErroNaoRetryableFalhaImediatamente(t *testing.T) {
	terminal := &stubError{msg: "invalid field in request"}

	calls := 0
	err := newTestEngine(nil).Do(context.Background(), func() error {
		calls++
		return terminal
	}, nil)

	require.Error(t, err)
	assert.Equal(t, terminal, err)
	assert.Equal(t, 1, calls, "erro não-retryable deve resultar em exatamente 1 tentativa")
}

func TestEngine_Do_ErroRetryableEsgotaTentativas(t *testing.T) {
	transient := &stubError{msg: "internal server error", retryable: true}

	var sleeps []time.Duration
	calls := 0
	err := newTestEngine(&sleeps).Do(context.Background(), func() error {
		calls++
		return transient
	}, nil)

	require.Error(t, err)
	assert.Equal(t, transient, err)
	assert.Equal(t, 3, calls, "erro retryable deve respeitar o orçamento de tentativas")
	// Backoff exponencial sem jitter: 1s, 2s
	require.Len(t, sleeps, 2)
	assert.Equal(t, 1*time.Second, sleeps[0])
	assert.Equal(t, 2*time.Second, sleeps[1])
}

func TestEngine_Do_RateLimitUsaRetryAfterDoProvedor(t *testing.T) {
	rateLimited := &stubError{msg: "too many requests", rateLimit: true, retryAfter: 2 * time.Second}

	var sleeps []time.Duration
	calls := 0
	err := newTestEngine(&sleeps).Do(context.Background(), func() error {
		calls++
		if calls == 1 {
			return rateLimited
		}
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, sleeps, 1)
	assert.Equal(t, 2*time.Second, sleeps[0], "deve dormir o Retry-After informado pelo provedor")
}

func TestEngine_Do_AuthErrorRenovaTokenUmaVez(t *testing.T) {
	authErr := &stubError{msg: "expired token", auth: true}

	refreshes := 0
	calls := 0
	err := newTestEngine(nil).Do(context.Background(), func() error {
		calls++
		if calls == 1 {
			return authErr
		}
		return nil
	}, func() error {
		refreshes++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, refreshes)
	assert.Equal(t, 2, calls, "após renovar o token a chamada repete do mesmo slot")
}

func TestEngine_Do_AuthErrorSemRefreshFalhaImediatamente(t *testing.T) {
	authErr := &stubError{msg: "expired token", auth: true}

	calls := 0
	err := newTestEngine(nil).Do(context.Background(), func() error {
		calls++
		return authErr
	}, nil)

	require.Error(t, err)
	assert.Equal(t, authErr, err)
	assert.Equal(t, 1, calls)
}

func TestEngine_Do_SegundoAuthErrorNaoRenovaDeNovo(t *testing.T) {
	authErr := &stubError{msg: "expired token", auth: true}

	refreshes := 0
	calls := 0
	err := newTestEngine(nil).Do(context.Background(), func() error {
		calls++
		return authErr
	}, func() error {
		refreshes++
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, authErr, err)
	assert.Equal(t, 1, refreshes, "a renovação de token acontece no máximo uma vez por chamada")
	assert.Equal(t, 2, calls)
}

func TestEngine_Do_ContadorDeTentativasZeraAposRefresh(t *testing.T) {
	authErr := &stubError{msg: "expired token", auth: true}
	transient := &stubError{msg: "bad gateway", retryable: true}

	var sleeps []time.Duration
	calls := 0
	// Sequência: transiente, transiente, auth, e depois só transientes.
	// Sem o reset do contador a chamada esgotaria logo após o refresh;
	// com o reset, o orçamento de 3 tentativas recomeça inteiro.
	err := newTestEngine(&sleeps).Do(context.Background(), func() error {
		calls++
		switch calls {
		case 1, 2:
			return transient
		case 3:
			return authErr
		default:
			return transient
		}
	}, func() error { return nil })

	require.Error(t, err)
	assert.Equal(t, transient, err)
	assert.Equal(t, 6, calls, "2 transientes + 1 auth + 3 novas tentativas após o refresh")
}

func TestEngine_Do_FalhaDoRefreshPropagaErroDoRefresh(t *testing.T) {
	authErr := &stubError{msg: "expired token", auth: true}
	refreshErr := errors.New("refresh token revogado")

	err := newTestEngine(nil).Do(context.Background(), func() error {
		return authErr
	}, func() error {
		return refreshErr
	})

	require.Error(t, err)
	assert.Equal(t, refreshErr, err)
}

func TestEngine_Do_ErroSemClassificacaoTratadoComoTransiente(t *testing.T) {
	netErr := errors.New("connection reset by peer")

	calls := 0
	err := newTestEngine(nil).Do(context.Background(), func() error {
		calls++
		return netErr
	}, nil)

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestEngine_Do_ContextoCanceladoInterrompe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := newTestEngine(nil).Do(ctx, func() error {
		calls++
		return nil
	}, nil)

	require.Error(t, err)
	assert.Equal(t, 0, calls)
}

func TestEngine_BackoffDelayRespeitaTeto(t *testing.T) {
	engine := New(Config{
		MaxAttempts: 10,
		BaseDelay:   1 * time.Second,
		MaxDelay:    30 * time.Second,
		Factor:      2.0,
	}).WithRand(func() float64 { return 0 })

	assert.Equal(t, 1*time.Second, engine.backoffDelay(1))
	assert.Equal(t, 16*time.Second, engine.backoffDelay(5))
	assert.Equal(t, 30*time.Second, engine.backoffDelay(8), "delay deve ser limitado ao teto configurado")
}
