package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ClassifiedError é implementado pelos erros das APIs dos provedores.
// A classificação é calculada uma única vez na construção do erro.
type ClassifiedError interface {
	error
	IsAuthError() bool
	IsRateLimitError() bool
	IsRetryable() bool
	RetryAfter() time.Duration // 0 quando o provedor não informa Retry-After
}

// Config parametriza o motor de retry por cliente de provedor
type Config struct {
	MaxAttempts    int           // Orçamento total de tentativas (inclui a primeira)
	BaseDelay      time.Duration // Delay inicial do backoff exponencial
	MaxDelay       time.Duration // Teto do backoff
	Factor         float64       // Multiplicador do backoff
	JitterFraction float64       // Fração máxima de jitter aleatório (0.3 = até 30%)
}

// DefaultConfig retorna a configuração padrão: 1s, 2s, 4s... até 30s, 3 tentativas
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		BaseDelay:      1 * time.Second,
		MaxDelay:       30 * time.Second,
		Factor:         2.0,
		JitterFraction: 0.3,
	}
}

// Engine executa chamadas com retry, backoff e renovação de token.
// sleep e randFloat são injetáveis para os testes não dependerem de relógio.
type Engine struct {
	cfg       Config
	sleep     func(time.Duration)
	randFloat func() float64
}

func New(cfg Config) *Engine {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	return &Engine{
		cfg:       cfg,
		sleep:     time.Sleep,
		randFloat: rand.Float64,
	}
}

// WithSleeper substitui a função de espera (usado em testes)
func (e *Engine) WithSleeper(sleep func(time.Duration)) *Engine {
	e.sleep = sleep
	return e
}

// WithRand substitui a fonte de aleatoriedade do jitter (usado em testes)
func (e *Engine) WithRand(randFloat func() float64) *Engine {
	e.randFloat = randFloat
	return e
}

// Do executa op até obter sucesso, esgotar as tentativas ou encontrar um erro
// não-retryable. Em erro de autenticação, refresh é invocado no máximo uma vez
// por chamada e o contador de tentativas volta a zero: renovar token é uma
// mudança de estado, não um sintoma de rede instável, então não consome o
// orçamento de retries transientes.
func (e *Engine) Do(ctx context.Context, op func() error, refresh func() error) error {
	attempt := 0
	refreshAttempted := false

	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "retry interrompido pelo contexto")
		}

		err := op()
		if err == nil {
			return nil
		}
		attempt++

		var classified ClassifiedError
		if !errors.As(err, &classified) {
			// Erros de rede sem classificação são tratados como transientes
			if attempt >= e.cfg.MaxAttempts {
				return err
			}
			e.waitBackoff(attempt, 0)
			continue
		}

		switch {
		case classified.IsAuthError():
			if refresh == nil || refreshAttempted {
				return err
			}

			refreshAttempted = true
			logrus.WithError(err).Info("retry: erro de autenticação, renovando token de acesso")
			if refreshErr := refresh(); refreshErr != nil {
				return refreshErr
			}

			// Token renovado: a tentativa recomeça do mesmo slot
			attempt = 0

		case classified.IsRateLimitError():
			if attempt >= e.cfg.MaxAttempts {
				return err
			}
			e.waitBackoff(attempt, classified.RetryAfter())

		case classified.IsRetryable():
			if attempt >= e.cfg.MaxAttempts {
				return err
			}
			e.waitBackoff(attempt, 0)

		default:
			// Não-retryable: falha imediata, sem consumir tentativas
			return err
		}
	}
}

// waitBackoff dorme o Retry-After informado pelo provedor ou o backoff
// exponencial com jitter calculado para a tentativa
func (e *Engine) waitBackoff(attempt int, retryAfter time.Duration) {
	delay := retryAfter
	if delay <= 0 {
		delay = e.backoffDelay(attempt)
	}

	logrus.WithFields(logrus.Fields{
		"attempt": attempt,
		"delay":   delay.String(),
	}).Debug("retry: aguardando antes da próxima tentativa")

	e.sleep(delay)
}

// backoffDelay calcula base*factor^(attempt-1) limitado ao teto, mais jitter
func (e *Engine) backoffDelay(attempt int) time.Duration {
	exp := float64(e.cfg.BaseDelay) * math.Pow(e.cfg.Factor, float64(attempt-1))
	if exp > float64(e.cfg.MaxDelay) {
		exp = float64(e.cfg.MaxDelay)
	}

	if e.cfg.JitterFraction > 0 {
		exp += exp * e.cfg.JitterFraction * e.randFloat()
	}

	return time.Duration(exp)
}
