package wbclient

import (
	"context"
	"time"

	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/ratelimit"
	"github.com/vfg2006/seller-analytics-bot/pkg/log"
	"github.com/vfg2006/seller-analytics-bot/pkg/utils"
)

// RetryPolicy define o número de tentativas e o atraso base por endpoint
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// SleepFunc espera d ou até o contexto ser cancelado
type SleepFunc = utils.SleepFunc

// Retrier envolve as tentativas com o limitador e a política por tipo de erro
type Retrier struct {
	limiter *ratelimit.Limiter
	sleep   SleepFunc
}

func NewRetrier(limiter *ratelimit.Limiter) *Retrier {
	return &Retrier{limiter: limiter, sleep: utils.Sleep}
}

// Do executa attempt até obter sucesso, um erro sem retentativa ou esgotar as tentativas.
// Cada tentativa adquire e libera a chave do limitador.
func (r *Retrier) Do(ctx context.Context, key ratelimit.Key, policy RetryPolicy, attempt func(ctx context.Context) (*Response, error)) (*Response, error) {
	maxAttempts := policy.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"endpoint":  key.Endpoint,
		"tenant_id": key.Scope,
	})

	var lastErr *wbdomain.APIError
	for n := 1; n <= maxAttempts; n++ {
		token, err := r.limiter.Acquire(ctx, key)
		if err != nil {
			return nil, &wbdomain.APIError{Kind: wbdomain.KindCancelled, Detail: err.Error()}
		}

		resp, err := attempt(ctx)
		r.limiter.Release(token)
		if err == nil {
			return resp, nil
		}

		apiErr, ok := wbdomain.AsAPIError(err)
		if !ok {
			apiErr = &wbdomain.APIError{Kind: wbdomain.KindNetwork, Detail: err.Error()}
		}
		lastErr = apiErr

		if !apiErr.Retryable() {
			logger.WithField("kind", apiErr.Kind).Warnf("Erro sem retentativa na tentativa %d: %v", n, apiErr)
			return nil, apiErr
		}

		delay := time.Duration(n) * policy.BaseDelay
		if apiErr.Kind == wbdomain.KindRateLimited {
			if apiErr.RetryAfter > delay {
				delay = apiErr.RetryAfter
			}
			// a penalidade vale para o processo inteiro, inclusive na última tentativa
			r.limiter.Penalise(key.Endpoint, delay)
		}

		if n == maxAttempts {
			break
		}

		logger.WithFields(log.Fields{
			"attempt": n,
			"kind":    apiErr.Kind,
			"delay":   delay.String(),
		}).Warn("Falha na chamada ao marketplace, tentando novamente")

		if err := r.sleep(ctx, delay); err != nil {
			return nil, &wbdomain.APIError{Kind: wbdomain.KindCancelled, Detail: err.Error()}
		}
	}

	logger.WithField("kind", lastErr.Kind).Errorf("Tentativas esgotadas após %d chamadas", maxAttempts)

	return nil, lastErr
}
