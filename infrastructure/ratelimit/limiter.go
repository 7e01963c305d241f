package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// Key identifica uma fila de chamadas: o endpoint do marketplace e o escopo (credencial da loja)
type Key struct {
	Endpoint string
	Scope    string
}

// State é a fase atual de uma chave
type State string

const (
	StateIdle     State = "idle"
	StateInFlight State = "in_flight"
	StateCooling  State = "cooling"
)

type keyState struct {
	gate     *semaphore.Weighted
	inFlight bool
	lastDone time.Time
}

// Token representa o direito de fazer uma chamada; deve ser devolvido com Release
type Token struct {
	key   Key
	state *keyState
	once  sync.Once
}

func (t *Token) Key() Key {
	return t.key
}

// Limiter garante no máximo uma chamada por intervalo de resfriamento para cada chave.
// Chamadores da mesma chave são atendidos em ordem de chegada.
type Limiter struct {
	mu        sync.Mutex
	intervals map[string]time.Duration
	keys      map[Key]*keyState
	penalties map[string]time.Time
	now       func() time.Time
}

type Option func(*Limiter)

// WithClock substitui o relógio usado para resfriamento e penalidades
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

func New(intervals map[string]time.Duration, opts ...Option) *Limiter {
	copied := make(map[string]time.Duration, len(intervals))
	for endpoint, interval := range intervals {
		copied[endpoint] = interval
	}

	limiter := &Limiter{
		intervals: copied,
		keys:      make(map[Key]*keyState),
		penalties: make(map[string]time.Time),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(limiter)
	}

	return limiter
}

func (l *Limiter) state(key Key) *keyState {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.keys[key]
	if !ok {
		st = &keyState{gate: semaphore.NewWeighted(1)}
		l.keys[key] = st
	}
	return st
}

// Acquire bloqueia até que a chamada para a chave seja permitida
func (l *Limiter) Acquire(ctx context.Context, key Key) (*Token, error) {
	st := l.state(key)

	if err := st.gate.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	// a penalidade pode crescer enquanto esperamos, por isso o laço
	for {
		wait := l.remaining(key, st)
		if wait <= 0 {
			break
		}

		logrus.WithFields(logrus.Fields{
			"endpoint": key.Endpoint,
			"wait":     wait.String(),
		}).Debug("Aguardando resfriamento do endpoint")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			st.gate.Release(1)
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	l.mu.Lock()
	st.inFlight = true
	l.mu.Unlock()

	return &Token{key: key, state: st}, nil
}

// Release registra o fim da chamada e inicia o resfriamento da chave
func (l *Limiter) Release(token *Token) {
	if token == nil {
		return
	}

	token.once.Do(func() {
		l.mu.Lock()
		token.state.inFlight = false
		token.state.lastDone = l.now()
		l.mu.Unlock()

		token.state.gate.Release(1)
	})
}

// Penalise adia a próxima chamada ao endpoint para todas as lojas após um 429
func (l *Limiter) Penalise(endpoint string, hint time.Duration) {
	if hint <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	until := l.now().Add(hint)
	if current, ok := l.penalties[endpoint]; !ok || until.After(current) {
		l.penalties[endpoint] = until
	}
}

// State devolve a fase atual da chave
func (l *Limiter) State(key Key) State {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.keys[key]
	if !ok {
		// chave nunca usada ainda pode estar sob penalidade do endpoint
		st = &keyState{}
	}
	if st.inFlight {
		return StateInFlight
	}
	if l.readyAtLocked(key, st).After(l.now()) {
		return StateCooling
	}
	return StateIdle
}

// Interval devolve o intervalo configurado para o endpoint
func (l *Limiter) Interval(endpoint string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intervals[endpoint]
}

func (l *Limiter) remaining(key Key, st *keyState) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readyAtLocked(key, st).Sub(l.now())
}

func (l *Limiter) readyAtLocked(key Key, st *keyState) time.Time {
	var ready time.Time
	if !st.lastDone.IsZero() {
		ready = st.lastDone.Add(l.intervals[key.Endpoint])
	}
	if penalty, ok := l.penalties[key.Endpoint]; ok && penalty.After(ready) {
		ready = penalty
	}
	return ready
}
