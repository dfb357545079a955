package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiters guarda um token bucket (x/time/rate) por cliente e descarta os
// que ficaram ociosos por mais de idleTTL.
type Limiters struct {
	mu           sync.Mutex
	entries      map[string]*limiterEntry
	rps          rate.Limit
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
	now          func() time.Time
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type LimitersOption func(*Limiters)

func WithIdleTTL(d time.Duration) LimitersOption {
	return func(l *Limiters) { l.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) LimitersOption {
	return func(l *Limiters) { l.cleanupEvery = d }
}

func withClock(now func() time.Time) LimitersOption {
	return func(l *Limiters) { l.now = now }
}

func NewLimiters(rps float64, burst int, opts ...LimitersOption) *Limiters {
	l := &Limiters{
		entries:      make(map[string]*limiterEntry),
		rps:          rate.Limit(rps),
		burst:        burst,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiters) RPS() float64 { return float64(l.rps) }
func (l *Limiters) Burst() int   { return l.burst }

// Allow consome um token do cliente key.
func (l *Limiters) Allow(key string) bool {
	return l.get(key).AllowN(l.now(), 1)
}

func (l *Limiters) get(key string) *rate.Limiter {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if ent, ok := l.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}
	lim := rate.NewLimiter(l.rps, l.burst)
	l.entries[key] = &limiterEntry{lim: lim, lastSeen: now}
	return lim
}

// Len devolve quantos clientes têm limiter ativo.
func (l *Limiters) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Cleanup remove os limiters sem uso há mais de idleTTL.
func (l *Limiters) Cleanup() {
	cutoff := l.now().Add(-l.idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, ent := range l.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(l.entries, k)
		}
	}
}

// StartJanitor roda Cleanup a cada cleanupEvery até ctx encerrar.
// Retorna um canal fechado quando a goroutine termina.
func (l *Limiters) StartJanitor(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if l.cleanupEvery <= 0 {
		close(done)
		return done
	}

	t := time.NewTicker(l.cleanupEvery)
	go func() {
		defer close(done)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Cleanup()
			}
		}
	}()
	return done
}
