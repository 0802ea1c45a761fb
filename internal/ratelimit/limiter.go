package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const window = time.Minute

// Limiter is a sliding-window admission gate for outbound API calls. It
// keeps the timestamps of every call admitted in the trailing minute and
// delays callers once the window is full. Calls are never rejected, only
// deferred; a caller that needs a deadline wraps Acquire with a context
// timeout.
type Limiter struct {
	mu       sync.Mutex
	capacity int
	admitted []time.Time

	// Injection points for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New returns a limiter admitting at most capacity calls per minute.
func New(capacity int) *Limiter {
	return &Limiter{
		capacity: capacity,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Acquire blocks until issuing one request keeps the trailing-minute count
// at or below capacity. It returns a non-nil error only when ctx is done,
// in which case the caller was never admitted and the window is untouched.
func (l *Limiter) Acquire(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := l.now()
		l.purge(now)

		if len(l.admitted) < l.capacity {
			l.admitted = append(l.admitted, now)
			l.mu.Unlock()
			return nil
		}

		wait := window - now.Sub(l.admitted[0])
		l.mu.Unlock()

		if wait > 0 {
			slog.Debug("rate limit reached, waiting", "wait", wait.Round(time.Millisecond))
			if err := l.sleep(ctx, wait); err != nil {
				return err
			}
		}
		// Re-check under the lock; another waiter may have been admitted
		// into the slot that just opened.
	}
}

// purge drops admissions older than the window. Caller holds the lock.
func (l *Limiter) purge(now time.Time) {
	cutoff := now.Add(-window)
	i := 0
	for i < len(l.admitted) && !l.admitted[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.admitted = append(l.admitted[:0], l.admitted[i:]...)
	}
}

// InFlight reports how many admissions sit in the current window. Exposed
// for the /health endpoint.
func (l *Limiter) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.purge(l.now())
	return len(l.admitted)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
