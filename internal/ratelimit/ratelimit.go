package ratelimit

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Limiter enforces a per-key request budget over a sliding window. Counter
// state lives in a bounded LRU map, so one instance can be shared by every
// request without growing without bound; least-recently-seen sources are
// evicted first.
type Limiter struct {
	mu       sync.Mutex
	counters *lru.Cache[string, *window]
	limit    int
	interval time.Duration

	now func() time.Time // overridable in tests
}

// window tracks request counts for the current and previous interval.
// The sliding estimate weights the previous bucket by how much of it still
// overlaps the window ending now.
type window struct {
	start time.Time
	prev  int
	curr  int
}

func New(limit int, interval time.Duration, size int) (*Limiter, error) {
	counters, err := lru.New[string, *window](size)
	if err != nil {
		return nil, err
	}
	return &Limiter{
		counters: counters,
		limit:    limit,
		interval: interval,
		now:      time.Now,
	}, nil
}

// Allow records one request for key and reports whether it fits the budget.
// A rejected request is not counted against the window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.counters.Get(key)
	if !ok {
		w = &window{start: now}
		l.counters.Add(key, w)
	}

	elapsed := now.Sub(w.start)
	switch {
	case elapsed >= 2*l.interval:
		w.start = now
		w.prev, w.curr = 0, 0
		elapsed = 0
	case elapsed >= l.interval:
		w.start = w.start.Add(l.interval)
		w.prev, w.curr = w.curr, 0
		elapsed -= l.interval
	}

	carry := 1 - float64(elapsed)/float64(l.interval)
	estimate := int(float64(w.prev)*carry) + w.curr
	if estimate >= l.limit {
		return false
	}
	w.curr++
	return true
}
