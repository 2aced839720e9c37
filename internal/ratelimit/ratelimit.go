// Package ratelimit считает попытки по ключу (обычно IP клиента) в fixed-window.
// Состояние живёт в памяти процесса; рестарт обнуляет все окна.
package ratelimit

import (
	"sync"
	"time"
)

const sweepThreshold = 4096

type window struct {
	start time.Time
	count int
}

type Limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string]*window

	now func() time.Time // подменяется в тестах
}

func New(max int, windowLen time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  windowLen,
		entries: make(map[string]*window),
		now:     time.Now,
	}
}

// Admit сообщает, укладывается ли ещё одна попытка в бюджет окна.
// При отказе возвращает время до конца окна (для Retry-After).
func (l *Limiter) Admit(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.entries[key]
	if !ok || now.Sub(w.start) >= l.window {
		if len(l.entries) >= sweepThreshold {
			l.sweepLocked(now)
		}
		l.entries[key] = &window{start: now, count: 1}
		return true, 0
	}
	if w.count >= l.max {
		return false, w.start.Add(l.window).Sub(now)
	}
	w.count++
	return true, 0
}

func (l *Limiter) sweepLocked(now time.Time) {
	for k, w := range l.entries {
		if now.Sub(w.start) >= l.window {
			delete(l.entries, k)
		}
	}
}
