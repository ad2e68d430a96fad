package monitor

import (
	"context"
	"log"
	"time"
)

// SessionCounter reports how many games the store currently holds.
type SessionCounter interface {
	Len() int
}

// Worker periodically reports store size. Games are never evicted, so the
// only thing it can do about growth is say so.
type Worker struct {
	Sessions      SessionCounter
	Interval      time.Duration
	WarnThreshold int

	last int
}

func NewWorker(sessions SessionCounter, interval time.Duration, warnThreshold int) *Worker {
	return &Worker{Sessions: sessions, Interval: interval, WarnThreshold: warnThreshold}
}

// Start runs until ctx is cancelled. A non-positive interval disables the worker.
func (w *Worker) Start(ctx context.Context) {
	if w.Interval <= 0 {
		log.Println("[MONITOR] Disabled")
		return
	}

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	log.Printf("[MONITOR] Background worker started (every %s)", w.Interval)

	w.check()
	for {
		select {
		case <-ctx.Done():
			log.Println("[MONITOR] Background worker stopped")
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check returns true when the store is above the warning threshold.
func (w *Worker) check() bool {
	n := w.Sessions.Len()
	growth := n - w.last
	w.last = n

	if w.WarnThreshold > 0 && n > w.WarnThreshold {
		log.Printf("[MONITOR] WARNING: %d games in memory (threshold %d, +%d since last check); nothing is evicted", n, w.WarnThreshold, growth)
		return true
	}
	log.Printf("[MONITOR] %d games in memory (+%d since last check)", n, growth)
	return false
}
