package main

import (
	"math"
	"sync"
	"time"
)

// How often countdown updates are broadcast for timed questions.
const tickInterval = 500 * time.Millisecond

// countdown is the cancellable periodic task behind a timed question. It is
// owned by exactly one Round; cancel is safe to call more than once and from
// any goroutine.
type countdown struct {
	stop chan struct{}
	once sync.Once
}

func newCountdown() *countdown {
	return &countdown{stop: make(chan struct{})}
}

func (cd *countdown) cancel() {
	cd.once.Do(func() {
		close(cd.stop)
	})
}

// startTickerLocked arms a fresh countdown for the current round. Any prior
// ticker must already have been cancelled by the caller.
func (s *Session) startTickerLocked(cfg *Config, endsAt time.Time) {
	cd := newCountdown()
	s.round.ticker = cd
	go s.runTicker(cfg, cd, endsAt)
}

// cancelTickerLocked stops the round's ticker, if one is running.
func (s *Session) cancelTickerLocked() {
	if s.round != nil && s.round.ticker != nil {
		s.round.ticker.cancel()
		s.round.ticker = nil
	}
}

func (s *Session) runTicker(cfg *Config, cd *countdown, endsAt time.Time) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cd.stop:
			return
		case <-ticker.C:
			s.mu.Lock()

			// A new question or round may have replaced this ticker between
			// the fire and the lock acquisition; stale fires must not touch
			// the round.
			if s.closed || s.round == nil || s.round.ticker != cd {
				s.mu.Unlock()
				return
			}

			remaining := int(math.Max(0, math.Round(time.Until(endsAt).Seconds())))
			s.broadcastLocked(CountdownMessage{Type: "countdown", Remaining: remaining})

			if remaining <= 0 {
				s.broadcastLocked(TimeUpMessage{Type: "time_up"})
				s.round.ticker = nil
				s.mu.Unlock()

				logf(cfg, "GAMES: Question timed out in %s", s.code)
				cd.cancel()
				return
			}

			s.mu.Unlock()
		}
	}
}
